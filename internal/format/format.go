// Package format renders values for printed notes and payment slips the
// way they are written in Brazil.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/promissoria/backend/internal/schedule"
	"github.com/promissoria/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dateLayout = "02/01/2006"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats an amount in Brazilian Real, e.g. "R$ 1.234,56".
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	units, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	formatted := fmt.Sprintf("R$ %s,%s", group(units), cents)

	if rounded.IsNegative() {
		return "-" + formatted
	}

	return formatted
}

// group inserts thousands separators into a string of digits.
func group(digits string) string {
	if n, err := strconv.ParseUint(digits, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return b.String()
}

// Date formats a date as DD/MM/YYYY.
func Date(d types.Date) string {
	if d.IsZero() {
		return ""
	}

	return d.Format(dateLayout)
}

// Time formats the calendar day of a timestamp as DD/MM/YYYY.
func Time(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}

	return t.In(time.UTC).Format(dateLayout)
}

// Label names an obligation on a payment slip.
func Label(o schedule.Obligation, installments int) string {
	if o.IsDownPayment {
		return "Entrada"
	}

	if installments <= 1 {
		return "Parcela única"
	}

	return fmt.Sprintf("Parcela %d/%d", o.SequenceIndex, installments)
}
