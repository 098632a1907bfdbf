// Package schedule derives the payment obligations of a promissory note
// from its terms.
package schedule

import (
	"errors"
	"fmt"

	"github.com/promissoria/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// swagger:enum PaymentType
type PaymentType string

const (
	LumpSum     PaymentType = "LUMP_SUM"
	Installment PaymentType = "INSTALLMENT"
)

var ErrInvalidTerms = errors.New("the payment terms are invalid")

// Terms are the payment terms of a note.
type Terms struct {
	PaymentType      PaymentType
	TotalValue       decimal.Decimal
	InstallmentCount int
	HasDownPayment   bool
	DownPaymentValue decimal.Decimal
	StartDate        types.Date // Due date of the down payment if there is one, of the first installment otherwise
}

// Key identifies an obligation within a note.
type Key struct {
	SequenceIndex int
	IsDownPayment bool
}

// Obligation is a single amount owed by a due date.
type Obligation struct {
	SequenceIndex int             // 0 for the down payment, 1..N for installments
	IsDownPayment bool            // Is this the down payment?
	Amount        decimal.Decimal // Amount due
	DueDate       types.Date      // Due date
}

func (o Obligation) Key() Key {
	return Key{SequenceIndex: o.SequenceIndex, IsDownPayment: o.IsDownPayment}
}

// Validate checks the terms for consistency.
func (t Terms) Validate() error {
	if !slices.Contains([]PaymentType{LumpSum, Installment}, t.PaymentType) {
		return fmt.Errorf("%w: unknown payment type '%s'", ErrInvalidTerms, t.PaymentType)
	}

	if !t.TotalValue.IsPositive() {
		return fmt.Errorf("%w: the value must be larger than zero", ErrInvalidTerms)
	}

	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: the start date must be set", ErrInvalidTerms)
	}

	if t.PaymentType == LumpSum {
		return nil
	}

	if t.InstallmentCount < 1 {
		return fmt.Errorf("%w: the installment count must be at least 1", ErrInvalidTerms)
	}

	if t.HasDownPayment {
		if t.DownPaymentValue.IsNegative() {
			return fmt.Errorf("%w: the down payment must not be negative", ErrInvalidTerms)
		}

		if t.DownPaymentValue.GreaterThanOrEqual(t.TotalValue) {
			return fmt.Errorf("%w: the down payment must be less than the value", ErrInvalidTerms)
		}
	}

	return nil
}

// Generate returns the obligations for the terms, ordered by due date.
//
// Due dates are stepped by whole calendar months from the start date. Every
// regular installment has the same amount, the remaining value divided by
// the number of installments without rounding.
func Generate(t Terms) []Obligation {
	if t.PaymentType != Installment {
		return []Obligation{
			{
				SequenceIndex: 1,
				Amount:        t.TotalValue,
				DueDate:       t.StartDate,
			},
		}
	}

	remaining := t.TotalValue
	if t.HasDownPayment {
		remaining = remaining.Sub(t.DownPaymentValue)
	}

	perInstallment := decimal.Zero
	if t.InstallmentCount > 0 {
		perInstallment = remaining.Div(decimal.NewFromInt(int64(t.InstallmentCount)))
	}

	obligations := make([]Obligation, 0, t.InstallmentCount+1)

	// Installments are due whole months after the start date, one month later
	// with a down payment
	offset := 0
	if t.HasDownPayment {
		obligations = append(obligations, Obligation{
			SequenceIndex: 0,
			IsDownPayment: true,
			Amount:        t.DownPaymentValue,
			DueDate:       t.StartDate,
		})

		offset = 1
	}

	for i := 0; i < t.InstallmentCount; i++ {
		obligations = append(obligations, Obligation{
			SequenceIndex: i + 1,
			Amount:        perInstallment,
			DueDate:       t.StartDate.AddMonths(offset + i),
		})
	}

	return obligations
}

// Find returns the obligation with the key.
func Find(obligations []Obligation, key Key) (Obligation, bool) {
	for _, o := range obligations {
		if o.Key() == key {
			return o, true
		}
	}

	return Obligation{}, false
}
