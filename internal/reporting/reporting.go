// Package reporting rolls up notes and payments for dashboards.
package reporting

import (
	"time"

	"github.com/promissoria/backend/internal/ledger"
	"github.com/promissoria/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of calendar dates. A zero bound means
// that the range is unbounded on that side.
type DateRange struct {
	From  types.Date
	Until types.Date
}

// ContainsDate reports if the date is in the range.
func (r DateRange) ContainsDate(d types.Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}

	if !r.Until.IsZero() && d.After(r.Until) {
		return false
	}

	return true
}

// ContainsTime reports if the calendar day of t in UTC is in the range.
func (r DateRange) ContainsTime(t time.Time) bool {
	return r.ContainsDate(types.DateOf(t.In(time.UTC)))
}

// Issued is a note as seen by the aggregation.
type Issued interface {
	Anchor() types.Date
	Total() decimal.Decimal
}

// Settled is a payment as seen by the aggregation.
type Settled interface {
	SettledOn() time.Time
	SettledAmount() decimal.Decimal
}

// Totals are the dashboard figures.
type Totals struct {
	TotalSales       decimal.Decimal `json:"totalSales" example:"15000"`       // Sum of the values of all notes
	TotalReceived    decimal.Decimal `json:"totalReceived" example:"4200"`     // Sum of all payments
	TotalOutstanding decimal.Decimal `json:"totalOutstanding" example:"10800"` // Sales minus received
	NoteCount        int             `json:"noteCount" example:"12"`           // Number of notes
	PaymentCount     int             `json:"paymentCount" example:"21"`        // Number of payments
}

// Aggregate computes the totals for notes whose start date and payments
// whose payment date fall into the range.
//
// Notes and payments are filtered independently: a payment received in the
// range counts even if its note was issued outside of it.
func Aggregate[N Issued, P Settled](notes []N, payments []P, r DateRange) Totals {
	t := Totals{
		TotalSales:    decimal.Zero,
		TotalReceived: decimal.Zero,
	}

	for _, n := range notes {
		if !r.ContainsDate(n.Anchor()) {
			continue
		}

		t.TotalSales = t.TotalSales.Add(n.Total())
		t.NoteCount++
	}

	for _, p := range payments {
		if !r.ContainsTime(p.SettledOn()) {
			continue
		}

		t.TotalReceived = t.TotalReceived.Add(p.SettledAmount())
		t.PaymentCount++
	}

	t.TotalOutstanding = t.TotalSales.Sub(t.TotalReceived)
	return t
}

// Rollup sums up the reconciled schedules of notes, e.g. all notes of a
// client.
func Rollup(schedules []ledger.Schedule) Totals {
	t := Totals{
		TotalSales:    decimal.Zero,
		TotalReceived: decimal.Zero,
		NoteCount:     len(schedules),
	}

	for _, s := range schedules {
		t.TotalSales = t.TotalSales.Add(s.TotalExpected)
		t.TotalReceived = t.TotalReceived.Add(s.TotalReceived)
		t.PaymentCount += s.PaidCount
	}

	t.TotalOutstanding = t.TotalSales.Sub(t.TotalReceived)
	return t
}
