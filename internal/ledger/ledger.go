// Package ledger reconciles the obligations of a note with the payments
// recorded for it.
package ledger

import (
	"time"

	"github.com/promissoria/backend/internal/schedule"
	"github.com/shopspring/decimal"
)

// Event is a recorded payment of an obligation.
type Event struct {
	SequenceIndex int
	IsDownPayment bool
	Amount        decimal.Decimal
	PaidOn        time.Time
}

func (e Event) Key() schedule.Key {
	return schedule.Key{SequenceIndex: e.SequenceIndex, IsDownPayment: e.IsDownPayment}
}

// Entry is an obligation together with its payment state.
type Entry struct {
	schedule.Obligation
	IsPaid     bool
	PaidOn     *time.Time       // Earliest payment date, nil when unpaid
	PaidAmount *decimal.Decimal // Sum of all payments, nil when unpaid
}

// Schedule is the reconciled list of obligations of a note.
type Schedule struct {
	Entries          []Entry
	TotalExpected    decimal.Decimal
	TotalReceived    decimal.Decimal
	TotalOutstanding decimal.Decimal
	PaidCount        int
	TotalCount       int
}

// Reconcile matches events to obligations on sequence index and down
// payment flag.
//
// Events that match no obligation are ignored. Should there be more than one
// event for an obligation, it is paid, the amounts of all events are added up
// and the earliest payment date is used.
func Reconcile(obligations []schedule.Obligation, events []Event) Schedule {
	byKey := make(map[schedule.Key][]Event, len(events))
	for _, e := range events {
		byKey[e.Key()] = append(byKey[e.Key()], e)
	}

	s := Schedule{
		Entries:       make([]Entry, 0, len(obligations)),
		TotalExpected: decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalCount:    len(obligations),
	}

	for _, o := range obligations {
		entry := Entry{Obligation: o}
		s.TotalExpected = s.TotalExpected.Add(o.Amount)

		matches := byKey[o.Key()]
		if len(matches) > 0 {
			paid := decimal.Zero
			paidOn := matches[0].PaidOn

			for _, m := range matches {
				paid = paid.Add(m.Amount)
				if m.PaidOn.Before(paidOn) {
					paidOn = m.PaidOn
				}
			}

			entry.IsPaid = true
			entry.PaidOn = &paidOn
			entry.PaidAmount = &paid

			s.TotalReceived = s.TotalReceived.Add(paid)
			s.PaidCount++
		}

		s.Entries = append(s.Entries, entry)
	}

	s.TotalOutstanding = s.TotalExpected.Sub(s.TotalReceived)
	return s
}

// Next returns the first unpaid entry.
func (s Schedule) Next() (Entry, bool) {
	for _, e := range s.Entries {
		if !e.IsPaid {
			return e, true
		}
	}

	return Entry{}, false
}

// Settled reports if all obligations are paid.
func (s Schedule) Settled() bool {
	return s.PaidCount == s.TotalCount
}
