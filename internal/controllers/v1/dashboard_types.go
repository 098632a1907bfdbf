package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/ledger"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/reporting"
	"github.com/promissoria/backend/internal/types"
	"github.com/shopspring/decimal"
)

// NoteSummary is the payment status of a note.
type NoteSummary struct {
	ID               uuid.UUID       `json:"id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Description      string          `json:"description" example:"Sofá de 3 lugares"`
	StartDate        types.Date      `json:"startDate" example:"2024-01-31"`
	Value            decimal.Decimal `json:"value" example:"1200"`
	TotalReceived    decimal.Decimal `json:"totalReceived" example:"600"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding" example:"600"`
	PaidCount        int             `json:"paidCount" example:"2"`
	TotalCount       int             `json:"totalCount" example:"4"`
	Settled          bool            `json:"settled" example:"false"`
	NextDueDate      *types.Date     `json:"nextDueDate" example:"2024-03-31"` // Due date of the first unpaid installment
	Links            NoteLinks       `json:"links"`
}

func newNoteSummary(c *gin.Context, note models.Note, s ledger.Schedule) NoteSummary {
	summary := NoteSummary{
		ID:               note.ID,
		Description:      note.Description,
		StartDate:        note.StartDate,
		Value:            note.Value,
		TotalReceived:    s.TotalReceived,
		TotalOutstanding: s.TotalOutstanding,
		PaidCount:        s.PaidCount,
		TotalCount:       s.TotalCount,
		Settled:          s.Settled(),
		Links:            newNoteLinks(c, note),
	}

	if next, ok := s.Next(); ok {
		summary.NextDueDate = &next.DueDate
	}

	return summary
}

// ClientDashboard are the totals of all notes of a client.
type ClientDashboard struct {
	Client Client           `json:"client"`
	Totals reporting.Totals `json:"totals"`
	Notes  []NoteSummary    `json:"notes"` // All notes of the client, ordered by start date
}

type ClientDashboardResponse struct {
	Data  *ClientDashboard `json:"data"`                                                   // Data for the dashboard
	Error *string          `json:"error" example:"there is no client matching your query"` // The error, if any occurred
}

// Dashboard are the totals of the notes started and the payments received
// in a date range.
type Dashboard struct {
	reporting.Totals
	From  *types.Date `json:"from" example:"2024-01-01"`  // First day of the range. Unbounded if not set.
	Until *types.Date `json:"until" example:"2024-12-31"` // Last day of the range. Unbounded if not set.
}

func newDashboard(totals reporting.Totals, r QueryDateRange) Dashboard {
	d := Dashboard{Totals: totals}

	if !r.From.IsZero() {
		d.From = &r.From
	}

	if !r.Until.IsZero() {
		d.Until = &r.Until
	}

	return d
}

func (r QueryDateRange) model() (reporting.DateRange, error) {
	if !r.From.IsZero() && !r.Until.IsZero() && r.From.After(r.Until) {
		return reporting.DateRange{}, errInvalidRange
	}

	return reporting.DateRange{From: r.From, Until: r.Until}, nil
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`                                                           // Data for the dashboard
	Error *string    `json:"error" example:"the from date must not be after the until date"` // The error, if any occurred
}

// AdminDashboard are the totals for all users.
type AdminDashboard struct {
	Dashboard
	UserCount    int64 `json:"userCount" example:"42"`    // Number of users
	ProUserCount int64 `json:"proUserCount" example:"7"`  // Number of users on the Pro plan right now
	ClientCount  int64 `json:"clientCount" example:"318"` // Number of clients of all users
}

type AdminDashboardResponse struct {
	Data  *AdminDashboard `json:"data"`                                                           // Data for the dashboard
	Error *string         `json:"error" example:"the from date must not be after the until date"` // The error, if any occurred
}
