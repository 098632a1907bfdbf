package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/format"
	"github.com/promissoria/backend/internal/ledger"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ScheduleEntry is an installment of a note and its payment status.
type ScheduleEntry struct {
	SequenceIndex int              `json:"sequenceIndex" example:"1"`             // 0 for the down payment, 1 to the number of installments otherwise
	IsDownPayment bool             `json:"isDownPayment" example:"false"`         // Is this the down payment?
	Label         string           `json:"label" example:"Parcela 1/3"`           // Name of the installment on the payment slip
	Amount        decimal.Decimal  `json:"amount" example:"300"`                  // Amount due
	DueDate       types.Date       `json:"dueDate" example:"2024-02-29"`          // Due date
	IsPaid        bool             `json:"isPaid" example:"true"`                 // Is the installment paid?
	PaidOn        *time.Time       `json:"paidOn" example:"2024-02-27T13:12:00Z"` // Time of the payment
	PaidAmount    *decimal.Decimal `json:"paidAmount" example:"300"`              // Amount paid
}

func newScheduleEntry(entry ledger.Entry, installments int) ScheduleEntry {
	return ScheduleEntry{
		SequenceIndex: entry.SequenceIndex,
		IsDownPayment: entry.IsDownPayment,
		Label:         format.Label(entry.Obligation, installments),
		Amount:        entry.Amount,
		DueDate:       entry.DueDate,
		IsPaid:        entry.IsPaid,
		PaidOn:        entry.PaidOn,
		PaidAmount:    entry.PaidAmount,
	}
}

type ScheduleLinks struct {
	Note     string `json:"note" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f"`
	Carne    string `json:"carne" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f/carne"`
	Payments string `json:"payments" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f/payments"`
}

// Schedule is the reconciled payment schedule of a note.
type Schedule struct {
	NoteID           uuid.UUID       `json:"noteId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Entries          []ScheduleEntry `json:"entries"`                        // Installments ordered by due date
	TotalExpected    decimal.Decimal `json:"totalExpected" example:"1200"`   // Sum of all installments
	TotalReceived    decimal.Decimal `json:"totalReceived" example:"600"`    // Sum of all payments
	TotalOutstanding decimal.Decimal `json:"totalOutstanding" example:"600"` // Expected minus received
	PaidCount        int             `json:"paidCount" example:"2"`          // Number of paid installments
	TotalCount       int             `json:"totalCount" example:"4"`         // Number of installments
	Settled          bool            `json:"settled" example:"false"`        // Are all installments paid?
	Next             *ScheduleEntry  `json:"next"`                           // The first unpaid installment, if any
	Links            ScheduleLinks   `json:"links"`
}

func newSchedule(c *gin.Context, note models.Note, s ledger.Schedule) Schedule {
	url := c.GetString(string(models.DBContextURL))

	entries := make([]ScheduleEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, newScheduleEntry(e, note.InstallmentCount))
	}

	var next *ScheduleEntry
	if e, ok := s.Next(); ok {
		n := newScheduleEntry(e, note.InstallmentCount)
		next = &n
	}

	return Schedule{
		NoteID:           note.ID,
		Entries:          entries,
		TotalExpected:    s.TotalExpected,
		TotalReceived:    s.TotalReceived,
		TotalOutstanding: s.TotalOutstanding,
		PaidCount:        s.PaidCount,
		TotalCount:       s.TotalCount,
		Settled:          s.Settled(),
		Next:             next,
		Links: ScheduleLinks{
			Note:     fmt.Sprintf("%s/v1/notes/%s", url, note.ID),
			Carne:    fmt.Sprintf("%s/v1/notes/%s/carne", url, note.ID),
			Payments: fmt.Sprintf("%s/v1/notes/%s/payments", url, note.ID),
		},
	}
}

type ScheduleResponse struct {
	Data  *Schedule `json:"data"`                                                 // Data for the schedule
	Error *string   `json:"error" example:"there is no note matching your query"` // The error, if any occurred
}

// Slip is a payment slip of a carnê, formatted for printing.
type Slip struct {
	Label         string `json:"label" example:"Parcela 1/3"`
	SequenceIndex int    `json:"sequenceIndex" example:"1"`
	IsDownPayment bool   `json:"isDownPayment" example:"false"`
	Amount        string `json:"amount" example:"R$ 300,00"`
	DueDate       string `json:"dueDate" example:"29/02/2024"`
	IsPaid        bool   `json:"isPaid" example:"true"`
	PaidOn        string `json:"paidOn" example:"27/02/2024"` // Empty if the installment is not paid
}

// Carne is a note with its payment slips, formatted for printing.
type Carne struct {
	NoteID           uuid.UUID `json:"noteId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Creditor         string    `json:"creditor" example:"Ana Souza"`            // Name of the user that issued the note
	Debtor           string    `json:"debtor" example:"Maria Oliveira"`         // Name of the client
	DebtorDocument   string    `json:"debtorDocument" example:"123.456.789-09"` // CPF or CNPJ of the client
	DebtorAddress    string    `json:"debtorAddress" example:"Rua das Flores, 123"`
	Description      string    `json:"description" example:"Sofá de 3 lugares"`
	IssueDate        string    `json:"issueDate" example:"15/01/2024"`
	IssuePlace       string    `json:"issuePlace" example:"São Paulo"`
	Value            string    `json:"value" example:"R$ 1.200,00"`
	TotalReceived    string    `json:"totalReceived" example:"R$ 600,00"`
	TotalOutstanding string    `json:"totalOutstanding" example:"R$ 600,00"`
	Slips            []Slip    `json:"slips"`
}

func newCarne(user models.User, client models.Client, note models.Note, s ledger.Schedule) Carne {
	slips := make([]Slip, 0, len(s.Entries))
	for _, e := range s.Entries {
		slips = append(slips, Slip{
			Label:         format.Label(e.Obligation, note.InstallmentCount),
			SequenceIndex: e.SequenceIndex,
			IsDownPayment: e.IsDownPayment,
			Amount:        format.Currency(e.Amount),
			DueDate:       format.Date(e.DueDate),
			IsPaid:        e.IsPaid,
			PaidOn:        format.Time(e.PaidOn),
		})
	}

	return Carne{
		NoteID:           note.ID,
		Creditor:         user.Name,
		Debtor:           client.Name,
		DebtorDocument:   client.Document,
		DebtorAddress:    client.Address,
		Description:      note.Description,
		IssueDate:        format.Date(note.IssueDate),
		IssuePlace:       note.IssuePlace,
		Value:            format.Currency(note.Value),
		TotalReceived:    format.Currency(s.TotalReceived),
		TotalOutstanding: format.Currency(s.TotalOutstanding),
		Slips:            slips,
	}
}

type CarneResponse struct {
	Data  *Carne  `json:"data"`                                                 // Data for the carnê
	Error *string `json:"error" example:"there is no note matching your query"` // The error, if any occurred
}
