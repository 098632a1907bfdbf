package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/promissoria/backend/internal/types"
	ez_uuid "github.com/promissoria/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// NoteEditable represents all user configurable parameters
type NoteEditable struct {
	ClientID         uuid.UUID            `json:"clientId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the client the note is issued to
	Description      string               `json:"description" example:"Sofá de 3 lugares" default:""`      // What the note is for
	IssueDate        types.Date           `json:"issueDate" example:"2024-01-15"`                          // Date the note was issued. Defaults to today.
	IssuePlace       string               `json:"issuePlace" example:"São Paulo" default:""`               // Place the note was issued
	PaymentType      schedule.PaymentType `json:"paymentType" example:"INSTALLMENT"`                       // LUMP_SUM or INSTALLMENT
	Value            decimal.Decimal      `json:"value" example:"1200"`                                    // Total value of the note
	InstallmentCount int                  `json:"installmentCount" example:"3"`                            // Number of installments after the down payment
	HasDownPayment   bool                 `json:"hasDownPayment" example:"true" default:"false"`           // Is a down payment due on the start date?
	DownPaymentValue decimal.Decimal      `json:"downPaymentValue" example:"300"`                          // Value of the down payment
	StartDate        types.Date           `json:"startDate" example:"2024-01-31"`                          // Due date of the down payment, or of the first installment without one
}

func (editable NoteEditable) model(userID uuid.UUID) models.Note {
	return models.Note{
		UserID:           userID,
		ClientID:         editable.ClientID,
		Description:      editable.Description,
		IssueDate:        editable.IssueDate,
		IssuePlace:       editable.IssuePlace,
		PaymentType:      editable.PaymentType,
		Value:            editable.Value,
		InstallmentCount: editable.InstallmentCount,
		HasDownPayment:   editable.HasDownPayment,
		DownPaymentValue: editable.DownPaymentValue,
		StartDate:        editable.StartDate,
	}
}

type NoteLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The note itself
	Client   string `json:"client" example:"https://example.com/api/v1/clients/65392deb-5e92-4268-b114-297faad6cdce"`          // The client the note is issued to
	Schedule string `json:"schedule" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f/schedule"` // Installments and their payment status
	Carne    string `json:"carne" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f/carne"`       // Printable payment slips
	Payments string `json:"payments" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f/payments"` // Payments for the note
}

type Note struct {
	models.DefaultModel
	NoteEditable
	Links NoteLinks `json:"links"`
}

func newNoteLinks(c *gin.Context, model models.Note) NoteLinks {
	url := c.GetString(string(models.DBContextURL))

	return NoteLinks{
		Self:     fmt.Sprintf("%s/v1/notes/%s", url, model.ID),
		Client:   fmt.Sprintf("%s/v1/clients/%s", url, model.ClientID),
		Schedule: fmt.Sprintf("%s/v1/notes/%s/schedule", url, model.ID),
		Carne:    fmt.Sprintf("%s/v1/notes/%s/carne", url, model.ID),
		Payments: fmt.Sprintf("%s/v1/notes/%s/payments", url, model.ID),
	}
}

func newNote(c *gin.Context, model models.Note) Note {
	return Note{
		DefaultModel: model.DefaultModel,
		NoteEditable: NoteEditable{
			ClientID:         model.ClientID,
			Description:      model.Description,
			IssueDate:        model.IssueDate,
			IssuePlace:       model.IssuePlace,
			PaymentType:      model.PaymentType,
			Value:            model.Value,
			InstallmentCount: model.InstallmentCount,
			HasDownPayment:   model.HasDownPayment,
			DownPaymentValue: model.DownPaymentValue,
			StartDate:        model.StartDate,
		},
		Links: newNoteLinks(c, model),
	}
}

type NoteListResponse struct {
	Data       []Note      `json:"data"`                                                          // List of notes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type NoteCreateResponse struct {
	Data  []NoteResponse `json:"data"`                                                          // List of the created notes or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *NoteCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, NoteResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type NoteResponse struct {
	Data  *Note   `json:"data"`                                                          // Data for the note
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type NoteQueryFilter struct {
	ClientID    ez_uuid.UUID         `form:"client"`                        // By ID of the client
	PaymentType schedule.PaymentType `form:"paymentType"`                   // By payment type
	FromDate    types.Date           `form:"fromDate" filterField:"false"`  // Start date is on or after this date
	UntilDate   types.Date           `form:"untilDate" filterField:"false"` // Start date is on or before this date
	Offset      uint                 `form:"offset" filterField:"false"`    // The offset of the first note returned. Defaults to 0.
	Limit       int                  `form:"limit" filterField:"false"`     // Maximum number of notes to return. Defaults to 50.
}

func (f NoteQueryFilter) model() models.Note {
	return models.Note{
		ClientID:    f.ClientID.UUID,
		PaymentType: f.PaymentType,
	}
}
