package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/shopspring/decimal"
)

// PaymentEditable are the parameters to record a payment.
type PaymentEditable struct {
	SequenceIndex int             `json:"sequenceIndex" example:"1"`             // Sequence index of the installment. 0 for the down payment.
	IsDownPayment bool            `json:"isDownPayment" example:"false"`         // Is the down payment paid?
	Amount        decimal.Decimal `json:"amount" example:"300"`                  // Amount paid. Defaults to the amount due.
	PaidOn        time.Time       `json:"paidOn" example:"2024-02-27T13:12:00Z"` // Time of the payment. Defaults to now.
}

func (editable PaymentEditable) key() schedule.Key {
	return schedule.Key{
		SequenceIndex: editable.SequenceIndex,
		IsDownPayment: editable.IsDownPayment,
	}
}

type PaymentLinks struct {
	Note     string `json:"note" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The note the payment is for
	Schedule string `json:"schedule" example:"https://example.com/api/v1/notes/3b1ea324-d438-4419-882a-2fc91d71772f/schedule"` // The schedule of the note
}

type Payment struct {
	models.DefaultModel
	NoteID        uuid.UUID       `json:"noteId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	SequenceIndex int             `json:"sequenceIndex" example:"1"`
	IsDownPayment bool            `json:"isDownPayment" example:"false"`
	Amount        decimal.Decimal `json:"amount" example:"300"`
	PaidOn        time.Time       `json:"paidOn" example:"2024-02-27T13:12:00Z"`
	Links         PaymentLinks    `json:"links"`
}

func newPayment(c *gin.Context, model models.Payment) Payment {
	url := c.GetString(string(models.DBContextURL))

	return Payment{
		DefaultModel:  model.DefaultModel,
		NoteID:        model.NoteID,
		SequenceIndex: model.SequenceIndex,
		IsDownPayment: model.IsDownPayment,
		Amount:        model.Amount,
		PaidOn:        model.PaidOn,
		Links: PaymentLinks{
			Note:     fmt.Sprintf("%s/v1/notes/%s", url, model.NoteID),
			Schedule: fmt.Sprintf("%s/v1/notes/%s/schedule", url, model.NoteID),
		},
	}
}

type PaymentListResponse struct {
	Data  []Payment `json:"data"`                                                 // List of payments
	Error *string   `json:"error" example:"there is no note matching your query"` // The error, if any occurred
}

type PaymentResponse struct {
	Data  *Payment `json:"data"`                                                   // Data for the payment
	Error *string  `json:"error" example:"this installment has already been paid"` // The error, if any occurred
}

// PaymentQuery identifies the installment to mark as unpaid.
type PaymentQuery struct {
	SequenceIndex *int `form:"sequence"`    // Sequence index of the installment
	IsDownPayment bool `form:"downPayment"` // Is it the down payment?
}

func (q PaymentQuery) key() (schedule.Key, error) {
	if q.IsDownPayment {
		return schedule.Key{SequenceIndex: 0, IsDownPayment: true}, nil
	}

	if q.SequenceIndex == nil {
		return schedule.Key{}, errSequenceNotSet
	}

	return schedule.Key{SequenceIndex: *q.SequenceIndex}, nil
}
