package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/ledger"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/promissoria/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Note is a promissory note issued by a user to one of their clients.
type Note struct {
	DefaultModel
	UserID           uuid.UUID `gorm:"type:uuid;index"`
	Client           Client    `json:"-"`
	ClientID         uuid.UUID `gorm:"type:uuid"`
	Description      string
	IssueDate        types.Date
	IssuePlace       string
	PaymentType      schedule.PaymentType
	Value            decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	InstallmentCount int
	HasDownPayment   bool
	DownPaymentValue decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StartDate        types.Date      // Due date of the down payment, or of the first installment without one
}

func (n *Note) BeforeSave(tx *gorm.DB) error {
	n.Description = strings.TrimSpace(n.Description)
	n.IssuePlace = strings.TrimSpace(n.IssuePlace)

	if n.PaymentType == schedule.LumpSum {
		n.InstallmentCount = 1
		n.HasDownPayment = false
	}

	if !n.HasDownPayment {
		n.DownPaymentValue = decimal.Zero
	}

	if n.IssueDate.IsZero() {
		n.IssueDate = types.DateOf(time.Now())
	}

	if err := n.Terms().Validate(); err != nil {
		return err
	}

	// Notes can only be issued to clients of the same user
	return tx.Where("id = ? AND user_id = ?", n.ClientID, n.UserID).First(&Client{}).Error
}

// Terms returns the payment terms of the note.
func (n Note) Terms() schedule.Terms {
	return schedule.Terms{
		PaymentType:      n.PaymentType,
		TotalValue:       n.Value,
		InstallmentCount: n.InstallmentCount,
		HasDownPayment:   n.HasDownPayment,
		DownPaymentValue: n.DownPaymentValue,
		StartDate:        n.StartDate,
	}
}

// Obligations returns the payment schedule of the note.
func (n Note) Obligations() []schedule.Obligation {
	return schedule.Generate(n.Terms())
}

// Payments returns all payments recorded for the note.
func (n Note) Payments(db *gorm.DB) ([]Payment, error) {
	var payments []Payment
	err := db.Where("note_id = ?", n.ID).Order("paid_on ASC").Find(&payments).Error
	return payments, err
}

// Reconcile returns the payment schedule with the payment status of
// every installment.
func (n Note) Reconcile(db *gorm.DB) (ledger.Schedule, error) {
	payments, err := n.Payments(db)
	if err != nil {
		return ledger.Schedule{}, err
	}

	events := make([]ledger.Event, 0, len(payments))
	for _, p := range payments {
		events = append(events, p.Event())
	}

	return ledger.Reconcile(n.Obligations(), events), nil
}

// Anchor is the date the note counts for in reports.
func (n Note) Anchor() types.Date {
	return n.StartDate
}

// Total is the value of the note.
func (n Note) Total() decimal.Decimal {
	return n.Value
}

// DeleteNote deletes the note of the user and all of its payments. Deleting
// a note that does not exist is not an error.
func DeleteNote(db *gorm.DB, userID, noteID uuid.UUID) error {
	return transaction(db, func(tx *gorm.DB) error {
		notes := tx.Model(&Note{}).Select("id").Where("id = ? AND user_id = ?", noteID, userID)

		err := tx.Where("note_id IN (?)", notes).Delete(&Payment{}).Error
		if err != nil {
			return err
		}

		return tx.Where("id = ? AND user_id = ?", noteID, userID).Delete(&Note{}).Error
	})
}
