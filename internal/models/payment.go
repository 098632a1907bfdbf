package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/ledger"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment records that an installment of a note has been paid.
type Payment struct {
	DefaultModel
	Note          Note            `json:"-"`
	NoteID        uuid.UUID       `gorm:"type:uuid;uniqueIndex:payment_obligation"`
	SequenceIndex int             `gorm:"uniqueIndex:payment_obligation"`
	IsDownPayment bool            `gorm:"uniqueIndex:payment_obligation"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidOn        time.Time
}

func (p *Payment) AfterFind(tx *gorm.DB) error {
	_ = p.DefaultModel.AfterFind(tx)
	p.PaidOn = p.PaidOn.In(time.UTC)

	return nil
}

// Event returns the payment as ledger event.
func (p Payment) Event() ledger.Event {
	return ledger.Event{
		SequenceIndex: p.SequenceIndex,
		IsDownPayment: p.IsDownPayment,
		Amount:        p.Amount,
		PaidOn:        p.PaidOn,
	}
}

func (p Payment) SettledOn() time.Time {
	return p.PaidOn
}

func (p Payment) SettledAmount() decimal.Decimal {
	return p.Amount
}

// MarkPaid records the payment of the installment with the key.
//
// If amount is zero, the amount due for the installment is recorded. If
// paidOn is the zero time, the current time is used.
func MarkPaid(db *gorm.DB, note Note, key schedule.Key, amount decimal.Decimal, paidOn time.Time) (Payment, error) {
	obligation, ok := schedule.Find(note.Obligations(), key)
	if !ok {
		return Payment{}, fmt.Errorf("%w installment %d of this note", ErrResourceNotFound, key.SequenceIndex)
	}

	if amount.IsZero() {
		amount = obligation.Amount.Round(8)
	}

	if !amount.IsPositive() {
		return Payment{}, ErrPaymentAmount
	}

	if paidOn.IsZero() {
		paidOn = time.Now()
	}

	payment := Payment{
		NoteID:        note.ID,
		SequenceIndex: key.SequenceIndex,
		IsDownPayment: key.IsDownPayment,
		Amount:        amount,
		PaidOn:        paidOn.In(time.UTC),
	}

	err := transaction(db, func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Payment{}).
			Where("note_id = ? AND sequence_index = ? AND is_down_payment = ?", note.ID, key.SequenceIndex, key.IsDownPayment).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrDuplicatePayment
		}

		// A concurrent writer is caught by the unique index
		return tx.Create(&payment).Error
	})
	if err != nil {
		return Payment{}, err
	}

	return payment, nil
}

// MarkUnpaid deletes the payment of the installment with the key. Deleting a
// payment that does not exist is not an error.
func MarkUnpaid(db *gorm.DB, noteID uuid.UUID, key schedule.Key) error {
	return db.
		Where("note_id = ? AND sequence_index = ? AND is_down_payment = ?", noteID, key.SequenceIndex, key.IsDownPayment).
		Delete(&Payment{}).Error
}
