package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMarkPaidDefaults() {
	note := suite.createTestNote(models.Note{})

	before := time.Now()
	payment, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 2}, decimal.Zero, time.Time{})
	require.Nil(suite.T(), err)

	assert.NotEqual(suite.T(), uuid.Nil, payment.ID)
	assert.Equal(suite.T(), note.ID, payment.NoteID)
	assert.Equal(suite.T(), 2, payment.SequenceIndex)
	assert.False(suite.T(), payment.IsDownPayment)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(payment.Amount), "Amount defaults to the installment amount")
	assert.WithinDuration(suite.T(), before, payment.PaidOn, time.Minute)
}

func (suite *TestSuiteStandard) TestMarkPaidExplicitAmount() {
	note := suite.createTestNote(models.Note{})
	paidOn := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 1}, decimal.NewFromFloat(99.5), paidOn)
	require.Nil(suite.T(), err)

	payments, err := note.Payments(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), payments, 1)
	assert.True(suite.T(), decimal.NewFromFloat(99.5).Equal(payments[0].Amount))
	assert.Equal(suite.T(), paidOn, payments[0].PaidOn)
}

func (suite *TestSuiteStandard) TestMarkPaidErrors() {
	note := suite.createTestNote(models.Note{})

	_, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 1}, decimal.Zero, time.Now())
	require.Nil(suite.T(), err)

	tests := []struct {
		name   string
		key    schedule.Key
		amount decimal.Decimal
		err    error
	}{
		{"Already paid", schedule.Key{SequenceIndex: 1}, decimal.Zero, models.ErrDuplicatePayment},
		{"Sequence out of range", schedule.Key{SequenceIndex: 4}, decimal.Zero, models.ErrResourceNotFound},
		{"Down payment on note without one", schedule.Key{SequenceIndex: 0, IsDownPayment: true}, decimal.Zero, models.ErrResourceNotFound},
		{"Negative amount", schedule.Key{SequenceIndex: 2}, decimal.NewFromInt(-5), models.ErrPaymentAmount},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := models.MarkPaid(models.DB, note, tt.key, tt.amount, time.Now())
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}

	payments, err := note.Payments(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), payments, 1, "Failed attempts must not record payments")
}

// TestPaymentUniqueIndex verifies that the database rejects a second payment for
// the same installment even when the check in MarkPaid is bypassed.
func (suite *TestSuiteStandard) TestPaymentUniqueIndex() {
	note := suite.createTestNote(models.Note{})

	first := models.Payment{NoteID: note.ID, SequenceIndex: 3, Amount: decimal.NewFromInt(100), PaidOn: time.Now()}
	require.Nil(suite.T(), models.DB.Create(&first).Error)

	second := models.Payment{NoteID: note.ID, SequenceIndex: 3, Amount: decimal.NewFromInt(100), PaidOn: time.Now()}
	assert.ErrorIs(suite.T(), models.DB.Create(&second).Error, models.ErrDuplicatePayment)
}

func (suite *TestSuiteStandard) TestMarkUnpaid() {
	note := suite.createTestNote(models.Note{})

	_, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 1}, decimal.Zero, time.Now())
	require.Nil(suite.T(), err)
	_, err = models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 2}, decimal.Zero, time.Now())
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), models.MarkUnpaid(models.DB, note.ID, schedule.Key{SequenceIndex: 1}))

	s, err := note.Reconcile(models.DB)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), s.Entries[0].IsPaid)
	assert.True(suite.T(), s.Entries[1].IsPaid)
	assert.Equal(suite.T(), 1, s.PaidCount)

	// Marking an unpaid installment as unpaid is a no-op
	assert.Nil(suite.T(), models.MarkUnpaid(models.DB, note.ID, schedule.Key{SequenceIndex: 1}))
	assert.Nil(suite.T(), models.MarkUnpaid(models.DB, note.ID, schedule.Key{SequenceIndex: 0, IsDownPayment: true}))

	// The installment can be paid again
	_, err = models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 1}, decimal.Zero, time.Now())
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestFullySettledNote() {
	note := suite.createTestNote(models.Note{Value: decimal.NewFromInt(100)})

	for i := 1; i <= 3; i++ {
		_, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: i}, decimal.Zero, time.Now())
		require.Nil(suite.T(), err)
	}

	s, err := note.Reconcile(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), s.Settled())
	assert.True(suite.T(), s.TotalOutstanding.Abs().LessThan(decimal.New(1, -7)), "Outstanding is %s", s.TotalOutstanding)
}

func (suite *TestSuiteStandard) TestMarkPaidDBClosed() {
	note := suite.createTestNote(models.Note{})
	suite.CloseDB()

	_, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 1}, decimal.Zero, time.Now())
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
