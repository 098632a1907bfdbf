package models_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestClientTrimWhitespace() {
	client := suite.createTestClient(models.Client{
		Name:     "  Padaria Pão Quente \t",
		Document: " 12.345.678/0001-90 ",
		Note:     " Pays on Fridays  ",
	})

	assert.Equal(suite.T(), "Padaria Pão Quente", client.Name)
	assert.Equal(suite.T(), "12.345.678/0001-90", client.Document)
	assert.Equal(suite.T(), "Pays on Fridays", client.Note)
}

func (suite *TestSuiteStandard) TestClientNameEmpty() {
	c := models.Client{Name: " "}
	assert.ErrorIs(suite.T(), c.BeforeSave(&gorm.DB{}), models.ErrClientNameEmpty)
}

func (suite *TestSuiteStandard) TestClientNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestClient(models.Client{UserID: user.ID, Name: "José"})

	duplicate := models.Client{UserID: user.ID, Name: "José"}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrClientNameNotUnique)

	// Other users can have a client with the same name
	_ = suite.createTestClient(models.Client{Name: "José"})
}

func (suite *TestSuiteStandard) TestDeleteClientCascades() {
	client := suite.createTestClient(models.Client{})
	note := suite.createTestNote(models.Note{ClientID: client.ID, UserID: client.UserID})
	other := suite.createTestNote(models.Note{UserID: client.UserID})

	_, err := models.MarkPaid(models.DB, note, schedule.Key{SequenceIndex: 1}, decimal.Zero, time.Now())
	require.Nil(suite.T(), err)
	_, err = models.MarkPaid(models.DB, other, schedule.Key{SequenceIndex: 1}, decimal.Zero, time.Now())
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), models.DeleteClient(models.DB, client.UserID, client.ID))

	assert.ErrorIs(suite.T(), models.DB.First(&models.Client{}, "id = ?", client.ID).Error, models.ErrResourceNotFound)
	assert.ErrorIs(suite.T(), models.DB.First(&models.Note{}, "id = ?", note.ID).Error, models.ErrResourceNotFound)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Payment{}).Where("note_id = ?", note.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	// Notes of other clients are untouched
	payments, err := other.Payments(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), payments, 1)

	// Deleting again is a no-op
	assert.Nil(suite.T(), models.DeleteClient(models.DB, client.UserID, client.ID))
}

func (suite *TestSuiteStandard) TestDeleteClientOfOtherUser() {
	client := suite.createTestClient(models.Client{})
	intruder := suite.createTestUser(models.User{})

	require.Nil(suite.T(), models.DeleteClient(models.DB, intruder.ID, client.ID))
	assert.Nil(suite.T(), models.DB.First(&models.Client{}, "id = ?", client.ID).Error)
}

func (suite *TestSuiteStandard) TestDeleteClientNilID() {
	client := suite.createTestClient(models.Client{})
	_ = suite.createTestNote(models.Note{ClientID: client.ID, UserID: client.UserID})

	require.Nil(suite.T(), models.DeleteClient(models.DB, client.UserID, uuid.Nil))

	notes, err := client.Notes(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), notes, 1)
}

func (suite *TestSuiteStandard) TestCreateClient() {
	user := suite.createTestUser(models.User{})
	limits := access.Limits{Free: 1}

	first := models.Client{UserID: user.ID, Name: "Maria"}
	require.Nil(suite.T(), models.CreateClient(models.DB, &first, limits, time.Now()))
	assert.NotEqual(suite.T(), uuid.Nil, first.ID)

	second := models.Client{UserID: user.ID, Name: "João"}
	assert.ErrorIs(suite.T(), models.CreateClient(models.DB, &second, limits, time.Now()), models.ErrClientLimitReached)

	count, err := user.ClientCount(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestCreateClientUnknownUser() {
	client := models.Client{UserID: uuid.New(), Name: "Maria"}
	assert.ErrorIs(suite.T(), models.CreateClient(models.DB, &client, access.Limits{}, time.Now()), models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCreateClientConcurrent() {
	user := suite.createTestUser(models.User{})
	limits := access.Limits{Free: 3}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client := models.Client{UserID: user.ID, Name: fmt.Sprintf("Client %d", i)}
			errs <- models.CreateClient(models.DB, &client, limits, time.Now())
		}(i)
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(suite.T(), err, models.ErrClientLimitReached)
	}

	assert.Equal(suite.T(), 3, created)

	count, err := user.ClientCount(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
}
