package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	v1 "github.com/promissoria/backend/internal/controllers/v1"
	"github.com/promissoria/backend/internal/schedule"
	"github.com/promissoria/backend/internal/types"
	"github.com/promissoria/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateNote() {
	_, token := suite.registerUser()
	client := suite.createTestClient(token, v1.ClientEditable{})

	note := suite.createTestNote(token, v1.NoteEditable{
		ClientID:         client.ID,
		Description:      "Sofá de 3 lugares",
		IssueDate:        types.NewDate(2024, 1, 15),
		IssuePlace:       "São Paulo",
		PaymentType:      schedule.Installment,
		Value:            decimal.NewFromInt(1200),
		InstallmentCount: 3,
		HasDownPayment:   true,
		DownPaymentValue: decimal.NewFromInt(300),
		StartDate:        types.NewDate(2024, 1, 31),
	})

	assert.Equal(suite.T(), client.ID, note.ClientID)
	assert.Equal(suite.T(), "Sofá de 3 lugares", note.Description)
	assert.Equal(suite.T(), types.NewDate(2024, 1, 15), note.IssueDate)
	assert.True(suite.T(), decimal.NewFromInt(1200).Equal(note.Value))
	assert.True(suite.T(), note.HasDownPayment)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/notes/%s", note.ID), note.Links.Self)
	assert.Equal(suite.T(), client.Links.Self, note.Links.Client)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/notes/%s/schedule", note.ID), note.Links.Schedule)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/notes/%s/carne", note.ID), note.Links.Carne)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/notes/%s/payments", note.ID), note.Links.Payments)
}

func (suite *TestSuiteStandard) TestCreateNoteLumpSum() {
	_, token := suite.registerUser()

	note := suite.createTestNote(token, v1.NoteEditable{
		PaymentType:      schedule.LumpSum,
		InstallmentCount: 12,
		HasDownPayment:   true,
		DownPaymentValue: decimal.NewFromInt(50),
	})

	assert.Equal(suite.T(), 1, note.InstallmentCount)
	assert.False(suite.T(), note.HasDownPayment)
	assert.True(suite.T(), note.DownPaymentValue.IsZero())
	assert.Equal(suite.T(), types.DateOf(time.Now()), note.IssueDate, "Issue date defaults to today")
}

func (suite *TestSuiteStandard) TestCreateNotesErrors() {
	_, token := suite.registerUser()
	_, otherToken := suite.registerUser()
	client := suite.createTestClient(token, v1.ClientEditable{})
	otherClient := suite.createTestClient(otherToken, v1.ClientEditable{})

	valid := v1.NoteEditable{
		ClientID:    client.ID,
		PaymentType: schedule.LumpSum,
		Value:       decimal.NewFromInt(100),
		StartDate:   types.NewDate(2024, 1, 1),
	}

	withoutClient := valid
	withoutClient.ClientID = uuid.New()

	ofOtherUser := valid
	ofOtherUser.ClientID = otherClient.ID

	noValue := valid
	noValue.Value = decimal.Zero

	negative := valid
	negative.Value = decimal.NewFromInt(-100)

	noStart := valid
	noStart.StartDate = types.Date{}

	unknownType := valid
	unknownType.PaymentType = "WEEKLY"

	noInstallments := valid
	noInstallments.PaymentType = schedule.Installment

	downPaymentTooLarge := valid
	downPaymentTooLarge.PaymentType = schedule.Installment
	downPaymentTooLarge.InstallmentCount = 2
	downPaymentTooLarge.HasDownPayment = true
	downPaymentTooLarge.DownPaymentValue = decimal.NewFromInt(100)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken body", `[{ "value": "abc" }]`, http.StatusBadRequest},
		{"Unknown client", []v1.NoteEditable{withoutClient}, http.StatusNotFound},
		{"Client of other user", []v1.NoteEditable{ofOtherUser}, http.StatusNotFound},
		{"No value", []v1.NoteEditable{noValue}, http.StatusBadRequest},
		{"Negative value", []v1.NoteEditable{negative}, http.StatusBadRequest},
		{"No start date", []v1.NoteEditable{noStart}, http.StatusBadRequest},
		{"Unknown payment type", []v1.NoteEditable{unknownType}, http.StatusBadRequest},
		{"No installments", []v1.NoteEditable{noInstallments}, http.StatusBadRequest},
		{"Down payment not below value", []v1.NoteEditable{downPaymentTooLarge}, http.StatusBadRequest},
		{"Highest status wins", []v1.NoteEditable{valid, noValue, withoutClient}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/v1/notes", tt.body, token)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGetNotes() {
	_, token := suite.registerUser()
	_, otherToken := suite.registerUser()
	maria := suite.createTestClient(token, v1.ClientEditable{Name: "Maria"})
	joao := suite.createTestClient(token, v1.ClientEditable{Name: "João"})

	suite.createTestNote(token, v1.NoteEditable{ClientID: maria.ID, Description: "January", StartDate: types.NewDate(2024, 1, 10)})
	suite.createTestNote(token, v1.NoteEditable{ClientID: maria.ID, Description: "March", PaymentType: schedule.LumpSum, StartDate: types.NewDate(2024, 3, 10)})
	suite.createTestNote(token, v1.NoteEditable{ClientID: joao.ID, Description: "February", StartDate: types.NewDate(2024, 2, 10)})
	suite.createTestNote(otherToken, v1.NoteEditable{Description: "Other user"})

	tests := []struct {
		name         string
		query        string
		descriptions []string
		total        int64
	}{
		{"All", "", []string{"January", "February", "March"}, 3},
		{"By client", fmt.Sprintf("client=%s", maria.ID), []string{"January", "March"}, 2},
		{"By payment type", "paymentType=LUMP_SUM", []string{"March"}, 1},
		{"From date", "fromDate=2024-02-10", []string{"February", "March"}, 2},
		{"Until date", "untilDate=2024-02-09", []string{"January"}, 1},
		{"Date range", "fromDate=2024-02-01&untilDate=2024-02-29", []string{"February"}, 1},
		{"Limit", "limit=1", []string{"January"}, 3},
		{"Offset", "offset=1&limit=1", []string{"February"}, 3},
		{"Unlimited", "limit=-1", []string{"January", "February", "March"}, 3},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/notes?%s", tt.query), "", token)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response v1.NoteListResponse
			test.DecodeResponse(suite.T(), &r, &response)

			descriptions := make([]string, 0)
			for _, n := range response.Data {
				descriptions = append(descriptions, n.Description)
			}

			assert.Equal(suite.T(), tt.descriptions, descriptions)
			assert.Equal(suite.T(), tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestGetNotesInvalidQuery() {
	_, token := suite.registerUser()

	for _, query := range []string{"client=not-a-uuid", "fromDate=yesterday"} {
		suite.Run(query, func() {
			r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/notes?%s", query), "", token)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetNote() {
	_, token := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{Description: "Geladeira"})

	r := suite.request(http.MethodGet, note.Links.Self, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NoteResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), note.ID, response.Data.ID)
	assert.Equal(suite.T(), "Geladeira", response.Data.Description)

	r = suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/notes/%s", uuid.New()), "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodGet, "http://example.com/v1/notes/not-a-uuid", "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestNoteOwnership() {
	_, token := suite.registerUser()
	_, intruder := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{})

	tests := []struct {
		name   string
		method string
		url    string
		body   any
		status int
	}{
		{"Get", http.MethodGet, note.Links.Self, "", http.StatusNotFound},
		{"Update", http.MethodPatch, note.Links.Self, map[string]any{"description": "Stolen"}, http.StatusNotFound},
		{"Schedule", http.MethodGet, note.Links.Schedule, "", http.StatusNotFound},
		{"Carne", http.MethodGet, note.Links.Carne, "", http.StatusNotFound},
		{"Payments", http.MethodGet, note.Links.Payments, "", http.StatusNotFound},
		{"Mark paid", http.MethodPost, note.Links.Payments, v1.PaymentEditable{SequenceIndex: 1}, http.StatusNotFound},
		{"Mark unpaid", http.MethodDelete, note.Links.Payments + "?sequence=1", "", http.StatusNotFound},
		{"Delete", http.MethodDelete, note.Links.Self, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(tt.method, tt.url, tt.body, intruder)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	r := suite.request(http.MethodGet, note.Links.Self, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestUpdateNote() {
	_, token := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{Description: "Sofá"})
	suite.markPaid(token, note, 1, false, time.Now())

	r := suite.request(http.MethodPatch, note.Links.Self, map[string]any{
		"value":            "600",
		"installmentCount": 6,
	}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NoteResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Sofá", response.Data.Description, "Fields not sent keep their values")
	assert.True(suite.T(), decimal.NewFromInt(600).Equal(response.Data.Value))
	assert.Equal(suite.T(), 6, response.Data.InstallmentCount)

	r = suite.request(http.MethodGet, note.Links.Schedule, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s v1.ScheduleResponse
	test.DecodeResponse(suite.T(), &r, &s)
	assert.Len(suite.T(), s.Data.Entries, 6)
	assert.Equal(suite.T(), 1, s.Data.PaidCount, "Payments are kept when the schedule changes")
}

func (suite *TestSuiteStandard) TestUpdateNoteShrinkSchedule() {
	_, token := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{})
	suite.markPaid(token, note, 3, false, time.Now())

	r := suite.request(http.MethodPatch, note.Links.Self, map[string]any{"installmentCount": 2}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, note.Links.Schedule, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s v1.ScheduleResponse
	test.DecodeResponse(suite.T(), &r, &s)
	assert.Len(suite.T(), s.Data.Entries, 2)
	assert.Equal(suite.T(), 0, s.Data.PaidCount, "Payments for installments that no longer exist are ignored")
	assert.True(suite.T(), s.Data.TotalReceived.IsZero())
}

func (suite *TestSuiteStandard) TestUpdateNoteErrors() {
	_, token := suite.registerUser()
	_, otherToken := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{})
	otherClient := suite.createTestClient(otherToken, v1.ClientEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "installmentCount": "many" }`, http.StatusBadRequest},
		{"Invalid terms", map[string]any{"installmentCount": 0}, http.StatusBadRequest},
		{"Client of other user", map[string]any{"clientId": otherClient.ID}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPatch, note.Links.Self, tt.body, token)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestDeleteNote() {
	_, token := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{})
	suite.markPaid(token, note, 1, false, time.Now())

	r := suite.request(http.MethodDelete, note.Links.Self, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, note.Links.Self, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The client is kept
	r = suite.request(http.MethodGet, note.Links.Client, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodDelete, note.Links.Self, "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestNotesDBClosed() {
	_, token := suite.registerUser()
	note := suite.createTestNote(token, v1.NoteEditable{})
	suite.CloseDB()

	for _, url := range []string{"http://example.com/v1/notes", note.Links.Self} {
		r := suite.request(http.MethodGet, url, "", token)
		require.Equal(suite.T(), http.StatusInternalServerError, r.Code, "URL: %s", url)
	}
}
