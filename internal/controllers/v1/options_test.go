package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/promissoria/backend/internal/controllers/v1"
	"github.com/promissoria/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestOptions verifies the allowed methods of all endpoints. OPTIONS
// requests do not need authentication.
func (suite *TestSuiteStandard) TestOptions() {
	id := uuid.New()

	tests := []struct {
		path  string
		allow string
	}{
		{"/v1", "OPTIONS, GET"},
		{"/v1/auth/register", "OPTIONS, POST"},
		{"/v1/auth/login", "OPTIONS, POST"},
		{"/v1/me", "OPTIONS, GET"},
		{"/v1/clients", "OPTIONS, GET, POST"},
		{fmt.Sprintf("/v1/clients/%s", id), "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("/v1/clients/%s/dashboard", id), "OPTIONS, GET"},
		{"/v1/notes", "OPTIONS, GET, POST"},
		{fmt.Sprintf("/v1/notes/%s", id), "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("/v1/notes/%s/schedule", id), "OPTIONS, GET"},
		{fmt.Sprintf("/v1/notes/%s/carne", id), "OPTIONS, GET"},
		{fmt.Sprintf("/v1/notes/%s/payments", id), "OPTIONS, GET, POST, DELETE"},
		{"/v1/dashboard", "OPTIONS, GET"},
		{"/v1/admin/users", "OPTIONS, GET"},
		{fmt.Sprintf("/v1/admin/users/%s/plan", id), "OPTIONS, PATCH"},
		{"/v1/admin/dashboard", "OPTIONS, GET"},
		{"/v1/admin/settings", "OPTIONS, GET, PATCH"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := suite.request(http.MethodOptions, "http://example.com"+tt.path, "", "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
			assert.Equal(suite.T(), tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsInvalidID() {
	paths := []string{
		"/v1/clients/not-a-uuid",
		"/v1/clients/not-a-uuid/dashboard",
		"/v1/notes/not-a-uuid",
		"/v1/notes/not-a-uuid/schedule",
		"/v1/notes/not-a-uuid/carne",
		"/v1/notes/not-a-uuid/payments",
		"/v1/admin/users/not-a-uuid/plan",
	}

	for _, path := range paths {
		suite.Run(path, func() {
			r := suite.request(http.MethodOptions, "http://example.com"+path, "", "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetRoot() {
	r := suite.request(http.MethodGet, "http://example.com/v1", "", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.Links{
		Register:       "http://example.com/v1/auth/register",
		Login:          "http://example.com/v1/auth/login",
		Me:             "http://example.com/v1/me",
		Clients:        "http://example.com/v1/clients",
		Notes:          "http://example.com/v1/notes",
		Dashboard:      "http://example.com/v1/dashboard",
		AdminUsers:     "http://example.com/v1/admin/users",
		AdminDashboard: "http://example.com/v1/admin/dashboard",
		AdminSettings:  "http://example.com/v1/admin/settings",
	}, response.Links)
}
