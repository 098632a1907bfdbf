package v1_test

import (
	"net/http"
	"time"

	"github.com/promissoria/backend/internal/auth"
	v1 "github.com/promissoria/backend/internal/controllers/v1"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegister() {
	r := suite.request(http.MethodPost, "http://example.com/v1/auth/register", v1.RegisterEditable{
		Email:    "  Ana@Example.com ",
		Name:     "Ana Souza",
		Password: testPassword,
	}, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TokenResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.NotEmpty(suite.T(), response.Data.Token)
	assert.WithinDuration(suite.T(), time.Now().Add(time.Hour), response.Data.ExpiresAt, time.Minute)
	assert.Equal(suite.T(), "http://example.com/v1/me", response.Data.Links.Me)

	var user models.User
	assert.Nil(suite.T(), models.DB.First(&user, "email = ?", "ana@example.com").Error, "E-Mail addresses are normalized")
}

func (suite *TestSuiteStandard) TestRegisterErrors() {
	_ = suite.request(http.MethodPost, "http://example.com/v1/auth/register", v1.RegisterEditable{
		Email:    "taken@example.com",
		Password: testPassword,
	}, "")

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Broken body", `{ "email": 2 }`, http.StatusBadRequest, ""},
		{"Invalid e-mail", v1.RegisterEditable{Email: "not an e-mail", Password: testPassword}, http.StatusBadRequest, "Invalid email format"},
		{"Blank e-mail", v1.RegisterEditable{Email: "   ", Password: testPassword}, http.StatusBadRequest, "Email is required"},
		{"No password", v1.RegisterEditable{Email: "nopassword@example.com"}, http.StatusBadRequest, "Password is required"},
		{"Short password", v1.RegisterEditable{Email: "short@example.com", Password: "short"}, http.StatusBadRequest, auth.ErrPasswordTooShort.Error()},
		{"E-Mail in use", v1.RegisterEditable{Email: "TAKEN@example.com", Password: testPassword}, http.StatusConflict, models.ErrEmailInUse.Error()},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/v1/auth/register", tt.body, "")
			test.AssertHTTPStatus(suite.T(), &r, tt.status)

			var response v1.TokenResponse
			test.DecodeResponse(suite.T(), &r, &response)
			assert.Nil(suite.T(), response.Data)

			if tt.err != "" {
				assert.Contains(suite.T(), *response.Error, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestLogin() {
	user, _ := suite.registerUser()

	r := suite.request(http.MethodPost, "http://example.com/v1/auth/login", v1.Credentials{
		Email:    user.Email,
		Password: testPassword,
	}, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TokenResponse
	test.DecodeResponse(suite.T(), &r, &response)

	subject, err := suite.controller.Issuer.Parse(response.Data.Token)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, subject.ID)
	assert.Equal(suite.T(), user.Role, subject.Role)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	user, _ := suite.registerUser()

	tests := []struct {
		name        string
		credentials any
		status      int
	}{
		{"Wrong password", v1.Credentials{Email: user.Email, Password: "not the password"}, http.StatusUnauthorized},
		{"Unknown user", v1.Credentials{Email: "nobody@example.com", Password: testPassword}, http.StatusUnauthorized},
		{"No password", v1.Credentials{Email: user.Email}, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/v1/auth/login", tt.credentials, "")
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}
}

// TestLoginMessage verifies that unknown users and wrong passwords cannot
// be told apart.
func (suite *TestSuiteStandard) TestLoginMessage() {
	user, _ := suite.registerUser()

	wrongPassword := suite.request(http.MethodPost, "http://example.com/v1/auth/login", v1.Credentials{Email: user.Email, Password: "not the password"}, "")
	unknownUser := suite.request(http.MethodPost, "http://example.com/v1/auth/login", v1.Credentials{Email: "nobody@example.com", Password: testPassword}, "")

	assert.Equal(suite.T(), wrongPassword.Body.String(), unknownUser.Body.String())
}

func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	other := v1.Controller{Issuer: auth.NewIssuer("another secret", time.Hour)}
	token, _, err := other.Issuer.Issue(models.User{Role: "USER"}.Subject(), time.Now())
	assert.Nil(suite.T(), err)

	tests := []struct {
		name  string
		token string
	}{
		{"No token", ""},
		{"Garbage", "not a token"},
		{"Other secret", token},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, "http://example.com/v1/clients", "", tt.token)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterDBClosed() {
	suite.CloseDB()

	r := suite.request(http.MethodPost, "http://example.com/v1/auth/register", v1.RegisterEditable{
		Email:    "closed@example.com",
		Password: testPassword,
	}, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
