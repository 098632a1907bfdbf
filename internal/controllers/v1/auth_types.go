package v1

import (
	"encoding/json"
	"strings"
	"time"
)

// RegisterEditable are the parameters to register a new user.
type RegisterEditable struct {
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`    // E-Mail address, used to log in
	Name     string `json:"name" example:"Ana Souza"`                                    // Name, printed as the creditor on notes
	Password string `json:"password" binding:"required" example:"correct horse battery"` // Password, at least 8 characters
}

// UnmarshalJSON trims the e-mail address so that it is validated the way
// it is stored.
func (e *RegisterEditable) UnmarshalJSON(data []byte) error {
	type editable RegisterEditable
	err := json.Unmarshal(data, (*editable)(e))
	if err != nil {
		return err
	}

	e.Email = strings.TrimSpace(e.Email)
	return nil
}

// Credentials are the parameters to log in.
type Credentials struct {
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery"`
}

type TokenLinks struct {
	Me string `json:"me" example:"https://example.com/api/v1/me"` // The user the token was issued for
}

type Token struct {
	Token     string     `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.Et9HFtf9R3GEMA0IICOfFMVXY7kkTX1wr4qCyhIf58U"` // Bearer token for the Authorization header
	ExpiresAt time.Time  `json:"expiresAt" example:"2024-04-02T19:28:44.491514Z"`                                                      // Time the token expires
	Links     TokenLinks `json:"links"`
}

type TokenResponse struct {
	Data  *Token  `json:"data"`                                                        // Data for the token
	Error *string `json:"error" example:"the e-mail address or password is incorrect"` // The error, if any occurred
}
