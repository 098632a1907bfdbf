package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/models"
)

// ClientEditable represents all user configurable parameters
type ClientEditable struct {
	Name     string `json:"name" example:"Maria Oliveira"`                               // Name of the client, unique for the user
	Document string `json:"document" example:"123.456.789-09" default:""`                // CPF or CNPJ
	Phone    string `json:"phone" example:"+55 11 98765-4321" default:""`                // Phone number
	Email    string `json:"email" example:"maria@example.com" default:""`                // E-Mail address
	Address  string `json:"address" example:"Rua das Flores, 123, São Paulo" default:""` // Address, printed on notes
	Note     string `json:"note" example:"Prefers to pay on Fridays" default:""`         // Notes about the client
}

func (editable ClientEditable) model(userID uuid.UUID) models.Client {
	return models.Client{
		UserID:   userID,
		Name:     editable.Name,
		Document: editable.Document,
		Phone:    editable.Phone,
		Email:    editable.Email,
		Address:  editable.Address,
		Note:     editable.Note,
	}
}

type ClientLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/clients/3b1ea324-d438-4419-882a-2fc91d71772f"`                // The client itself
	Notes     string `json:"notes" example:"https://example.com/api/v1/notes?client=3b1ea324-d438-4419-882a-2fc91d71772f"`          // Notes issued to the client
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/clients/3b1ea324-d438-4419-882a-2fc91d71772f/dashboard"` // Totals for the client
}

type Client struct {
	models.DefaultModel
	ClientEditable
	Links ClientLinks `json:"links"`
}

func newClient(c *gin.Context, model models.Client) Client {
	url := c.GetString(string(models.DBContextURL))

	return Client{
		DefaultModel: model.DefaultModel,
		ClientEditable: ClientEditable{
			Name:     model.Name,
			Document: model.Document,
			Phone:    model.Phone,
			Email:    model.Email,
			Address:  model.Address,
			Note:     model.Note,
		},
		Links: ClientLinks{
			Self:      fmt.Sprintf("%s/v1/clients/%s", url, model.ID),
			Notes:     fmt.Sprintf("%s/v1/notes?client=%s", url, model.ID),
			Dashboard: fmt.Sprintf("%s/v1/clients/%s/dashboard", url, model.ID),
		},
	}
}

type ClientListResponse struct {
	Data       []Client    `json:"data"`                                                          // List of clients
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ClientCreateResponse struct {
	Data  []ClientResponse `json:"data"`                                                          // List of the created clients or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *ClientCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ClientResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ClientResponse struct {
	Data  *Client `json:"data"`                                                          // Data for the client
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ClientQueryFilter struct {
	Name   string `form:"name"`                       // By exact name
	Search string `form:"search" filterField:"false"` // By glob pattern in name, document, phone or e-mail
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first client returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of clients to return. Defaults to 50.
}

func (f ClientQueryFilter) model(userID uuid.UUID) models.Client {
	return models.Client{
		UserID: userID,
		Name:   f.Name,
	}
}

// matches reports if the name, document, phone or e-mail of the client
// match the search pattern.
func (f ClientQueryFilter) matches(client models.Client) bool {
	return matchesSearch(f.Search, client.Name, client.Document, client.Phone, client.Email)
}
