package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/ledger"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/reporting"
	"golang.org/x/exp/slices"
)

// RegisterClientRoutes registers the routes for clients with
// the RouterGroup that is passed.
func (co Controller) RegisterClientRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsClientList)
		r.GET("", GetClients)
		r.POST("", co.CreateClients)
	}

	// Client with ID
	{
		r.OPTIONS("/:id", OptionsClientDetail)
		r.GET("/:id", GetClient)
		r.PATCH("/:id", UpdateClient)
		r.DELETE("/:id", DeleteClient)

		r.OPTIONS("/:id/dashboard", OptionsClientDashboard)
		r.GET("/:id/dashboard", GetClientDashboard)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Router			/v1/clients [options]
func OptionsClientList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [options]
func OptionsClientDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/dashboard [options]
func OptionsClientDashboard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create clients
// @Description	Creates new clients. Each client counts towards the client limit of the plan in effect.
// @Tags			Clients
// @Produce		json
// @Security		Bearer
// @Success		201		{object}	ClientCreateResponse
// @Failure		400		{object}	ClientCreateResponse
// @Failure		403		{object}	ClientCreateResponse
// @Failure		409		{object}	ClientCreateResponse
// @Failure		500		{object}	ClientCreateResponse
// @Param			clients	body		[]ClientEditable	true	"Clients"
// @Router			/v1/clients [post]
func (co Controller) CreateClients(c *gin.Context) {
	var editables []ClientEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ClientCreateResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", subject(c).ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ClientCreateResponse{
			Error: &e,
		})
		return
	}

	settings, err := co.settings()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ClientCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ClientCreateResponse{}

	for _, editable := range editables {
		client := editable.model(user.ID)
		err = models.CreateClient(models.DB, &client, settings.Limits(), co.now())
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newClient(c, client)
		r.Data = append(r.Data, ClientResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get clients
// @Description	Returns a list of clients
// @Tags			Clients
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	ClientListResponse
// @Failure		400	{object}	ClientListResponse
// @Failure		500	{object}	ClientListResponse
// @Router			/v1/clients [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search name, document, phone and e-mail. Supports * as wildcard."
// @Param			offset	query	uint	false	"The offset of the first client returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of clients to return. Defaults to 50."
func GetClients(c *gin.Context) {
	var filter ClientQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var clients []models.Client
	err = models.DB.
		Where("user_id = ?", subject(c).ID).
		Where(filter.model(subject(c).ID), queryFields...).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &s,
		})
		return
	}

	matching := make([]models.Client, 0, len(clients))
	for _, client := range clients {
		if filter.matches(client) {
			matching = append(matching, client)
		}
	}

	// Default to 50 clients and set the limit
	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	data := make([]Client, 0)
	for _, client := range paginate(matching, filter.Offset, limit) {
		data = append(data, newClient(c, client))
	}

	c.JSON(http.StatusOK, ClientListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matching)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// getClient returns the client with the ID of the request URI if it belongs
// to the authenticated user.
func getClient(c *gin.Context) (models.Client, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Client{}, err
	}

	var client models.Client
	err = models.DB.Where("user_id = ?", subject(c).ID).First(&client, "id = ?", uri.ID.UUID).Error
	if err != nil {
		return models.Client{}, err
	}

	return client, nil
}

// @Summary		Get client
// @Description	Returns a specific client
// @Tags			Clients
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	ClientResponse
// @Failure		400	{object}	ClientResponse
// @Failure		404	{object}	ClientResponse
// @Failure		500	{object}	ClientResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [get]
func GetClient(c *gin.Context) {
	client, err := getClient(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	data := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}

// @Summary		Update client
// @Description	Update an existing client. Only values to be updated need to be specified.
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Success		200		{object}	ClientResponse
// @Failure		400		{object}	ClientResponse
// @Failure		404		{object}	ClientResponse
// @Failure		409		{object}	ClientResponse
// @Failure		500		{object}	ClientResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			client	body		ClientEditable	true	"Client"
// @Router			/v1/clients/{id} [patch]
func UpdateClient(c *gin.Context) {
	client, err := getClient(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	// Fields that are not sent keep their current values
	editable := newClient(c, client).ClientEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	updated := editable.model(client.UserID)
	updated.DefaultModel = client.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	data := newClient(c, updated)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}

// @Summary		Delete client
// @Description	Deletes a client with all of its notes and their payments. Deleting a client that does not exist succeeds.
// @Tags			Clients
// @Security		Bearer
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [delete]
func DeleteClient(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteClient(models.DB, subject(c).ID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get client dashboard
// @Description	Returns the totals of all notes of the client and the payment status of every note
// @Tags			Clients
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	ClientDashboardResponse
// @Failure		400	{object}	ClientDashboardResponse
// @Failure		404	{object}	ClientDashboardResponse
// @Failure		500	{object}	ClientDashboardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/dashboard [get]
func GetClientDashboard(c *gin.Context) {
	client, err := getClient(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientDashboardResponse{
			Error: &s,
		})
		return
	}

	notes, err := client.Notes(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientDashboardResponse{
			Error: &s,
		})
		return
	}

	schedules := make([]ledger.Schedule, 0, len(notes))
	summaries := make([]NoteSummary, 0, len(notes))
	for _, note := range notes {
		s, err := note.Reconcile(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ClientDashboardResponse{
				Error: &e,
			})
			return
		}

		schedules = append(schedules, s)
		summaries = append(summaries, newNoteSummary(c, note, s))
	}

	c.JSON(http.StatusOK, ClientDashboardResponse{
		Data: &ClientDashboard{
			Client: newClient(c, client),
			Totals: reporting.Rollup(schedules),
			Notes:  summaries,
		},
	})
}
