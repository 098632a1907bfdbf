package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterAdminRoutes registers the routes for administrators with
// the RouterGroup that is passed.
func (co Controller) RegisterAdminRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/users", OptionsUserList)
		r.GET("/users", co.GetUsers)

		r.OPTIONS("/users/:id/plan", OptionsUserPlan)
		r.PATCH("/users/:id/plan", co.UpdateUserPlan)
	}

	{
		r.OPTIONS("/dashboard", OptionsDashboard)
		r.GET("/dashboard", co.GetAdminDashboard)
	}

	{
		r.OPTIONS("/settings", OptionsSettings)
		r.GET("/settings", co.GetSettings)
		r.PATCH("/settings", co.UpdateSettings)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Administration
// @Success		204
// @Router			/v1/admin/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Administration
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/admin/users/{id}/plan [options]
func OptionsUserPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Administration
// @Success		204
// @Router			/v1/admin/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get users
// @Description	Returns a list of all users, ordered by e-mail address
// @Tags			Administration
// @Produce		json
// @Security		Bearer
// @Success		200		{object}	UserListResponse
// @Failure		400		{object}	UserListResponse
// @Failure		403		{object}	httpError
// @Failure		500		{object}	UserListResponse
// @Param			plan	query		string	false	"Filter by stored plan"
// @Param			role	query		string	false	"Filter by role"
// @Param			search	query		string	false	"Search e-mail and name. Supports * as wildcard."
// @Param			offset	query		uint	false	"The offset of the first user returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of users to return. Defaults to 50."
// @Router			/v1/admin/users [get]
func (co Controller) GetUsers(c *gin.Context) {
	var filter UserQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	filterModel := filter.model()

	var users []models.User
	err = models.DB.
		Where(&filterModel, queryFields...).
		Order("email ASC").
		Find(&users).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &s,
		})
		return
	}

	matching := make([]models.User, 0, len(users))
	for _, user := range users {
		if matchesSearch(filter.Search, user.Email, user.Name) {
			matching = append(matching, user)
		}
	}

	// Default to 50 users and set the limit
	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	now := co.now()
	data := make([]User, 0)
	for _, user := range paginate(matching, filter.Offset, limit) {
		apiResource, err := newUser(c, user, now)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), UserListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, UserListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matching)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Change plan
// @Description	Assigns a plan to a user. Administrators cannot change their own plan or the plan of other administrators.
// @Tags			Administration
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		403		{object}	UserResponse
// @Failure		404		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			plan	body		PlanEditable	true	"Plan"
// @Router			/v1/admin/users/{id}/plan [patch]
func (co Controller) UpdateUserPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var editable PlanEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	now := co.now()
	user, err := models.ChangePlan(models.DB, subject(c), uri.ID.UUID, editable.Plan, editable.ExpiresAt, now)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data, err := newUser(c, user, now)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Get admin dashboard
// @Description	Returns the totals of the notes of all users. Notes count if their start date is in the range, payments if they were made in the range.
// @Tags			Administration
// @Produce		json
// @Security		Bearer
// @Success		200		{object}	AdminDashboardResponse
// @Failure		400		{object}	AdminDashboardResponse
// @Failure		403		{object}	httpError
// @Failure		500		{object}	AdminDashboardResponse
// @Param			from	query		string	false	"First day of the range, YYYY-MM-DD"
// @Param			until	query		string	false	"Last day of the range, YYYY-MM-DD"
// @Router			/v1/admin/dashboard [get]
func (co Controller) GetAdminDashboard(c *gin.Context) {
	var query QueryDateRange
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AdminDashboardResponse{
			Error: &s,
		})
		return
	}

	r, err := query.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AdminDashboardResponse{
			Error: &s,
		})
		return
	}

	totals, err := aggregate(models.DB.Model(&models.Note{}), r)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AdminDashboardResponse{
			Error: &s,
		})
		return
	}

	data := AdminDashboard{Dashboard: newDashboard(totals, query)}

	err = models.DB.Model(&models.User{}).Count(&data.UserCount).Error
	if err == nil {
		err = models.DB.Model(&models.User{}).
			Where("plan = ? AND (plan_expiration_date IS NULL OR plan_expiration_date > ?)", access.Pro, co.now().UTC()).
			Count(&data.ProUserCount).Error
	}
	if err == nil {
		err = models.DB.Model(&models.Client{}).Count(&data.ClientCount).Error
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AdminDashboardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AdminDashboardResponse{Data: &data})
}

// @Summary		Get settings
// @Description	Returns the application settings
// @Tags			Administration
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	SettingsResponse
// @Failure		403	{object}	httpError
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/admin/settings [get]
func (co Controller) GetSettings(c *gin.Context) {
	settings, err := co.settings()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	data := newSettings(c, settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}

// @Summary		Update settings
// @Description	Update the application settings. Only values to be updated need to be specified.
// @Tags			Administration
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		403			{object}	httpError
// @Failure		500			{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/admin/settings [patch]
func (co Controller) UpdateSettings(c *gin.Context) {
	settings, err := co.settings()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	// Fields that are not sent keep their current values
	editable := newSettings(c, settings).SettingsEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	settings.FreeClientLimit = editable.FreeClientLimit
	settings.ProClientLimit = editable.ProClientLimit
	settings.SupportPhone = editable.SupportPhone

	err = models.DB.Save(&settings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	data := newSettings(c, settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}
