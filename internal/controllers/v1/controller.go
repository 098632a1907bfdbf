// Package v1 implements the HTTP API for clients, promissory notes and
// their payments.
package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/auth"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
)

// Controller carries the dependencies of the handlers that are not
// available through the models package.
type Controller struct {
	Issuer   auth.Issuer
	Defaults models.Settings  // Settings used until an administrator changes them
	Now      func() time.Time // Clock used for plan decisions, defaults to time.Now
}

func (co Controller) now() time.Time {
	if co.Now == nil {
		return time.Now()
	}

	return co.Now()
}

// settings returns the current settings.
func (co Controller) settings() (models.Settings, error) {
	return models.GetSettings(models.DB, co.Defaults)
}

// subject returns the authenticated user of the request.
func subject(c *gin.Context) access.Subject {
	s, _ := auth.Subject(c)
	return s
}

// RegisterRoutes registers all routes of the v1 API with the RouterGroup
// that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsRoot)
	r.GET("", GetRoot)

	co.RegisterAuthRoutes(r.Group("/auth"))

	authenticated := r.Group("", auth.Middleware(co.Issuer))
	co.RegisterMeRoutes(authenticated.Group("/me"))
	co.RegisterClientRoutes(authenticated.Group("/clients"))
	co.RegisterNoteRoutes(authenticated.Group("/notes"))
	co.RegisterDashboardRoutes(authenticated.Group("/dashboard"))

	co.RegisterAdminRoutes(authenticated.Group("/admin", auth.RequireRole(access.RoleAdmin)))
}

type Links struct {
	Register       string `json:"register" example:"https://example.com/api/v1/auth/register"`         // Registration of new users
	Login          string `json:"login" example:"https://example.com/api/v1/auth/login"`               // Login for existing users
	Me             string `json:"me" example:"https://example.com/api/v1/me"`                          // The authenticated user
	Clients        string `json:"clients" example:"https://example.com/api/v1/clients"`                // Clients of the authenticated user
	Notes          string `json:"notes" example:"https://example.com/api/v1/notes"`                    // Notes of the authenticated user
	Dashboard      string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`            // Dashboard of the authenticated user
	AdminUsers     string `json:"adminUsers" example:"https://example.com/api/v1/admin/users"`         // User management
	AdminDashboard string `json:"adminDashboard" example:"https://example.com/api/v1/admin/dashboard"` // Dashboard for all users
	AdminSettings  string `json:"adminSettings" example:"https://example.com/api/v1/admin/settings"`   // Application settings
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Register:       url + "/auth/register",
			Login:          url + "/auth/login",
			Me:             url + "/me",
			Clients:        url + "/clients",
			Notes:          url + "/notes",
			Dashboard:      url + "/dashboard",
			AdminUsers:     url + "/admin/users",
			AdminDashboard: url + "/admin/dashboard",
			AdminSettings:  url + "/admin/settings",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
