package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/models"
)

type UserLinks struct {
	Plan string `json:"plan" example:"https://example.com/api/v1/admin/users/3b1ea324-d438-4419-882a-2fc91d71772f/plan"` // Endpoint to change the plan
}

// User is a user as seen by administrators.
type User struct {
	models.DefaultModel
	Email              string      `json:"email" example:"ana@example.com"`
	Name               string      `json:"name" example:"Ana Souza"`
	Role               access.Role `json:"role" example:"USER"`
	Plan               access.Plan `json:"plan" example:"PRO"`                                // The stored plan
	PlanExpirationDate *time.Time  `json:"planExpirationDate" example:"2024-05-02T00:00:00Z"` // Expiration of the Pro plan
	EffectivePlan      access.Plan `json:"effectivePlan" example:"PRO"`                       // The plan in effect right now
	ClientCount        int64       `json:"clientCount" example:"12"`                          // Number of clients
	Links              UserLinks   `json:"links"`
}

func newUser(c *gin.Context, model models.User, now time.Time) (User, error) {
	url := c.GetString(string(models.DBContextURL))

	count, err := model.ClientCount(models.DB)
	if err != nil {
		return User{}, err
	}

	return User{
		DefaultModel:       model.DefaultModel,
		Email:              model.Email,
		Name:               model.Name,
		Role:               model.Role,
		Plan:               model.Plan,
		PlanExpirationDate: model.PlanExpirationDate,
		EffectivePlan:      model.PlanState().Effective(now),
		ClientCount:        count,
		Links: UserLinks{
			Plan: fmt.Sprintf("%s/v1/admin/users/%s/plan", url, model.ID),
		},
	}, nil
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                       // List of users
	Error      *string     `json:"error" example:"you are not allowed to perform this action"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                 // Pagination information
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                       // Data for the user
	Error *string `json:"error" example:"you are not allowed to perform this action"` // The error, if any occurred
}

type UserQueryFilter struct {
	Plan   access.Plan `form:"plan"`                       // By stored plan
	Role   access.Role `form:"role"`                       // By role
	Search string      `form:"search" filterField:"false"` // By glob pattern in e-mail or name
	Offset uint        `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit  int         `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

func (f UserQueryFilter) model() models.User {
	return models.User{
		Plan: f.Plan,
		Role: f.Role,
	}
}

// PlanEditable are the parameters to change the plan of a user.
type PlanEditable struct {
	Plan      access.Plan `json:"plan" binding:"required" example:"PRO"`    // FREE or PRO
	ExpiresAt *time.Time  `json:"expiresAt" example:"2024-05-02T00:00:00Z"` // Expiration of the Pro plan. Defaults to 30 days from now. Ignored for the Free plan.
}

// SettingsEditable represents all configurable application settings
type SettingsEditable struct {
	FreeClientLimit int    `json:"freeClientLimit" binding:"min=0" example:"5"`         // Maximum number of clients on the Free plan. 0 means unlimited.
	ProClientLimit  int    `json:"proClientLimit" binding:"min=0" example:"0"`          // Maximum number of clients on the Pro plan. 0 means unlimited.
	SupportPhone    string `json:"supportPhone" example:"+55 11 99999-9999" default:""` // Chat number users contact to upgrade their plan
}

type SettingsLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/admin/settings"`
}

type Settings struct {
	SettingsEditable
	UpdatedAt time.Time     `json:"updatedAt" example:"2024-04-17T20:14:01.048145Z"` // Last time the settings were updated
	Links     SettingsLinks `json:"links"`
}

func newSettings(c *gin.Context, model models.Settings) Settings {
	return Settings{
		SettingsEditable: SettingsEditable{
			FreeClientLimit: model.FreeClientLimit,
			ProClientLimit:  model.ProClientLimit,
			SupportPhone:    model.SupportPhone,
		},
		UpdatedAt: model.UpdatedAt,
		Links: SettingsLinks{
			Self: c.GetString(string(models.DBContextURL)) + "/v1/admin/settings",
		},
	}
}

type SettingsResponse struct {
	Data  *Settings `json:"data"`                                                                           // Data for the settings
	Error *string   `json:"error" example:"the body of your request contains invalid or un-parseable data"` // The error, if any occurred
}
