package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/models"
)

type MeLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/me"`
	Clients   string `json:"clients" example:"https://example.com/api/v1/clients"`
	Notes     string `json:"notes" example:"https://example.com/api/v1/notes"`
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`
	Upgrade   string `json:"upgrade" example:"https://wa.me/5511999999999?text=Ol%C3%A1"` // Chat link to request the Pro plan. Empty if no support contact is configured.
}

// Me is the authenticated user with their plan and its limits.
type Me struct {
	models.DefaultModel
	Email              string      `json:"email" example:"ana@example.com"`
	Name               string      `json:"name" example:"Ana Souza"`
	Role               access.Role `json:"role" example:"USER"`
	Plan               access.Plan `json:"plan" example:"PRO"`                                // The stored plan
	PlanExpirationDate *time.Time  `json:"planExpirationDate" example:"2024-05-02T00:00:00Z"` // Expiration of the Pro plan
	EffectivePlan      access.Plan `json:"effectivePlan" example:"FREE"`                      // The plan in effect right now, taking expiration into account
	ClientCount        int64       `json:"clientCount" example:"3"`                           // Number of clients
	ClientLimit        int         `json:"clientLimit" example:"5"`                           // Maximum number of clients for the effective plan. 0 means unlimited.
	Links              MeLinks     `json:"links"`
}

func newMe(c *gin.Context, model models.User, settings models.Settings, now time.Time) (Me, error) {
	url := c.GetString(string(models.DBContextURL))

	count, err := model.ClientCount(models.DB)
	if err != nil {
		return Me{}, err
	}

	effective := model.PlanState().Effective(now)

	return Me{
		DefaultModel:       model.DefaultModel,
		Email:              model.Email,
		Name:               model.Name,
		Role:               model.Role,
		Plan:               model.Plan,
		PlanExpirationDate: model.PlanExpirationDate,
		EffectivePlan:      effective,
		ClientCount:        count,
		ClientLimit:        max(settings.Limits().Limit(effective), 0),
		Links: MeLinks{
			Self:      fmt.Sprintf("%s/v1/me", url),
			Clients:   fmt.Sprintf("%s/v1/clients", url),
			Notes:     fmt.Sprintf("%s/v1/notes", url),
			Dashboard: fmt.Sprintf("%s/v1/dashboard", url),
			Upgrade:   settings.UpgradeLink(model.Email),
		},
	}, nil
}

type MeResponse struct {
	Data  *Me     `json:"data"`                                                 // Data for the user
	Error *string `json:"error" example:"there is no user matching your query"` // The error, if any occurred
}
