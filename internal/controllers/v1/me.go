package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
)

// RegisterMeRoutes registers the routes for the authenticated user with
// the RouterGroup that is passed.
func (co Controller) RegisterMeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMe)
	r.GET("", co.GetMe)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/me [options]
func OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get authenticated user
// @Description	Returns the authenticated user with their plan and client limit
// @Tags			Users
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	MeResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	MeResponse
// @Failure		500	{object}	MeResponse
// @Router			/v1/me [get]
func (co Controller) GetMe(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", subject(c).ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MeResponse{
			Error: &s,
		})
		return
	}

	settings, err := co.settings()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MeResponse{
			Error: &s,
		})
		return
	}

	data, err := newMe(c, user, settings, co.now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MeResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MeResponse{Data: &data})
}
