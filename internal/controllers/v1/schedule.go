package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
)

// RegisterScheduleRoutes registers the schedule and carnê routes for notes
// with the RouterGroup for notes that is passed.
func (co Controller) RegisterScheduleRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id/schedule", OptionsNoteReadOnly)
	r.GET("/:id/schedule", GetSchedule)

	r.OPTIONS("/:id/carne", OptionsNoteReadOnly)
	r.GET("/:id/carne", GetCarne)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notes
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id}/schedule [options]
// @Router			/v1/notes/{id}/carne [options]
func OptionsNoteReadOnly(c *gin.Context) {
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

// @Summary		Get schedule
// @Description	Returns the installments of a note with their payment status
// @Tags			Notes
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	ScheduleResponse
// @Failure		400	{object}	ScheduleResponse
// @Failure		404	{object}	ScheduleResponse
// @Failure		500	{object}	ScheduleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id}/schedule [get]
func GetSchedule(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	s, err := note.Reconcile(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &e,
		})
		return
	}

	data := newSchedule(c, note, s)
	c.JSON(http.StatusOK, ScheduleResponse{Data: &data})
}

// @Summary		Get carnê
// @Description	Returns the payment slips of a note with amounts and dates formatted for printing
// @Tags			Notes
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	CarneResponse
// @Failure		400	{object}	CarneResponse
// @Failure		404	{object}	CarneResponse
// @Failure		500	{object}	CarneResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id}/carne [get]
func GetCarne(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CarneResponse{
			Error: &s,
		})
		return
	}

	var client models.Client
	err = models.DB.First(&client, "id = ?", note.ClientID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CarneResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", note.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CarneResponse{
			Error: &s,
		})
		return
	}

	s, err := note.Reconcile(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CarneResponse{
			Error: &e,
		})
		return
	}

	data := newCarne(user, client, note, s)
	c.JSON(http.StatusOK, CarneResponse{Data: &data})
}
