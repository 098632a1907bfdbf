package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/reporting"
	"gorm.io/gorm"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
// @Router			/v1/admin/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// aggregate computes the totals for the notes matched by notes and the
// payments of those notes.
//
// Notes are counted if their start date is in the range, payments if they
// were made in the range.
func aggregate(notes *gorm.DB, r reporting.DateRange) (reporting.Totals, error) {
	var n []models.Note
	err := notes.Session(&gorm.Session{}).Find(&n).Error
	if err != nil {
		return reporting.Totals{}, err
	}

	var p []models.Payment
	err = models.DB.
		Where("note_id IN (?)", notes.Session(&gorm.Session{}).Model(&models.Note{}).Select("id")).
		Find(&p).Error
	if err != nil {
		return reporting.Totals{}, err
	}

	return reporting.Aggregate(n, p, r), nil
}

// @Summary		Get dashboard
// @Description	Returns the totals of all notes of the authenticated user. Notes count if their start date is in the range, payments if they were made in the range.
// @Tags			Dashboard
// @Produce		json
// @Security		Bearer
// @Success		200		{object}	DashboardResponse
// @Failure		400		{object}	DashboardResponse
// @Failure		500		{object}	DashboardResponse
// @Param			from	query		string	false	"First day of the range, YYYY-MM-DD"
// @Param			until	query		string	false	"Last day of the range, YYYY-MM-DD"
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query QueryDateRange
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	r, err := query.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	totals, err := aggregate(models.DB.Model(&models.Note{}).Where("user_id = ?", subject(c).ID), r)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	data := newDashboard(totals, query)
	c.JSON(http.StatusOK, DashboardResponse{Data: &data})
}
