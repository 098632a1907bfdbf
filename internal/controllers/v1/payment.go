package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
)

// RegisterPaymentRoutes registers the routes for payments of a note with
// the RouterGroup that is passed.
func (co Controller) RegisterPaymentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPayments)
	r.GET("", GetPayments)
	r.POST("", MarkPaid)
	r.DELETE("", MarkUnpaid)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id}/payments [options]
func OptionsPayments(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPostDelete(c)
}

// @Summary		Get payments
// @Description	Returns all payments recorded for a note, ordered by the time they were made
// @Tags			Payments
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	PaymentListResponse
// @Failure		400	{object}	PaymentListResponse
// @Failure		404	{object}	PaymentListResponse
// @Failure		500	{object}	PaymentListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id}/payments [get]
func GetPayments(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	payments, err := note.Payments(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Payment, 0, len(payments))
	for _, p := range payments {
		data = append(data, newPayment(c, p))
	}

	c.JSON(http.StatusOK, PaymentListResponse{Data: data})
}

// @Summary		Mark installment as paid
// @Description	Records the payment of an installment. An installment can only be paid once.
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Success		201		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		404		{object}	PaymentResponse
// @Failure		409		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/notes/{id}/payments [post]
func MarkPaid(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var editable PaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	payment, err := models.MarkPaid(models.DB, note, editable.key(), editable.Amount, editable.PaidOn)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	paymentsRecorded.WithLabelValues("paid").Inc()

	data := newPayment(c, payment)
	c.JSON(http.StatusCreated, PaymentResponse{Data: &data})
}

// @Summary		Mark installment as unpaid
// @Description	Removes the payment of an installment. Marking an unpaid installment as unpaid succeeds.
// @Tags			Payments
// @Security		Bearer
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			sequence	query		int		false	"Sequence index of the installment. Required unless downPayment is true."
// @Param			downPayment	query		bool	false	"Is it the down payment?"
// @Router			/v1/notes/{id}/payments [delete]
func MarkUnpaid(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var query PaymentQuery
	err = c.ShouldBindQuery(&query)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	key, err := query.key()
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.MarkUnpaid(models.DB, note.ID, key)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	paymentsRecorded.WithLabelValues("unpaid").Inc()

	c.JSON(http.StatusNoContent, nil)
}
