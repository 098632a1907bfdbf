package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterNoteRoutes registers the routes for notes with
// the RouterGroup that is passed.
func (co Controller) RegisterNoteRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsNoteList)
		r.GET("", GetNotes)
		r.POST("", CreateNotes)
	}

	// Note with ID
	{
		r.OPTIONS("/:id", OptionsNoteDetail)
		r.GET("/:id", GetNote)
		r.PATCH("/:id", UpdateNote)
		r.DELETE("/:id", DeleteNote)
	}

	co.RegisterScheduleRoutes(r)
	co.RegisterPaymentRoutes(r.Group("/:id/payments"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notes
// @Success		204
// @Router			/v1/notes [options]
func OptionsNoteList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notes
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id} [options]
func OptionsNoteDetail(c *gin.Context) {
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

// @Summary		Create notes
// @Description	Issues new promissory notes
// @Tags			Notes
// @Produce		json
// @Security		Bearer
// @Success		201		{object}	NoteCreateResponse
// @Failure		400		{object}	NoteCreateResponse
// @Failure		404		{object}	NoteCreateResponse
// @Failure		500		{object}	NoteCreateResponse
// @Param			notes	body		[]NoteEditable	true	"Notes"
// @Router			/v1/notes [post]
func CreateNotes(c *gin.Context) {
	var editables []NoteEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NoteCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := NoteCreateResponse{}

	for _, editable := range editables {
		note := editable.model(subject(c).ID)

		err = models.DB.Create(&note).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newNote(c, note)
		r.Data = append(r.Data, NoteResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get notes
// @Description	Returns a list of notes, ordered by their start date
// @Tags			Notes
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	NoteListResponse
// @Failure		400	{object}	NoteListResponse
// @Failure		500	{object}	NoteListResponse
// @Router			/v1/notes [get]
// @Param			client		query	string	false	"Filter by client ID"
// @Param			paymentType	query	string	false	"Filter by payment type"
// @Param			fromDate	query	string	false	"Start date is on or after this date"
// @Param			untilDate	query	string	false	"Start date is on or before this date"
// @Param			offset		query	uint	false	"The offset of the first note returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of notes to return. Defaults to 50."
func GetNotes(c *gin.Context) {
	var filter NoteQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	filterModel := filter.model()

	q := models.DB.
		Order("start_date ASC, created_at ASC").
		Where("user_id = ?", subject(c).ID).
		Where(&filterModel, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("start_date >= ?", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("start_date <= ?", filter.UntilDate)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 notes and set the limit
	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var notes []models.Note
	err = q.Find(&notes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Note, 0)
	for _, note := range notes {
		data = append(data, newNote(c, note))
	}

	c.JSON(http.StatusOK, NoteListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// getNote returns the note with the ID of the request URI if it belongs
// to the authenticated user.
func getNote(c *gin.Context) (models.Note, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	err = models.DB.Where("user_id = ?", subject(c).ID).First(&note, "id = ?", uri.ID.UUID).Error
	if err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// @Summary		Get note
// @Description	Returns a specific note
// @Tags			Notes
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	NoteResponse
// @Failure		400	{object}	NoteResponse
// @Failure		404	{object}	NoteResponse
// @Failure		500	{object}	NoteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id} [get]
func GetNote(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteResponse{
			Error: &s,
		})
		return
	}

	data := newNote(c, note)
	c.JSON(http.StatusOK, NoteResponse{Data: &data})
}

// @Summary		Update note
// @Description	Update an existing note. Only values to be updated need to be specified. Payments for installments that no longer exist are ignored.
// @Tags			Notes
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Success		200		{object}	NoteResponse
// @Failure		400		{object}	NoteResponse
// @Failure		404		{object}	NoteResponse
// @Failure		500		{object}	NoteResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			note	body		NoteEditable	true	"Note"
// @Router			/v1/notes/{id} [patch]
func UpdateNote(c *gin.Context) {
	note, err := getNote(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteResponse{
			Error: &s,
		})
		return
	}

	// Fields that are not sent keep their current values
	editable := newNote(c, note).NoteEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteResponse{
			Error: &s,
		})
		return
	}

	updated := editable.model(note.UserID)
	updated.DefaultModel = note.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NoteResponse{
			Error: &s,
		})
		return
	}

	data := newNote(c, updated)
	c.JSON(http.StatusOK, NoteResponse{Data: &data})
}

// @Summary		Delete note
// @Description	Deletes a note with all of its payments. Deleting a note that does not exist succeeds.
// @Tags			Notes
// @Security		Bearer
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notes/{id} [delete]
func DeleteNote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteNote(models.DB, subject(c).ID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
