package v1

import (
	"errors"
	"net/http"

	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/auth"
	"github.com/promissoria/backend/internal/models"
)

// status returns the HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError

	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, access.ErrForbidden),
		errors.Is(err, models.ErrClientLimitReached):
		return http.StatusForbidden

	case errors.Is(err, models.ErrDuplicatePayment),
		errors.Is(err, models.ErrClientNameNotUnique),
		errors.Is(err, models.ErrEmailInUse):
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errSequenceNotSet = errors.New("the sequence parameter must be set for installments")
	errInvalidRange   = errors.New("the from date must not be after the until date")
)
