package transport

import (
	"errors"
	"net/http"

	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/repository"
	"rabbit-catalog/internal/service"
)

// okResponse is the bare acknowledgement returned by write endpoints; the
// written record is not echoed back
type okResponse struct {
	OK bool `json:"ok"`
}

var acknowledged = okResponse{OK: true}

// respondWriteError maps a failed write to its HTTP shape: field errors
// become validation responses, the not-configured state becomes 503, and
// any backend error is surfaced verbatim without retry or categorizing.
func respondWriteError(w http.ResponseWriter, err error) {
	var fieldErr *service.FieldError
	switch {
	case errors.As(err, &fieldErr):
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: fieldErr.Field, Message: fieldErr.Message},
		})
	case errors.Is(err, repository.ErrNotConfigured):
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "storage backend not configured")
	case errors.Is(err, repository.ErrEmptyPatch):
		middleware.RespondWithError(w, http.StatusBadRequest, "no fields to update")
	case errors.Is(err, repository.ErrRabbitNotFound),
		errors.Is(err, repository.ErrBreedingPairNotFound),
		errors.Is(err, repository.ErrGestationNotFound),
		errors.Is(err, repository.ErrBirthNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	}
}

// respondReadError maps a failed read to its HTTP shape
func respondReadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrRabbitNotFound),
		errors.Is(err, repository.ErrBreedingPairNotFound),
		errors.Is(err, repository.ErrGestationNotFound),
		errors.Is(err, repository.ErrBirthNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
