package handler

import (
	"errors"
	"net/http"

	"github.com/rsawant/invest-engine/pkg/response"

	customError "github.com/rsawant/invest-engine/pkg/errors"
)

// writeError maps the business error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, customError.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, customError.ErrIllegalTransition),
		errors.Is(err, customError.ErrVersionConflict):
		status = http.StatusConflict
	case errors.Is(err, customError.ErrMissingComment),
		errors.Is(err, customError.ErrIncompleteVerification),
		errors.Is(err, customError.ErrDivisionMismatch),
		errors.Is(err, customError.ErrInvalidRange),
		errors.Is(err, customError.ErrEmptyTransferType):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, customError.ErrCorruptState):
		// Fatal for the entity; surfaced, never repaired here.
		status = http.StatusInternalServerError
	}

	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		response.ErrorWithCode(w, status, businessErr.Code, businessErr.Message, businessErr.Err)
		return
	}

	response.Error(w, status, "request failed", err)
}
