// Package apierr turns errors into the JSON error envelope returned to
// clients.
package apierr

import (
	"errors"
	"net/http"

	"github.com/tuanvumaihuynh/coffee-roastery/pkg/validator"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/zerror"
)

// ErrorResponse is the error envelope for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Status  int                    `json:"status"`
	Details []validator.FieldError `json:"details,omitempty"`
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

var InternalServerErr = ErrorResponse{
	Error:  "an unknown error occurred",
	Status: http.StatusInternalServerError,
}

func errorToErrorResponse(err error) ErrorResponse {
	if details, ok := validator.FieldErrors(err); ok {
		return ErrorResponse{
			Error:   "validation error",
			Status:  http.StatusBadRequest,
			Details: details,
		}
	}

	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Error:  zErr.Msg(),
			Status: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	return InternalServerErr
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusBadRequest, zerror.StatusValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
