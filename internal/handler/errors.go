package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/pkordes/bikeshare/internal/domain"
)

// ErrorDetail is the machine-readable code and human-readable message of a
// failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// paramError reports a query parameter that could not be bound or has an
// unsupported value. It is rejected before reaching the service layer.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid query parameter %q: %v", e.name, e.err)
}

func (e *paramError) Unwrap() error { return e.err }

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a rejected filter or parameter.
func validationBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// emptyBody returns an ErrorResponse for a filter that matched no trips.
func emptyBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "empty_result", Message: message}}
}

// renderError maps err onto a status code and error body.
// Anything not recognised is logged and reported as a 500 without leaking
// internal details.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status int
		body   ErrorResponse
		fe     *domain.FilterError
		pe     *paramError
	)

	switch {
	case errors.As(err, &pe):
		status, body = http.StatusUnprocessableEntity, validationBody(pe.Error())
	case errors.As(err, &fe):
		status, body = http.StatusUnprocessableEntity, validationBody(fe.Error())
	case errors.Is(err, domain.ErrUnknownCity):
		status, body = http.StatusNotFound, notFoundBody("city data not found")
	case errors.Is(err, domain.ErrEmptyResultSet):
		status, body = http.StatusUnprocessableEntity, emptyBody("no trips match the filter")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		status = http.StatusInternalServerError
		body = ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}}
	}

	render.Status(r, status)
	render.JSON(w, r, body)
}
