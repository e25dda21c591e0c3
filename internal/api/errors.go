package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standard error payload. Detail carries the
// human-readable explanation clients surface to operators.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Detail string   `json:"detail,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, detail string) *ErrorResponse {
	return &ErrorResponse{
		Error:  code,
		Detail: detail,
	}
}

// WithErrors attaches per-field error messages
func (e *ErrorResponse) WithErrors(errors []string) *ErrorResponse {
	e.Errors = errors
	return e
}

// ErrorBadRequest returns a 400 Bad Request error
func ErrorBadRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", detail))
}

// ErrorUnauthorized returns a 401 Unauthorized error
func ErrorUnauthorized(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", detail))
}

// ErrorNotFound returns a 404 Not Found error
func ErrorNotFound(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", detail))
}

// ErrorConflict returns a 409 Conflict error
func ErrorConflict(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, NewErrorResponse("conflict", detail))
}

// ErrorValidation returns a 422 Unprocessable Entity error with the
// blocking validation messages
func ErrorValidation(c echo.Context, errors []string) error {
	detail := "Request validation failed"
	if len(errors) > 0 {
		detail = errors[0]
	}
	return c.JSON(http.StatusUnprocessableEntity,
		NewErrorResponse("validation_failed", detail).WithErrors(errors))
}

// ErrorInternal returns a 500 Internal Server Error
func ErrorInternal(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", detail))
}

// ErrorServiceUnavailable returns a 503 Service Unavailable error
func ErrorServiceUnavailable(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("service_unavailable", detail))
}
