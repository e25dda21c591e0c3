package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rh-rosa-lab/rosactl/internal/cloud"
)

// EnvironmentHandler serves AWS environment status for the dashboard
type EnvironmentHandler struct {
	checker *cloud.Checker
}

// NewEnvironmentHandler creates a new environment handler. checker may be
// nil when AWS checks are disabled.
func NewEnvironmentHandler(checker *cloud.Checker) *EnvironmentHandler {
	return &EnvironmentHandler{
		checker: checker,
	}
}

// Overview handles GET /api/environment/overview
func (h *EnvironmentHandler) Overview(c echo.Context) error {
	if h.checker == nil {
		return ErrorServiceUnavailable(c, "AWS environment checks are disabled")
	}

	return SuccessOK(c, h.checker.Overview(c.Request().Context()))
}

// CredentialsStatus handles GET /api/aws/credentials-status
func (h *EnvironmentHandler) CredentialsStatus(c echo.Context) error {
	if h.checker == nil {
		return ErrorServiceUnavailable(c, "AWS environment checks are disabled")
	}

	return SuccessOK(c, h.checker.CredentialsStatus(c.Request().Context()))
}
