package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rh-rosa-lab/rosactl/internal/policy"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// ValidateHandler handles dry-run validation of cluster configs
type ValidateHandler struct {
	policy *policy.Engine
}

// NewValidateHandler creates a new validate handler
func NewValidateHandler(engine *policy.Engine) *ValidateHandler {
	return &ValidateHandler{
		policy: engine,
	}
}

// Validate handles POST /api/validate. Rule failures are reported in the
// body with a 200 status; only a malformed request is an HTTP error.
func (h *ValidateHandler) Validate(c echo.Context) error {
	var config types.ClusterConfig
	if err := c.Bind(&config); err != nil {
		return ErrorBadRequest(c, "Invalid request body")
	}

	result, err := h.policy.ValidateConfig(&config)
	if err != nil {
		return ErrorInternal(c, "Validation failed: "+err.Error())
	}

	if result.HasErrors() {
		validationFailures.Inc()
	}

	return c.JSON(http.StatusOK, result.Outcome())
}
