package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rh-rosa-lab/rosactl/internal/store"
)

// JobHandler handles job-related API endpoints
type JobHandler struct {
	store *store.Store
}

// NewJobHandler creates a new job handler
func NewJobHandler(s *store.Store) *JobHandler {
	return &JobHandler{
		store: s,
	}
}

// Get handles GET /api/jobs/:id
func (h *JobHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	job, err := h.store.Jobs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrorNotFound(c, "Job not found")
		}
		return ErrorInternal(c, "Failed to retrieve job: "+err.Error())
	}

	return SuccessOK(c, job)
}

// Logs handles GET /api/jobs/:id/logs
func (h *JobHandler) Logs(c echo.Context) error {
	ctx := c.Request().Context()

	job, err := h.store.Jobs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrorNotFound(c, "Job not found")
		}
		return ErrorInternal(c, "Failed to retrieve job: "+err.Error())
	}

	return SuccessOK(c, map[string]interface{}{
		"logs": job.Logs,
	})
}
