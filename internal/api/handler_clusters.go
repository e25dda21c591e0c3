package api

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rh-rosa-lab/rosactl/internal/notify"
	"github.com/rh-rosa-lab/rosactl/internal/policy"
	"github.com/rh-rosa-lab/rosactl/internal/store"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// ClusterHandler handles cluster-related API endpoints
type ClusterHandler struct {
	store    *store.Store
	policy   *policy.Engine
	notifier notify.Notifier
}

// NewClusterHandler creates a new cluster handler
func NewClusterHandler(s *store.Store, p *policy.Engine, n notify.Notifier) *ClusterHandler {
	return &ClusterHandler{
		store:    s,
		policy:   p,
		notifier: n,
	}
}

// CreateClusterResponse is returned by POST /api/clusters on success
type CreateClusterResponse struct {
	ClusterID string `json:"cluster_id"`
	JobID     string `json:"job_id"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// Create handles POST /api/clusters
func (h *ClusterHandler) Create(c echo.Context) error {
	var config types.ClusterConfig
	if err := c.Bind(&config); err != nil {
		return ErrorBadRequest(c, "Invalid request body")
	}

	if err := c.Validate(&config); err != nil {
		return ErrorBadRequest(c, err.Error())
	}

	// The create path re-checks policy so a client cannot skip the dry run
	validation, err := h.policy.ValidateConfig(&config)
	if err != nil {
		return ErrorInternal(c, "Validation failed: "+err.Error())
	}
	if validation.HasErrors() {
		return ErrorValidation(c, validation.ErrorStrings())
	}

	ctx := c.Request().Context()

	clusterID := types.GenerateClusterID()
	jobID := types.GenerateJobID()

	cluster := types.NewCluster(clusterID, jobID, &config)
	job := types.NewJob(jobID, clusterID, types.JobTypeCreate)

	// Atomic: a failed job insert must not leave a cluster row behind
	if err := h.store.CreateClusterWithJob(ctx, cluster, job); err != nil {
		return ErrorInternal(c, "Failed to create cluster: "+err.Error())
	}

	clustersCreated.Inc()

	// Best-effort notification, never blocks the response
	go func(cluster types.Cluster) {
		nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.notifier.ClusterSubmitted(nctx, &cluster)
	}(*cluster)

	return SuccessCreated(c, &CreateClusterResponse{
		ClusterID: clusterID,
		JobID:     jobID,
		Message:   "Cluster creation started",
		Status:    string(types.JobStatusPending),
	})
}

// List handles GET /api/clusters
func (h *ClusterHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	pagination := ParsePaginationParams(c)

	listFilters := store.ListFilters{
		Limit:  pagination.PerPage,
		Offset: pagination.Offset,
	}

	filterMap := make(map[string]interface{})
	if status := c.QueryParam("status"); status != "" {
		s := types.ClusterStatus(status)
		listFilters.Status = &s
		filterMap["status"] = status
	}
	if region := c.QueryParam("region"); region != "" {
		listFilters.Region = &region
		filterMap["region"] = region
	}

	clusters, total, err := h.store.Clusters.List(ctx, listFilters)
	if err != nil {
		return ErrorInternal(c, "Failed to list clusters: "+err.Error())
	}

	paginationMeta := CalculatePagination(pagination.Page, pagination.PerPage, total)

	return SuccessPaginated(c, clusters, paginationMeta, filterMap)
}

// Get handles GET /api/clusters/:id
func (h *ClusterHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	cluster, err := h.store.Clusters.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrorNotFound(c, "Cluster not found")
		}
		return ErrorInternal(c, "Failed to retrieve cluster: "+err.Error())
	}

	// Include the latest job so the console can show provisioning progress
	job, err := h.store.Jobs.GetByID(ctx, cluster.JobID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ErrorInternal(c, "Failed to retrieve job: "+err.Error())
	}

	return SuccessOK(c, map[string]interface{}{
		"cluster": cluster,
		"job":     job,
	})
}

// Delete handles DELETE /api/clusters/:id
func (h *ClusterHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	cluster, err := h.store.Clusters.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrorNotFound(c, "Cluster not found")
		}
		return ErrorInternal(c, "Failed to retrieve cluster: "+err.Error())
	}

	if cluster.Status == types.ClusterStatusDeleting {
		return ErrorConflict(c, "Cluster is already being deleted")
	}

	if err := h.store.Clusters.UpdateStatus(ctx, cluster.ID, types.ClusterStatusDeleting); err != nil {
		return ErrorInternal(c, "Failed to update cluster status: "+err.Error())
	}
	cluster.Status = types.ClusterStatusDeleting

	job := types.NewJob(types.GenerateJobID(), cluster.ID, types.JobTypeDestroy)
	job.Message = "Cluster deletion queued"
	if err := h.store.Jobs.Create(ctx, job); err != nil {
		return ErrorInternal(c, "Failed to create deletion job: "+err.Error())
	}

	go func(cluster types.Cluster) {
		nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.notifier.ClusterDeleted(nctx, &cluster)
	}(*cluster)

	return SuccessOK(c, map[string]interface{}{
		"job_id":  job.ID,
		"message": "Cluster deletion started",
	})
}
