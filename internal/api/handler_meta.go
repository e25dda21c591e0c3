package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rh-rosa-lab/rosactl/internal/template"
)

// MetaHandler serves the version and template catalogs
type MetaHandler struct {
	registry *template.Registry
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(registry *template.Registry) *MetaHandler {
	return &MetaHandler{
		registry: registry,
	}
}

// VersionsResponse is returned by GET /api/versions
type VersionsResponse struct {
	SupportedVersions  []string `json:"supported_versions"`
	DefaultVersion     string   `json:"default_version"`
	RecommendedVersion string   `json:"recommended_version"`
}

// Versions handles GET /api/versions
func (h *MetaHandler) Versions(c echo.Context) error {
	return SuccessOK(c, &VersionsResponse{
		SupportedVersions:  h.registry.SupportedVersions(),
		DefaultVersion:     h.registry.DefaultVersion(),
		RecommendedVersion: h.registry.RecommendedVersion(),
	})
}

// Templates handles GET /api/templates
func (h *MetaHandler) Templates(c echo.Context) error {
	return SuccessOK(c, map[string]interface{}{
		"templates": h.registry.List(),
	})
}
