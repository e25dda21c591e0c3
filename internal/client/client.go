// Package client implements the HTTP client of the provisioning API
// consumed by the console: POST /api/validate and POST /api/clusters plus
// the read endpoints backing the dashboard views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// APIError is a structured rejection from the provisioning API, as opposed
// to a transport failure reaching it
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
	Errors     []string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Client talks to the provisioning API
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a client for the given base URL. token may be empty when the
// server runs without auth.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateClusterResponse is the success payload of POST /api/clusters
type CreateClusterResponse struct {
	ClusterID string `json:"cluster_id"`
	JobID     string `json:"job_id"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// ClusterDetail is the payload of GET /api/clusters/:id
type ClusterDetail struct {
	Cluster *types.Cluster `json:"cluster"`
	Job     *types.Job     `json:"job"`
}

// ClusterList is the payload of GET /api/clusters
type ClusterList struct {
	Data []*types.Cluster `json:"data"`
}

// VersionCatalog is the payload of GET /api/versions
type VersionCatalog struct {
	SupportedVersions  []string `json:"supported_versions"`
	DefaultVersion     string   `json:"default_version"`
	RecommendedVersion string   `json:"recommended_version"`
}

// LoginResponse is the payload of POST /api/auth/login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Validate performs a dry-run validation of a cluster config
func (c *Client) Validate(ctx context.Context, config *types.ClusterConfig) (*types.ValidationOutcome, error) {
	var outcome types.ValidationOutcome
	if err := c.do(ctx, http.MethodPost, "/api/validate", config, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// CreateCluster submits a cluster config for provisioning
func (c *Client) CreateCluster(ctx context.Context, config *types.ClusterConfig) (*CreateClusterResponse, error) {
	var resp CreateClusterResponse
	if err := c.do(ctx, http.MethodPost, "/api/clusters", config, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCluster retrieves a cluster and its latest job
func (c *Client) GetCluster(ctx context.Context, id string) (*ClusterDetail, error) {
	var detail ClusterDetail
	if err := c.do(ctx, http.MethodGet, "/api/clusters/"+id, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListClusters retrieves all clusters
func (c *Client) ListClusters(ctx context.Context) ([]*types.Cluster, error) {
	var list ClusterList
	if err := c.do(ctx, http.MethodGet, "/api/clusters", nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// DeleteCluster requests deletion of a cluster
func (c *Client) DeleteCluster(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/clusters/"+id, nil, nil)
}

// GetJob retrieves a provisioning job
func (c *Client) GetJob(ctx context.Context, id string) (*types.Job, error) {
	var job types.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+id, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// JobLogs retrieves the log lines of a provisioning job
func (c *Client) JobLogs(ctx context.Context, id string) ([]string, error) {
	var resp struct {
		Logs []string `json:"logs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+id+"/logs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// Versions retrieves the supported OpenShift version catalog
func (c *Client) Versions(ctx context.Context) (*VersionCatalog, error) {
	var catalog VersionCatalog
	if err := c.do(ctx, http.MethodGet, "/api/versions", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// TemplateInfo is a catalog entry returned by GET /api/templates
type TemplateInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Templates retrieves the cluster template catalog
func (c *Client) Templates(ctx context.Context) ([]TemplateInfo, error) {
	var resp struct {
		Templates []TemplateInfo `json:"templates"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/templates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// Login exchanges operator credentials for an access token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// errorPayload covers both this API's error shape and the FastAPI-style
// bodies older deployments emit
type errorPayload struct {
	Error  string   `json:"error"`
	Detail string   `json:"detail"`
	Errors []string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var payload errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Code = payload.Error
			apiErr.Detail = payload.Detail
			apiErr.Errors = payload.Errors
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
