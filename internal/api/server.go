package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	apimiddleware "github.com/rh-rosa-lab/rosactl/internal/api/middleware"
	"github.com/rh-rosa-lab/rosactl/internal/auth"
	"github.com/rh-rosa-lab/rosactl/internal/cloud"
	"github.com/rh-rosa-lab/rosactl/internal/notify"
	"github.com/rh-rosa-lab/rosactl/internal/policy"
	"github.com/rh-rosa-lab/rosactl/internal/store"
	"github.com/rh-rosa-lab/rosactl/internal/template"
)

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port                 int
	ShutdownTimeout      time.Duration
	EnableCORS           bool
	EnableAuth           bool
	JWTSecret            string
	JWTAccessTTL         time.Duration
	OperatorUsername     string
	OperatorPasswordHash string
	AllowedOrigins       []string
	MaxBodySize          string
	RateLimit            float64
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:             8080,
		ShutdownTimeout:  10 * time.Second,
		EnableCORS:       true,
		EnableAuth:       false, // Enabled with CONSOLE_AUTH=true
		JWTSecret:        "change-me-in-production-min-32-chars",
		JWTAccessTTL:     60 * time.Minute,
		OperatorUsername: "operator",
		AllowedOrigins:   []string{"http://localhost:3000"}, // React dev server
		MaxBodySize:      "1M",
		RateLimit:        100, // requests per second per client
	}
}

// Server represents the HTTP API server
type Server struct {
	echo     *echo.Echo
	config   *ServerConfig
	store    *store.Store
	registry *template.Registry
	policy   *policy.Engine
	auth     *auth.Auth
	checker  *cloud.Checker // nil when AWS checks are disabled
	notifier notify.Notifier
}

// NewServer creates a new API server
func NewServer(
	config *ServerConfig,
	st *store.Store,
	registry *template.Registry,
	engine *policy.Engine,
	checker *cloud.Checker,
	notifier notify.Notifier,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Disable Echo's default logger, we'll use our own
	e.Logger.SetOutput(io.Discard)

	e.Validator = NewValidator()

	if notifier == nil {
		notifier = notify.Nop{}
	}

	s := &Server{
		echo:     e,
		config:   config,
		store:    st,
		registry: registry,
		policy:   engine,
		auth:     auth.NewAuth(config.JWTSecret, config.JWTAccessTTL),
		checker:  checker,
		notifier: notifier,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack
func (s *Server) setupMiddleware() {
	// Recover from panics
	s.echo.Use(middleware.Recover())

	// Request ID for tracing
	s.echo.Use(middleware.RequestID())

	// Logging middleware
	s.echo.Use(apimiddleware.Logger())

	// Prometheus request metrics
	s.echo.Use(MetricsMiddleware())

	// CORS if enabled
	if s.config.EnableCORS {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     s.config.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			ExposeHeaders:    []string{echo.HeaderContentLength},
		}))
	}

	// Body limit
	s.echo.Use(middleware.BodyLimit(s.config.MaxBodySize))

	// Per-client rate limit
	s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.config.RateLimit))))

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Health checks and metrics (no auth required)
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readyCheck)
	s.echo.GET("/metrics", MetricsHandler())

	api := s.echo.Group("/api")

	// Auth routes (public)
	authHandler := NewAuthHandler(s.config, s.auth)
	api.POST("/auth/login", authHandler.Login)

	// Catalog routes (public)
	metaHandler := NewMetaHandler(s.registry)
	api.GET("/versions", metaHandler.Versions)
	api.GET("/templates", metaHandler.Templates)

	// Validation is a dry run and requires no auth
	validateHandler := NewValidateHandler(s.policy)
	api.POST("/validate", validateHandler.Validate)

	// Cluster routes (auth when enabled)
	clusterHandler := NewClusterHandler(s.store, s.policy, s.notifier)
	clustersGroup := api.Group("/clusters")
	if s.config.EnableAuth {
		clustersGroup.Use(auth.RequireAuth(s.auth))
	}
	clustersGroup.POST("", clusterHandler.Create)
	clustersGroup.GET("", clusterHandler.List)
	clustersGroup.GET("/:id", clusterHandler.Get)
	clustersGroup.DELETE("/:id", clusterHandler.Delete)

	// Job routes
	jobHandler := NewJobHandler(s.store)
	jobsGroup := api.Group("/jobs")
	if s.config.EnableAuth {
		jobsGroup.Use(auth.RequireAuth(s.auth))
	}
	jobsGroup.GET("/:id", jobHandler.Get)
	jobsGroup.GET("/:id/logs", jobHandler.Logs)

	// Environment routes
	envHandler := NewEnvironmentHandler(s.checker)
	api.GET("/environment/overview", envHandler.Overview)
	api.GET("/aws/credentials-status", envHandler.CredentialsStatus)
}

// healthCheck returns basic health status
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// readyCheck checks if server is ready to handle requests
func (s *Server) readyCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	fmt.Printf("Starting API server on %s\n", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance for testing
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
