package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rh-rosa-lab/rosactl/internal/api"
	"github.com/rh-rosa-lab/rosactl/internal/cloud"
	"github.com/rh-rosa-lab/rosactl/internal/notify"
	"github.com/rh-rosa-lab/rosactl/internal/policy"
	"github.com/rh-rosa-lab/rosactl/internal/store"
	"github.com/rh-rosa-lab/rosactl/internal/template"
)

func main() {
	// Load configuration from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/rosactl?sslmode=disable"
	}

	templatesDir := os.Getenv("TEMPLATES_DIR")
	if templatesDir == "" {
		templatesDir = "internal/template/definitions"
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &port)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("WARNING: Using default JWT_SECRET. Set JWT_SECRET environment variable in production!")
		jwtSecret = "change-me-in-production-min-32-chars"
	}

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	// Initialize store
	log.Println("Connecting to database...")
	st, err := store.NewStore(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close()

	// Run migrations
	log.Println("Running database migrations...")
	if err := st.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize template registry
	log.Println("Loading cluster templates...")
	loader := template.NewLoader(templatesDir)
	registry, err := template.NewRegistry(loader)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Printf("Loaded %d templates (%d enabled)", registry.Count(), registry.CountEnabled())

	// Initialize policy engine
	policyEngine := policy.NewEngine(registry)

	// AWS environment checks are optional
	var checker *cloud.Checker
	if os.Getenv("AWS_CHECKS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-west-2"
		}
		checker, err = cloud.NewAWSChecker(context.Background(), region)
		if err != nil {
			log.Fatalf("Failed to initialize AWS clients: %v", err)
		}
		log.Printf("AWS environment checks enabled (region %s)", region)
	}

	// Slack notifications are optional
	var notifier notify.Notifier = notify.Nop{}
	if webhook := os.Getenv("SLACK_WEBHOOK_URL"); webhook != "" {
		notifier = notify.NewSlack(webhook, os.Getenv("SLACK_CHANNEL"))
		log.Println("Slack notifications enabled")
	}

	// Create server config
	config := api.DefaultServerConfig()
	config.Port = port
	config.JWTSecret = jwtSecret
	config.AllowedOrigins = []string{corsOrigins}
	config.EnableAuth = os.Getenv("CONSOLE_AUTH") == "true"
	config.OperatorPasswordHash = os.Getenv("OPERATOR_PASSWORD_HASH")
	if username := os.Getenv("OPERATOR_USERNAME"); username != "" {
		config.OperatorUsername = username
	}

	log.Printf("Server configured:")
	log.Printf("  Port: %d", config.Port)
	log.Printf("  Auth enabled: %v", config.EnableAuth)
	log.Printf("  CORS origins: %v", config.AllowedOrigins)

	// Create API server
	server := api.NewServer(config, st, registry, policyEngine, checker, notifier)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Gracefully shutdown the server with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
