package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// execer is the write surface shared by the pool and transactions
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store provides database operations
type Store struct {
	pool *pgxpool.Pool

	Clusters *ClusterStore
	Jobs     *JobStore
}

// New creates a new Store with all sub-stores initialized
func New(pool *pgxpool.Pool) *Store {
	s := &Store{
		pool: pool,
	}

	s.Clusters = &ClusterStore{pool: pool}
	s.Jobs = &JobStore{pool: pool}

	return s
}

// NewStore creates a new Store from a database URL
func NewStore(databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// WithTx executes a function within a transaction
// If the function returns an error, the transaction is rolled back
// Otherwise, the transaction is committed
func (s *Store) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	err = fn(tx)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CreateClusterWithJob inserts a cluster and its provisioning job in one
// transaction, so a failed job insert never leaves an orphaned cluster row
func (s *Store) CreateClusterWithJob(ctx context.Context, cluster *types.Cluster, job *types.Job) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.Clusters.create(ctx, tx, cluster); err != nil {
			return err
		}
		return s.Jobs.create(ctx, tx, job)
	})
}

// Close closes the database connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clusters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			version TEXT NOT NULL,
			region TEXT NOT NULL,
			instance_type TEXT NOT NULL,
			min_replicas INT NOT NULL,
			max_replicas INT NOT NULL,
			network_automation BOOLEAN NOT NULL DEFAULT FALSE,
			role_automation BOOLEAN NOT NULL DEFAULT FALSE,
			cidr_block TEXT NOT NULL DEFAULT '',
			availability_zones JSONB,
			tags JSONB,
			s3_log_forwarding_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			s3_bucket_name TEXT,
			s3_bucket_prefix TEXT,
			s3_log_applications JSONB,
			status TEXT NOT NULL,
			job_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clusters_status ON clusters (status)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			cluster_id TEXT NOT NULL REFERENCES clusters (id),
			job_type TEXT NOT NULL,
			status TEXT NOT NULL,
			progress INT NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			logs JSONB,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_cluster_id ON jobs (cluster_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}

	return nil
}
