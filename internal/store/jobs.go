package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// JobStore handles job database operations
type JobStore struct {
	pool *pgxpool.Pool
}

const jobColumns = `id, cluster_id, job_type, status, progress, message,
	logs, started_at, completed_at, created_at, updated_at`

// Create inserts a new job record
func (s *JobStore) Create(ctx context.Context, job *types.Job) error {
	return s.create(ctx, s.pool, job)
}

func (s *JobStore) create(ctx context.Context, db execer, job *types.Job) error {
	query := `
		INSERT INTO jobs (
			id, cluster_id, job_type, status, progress, message, logs,
			started_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := db.Exec(ctx, query,
		job.ID,
		job.ClusterID,
		job.JobType,
		job.Status,
		job.Progress,
		job.Message,
		job.Logs,
		job.StartedAt,
	)

	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	return nil
}

func scanJob(row pgx.Row) (*types.Job, error) {
	var job types.Job
	err := row.Scan(
		&job.ID,
		&job.ClusterID,
		&job.JobType,
		&job.Status,
		&job.Progress,
		&job.Message,
		&job.Logs,
		&job.StartedAt,
		&job.CompletedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}

	return &job, nil
}

// GetByID retrieves a job by ID
func (s *JobStore) GetByID(ctx context.Context, id string) (*types.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(s.pool.QueryRow(ctx, query, id))
}

// ListByClusterID retrieves all jobs for a cluster, newest first
func (s *JobStore) ListByClusterID(ctx context.Context, clusterID string) ([]*types.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE cluster_id = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, clusterID)
	if err != nil {
		return nil, fmt.Errorf("query jobs by cluster: %w", err)
	}
	defer rows.Close()

	jobs := []*types.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	return jobs, nil
}

// UpdateProgress updates a job's status, progress and message
func (s *JobStore) UpdateProgress(ctx context.Context, id string, status types.JobStatus, progress int, message string) error {
	query := `
		UPDATE jobs
		SET status = $1, progress = $2, message = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := s.pool.Exec(ctx, query, status, progress, message, id)
	if err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendLog appends a line to a job's log
func (s *JobStore) AppendLog(ctx context.Context, id string, line string) error {
	query := `
		UPDATE jobs
		SET logs = COALESCE(logs, '[]'::jsonb) || to_jsonb($1::text),
			updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.pool.Exec(ctx, query, line, id)
	if err != nil {
		return fmt.Errorf("append job log: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkCompleted marks a job finished with a terminal status
func (s *JobStore) MarkCompleted(ctx context.Context, id string, status types.JobStatus, message string, at time.Time) error {
	query := `
		UPDATE jobs
		SET status = $1, progress = 100, message = $2, completed_at = $3,
			updated_at = NOW()
		WHERE id = $4
	`

	result, err := s.pool.Exec(ctx, query, status, message, at, id)
	if err != nil {
		return fmt.Errorf("mark job completed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
