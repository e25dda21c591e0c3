package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// ClusterStore handles cluster database operations
type ClusterStore struct {
	pool *pgxpool.Pool
}

// ListFilters holds optional filters for listing clusters
type ListFilters struct {
	Status *types.ClusterStatus
	Region *string
	Limit  int
	Offset int
}

const clusterColumns = `id, name, version, region, instance_type,
	min_replicas, max_replicas, network_automation, role_automation,
	cidr_block, availability_zones, tags, s3_log_forwarding_enabled,
	s3_bucket_name, s3_bucket_prefix, s3_log_applications, status, job_id,
	created_at, updated_at, deleted_at`

// Create inserts a new cluster record
func (s *ClusterStore) Create(ctx context.Context, cluster *types.Cluster) error {
	return s.create(ctx, s.pool, cluster)
}

func (s *ClusterStore) create(ctx context.Context, db execer, cluster *types.Cluster) error {
	query := `
		INSERT INTO clusters (
			id, name, version, region, instance_type, min_replicas,
			max_replicas, network_automation, role_automation, cidr_block,
			availability_zones, tags, s3_log_forwarding_enabled,
			s3_bucket_name, s3_bucket_prefix, s3_log_applications, status,
			job_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18
		)
	`

	_, err := db.Exec(ctx, query,
		cluster.ID,
		cluster.Name,
		cluster.Version,
		cluster.Region,
		cluster.InstanceType,
		cluster.MinReplicas,
		cluster.MaxReplicas,
		cluster.NetworkAutomation,
		cluster.RoleAutomation,
		cluster.CIDRBlock,
		cluster.AvailabilityZones,
		cluster.Tags,
		cluster.S3LogForwardingEnabled,
		cluster.S3BucketName,
		cluster.S3BucketPrefix,
		cluster.S3LogApplications,
		cluster.Status,
		cluster.JobID,
	)

	if err != nil {
		return fmt.Errorf("insert cluster: %w", err)
	}

	return nil
}

func scanCluster(row pgx.Row) (*types.Cluster, error) {
	var cluster types.Cluster
	err := row.Scan(
		&cluster.ID,
		&cluster.Name,
		&cluster.Version,
		&cluster.Region,
		&cluster.InstanceType,
		&cluster.MinReplicas,
		&cluster.MaxReplicas,
		&cluster.NetworkAutomation,
		&cluster.RoleAutomation,
		&cluster.CIDRBlock,
		&cluster.AvailabilityZones,
		&cluster.Tags,
		&cluster.S3LogForwardingEnabled,
		&cluster.S3BucketName,
		&cluster.S3BucketPrefix,
		&cluster.S3LogApplications,
		&cluster.Status,
		&cluster.JobID,
		&cluster.CreatedAt,
		&cluster.UpdatedAt,
		&cluster.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan cluster: %w", err)
	}

	return &cluster, nil
}

// GetByID retrieves a cluster by ID
func (s *ClusterStore) GetByID(ctx context.Context, id string) (*types.Cluster, error) {
	query := `SELECT ` + clusterColumns + ` FROM clusters WHERE id = $1`
	return scanCluster(s.pool.QueryRow(ctx, query, id))
}

// List retrieves clusters with optional filters, newest first, plus the
// unfiltered-by-pagination total count
func (s *ClusterStore) List(ctx context.Context, filters ListFilters) ([]*types.Cluster, int, error) {
	where := `WHERE deleted_at IS NULL`
	args := []interface{}{}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.Region != nil {
		args = append(args, *filters.Region)
		where += fmt.Sprintf(" AND region = $%d", len(args))
	}

	countQuery := `SELECT COUNT(*) FROM clusters ` + where
	var total int
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clusters: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitClause := fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filters.Offset)
	limitClause += fmt.Sprintf(" OFFSET $%d", len(args))

	query := `SELECT ` + clusterColumns + ` FROM clusters ` + where +
		` ORDER BY created_at DESC` + limitClause

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query clusters: %w", err)
	}
	defer rows.Close()

	clusters := []*types.Cluster{}
	for rows.Next() {
		cluster, err := scanCluster(rows)
		if err != nil {
			return nil, 0, err
		}
		clusters = append(clusters, cluster)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clusters: %w", err)
	}

	return clusters, total, nil
}

// UpdateStatus updates a cluster's status
func (s *ClusterStore) UpdateStatus(ctx context.Context, id string, status types.ClusterStatus) error {
	query := `
		UPDATE clusters
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update cluster status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkDeleted marks a cluster as deleted
func (s *ClusterStore) MarkDeleted(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE clusters
		SET status = $1, deleted_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := s.pool.Exec(ctx, query, types.ClusterStatusDeleted, at, id)
	if err != nil {
		return fmt.Errorf("mark cluster deleted: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
