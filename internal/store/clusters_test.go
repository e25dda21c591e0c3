package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh-rosa-lab/rosactl/internal/store"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// Integration tests run against a real PostgreSQL set through TEST_DATABASE_URL.
// They are skipped in short mode and when the variable is unset.

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	s, err := store.NewStore(dbURL)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testCluster(name string) *types.Cluster {
	config := types.DefaultClusterConfig()
	config.Name = name
	return types.NewCluster(types.GenerateClusterID(), types.GenerateJobID(), config)
}

func TestClusterStore_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	cluster := testCluster("store-test-create")
	require.NoError(t, s.Clusters.Create(ctx, cluster))

	retrieved, err := s.Clusters.GetByID(ctx, cluster.ID)
	require.NoError(t, err)

	assert.Equal(t, cluster.Name, retrieved.Name)
	assert.Equal(t, cluster.Version, retrieved.Version)
	assert.Equal(t, types.ClusterStatusCreating, retrieved.Status)
	assert.Equal(t, cluster.JobID, retrieved.JobID)
}

func TestStore_CreateClusterWithJob(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	t.Run("inserts both records", func(t *testing.T) {
		cluster := testCluster("store-test-tx")
		job := types.NewJob(cluster.JobID, cluster.ID, types.JobTypeCreate)

		require.NoError(t, s.CreateClusterWithJob(ctx, cluster, job))

		_, err := s.Clusters.GetByID(ctx, cluster.ID)
		require.NoError(t, err)
		_, err = s.Jobs.GetByID(ctx, job.ID)
		require.NoError(t, err)
	})

	t.Run("failed job insert rolls back the cluster", func(t *testing.T) {
		first := testCluster("store-test-tx-first")
		require.NoError(t, s.CreateClusterWithJob(ctx, first,
			types.NewJob(first.JobID, first.ID, types.JobTypeCreate)))

		// Reusing the first job's ID violates the primary key, so the
		// second cluster row must not survive
		second := testCluster("store-test-tx-second")
		err := s.CreateClusterWithJob(ctx, second,
			types.NewJob(first.JobID, second.ID, types.JobTypeCreate))
		require.Error(t, err)

		_, err = s.Clusters.GetByID(ctx, second.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestClusterStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Clusters.GetByID(context.Background(), "clu_does_not_exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClusterStore_List(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	cluster := testCluster("store-test-list")
	require.NoError(t, s.Clusters.Create(ctx, cluster))

	clusters, total, err := s.Clusters.List(ctx, store.ListFilters{Limit: 100})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	assert.NotEmpty(t, clusters)

	status := types.ClusterStatusCreating
	filtered, _, err := s.Clusters.List(ctx, store.ListFilters{
		Region: &cluster.Region,
		Status: &status,
		Limit:  100,
	})
	require.NoError(t, err)
	for _, c := range filtered {
		assert.Equal(t, cluster.Region, c.Region)
	}
}

func TestClusterStore_UpdateStatus(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	cluster := testCluster("store-test-status")
	require.NoError(t, s.Clusters.Create(ctx, cluster))

	require.NoError(t, s.Clusters.UpdateStatus(ctx, cluster.ID, types.ClusterStatusReady))

	retrieved, err := s.Clusters.GetByID(ctx, cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ClusterStatusReady, retrieved.Status)
}

func TestClusterStore_MarkDeleted(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	cluster := testCluster("store-test-deleted")
	require.NoError(t, s.Clusters.Create(ctx, cluster))

	deletedAt := time.Now()
	require.NoError(t, s.Clusters.MarkDeleted(ctx, cluster.ID, deletedAt))

	retrieved, err := s.Clusters.GetByID(ctx, cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ClusterStatusDeleted, retrieved.Status)
	require.NotNil(t, retrieved.DeletedAt)
	assert.WithinDuration(t, deletedAt, *retrieved.DeletedAt, time.Second)
}

func TestJobStore_Lifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	cluster := testCluster("store-test-jobs")
	require.NoError(t, s.Clusters.Create(ctx, cluster))

	job := types.NewJob(cluster.JobID, cluster.ID, types.JobTypeCreate)
	require.NoError(t, s.Jobs.Create(ctx, job))

	require.NoError(t, s.Jobs.UpdateProgress(ctx, job.ID, types.JobStatusRunning, 50, "Provisioning network"))
	require.NoError(t, s.Jobs.AppendLog(ctx, job.ID, "VPC created"))

	retrieved, err := s.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, retrieved.Progress)
	assert.Equal(t, "Provisioning network", retrieved.Message)
	assert.Contains(t, retrieved.Logs, "VPC created")

	jobs, err := s.Jobs.ListByClusterID(ctx, cluster.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, jobs)

	completedAt := time.Now()
	require.NoError(t, s.Jobs.MarkCompleted(ctx, job.ID, types.JobStatusCompleted, "Cluster ready", completedAt))

	finished, err := s.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobStatusCompleted, finished.Status)
	assert.Equal(t, 100, finished.Progress)
	require.NotNil(t, finished.CompletedAt)
	assert.WithinDuration(t, completedAt, *finished.CompletedAt, time.Second)
}
