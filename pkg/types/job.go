package types

import "time"

// JobType represents the type of async job
type JobType string

const (
	JobTypeCreate  JobType = "CREATE"
	JobTypeDestroy JobType = "DESTROY"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Job represents a provisioning job record. Jobs are durable records that
// external automation advances; this service never executes them.
type Job struct {
	ID          string     `db:"id" json:"id"`
	ClusterID   string     `db:"cluster_id" json:"cluster_id"`
	JobType     JobType    `db:"job_type" json:"job_type"`
	Status      JobStatus  `db:"status" json:"status"`
	Progress    int        `db:"progress" json:"progress"` // 0-100
	Message     string     `db:"message" json:"message"`
	Logs        StringList `db:"logs" json:"logs"`
	StartedAt   time.Time  `db:"started_at" json:"started_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// NewJob builds a queued job record for a cluster
func NewJob(id, clusterID string, jobType JobType) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		ClusterID: clusterID,
		JobType:   jobType,
		Status:    JobStatusPending,
		Progress:  0,
		Message:   "Job queued for execution",
		Logs:      StringList{},
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
