package types

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ClusterStatus represents the current state of a cluster
type ClusterStatus string

const (
	ClusterStatusPending  ClusterStatus = "PENDING"
	ClusterStatusCreating ClusterStatus = "CREATING"
	ClusterStatusReady    ClusterStatus = "READY"
	ClusterStatusDeleting ClusterStatus = "DELETING"
	ClusterStatusDeleted  ClusterStatus = "DELETED"
	ClusterStatusFailed   ClusterStatus = "FAILED"
)

// Tags is a map of key-value pairs stored as JSONB
type Tags map[string]string

// Value implements driver.Valuer for database serialization
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database deserialization
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// StringList is an ordered list of strings stored as JSONB
type StringList []string

// Value implements driver.Valuer for database serialization
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database deserialization
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// ClusterConfig is the desired-cluster record an operator submits.
// One instance is built per form session and consumed read-only by a
// single in-flight submission. Field names match the wire contract of
// POST /api/validate and POST /api/clusters.
type ClusterConfig struct {
	Name              string            `json:"name" yaml:"name" validate:"required"`
	Version           string            `json:"version" yaml:"version" validate:"required"`
	Region            string            `json:"region" yaml:"region" validate:"required"`
	InstanceType      string            `json:"instance_type" yaml:"instance_type"`
	MinReplicas       int               `json:"min_replicas" yaml:"min_replicas" validate:"min=1"`
	MaxReplicas       int               `json:"max_replicas" yaml:"max_replicas" validate:"gtefield=MinReplicas"`
	NetworkAutomation bool              `json:"network_automation" yaml:"network_automation"`
	RoleAutomation    bool              `json:"role_automation" yaml:"role_automation"`
	CIDRBlock         string            `json:"cidr_block" yaml:"cidr_block"`
	AvailabilityZones []string          `json:"availability_zones" yaml:"availability_zones"`
	Tags              map[string]string `json:"tags" yaml:"tags"`

	// Optional S3 log forwarding. Bucket name and at least one log
	// application are required together when the flag is set.
	S3LogForwardingEnabled bool     `json:"s3_log_forwarding_enabled,omitempty" yaml:"s3_log_forwarding_enabled"`
	S3BucketName           string   `json:"s3_bucket_name,omitempty" yaml:"s3_bucket_name"`
	S3BucketPrefix         string   `json:"s3_bucket_prefix,omitempty" yaml:"s3_bucket_prefix"`
	S3LogApplications      []string `json:"s3_log_applications,omitempty" yaml:"s3_log_applications"`
}

// DefaultClusterConfig returns a config pre-filled with the console defaults
func DefaultClusterConfig() *ClusterConfig {
	return &ClusterConfig{
		Version:           "4.20.0",
		Region:            "us-west-2",
		InstanceType:      "m5.xlarge",
		MinReplicas:       2,
		MaxReplicas:       3,
		NetworkAutomation: true,
		CIDRBlock:         "10.0.0.0/16",
		AvailabilityZones: []string{"us-west-2a", "us-west-2b"},
		Tags:              map[string]string{},
	}
}

// Cluster represents a cluster record in the database
type Cluster struct {
	ID                     string        `db:"id" json:"id"`
	Name                   string        `db:"name" json:"name"`
	Version                string        `db:"version" json:"version"`
	Region                 string        `db:"region" json:"region"`
	InstanceType           string        `db:"instance_type" json:"instance_type"`
	MinReplicas            int           `db:"min_replicas" json:"min_replicas"`
	MaxReplicas            int           `db:"max_replicas" json:"max_replicas"`
	NetworkAutomation      bool          `db:"network_automation" json:"network_automation"`
	RoleAutomation         bool          `db:"role_automation" json:"role_automation"`
	CIDRBlock              string        `db:"cidr_block" json:"cidr_block"`
	AvailabilityZones      StringList    `db:"availability_zones" json:"availability_zones"`
	Tags                   Tags          `db:"tags" json:"tags"`
	S3LogForwardingEnabled bool          `db:"s3_log_forwarding_enabled" json:"s3_log_forwarding_enabled"`
	S3BucketName           *string       `db:"s3_bucket_name" json:"s3_bucket_name"`
	S3BucketPrefix         *string       `db:"s3_bucket_prefix" json:"s3_bucket_prefix"`
	S3LogApplications      StringList    `db:"s3_log_applications" json:"s3_log_applications"`
	Status                 ClusterStatus `db:"status" json:"status"`
	JobID                  string        `db:"job_id" json:"job_id"`
	CreatedAt              time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time     `db:"updated_at" json:"updated_at"`
	DeletedAt              *time.Time    `db:"deleted_at" json:"deleted_at"`
}

// NewCluster builds a cluster record from a submitted config
func NewCluster(id, jobID string, config *ClusterConfig) *Cluster {
	now := time.Now()

	c := &Cluster{
		ID:                     id,
		Name:                   config.Name,
		Version:                config.Version,
		Region:                 config.Region,
		InstanceType:           config.InstanceType,
		MinReplicas:            config.MinReplicas,
		MaxReplicas:            config.MaxReplicas,
		NetworkAutomation:      config.NetworkAutomation,
		RoleAutomation:         config.RoleAutomation,
		CIDRBlock:              config.CIDRBlock,
		AvailabilityZones:      StringList(config.AvailabilityZones),
		Tags:                   Tags(config.Tags),
		S3LogForwardingEnabled: config.S3LogForwardingEnabled,
		S3LogApplications:      StringList(config.S3LogApplications),
		Status:                 ClusterStatusCreating,
		JobID:                  jobID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if config.S3BucketName != "" {
		c.S3BucketName = &config.S3BucketName
	}
	if config.S3BucketPrefix != "" {
		c.S3BucketPrefix = &config.S3BucketPrefix
	}

	return c
}
