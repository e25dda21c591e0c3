// Package workflow orchestrates cluster submission: a dry-run validation
// against the provisioning API followed, only on a clean pass, by the
// create call. Warnings reported by the validator are carried on every
// outcome, including rejections, because they often explain near-misses.
package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/rh-rosa-lab/rosactl/internal/client"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// Phase is the submission state exposed for UI binding
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseRejected   Phase = "rejected"
	PhaseCreating   Phase = "creating"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// FailureKind distinguishes why a submission did not produce a cluster
type FailureKind string

const (
	// FailureNone marks a successful submission
	FailureNone FailureKind = ""
	// FailureTransport: the API was unreachable or its response undecodable
	FailureTransport FailureKind = "transport"
	// FailureValidationRejected: the validator returned valid=false
	FailureValidationRejected FailureKind = "validation_rejected"
	// FailureCreationRejected: the create call returned a structured error
	FailureCreationRejected FailureKind = "creation_rejected"
)

// ErrSubmissionInFlight is returned when Submit is called while another
// submission of this workflow is outstanding
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

const (
	msgValidationUnreachable = "failed to reach validation service"
	msgCreationUnreachable   = "failed to reach provisioning service"
	msgCreationFailed        = "cluster creation failed"
)

// Result is the outcome of one submission attempt. Exactly one of
// ClusterID (success) or Errors (failure) is populated; Warnings may be
// present on either.
type Result struct {
	ClusterID string
	JobID     string
	Errors    []string
	Warnings  []string
	Failure   FailureKind
}

// Succeeded reports whether the submission produced a cluster
func (r *Result) Succeeded() bool {
	return r.Failure == FailureNone && r.ClusterID != ""
}

// Provisioner is the slice of the API client the workflow needs
type Provisioner interface {
	Validate(ctx context.Context, config *types.ClusterConfig) (*types.ValidationOutcome, error)
	CreateCluster(ctx context.Context, config *types.ClusterConfig) (*client.CreateClusterResponse, error)
}

// Option configures a Workflow
type Option func(*Workflow)

// WithPhaseHook registers a callback invoked on every phase transition.
// The hook runs on the submitting goroutine and must not block.
func WithPhaseHook(hook func(Phase)) Option {
	return func(w *Workflow) {
		w.onPhase = hook
	}
}

// Workflow submits cluster configs to the provisioning API. A workflow
// allows one submission at a time; the config instance is owned by the
// active attempt and must not be mutated until it returns.
type Workflow struct {
	provisioner Provisioner
	onPhase     func(Phase)

	mu       sync.Mutex
	inFlight bool
	phase    Phase
}

// New creates a workflow over the given provisioner
func New(provisioner Provisioner, opts ...Option) *Workflow {
	w := &Workflow{
		provisioner: provisioner,
		phase:       PhaseIdle,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Phase returns the current submission phase
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

func (w *Workflow) setPhase(phase Phase) {
	w.mu.Lock()
	w.phase = phase
	w.mu.Unlock()

	if w.onPhase != nil {
		w.onPhase(phase)
	}
}

// Submit validates config against the provisioning API and, if validation
// passes, submits it for creation. Exactly one validate call and at most
// one create call are made; there are no retries. Submitting the same
// config twice issues two independent remote attempts: no idempotency key
// is sent, so duplicates on the provider are possible.
func (w *Workflow) Submit(ctx context.Context, config *types.ClusterConfig) (*Result, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	w.inFlight = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	result := &Result{}

	w.setPhase(PhaseValidating)

	outcome, err := w.provisioner.Validate(ctx, config)
	if err != nil {
		w.setPhase(PhaseFailed)
		result.Failure = FailureTransport
		result.Errors = []string{msgValidationUnreachable}
		return result, nil
	}

	// Warnings are kept even when validation rejects the config
	result.Warnings = outcome.Warnings

	if !outcome.Valid {
		w.setPhase(PhaseRejected)
		result.Failure = FailureValidationRejected
		result.Errors = outcome.Errors
		return result, nil
	}

	w.setPhase(PhaseCreating)

	created, err := w.provisioner.CreateCluster(ctx, config)
	if err != nil {
		w.setPhase(PhaseFailed)

		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			result.Failure = FailureCreationRejected
			result.Errors = creationErrors(apiErr)
		} else {
			result.Failure = FailureTransport
			result.Errors = []string{msgCreationUnreachable}
		}
		return result, nil
	}

	w.setPhase(PhaseSucceeded)
	result.ClusterID = created.ClusterID
	result.JobID = created.JobID

	return result, nil
}

// creationErrors extracts the best available messages from a structured
// create failure, preferring the detail string
func creationErrors(apiErr *client.APIError) []string {
	if len(apiErr.Errors) > 0 {
		return apiErr.Errors
	}
	if apiErr.Detail != "" {
		return []string{apiErr.Detail}
	}
	return []string{msgCreationFailed}
}
