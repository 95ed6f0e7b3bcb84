// Package jobs defines the asynchronous statement ingestion job and the
// queue abstractions the API publishes into.
package jobs

import (
	"context"
	"time"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
)

// IngestStatementJob carries one uploaded statement through the queue.
// Jobs run exactly once: a failed ingestion is reported, not retried,
// because a partial first attempt may already have committed rows.
type IngestStatementJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// OwnerID is the user the statement belongs to.
	OwnerID string `json:"owner_id"`

	// FileName is the uploaded file's original name, for diagnostics.
	FileName string `json:"file_name"`

	// Payload is the raw statement file. Never serialized.
	Payload []byte `json:"-"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// Committed, SkippedRows, DuplicateRows and FailedCommits summarize
	// a completed ingestion.
	Committed     int `json:"committed"`
	SkippedRows   int `json:"skipped_rows"`
	DuplicateRows int `json:"duplicate_rows"`
	FailedCommits int `json:"failed_commits"`

	// Tier tells which categorization path labeled the batch.
	Tier string `json:"tier,omitempty"`
}

// Publisher publishes jobs to a queue. The abstraction keeps the API
// handlers independent of the queue implementation.
type Publisher interface {
	// PublishIngestStatement enqueues a statement ingestion job.
	PublishIngestStatement(ctx context.Context, job *IngestStatementJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer consumes jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue, calling handler for
	// each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job failed.
type JobHandler func(ctx context.Context, job *IngestStatementJob) error

// JobStore tracks job state so clients can poll for completion.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *IngestStatementJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*IngestStatementJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*IngestStatementJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// OwnerID filters jobs by owner.
	OwnerID string

	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
