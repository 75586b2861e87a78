package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle status of an ingestion job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusStarted   JobStatus = "started"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed out of s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// AllowedPredecessors returns the statuses a job may be in when moving to s.
// Writing the current status again is treated as an idempotent success.
func AllowedPredecessors(s JobStatus) []JobStatus {
	switch s {
	case JobStatusStarted:
		return []JobStatus{JobStatusPending, JobStatusStarted}
	case JobStatusCompleted:
		return []JobStatus{JobStatusStarted, JobStatusCompleted}
	case JobStatusFailed:
		return []JobStatus{JobStatusStarted, JobStatusFailed}
	default:
		return nil
	}
}

// CanTransition reports whether a job in status from may move to status to.
func CanTransition(from, to JobStatus) bool {
	for _, p := range AllowedPredecessors(to) {
		if p == from {
			return true
		}
	}
	return false
}

// ParseJobStatus parses a status name case-insensitively.
func ParseJobStatus(s string) (JobStatus, error) {
	status := JobStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case JobStatusPending, JobStatusStarted, JobStatusCompleted, JobStatusFailed:
		return status, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// IngestMode selects which source files a job processes.
type IngestMode string

const (
	IngestModeProducts  IngestMode = "products"
	IngestModeDiscounts IngestMode = "discounts"
	IngestModeAll       IngestMode = "all"
)

// ValidModes contains all valid ingest modes.
var ValidModes = []IngestMode{IngestModeProducts, IngestModeDiscounts, IngestModeAll}

// IsValidMode checks if a mode is valid.
func IsValidMode(mode IngestMode) bool {
	for _, m := range ValidModes {
		if m == mode {
			return true
		}
	}
	return false
}

// FileCount returns how many source files a job in this mode reads.
func (m IngestMode) FileCount() int {
	if m == IngestModeAll {
		return 2
	}
	return 1
}

// Includes reports whether the mode processes entities of the given kind.
func (m IngestMode) Includes(kind EntityKind) bool {
	switch m {
	case IngestModeAll:
		return true
	case IngestModeProducts:
		return kind == EntityProduct
	case IngestModeDiscounts:
		return kind == EntityDiscount
	}
	return false
}

// Default job configuration values.
const (
	DefaultWorkers   = 4
	DefaultChunkSize = 100
	DefaultRetries   = 2
)

// JobConfig is the immutable configuration of an ingestion job.
type JobConfig struct {
	Mode      IngestMode `json:"mode"`
	Workers   int        `json:"workers"`
	ChunkSize int        `json:"chunk_size"`
	Retries   int        `json:"retries"`
	FailFast  bool       `json:"fail_fast"`
	DryRun    bool       `json:"dry_run"`
}

// DefaultJobConfig returns the configuration used for fields a request leaves out.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		Mode:      IngestModeAll,
		Workers:   DefaultWorkers,
		ChunkSize: DefaultChunkSize,
		Retries:   DefaultRetries,
	}
}

// EntitySummary holds the per-entity counters of a job.
type EntitySummary struct {
	Parsed       int `json:"parsed" bson:"parsed"`
	Ingested     int `json:"ingested" bson:"ingested"`
	Failed       int `json:"failed" bson:"failed"`
	Deduplicated int `json:"deduplicated" bson:"deduplicated"`
}

// ErrorSample is a diagnostic record of a failed line.
type ErrorSample struct {
	File   string `json:"file" bson:"file"`
	Line   int    `json:"line" bson:"line"`
	Reason string `json:"reason" bson:"reason"`
}

// IngestionJob represents an ingestion job entity.
type IngestionJob struct {
	ID string `json:"id"`
	JobConfig
	Status          JobStatus     `json:"status"`
	FilesDiscovered int           `json:"files_discovered"`
	FilesProcessed  int           `json:"files_processed"`
	Products        EntitySummary `json:"products"`
	Discounts       EntitySummary `json:"discounts"`
	Errors          []ErrorSample `json:"errors_sample"`
	ErrorMessage    *string       `json:"error_message,omitempty"`
	StartedAt       time.Time     `json:"started_at"`
	UpdatedAt       *time.Time    `json:"updated_at,omitempty"`
}

// NewIngestionJob creates a pending job for cfg with a freshly generated id.
func NewIngestionJob(cfg JobConfig, now time.Time) *IngestionJob {
	return &IngestionJob{
		ID:        NewJobID(now),
		JobConfig: cfg,
		Status:    JobStatusPending,
		Errors:    []ErrorSample{},
		StartedAt: now,
	}
}

// NewJobID returns an id of the form ing-YYYYMMDD-HHMMSS-xxxxxxxx.
func NewJobID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ing-%s-%s", now.UTC().Format("20060102-150405"), suffix)
}

// ProgressUpdate is a partial update of a job's run state.
// Nil fields are left unchanged; UpdatedAt is always refreshed by the store.
type ProgressUpdate struct {
	FilesDiscovered *int
	FilesProcessed  *int
	Products        *EntitySummary
	Discounts       *EntitySummary
	Errors          []ErrorSample
	ErrorMessage    *string
}

// SortOrder orders job listings by start time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Listing defaults.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// JobFilter selects and pages a job listing.
type JobFilter struct {
	Status *JobStatus
	Limit  int
	Offset int
	Sort   SortOrder
}

// Normalize clamps limit and offset and defaults the sort order.
func (f JobFilter) Normalize() JobFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Sort != SortDesc {
		f.Sort = SortAsc
	}
	return f
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
