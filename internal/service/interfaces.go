package service

import (
	"context"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

// JobServiceInterface defines the job operations exposed to callers.
// Used for dependency injection and mocking in tests.
type JobServiceInterface interface {
	// CreateJob validates cfg and stores a new pending job.
	CreateJob(ctx context.Context, cfg domain.JobConfig) (*domain.IngestionJob, error)
	// GetStatus returns the full snapshot of a job.
	GetStatus(ctx context.Context, id string) (*domain.IngestionJob, error)
	// ListJobs returns a page of jobs.
	ListJobs(ctx context.Context, filter domain.JobFilter) ([]*domain.IngestionJob, error)
}
