package service

import (
	"context"
	"fmt"
	"time"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/logger"
	"github.com/svebrant/product-api-assignment/internal/repository"
	"github.com/svebrant/product-api-assignment/internal/validator"
)

// JobService creates and reads ingestion jobs. Jobs are picked up by the
// scheduler, never run directly from here.
type JobService struct {
	jobRepo   repository.JobRepository
	validator *validator.Validator
	now       func() time.Time
}

var _ JobServiceInterface = (*JobService)(nil)

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, v *validator.Validator) *JobService {
	return &JobService{jobRepo: jobRepo, validator: v, now: time.Now}
}

// CreateJob validates cfg and stores a new pending job.
func (s *JobService) CreateJob(ctx context.Context, cfg domain.JobConfig) (*domain.IngestionJob, error) {
	if err := s.validator.ValidateJobConfig(&cfg); err != nil {
		return nil, err
	}

	job := domain.NewIngestionJob(cfg, s.now())
	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create ingestion job: %w", err)
	}

	logger.WithJobID(job.ID).InfoContext(ctx, "Created ingestion job",
		"mode", cfg.Mode, "workers", cfg.Workers, "chunk_size", cfg.ChunkSize,
		"retries", cfg.Retries, "fail_fast", cfg.FailFast, "dry_run", cfg.DryRun)
	return job, nil
}

// GetStatus returns the job with the given id or domain.ErrJobNotFound.
func (s *JobService) GetStatus(ctx context.Context, id string) (*domain.IngestionJob, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ingestion job: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	return job, nil
}

// ListJobs returns a page of jobs after clamping the filter.
func (s *JobService) ListJobs(ctx context.Context, filter domain.JobFilter) ([]*domain.IngestionJob, error) {
	jobs, err := s.jobRepo.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list ingestion jobs: %w", err)
	}
	return jobs, nil
}
