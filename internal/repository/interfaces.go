package repository

import (
	"context"
	"errors"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

// ErrDuplicate is returned when a record with the same key already exists.
var ErrDuplicate = errors.New("duplicate entry")

// JobRepository defines methods for ingestion job data access.
type JobRepository interface {
	CreateJob(ctx context.Context, job *domain.IngestionJob) error
	// FindByID returns nil, nil when no job exists for id.
	FindByID(ctx context.Context, id string) (*domain.IngestionJob, error)
	// FindByStatus returns jobs in the given status, oldest first.
	FindByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.IngestionJob, error)
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.IngestionJob, error)
	// UpdateStatus moves a job to status when its current status is an allowed
	// predecessor. It reports false when the job is missing, the transition is
	// not allowed, or another job already holds the started status.
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (bool, error)
	// UpdateProgress writes the non-nil fields of update. Terminal jobs are not modified.
	UpdateProgress(ctx context.Context, id string, update domain.ProgressUpdate) (bool, error)
}

// ProductRepository defines methods for product data access.
type ProductRepository interface {
	// Create inserts a product, returning ErrDuplicate when the id already exists.
	Create(ctx context.Context, product domain.ProductRequest) error
}

// DiscountRepository defines methods for discount data access.
type DiscountRepository interface {
	// Apply returns ErrDuplicate when the discount was already applied to the product.
	Apply(ctx context.Context, discount domain.DiscountRequest) error
	// ApplyBatch applies discounts in one round trip. The returned slice is
	// positionally aligned with discounts; true marks a newly applied discount.
	ApplyBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]bool, error)
}
