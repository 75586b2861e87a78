package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

const uniqueViolation = "23505"

const jobColumns = `id, mode, workers, chunk_size, retries, fail_fast, dry_run, status,
	files_discovered, files_processed,
	products_parsed, products_ingested, products_failed, products_deduplicated,
	discounts_parsed, discounts_ingested, discounts_failed, discounts_deduplicated,
	errors, error_message, started_at, updated_at`

// PostgresJobRepository implements JobRepository using PostgreSQL.
type PostgresJobRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresJobRepository creates a new PostgresJobRepository.
func NewPostgresJobRepository(pool *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{pool: pool}
}

// CreateJob inserts a new ingestion job.
func (r *PostgresJobRepository) CreateJob(ctx context.Context, job *domain.IngestionJob) error {
	samples := job.Errors
	if samples == nil {
		samples = []domain.ErrorSample{}
	}
	errorsJSON, err := json.Marshal(samples)
	if err != nil {
		return fmt.Errorf("marshal error samples: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO ingestion_jobs (id, mode, workers, chunk_size, retries, fail_fast, dry_run, status,
			files_discovered, files_processed, errors, error_message, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, job.ID, job.Mode, job.Workers, job.ChunkSize, job.Retries, job.FailFast, job.DryRun, job.Status,
		job.FilesDiscovered, job.FilesProcessed, errorsJSON, job.ErrorMessage, job.StartedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert ingestion job: %w", err)
	}

	return nil
}

// FindByID retrieves an ingestion job by ID.
func (r *PostgresJobRepository) FindByID(ctx context.Context, id string) (*domain.IngestionJob, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM ingestion_jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingestion job: %w", err)
	}

	return job, nil
}

// FindByStatus retrieves all jobs in the given status, oldest first.
func (r *PostgresJobRepository) FindByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.IngestionJob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM ingestion_jobs
		WHERE status = $1
		ORDER BY started_at ASC, id ASC
	`, status)
	if err != nil {
		return nil, fmt.Errorf("query jobs by status: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// List retrieves a page of jobs ordered by start time.
func (r *PostgresJobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.IngestionJob, error) {
	filter = filter.Normalize()

	order := "ASC"
	if filter.Sort == domain.SortDesc {
		order = "DESC"
	}

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM ingestion_jobs
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY started_at `+order+`, id `+order+`
		LIMIT $2 OFFSET $3
	`, status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// UpdateStatus moves a job to status if its current status allows it.
func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (bool, error) {
	preds := domain.AllowedPredecessors(status)
	if len(preds) == 0 {
		return false, fmt.Errorf("update status to %s: %w", status, domain.ErrInvalidTransition)
	}
	from := make([]string, len(preds))
	for i, p := range preds {
		from[i] = string(p)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE ingestion_jobs
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = ANY($4)
	`, id, status, time.Now().UTC(), from)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// another job is already started
			return false, nil
		}
		return false, fmt.Errorf("update job status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateProgress writes the provided progress fields of a non-terminal job.
func (r *PostgresJobRepository) UpdateProgress(ctx context.Context, id string, update domain.ProgressUpdate) (bool, error) {
	var errorsJSON []byte
	if update.Errors != nil {
		var err error
		errorsJSON, err = json.Marshal(update.Errors)
		if err != nil {
			return false, fmt.Errorf("marshal error samples: %w", err)
		}
	}

	args := []any{id, update.FilesDiscovered, update.FilesProcessed}
	args = append(args, summaryArgs(update.Products)...)
	args = append(args, summaryArgs(update.Discounts)...)
	args = append(args, errorsJSON, update.ErrorMessage, time.Now().UTC())

	tag, err := r.pool.Exec(ctx, `
		UPDATE ingestion_jobs
		SET files_discovered = COALESCE($2::int, files_discovered),
			files_processed = COALESCE($3::int, files_processed),
			products_parsed = COALESCE($4::int, products_parsed),
			products_ingested = COALESCE($5::int, products_ingested),
			products_failed = COALESCE($6::int, products_failed),
			products_deduplicated = COALESCE($7::int, products_deduplicated),
			discounts_parsed = COALESCE($8::int, discounts_parsed),
			discounts_ingested = COALESCE($9::int, discounts_ingested),
			discounts_failed = COALESCE($10::int, discounts_failed),
			discounts_deduplicated = COALESCE($11::int, discounts_deduplicated),
			errors = COALESCE($12::jsonb, errors),
			error_message = COALESCE($13::text, error_message),
			updated_at = $14
		WHERE id = $1 AND status NOT IN ('completed', 'failed')
	`, args...)
	if err != nil {
		return false, fmt.Errorf("update job progress: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func summaryArgs(s *domain.EntitySummary) []any {
	if s == nil {
		return []any{nil, nil, nil, nil}
	}
	return []any{s.Parsed, s.Ingested, s.Failed, s.Deduplicated}
}

func scanJob(row pgx.Row) (*domain.IngestionJob, error) {
	var job domain.IngestionJob
	var errorsJSON []byte

	err := row.Scan(&job.ID, &job.Mode, &job.Workers, &job.ChunkSize, &job.Retries, &job.FailFast, &job.DryRun,
		&job.Status, &job.FilesDiscovered, &job.FilesProcessed,
		&job.Products.Parsed, &job.Products.Ingested, &job.Products.Failed, &job.Products.Deduplicated,
		&job.Discounts.Parsed, &job.Discounts.Ingested, &job.Discounts.Failed, &job.Discounts.Deduplicated,
		&errorsJSON, &job.ErrorMessage, &job.StartedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}

	job.Errors = []domain.ErrorSample{}
	if errorsJSON != nil {
		if err := json.Unmarshal(errorsJSON, &job.Errors); err != nil {
			return nil, fmt.Errorf("unmarshal error samples: %w", err)
		}
	}

	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]*domain.IngestionJob, error) {
	jobs := make([]*domain.IngestionJob, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}
