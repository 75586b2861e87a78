package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/repository"
)

func TestPostgresJobRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	repo := repository.NewPostgresJobRepository(testDB.Pool)
	testJobRepository(t, repo, func(t *testing.T) {
		testDB.TruncateTables(t, "ingestion_jobs")
	})
}

func TestMongoJobRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testMongo := SetupTestMongo(t)
	defer testMongo.Cleanup(t)

	repo := repository.NewMongoJobRepository(testMongo.DB)
	testJobRepository(t, repo, func(t *testing.T) {
		testMongo.DropCollection(t, repository.JobsCollection)
		require.NoError(t, repo.EnsureIndexes(context.Background()))
	})
}

func newJob(startedAt time.Time) *domain.IngestionJob {
	cfg := domain.DefaultJobConfig()
	cfg.Mode = domain.IngestModeProducts
	return domain.NewIngestionJob(cfg, startedAt.UTC().Truncate(time.Millisecond))
}

func testJobRepository(t *testing.T, repo repository.JobRepository, reset func(t *testing.T)) {
	ctx := context.Background()

	t.Run("create and find job", func(t *testing.T) {
		reset(t)

		job := newJob(time.Now())
		require.NoError(t, repo.CreateJob(ctx, job))

		found, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, job.ID, found.ID)
		assert.Equal(t, job.JobConfig, found.JobConfig)
		assert.Equal(t, domain.JobStatusPending, found.Status)
		assert.Empty(t, found.Errors)
		assert.WithinDuration(t, job.StartedAt, found.StartedAt, time.Millisecond)
	})

	t.Run("find missing job returns nil", func(t *testing.T) {
		reset(t)

		found, err := repo.FindByID(ctx, "ing-missing")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find by status is oldest first", func(t *testing.T) {
		reset(t)

		base := time.Now().Add(-time.Hour)
		newer := newJob(base.Add(time.Minute))
		older := newJob(base)
		require.NoError(t, repo.CreateJob(ctx, newer))
		require.NoError(t, repo.CreateJob(ctx, older))

		jobs, err := repo.FindByStatus(ctx, domain.JobStatusPending)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, older.ID, jobs[0].ID)
		assert.Equal(t, newer.ID, jobs[1].ID)

		started, err := repo.FindByStatus(ctx, domain.JobStatusStarted)
		require.NoError(t, err)
		assert.Empty(t, started)
	})

	t.Run("status transitions follow allowed predecessors", func(t *testing.T) {
		reset(t)

		job := newJob(time.Now())
		require.NoError(t, repo.CreateJob(ctx, job))

		ok, err := repo.UpdateStatus(ctx, job.ID, domain.JobStatusCompleted)
		require.NoError(t, err)
		assert.False(t, ok, "pending job cannot complete")

		ok, err = repo.UpdateStatus(ctx, job.ID, domain.JobStatusStarted)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.UpdateStatus(ctx, job.ID, domain.JobStatusStarted)
		require.NoError(t, err)
		assert.True(t, ok, "same status is idempotent")

		ok, err = repo.UpdateStatus(ctx, job.ID, domain.JobStatusFailed)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.UpdateStatus(ctx, job.ID, domain.JobStatusCompleted)
		require.NoError(t, err)
		assert.False(t, ok, "terminal job cannot change")

		_, err = repo.UpdateStatus(ctx, job.ID, domain.JobStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		found, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusFailed, found.Status)
		assert.NotNil(t, found.UpdatedAt)
	})

	t.Run("only one job can be started", func(t *testing.T) {
		reset(t)

		first := newJob(time.Now())
		second := newJob(time.Now())
		require.NoError(t, repo.CreateJob(ctx, first))
		require.NoError(t, repo.CreateJob(ctx, second))

		ok, err := repo.UpdateStatus(ctx, first.ID, domain.JobStatusStarted)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.UpdateStatus(ctx, second.ID, domain.JobStatusStarted)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.UpdateStatus(ctx, first.ID, domain.JobStatusCompleted)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.UpdateStatus(ctx, second.ID, domain.JobStatusStarted)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("update progress leaves absent fields unchanged", func(t *testing.T) {
		reset(t)

		job := newJob(time.Now())
		require.NoError(t, repo.CreateJob(ctx, job))

		ok, err := repo.UpdateProgress(ctx, job.ID, domain.ProgressUpdate{
			FilesDiscovered: domain.Ptr(1),
			FilesProcessed:  domain.Ptr(0),
		})
		require.NoError(t, err)
		require.True(t, ok)

		products := domain.EntitySummary{Parsed: 10, Ingested: 8, Failed: 1, Deduplicated: 1}
		samples := []domain.ErrorSample{{File: "products.ndjson", Line: 3, Reason: "bad json"}}
		ok, err = repo.UpdateProgress(ctx, job.ID, domain.ProgressUpdate{
			Products: &products,
			Errors:   samples,
		})
		require.NoError(t, err)
		require.True(t, ok)

		found, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.FilesDiscovered)
		assert.Equal(t, 0, found.FilesProcessed)
		assert.Equal(t, products, found.Products)
		assert.Equal(t, domain.EntitySummary{}, found.Discounts)
		assert.Equal(t, samples, found.Errors)
		assert.Nil(t, found.ErrorMessage)
		assert.NotNil(t, found.UpdatedAt)
	})

	t.Run("update progress ignores terminal jobs", func(t *testing.T) {
		reset(t)

		job := newJob(time.Now())
		require.NoError(t, repo.CreateJob(ctx, job))
		_, err := repo.UpdateStatus(ctx, job.ID, domain.JobStatusStarted)
		require.NoError(t, err)
		ok, err := repo.UpdateProgress(ctx, job.ID, domain.ProgressUpdate{ErrorMessage: domain.Ptr("boom")})
		require.NoError(t, err)
		require.True(t, ok)
		_, err = repo.UpdateStatus(ctx, job.ID, domain.JobStatusFailed)
		require.NoError(t, err)

		ok, err = repo.UpdateProgress(ctx, job.ID, domain.ProgressUpdate{FilesProcessed: domain.Ptr(1)})
		require.NoError(t, err)
		assert.False(t, ok)

		found, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.FilesProcessed)
		require.NotNil(t, found.ErrorMessage)
		assert.Equal(t, "boom", *found.ErrorMessage)
	})

	t.Run("update missing job reports false", func(t *testing.T) {
		reset(t)

		ok, err := repo.UpdateStatus(ctx, "ing-missing", domain.JobStatusStarted)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.UpdateProgress(ctx, "ing-missing", domain.ProgressUpdate{FilesProcessed: domain.Ptr(1)})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list filters pages and sorts", func(t *testing.T) {
		reset(t)

		base := time.Now().Add(-time.Hour)
		ids := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			job := newJob(base.Add(time.Duration(i) * time.Minute))
			require.NoError(t, repo.CreateJob(ctx, job))
			ids = append(ids, job.ID)
		}
		_, err := repo.UpdateStatus(ctx, ids[1], domain.JobStatusStarted)
		require.NoError(t, err)

		all, err := repo.List(ctx, domain.JobFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, ids[0], all[0].ID)

		desc, err := repo.List(ctx, domain.JobFilter{Sort: domain.SortDesc, Limit: 2})
		require.NoError(t, err)
		require.Len(t, desc, 2)
		assert.Equal(t, ids[2], desc[0].ID)
		assert.Equal(t, ids[1], desc[1].ID)

		page, err := repo.List(ctx, domain.JobFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, ids[1], page[0].ID)

		pending := domain.JobStatusPending
		filtered, err := repo.List(ctx, domain.JobFilter{Status: &pending})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		for _, j := range filtered {
			assert.Equal(t, domain.JobStatusPending, j.Status)
		}
	})
}
