package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/mocks"
)

func TestReporter_WritesPeriodicallyAndOnStop(t *testing.T) {
	job := pendingJob(domain.DefaultJobConfig())
	store := newMemStore(job)
	acc := NewAccumulator(5)
	r := NewReporter(store, job.ID, acc, 5*time.Millisecond, false, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.progressWrites >= 2
	}, time.Second, time.Millisecond)

	acc.Record(domain.EntityProduct, domain.OutcomeApplied)
	cancel()
	<-done

	assert.Equal(t, 1, store.job(job.ID).Products.Ingested, "final write carries the tail of progress")
}

func TestReporter_FinalFlushUsesLiveContext(t *testing.T) {
	var writeErr error
	store := mocks.NewMockJobRepository(t)
	store.EXPECT().UpdateProgress(mock.Anything, "ing-1", mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, _ domain.ProgressUpdate) (bool, error) {
			writeErr = ctx.Err()
			return true, nil
		}).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewReporter(store, "ing-1", NewAccumulator(5), time.Hour, false, discardLogger()).Run(ctx)

	assert.NoError(t, writeErr)
}

func TestReporter_FlushErrorsAreLogged(t *testing.T) {
	store := mocks.NewMockJobRepository(t)
	store.EXPECT().UpdateProgress(mock.Anything, "ing-1", mock.Anything).Return(false, errors.New("db down")).Once()
	store.EXPECT().UpdateProgress(mock.Anything, "ing-1", mock.Anything).Return(false, nil).Once()

	r := NewReporter(store, "ing-1", NewAccumulator(5), 0, true, discardLogger())
	assert.Equal(t, DefaultProgressInterval, r.interval)

	r.Flush(context.Background())
	r.Flush(context.Background())
}
