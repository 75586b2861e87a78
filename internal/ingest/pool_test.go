package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/mocks"
)

func queueOf(items ...domain.WorkItem) <-chan domain.WorkItem {
	ch := make(chan domain.WorkItem, len(items))
	for _, item := range items {
		ch <- item
	}
	close(ch)
	return ch
}

func discountItem(line int, body string) domain.WorkItem {
	return domain.WorkItem{Kind: domain.EntityDiscount, Line: body, LineNumber: line, File: "discounts.ndjson"}
}

func productItem(line int, body string) domain.WorkItem {
	return domain.WorkItem{Kind: domain.EntityProduct, Line: body, LineNumber: line, File: "products.ndjson"}
}

func jobConfig(workers, chunk, retries int, failFast bool) domain.JobConfig {
	return domain.JobConfig{Mode: domain.IngestModeAll, Workers: workers, ChunkSize: chunk, Retries: retries, FailFast: failFast}
}

func TestPool_DiscountBatchWithAlreadyApplied(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().
		ApplyDiscountBatch(mock.Anything, mock.MatchedBy(func(ds []domain.DiscountRequest) bool { return len(ds) == 3 })).
		Return([]domain.SinkResult{
			domain.Applied(),
			domain.Duplicate("Duplicate discount with composite key p2-d1"),
			domain.Applied(),
		}, nil).
		Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 3, 2, false), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		discountItem(0, `{"productId":"p1","discountId":"d1","percent":10}`),
		discountItem(1, `{"productId":"p2","discountId":"d1","percent":10}`),
		discountItem(2, `{"productId":"p3","discountId":"d1","percent":10}`),
	))
	require.NoError(t, err)

	snap := acc.Snapshot()
	assert.Equal(t, domain.EntitySummary{Parsed: 3, Ingested: 2, Deduplicated: 1}, snap.Discounts)
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, domain.ErrorSample{
		File:   "discounts.ndjson",
		Line:   1,
		Reason: "Duplicate discount with composite key p2-d1",
	}, snap.Errors[0])
}

func TestPool_RemainderBatchIsFlushedAtEndOfStream(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().ApplyDiscountBatch(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, ds []domain.DiscountRequest) ([]domain.SinkResult, error) {
			out := make([]domain.SinkResult, len(ds))
			for i := range out {
				out[i] = domain.Applied()
			}
			return out, nil
		}).Twice()
	sink.EXPECT().ApplyDiscount(mock.Anything, domain.DiscountRequest{ProductID: "p4", DiscountID: "d1", Percent: 1}).
		Return(domain.Applied(), nil).Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 2, 0, false), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		discountItem(0, `{"productId":"p0","discountId":"d1","percent":1}`),
		discountItem(1, `{"productId":"p1","discountId":"d1","percent":1}`),
		discountItem(2, `{"productId":"p2","discountId":"d1","percent":1}`),
		discountItem(3, `{"productId":"p3","discountId":"d1","percent":1}`),
		discountItem(4, `{"productId":"p4","discountId":"d1","percent":1}`),
	))
	require.NoError(t, err)
	assert.Equal(t, 5, acc.Snapshot().Discounts.Ingested)
}

func TestPool_MalformedDiscountIsNotSent(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().ApplyDiscount(mock.Anything, domain.DiscountRequest{ProductID: "p1", DiscountID: "d1", Percent: 5}).
		Return(domain.Applied(), nil).Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 10, 1, false), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		discountItem(0, `not json`),
		discountItem(1, `{"productId":"p1","discountId":"d1","percent":5}`),
	))
	require.NoError(t, err)

	snap := acc.Snapshot()
	assert.Equal(t, domain.EntitySummary{Parsed: 2, Ingested: 1, Failed: 1}, snap.Discounts)
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, 0, snap.Errors[0].Line)
	assert.Contains(t, snap.Errors[0].Reason, "invalid discount JSON")
}

func TestPool_BatchFailureMarksEveryItemFailed(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().ApplyDiscountBatch(mock.Anything, mock.Anything).
		Return(nil, errors.New("discount service unavailable")).
		Times(3)

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 2, 2, false), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		discountItem(0, `{"productId":"p1","discountId":"d1","percent":10}`),
		discountItem(1, `{"productId":"p2","discountId":"d1","percent":10}`),
	))
	require.NoError(t, err)

	snap := acc.Snapshot()
	assert.Equal(t, domain.EntitySummary{Parsed: 2, Failed: 2}, snap.Discounts)
	require.Len(t, snap.Errors, 2)
	assert.Equal(t, "discount service unavailable", snap.Errors[1].Reason)
}

func TestPool_TransientProductErrorIsRetriedAndCountedOnce(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().CreateProduct(mock.Anything, mock.Anything).Return(domain.SinkResult{}, errors.New("timeout")).Once()
	sink.EXPECT().CreateProduct(mock.Anything, mock.Anything).Return(domain.Applied(), nil).Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 10, 1, false), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		productItem(0, `{"id":"p1","name":"Chair","basePrice":10,"country":"SE"}`),
	))
	require.NoError(t, err)

	snap := acc.Snapshot()
	assert.Equal(t, domain.EntitySummary{Parsed: 1, Ingested: 1}, snap.Products)
	assert.Empty(t, snap.Errors)
}

func TestPool_ClassifiedResultsAreNotRetried(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().CreateProduct(mock.Anything, mock.Anything).
		Return(domain.Invalid("validation error for product with id p1: country: must be a valid value"), nil).
		Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 10, 3, false), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		productItem(4, `{"id":"p1","name":"Chair","basePrice":10,"country":"US"}`),
	))
	require.NoError(t, err)
	assert.Equal(t, domain.EntitySummary{Parsed: 1, Failed: 1}, acc.Snapshot().Products)
}

func TestPool_FailFastOnDuplicate(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().CreateProduct(mock.Anything, mock.Anything).
		Return(domain.Duplicate("Duplicate product with id p1"), nil).
		Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 10, 0, true), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		productItem(0, `{"id":"p1","name":"Chair","basePrice":10,"country":"SE"}`),
		productItem(1, `{"id":"p2","name":"Table","basePrice":10,"country":"SE"}`),
	))
	require.ErrorIs(t, err, domain.ErrFailFast)

	snap := acc.Snapshot()
	assert.Equal(t, domain.EntitySummary{Parsed: 1, Deduplicated: 1}, snap.Products)
	assert.Len(t, snap.Errors, 1)
}

func TestPool_FailFastStopsRestOfBatch(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	sink.EXPECT().ApplyDiscountBatch(mock.Anything, mock.Anything).
		Return([]domain.SinkResult{domain.Applied(), domain.Failed("product not found"), domain.Applied()}, nil).
		Once()

	acc := NewAccumulator(5)
	pool := NewPool(jobConfig(1, 3, 0, true), sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		discountItem(0, `{"productId":"p1","discountId":"d1","percent":10}`),
		discountItem(1, `{"productId":"p2","discountId":"d1","percent":10}`),
		discountItem(2, `{"productId":"p3","discountId":"d1","percent":10}`),
	))
	require.ErrorIs(t, err, domain.ErrFailFast)
	assert.Equal(t, domain.EntitySummary{Parsed: 2, Ingested: 1, Failed: 1}, acc.Snapshot().Discounts)
}

func TestPool_DryRunMakesNoSinkCalls(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)

	cfg := jobConfig(2, 2, 0, false)
	cfg.DryRun = true
	acc := NewAccumulator(5)
	pool := NewPool(cfg, sink, acc, discardLogger())

	err := pool.Run(context.Background(), queueOf(
		productItem(0, `{"id":"p1","name":"Chair","basePrice":10,"country":"SE"}`),
		discountItem(0, `{"productId":"p1","discountId":"d1","percent":10}`),
		discountItem(1, `{"productId":"p2","discountId":"d1","percent":10}`),
		discountItem(2, `{"productId":"p3","discountId":"d1","percent":10}`),
	))
	require.NoError(t, err)

	snap := acc.Snapshot()
	assert.Equal(t, snap.Products.Parsed, snap.Products.Ingested)
	assert.Equal(t, domain.EntitySummary{Parsed: 3, Ingested: 3}, snap.Discounts)
}

func TestPool_CancelledContextStopsWorkers(t *testing.T) {
	sink := newFakeSink()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make(chan domain.WorkItem)
	err := NewPool(jobConfig(3, 10, 0, false), sink, NewAccumulator(5), discardLogger()).Run(ctx, items)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sink.productCalls.Load())
}
