package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/metrics"
)

const unknownError = "Unknown error"

// Pool drains the work queue with a fixed number of workers.
type Pool struct {
	cfg    domain.JobConfig
	sink   RecordSink
	acc    *Accumulator
	logger *slog.Logger
}

// NewPool creates a Pool configured from a job.
func NewPool(cfg domain.JobConfig, sink RecordSink, acc *Accumulator, logger *slog.Logger) *Pool {
	return &Pool{cfg: cfg, sink: sink, acc: acc, logger: logger}
}

// Run starts the workers and blocks until items is closed and drained.
// The first fail-fast error cancels every other worker and is returned.
func (p *Pool) Run(ctx context.Context, items <-chan domain.WorkItem) error {
	workers := max(p.cfg.Workers, 1)
	chunk := max(p.cfg.ChunkSize, 1)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		w := &worker{
			id:     i,
			pool:   p,
			chunk:  chunk,
			batch:  make([]domain.WorkItem, 0, chunk),
			logger: p.logger.With("worker_id", i),
		}
		g.Go(func() error { return w.run(gctx, items) })
	}
	return g.Wait()
}

// worker owns its discount batch; batches are never shared between workers.
type worker struct {
	id     int
	pool   *Pool
	chunk  int
	batch  []domain.WorkItem
	logger *slog.Logger
}

func (w *worker) run(ctx context.Context, items <-chan domain.WorkItem) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item, ok := <-items:
			if !ok {
				return w.flush(ctx)
			}
			metrics.QueueDepth.Set(float64(len(items)))
			if err := w.handle(ctx, item); err != nil {
				return err
			}
		}
	}
}

func (w *worker) handle(ctx context.Context, item domain.WorkItem) error {
	switch item.Kind {
	case domain.EntityProduct:
		return w.processProduct(ctx, item)
	case domain.EntityDiscount:
		w.batch = append(w.batch, item)
		if len(w.batch) >= w.chunk {
			return w.flush(ctx)
		}
		return nil
	default:
		return w.resolve(item, domain.Failed(fmt.Sprintf("unknown entity kind %q", item.Kind)))
	}
}

func (w *worker) processProduct(ctx context.Context, item domain.WorkItem) error {
	res, err := retry(ctx, w, domain.EntityProduct, func(ctx context.Context) (domain.SinkResult, error) {
		var p domain.ProductRequest
		if err := json.Unmarshal([]byte(item.Line), &p); err != nil {
			return domain.SinkResult{}, fmt.Errorf("invalid product JSON: %w", err)
		}
		// Orchestrator dry runs only count lines and never build a pool.
		if w.pool.cfg.DryRun {
			return domain.Applied(), nil
		}

		timer := metrics.NewTimer()
		defer func() {
			metrics.ObserveBatchDuration(string(domain.EntityProduct), "create", timer.Elapsed().Seconds())
		}()
		return w.pool.sink.CreateProduct(ctx, p)
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Error("Failed to ingest product after retries",
			"file", item.File, "line", item.LineNumber, "error", err)
		res = domain.Failed(err.Error())
	}
	return w.resolve(item, res)
}

// flush sends the buffered discounts and resolves every item by position.
func (w *worker) flush(ctx context.Context) error {
	if len(w.batch) == 0 {
		return nil
	}
	batch := w.batch
	w.batch = make([]domain.WorkItem, 0, w.chunk)

	results := make([]domain.SinkResult, len(batch))
	requests := make([]domain.DiscountRequest, 0, len(batch))
	positions := make([]int, 0, len(batch))

	for i, item := range batch {
		var d domain.DiscountRequest
		if err := json.Unmarshal([]byte(item.Line), &d); err != nil {
			results[i] = domain.Invalid(fmt.Sprintf("invalid discount JSON: %v", err))
			continue
		}
		requests = append(requests, d)
		positions = append(positions, i)
	}

	if len(requests) > 0 {
		sent, err := w.sendDiscounts(ctx, requests)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("Failed to ingest discount batch after retries",
				"file", batch[0].File, "first_line", batch[0].LineNumber, "items", len(requests), "error", err)
			for _, pos := range positions {
				results[pos] = domain.Failed(err.Error())
			}
		} else {
			for j, pos := range positions {
				results[pos] = sent[j]
			}
		}
	}

	for i, item := range batch {
		if err := w.resolve(item, results[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *worker) sendDiscounts(ctx context.Context, requests []domain.DiscountRequest) ([]domain.SinkResult, error) {
	// Reached only by pools built with DryRun set, never by the orchestrator.
	if w.pool.cfg.DryRun {
		results := make([]domain.SinkResult, len(requests))
		for i := range results {
			results[i] = domain.Applied()
		}
		return results, nil
	}

	return retry(ctx, w, domain.EntityDiscount, func(ctx context.Context) ([]domain.SinkResult, error) {
		timer := metrics.NewTimer()
		if len(requests) == 1 {
			res, err := w.pool.sink.ApplyDiscount(ctx, requests[0])
			metrics.ObserveBatchDuration(string(domain.EntityDiscount), "apply", timer.Elapsed().Seconds())
			if err != nil {
				return nil, err
			}
			return []domain.SinkResult{res}, nil
		}

		results, err := w.pool.sink.ApplyDiscountBatch(ctx, requests)
		metrics.ObserveBatchDuration(string(domain.EntityDiscount), "apply_batch", timer.Elapsed().Seconds())
		if err != nil {
			return nil, err
		}
		if len(results) != len(requests) {
			return nil, fmt.Errorf("discount batch returned %d results for %d discounts", len(results), len(requests))
		}
		return results, nil
	})
}

// resolve counts the final outcome of one item. On a fail-fast job any
// outcome other than applied aborts the job.
func (w *worker) resolve(item domain.WorkItem, res domain.SinkResult) error {
	w.pool.acc.Record(item.Kind, res.Outcome)
	metrics.ObserveRecord(string(item.Kind), string(res.Outcome))
	if res.Outcome == domain.OutcomeApplied {
		return nil
	}

	reason := res.Reason
	if reason == "" {
		reason = unknownError
	}
	w.pool.acc.AddErrorSample(item.File, item.LineNumber, reason)
	w.logger.Debug("Record not ingested",
		"file", item.File, "line", item.LineNumber, "outcome", res.Outcome, "reason", reason)

	if w.pool.cfg.FailFast {
		return domain.FailFast(item.Kind, reason)
	}
	return nil
}

// retry runs op up to retries+1 times and returns the last error once all
// attempts fail. Classified sink results are returned as-is and never retried.
func retry[T any](ctx context.Context, w *worker, kind domain.EntityKind, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= w.pool.cfg.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if attempt > 0 {
			metrics.ObserveRetry(string(kind))
			w.logger.Warn("Retrying", "entity", kind, "attempt", attempt, "error", lastErr)
		}
		res, err := op(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return zero, lastErr
}
