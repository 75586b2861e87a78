// Package ingest runs ingestion jobs. Producers read source files onto a
// bounded queue, a worker pool drains it into the record sink, and a reporter
// persists progress snapshots while the pool runs.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

// DefaultMaxErrorSamples is the error sample cap used when none is configured.
const DefaultMaxErrorSamples = 5

// RecordSink receives parsed records from the workers.
type RecordSink interface {
	CreateProduct(ctx context.Context, p domain.ProductRequest) (domain.SinkResult, error)
	ApplyDiscount(ctx context.Context, d domain.DiscountRequest) (domain.SinkResult, error)
	ApplyDiscountBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]domain.SinkResult, error)
}

type sampleKey struct {
	file string
	line int
}

// Accumulator collects the counters and error samples of one job.
// All counters are guarded by one mutex so a snapshot is consistent as a group.
type Accumulator struct {
	mu         sync.Mutex
	products   domain.EntitySummary
	discounts  domain.EntitySummary
	samples    []domain.ErrorSample
	seen       map[sampleKey]struct{}
	maxSamples int
}

// NewAccumulator creates an Accumulator keeping at most maxSamples error samples.
func NewAccumulator(maxSamples int) *Accumulator {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxErrorSamples
	}
	return &Accumulator{
		samples:    make([]domain.ErrorSample, 0, maxSamples),
		seen:       make(map[sampleKey]struct{}, maxSamples),
		maxSamples: maxSamples,
	}
}

func (a *Accumulator) summary(kind domain.EntityKind) *domain.EntitySummary {
	if kind == domain.EntityDiscount {
		return &a.discounts
	}
	return &a.products
}

// Record counts one resolved item as parsed together with its outcome counter.
func (a *Accumulator) Record(kind domain.EntityKind, outcome domain.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.summary(kind)
	s.Parsed++
	switch outcome {
	case domain.OutcomeApplied:
		s.Ingested++
	case domain.OutcomeDuplicate:
		s.Deduplicated++
	default:
		s.Failed++
	}
}

// Set replaces the counters of one entity kind.
func (a *Accumulator) Set(kind domain.EntityKind, summary domain.EntitySummary) {
	a.mu.Lock()
	defer a.mu.Unlock()
	*a.summary(kind) = summary
}

// AddErrorSample keeps a sample unless the cap is reached or (file, line) is
// already sampled. It reports whether the sample was kept.
func (a *Accumulator) AddErrorSample(file string, line int, reason string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.samples) >= a.maxSamples {
		return false
	}
	key := sampleKey{file: file, line: line}
	if _, dup := a.seen[key]; dup {
		return false
	}
	a.seen[key] = struct{}{}
	a.samples = append(a.samples, domain.ErrorSample{File: file, Line: line, Reason: reason})
	return true
}

// Snapshot is a point-in-time copy of an Accumulator.
type Snapshot struct {
	Products  domain.EntitySummary
	Discounts domain.EntitySummary
	Errors    []domain.ErrorSample
}

// Snapshot returns a copy of all counters and samples.
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	errs := make([]domain.ErrorSample, len(a.samples))
	copy(errs, a.samples)
	return Snapshot{
		Products:  a.products,
		Discounts: a.discounts,
		Errors:    errs,
	}
}

// Progress converts the snapshot into a job progress update.
func (s Snapshot) Progress() domain.ProgressUpdate {
	products, discounts := s.Products, s.Discounts
	return domain.ProgressUpdate{
		Products:  &products,
		Discounts: &discounts,
		Errors:    s.Errors,
	}
}

// Summary renders the counters as a single log line.
func (s Snapshot) Summary(dryRun bool) string {
	prefix := ""
	if dryRun {
		prefix = "[DRY RUN] "
	}
	return fmt.Sprintf("%sProducts: %s - Discounts: %s", prefix, formatSummary(s.Products), formatSummary(s.Discounts))
}

func formatSummary(s domain.EntitySummary) string {
	return fmt.Sprintf("%d parsed, %d ingested, %d failed, %d deduplicated",
		s.Parsed, s.Ingested, s.Failed, s.Deduplicated)
}
