package ingest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

func TestAccumulator_Record(t *testing.T) {
	acc := NewAccumulator(5)

	acc.Record(domain.EntityProduct, domain.OutcomeApplied)
	acc.Record(domain.EntityProduct, domain.OutcomeDuplicate)
	acc.Record(domain.EntityProduct, domain.OutcomeInvalid)
	acc.Record(domain.EntityDiscount, domain.OutcomeError)
	acc.Record(domain.EntityDiscount, domain.OutcomeApplied)

	snap := acc.Snapshot()
	assert.Equal(t, domain.EntitySummary{Parsed: 3, Ingested: 1, Failed: 1, Deduplicated: 1}, snap.Products)
	assert.Equal(t, domain.EntitySummary{Parsed: 2, Ingested: 1, Failed: 1}, snap.Discounts)
}

func TestAccumulator_ErrorSamples(t *testing.T) {
	acc := NewAccumulator(3)

	assert.True(t, acc.AddErrorSample("products.ndjson", 1, "bad"))
	assert.False(t, acc.AddErrorSample("products.ndjson", 1, "bad again"), "same (file, line) is kept once")
	assert.True(t, acc.AddErrorSample("discounts.ndjson", 1, "bad"))
	assert.True(t, acc.AddErrorSample("products.ndjson", 2, "bad"))
	assert.False(t, acc.AddErrorSample("products.ndjson", 3, "over cap"))

	snap := acc.Snapshot()
	require.Len(t, snap.Errors, 3)
	assert.Equal(t, domain.ErrorSample{File: "products.ndjson", Line: 1, Reason: "bad"}, snap.Errors[0])

	// The snapshot is a copy.
	snap.Errors[0].Reason = "changed"
	assert.Equal(t, "bad", acc.Snapshot().Errors[0].Reason)
}

func TestAccumulator_DefaultCap(t *testing.T) {
	acc := NewAccumulator(0)
	for i := 0; i < 20; i++ {
		acc.AddErrorSample("f", i, "x")
	}
	assert.Len(t, acc.Snapshot().Errors, DefaultMaxErrorSamples)
}

func TestAccumulator_ConcurrentSnapshotsAreConsistent(t *testing.T) {
	acc := NewAccumulator(5)
	outcomes := []domain.Outcome{domain.OutcomeApplied, domain.OutcomeDuplicate, domain.OutcomeInvalid, domain.OutcomeError}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				acc.Record(domain.EntityDiscount, outcomes[i%len(outcomes)])
				acc.AddErrorSample(fmt.Sprintf("w%d", w), i, "x")
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		s := acc.Snapshot().Discounts
		require.Equal(t, s.Parsed, s.Ingested+s.Failed+s.Deduplicated)
		select {
		case <-done:
			final := acc.Snapshot()
			assert.Equal(t, 4000, final.Discounts.Parsed)
			assert.LessOrEqual(t, len(final.Errors), 5)
			return
		default:
		}
	}
}

func TestAccumulator_Set(t *testing.T) {
	acc := NewAccumulator(5)
	acc.Set(domain.EntityProduct, domain.EntitySummary{Parsed: 7, Ingested: 7})

	assert.Equal(t, 7, acc.Snapshot().Products.Ingested)
	assert.Zero(t, acc.Snapshot().Discounts.Parsed)
}

func TestSnapshot_ProgressAndSummary(t *testing.T) {
	snap := Snapshot{
		Products:  domain.EntitySummary{Parsed: 4, Ingested: 2, Failed: 1, Deduplicated: 1},
		Discounts: domain.EntitySummary{Parsed: 1, Ingested: 1},
		Errors:    []domain.ErrorSample{},
	}

	update := snap.Progress()
	require.NotNil(t, update.Products)
	require.NotNil(t, update.Discounts)
	assert.Equal(t, snap.Products, *update.Products)
	assert.NotNil(t, update.Errors)
	assert.Nil(t, update.FilesProcessed)

	assert.Equal(t,
		"[DRY RUN] Products: 4 parsed, 2 ingested, 1 failed, 1 deduplicated - Discounts: 1 parsed, 1 ingested, 0 failed, 0 deduplicated",
		snap.Summary(true))
	assert.NotContains(t, snap.Summary(false), "DRY RUN")
}
