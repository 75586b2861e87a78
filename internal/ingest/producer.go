package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/metrics"
	"github.com/svebrant/product-api-assignment/internal/source"
)

const (
	// ScannerBufferSize is the initial buffer size for the line scanner
	ScannerBufferSize = 64 * 1024 // 64KB
	// ScannerMaxBufferSize is the maximum length of a single line
	ScannerMaxBufferSize = 1024 * 1024 // 1MB

	// ThroughputLogInterval is how often producers log read progress
	ThroughputLogInterval = 10 * time.Second
)

// SourceFile names a file and the kind of records it holds.
type SourceFile struct {
	ID   string
	Kind domain.EntityKind
}

// Producer reads source files line by line onto the work queue.
type Producer struct {
	source      source.LineSource
	logger      *slog.Logger
	logInterval time.Duration
}

// NewProducer creates a Producer reading from src.
func NewProducer(src source.LineSource, logger *slog.Logger) *Producer {
	return &Producer{source: src, logger: logger, logInterval: ThroughputLogInterval}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, ScannerBufferSize)
	scanner.Buffer(buf, ScannerMaxBufferSize)
	return scanner
}

// Produce sends one work item per line of fileID to out, numbered from 0.
// A missing file yields no items and no error. It returns the number of items sent.
func (p *Producer) Produce(ctx context.Context, fileID string, kind domain.EntityKind, out chan<- domain.WorkItem) (int, error) {
	rc, err := p.source.Open(ctx, fileID)
	if errors.Is(err, source.ErrNotFound) {
		p.logger.Warn("Source file not found, skipping", "file", fileID, "entity", kind)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", fileID, err)
	}
	defer rc.Close()

	p.logger.Info("Reading source file", "file", fileID, "entity", kind)

	scanner := newScanner(rc)
	start := time.Now()
	lastLog := start
	lines := metrics.LinesRead.WithLabelValues(string(kind))
	sent := 0

	for scanner.Scan() {
		item := domain.WorkItem{Kind: kind, Line: scanner.Text(), LineNumber: sent, File: fileID}
		select {
		case out <- item:
		case <-ctx.Done():
			return sent, ctx.Err()
		}
		sent++
		lines.Inc()
		metrics.QueueDepth.Set(float64(len(out)))

		if now := time.Now(); now.Sub(lastLog) >= p.logInterval {
			elapsed := now.Sub(start)
			p.logger.Info("Read progress",
				"file", fileID,
				"lines", sent,
				"lines_per_sec", int(float64(sent)/elapsed.Seconds()),
				"elapsed", elapsed.Round(time.Second))
			lastLog = now
		}
	}
	if err := scanner.Err(); err != nil {
		return sent, fmt.Errorf("read %s after line %d: %w", fileID, sent, err)
	}

	p.logger.Info("Finished reading source file",
		"file", fileID,
		"lines", sent,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return sent, nil
}

// ProduceAll runs one producer per file concurrently and closes out once
// every producer has returned.
func (p *Producer) ProduceAll(ctx context.Context, files []SourceFile, out chan<- domain.WorkItem) error {
	defer close(out)

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			_, err := p.Produce(gctx, f.ID, f.Kind, out)
			return err
		})
	}
	return g.Wait()
}

// CountLines returns the number of lines in fileID. A missing file counts as zero.
func CountLines(ctx context.Context, src source.LineSource, fileID string) (int, error) {
	rc, err := src.Open(ctx, fileID)
	if errors.Is(err, source.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", fileID, err)
	}
	defer rc.Close()

	scanner := newScanner(rc)
	n := 0
	for scanner.Scan() {
		n++
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("count %s: %w", fileID, err)
	}
	return n, nil
}
