package ingest

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/source"
)

// memStore is an in-memory job store enforcing the same transition rules as
// the database repositories.
type memStore struct {
	mu             sync.Mutex
	jobs           map[string]*domain.IngestionJob
	statuses       []domain.JobStatus
	progressWrites int
}

func newMemStore(jobs ...*domain.IngestionJob) *memStore {
	s := &memStore{jobs: make(map[string]*domain.IngestionJob)}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *memStore) CreateJob(_ context.Context, job *domain.IngestionJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return fmt.Errorf("job %s exists", job.ID)
	}
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*domain.IngestionJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (s *memStore) FindByStatus(_ context.Context, status domain.JobStatus) ([]*domain.IngestionJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.IngestionJob
	for _, j := range s.jobs {
		if j.Status == status {
			cp := *j
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartedAt.Before(out[b].StartedAt) })
	return out, nil
}

func (s *memStore) List(context.Context, domain.JobFilter) ([]*domain.IngestionJob, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *memStore) UpdateStatus(_ context.Context, id string, status domain.JobStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok || !domain.CanTransition(j.Status, status) {
		return false, nil
	}
	if status == domain.JobStatusStarted {
		for otherID, other := range s.jobs {
			if otherID != id && other.Status == domain.JobStatusStarted {
				return false, nil
			}
		}
	}
	j.Status = status
	s.statuses = append(s.statuses, status)
	return true, nil
}

func (s *memStore) UpdateProgress(_ context.Context, id string, u domain.ProgressUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok || j.Status.IsTerminal() {
		return false, nil
	}
	if u.FilesDiscovered != nil {
		j.FilesDiscovered = *u.FilesDiscovered
	}
	if u.FilesProcessed != nil {
		j.FilesProcessed = *u.FilesProcessed
	}
	if u.Products != nil {
		j.Products = *u.Products
	}
	if u.Discounts != nil {
		j.Discounts = *u.Discounts
	}
	if u.Errors != nil {
		j.Errors = u.Errors
	}
	if u.ErrorMessage != nil {
		j.ErrorMessage = u.ErrorMessage
	}
	now := time.Now()
	j.UpdatedAt = &now
	s.progressWrites++
	return true, nil
}

func (s *memStore) job(id string) domain.IngestionJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.jobs[id]
}

func (s *memStore) history() []domain.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.JobStatus(nil), s.statuses...)
}

// memSource serves files from memory.
type memSource struct {
	files map[string]string
	err   error
}

func (m *memSource) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	body, ok := m.files[fileID]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", fileID, source.ErrNotFound)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

// fakeSink stores records in memory and honours cancellation.
type fakeSink struct {
	mu        sync.Mutex
	products  map[string]bool
	discounts map[string]bool
	delay     time.Duration

	productCalls  atomic.Int32
	discountCalls atomic.Int32
}

func newFakeSink() *fakeSink {
	return &fakeSink{products: map[string]bool{}, discounts: map[string]bool{}}
}

func (f *fakeSink) wait(ctx context.Context) error {
	if f.delay == 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeSink) CreateProduct(ctx context.Context, p domain.ProductRequest) (domain.SinkResult, error) {
	f.productCalls.Add(1)
	if err := f.wait(ctx); err != nil {
		return domain.SinkResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.products[p.ID] {
		return domain.Duplicate("Duplicate product with id " + p.ID), nil
	}
	f.products[p.ID] = true
	return domain.Applied(), nil
}

func (f *fakeSink) ApplyDiscount(ctx context.Context, d domain.DiscountRequest) (domain.SinkResult, error) {
	res, err := f.ApplyDiscountBatch(ctx, []domain.DiscountRequest{d})
	if err != nil {
		return domain.SinkResult{}, err
	}
	return res[0], nil
}

func (f *fakeSink) ApplyDiscountBatch(ctx context.Context, ds []domain.DiscountRequest) ([]domain.SinkResult, error) {
	f.discountCalls.Add(1)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.SinkResult, len(ds))
	for i, d := range ds {
		if f.discounts[d.Key()] {
			out[i] = domain.Duplicate("Duplicate discount with composite key " + d.Key())
			continue
		}
		f.discounts[d.Key()] = true
		out[i] = domain.Applied()
	}
	return out, nil
}

func (f *fakeSink) productCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

func productLines(n int, malformed ...int) string {
	bad := make(map[int]bool, len(malformed))
	for _, m := range malformed {
		bad[m] = true
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if bad[i] {
			b.WriteString(`{"id": "p` + fmt.Sprint(i) + `", "name": `)
		} else {
			fmt.Fprintf(&b, `{"id":"p%d","name":"Product %d","basePrice":%d.5,"country":"SE"}`, i, i, i+1)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func discountLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `{"productId":"p%d","discountId":"d1","percent":10}`+"\n", i)
	}
	return b.String()
}
