package sink_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/mocks"
	"github.com/svebrant/product-api-assignment/internal/repository"
	"github.com/svebrant/product-api-assignment/internal/sink"
	"github.com/svebrant/product-api-assignment/internal/validator"
)

func TestSink_CreateProduct(t *testing.T) {
	ctx := context.Background()
	valid := domain.ProductRequest{ID: "p1", Name: "Chair", BasePrice: 10, Country: "SE"}

	t.Run("created", func(t *testing.T) {
		products := mocks.NewMockProductRepository(t)
		products.EXPECT().Create(mock.Anything, valid).Return(nil)

		res, err := sink.New(products, nil, validator.NewValidator()).CreateProduct(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeApplied, res.Outcome)
	})

	t.Run("duplicate", func(t *testing.T) {
		products := mocks.NewMockProductRepository(t)
		products.EXPECT().Create(mock.Anything, valid).
			Return(fmt.Errorf("product p1: %w", repository.ErrDuplicate))

		res, err := sink.New(products, nil, validator.NewValidator()).CreateProduct(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeDuplicate, res.Outcome)
		assert.Equal(t, "Duplicate product with id p1", res.Reason)
	})

	t.Run("invalid product is not stored", func(t *testing.T) {
		products := mocks.NewMockProductRepository(t)

		bad := valid
		bad.Country = "US"
		res, err := sink.New(products, nil, validator.NewValidator()).CreateProduct(ctx, bad)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeInvalid, res.Outcome)
		assert.Contains(t, res.Reason, "country")
	})

	t.Run("store failure is returned", func(t *testing.T) {
		products := mocks.NewMockProductRepository(t)
		products.EXPECT().Create(mock.Anything, valid).Return(errors.New("connection refused"))

		_, err := sink.New(products, nil, validator.NewValidator()).CreateProduct(ctx, valid)
		require.Error(t, err)
	})
}

func TestSink_ApplyDiscount(t *testing.T) {
	ctx := context.Background()

	applier := mocks.NewMockDiscountApplier(t)
	d := domain.DiscountRequest{ProductID: "p1", DiscountID: "d1", Percent: 10}
	applier.EXPECT().Apply(mock.Anything, d).Return(domain.Applied(), nil).Once()

	s := sink.New(nil, applier, validator.NewValidator())

	res, err := s.ApplyDiscount(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, res.Outcome)

	res, err = s.ApplyDiscount(ctx, domain.DiscountRequest{ProductID: "p1", DiscountID: "d2", Percent: 120})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInvalid, res.Outcome)
	assert.Contains(t, res.Reason, "p1-d2")
}

func TestSink_ApplyDiscountBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid items are merged back by position", func(t *testing.T) {
		applier := mocks.NewMockDiscountApplier(t)
		batch := []domain.DiscountRequest{
			{ProductID: "p1", DiscountID: "d1", Percent: 10},
			{ProductID: "", DiscountID: "d1", Percent: 10},
			{ProductID: "p3", DiscountID: "d1", Percent: 10},
			{ProductID: "p4", DiscountID: "d1", Percent: 200},
		}
		applier.EXPECT().
			ApplyBatch(mock.Anything, []domain.DiscountRequest{batch[0], batch[2]}).
			Return([]domain.SinkResult{domain.Applied(), domain.Duplicate("dup")}, nil)

		results, err := sink.New(nil, applier, validator.NewValidator()).ApplyDiscountBatch(ctx, batch)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, domain.OutcomeApplied, results[0].Outcome)
		assert.Equal(t, domain.OutcomeInvalid, results[1].Outcome)
		assert.Equal(t, domain.OutcomeDuplicate, results[2].Outcome)
		assert.Equal(t, domain.OutcomeInvalid, results[3].Outcome)
	})

	t.Run("all invalid makes no call", func(t *testing.T) {
		applier := mocks.NewMockDiscountApplier(t)

		results, err := sink.New(nil, applier, validator.NewValidator()).ApplyDiscountBatch(ctx,
			[]domain.DiscountRequest{{Percent: -1}})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, domain.OutcomeInvalid, results[0].Outcome)
	})

	t.Run("batch failure is returned", func(t *testing.T) {
		applier := mocks.NewMockDiscountApplier(t)
		applier.EXPECT().ApplyBatch(mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := sink.New(nil, applier, validator.NewValidator()).ApplyDiscountBatch(ctx,
			[]domain.DiscountRequest{{ProductID: "p1", DiscountID: "d1", Percent: 1}})
		require.Error(t, err)
	})

	t.Run("short result slice is an error", func(t *testing.T) {
		applier := mocks.NewMockDiscountApplier(t)
		applier.EXPECT().ApplyBatch(mock.Anything, mock.Anything).Return([]domain.SinkResult{}, nil)

		_, err := sink.New(nil, applier, validator.NewValidator()).ApplyDiscountBatch(ctx,
			[]domain.DiscountRequest{{ProductID: "p1", DiscountID: "d1", Percent: 1}})
		require.Error(t, err)
	})
}

type fakeDiscountRepo struct {
	applied map[string]bool
	err     error
}

func (f *fakeDiscountRepo) Apply(_ context.Context, d domain.DiscountRequest) error {
	if f.err != nil {
		return f.err
	}
	if f.applied[d.Key()] {
		return repository.ErrDuplicate
	}
	f.applied[d.Key()] = true
	return nil
}

func (f *fakeDiscountRepo) ApplyBatch(ctx context.Context, ds []domain.DiscountRequest) ([]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]bool, len(ds))
	for i, d := range ds {
		out[i] = f.Apply(ctx, d) == nil
	}
	return out, nil
}

func TestRepositoryApplier(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDiscountRepo{applied: map[string]bool{"p2-d1": true}}
	a := sink.NewRepositoryApplier(repo)

	res, err := a.Apply(ctx, domain.DiscountRequest{ProductID: "p1", DiscountID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, domain.Applied(), res)

	res, err = a.Apply(ctx, domain.DiscountRequest{ProductID: "p1", DiscountID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, domain.Duplicate("Duplicate discount with composite key p1-d1"), res)

	results, err := a.ApplyBatch(ctx, []domain.DiscountRequest{
		{ProductID: "p3", DiscountID: "d1"},
		{ProductID: "p2", DiscountID: "d1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.SinkResult{
		domain.Applied(),
		domain.Duplicate("Duplicate discount with composite key p2-d1"),
	}, results)

	repo.err = errors.New("db down")
	_, err = a.ApplyBatch(ctx, []domain.DiscountRequest{{ProductID: "p9", DiscountID: "d9"}})
	require.Error(t, err)
}
