// Package sink validates records and writes them to the backing stores.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/repository"
	"github.com/svebrant/product-api-assignment/internal/validator"
)

// DiscountApplier applies discounts to products. Returned errors are
// transient failures; classified outcomes are reported as results.
type DiscountApplier interface {
	Apply(ctx context.Context, d domain.DiscountRequest) (domain.SinkResult, error)
	ApplyBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]domain.SinkResult, error)
}

// Sink is the record sink used by the ingestion workers.
type Sink struct {
	products  repository.ProductRepository
	discounts DiscountApplier
	validator *validator.Validator
}

// New creates a Sink.
func New(products repository.ProductRepository, discounts DiscountApplier, v *validator.Validator) *Sink {
	return &Sink{products: products, discounts: discounts, validator: v}
}

// CreateProduct validates and stores a product.
func (s *Sink) CreateProduct(ctx context.Context, p domain.ProductRequest) (domain.SinkResult, error) {
	if err := s.validator.ValidateProduct(&p); err != nil {
		return domain.Invalid(fmt.Sprintf("validation error for product with id %s: %v", p.ID, err)), nil
	}

	err := s.products.Create(ctx, p)
	switch {
	case err == nil:
		return domain.Applied(), nil
	case errors.Is(err, repository.ErrDuplicate):
		return domain.Duplicate(fmt.Sprintf("Duplicate product with id %s", p.ID)), nil
	default:
		return domain.SinkResult{}, err
	}
}

// ApplyDiscount validates and applies a single discount.
func (s *Sink) ApplyDiscount(ctx context.Context, d domain.DiscountRequest) (domain.SinkResult, error) {
	if err := s.validator.ValidateDiscount(&d); err != nil {
		return discountInvalid(d, err), nil
	}
	return s.discounts.Apply(ctx, d)
}

// ApplyDiscountBatch validates discounts and applies the valid ones in one call.
// The result slice is aligned with discounts by position.
func (s *Sink) ApplyDiscountBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]domain.SinkResult, error) {
	results := make([]domain.SinkResult, len(discounts))
	valid := make([]domain.DiscountRequest, 0, len(discounts))
	positions := make([]int, 0, len(discounts))

	for i := range discounts {
		if err := s.validator.ValidateDiscount(&discounts[i]); err != nil {
			results[i] = discountInvalid(discounts[i], err)
			continue
		}
		valid = append(valid, discounts[i])
		positions = append(positions, i)
	}

	if len(valid) == 0 {
		return results, nil
	}

	applied, err := s.discounts.ApplyBatch(ctx, valid)
	if err != nil {
		return nil, err
	}
	if len(applied) != len(valid) {
		return nil, fmt.Errorf("discount batch returned %d results for %d discounts", len(applied), len(valid))
	}

	for j, pos := range positions {
		results[pos] = applied[j]
	}
	return results, nil
}

func discountInvalid(d domain.DiscountRequest, err error) domain.SinkResult {
	return domain.Invalid(fmt.Sprintf("validation error for discount with composite key %s: %v", d.Key(), err))
}

// RepositoryApplier applies discounts directly through a DiscountRepository.
type RepositoryApplier struct {
	repo repository.DiscountRepository
}

// NewRepositoryApplier creates a RepositoryApplier.
func NewRepositoryApplier(repo repository.DiscountRepository) *RepositoryApplier {
	return &RepositoryApplier{repo: repo}
}

// Apply applies a single discount.
func (a *RepositoryApplier) Apply(ctx context.Context, d domain.DiscountRequest) (domain.SinkResult, error) {
	err := a.repo.Apply(ctx, d)
	switch {
	case err == nil:
		return domain.Applied(), nil
	case errors.Is(err, repository.ErrDuplicate):
		return domain.Duplicate(duplicateReason(d)), nil
	default:
		return domain.SinkResult{}, err
	}
}

// ApplyBatch applies discounts in one transaction.
func (a *RepositoryApplier) ApplyBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]domain.SinkResult, error) {
	applied, err := a.repo.ApplyBatch(ctx, discounts)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SinkResult, len(applied))
	for i, ok := range applied {
		if ok {
			results[i] = domain.Applied()
		} else {
			results[i] = domain.Duplicate(duplicateReason(discounts[i]))
		}
	}
	return results, nil
}

func duplicateReason(d domain.DiscountRequest) string {
	return fmt.Sprintf("Duplicate discount with composite key %s", d.Key())
}
