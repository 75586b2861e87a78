package validator

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

var (
	validCountries = toInterfaces(domain.ValidCountries)
	validModes     = toInterfaces(domain.ValidModes)
)

// Validator provides validation methods for ingested records and job requests.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateProduct validates a product payload.
func (v *Validator) ValidateProduct(p *domain.ProductRequest) error {
	return toDomainError(validation.ValidateStruct(p,
		validation.Field(&p.ID,
			validation.Required.Error("id must not be blank"),
		),
		validation.Field(&p.Name,
			validation.Required.Error("name must not be blank"),
		),
		validation.Field(&p.BasePrice,
			validation.Min(0.0).Error("basePrice must be non-negative"),
		),
		validation.Field(&p.Country,
			validation.Required.Error("country is required"),
			validation.In(validCountries...).Error("country must be one of SE, DE, FR"),
		),
	))
}

// ValidateDiscount validates a discount payload.
func (v *Validator) ValidateDiscount(d *domain.DiscountRequest) error {
	return toDomainError(validation.ValidateStruct(d,
		validation.Field(&d.ProductID,
			validation.Required.Error("productId must not be blank"),
		),
		validation.Field(&d.DiscountID,
			validation.Required.Error("discountId must not be blank"),
		),
		validation.Field(&d.Percent,
			validation.Min(0.0).Error("percent must be within range 0.0 and 100.0"),
			validation.Max(100.0).Error("percent must be within range 0.0 and 100.0"),
		),
	))
}

// ValidateJobConfig validates the configuration of a new ingestion job.
func (v *Validator) ValidateJobConfig(c *domain.JobConfig) error {
	return toDomainError(validation.ValidateStruct(c,
		validation.Field(&c.Mode,
			validation.Required.Error("mode is required"),
			validation.In(validModes...).Error("mode must be one of products, discounts, all"),
		),
		validation.Field(&c.Workers,
			validation.Required.Error("workers must be greater than 0"),
			validation.Min(1).Error("workers must be greater than 0"),
		),
		validation.Field(&c.ChunkSize,
			validation.Required.Error("chunkSize must be greater than 0"),
			validation.Min(1).Error("chunkSize must be greater than 0"),
		),
		validation.Field(&c.Retries,
			validation.Min(0).Error("retries must be non-negative"),
		),
	))
}

// toDomainError converts ozzo validation errors to a domain ValidationError.
func toDomainError(err error) error {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for field, fieldErr := range ve {
		fields[field] = fieldErr.Error()
	}
	return &domain.ValidationError{Fields: fields}
}

func toInterfaces[T any](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
