package domain

import "fmt"

// EntityKind identifies the type of record carried by a work item.
type EntityKind string

const (
	EntityProduct  EntityKind = "product"
	EntityDiscount EntityKind = "discount"
)

// WorkItem is one line flowing from a producer to a worker.
type WorkItem struct {
	Kind       EntityKind
	Line       string
	LineNumber int
	File       string
}

// ProductRequest is the payload of one product line.
type ProductRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
	Country   string  `json:"country"`
}

// ValidCountries contains the supported product country codes.
var ValidCountries = []string{"SE", "DE", "FR"}

// DiscountRequest is the payload of one discount line.
type DiscountRequest struct {
	ProductID  string  `json:"productId"`
	DiscountID string  `json:"discountId"`
	Percent    float64 `json:"percent"`
}

// Key returns the composite key identifying a discount application.
func (d DiscountRequest) Key() string {
	return fmt.Sprintf("%s-%s", d.ProductID, d.DiscountID)
}

// Outcome classifies the result of sending one record to the sink.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeInvalid   Outcome = "validation_error"
	OutcomeError     Outcome = "error"
)

// SinkResult is the sink's answer for a single record.
type SinkResult struct {
	Outcome Outcome
	Reason  string
}

// Applied returns a successful result.
func Applied() SinkResult {
	return SinkResult{Outcome: OutcomeApplied}
}

// Duplicate returns an already-applied result with the given reason.
func Duplicate(reason string) SinkResult {
	return SinkResult{Outcome: OutcomeDuplicate, Reason: reason}
}

// Invalid returns a validation-error result with the given reason.
func Invalid(reason string) SinkResult {
	return SinkResult{Outcome: OutcomeInvalid, Reason: reason}
}

// Failed returns an unknown-error result with the given reason.
func Failed(reason string) SinkResult {
	return SinkResult{Outcome: OutcomeError, Reason: reason}
}
