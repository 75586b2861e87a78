package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/logger"
)

const (
	applyPath      = "/discounts/apply"
	applyBatchPath = "/discounts/apply/batch"

	requestIDHeader = "X-Request-ID"
)

// DiscountClient applies discounts through the remote discount service.
type DiscountClient struct {
	client *resty.Client
}

// DiscountClientConfig holds configuration for the discount service client.
type DiscountClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewDiscountClient creates a new discount service client.
func NewDiscountClient(cfg DiscountClientConfig) *DiscountClient {
	c := resty.New()
	c.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	c.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}

	return &DiscountClient{client: c}
}

type applicationResponse struct {
	Applied        bool `json:"applied"`
	AlreadyApplied bool `json:"alreadyApplied"`
}

type batchRequest struct {
	Discounts []domain.DiscountRequest `json:"discounts"`
}

type batchResult struct {
	ProductID      string  `json:"productId"`
	DiscountID     string  `json:"discountId"`
	Success        bool    `json:"success"`
	AlreadyApplied bool    `json:"alreadyApplied"`
	Error          *string `json:"error,omitempty"`
}

type batchSummary struct {
	Total          int `json:"total"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	AlreadyApplied int `json:"alreadyApplied"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
	Summary batchSummary  `json:"summary"`
}

// Apply applies a single discount.
// A 400 response is reported as a validation result; other failures are returned as errors.
func (c *DiscountClient) Apply(ctx context.Context, d domain.DiscountRequest) (domain.SinkResult, error) {
	var resp applicationResponse
	httpResp, err := c.request(ctx).
		SetBody(d).
		SetResult(&resp).
		Put(applyPath)
	if err != nil {
		return domain.SinkResult{}, fmt.Errorf("call discount service: %w", err)
	}

	switch {
	case httpResp.StatusCode() == http.StatusBadRequest:
		return domain.Invalid(fmt.Sprintf("discount %s rejected: %s", d.Key(), strings.TrimSpace(httpResp.String()))), nil
	case httpResp.IsError():
		return domain.SinkResult{}, fmt.Errorf("discount service error: status %d", httpResp.StatusCode())
	}

	switch {
	case resp.AlreadyApplied:
		return domain.Duplicate(duplicateReason(d.ProductID, d.DiscountID)), nil
	case resp.Applied:
		return domain.Applied(), nil
	default:
		return domain.Failed(fmt.Sprintf("discount %s was not applied", d.Key())), nil
	}
}

// ApplyBatch applies discounts in a single call. Results are aligned with discounts by position.
func (c *DiscountClient) ApplyBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]domain.SinkResult, error) {
	if len(discounts) == 0 {
		return []domain.SinkResult{}, nil
	}

	var resp batchResponse
	httpResp, err := c.request(ctx).
		SetBody(batchRequest{Discounts: discounts}).
		SetResult(&resp).
		Post(applyBatchPath)
	if err != nil {
		return nil, fmt.Errorf("call discount service: %w", err)
	}
	if httpResp.IsError() {
		return nil, fmt.Errorf("discount service error: status %d", httpResp.StatusCode())
	}
	if len(resp.Results) != len(discounts) {
		return nil, fmt.Errorf("unexpected number of batch results: got %d, expected %d", len(resp.Results), len(discounts))
	}

	logger.DebugContext(ctx, "Discount batch applied",
		slog.Int("total", resp.Summary.Total),
		slog.Int("successful", resp.Summary.Successful),
		slog.Int("failed", resp.Summary.Failed),
		slog.Int("already_applied", resp.Summary.AlreadyApplied))

	results := make([]domain.SinkResult, len(resp.Results))
	for i, r := range resp.Results {
		switch {
		case r.Success:
			results[i] = domain.Applied()
		case r.AlreadyApplied:
			results[i] = domain.Duplicate(duplicateReason(r.ProductID, r.DiscountID))
		case r.Error != nil && *r.Error != "":
			results[i] = domain.Failed(*r.Error)
		default:
			results[i] = domain.Failed("Unknown error")
		}
	}
	return results, nil
}

func (c *DiscountClient) request(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.SetHeader(requestIDHeader, id)
	}
	return req
}

func duplicateReason(productID, discountID string) string {
	return fmt.Sprintf("Duplicate discount with composite key %s-%s", productID, discountID)
}
