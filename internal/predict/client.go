// Package predict implements the HTTP client for the external
// fraud-scoring service. The service is the only network dependency in
// the system; everything it returns is untrusted until validated.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fraudlens/fraudlens/internal/common"
	"github.com/fraudlens/fraudlens/internal/model"
)

// defaultTimeout bounds a single prediction call. The pipeline itself
// imposes no deadline; timeout policy lives here in the HTTP layer.
const defaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read when
// reporting a non-2xx status.
const maxResponseBytes = 4 << 10

// Client calls the prediction endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, mainly for
// tests and callers with their own transport policy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a prediction client for the given endpoint URL,
// e.g. "http://localhost:8000/api/fraud-detect".
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict posts the transaction to the scoring service and returns its
// validated response. Transport failures, non-2xx statuses, malformed
// bodies, and responses carrying no usable signal are all prediction
// failures — the caller must synthesize an error record, never classify.
func (c *Client) Predict(ctx context.Context, input model.TransactionInput) (model.RawPrediction, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return model.RawPrediction{}, fmt.Errorf("%w: encoding request: %w", common.ErrPredictionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.RawPrediction{}, fmt.Errorf("%w: building request: %w", common.ErrPredictionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.RawPrediction{}, fmt.Errorf("%w: %w", common.ErrPredictionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return model.RawPrediction{}, fmt.Errorf("%w: status %d: %s",
			common.ErrPredictionFailed, resp.StatusCode, string(detail))
	}

	var raw model.RawPrediction
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return model.RawPrediction{}, fmt.Errorf("%w: %w", common.ErrPredictionResponse, err)
	}
	if err := raw.Validate(); err != nil {
		return model.RawPrediction{}, fmt.Errorf("%w: %w", common.ErrPredictionResponse, err)
	}
	return raw, nil
}
