// Package analyzer talks to the remote SIM analysis service.
package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/httpx"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// DefaultBaseURL is used when no endpoint is configured.
const DefaultBaseURL = "http://localhost:8000"

const (
	defaultTimeout  = 60 * time.Second
	analyzeBulkPath = "/analyze-bulk"
	healthPath      = "/health"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Config holds the analysis service connection settings.
type Config struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration
}

// Client calls the analysis service. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is still
// wrapped for request logging.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: analysis endpoint: %w", common.ErrInvalidConfig, err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     slog.Default(),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	wrapped := *c.httpClient
	wrapped.Transport = httpx.NewLoggingRoundTripper(c.httpClient.Transport,
		httpx.WithLogger(c.logger),
		httpx.WithMasker(httpx.PhoneNumberMasker{}),
		httpx.WithLogFieldMaxLen(4096))
	c.httpClient = &wrapped

	return c, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type analyzeRequest struct {
	SimNumbers []string `json:"sim_numbers"`
}

type analyzeResponse struct {
	Data []model.AnalysisResult `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// AnalyzeBulk submits numbers for analysis in a single request. Blank entries
// are dropped; a batch with nothing left fails with common.ErrEmptyBatch
// before any request is made.
func (c *Client) AnalyzeBulk(ctx context.Context, numbers []string) ([]model.AnalysisResult, error) {
	numbers = lo.Filter(numbers, func(n string, _ int) bool {
		return strings.TrimSpace(n) != ""
	})
	if len(numbers) == 0 {
		return nil, common.ErrEmptyBatch
	}

	body, err := json.Marshal(analyzeRequest{SimNumbers: numbers})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzeBulkPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "Submitting numbers for analysis",
		slog.String(common.FieldEndpoint, c.baseURL),
		slog.Int("count", len(numbers)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, "POST "+analyzeBulkPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.requestError(ctx, "read "+analyzeBulkPath, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, payload)
	}

	var decoded analyzeResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if decoded.Data == nil {
		return []model.AnalysisResult{}, nil
	}

	return decoded.Data, nil
}

// Health reports whether the service answers its health endpoint with a
// success status. Any failure counts as unhealthy.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "Health check failed",
			slog.String(common.FieldEndpoint, c.baseURL),
			common.ErrAttr(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

func (c *Client) requestError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &common.TransportError{Op: op, Err: err}
}

func newAPIError(status int, payload []byte) *common.APIError {
	var decoded errorResponse
	if err := json.Unmarshal(payload, &decoded); err == nil && decoded.Message != "" {
		return &common.APIError{StatusCode: status, Message: decoded.Message}
	}
	return &common.APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
	}
}
