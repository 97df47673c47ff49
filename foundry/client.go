package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	ai "github.com/aviary-ai/aviary"
	"github.com/aviary-ai/aviary/retry"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = time.Second
	maxResponseSize     = 10 * 1024 * 1024 // 10MB
)

// Config holds configuration for creating a project client.
type Config struct {
	// Endpoint is the base URL of the hosted agents service. Required.
	Endpoint string

	// APIKey authenticates requests to the service. Required.
	APIKey string

	// Timeout is the per-request timeout. Default is 30 seconds.
	Timeout time.Duration

	// Retry configures backoff for idempotent reads.
	// If nil, uses the default retry configuration.
	Retry *retry.Config

	// PollInterval is the delay between status checks inside
	// CreateAndProcessRun. Default is 1 second.
	PollInterval time.Duration

	// HTTPClient overrides the underlying HTTP client. Optional.
	HTTPClient *http.Client

	// Logger receives request-level debug logging. Optional.
	Logger *zerolog.Logger
}

// Client is a project client for the hosted agents service.
// It is safe for concurrent use. Close releases the underlying transport.
type Client struct {
	base         *url.URL
	apiKey       string
	http         *http.Client
	retry        retry.Config
	pollInterval time.Duration
	log          zerolog.Logger

	closeOnce sync.Once
}

// New creates a project client from the given configuration.
// It fails fast with a descriptive error if a required setting is missing.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, ai.NewUserInputError("foundry: endpoint is required", 0, nil)
	}
	if cfg.APIKey == "" {
		return nil, ai.NewUserInputError("foundry: API key is required", 0, nil)
	}

	base, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return nil, ai.NewUserInputError(fmt.Sprintf("foundry: invalid endpoint %q", cfg.Endpoint), 0, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	retryCfg := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryCfg = *cfg.Retry
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		base:         base,
		apiKey:       cfg.APIKey,
		http:         httpClient,
		retry:        retryCfg,
		pollInterval: pollInterval,
		log:          log,
	}, nil
}

// Close releases the underlying transport connections.
// It is safe to call multiple times and on every exit path.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.http.CloseIdleConnections()
	})
	return nil
}

// do issues a single request and decodes the JSON response into out.
// out may be nil for operations with no interesting response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return ai.NewPermanentError("foundry: encode request", 0, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reqBody)
	if err != nil {
		return ai.NewPermanentError("foundry: build request", 0, err)
	}

	requestID := ai.GenerateRequestID()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Msg("foundry request")

	resp, err := c.http.Do(req)
	if err != nil {
		return ai.NewTransientError(fmt.Sprintf("foundry: %s %s failed", method, path), 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return ai.NewTransientError(fmt.Sprintf("foundry: read %s %s response", method, path), resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return ai.NewPermanentError(fmt.Sprintf("foundry: decode %s %s response", method, path), resp.StatusCode, err)
	}
	return nil
}

// doGet issues an idempotent read, retrying transient failures.
func (c *Client) doGet(ctx context.Context, path string, out any) error {
	_, err := retry.Do(ctx, c.retry, func() (struct{}, error) {
		return struct{}{}, c.do(ctx, http.MethodGet, path, nil, out)
	})
	return err
}

// errorPayload is the error envelope returned by the service.
type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusError maps an HTTP failure to a categorized error.
func (c *Client) statusError(method, path string, status int, body []byte) error {
	msg := fmt.Sprintf("foundry: %s %s returned %d", method, path, status)

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		msg = fmt.Sprintf("%s (%s: %s)", msg, payload.Error.Code, payload.Error.Message)
	}

	switch {
	case status == http.StatusTooManyRequests || status >= 500:
		return ai.NewTransientError(msg, status, nil)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ai.NewUserInputError(msg, status, nil)
	default:
		return ai.NewPermanentError(msg, status, nil)
	}
}
