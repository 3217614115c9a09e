package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/praykar/autonotebook/internal/cache"
	"github.com/praykar/autonotebook/internal/model"
)

// DefaultInitialBackoff is the delay before the first retry.
// Each further retry doubles it.
const DefaultInitialBackoff = 2 * time.Second

// maxNewTokens bounds the length of generated explanations.
const maxNewTokens = 250

// maxErrorBodySize limits how much of an error response body is read for
// the failure message.
const maxErrorBodySize = 4 * 1024

// CacheStore is the subset of the explanation cache the client needs.
// Nil disables caching.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, model, explanation string) error
}

// Client calls the language-model inference service.
// It is safe for concurrent use: the only shared state (credential,
// limits, HTTP client) is read-only after construction, and each request
// owns its retry machine.
type Client struct {
	// httpClient issues the outbound calls.
	httpClient *http.Client

	// endpoint is the service base URL; the model identifier is appended
	// as a path segment.
	endpoint string

	// token is the bearer credential, shared read-only across calls.
	token string

	// timeout bounds each individual call so no request blocks forever.
	timeout time.Duration

	// maxAttempts is the per-request attempt ceiling.
	maxAttempts int

	// initialBackoff seeds the retry machine's exponential backoff.
	initialBackoff time.Duration

	// store is the optional explanation cache.
	store CacheStore

	// logger records per-attempt progress.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests and
// by callers that need custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxAttempts sets the per-request attempt ceiling, including the
// first call.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithInitialBackoff sets the delay before the first retry.
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.initialBackoff = d
		}
	}
}

// WithCache attaches an explanation cache.
func WithCache(store CacheStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the given endpoint and credential.
// Every call is bounded by the timeout.
func New(endpoint, token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:       strings.TrimRight(endpoint, "/"),
		token:          token,
		timeout:        timeout,
		maxAttempts:    1,
		initialBackoff: DefaultInitialBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// generateRequest is the inference API request body.
type generateRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters generateParams `json:"parameters"`
}

// generateParams tunes the generation.
type generateParams struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

// generation is one entry of the inference API response array.
type generation struct {
	GeneratedText string `json:"generated_text"`
}

// serviceError is the inference API error body.
type serviceError struct {
	Error string `json:"error"`
}

// Explain drives one request to a terminal result.
//
// The request is consumed exactly once: a cached explanation is returned
// without any call, otherwise the retry machine issues up to maxAttempts
// calls with exponential backoff between transient failures. A permanent
// failure yields a failure-status result rather than an error, so callers
// can keep processing other cells.
func (c *Client) Explain(ctx context.Context, req model.ExplanationRequest) model.ExplanationResult {
	key := cache.Key(req.Model, req.Prompt)

	if c.store != nil {
		if text, err := c.store.Get(ctx, key); err == nil {
			c.logger.Debug("explanation served from cache", "cell", req.CellIndex)
			return model.ExplanationResult{
				CellIndex: req.CellIndex,
				Status:    model.StatusSuccess,
				Text:      text,
			}
		}
	}

	m := NewMachine(c.maxAttempts, c.initialBackoff)

	var text string
	for m.Next(ctx) {
		c.logger.Debug("calling explanation service",
			"cell", req.CellIndex,
			"model", req.Model,
			"attempt", m.Attempts(),
		)

		generated, transient, err := c.call(ctx, req)
		if err == nil {
			text = generated
			m.RecordSuccess()
			break
		}

		c.logger.Warn("explanation call failed",
			"cell", req.CellIndex,
			"attempt", m.Attempts(),
			"transient", transient,
			"error", err,
		)
		m.RecordFailure(err, transient)
	}

	if m.State() != StateSuccess {
		return model.ExplanationResult{
			CellIndex:    req.CellIndex,
			Status:       model.StatusFailed,
			Attempts:     m.Attempts(),
			ErrorMessage: errorMessage(m.Err()),
		}
	}

	if c.store != nil {
		if err := c.store.Put(ctx, key, req.Model, text); err != nil {
			// Cache writes are best effort; the result is already in hand.
			c.logger.Warn("failed to cache explanation", "cell", req.CellIndex, "error", err)
		}
	}

	return model.ExplanationResult{
		CellIndex: req.CellIndex,
		Status:    model.StatusSuccess,
		Text:      text,
		Attempts:  m.Attempts(),
	}
}

// call makes one HTTP request to the service. It returns the generated
// text, or an error plus whether the failure is transient (worth retrying).
func (c *Client) call(ctx context.Context, req model.ExplanationRequest) (text string, transient bool, err error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Inputs: req.Prompt,
		Parameters: generateParams{
			MaxNewTokens:   maxNewTokens,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.endpoint + "/" + req.Model
	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Network errors and deadline expiry are transient by definition
		// here: the service is treated as unreliable.
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return "", transientStatus(resp.StatusCode), statusError(resp)
	}

	var generations []generation
	if err := json.NewDecoder(resp.Body).Decode(&generations); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(generations) == 0 || generations[0].GeneratedText == "" {
		return "", false, ErrEmptyResponse
	}

	return generations[0].GeneratedText, false, nil
}

// transientStatus reports whether an HTTP status is worth retrying.
// 429 is rate limiting, 503 is the hosted API loading a cold model, and
// the remaining 5xx are server-side trouble. 408 is a server-signalled
// timeout.
func transientStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

// statusError builds an error from a non-200 response, preferring the
// service's own error message when the body carries one.
func statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err == nil {
		var se serviceError
		if json.Unmarshal(body, &se) == nil && se.Error != "" {
			return fmt.Errorf("service returned %d: %s", resp.StatusCode, se.Error)
		}
	}
	return fmt.Errorf("service returned %d", resp.StatusCode)
}

// errorMessage formats a machine error for the result, tolerating nil.
func errorMessage(err error) string {
	if err == nil {
		return "explanation failed"
	}
	if errors.Is(err, context.Canceled) {
		return "run cancelled"
	}
	return err.Error()
}
