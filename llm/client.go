// Package llm provides a provider-agnostic chat completion client with
// retry support. Requests are routed to one of three backends: OpenRouter
// (the default), the Anthropic Messages API, or any OpenAI-compatible
// endpoint supplied per request.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/opengov-nl/woometa/metrics"
)

// maxResponseSize limits the LLM response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Well-known provider names as registered by the providers package.
const (
	ProviderOpenRouter   = "openrouter"
	ProviderAnthropic    = "anthropic"
	ProviderOpenAICompat = "openaicompat"
)

// Client sends chat completion requests to a configured LLM backend.
type Client struct {
	provider string
	apiKey   string

	anthropicBaseURL string
	referer          string
	title            string

	httpClient  *http.Client
	retryConfig RetryConfig
	logger      *slog.Logger
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", or "assistant"
	Content string `json:"content"` // Message content
}

// Request defines an LLM completion request.
type Request struct {
	// Model is the model identifier to request, in the backend's naming.
	Model string

	// Messages is the chat history to send to the LLM.
	Messages []Message

	// Temperature controls randomness. nil uses endpoint default, 0 is deterministic.
	Temperature *float64

	// MaxTokens limits response length. 0 uses endpoint default.
	MaxTokens int

	// JSONResponse asks the backend for a JSON object response where the
	// API supports a response format hint. Backends without such a hint
	// ignore it; callers must still repair and parse the content.
	JSONResponse bool

	// Endpoint overrides the backend URL for this request. A non-empty
	// value routes to the OpenAI-compatible provider regardless of the
	// configured provider.
	Endpoint string

	// APIKey overrides the configured API key for this request.
	APIKey string
}

// TokenUsage represents token consumption details for an LLM call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response contains the LLM completion result.
type Response struct {
	// RequestID uniquely identifies this LLM call for log correlation.
	// Set by Complete().
	RequestID string

	// Content is the generated text.
	Content string

	// Model is the actual model that was used.
	Model string

	// Usage contains token consumption metrics, if the backend reports them.
	Usage TokenUsage

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Attempts is the number of HTTP attempts the call needed.
	Attempts int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithAnthropicBaseURL overrides the Anthropic API base URL, for proxies
// and tests.
func WithAnthropicBaseURL(url string) ClientOption {
	return func(client *Client) {
		client.anthropicBaseURL = url
	}
}

// WithAttribution sets the OpenRouter attribution headers (HTTP-Referer
// and X-Title). Other backends ignore these.
func WithAttribution(referer, title string) ClientOption {
	return func(client *Client) {
		client.referer = referer
		client.title = title
	}
}

// NewClient creates an LLM client for the named provider ("openrouter" or
// "anthropic"). Unknown names fall back to OpenRouter at request time.
func NewClient(provider, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		provider:    provider,
		apiKey:      apiKey,
		retryConfig: DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 180 * time.Second, // Allow time for LLM responses
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// route resolves the provider, base URL, and credentials for a request.
// Order: a per-request endpoint wins and is treated as OpenAI-compatible,
// then the configured Anthropic backend, then OpenRouter.
func (c *Client) route(req Request) (Provider, string, Credentials, error) {
	creds := Credentials{APIKey: c.apiKey}
	if req.APIKey != "" {
		creds.APIKey = req.APIKey
	}

	var name, baseURL string
	switch {
	case req.Endpoint != "":
		name = ProviderOpenAICompat
		baseURL = req.Endpoint
	case c.provider == ProviderAnthropic:
		name = ProviderAnthropic
		baseURL = c.anthropicBaseURL
	default:
		name = ProviderOpenRouter
		creds.Referer = c.referer
		creds.Title = c.title
	}

	provider := GetProvider(name)
	if provider == nil {
		return nil, "", creds, NewFatalError(fmt.Errorf("provider not registered: %s", name))
	}
	return provider, baseURL, creds, nil
}

// Complete sends a completion request, retrying transient failures with
// exponential backoff. When retries are exhausted the returned error is a
// *RetryExhaustedError wrapping the last failure.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	requestID := uuid.New().String()
	startedAt := time.Now()

	provider, baseURL, creds, err := c.route(req)
	if err != nil {
		return nil, err
	}

	resp, attempts, err := c.completeWithRetry(ctx, provider, baseURL, creds, req)
	elapsed := time.Since(startedAt)

	if err != nil {
		metrics.ObserveLLMRequest(provider.Name(), req.Model, "error", elapsed, attempts, 0, 0)
		c.logger.Warn("llm request failed",
			"request_id", requestID,
			"provider", provider.Name(),
			"model", req.Model,
			"attempts", attempts,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err)
		return nil, err
	}

	resp.RequestID = requestID
	resp.Attempts = attempts
	if resp.Model == "" {
		resp.Model = req.Model
	}

	metrics.ObserveLLMRequest(provider.Name(), req.Model, "success", elapsed, attempts,
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	c.logger.Info("llm request completed",
		"request_id", requestID,
		"provider", provider.Name(),
		"model", resp.Model,
		"attempts", attempts,
		"elapsed_ms", elapsed.Milliseconds(),
		"total_tokens", resp.Usage.TotalTokens)

	return resp, nil
}

// completeWithRetry attempts a request with retry logic and returns the
// attempt count.
func (c *Client) completeWithRetry(ctx context.Context, provider Provider, baseURL string, creds Credentials, req Request) (*Response, int, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retryConfig.MaxAttempts; attempt++ {
		resp, err := c.doRequest(ctx, provider, baseURL, creds, req)
		if err == nil {
			return resp, attempt, nil
		}

		lastErr = err

		// Don't retry fatal errors
		if IsFatal(err) {
			return nil, attempt, err
		}

		if attempt < c.retryConfig.MaxAttempts {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debug("llm request failed, retrying",
				"attempt", attempt,
				"max_attempts", c.retryConfig.MaxAttempts,
				"backoff", backoff,
				"error", err)

			select {
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			case <-time.After(backoff):
				// Continue to retry
			}
		}
	}

	return nil, c.retryConfig.MaxAttempts, &RetryExhaustedError{
		Attempts: c.retryConfig.MaxAttempts,
		Err:      lastErr,
	}
}

// calculateBackoff computes exponential backoff duration with jitter.
// Jitter prevents thundering herd when multiple clients retry simultaneously.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	multiplier := 1.0
	for i := 1; i < attempt; i++ {
		multiplier *= c.retryConfig.BackoffMultiplier
	}

	backoff := time.Duration(float64(c.retryConfig.BackoffBase) * multiplier)
	if backoff > c.retryConfig.MaxBackoff {
		backoff = c.retryConfig.MaxBackoff
	}

	// Add jitter: +/- 25% to prevent synchronized retries
	jitter := float64(backoff) * 0.25 * (rand.Float64()*2 - 1)
	return backoff + time.Duration(jitter)
}

// doRequest executes a single HTTP request against the backend.
func (c *Client) doRequest(ctx context.Context, provider Provider, baseURL string, creds Credentials, req Request) (*Response, error) {
	url := provider.BuildURL(baseURL)

	body, err := provider.BuildRequestBody(req.Model, req.Messages, req.Temperature, req.MaxTokens, req.JSONResponse)
	if err != nil {
		return nil, NewFatalError(fmt.Errorf("build request body: %w", err))
	}

	c.logger.Debug("sending llm request",
		"provider", provider.Name(),
		"model", req.Model,
		"url", url,
		"messages", len(req.Messages))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewFatalError(fmt.Errorf("create HTTP request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	provider.SetHeaders(httpReq, creds)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Network errors and timeouts are transient
		return nil, NewTransientError(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	// Read response body with size limit to prevent memory exhaustion
	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, NewTransientError(fmt.Errorf("read response body: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(httpResp.StatusCode, respBody)
	}

	return provider.ParseResponse(respBody)
}

// classifyHTTPError determines if an HTTP error is transient or fatal.
func classifyHTTPError(statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}

	err := fmt.Errorf("LLM API error (status %d): %s", statusCode, bodyStr)

	switch {
	case statusCode == http.StatusTooManyRequests:
		// Rate limiting is transient
		return NewTransientError(err)
	case statusCode >= 500:
		// Server errors are transient
		return NewTransientError(err)
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden:
		// Auth errors are fatal
		return NewFatalError(err)
	case statusCode == http.StatusBadRequest:
		// Bad requests are fatal
		return NewFatalError(err)
	default:
		// Unknown errors default to fatal
		return NewFatalError(err)
	}
}
