package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengov-nl/woometa/llm"
	_ "github.com/opengov-nl/woometa/llm/providers"
)

func fastRetry() llm.RetryConfig {
	return llm.RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Millisecond,
	}
}

func openAICompletion(content string) map[string]any {
	return map[string]any{
		"id":    "cmpl-1",
		"model": "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 8,
			"total_tokens":      20,
		},
	}
}

func TestComplete_EndpointOverride(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(openAICompletion("hallo"))
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderOpenRouter, "configured-key",
		llm.WithRetryConfig(fastRetry()))

	resp, err := client.Complete(context.Background(), llm.Request{
		Model:    "test-model",
		Messages: []llm.Message{{Role: "user", Content: "hoi"}},
		Endpoint: server.URL,
		APIKey:   "override-key",
	})
	require.NoError(t, err)

	assert.Equal(t, "hallo", resp.Content)
	assert.Equal(t, 1, resp.Attempts)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.NotEmpty(t, resp.RequestID)

	// The per-request endpoint routes to the OpenAI-compatible backend
	// with the per-request key
	assert.Equal(t, "Bearer override-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
}

func TestComplete_AnthropicRouting(t *testing.T) {
	var gotKey, gotVersion, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "msg-1",
			"model": "claude-test",
			"content": []map[string]any{
				{"type": "text", "text": "eerste"},
				{"type": "text", "text": "tweede"},
			},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderAnthropic, "sk-ant",
		llm.WithAnthropicBaseURL(server.URL),
		llm.WithRetryConfig(fastRetry()))

	resp, err := client.Complete(context.Background(), llm.Request{
		Model: "claude-test",
		Messages: []llm.Message{
			{Role: "system", Content: "systeeminstructie"},
			{Role: "user", Content: "hoi"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "sk-ant", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)

	// System message hoisted out of the messages array
	assert.Equal(t, "systeeminstructie", gotBody["system"])
	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 1)

	// Text blocks joined with newlines, input+output tokens summed
	assert.Equal(t, "eerste\ntweede", resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestComplete_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(openAICompletion("gelukt"))
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderOpenRouter, "key",
		llm.WithRetryConfig(fastRetry()))

	resp, err := client.Complete(context.Background(), llm.Request{
		Model:    "test-model",
		Messages: []llm.Message{{Role: "user", Content: "hoi"}},
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	assert.Equal(t, "gelukt", resp.Content)
	assert.Equal(t, 3, resp.Attempts)
	assert.EqualValues(t, 3, calls.Load())
}

func TestComplete_FatalErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderOpenRouter, "bad-key",
		llm.WithRetryConfig(fastRetry()))

	_, err := client.Complete(context.Background(), llm.Request{
		Model:    "test-model",
		Messages: []llm.Message{{Role: "user", Content: "hoi"}},
		Endpoint: server.URL,
	})
	require.Error(t, err)

	assert.True(t, llm.IsFatal(err))
	assert.False(t, llm.IsRetryExhausted(err))
	assert.EqualValues(t, 1, calls.Load(), "auth errors must not be retried")
}

func TestComplete_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderOpenRouter, "key",
		llm.WithRetryConfig(fastRetry()))

	_, err := client.Complete(context.Background(), llm.Request{
		Model:    "test-model",
		Messages: []llm.Message{{Role: "user", Content: "hoi"}},
		Endpoint: server.URL,
	})
	require.Error(t, err)

	assert.True(t, llm.IsRetryExhausted(err))
	var exhausted *llm.RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.True(t, llm.IsTransient(exhausted.Err), "last cause stays inspectable")
	assert.EqualValues(t, 3, calls.Load())
}

func TestComplete_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderOpenRouter, "key",
		llm.WithRetryConfig(llm.RetryConfig{
			MaxAttempts:       3,
			BackoffBase:       5 * time.Second,
			BackoffMultiplier: 2.0,
			MaxBackoff:        10 * time.Second,
		}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, llm.Request{
		Model:    "test-model",
		Messages: []llm.Message{{Role: "user", Content: "hoi"}},
		Endpoint: server.URL,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestComplete_ValidatesRequest(t *testing.T) {
	client := llm.NewClient(llm.ProviderOpenRouter, "key")

	_, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: "user", Content: "hoi"}},
	})
	assert.ErrorContains(t, err, "model is required")

	_, err = client.Complete(context.Background(), llm.Request{Model: "m"})
	assert.ErrorContains(t, err, "at least one message")
}

func TestComplete_JSONResponseHint(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(openAICompletion(`{"ok":true}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.ProviderOpenRouter, "key",
		llm.WithRetryConfig(fastRetry()))

	_, err := client.Complete(context.Background(), llm.Request{
		Model:        "test-model",
		Messages:     []llm.Message{{Role: "user", Content: "hoi"}},
		Endpoint:     server.URL,
		JSONResponse: true,
	})
	require.NoError(t, err)

	rf := gotBody["response_format"].(map[string]any)
	assert.Equal(t, "json_object", rf["type"])
}
