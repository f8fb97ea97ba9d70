// Package providers implements the LLM backend adapters. Importing it
// (usually blank) registers all providers with the llm package.
package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/opengov-nl/woometa/llm"
)

// OpenRouterProvider implements the OpenRouter chat completions API, which
// follows the OpenAI wire format with bearer authentication and optional
// attribution headers.
type OpenRouterProvider struct{}

func init() {
	llm.RegisterProvider(&OpenRouterProvider{})
}

// Name returns the provider identifier.
func (o *OpenRouterProvider) Name() string {
	return llm.ProviderOpenRouter
}

// BuildURL constructs the chat completions endpoint.
func (o *OpenRouterProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return chatCompletionsURL(baseURL)
}

// SetHeaders adds bearer authentication and OpenRouter attribution.
func (o *OpenRouterProvider) SetHeaders(req *http.Request, creds llm.Credentials) {
	if creds.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	}
	if creds.Referer != "" {
		req.Header.Set("HTTP-Referer", creds.Referer)
	}
	if creds.Title != "" {
		req.Header.Set("X-Title", creds.Title)
	}
}

// BuildRequestBody creates the OpenAI-format request body.
func (o *OpenRouterProvider) BuildRequestBody(model string, messages []llm.Message, temperature *float64, maxTokens int, jsonResponse bool) ([]byte, error) {
	return buildOpenAIBody(model, messages, temperature, maxTokens, jsonResponse)
}

// ParseResponse extracts content from the OpenAI-format response.
func (o *OpenRouterProvider) ParseResponse(body []byte) (*llm.Response, error) {
	return parseOpenAIResponse(body)
}

// chatCompletionsURL appends /chat/completions unless the base already
// points at it.
func chatCompletionsURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

// openAIRequest is the OpenAI-compatible request format, shared by
// OpenRouter and custom endpoints.
type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

func buildOpenAIBody(model string, messages []llm.Message, temperature *float64, maxTokens int, jsonResponse bool) ([]byte, error) {
	apiMessages := make([]openAIMessage, len(messages))
	for i, msg := range messages {
		apiMessages[i] = openAIMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openAIRequest{
		Model:       model,
		Messages:    apiMessages,
		Temperature: temperature, // nil = use default, 0 = deterministic
	}

	// Only set max_tokens if explicitly provided
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}

	if jsonResponse {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	return json.Marshal(req)
}

// openAIResponse is the OpenAI-compatible response format.
type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func parseOpenAIResponse(body []byte) (*llm.Response, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse openai response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	usage := llm.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}

	return &llm.Response{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		Usage:        usage,
		FinishReason: resp.Choices[0].FinishReason,
	}, nil
}
