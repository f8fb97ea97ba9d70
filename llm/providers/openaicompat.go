package providers

import (
	"net/http"

	"github.com/opengov-nl/woometa/llm"
)

// OpenAICompatProvider implements any OpenAI-compatible chat completions
// endpoint (vLLM, Ollama, Azure OpenAI proxies). It is selected when a
// request carries an explicit endpoint URL.
type OpenAICompatProvider struct{}

func init() {
	llm.RegisterProvider(&OpenAICompatProvider{})
}

// Name returns the provider identifier.
func (o *OpenAICompatProvider) Name() string {
	return llm.ProviderOpenAICompat
}

// BuildURL constructs the chat completions endpoint. Unlike the hosted
// backends there is no default base URL; the caller must supply one.
func (o *OpenAICompatProvider) BuildURL(baseURL string) string {
	return chatCompletionsURL(baseURL)
}

// SetHeaders adds bearer authentication when a key is configured. Local
// endpoints commonly run without one.
func (o *OpenAICompatProvider) SetHeaders(req *http.Request, creds llm.Credentials) {
	if creds.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	}
}

// BuildRequestBody creates the OpenAI-format request body.
func (o *OpenAICompatProvider) BuildRequestBody(model string, messages []llm.Message, temperature *float64, maxTokens int, jsonResponse bool) ([]byte, error) {
	return buildOpenAIBody(model, messages, temperature, maxTokens, jsonResponse)
}

// ParseResponse extracts content from the OpenAI-format response.
func (o *OpenAICompatProvider) ParseResponse(body []byte) (*llm.Response, error) {
	return parseOpenAIResponse(body)
}
