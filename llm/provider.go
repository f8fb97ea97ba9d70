package llm

import (
	"net/http"
	"sync"
)

// Credentials carries per-request authentication and attribution values.
// Providers use the fields they understand and ignore the rest.
type Credentials struct {
	// APIKey authenticates against the backend.
	APIKey string

	// Referer and Title are OpenRouter attribution headers.
	Referer string
	Title   string
}

// Provider defines the interface for LLM backend implementations.
type Provider interface {
	// Name returns the provider identifier (e.g., "openrouter", "anthropic").
	Name() string

	// BuildURL constructs the full API endpoint URL. An empty baseURL
	// selects the provider's default.
	BuildURL(baseURL string) string

	// SetHeaders adds provider-specific headers to the request.
	SetHeaders(req *http.Request, creds Credentials)

	// BuildRequestBody creates the JSON request body for the provider.
	// temperature is nil to use the backend default. jsonResponse asks for
	// a JSON object response where the API supports that hint.
	BuildRequestBody(model string, messages []Message, temperature *float64, maxTokens int,
		jsonResponse bool) ([]byte, error)

	// ParseResponse extracts the response from provider-specific JSON.
	ParseResponse(body []byte) (*Response, error)
}

// providerRegistry holds registered providers.
var (
	providerRegistry = make(map[string]Provider)
	providerMu       sync.RWMutex
)

// RegisterProvider adds a provider to the registry.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providerRegistry[p.Name()] = p
}

// GetProvider retrieves a provider by name.
func GetProvider(name string) Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return providerRegistry[name]
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	providerMu.RLock()
	defer providerMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	return names
}
