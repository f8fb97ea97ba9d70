// Package config provides configuration loading and management for woometa.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete woometa configuration
type Config struct {
	LLM            LLMConfig            `yaml:"llm"`
	Generation     GenerationConfig     `yaml:"generation"`
	Publicatiebank PublicatiebankConfig `yaml:"publicatiebank"`
	Instructions   InstructionsConfig   `yaml:"instructions"`
}

// LLMConfig configures the LLM backend
type LLMConfig struct {
	// Provider selects the backend: "openrouter" (default) or "anthropic"
	Provider string `yaml:"provider"`
	// APIKey authenticates against the provider
	APIKey string `yaml:"api_key"`
	// Model is the default model identifier in the provider's naming
	Model string `yaml:"model"`
	// Endpoint routes all requests to a custom OpenAI-compatible backend
	Endpoint string `yaml:"endpoint"`
	// AnthropicBaseURL overrides the Anthropic API base URL, for proxies
	AnthropicBaseURL string `yaml:"anthropic_base_url"`
	// Temperature controls randomness (0.0-1.0). A pointer so that an
	// explicit 0 (deterministic) survives layered merging; nil uses the
	// backend default.
	Temperature *float64 `yaml:"temperature"`
	// MaxTokens limits completion length (0 = backend default)
	MaxTokens int `yaml:"max_tokens"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
	// MaxRetries is the number of HTTP attempts per request
	MaxRetries int `yaml:"max_retries"`
	// Referer and Title are the OpenRouter attribution headers
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`
}

// GenerationConfig configures the generation pipeline
type GenerationConfig struct {
	// MaxTextLength bounds the document text included in a prompt
	MaxTextLength int `yaml:"max_text_length"`
	// ValidateXML enables structural schema validation on XML output
	ValidateXML bool `yaml:"validate_xml"`
}

// PublicatiebankConfig configures the document repository client
type PublicatiebankConfig struct {
	// URL is the Publicatiebank API base URL (empty = not configured)
	URL string `yaml:"url"`
	// Token authenticates API requests
	Token string `yaml:"token"`
	// AuditUser identifies the caller in audit headers
	AuditUser string `yaml:"audit_user"`
}

// InstructionsConfig configures the instruction template store
type InstructionsConfig struct {
	// Dir is the directory holding instruction markdown files
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openrouter",
			Model:       "google/gemini-2.5-flash",
			Temperature: float64Ptr(0.2),
			Timeout:     3 * time.Minute,
			MaxRetries:  3,
		},
		Generation: GenerationConfig{
			MaxTextLength: 15000,
		},
		Instructions: InstructionsConfig{
			Dir: "instructions",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.LLM.Provider != "openrouter" && c.LLM.Provider != "anthropic" {
		return fmt.Errorf("llm.provider must be openrouter or anthropic, got %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.LLM.Temperature != nil && (*c.LLM.Temperature < 0 || *c.LLM.Temperature > 1) {
		return fmt.Errorf("llm.temperature must be between 0 and 1")
	}
	if c.LLM.MaxRetries < 1 {
		return fmt.Errorf("llm.max_retries must be at least 1")
	}
	if c.Generation.MaxTextLength < 100 {
		return fmt.Errorf("generation.max_text_length must be at least 100")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.LLM.Provider != "" {
		c.LLM.Provider = other.LLM.Provider
	}
	if other.LLM.APIKey != "" {
		c.LLM.APIKey = other.LLM.APIKey
	}
	if other.LLM.Model != "" {
		c.LLM.Model = other.LLM.Model
	}
	if other.LLM.Endpoint != "" {
		c.LLM.Endpoint = other.LLM.Endpoint
	}
	if other.LLM.AnthropicBaseURL != "" {
		c.LLM.AnthropicBaseURL = other.LLM.AnthropicBaseURL
	}
	if other.LLM.Temperature != nil {
		c.LLM.Temperature = other.LLM.Temperature
	}
	if other.LLM.MaxTokens != 0 {
		c.LLM.MaxTokens = other.LLM.MaxTokens
	}
	if other.LLM.Timeout != 0 {
		c.LLM.Timeout = other.LLM.Timeout
	}
	if other.LLM.MaxRetries != 0 {
		c.LLM.MaxRetries = other.LLM.MaxRetries
	}
	if other.LLM.Referer != "" {
		c.LLM.Referer = other.LLM.Referer
	}
	if other.LLM.Title != "" {
		c.LLM.Title = other.LLM.Title
	}

	if other.Generation.MaxTextLength != 0 {
		c.Generation.MaxTextLength = other.Generation.MaxTextLength
	}
	if other.Generation.ValidateXML {
		c.Generation.ValidateXML = true
	}

	if other.Publicatiebank.URL != "" {
		c.Publicatiebank.URL = other.Publicatiebank.URL
	}
	if other.Publicatiebank.Token != "" {
		c.Publicatiebank.Token = other.Publicatiebank.Token
	}
	if other.Publicatiebank.AuditUser != "" {
		c.Publicatiebank.AuditUser = other.Publicatiebank.AuditUser
	}

	if other.Instructions.Dir != "" {
		c.Instructions.Dir = other.Instructions.Dir
	}
}

func float64Ptr(v float64) *float64 { return &v }
