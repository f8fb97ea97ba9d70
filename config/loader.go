package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "woometa.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/woometa"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "WOOMETA_"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/woometa/config.yaml)
// 3. Project config (woometa.yaml in current or parent directories)
// 4. Environment variables (WOOMETA_*)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for woometa.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// applyEnvOverrides applies WOOMETA_* environment variables on top of the
// loaded config. Secrets usually arrive this way rather than via files.
func applyEnvOverrides(c *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	setString("LLM_PROVIDER", &c.LLM.Provider)
	setString("LLM_API_KEY", &c.LLM.APIKey)
	setString("LLM_MODEL", &c.LLM.Model)
	setString("LLM_ENDPOINT", &c.LLM.Endpoint)
	setString("LLM_ANTHROPIC_BASE_URL", &c.LLM.AnthropicBaseURL)
	setString("LLM_REFERER", &c.LLM.Referer)
	setString("LLM_TITLE", &c.LLM.Title)
	setString("PUBLICATIEBANK_URL", &c.Publicatiebank.URL)
	setString("PUBLICATIEBANK_TOKEN", &c.Publicatiebank.Token)
	setString("PUBLICATIEBANK_AUDIT_USER", &c.Publicatiebank.AuditUser)
	setString("INSTRUCTIONS_DIR", &c.Instructions.Dir)

	if v := os.Getenv(EnvPrefix + "LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sLLM_TEMPERATURE: %w", EnvPrefix, err)
		}
		c.LLM.Temperature = &f
	}
	if v := os.Getenv(EnvPrefix + "LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sLLM_MAX_TOKENS: %w", EnvPrefix, err)
		}
		c.LLM.MaxTokens = n
	}
	if v := os.Getenv(EnvPrefix + "LLM_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sLLM_MAX_RETRIES: %w", EnvPrefix, err)
		}
		c.LLM.MaxRetries = n
	}
	if v := os.Getenv(EnvPrefix + "LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sLLM_TIMEOUT: %w", EnvPrefix, err)
		}
		c.LLM.Timeout = d
	}
	if v := os.Getenv(EnvPrefix + "GENERATION_MAX_TEXT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sGENERATION_MAX_TEXT_LENGTH: %w", EnvPrefix, err)
		}
		c.Generation.MaxTextLength = n
	}
	if v := os.Getenv(EnvPrefix + "GENERATION_VALIDATE_XML"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sGENERATION_VALIDATE_XML: %w", EnvPrefix, err)
		}
		c.Generation.ValidateXML = b
	}

	return nil
}
