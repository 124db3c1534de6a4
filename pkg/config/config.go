package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultAPIURL       = "https://openrouter.ai/api/v1"
	DefaultModel        = "tngtech/deepseek-r1t-chimera:free"
	DefaultTimeout      = 10
	DefaultXTitle       = "AMD ChatBot Support"
	DefaultSupportURL   = "https://www.amd.com/ru/support"
	DefaultSystemPrompt = "Вы — технический помощник AMD. Отвечайте на вопросы о продуктах Ryzen и Radeon."
)

// Config represents the application configuration
type Config struct {
	OpenRouter    OpenRouterConfig `json:"openrouter"`
	SystemPrompt  string           `json:"system_prompt"`
	SupportURL    string           `json:"support_url"`
	ContextWindow int              `json:"context_window"` // 0 sends the whole transcript
	LogLevel      string           `json:"log_level"`
	LogFile       string           `json:"log_file"`
	LogFormat     string           `json:"log_format"`
}

// OpenRouterConfig holds the OpenRouter API configuration
type OpenRouterConfig struct {
	APIKey            string `json:"api_key"`
	APIURL            string `json:"api_url"`
	Model             string `json:"model"`
	HTTPReferer       string `json:"http_referer"`
	XTitle            string `json:"x_title"`
	APITimeoutSeconds int    `json:"api_timeout_seconds"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		OpenRouter: OpenRouterConfig{
			APIKey:            "",
			APIURL:            DefaultAPIURL,
			Model:             DefaultModel,
			XTitle:            DefaultXTitle,
			APITimeoutSeconds: DefaultTimeout,
		},
		SystemPrompt:  DefaultSystemPrompt,
		SupportURL:    DefaultSupportURL,
		ContextWindow: 0,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Environment variables override file values.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		cfg := Default()
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to create default config: %w", err)
		}
		return applyEnvironmentOverrides(cfg), nil
	}

	// Start from defaults so fields missing in older files keep sane values
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return applyEnvironmentOverrides(cfg), nil
}

func applyEnvironmentOverrides(cfg Config) Config {
	if apiKey := strings.TrimSpace(os.Getenv("AMDCHAT_API_KEY")); apiKey != "" {
		cfg.OpenRouter.APIKey = apiKey
	}
	if model := strings.TrimSpace(os.Getenv("AMDCHAT_MODEL")); model != "" {
		cfg.OpenRouter.Model = model
	}
	if apiURL := strings.TrimSpace(os.Getenv("AMDCHAT_API_URL")); apiURL != "" {
		cfg.OpenRouter.APIURL = apiURL
	}
	if timeoutStr := os.Getenv("AMDCHAT_API_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			cfg.OpenRouter.APITimeoutSeconds = timeout
		}
	}
	if logLevel := strings.ToLower(os.Getenv("AMDCHAT_LOG_LEVEL")); logLevel != "" {
		switch logLevel {
		case "trace", "debug", "info", "warn", "error":
			cfg.LogLevel = logLevel
		}
	}
	return cfg
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.OpenRouter.APIKey) == "" {
		return errors.New("OpenRouter API key is required (set AMDCHAT_API_KEY or api_key in the config file)")
	}

	if strings.TrimSpace(c.OpenRouter.APIURL) == "" {
		return errors.New("api_url is required")
	}

	if strings.TrimSpace(c.OpenRouter.Model) == "" {
		return errors.New("model is required")
	}

	if c.OpenRouter.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", c.OpenRouter.APITimeoutSeconds)
	}

	if strings.TrimSpace(c.SystemPrompt) == "" {
		return errors.New("system_prompt must not be empty")
	}

	if c.ContextWindow < 0 {
		return fmt.Errorf("context_window must not be negative, got: %d", c.ContextWindow)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".amdchat", "config.json")
	}
	return filepath.Join(homeDir, ".amdchat", "config.json")
}
