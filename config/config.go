// Package config loads server settings from an optional config.yaml plus
// environment overrides. Every field has a safe default so the server runs
// in template-only mode with zero credentials configured.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerAddr string `yaml:"server_addr"`

	Gemini      ProviderConfig `yaml:"gemini"`
	HuggingFace ProviderConfig `yaml:"huggingface"`
	OpenAI      OpenAIConfig   `yaml:"openai"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ProviderConfig describes one REST provider tier. A tier with an empty
// credential is skipped entirely by the cascade.
type ProviderConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RateLimitConfig struct {
	PerWindow     int `yaml:"per_window"`
	WindowSeconds int `yaml:"window_seconds"`
}

func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func (o OpenAIConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Load reads path (missing file is fine), then applies env overrides and
// defaults.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
		// run on defaults and env only
	default:
		return Config{}, err
	}

	cfg.ServerAddr = envString("SERVER_ADDR", cfg.ServerAddr)
	cfg.Gemini.APIKey = envString("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = envString("GEMINI_MODEL", cfg.Gemini.Model)
	cfg.HuggingFace.APIKey = envString("HF_API_TOKEN", cfg.HuggingFace.APIKey)
	cfg.HuggingFace.Model = envString("HF_MODEL", cfg.HuggingFace.Model)
	cfg.HuggingFace.TimeoutSeconds = envInt("HF_TIMEOUT", cfg.HuggingFace.TimeoutSeconds)
	cfg.OpenAI.APIKey = envString("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = envString("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = envString("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)
	cfg.RateLimit.PerWindow = envInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimit.PerWindow)

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8000"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = 120
	}
	if c.HuggingFace.Model == "" {
		c.HuggingFace.Model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	if c.HuggingFace.TimeoutSeconds <= 0 {
		c.HuggingFace.TimeoutSeconds = 60
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		c.OpenAI.TimeoutSeconds = 60
	}
	if c.RateLimit.PerWindow <= 0 {
		c.RateLimit.PerWindow = 60
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = 60
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
