package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	BACKEND_HUGGINGFACE = "huggingface"
	BACKEND_VADER       = "vader"

	DEFAULT_HF_API_URL  = "https://gajula21-telugu-sentiment-api.hf.space/sentiment"
	DEFAULT_PORT        = "8501"
	DEFAULT_LOG_LEVEL   = "info"
	DEV_TIMEOUT         = 60 * time.Second
	PRODUCTION_TIMEOUT  = 10 * time.Second
	PRODUCTION_ENV_NAME = "production"
)

// ErrMissingToken is returned by Load when the remote backend is selected
// and HF_API_TOKEN is not set.
var ErrMissingToken = errors.New("HF_API_TOKEN is required")

type Config struct {
	AppEnv     string
	Backend    string
	HFAPIToken string
	HFAPIURL   string
	// HFHealthURL defaults to the scheme and host of HFAPIURL.
	HFHealthURL string
	HFTimeout   time.Duration
	Port        string
	LogLevel    string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		Backend:     strings.ToLower(getEnv("SENTIMENT_BACKEND", BACKEND_HUGGINGFACE)),
		HFAPIToken:  strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		HFAPIURL:    getEnv("HF_API_URL", DEFAULT_HF_API_URL),
		HFHealthURL: os.Getenv("HF_HEALTH_URL"),
		Port:        getEnv("PORT", DEFAULT_PORT),
		LogLevel:    getEnv("LOG_LEVEL", DEFAULT_LOG_LEVEL),
	}

	cfg.HFTimeout = DEV_TIMEOUT
	if cfg.AppEnv == PRODUCTION_ENV_NAME {
		cfg.HFTimeout = PRODUCTION_TIMEOUT
	}
	if raw := os.Getenv("HF_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("HF_TIMEOUT must be a duration: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("HF_TIMEOUT must be positive, got %s", d)
		}
		cfg.HFTimeout = d
	}

	switch cfg.Backend {
	case BACKEND_HUGGINGFACE:
		if cfg.HFAPIToken == "" {
			return nil, ErrMissingToken
		}
	case BACKEND_VADER:
	default:
		return nil, fmt.Errorf("SENTIMENT_BACKEND must be %q or %q, got %q",
			BACKEND_HUGGINGFACE, BACKEND_VADER, cfg.Backend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
