package app

import (
	"fmt"

	"github.com/spacesedan/commentsense/config"
	"github.com/spacesedan/commentsense/internal/clients"
	"github.com/spacesedan/commentsense/internal/monitoring"
	"github.com/spacesedan/commentsense/internal/sentiment"
)

// Backend is the classifier selected by configuration. Health is nil for
// backends that have nothing remote to probe.
type Backend struct {
	Name       string
	Classifier sentiment.Classifier
	Health     monitoring.HealthChecker
}

func NewBackend(cfg *config.Config) (*Backend, error) {
	switch cfg.Backend {
	case config.BACKEND_VADER:
		return &Backend{Name: cfg.Backend, Classifier: sentiment.NewVaderClassifier()}, nil
	case config.BACKEND_HUGGINGFACE:
		client, err := clients.NewHuggingFaceClient(cfg.HFAPIURL, cfg.HFAPIToken, cfg.HFTimeout,
			clients.WithHealthURL(cfg.HFHealthURL))
		if err != nil {
			return nil, fmt.Errorf("failed to create hugging face client: %w", err)
		}
		return &Backend{Name: cfg.Backend, Classifier: client, Health: client}, nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", cfg.Backend)
	}
}
