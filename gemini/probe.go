package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type ProbeConfig struct {
	APIKey    string
	ModelName string
	// Endpoint overrides the API host, mainly for tests.
	Endpoint string
}

// ProbeKey asks the models API for the configured model using the given key,
// which fails fast on a revoked key or a model the key cannot reach.
func ProbeKey(ctx context.Context, cfg ProbeConfig) (*genai.ModelInfo, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no api key for model %q", cfg.ModelName)
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	defer client.Close()

	info, err := client.GenerativeModel(cfg.ModelName).Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up model %q: %w", cfg.ModelName, err)
	}
	return info, nil
}
