package main

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

// GeminiClient wraps the Google GenAI client.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a client from the configuration. A GCP project
// selects Vertex AI with Application Default Credentials (set
// GOOGLE_APPLICATION_CREDENTIALS to the service account key file path);
// otherwise an API key selects the Gemini API. It returns nil, nil when
// neither is configured.
func NewGeminiClient(ctx context.Context, cfg *Config) (*GeminiClient, error) {
	var cc *genai.ClientConfig
	switch {
	case cfg.ProjectID != "":
		region := cfg.Region
		if region == "" {
			region = defaultRegion
		}
		cc = &genai.ClientConfig{
			Project:  cfg.ProjectID,
			Location: region,
			Backend:  genai.BackendVertexAI,
		}
	case cfg.APIKey != "":
		cc = &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	default:
		return nil, nil
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{
		client:    client,
		modelName: model,
	}, nil
}

// Close releases resources held by the client.
func (g *GeminiClient) Close() error {
	return nil
}
