package imagegen

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds the configuration for the OpenAI image provider.
type OpenAIConfig struct {
	APIKey string
	Model  string
	Size   string
}

// OpenAIProvider generates images through the OpenAI Images API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIProvider creates an OpenAI image provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("OpenAI API key not configured (set OPENAI_API_KEY or provide via config)")
	}

	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	size := cfg.Size
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		size:   size,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return "openai" }

// Validate checks if the provider is properly configured.
func (p *OpenAIProvider) Validate() error {
	if p.client == nil {
		return errors.New("openai client not initialized")
	}
	return nil
}

// Generate requests one image and returns the URL reported by the API.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt
	if req.Style != "" {
		prompt = fmt.Sprintf("%s, %s style", prompt, req.Style)
	}

	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          p.model,
		N:              1,
		Size:           p.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		User:           req.CallerID,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image generation returned no image")
	}
	return resp.Data[0].URL, nil
}
