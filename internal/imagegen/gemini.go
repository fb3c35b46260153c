package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiConfig holds the configuration for the Gemini image provider.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiProvider generates images through the Gemini API (Imagen models).
// The API returns raw bytes rather than a hosted URL, so generated images
// come back as data URIs; builders embed those without a network fetch.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini image provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("Google API key not configured (set GOOGLE_API_KEY or provide via config)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "imagen-3.0-generate-002"
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string { return "gemini" }

// Validate checks if the provider is properly configured.
func (p *GeminiProvider) Validate() error {
	if p.client == nil {
		return errors.New("gemini client not initialized")
	}
	return nil
}

// Generate requests one image and returns it as a data URI.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt
	if req.Style != "" {
		prompt = fmt.Sprintf("%s, %s style", prompt, req.Style)
	}

	resp, err := p.client.Models.GenerateImages(ctx, p.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", errors.New("image generation returned no image")
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	encoded := base64.StdEncoding.EncodeToString(img.ImageBytes)
	return fmt.Sprintf("data:%s;base64,%s", mime, encoded), nil
}
