// Package imagegen provides the image-generation provider interface, the
// provider registry, and the resolution pass that fills pending image
// placeholders in a document schema.
package imagegen

import "context"

// Provider is the interface all image generators must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string

	// Generate produces an image for the request and returns its URL. The
	// URL may be a regular https URL or a data URI, depending on what the
	// backing service returns.
	Generate(ctx context.Context, req Request) (string, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// Request describes one image to generate.
type Request struct {
	Prompt   string `json:"prompt"`
	Style    string `json:"style,omitempty"`     // style hint, e.g. "photo", "illustration"
	CallerID string `json:"caller_id,omitempty"` // identity forwarded to the backing service
}
