// Package config manages application configuration.
package config

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Output          OutputConfig        `yaml:"output"`
}

// Provider represents an image-generation provider configuration.
type Provider struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Style    string `yaml:"style,omitempty"` // default style hint sent with prompts
	Endpoint string `yaml:"endpoint,omitempty"`
}

// OutputConfig contains file output options.
type OutputConfig struct {
	Directory string `yaml:"directory"` // where build writes files, "" = cwd
	Overwrite bool   `yaml:"overwrite"` // replace existing output files
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "openai",
		Providers: map[string]Provider{
			"openai": {
				APIKey: "${OPENAI_API_KEY}",
				Model:  "dall-e-3",
			},
			"gemini": {
				APIKey: "${GOOGLE_API_KEY}",
				Model:  "imagen-3.0-generate-002",
			},
		},
		Output: OutputConfig{
			Directory: "",
			Overwrite: true,
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}
