package xai

import (
	"net/http"
	"time"

	"github.com/petal-labs/perle/core"
)

// Config holds configuration for the xAI provider.
type Config struct {
	// APIKey is the xAI API key (required).
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to https://api.x.ai/v1
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout overrides the deadline reported by Profile.
	Timeout time.Duration
}

// DefaultBaseURL is the default xAI API base URL.
const DefaultBaseURL = "https://api.x.ai/v1"

// Option configures the xAI provider.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTimeout overrides the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}
