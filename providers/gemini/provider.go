package gemini

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/petal-labs/perle/core"
)

// DefaultAPIKeyEnvVar is the environment variable name for the Gemini API key.
const DefaultAPIKeyEnvVar = "GOOGLE_API_KEY"

// ErrAPIKeyNotFound is returned when the API key environment variable is not set.
var ErrAPIKeyNotFound = errors.New("gemini: GOOGLE_API_KEY environment variable not set")

const (
	defaultTimeout  = 30 * time.Second
	maxOutputTokens = 8192
	temperature     = 0.3
	topP            = 0.9
	topK            = 40
)

// Gemini is a completion adapter for the Google Gemini generateContent API.
// It also implements core.ImageGenerator through Imagen.
// Gemini is safe for concurrent use.
type Gemini struct {
	config Config
}

// New creates a new Gemini provider with the given API key and options.
func New(apiKey string, opts ...Option) *Gemini {
	cfg := Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Gemini{config: cfg}
}

// NewFromEnv creates a new Gemini provider using the GOOGLE_API_KEY environment variable.
func NewFromEnv(opts ...Option) (*Gemini, error) {
	apiKey := os.Getenv(DefaultAPIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	return New(apiKey, opts...), nil
}

// ID returns the provider identifier.
func (p *Gemini) ID() string {
	return "gemini"
}

// Models returns the list of available models.
func (p *Gemini) Models() []core.ModelInfo {
	result := make([]core.ModelInfo, len(models))
	copy(result, models)
	return result
}

// Supports reports whether the provider supports the given feature.
func (p *Gemini) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureVision, core.FeatureGrounding, core.FeatureImageGeneration:
		return true
	default:
		return false
	}
}

// Profile returns the fixed sampling constants, output ceiling and deadline.
func (p *Gemini) Profile() core.Profile {
	timeout := defaultTimeout
	if p.config.Timeout > 0 {
		timeout = p.config.Timeout
	}
	return core.Profile{
		Sampling: core.Sampling{
			Temperature: temperature,
			TopP:        topP,
			TopK:        topK,
		},
		MaxOutputTokens: maxOutputTokens,
		Timeout:         timeout,
	}
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *Gemini) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("x-goog-api-key", p.config.APIKey)
	headers.Set("Content-Type", "application/json")

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Chat sends a single generateContent request.
func (p *Gemini) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// Compile-time checks.
var (
	_ core.Provider       = (*Gemini)(nil)
	_ core.ImageGenerator = (*Gemini)(nil)
)
