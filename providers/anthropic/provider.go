package anthropic

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/petal-labs/perle/core"
)

// DefaultAPIKeyEnvVar is the environment variable name for the Anthropic API key.
const DefaultAPIKeyEnvVar = "ANTHROPIC_API_KEY"

// ErrAPIKeyNotFound is returned when the API key environment variable is not set.
var ErrAPIKeyNotFound = errors.New("anthropic: ANTHROPIC_API_KEY environment variable not set")

const (
	defaultTimeout  = 30 * time.Second
	maxOutputTokens = 8192
	temperature     = 0.3
	topP            = 0.9
	topK            = 40
)

// Anthropic is a completion adapter for the Anthropic Messages API.
// Anthropic is safe for concurrent use.
type Anthropic struct {
	config Config
}

// NewFromEnv creates a new Anthropic provider using the ANTHROPIC_API_KEY environment variable.
func NewFromEnv(opts ...Option) (*Anthropic, error) {
	apiKey := os.Getenv(DefaultAPIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	return New(apiKey, opts...), nil
}

// New creates a new Anthropic provider with the given API key and options.
func New(apiKey string, opts ...Option) *Anthropic {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Version:    DefaultVersion,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Anthropic{config: cfg}
}

// ID returns the provider identifier.
func (p *Anthropic) ID() string {
	return "anthropic"
}

// Models returns the list of available models.
func (p *Anthropic) Models() []core.ModelInfo {
	result := make([]core.ModelInfo, len(models))
	copy(result, models)
	return result
}

// Supports reports whether the provider supports the given feature.
func (p *Anthropic) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureVision:
		return true
	default:
		return false
	}
}

// Profile returns the fixed sampling constants, output ceiling and deadline.
func (p *Anthropic) Profile() core.Profile {
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
func (p *Anthropic) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("x-api-key", p.config.APIKey.Expose())
	headers.Set("anthropic-version", p.config.Version)
	headers.Set("Content-Type", "application/json")

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Chat sends a single Messages API request.
func (p *Anthropic) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// Compile-time check that Anthropic implements Provider.
var _ core.Provider = (*Anthropic)(nil)
