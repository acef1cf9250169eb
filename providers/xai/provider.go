package xai

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/petal-labs/perle/core"
)

// DefaultAPIKeyEnvVar is the environment variable name for the xAI API key.
const DefaultAPIKeyEnvVar = "XAI_API_KEY"

// ErrAPIKeyNotFound is returned when the API key environment variable is not set.
var ErrAPIKeyNotFound = errors.New("xai: XAI_API_KEY environment variable not set")

const (
	defaultTimeout  = 25 * time.Second
	maxOutputTokens = 8192
	temperature     = 0.3
	topP            = 0.9
)

// NewFromEnv creates a new xAI provider using the XAI_API_KEY environment variable.
//
//	provider, err := xai.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := core.NewClient(provider)
func NewFromEnv(opts ...Option) (*Xai, error) {
	apiKey := os.Getenv(DefaultAPIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	return New(apiKey, opts...), nil
}

// Xai is a completion adapter for the xAI Grok API.
// Xai is safe for concurrent use.
type Xai struct {
	config Config
}

// New creates a new xAI provider with the given API key and options.
func New(apiKey string, opts ...Option) *Xai {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Xai{config: cfg}
}

// ID returns the provider identifier.
func (p *Xai) ID() string {
	return "xai"
}

// Models returns the list of available models.
func (p *Xai) Models() []core.ModelInfo {
	result := make([]core.ModelInfo, len(models))
	copy(result, models)
	return result
}

// Supports reports whether the provider supports the given feature.
func (p *Xai) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureVision:
		return true
	default:
		return false
	}
}

// Profile returns the fixed sampling constants, output ceiling and deadline.
// Grok reasoning models reject penalty parameters, so none are sent.
func (p *Xai) Profile() core.Profile {
	timeout := defaultTimeout
	if p.config.Timeout > 0 {
		timeout = p.config.Timeout
	}
	return core.Profile{
		Sampling:        core.Sampling{Temperature: temperature, TopP: topP},
		MaxOutputTokens: maxOutputTokens,
		Timeout:         timeout,
	}
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *Xai) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("Authorization", "Bearer "+p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Chat sends a single chat completion request.
func (p *Xai) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// Compile-time check that Xai implements Provider.
var _ core.Provider = (*Xai)(nil)
