package openai

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/petal-labs/perle/core"
)

// DefaultAPIKeyEnvVar is the environment variable name for the OpenAI API key.
const DefaultAPIKeyEnvVar = "OPENAI_API_KEY"

// ErrAPIKeyNotFound is returned when the API key environment variable is not set.
var ErrAPIKeyNotFound = errors.New("openai: OPENAI_API_KEY environment variable not set")

// Per-call constants. Sampling favors latency over determinism.
const (
	defaultTimeout   = 25 * time.Second
	maxOutputTokens  = 16384
	temperature      = 0.3
	topP             = 0.9
	frequencyPenalty = 0.1
	presencePenalty  = 0.1
)

// NewFromEnv creates a new OpenAI provider using the OPENAI_API_KEY environment variable.
func NewFromEnv(opts ...Option) (*OpenAI, error) {
	apiKey := os.Getenv(DefaultAPIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	return New(apiKey, opts...), nil
}

// OpenAI is a completion adapter for the OpenAI Chat Completions API.
// OpenAI is safe for concurrent use.
type OpenAI struct {
	config Config
}

// New creates a new OpenAI provider with the given API key and options.
func New(apiKey string, opts ...Option) *OpenAI {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenAI{config: cfg}
}

// ID returns the provider identifier.
func (p *OpenAI) ID() string {
	return "openai"
}

// Models returns the list of available models.
func (p *OpenAI) Models() []core.ModelInfo {
	result := make([]core.ModelInfo, len(models))
	copy(result, models)
	return result
}

// Supports reports whether the provider supports the given feature.
func (p *OpenAI) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureVision, core.FeatureImageGeneration:
		return true
	default:
		return false
	}
}

// Profile returns the fixed sampling constants, output ceiling and deadline.
func (p *OpenAI) Profile() core.Profile {
	timeout := defaultTimeout
	if p.config.Timeout > 0 {
		timeout = p.config.Timeout
	}
	return core.Profile{
		Sampling: core.Sampling{
			Temperature:      temperature,
			TopP:             topP,
			FrequencyPenalty: frequencyPenalty,
			PresencePenalty:  presencePenalty,
		},
		MaxOutputTokens: maxOutputTokens,
		Timeout:         timeout,
	}
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *OpenAI) buildHeaders() http.Header {
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
func (p *OpenAI) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// Compile-time checks.
var (
	_ core.Provider       = (*OpenAI)(nil)
	_ core.ImageGenerator = (*OpenAI)(nil)
)
