package core

import (
	"context"
	"time"
)

// Provider is the interface that completion vendors must implement.
// Providers SHOULD be safe for concurrent calls.
type Provider interface {
	// ID returns the provider identifier (e.g., "openai", "gemini").
	ID() string

	// Models returns the list of vendor models this adapter can call.
	Models() []ModelInfo

	// Supports reports whether the provider supports the given feature.
	Supports(feature Feature) bool

	// ResolveModel maps a catalog id onto a vendor model. It never fails:
	// unknown ids take the adapter's fallback arm.
	ResolveModel(id LLMModel) Resolution

	// Profile returns the fixed sampling constants, output ceiling and deadline.
	Profile() Profile

	// Chat sends a single, non-streaming completion request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ImageGenerator is an optional interface for providers that support image generation.
type ImageGenerator interface {
	// GenerateImage generates images from a text prompt.
	GenerateImage(ctx context.Context, req *ImageGenerateRequest) (*ImageResponse, error)
}

// Client wraps a Provider with telemetry and the per-call timeout guard.
// Client is safe for concurrent use.
type Client struct {
	provider  Provider
	telemetry TelemetryHook
	timeout   time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Client with the given provider and options.
// The deadline defaults to the provider's Profile().Timeout.
func NewClient(p Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider:  p,
		telemetry: NoopTelemetryHook{},
		timeout:   p.Profile().Timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTelemetry sets the telemetry hook for the client.
func WithTelemetry(h TelemetryHook) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// WithTimeout overrides the provider deadline.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Timeout returns the deadline applied to each call.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Chat returns a ChatBuilder for constructing and executing a chat request.
func (c *Client) Chat(model ModelID) *ChatBuilder {
	return &ChatBuilder{
		client: c,
		req: ChatRequest{
			Model: model,
		},
	}
}

// ChatBuilder provides a fluent API for building chat requests.
// ChatBuilder is NOT thread-safe and should not be shared across goroutines.
type ChatBuilder struct {
	client *Client
	req    ChatRequest
}

// System adds a system message.
func (b *ChatBuilder) System(s string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleSystem, Content: s})
	return b
}

// User adds a user message.
func (b *ChatBuilder) User(s string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleUser, Content: s})
	return b
}

// Assistant adds an assistant message.
func (b *ChatBuilder) Assistant(s string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleAssistant, Content: s})
	return b
}

// UserWithImageURL adds a user message carrying text and one image.
func (b *ChatBuilder) UserWithImageURL(text, imageURL string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{
		Role:  RoleUser,
		Parts: []ContentPart{InputText{Text: text}, InputImage{ImageURL: imageURL}},
	})
	return b
}

// Temperature sets the sampling temperature.
func (b *ChatBuilder) Temperature(v float32) *ChatBuilder {
	b.req.Temperature = &v
	return b
}

// MaxTokens sets the output token budget.
func (b *ChatBuilder) MaxTokens(n int) *ChatBuilder {
	b.req.MaxTokens = &n
	return b
}

// Sampling applies a full set of sampling constants.
func (b *ChatBuilder) Sampling(s Sampling) *ChatBuilder {
	b.req.ApplySampling(s)
	return b
}

// Grounding enables vendor-side search grounding where supported.
func (b *ChatBuilder) Grounding(on bool) *ChatBuilder {
	b.req.Grounding = on
	return b
}

// Request returns a copy of the request built so far.
func (b *ChatBuilder) Request() ChatRequest {
	req := b.req
	req.Messages = append([]Message(nil), b.req.Messages...)
	return req
}

// validate checks that the request is valid.
func (b *ChatBuilder) validate() error {
	if b.req.Model == "" {
		return ErrModelRequired
	}
	if len(b.req.Messages) == 0 {
		return ErrNoMessages
	}

	for _, msg := range b.req.Messages {
		if msg.Content == "" && len(msg.Parts) == 0 {
			return ErrNoMessages
		}
	}

	return nil
}

// GetResponse executes the chat request and returns the response.
// It applies validation, telemetry and the timeout guard. Exactly one attempt
// is made.
func (b *ChatBuilder) GetResponse(ctx context.Context) (*ChatResponse, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	providerID := b.client.provider.ID()

	b.client.telemetry.OnRequestStart(RequestStartEvent{
		Provider: providerID,
		Model:    b.req.Model,
		Start:    start,
	})

	req := b.Request()
	resp, err := Guard(ctx, b.client.timeout, func(ctx context.Context) (*ChatResponse, error) {
		return b.client.provider.Chat(ctx, &req)
	})

	usage := TokenUsage{}
	var finish FinishReason
	if resp != nil {
		usage = resp.Usage
		finish = resp.FinishReason
	}
	b.client.telemetry.OnRequestEnd(RequestEndEvent{
		Provider:     providerID,
		Model:        b.req.Model,
		Start:        start,
		End:          time.Now(),
		Usage:        usage,
		FinishReason: finish,
		Err:          err,
	})

	return resp, err
}
