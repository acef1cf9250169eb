package core

import "time"

// Feature represents a capability that a provider may support.
type Feature string

const (
	FeatureChat            Feature = "chat"
	FeatureVision          Feature = "vision"
	FeatureGrounding       Feature = "grounding"
	FeatureImageGeneration Feature = "image_generation"
)

// ModelInfo describes a model available from a provider.
type ModelInfo struct {
	ID           ModelID   `json:"id"`
	DisplayName  string    `json:"display_name"`
	Capabilities []Feature `json:"capabilities"`
}

// HasCapability reports whether the model supports the given feature.
func (m ModelInfo) HasCapability(f Feature) bool {
	for _, cap := range m.Capabilities {
		if cap == f {
			return true
		}
	}
	return false
}

// ModelID is the vendor's own model string (e.g. "gpt-4o-mini").
// Using string avoids coupling to provider-specific enums.
type ModelID string

// Role represents a message participant role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
// For simple text messages, use Content. For multimodal messages, use Parts.
// If Parts is non-empty, Content is ignored.
type Message struct {
	Role    Role          `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []ContentPart `json:"-"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FinishReason is the normalized reason a provider stopped generating.
type FinishReason string

const (
	FinishStop   FinishReason = "stop"
	FinishLength FinishReason = "length"
	FinishSafety FinishReason = "safety"
	FinishOther  FinishReason = "other"
)

// Sampling holds the fixed decoding parameters a provider sends with every call.
// Zero values are omitted from the wire request.
type Sampling struct {
	Temperature      float32
	TopP             float32
	TopK             int
	FrequencyPenalty float32
	PresencePenalty  float32
}

// Profile describes the per-vendor constants an adapter runs with.
type Profile struct {
	Sampling        Sampling
	MaxOutputTokens int
	Timeout         time.Duration
}

// Resolution is the outcome of mapping a catalog id onto a vendor model.
type Resolution struct {
	Model ModelID

	// Deprecated is set when the id is retired and silently replaced.
	Deprecated bool

	// Fallback is set when the id was not recognized by the vendor table.
	Fallback bool

	// Grounded is set when the model runs with vendor-side search grounding.
	Grounded bool
}

// ChatRequest represents a request to a chat model.
type ChatRequest struct {
	Model            ModelID   `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      *float32  `json:"temperature,omitempty"`
	MaxTokens        *int      `json:"max_tokens,omitempty"`
	TopP             *float32  `json:"top_p,omitempty"`
	TopK             *int      `json:"top_k,omitempty"`
	FrequencyPenalty *float32  `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float32  `json:"presence_penalty,omitempty"`

	// Grounding asks providers that support it to ground the answer in live search.
	Grounding bool `json:"grounding,omitempty"`
}

// ApplySampling copies non-zero sampling values into the request.
func (r *ChatRequest) ApplySampling(s Sampling) {
	if s.Temperature != 0 {
		t := s.Temperature
		r.Temperature = &t
	}
	if s.TopP != 0 {
		p := s.TopP
		r.TopP = &p
	}
	if s.TopK != 0 {
		k := s.TopK
		r.TopK = &k
	}
	if s.FrequencyPenalty != 0 {
		f := s.FrequencyPenalty
		r.FrequencyPenalty = &f
	}
	if s.PresencePenalty != 0 {
		p := s.PresencePenalty
		r.PresencePenalty = &p
	}
}

// Citation is a web reference returned by a grounded provider.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// ChatResponse represents a response from a chat model.
// For providers returning multiple choices, only the first is used.
type ChatResponse struct {
	ID           string       `json:"id"`
	Model        ModelID      `json:"model"`
	Output       string       `json:"output"`
	FinishReason FinishReason `json:"finish_reason"`
	Usage        TokenUsage   `json:"usage"`
	Citations    []Citation   `json:"citations,omitempty"`
}
