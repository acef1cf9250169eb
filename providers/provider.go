// Package providers holds the completion vendor adapters used by the answer
// engine and the registry that builds them by name.
//
// Each vendor lives in its own subpackage (providers/openai, providers/gemini,
// providers/xai, providers/anthropic) and registers a factory in init:
//
//	import _ "github.com/petal-labs/perle/providers/gemini"
//
//	p, err := providers.Create("gemini", apiKey)
//
// # Adapter contract
//
// Adapters implement core.Provider. Beyond the Chat call they own:
//   - an exhaustive LLMModel -> vendor model table with one fallback arm (ResolveModel)
//   - fixed sampling constants, an output ceiling and a deadline (Profile)
//   - normalization of the vendor stop reason onto core.FinishReason
//
// Adapters make exactly one HTTP request per Chat call. Deadlines are applied
// by core.Client, not by the adapter.
package providers

import "github.com/petal-labs/perle/core"

// Re-export core types for convenience.
type (
	// Provider is the interface that completion vendors implement.
	Provider = core.Provider

	// Feature represents a capability that a provider may support.
	Feature = core.Feature

	// ModelInfo describes a model available from a provider.
	ModelInfo = core.ModelInfo

	// ChatRequest represents a request to a chat model.
	ChatRequest = core.ChatRequest

	// ChatResponse represents a response from a chat model.
	ChatResponse = core.ChatResponse

	// ProviderError represents an error returned by a provider.
	ProviderError = core.ProviderError
)

// Names of the bundled adapters as registered with Register.
const (
	OpenAI    = "openai"
	Gemini    = "gemini"
	XAI       = "xai"
	Anthropic = "anthropic"
)
