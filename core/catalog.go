package core

// LLMModel is the caller-facing model identifier. Each provider maps it onto
// its own ModelID through an exhaustive table with one fallback arm.
type LLMModel string

const (
	ModelAuto LLMModel = "auto"

	ModelGPT5        LLMModel = "gpt-5"
	ModelGPT4o       LLMModel = "gpt-4o"
	ModelGPT4oMini   LLMModel = "gpt-4o-mini"
	ModelGPT4Turbo   LLMModel = "gpt-4-turbo"
	ModelGPT4        LLMModel = "gpt-4"
	ModelGPT35Turbo  LLMModel = "gpt-3.5-turbo"
	ModelGemini20    LLMModel = "gemini-2.0-latest"
	ModelGeminiLite  LLMModel = "gemini-lite"
	ModelGeminiPro   LLMModel = "gemini-pro"
	ModelGeminiPV    LLMModel = "gemini-pro-vision"
	ModelGrok3       LLMModel = "grok-3"
	ModelGrok3Mini   LLMModel = "grok-3-mini"
	ModelGrok4       LLMModel = "grok-4"
	ModelGrok4Heavy  LLMModel = "grok-4-heavy"
	ModelGrok4Fast   LLMModel = "grok-4-fast"
	ModelGrokCode    LLMModel = "grok-code-fast-1"
	ModelGrokBeta    LLMModel = "grok-beta"
	ModelClaude45    LLMModel = "claude-4.5"
	ModelClaude3Opus LLMModel = "claude-3-opus"
	ModelClaude3Son  LLMModel = "claude-3-sonnet"
	ModelClaude3Hai  LLMModel = "claude-3-haiku"
	ModelLlama2      LLMModel = "llama-2"
	ModelMistral7B   LLMModel = "mistral-7b"
)

// Catalog lists every LLMModel the engine accepts, in display order.
var Catalog = []LLMModel{
	ModelAuto,
	ModelGPT5, ModelGPT4o, ModelGPT4oMini, ModelGPT4Turbo, ModelGPT4, ModelGPT35Turbo,
	ModelGemini20, ModelGeminiLite, ModelGeminiPro, ModelGeminiPV,
	ModelGrok3, ModelGrok3Mini, ModelGrok4, ModelGrok4Heavy, ModelGrok4Fast, ModelGrokCode, ModelGrokBeta,
	ModelClaude45, ModelClaude3Opus, ModelClaude3Son, ModelClaude3Hai,
	ModelLlama2, ModelMistral7B,
}

// Known reports whether m is part of the catalog.
func (m LLMModel) Known() bool {
	for _, c := range Catalog {
		if c == m {
			return true
		}
	}
	return false
}
