package normalize

import "github.com/petal-labs/perle/core"

// OpenAIFinishReason maps a chat-completions finish_reason (OpenAI, xAI).
func OpenAIFinishReason(raw string) core.FinishReason {
	switch raw {
	case "stop", "":
		return core.FinishStop
	case "length":
		return core.FinishLength
	case "content_filter":
		return core.FinishSafety
	default:
		return core.FinishOther
	}
}

// GeminiFinishReason maps a Gemini candidate finishReason.
func GeminiFinishReason(raw string) core.FinishReason {
	switch raw {
	case "STOP", "FINISH_REASON_UNSPECIFIED", "":
		return core.FinishStop
	case "MAX_TOKENS":
		return core.FinishLength
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT", "SPII", "IMAGE_SAFETY":
		return core.FinishSafety
	default:
		return core.FinishOther
	}
}

// AnthropicFinishReason maps a Messages API stop_reason.
func AnthropicFinishReason(raw string) core.FinishReason {
	switch raw {
	case "end_turn", "stop_sequence", "":
		return core.FinishStop
	case "max_tokens":
		return core.FinishLength
	case "refusal":
		return core.FinishSafety
	default:
		return core.FinishOther
	}
}
