package normalize

import (
	"testing"

	"github.com/petal-labs/perle/core"
)

func TestFinishReasons(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) core.FinishReason
		raw  string
		want core.FinishReason
	}{
		{"openai stop", OpenAIFinishReason, "stop", core.FinishStop},
		{"openai length", OpenAIFinishReason, "length", core.FinishLength},
		{"openai filter", OpenAIFinishReason, "content_filter", core.FinishSafety},
		{"openai tool", OpenAIFinishReason, "tool_calls", core.FinishOther},
		{"gemini stop", GeminiFinishReason, "STOP", core.FinishStop},
		{"gemini max", GeminiFinishReason, "MAX_TOKENS", core.FinishLength},
		{"gemini safety", GeminiFinishReason, "SAFETY", core.FinishSafety},
		{"gemini blocklist", GeminiFinishReason, "BLOCKLIST", core.FinishSafety},
		{"gemini other", GeminiFinishReason, "MALFORMED_FUNCTION_CALL", core.FinishOther},
		{"anthropic end", AnthropicFinishReason, "end_turn", core.FinishStop},
		{"anthropic max", AnthropicFinishReason, "max_tokens", core.FinishLength},
		{"anthropic refusal", AnthropicFinishReason, "refusal", core.FinishSafety},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
