package answer

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/petal-labs/perle/core"
)

// Validate checks a raw provider response and returns the usable text.
// A safety stop is fatal and takes precedence; blank output is fatal; a
// length stop logs one warning and keeps the partial text.
func Validate(resp *core.ChatResponse, log zerolog.Logger) (string, error) {
	if resp == nil {
		return "", core.ErrEmptyResponse
	}
	if resp.FinishReason == core.FinishSafety {
		return "", core.ErrSafetyBlocked
	}

	text := strings.TrimSpace(resp.Output)
	if text == "" {
		return "", core.ErrEmptyResponse
	}

	if resp.FinishReason == core.FinishLength {
		log.Warn().
			Str("model", string(resp.Model)).
			Int("completion_tokens", resp.Usage.CompletionTokens).
			Msg("response truncated at token limit, returning partial answer")
	}
	return text, nil
}
