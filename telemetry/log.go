// Package telemetry provides implementations of core.TelemetryHook and
// answer.Observer backed by zerolog, Prometheus and OpenTelemetry.
//
// Hooks only see operational metadata: provider, model, timings, token
// counts and error codes. Query and answer text never reach them.
package telemetry

import (
	"github.com/rs/zerolog"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
)

// LogHook writes one structured line per completion call and per answer.
type LogHook struct {
	logger zerolog.Logger
}

// NewLogHook returns a hook writing to logger.
func NewLogHook(logger zerolog.Logger) *LogHook {
	return &LogHook{logger: logger}
}

// OnRequestStart logs at debug level.
func (h *LogHook) OnRequestStart(e core.RequestStartEvent) {
	h.logger.Debug().
		Str("provider", e.Provider).
		Str("model", string(e.Model)).
		Msg("completion started")
}

// OnRequestEnd logs failures at error level and successes at info level.
func (h *LogHook) OnRequestEnd(e core.RequestEndEvent) {
	ev := h.logger.Info()
	if e.Err != nil {
		ev = h.logger.Error().Err(e.Err).Str("code", core.ErrorCode(e.Err))
	}
	ev.Str("provider", e.Provider).
		Str("model", string(e.Model)).
		Dur("duration", e.Duration()).
		Int("prompt_tokens", e.Usage.PromptTokens).
		Int("completion_tokens", e.Usage.CompletionTokens).
		Str("finish_reason", string(e.FinishReason)).
		Msg("completion finished")
}

// OnAnswer logs the outcome of one Generate call.
func (h *LogHook) OnAnswer(e answer.AnswerEvent) {
	ev := h.logger.Info()
	if e.Err != nil {
		ev = h.logger.Warn().Err(e.Err).Str("code", core.ErrorCode(e.Err))
	}
	ev.Str("provider", e.Provider).
		Str("model", string(e.Model)).
		Str("mode", string(e.Mode)).
		Str("chat_mode", string(e.ChatMode)).
		Bool("shortcut", e.Shortcut).
		Bool("searched", e.Searched).
		Bool("search_failed", e.SearchFailed).
		Bool("truncated", e.Truncated).
		Int("sources", e.Sources).
		Int("images", e.Images).
		Dur("duration", e.Duration()).
		Msg("answer")
}

var (
	_ core.TelemetryHook = (*LogHook)(nil)
	_ answer.Observer    = (*LogHook)(nil)
)
