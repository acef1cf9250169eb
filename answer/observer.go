package answer

import (
	"time"

	"github.com/petal-labs/perle/core"
)

// Observer receives one event per Generate call.
// Like core.TelemetryHook, events carry no query or answer text.
type Observer interface {
	OnAnswer(e AnswerEvent)
}

// AnswerEvent describes a finished Generate call.
type AnswerEvent struct {
	Provider string
	Model    core.ModelID
	Mode     Mode
	ChatMode ChatMode

	// Shortcut is set when the canned self-description was returned.
	Shortcut bool

	// Searched is set when live results were requested; SearchFailed when
	// that step failed and the answer went ahead without them.
	Searched     bool
	SearchFailed bool

	Truncated bool
	Sources   int
	Images    int

	Start time.Time
	End   time.Time
	Err   error
}

// Duration returns the elapsed time of the call.
func (e AnswerEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopObserver discards events.
type NoopObserver struct{}

// OnAnswer does nothing.
func (NoopObserver) OnAnswer(AnswerEvent) {}
