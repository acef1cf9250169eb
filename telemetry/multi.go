package telemetry

import (
	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
)

// Sink is a hook that observes both completion calls and answers.
type Sink interface {
	core.TelemetryHook
	answer.Observer
}

// Fanout forwards every event to each sink in order.
type Fanout []Sink

// OnRequestStart forwards to every sink.
func (f Fanout) OnRequestStart(e core.RequestStartEvent) {
	for _, s := range f {
		s.OnRequestStart(e)
	}
}

// OnRequestEnd forwards to every sink.
func (f Fanout) OnRequestEnd(e core.RequestEndEvent) {
	for _, s := range f {
		s.OnRequestEnd(e)
	}
}

// OnAnswer forwards to every sink.
func (f Fanout) OnAnswer(e answer.AnswerEvent) {
	for _, s := range f {
		s.OnAnswer(e)
	}
}

var _ Sink = Fanout(nil)
