package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
)

// Metrics records completion and answer metrics in a Prometheus registry.
type Metrics struct {
	CompletionsTotal   *prometheus.CounterVec
	CompletionDuration *prometheus.HistogramVec
	TokensTotal        *prometheus.CounterVec
	InFlight           prometheus.Gauge

	AnswersTotal   *prometheus.CounterVec
	AnswerDuration *prometheus.HistogramVec
	SearchFailures prometheus.Counter
	Truncations    prometheus.Counter
}

// NewMetrics registers the perle metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		CompletionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "perle_completions_total",
				Help: "Total number of completion calls",
			},
			[]string{"provider", "model", "code"},
		),
		CompletionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "perle_completion_duration_seconds",
				Help:    "Completion call duration in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider", "model"},
		),
		TokensTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "perle_tokens_total",
				Help: "Total number of tokens consumed",
			},
			[]string{"provider", "kind"},
		),
		InFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "perle_completions_in_flight",
				Help: "Number of completion calls in progress",
			},
		),
		AnswersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "perle_answers_total",
				Help: "Total number of answers by mode and outcome",
			},
			[]string{"mode", "chat_mode", "code"},
		),
		AnswerDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "perle_answer_duration_seconds",
				Help: "End-to-end answer duration in seconds",
			},
			[]string{"mode"},
		),
		SearchFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "perle_search_failures_total",
				Help: "Web searches that failed and were skipped",
			},
		),
		Truncations: f.NewCounter(
			prometheus.CounterOpts{
				Name: "perle_truncations_total",
				Help: "Answers cut off at the token limit",
			},
		),
	}
}

// outcome is the code label of an event; "ok" on success.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return core.ErrorCode(err)
}

// OnRequestStart tracks the in-flight gauge.
func (m *Metrics) OnRequestStart(core.RequestStartEvent) {
	m.InFlight.Inc()
}

// OnRequestEnd records the call outcome, latency and token usage.
func (m *Metrics) OnRequestEnd(e core.RequestEndEvent) {
	m.InFlight.Dec()
	m.CompletionsTotal.WithLabelValues(e.Provider, string(e.Model), outcome(e.Err)).Inc()
	m.CompletionDuration.WithLabelValues(e.Provider, string(e.Model)).Observe(e.Duration().Seconds())
	if e.Usage.PromptTokens > 0 {
		m.TokensTotal.WithLabelValues(e.Provider, "prompt").Add(float64(e.Usage.PromptTokens))
	}
	if e.Usage.CompletionTokens > 0 {
		m.TokensTotal.WithLabelValues(e.Provider, "completion").Add(float64(e.Usage.CompletionTokens))
	}
}

// OnAnswer records one Generate call.
func (m *Metrics) OnAnswer(e answer.AnswerEvent) {
	m.AnswersTotal.WithLabelValues(string(e.Mode), string(e.ChatMode), outcome(e.Err)).Inc()
	m.AnswerDuration.WithLabelValues(string(e.Mode)).Observe(e.Duration().Seconds())
	if e.SearchFailed {
		m.SearchFailures.Inc()
	}
	if e.Truncated {
		m.Truncations.Inc()
	}
}

var (
	_ core.TelemetryHook = (*Metrics)(nil)
	_ answer.Observer    = (*Metrics)(nil)
)
