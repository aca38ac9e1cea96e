package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebot_chat_turns_total",
		Help: "Chat turns by outcome",
	}, []string{"outcome"})

	modelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebot_model_calls_total",
		Help: "Generation API calls by model and result",
	}, []string{"model", "result"})

	modelCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voicebot_model_call_duration_seconds",
		Help:    "Latency of generation API calls",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"model"})

	repliesTruncated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebot_replies_truncated_total",
		Help: "Replies shortened by the length guard",
	})

	intents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebot_intents_total",
		Help: "Detected interview topics",
	}, []string{"intent"})
)

// ObserveTurn counts a finished chat turn.
func ObserveTurn(outcome string) {
	chatTurns.WithLabelValues(outcome).Inc()
}

// ObserveModelCall records one generation call.
func ObserveModelCall(model, result string, elapsed time.Duration) {
	modelCalls.WithLabelValues(model, result).Inc()
	modelCallDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}

// ObserveTruncation counts a reply cut down by the length guard.
func ObserveTruncation() {
	repliesTruncated.Inc()
}

// ObserveIntent counts a detected topic.
func ObserveIntent(intent string) {
	intents.WithLabelValues(intent).Inc()
}
