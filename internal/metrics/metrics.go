package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome and source labels.
const (
	SourceModel    = "model"
	SourceRules    = "rules"
	SourceFallback = "fallback"
)

// Metrics holds the collectors for the dialogue and quest pipelines. All
// collectors are registered on the registerer passed to New.
type Metrics struct {
	DialogueRequests   *prometheus.CounterVec
	QuestRequests      *prometheus.CounterVec
	ParseStrategies    *prometheus.CounterVec
	QuestRepairs       prometheus.Counter
	CompletionErrors   *prometheus.CounterVec
	CompletionDuration *prometheus.HistogramVec
	HTTPRequests       *prometheus.CounterVec
}

// New creates the collectors on reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler, or a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DialogueRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outpost_dialogue_requests_total",
				Help: "Total number of dialogue lines produced, partitioned by source.",
			},
			[]string{"source"},
		),
		QuestRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outpost_quest_requests_total",
				Help: "Total number of quests produced, partitioned by endpoint and source.",
			},
			[]string{"endpoint", "source"},
		),
		ParseStrategies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outpost_quest_parse_strategy_total",
				Help: "Total number of quest completions recovered, partitioned by extraction strategy.",
			},
			[]string{"strategy"},
		),
		QuestRepairs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "outpost_quest_repairs_total",
				Help: "Total number of quest fields replaced during repair.",
			},
		),
		CompletionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outpost_completion_errors_total",
				Help: "Total number of failed completion calls, partitioned by pipeline.",
			},
			[]string{"pipeline"},
		),
		CompletionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "outpost_completion_duration_seconds",
				Help:    "Latency of completion calls, partitioned by pipeline.",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"pipeline"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outpost_http_requests_total",
				Help: "Total number of HTTP requests, partitioned by method, path and status code.",
			},
			[]string{"method", "path", "status"},
		),
	}
}

// ObserveCompletion records the latency of one completion call and counts it
// as an error when err is non-nil.
func (m *Metrics) ObserveCompletion(pipeline string, start time.Time, err error) {
	m.CompletionDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
	if err != nil {
		m.CompletionErrors.WithLabelValues(pipeline).Inc()
	}
}
