// Package metrics holds the Prometheus collectors exported on /metrics
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rpg_dice"

// Outcome label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	registry = prometheus.NewRegistry()

	toolCalls = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total MCP tool calls, partitioned by tool and outcome.",
		},
		[]string{"tool", "outcome"},
	)
	toolDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "MCP tool call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"tool"},
	)
	diceRolled = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dice_rolled_total",
			Help:      "Total individual dice rolled, partitioned by number of sides.",
		},
		[]string{"sides"},
	)
	batchFailures = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_operation_failures_total",
			Help:      "Batch entries replaced by a failure placeholder, partitioned by operation type.",
		},
		[]string{"type"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveToolCall records one tool invocation
func ObserveToolCall(tool string, err error, elapsed time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	toolCalls.WithLabelValues(tool, outcome).Inc()
	toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// AddDice records count dice of the given size
func AddDice(sides string, count int) {
	if count <= 0 {
		return
	}
	diceRolled.WithLabelValues(sides).Add(float64(count))
}

// IncBatchFailure records a failed batch entry
func IncBatchFailure(opType string) {
	batchFailures.WithLabelValues(opType).Inc()
}

// Registry exposes the collectors for tests and custom exporters
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
