package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ProcessorInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "order_processor_invocations_total", Help: "External order processor invocations by command and outcome"},
		[]string{"command", "outcome"},
	)
	ProcessorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "order_processor_duration_seconds", Help: "External order processor wall time", Buckets: prometheus.DefBuckets},
		[]string{"command"},
	)
)

func init() {
	prometheus.MustRegister(ProcessorInvocationsTotal, ProcessorDuration)
}

func ObserveProcessor(command, outcome string, started time.Time) {
	ProcessorInvocationsTotal.WithLabelValues(command, outcome).Inc()
	ProcessorDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}
