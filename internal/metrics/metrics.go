package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	// OutcomeSuccess labels runs that produced a report.
	OutcomeSuccess = "success"
	// OutcomeError labels runs aborted by validation or aggregation failures.
	OutcomeError = "error"
)

var (
	reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kpi_engine",
			Name:      "reports_total",
			Help:      "Total number of report runs, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	reportDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "kpi_engine",
			Name:      "report_seconds",
			Help:      "Report build latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
	)

	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kpi_engine",
			Name:      "validation_failures_total",
			Help:      "Input records rejected during validation, partitioned by producer.",
		},
		[]string{"producer"},
	)
)

// Register attaches the engine collectors to the supplied Prometheus
// registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		reportsTotal,
		reportDurationSeconds,
		validationFailuresTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveReportBuild records one report run with its duration and outcome.
func ObserveReportBuild(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	reportsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	reportDurationSeconds.Observe(duration.Seconds())
}

// IncValidationFailure counts one rejected input batch for the named producer.
func IncValidationFailure(producer string) {
	validationFailuresTotal.WithLabelValues(producer).Inc()
}

// Push delivers the default registry to a Pushgateway. The engine is a batch
// job, so metrics are pushed after each run instead of being scraped.
func Push(url, job string) error {
	if url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push()
}
