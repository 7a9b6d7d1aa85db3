package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "waterworks_"

// Run owns the metric set for one batch execution. The registry is
// private to the run; metrics are published through a textfile for a
// node_exporter textfile collector rather than an HTTP endpoint, since
// the process is a batch job.
type Run struct {
	registry *prometheus.Registry

	rowsLoaded    prometheus.Counter
	rowsDropped   prometheus.Counter
	unmappedNames prometheus.Counter
	metersSkipped prometheus.Counter
	itemsFailed   *prometheus.CounterVec
}

// NewRun registers the batch metrics on a fresh registry.
func NewRun() *Run {
	run := &Run{registry: prometheus.NewRegistry()}

	run.rowsLoaded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "readings_loaded_total",
		Help: "Total readings loaded from the main source",
	})
	run.rowsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "readings_dropped_total",
		Help: "Total readings dropped for lacking a hierarchy match",
	})
	run.unmappedNames = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "unmapped_display_names_total",
		Help: "Distinct display names without a functional zone",
	})
	run.metersSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "meters_skipped_total",
		Help: "Meters skipped for insufficient data",
	})
	run.itemsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "analysis_items_failed_total",
		Help: "Failed per-item sub-analyses by analysis",
	}, []string{"analysis"})

	run.registry.MustRegister(
		run.rowsLoaded,
		run.rowsDropped,
		run.unmappedNames,
		run.metersSkipped,
		run.itemsFailed,
	)
	return run
}

// AddRowsLoaded records loaded readings.
func (r *Run) AddRowsLoaded(n int) {
	if n > 0 {
		r.rowsLoaded.Add(float64(n))
	}
}

// AddRowsDropped records readings excluded by the hierarchy join.
func (r *Run) AddRowsDropped(n int) {
	if n > 0 {
		r.rowsDropped.Add(float64(n))
	}
}

// AddUnmappedNames records display names without a zone.
func (r *Run) AddUnmappedNames(n int) {
	if n > 0 {
		r.unmappedNames.Add(float64(n))
	}
}

// IncMeterSkipped records one skipped meter.
func (r *Run) IncMeterSkipped() { r.metersSkipped.Inc() }

// IncItemFailed records one failed sub-analysis item.
func (r *Run) IncItemFailed(analysis string) {
	if analysis == "" {
		analysis = "unknown"
	}
	r.itemsFailed.WithLabelValues(analysis).Inc()
}

// WriteTextfile writes the run metrics in text exposition format.
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
