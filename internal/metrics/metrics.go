// Package metrics exposes Prometheus counters for batch runs. A nil
// *Recorder is a no-op, so callers never guard their calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the batch counters.
type Recorder struct {
	recordsProcessed prometheus.Counter
	recordsFailed    prometheus.Counter
	recordsSkipped   prometheus.Counter
	artifactsWritten prometheus.Counter
}

// NewRecorder registers the counters on the given registerer. Pass
// prometheus.DefaultRegisterer for the process-global registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		recordsProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "publisher_records_processed_total",
			Help: "Source records successfully rewritten and published.",
		}),
		recordsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "publisher_records_failed_total",
			Help: "Source records that failed during a batch run.",
		}),
		recordsSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "publisher_records_skipped_total",
			Help: "Source records skipped as duplicates.",
		}),
		artifactsWritten: f.NewCounter(prometheus.CounterOpts{
			Name: "publisher_artifacts_written_total",
			Help: "Artifact files written to the output tree.",
		}),
	}
}

func (r *Recorder) RecordProcessed() {
	if r != nil {
		r.recordsProcessed.Inc()
	}
}

func (r *Recorder) RecordFailed() {
	if r != nil {
		r.recordsFailed.Inc()
	}
}

func (r *Recorder) RecordSkipped() {
	if r != nil {
		r.recordsSkipped.Inc()
	}
}

func (r *Recorder) ArtifactsWritten(n int) {
	if r != nil {
		r.artifactsWritten.Add(float64(n))
	}
}
