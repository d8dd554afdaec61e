// Package metrics provides operation tracking for frame tables using
// Prometheus metrics.
//
// # Overview
//
// The metrics package provides:
//   - A counter of engine operations by name and outcome
//   - A latency histogram per operation
//   - Row and column gauges per table
//   - A Recorder bound to one table name
//
// # Basic Usage
//
//	rec := metrics.NewRecorder("prices")
//	timer := metrics.NewTimer("select_by_idx")
//	out, err := t.DataByIdx(lo, hi)
//	rec.Observe(timer, err)
//	rec.SetShape(t.Shape())
//
// Metrics are registered on the default Prometheus registry through promauto,
// so they are exposed by any promhttp handler the host process mounts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	// Operations counts engine operations.
	// Labels: table, op (select_by_idx, load_column...), status (success/failure)
	//
	// Example:
	//	metrics.Operations.WithLabelValues("prices", "load_column", "success").Inc()
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebulaframe_operations_total",
			Help: "Total number of frame operations",
		},
		[]string{"table", "op", "status"},
	)

	// OperationLatency tracks the distribution of operation latencies in seconds.
	// Buckets range from 1µs to 1s.
	// Labels: table, op
	OperationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nebulaframe_operation_duration_seconds",
			Help: "Frame operation latency in seconds",
			Buckets: []float64{
				1e-6, // 1µs - single row append
				1e-5, // 10µs
				1e-4, // 100µs
				1e-3, // 1ms - selection over a few thousand rows
				1e-2, // 10ms
				1e-1, // 100ms - dedup over large tables
				1,    // 1s
			},
		},
		[]string{"table", "op"},
	)

	// Rows tracks the index length of each table.
	Rows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nebulaframe_rows",
			Help: "Number of index rows in the table",
		},
		[]string{"table"},
	)

	// Columns tracks the number of cataloged columns of each table.
	Columns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nebulaframe_columns",
			Help: "Number of columns in the table",
		},
		[]string{"table"},
	)
)

// Recorder records metrics for one table. A nil *Recorder is valid and
// records nothing, so callers never need to branch on whether metrics are on.
type Recorder struct {
	table string
}

// NewRecorder creates a recorder labelled with the table name.
func NewRecorder(table string) *Recorder {
	return &Recorder{table: table}
}

// Table returns the table label.
func (r *Recorder) Table() string {
	if r == nil {
		return ""
	}
	return r.table
}

// Observe records one operation: its latency and whether err is nil.
func (r *Recorder) Observe(timer *Timer, err error) {
	if r == nil || timer == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	Operations.WithLabelValues(r.table, timer.name, status).Inc()
	OperationLatency.WithLabelValues(r.table, timer.name).Observe(timer.Stop().Seconds())
}

// SetShape updates the row and column gauges.
func (r *Recorder) SetShape(rows, columns int) {
	if r == nil {
		return
	}
	Rows.WithLabelValues(r.table).Set(float64(rows))
	Columns.WithLabelValues(r.table).Set(float64(columns))
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name becomes the op label when the timer is observed.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the operation name of the timer.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called
// multiple times.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
