package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderObserve(t *testing.T) {
	rec := NewRecorder("metrics_observe")
	assert.Equal(t, "metrics_observe", rec.Table())

	rec.Observe(NewTimer("load_column"), nil)
	rec.Observe(NewTimer("load_column"), nil)
	rec.Observe(NewTimer("load_column"), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(Operations.WithLabelValues("metrics_observe", "load_column", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(Operations.WithLabelValues("metrics_observe", "load_column", StatusFailure)))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(OperationLatency, "nebulaframe_operation_duration_seconds"), 1)
}

func TestRecorderSetShape(t *testing.T) {
	rec := NewRecorder("metrics_shape")
	rec.SetShape(120, 4)

	assert.Equal(t, 120.0, testutil.ToFloat64(Rows.WithLabelValues("metrics_shape")))
	assert.Equal(t, 4.0, testutil.ToFloat64(Columns.WithLabelValues("metrics_shape")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Observe(NewTimer("x"), nil)
		rec.SetShape(1, 1)
	})
	assert.Equal(t, "", rec.Table())

	NewRecorder("metrics_nil_timer").Observe(nil, nil)
}

func TestTimer(t *testing.T) {
	timer := NewTimer("select_by_idx")
	assert.Equal(t, "select_by_idx", timer.Name())

	time.Sleep(time.Millisecond)
	first := timer.Stop()
	assert.GreaterOrEqual(t, first, time.Millisecond)
	assert.GreaterOrEqual(t, timer.Stop(), first)
}
