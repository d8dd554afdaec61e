package frame

import (
	"time"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// Number is the set of index types GenerateSequence can step through.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// GenerateSequence returns n values starting at start, step apart. n must
// be positive.
func GenerateSequence[N Number](start N, n int, step N) ([]N, error) {
	if n <= 0 {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotFeasible, "cannot generate %d values", n)
	}
	if step == 0 {
		return nil, frameerrors.New(frameerrors.ErrorTypeNotFeasible, "step must not be zero")
	}
	out := make([]N, n)
	v := start
	for i := range out {
		out[i] = v
		v += step
	}
	return out, nil
}

// GenerateTimeIndex returns the instants from start up to and including end,
// step apart.
func GenerateTimeIndex(start, end time.Time, step time.Duration) ([]time.Time, error) {
	if step <= 0 {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotFeasible, "time step must be positive, got %s", step)
	}
	if end.Before(start) {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotFeasible, "end %s is before start %s", end, start)
	}
	out := make([]time.Time, 0, int(end.Sub(start)/step)+1)
	for ts := start; !ts.After(end); ts = ts.Add(step) {
		out = append(out, ts)
	}
	return out, nil
}

// CompareTime orders time.Time index values for NewWithCompare.
func CompareTime(a, b time.Time) int { return a.Compare(b) }
