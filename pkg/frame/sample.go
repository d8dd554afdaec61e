package frame

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// SamplePolicy selects how DataByRand interprets its count argument.
type SamplePolicy int

const (
	// NumRows draws n rows
	NumRows SamplePolicy = iota
	// FracRows draws round(n * rows) rows
	FracRows
	// SeededNumRows is NumRows with a reproducible generator
	SeededNumRows
	// SeededFracRows is FracRows with a reproducible generator
	SeededFracRows
)

func (p SamplePolicy) String() string {
	switch p {
	case NumRows:
		return "num_rows"
	case FracRows:
		return "frac_rows"
	case SeededNumRows:
		return "seeded_num_rows"
	case SeededFracRows:
		return "seeded_frac_rows"
	}
	return "unknown"
}

func (p SamplePolicy) fractional() bool { return p == FracRows || p == SeededFracRows }
func (p SamplePolicy) seeded() bool     { return p == SeededNumRows || p == SeededFracRows }

// samplePositionsLocked draws positions uniformly with replacement, then
// sorts them and drops repeats, so the result may hold fewer than the
// requested count.
func (t *Table[I]) samplePositionsLocked(policy SamplePolicy, n float64, seed uint64) ([]int, error) {
	rows := len(t.index)
	count := n
	if policy.fractional() {
		count = math.Round(n * float64(rows))
	}
	if math.IsNaN(count) || count < 0 || count > float64(rows) {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeBadRange,
			"DataByRand: cannot draw %v rows (%s) from %d", n, policy, rows)
	}
	draws := int(count)
	if draws == 0 {
		return []int{}, nil
	}

	var rng *rand.Rand
	if policy.seeded() {
		if seed == 0 {
			seed = t.defaultSeed
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	positions := make([]int, draws)
	for k := range positions {
		positions[k] = rng.IntN(rows)
	}
	slices.Sort(positions)
	return slices.Compact(positions), nil
}
