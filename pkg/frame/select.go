package frame

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/pool"
)

// sliceLocked copies rows [lo, hi) of the index and every column into a new
// table. Short columns contribute only the part they physically hold.
func (t *Table[I]) sliceLocked(lo, hi int) *Table[I] {
	out := t.derive(hi - lo)
	out.index = append(out.index, t.index[lo:hi]...)
	for _, e := range t.cat.order {
		out.addColumnLocked(e.name, t.columns[e.slot].copyRange(lo, hi))
	}
	return out
}

// gatherLocked copies the given rows into a new table. Columns are gathered
// to the full selection length; rows past a column's end become NaN.
func (t *Table[I]) gatherLocked(positions []int) *Table[I] {
	out := t.derive(len(positions))
	for _, p := range positions {
		out.index = append(out.index, t.index[p])
	}
	for _, e := range t.cat.order {
		out.addColumnLocked(e.name, t.columns[e.slot].gather(positions))
	}
	return out
}

// DataByIdx returns a copy of the rows whose index lies in [begin, end].
// The index must be sorted. An empty match yields an empty table.
func (t *Table[I]) DataByIdx(begin, end I) (out *Table[I], err error) {
	defer t.track("data_by_idx")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	lo, hi, err := t.idxRange("DataByIdx", begin, end)
	if err != nil {
		return nil, err
	}
	out = t.sliceLocked(lo, hi)
	t.log.Debug("selected by index range", zap.Int("rows", hi-lo))
	return out, nil
}

// DataByIdxValues returns a copy of the rows whose index value is in values,
// in their original order.
func (t *Table[I]) DataByIdxValues(values []I) (out *Table[I], err error) {
	defer t.track("data_by_idx_values")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	return t.gatherLocked(t.idxValuePositions(values)), nil
}

// DataByLoc returns a copy of positions [begin, end], both inclusive.
// Negative positions count back from the end; end may equal Len.
func (t *Table[I]) DataByLoc(begin, end int) (out *Table[I], err error) {
	defer t.track("data_by_loc")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	lo, hi, err := locRange("DataByLoc", begin, end, len(t.index))
	if err != nil {
		return nil, err
	}
	return t.sliceLocked(lo, hi), nil
}

// DataByLocs returns a copy of the listed positions, in the listed order.
// Negative positions count back from the end.
func (t *Table[I]) DataByLocs(positions []int) (out *Table[I], err error) {
	defer t.track("data_by_locs")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	pos, err := locPositions("DataByLocs", positions, len(t.index))
	if err != nil {
		return nil, err
	}
	return t.gatherLocked(pos), nil
}

// DataBySel returns a copy of the rows for which pred holds. cols declares,
// in order, the columns pred reads through Field; their types are checked
// before any row is visited.
func (t *Table[I]) DataBySel(pred Predicate[I], cols ...ColumnSpec) (out *Table[I], err error) {
	defer t.track("data_by_sel")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	resolved, err := t.resolveSpecsLocked(cols)
	if err != nil {
		return nil, err
	}
	buf := t.selectLocked(pred, resolved)
	defer pool.PutPositions(buf)

	out = t.gatherLocked(*buf)
	t.log.Debug("selected by predicate", zap.Int("rows", len(*buf)), zap.Int("of", len(t.index)))
	return out, nil
}

// DataByRand returns a copy of randomly drawn rows. See SamplePolicy.
func (t *Table[I]) DataByRand(policy SamplePolicy, n float64, seed uint64) (out *Table[I], err error) {
	defer t.track("data_by_rand")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	pos, err := t.samplePositionsLocked(policy, n, seed)
	if err != nil {
		return nil, err
	}
	return t.gatherLocked(pos), nil
}
