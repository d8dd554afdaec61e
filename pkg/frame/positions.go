package frame

import (
	"sort"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// locRange resolves an inclusive position range against n rows and returns
// it half-open. Negative positions count back from the end, and an end equal
// to n means through the last row.
func locRange(op string, begin, end, n int) (lo, hi int, err error) {
	b, e := begin, end
	if b < 0 {
		b += n
	}
	if e < 0 {
		e += n
	}
	if e == n {
		e = n - 1
	}
	if b < 0 || e >= n || b > e {
		return 0, 0, frameerrors.BadRange(op, begin, end, n)
	}
	return b, e + 1, nil
}

// locPositions resolves possibly negative positions against n rows.
func locPositions(op string, positions []int, n int) ([]int, error) {
	out := make([]int, len(positions))
	for k, p := range positions {
		q := p
		if q < 0 {
			q += n
		}
		if q < 0 || q >= n {
			return nil, frameerrors.BadRange(op, p, p, n)
		}
		out[k] = q
	}
	return out, nil
}

// idxRange finds the half-open position range of index values within
// [begin, end]. The index is assumed sorted by the table comparator.
func (t *Table[I]) idxRange(op string, begin, end I) (lo, hi int, err error) {
	if t.compare(begin, end) > 0 {
		return 0, 0, frameerrors.Newf(frameerrors.ErrorTypeBadRange,
			"%s: begin %v is after end %v", op, begin, end)
	}
	lo = sort.Search(len(t.index), func(i int) bool { return t.compare(t.index[i], begin) >= 0 })
	hi = sort.Search(len(t.index), func(i int) bool { return t.compare(t.index[i], end) > 0 })
	if hi < lo {
		hi = lo
	}
	return lo, hi, nil
}

// idxValuePositions returns, in index order, every position whose index
// value is in values.
func (t *Table[I]) idxValuePositions(values []I) []int {
	set := make(map[I]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	var out []int
	for i, x := range t.index {
		if _, ok := set[x]; ok {
			out = append(out, i)
		}
	}
	return out
}
