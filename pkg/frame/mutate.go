package frame

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/pool"
)

// Cell is one named value of a row passed to AppendRow.
type Cell interface {
	ColumnName() string
	check(existing Column) error
	newColumn(capacity int) Column
	appendTo(c Column)
}

type cell[T comparable] struct {
	name string
	v    T
}

// C builds a Cell holding v for column name.
func C[T comparable](name string, v T) Cell {
	return cell[T]{name: name, v: v}
}

func (c cell[T]) ColumnName() string { return c.name }

func (c cell[T]) check(existing Column) error {
	if _, ok := existing.(*Vector[T]); !ok {
		return typeMismatch[T](c.name, existing)
	}
	return nil
}

func (c cell[T]) newColumn(capacity int) Column { return newVector[T](capacity) }

func (c cell[T]) appendTo(col Column) {
	v := col.(*Vector[T])
	v.data = append(v.data, c.v)
}

// AppendRow appends one row. A non-nil index is appended to the index; each
// cell is appended to its column, creating unknown columns. Every cell is
// validated before anything is written.
func (t *Table[I]) AppendRow(index *I, cells ...Cell) (err error) {
	defer t.track("append_row")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	rows := len(t.index)
	if index != nil {
		rows++
	}
	grow := make(map[string]int, len(cells))
	created := make(map[string]Column)
	for _, c := range cells {
		name := c.ColumnName()
		if name == IndexColumnName {
			return reservedName("AppendRow")
		}
		have := 0
		if existing, err := t.lookupLocked(name); err == nil {
			if err := c.check(existing); err != nil {
				return err
			}
			have = existing.Len()
		} else if first, ok := created[name]; ok {
			// cells naming the same new column must agree on its type
			if err := c.check(first); err != nil {
				return err
			}
		} else {
			created[name] = c.newColumn(0)
		}
		grow[name]++
		if have+grow[name] > rows {
			return frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
				"appending to column %q exceeds the index length %d", name, rows).
				WithDetail("column", name)
		}
	}

	if index != nil {
		t.index = append(t.index, *index)
	}
	for _, c := range cells {
		col, err := t.lookupLocked(c.ColumnName())
		if err != nil {
			col = c.newColumn(t.capacity)
			t.addColumnLocked(c.ColumnName(), col)
		}
		c.appendTo(col)
	}
	t.bump()
	return nil
}

// RemoveDataByLoc deletes positions [begin, end], both inclusive, from the
// index and every column. Columns are padded to the index length first.
func (t *Table[I]) RemoveDataByLoc(begin, end int) (err error) {
	defer t.track("remove_data_by_loc")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	lo, hi, err := locRange("RemoveDataByLoc", begin, end, len(t.index))
	if err != nil {
		return err
	}
	t.eraseLocked(lo, hi)
	return nil
}

// RemoveDataByIdx deletes the rows whose index lies in [begin, end].
func (t *Table[I]) RemoveDataByIdx(begin, end I) (err error) {
	defer t.track("remove_data_by_idx")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	lo, hi, err := t.idxRange("RemoveDataByIdx", begin, end)
	if err != nil {
		return err
	}
	if lo < hi {
		t.eraseLocked(lo, hi)
	}
	return nil
}

func (t *Table[I]) eraseLocked(lo, hi int) {
	t.makeConsistentLocked()
	t.index = append(t.index[:lo], t.index[hi:]...)
	for _, e := range t.cat.order {
		t.columns[e.slot].eraseRange(lo, hi)
	}
	t.bump()
	t.log.Debug("rows removed", zap.Int("rows", hi-lo))
}

// RemoveDataBySel deletes the rows for which pred holds and returns how many
// were removed.
func (t *Table[I]) RemoveDataBySel(pred Predicate[I], cols ...ColumnSpec) (n int, err error) {
	defer t.track("remove_data_by_sel")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	resolved, err := t.resolveSpecsLocked(cols)
	if err != nil {
		return 0, err
	}
	buf := t.selectLocked(pred, resolved)
	defer pool.PutPositions(buf)
	if len(*buf) == 0 {
		return 0, nil
	}

	keep := make([]bool, len(t.index))
	for i := range keep {
		keep[i] = true
	}
	for _, p := range *buf {
		keep[p] = false
	}
	t.compactLocked(keep)
	return len(*buf), nil
}

// compactLocked keeps the rows flagged in keep, padding columns first.
func (t *Table[I]) compactLocked(keep []bool) {
	t.makeConsistentLocked()
	out := t.index[:0]
	for i, x := range t.index {
		if keep[i] {
			out = append(out, x)
		}
	}
	t.index = out
	for _, e := range t.cat.order {
		t.columns[e.slot].compact(keep)
	}
	t.bump()
}
