package frame

import (
	"reflect"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/pool"
)

// ColumnSpec names a column and the element type a predicate reads it as.
type ColumnSpec struct {
	name  string
	elem  reflect.Type
	match func(Column) bool
}

// Col declares that a predicate reads column name as T.
func Col[T comparable](name string) ColumnSpec {
	return ColumnSpec{
		name: name,
		elem: reflect.TypeFor[T](),
		match: func(c Column) bool {
			_, ok := c.(*Vector[T])
			return ok
		},
	}
}

// Name returns the column name.
func (s ColumnSpec) Name() string { return s.name }

// Row is one row as seen by a Predicate: the columns declared by its
// ColumnSpecs, in declaration order.
type Row struct {
	pos  int
	cols []Column
}

// Pos returns the row position.
func (r Row) Pos() int { return r.pos }

// Field reads the k-th declared column of the row as T. Past the column's
// physical end it returns NaN, as it does when T differs from the type
// given to Col.
func Field[T comparable](r Row, k int) T {
	v, ok := r.cols[k].(*Vector[T])
	if !ok {
		return NaN[T]()
	}
	return v.At(r.pos)
}

// Predicate decides whether a row is selected.
type Predicate[I comparable] func(index I, row Row) bool

// resolveSpecsLocked looks up and type-checks every declared column before
// any row is visited.
func (t *Table[I]) resolveSpecsLocked(specs []ColumnSpec) ([]Column, error) {
	cols := make([]Column, len(specs))
	for k, s := range specs {
		c, err := t.lookupLocked(s.name)
		if err != nil {
			return nil, err
		}
		if !s.match(c) {
			return nil, frameerrors.Newf(frameerrors.ErrorTypeTypeMismatch,
				"column %q holds %s, not %s", s.name, c.ElemType(), s.elem).
				WithDetail("column", s.name)
		}
		cols[k] = c
	}
	return cols, nil
}

// selectLocked evaluates pred over every index position. The returned buffer
// comes from the position pool and must be handed back with pool.PutPositions.
func (t *Table[I]) selectLocked(pred Predicate[I], cols []Column) *[]int {
	buf := pool.GetPositions(len(t.index) / 4)
	row := Row{cols: cols}
	for i, idx := range t.index {
		row.pos = i
		if pred(idx, row) {
			*buf = append(*buf, i)
		}
	}
	return buf
}

// SelectBy1 selects the rows where fn holds for the index and one column.
func SelectBy1[A comparable, I comparable](t *Table[I], col string, fn func(I, A) bool) (*Table[I], error) {
	return t.DataBySel(func(idx I, r Row) bool {
		return fn(idx, Field[A](r, 0))
	}, Col[A](col))
}

// SelectBy2 selects the rows where fn holds for the index and two columns.
func SelectBy2[A, B comparable, I comparable](t *Table[I], colA, colB string, fn func(I, A, B) bool) (*Table[I], error) {
	return t.DataBySel(func(idx I, r Row) bool {
		return fn(idx, Field[A](r, 0), Field[B](r, 1))
	}, Col[A](colA), Col[B](colB))
}

// SelectBy3 selects the rows where fn holds for the index and three columns.
func SelectBy3[A, B, C comparable, I comparable](t *Table[I], colA, colB, colC string, fn func(I, A, B, C) bool) (*Table[I], error) {
	return t.DataBySel(func(idx I, r Row) bool {
		return fn(idx, Field[A](r, 0), Field[B](r, 1), Field[C](r, 2))
	}, Col[A](colA), Col[B](colB), Col[C](colC))
}
