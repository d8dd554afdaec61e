package frame

import (
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// Column is the type-erased view of one column's storage. Every column of a
// table is a *Vector[T] for some element type T; use As to recover it.
type Column interface {
	// Len returns the physical length, which may be below the index length
	Len() int
	Type() ColumnType
	ElemType() reflect.Type
	// Value returns element i boxed, or the NaN sentinel past the end
	Value(i int) any
	// IsNaN reports whether element i is missing; true past the end
	IsNaN(i int) bool

	copyRange(lo, hi int) Column
	gather(positions []int) Column
	padTo(n int) bool
	eraseRange(lo, hi int)
	compact(keep []bool)
	hashAt(d *xxhash.Digest, i int)
	equalAt(i, j int) bool
	aliasRange(lo, hi int) viewColumn
	aliasPositions(positions []int) viewColumn
	clone() Column
}

// Vector is the owning, contiguous storage of a column with element type T.
type Vector[T comparable] struct {
	data []T
	tr   traits[T]
}

func newVector[T comparable](capacity int) *Vector[T] {
	return &Vector[T]{
		data: make([]T, 0, capacity),
		tr:   traitsOf[T](),
	}
}

func vectorOf[T comparable](data []T) *Vector[T] {
	return &Vector[T]{data: data, tr: traitsOf[T]()}
}

// As recovers the typed vector behind col.
func As[T comparable](col Column) (*Vector[T], error) {
	v, ok := col.(*Vector[T])
	if !ok {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeTypeMismatch,
			"column holds %s, not %s", col.ElemType(), reflect.TypeFor[T]())
	}
	return v, nil
}

func (v *Vector[T]) Len() int               { return len(v.data) }
func (v *Vector[T]) Type() ColumnType       { return v.tr.kind }
func (v *Vector[T]) ElemType() reflect.Type { return v.tr.elem }

// At returns element i. Positions past the physical end read as NaN.
func (v *Vector[T]) At(i int) T {
	if i >= len(v.data) {
		return v.tr.nan
	}
	return v.data[i]
}

// Set overwrites element i in place.
func (v *Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= len(v.data) {
		return frameerrors.BadRange("Vector.Set", i, i, len(v.data))
	}
	v.data[i] = x
	return nil
}

// Values returns the live backing slice. Element writes are visible to the
// table; the slice must not be retained across structural mutations.
func (v *Vector[T]) Values() []T { return v.data }

// Clone returns an independent copy of the vector.
func (v *Vector[T]) Clone() *Vector[T] {
	return vectorOf(append(make([]T, 0, len(v.data)), v.data...))
}

func (v *Vector[T]) Value(i int) any { return v.At(i) }

func (v *Vector[T]) IsNaN(i int) bool {
	if i >= len(v.data) {
		return true
	}
	return v.tr.isNaN(v.data[i])
}

func (v *Vector[T]) copyRange(lo, hi int) Column {
	lo, hi = clampRange(lo, hi, len(v.data))
	return vectorOf(append(make([]T, 0, hi-lo), v.data[lo:hi]...))
}

func (v *Vector[T]) gather(positions []int) Column {
	out := make([]T, len(positions))
	for k, p := range positions {
		out[k] = v.At(p)
	}
	return vectorOf(out)
}

func (v *Vector[T]) padTo(n int) bool {
	if len(v.data) >= n {
		return false
	}
	for len(v.data) < n {
		v.data = append(v.data, v.tr.nan)
	}
	return true
}

func (v *Vector[T]) eraseRange(lo, hi int) {
	lo, hi = clampRange(lo, hi, len(v.data))
	v.data = append(v.data[:lo], v.data[hi:]...)
}

func (v *Vector[T]) compact(keep []bool) {
	out := v.data[:0]
	for i, x := range v.data {
		if i >= len(keep) || keep[i] {
			out = append(out, x)
		}
	}
	clear(v.data[len(out):])
	v.data = out
}

func (v *Vector[T]) hashAt(d *xxhash.Digest, i int) {
	if v.IsNaN(i) {
		_, _ = d.Write(nanMarker)
		return
	}
	hashValue(d, v.data[i])
}

// equalAt compares two rows of the same column; two NaNs are equal.
func (v *Vector[T]) equalAt(i, j int) bool {
	ni, nj := v.IsNaN(i), v.IsNaN(j)
	if ni || nj {
		return ni && nj
	}
	return v.data[i] == v.data[j]
}

func (v *Vector[T]) aliasRange(lo, hi int) viewColumn {
	lo, hi = clampRange(lo, hi, len(v.data))
	return &sliceColumn[T]{data: v.data[lo:hi:hi], tr: v.tr}
}

func (v *Vector[T]) aliasPositions(positions []int) viewColumn {
	ptrs := make([]*T, len(positions))
	for k, p := range positions {
		if p < len(v.data) {
			ptrs[k] = &v.data[p]
		}
	}
	return &ptrColumn[T]{ptrs: ptrs, tr: v.tr}
}

func (v *Vector[T]) clone() Column { return v.Clone() }

func clampRange(lo, hi, n int) (int, int) {
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
