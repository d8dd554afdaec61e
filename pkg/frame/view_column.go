package frame

import (
	"reflect"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// viewColumn is a column as seen through a view: either a sub-slice of the
// parent's storage or a list of pointers into it.
type viewColumn interface {
	Len() int
	Type() ColumnType
	ElemType() reflect.Type
	Value(i int) any
	materialize() Column
}

// access is the typed element access shared by both view column kinds.
type access[T comparable] interface {
	viewColumn
	at(i int) T
	set(i int, x T) bool
	values() []T
}

type sliceColumn[T comparable] struct {
	data []T
	tr   traits[T]
}

func (c *sliceColumn[T]) Len() int               { return len(c.data) }
func (c *sliceColumn[T]) Type() ColumnType       { return c.tr.kind }
func (c *sliceColumn[T]) ElemType() reflect.Type { return c.tr.elem }
func (c *sliceColumn[T]) Value(i int) any        { return c.at(i) }

func (c *sliceColumn[T]) at(i int) T {
	if i >= len(c.data) {
		return c.tr.nan
	}
	return c.data[i]
}

func (c *sliceColumn[T]) set(i int, x T) bool {
	if i >= len(c.data) {
		return false
	}
	c.data[i] = x
	return true
}

func (c *sliceColumn[T]) values() []T { return append([]T(nil), c.data...) }

func (c *sliceColumn[T]) materialize() Column { return vectorOf(c.values()) }

// ptrColumn holds one pointer per view row. A nil pointer is a hole: the
// parent column was shorter than the selected row.
type ptrColumn[T comparable] struct {
	ptrs []*T
	tr   traits[T]
}

func (c *ptrColumn[T]) Len() int               { return len(c.ptrs) }
func (c *ptrColumn[T]) Type() ColumnType       { return c.tr.kind }
func (c *ptrColumn[T]) ElemType() reflect.Type { return c.tr.elem }
func (c *ptrColumn[T]) Value(i int) any        { return c.at(i) }

func (c *ptrColumn[T]) at(i int) T {
	if i >= len(c.ptrs) || c.ptrs[i] == nil {
		return c.tr.nan
	}
	return *c.ptrs[i]
}

func (c *ptrColumn[T]) set(i int, x T) bool {
	if i >= len(c.ptrs) || c.ptrs[i] == nil {
		return false
	}
	*c.ptrs[i] = x
	return true
}

func (c *ptrColumn[T]) values() []T {
	out := make([]T, len(c.ptrs))
	for i := range c.ptrs {
		out[i] = c.at(i)
	}
	return out
}

func (c *ptrColumn[T]) materialize() Column { return vectorOf(c.values()) }

// ConstColumnRef is read access to one column of a view. It spans every row
// of the view; rows the parent column does not physically hold read as NaN.
type ConstColumnRef[T comparable] struct {
	name  string
	rows  int
	col   access[T]
	valid func() error
}

// Name returns the column name.
func (r *ConstColumnRef[T]) Name() string { return r.name }

// Len returns the number of rows of the view.
func (r *ConstColumnRef[T]) Len() int { return r.rows }

// At returns element i.
func (r *ConstColumnRef[T]) At(i int) (T, error) {
	if err := r.valid(); err != nil {
		var zero T
		return zero, err
	}
	if i < 0 || i >= r.rows {
		var zero T
		return zero, frameerrors.BadRange("ColumnRef.At", i, i, r.rows)
	}
	return r.col.at(i), nil
}

// Values returns a copy of the elements, one per view row.
func (r *ConstColumnRef[T]) Values() ([]T, error) {
	if err := r.valid(); err != nil {
		return nil, err
	}
	out := make([]T, r.rows)
	for i := range out {
		out[i] = r.col.at(i)
	}
	return out, nil
}

// ColumnRef is read-write access to one column of a mutable view. Writes go
// straight to the parent table's storage.
type ColumnRef[T comparable] struct {
	ConstColumnRef[T]
}

// Set overwrites element i in the parent table. Rows the parent column does
// not physically hold cannot be set.
func (r *ColumnRef[T]) Set(i int, x T) error {
	if err := r.valid(); err != nil {
		return err
	}
	if i < 0 || i >= r.rows || !r.col.set(i, x) {
		return frameerrors.BadRange("ColumnRef.Set", i, i, r.rows)
	}
	return nil
}

// ViewReader is implemented by every view kind.
type ViewReader interface {
	Len() int
	readColumn(name string) (viewColumn, func() error, error)
}

// ViewWriter is implemented only by the mutable view kinds, View and PtrView.
type ViewWriter interface {
	ViewReader
	writeColumn(name string) (viewColumn, func() error, error)
}

func typedAccess[T comparable](name string, c viewColumn) (access[T], error) {
	acc, ok := c.(access[T])
	if !ok {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeTypeMismatch,
			"column %q holds %s, not %s", name, c.ElemType(), reflect.TypeFor[T]())
	}
	return acc, nil
}

// ReadColumn returns read access to a column of any view.
func ReadColumn[T comparable](v ViewReader, name string) (*ConstColumnRef[T], error) {
	c, valid, err := v.readColumn(name)
	if err != nil {
		return nil, err
	}
	acc, err := typedAccess[T](name, c)
	if err != nil {
		return nil, err
	}
	return &ConstColumnRef[T]{name: name, rows: v.Len(), col: acc, valid: valid}, nil
}

// WriteColumn returns read-write access to a column of a mutable view.
func WriteColumn[T comparable](v ViewWriter, name string) (*ColumnRef[T], error) {
	c, valid, err := v.writeColumn(name)
	if err != nil {
		return nil, err
	}
	acc, err := typedAccess[T](name, c)
	if err != nil {
		return nil, err
	}
	return &ColumnRef[T]{ConstColumnRef[T]{name: name, rows: v.Len(), col: acc, valid: valid}}, nil
}
