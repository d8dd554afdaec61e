package frame

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

func reservedName(op string) error {
	return frameerrors.Newf(frameerrors.ErrorTypeDataFrame, "%s: %s is reserved for the index", op, IndexColumnName)
}

func typeMismatch[T comparable](name string, c Column) error {
	return frameerrors.Newf(frameerrors.ErrorTypeTypeMismatch,
		"column %q holds %s, not %s", name, c.ElemType(), reflect.TypeFor[T]()).
		WithDetail("column", name)
}

// CreateColumn registers an empty column of element type T and returns it.
// Creating an existing column of the same type returns the existing one.
func CreateColumn[T comparable, I comparable](t *Table[I], name string, lock ...LockPolicy) (*Vector[T], error) {
	g := t.Guard(t.policy(lock))
	defer g.Release()
	return createColumnLocked[T](t, name)
}

func createColumnLocked[T comparable, I comparable](t *Table[I], name string) (*Vector[T], error) {
	if name == IndexColumnName {
		return nil, reservedName("CreateColumn")
	}
	if slot, ok := t.cat.lookup(name); ok {
		v, ok := t.columns[slot].(*Vector[T])
		if !ok {
			return nil, typeMismatch[T](name, t.columns[slot])
		}
		return v, nil
	}
	v := newVector[T](t.capacity)
	t.addColumnLocked(name, v)
	t.log.Debug("column created", zap.String("column", name), zap.Stringer("type", v.Type()))
	return v, nil
}

// GetColumn returns the live storage of a column. The reference stays valid
// until the next structural mutation of the table.
func GetColumn[T comparable, I comparable](t *Table[I], name string, lock ...LockPolicy) (*Vector[T], error) {
	g := t.Guard(t.policy(lock))
	defer g.Release()
	return getColumnLocked[T](t, name)
}

func getColumnLocked[T comparable, I comparable](t *Table[I], name string) (*Vector[T], error) {
	c, err := t.lookupLocked(name)
	if err != nil {
		return nil, err
	}
	v, ok := c.(*Vector[T])
	if !ok {
		return nil, typeMismatch[T](name, c)
	}
	return v, nil
}

// GetColumnAt returns the column stored in slot.
func GetColumnAt[T comparable, I comparable](t *Table[I], slot int) (*Vector[T], error) {
	g := t.Guard(Lock)
	defer g.Release()
	c, err := t.lookupSlotLocked(slot)
	if err != nil {
		return nil, err
	}
	v, ok := c.(*Vector[T])
	if !ok {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeTypeMismatch,
			"slot %d holds %s, not %s", slot, c.ElemType(), reflect.TypeFor[T]())
	}
	return v, nil
}

// LoadColumn replaces the contents of a column with a copy of data, creating
// the column if needed, and returns the number of elements loaded. With
// PadWithNaNs the column is extended to the index length.
func LoadColumn[T comparable, I comparable](t *Table[I], name string, data []T, pad Padding, lock ...LockPolicy) (n int, err error) {
	defer t.track("load_column")(&err)
	g := t.Guard(t.policy(lock))
	defer g.Release()
	return loadColumnLocked(t, name, data, pad)
}

func loadColumnLocked[T comparable, I comparable](t *Table[I], name string, data []T, pad Padding) (int, error) {
	if name == IndexColumnName {
		return 0, reservedName("LoadColumn")
	}
	if len(data) > len(t.index) {
		return 0, frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
			"column %q of length %d is longer than the index of length %d", name, len(data), len(t.index)).
			WithDetail("column", name)
	}
	v, err := createColumnLocked[T](t, name)
	if err != nil {
		return 0, err
	}

	size := len(data)
	if pad == PadWithNaNs {
		size = len(t.index)
	}
	v.data = append(make([]T, 0, size), data...)
	if pad == PadWithNaNs {
		v.padTo(len(t.index))
	}
	t.bump()
	t.log.Debug("column loaded", zap.String("column", name), zap.Int("len", len(data)), zap.Stringer("padding", pad))
	return len(data), nil
}

// AppendColumn appends values to a column, creating it if needed, and
// returns how many were appended.
func AppendColumn[T comparable, I comparable](t *Table[I], name string, pad Padding, values ...T) (n int, err error) {
	defer t.track("append_column")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	if name == IndexColumnName {
		return 0, reservedName("AppendColumn")
	}
	if c, ok := t.cat.lookup(name); ok {
		if l := t.columns[c].Len() + len(values); l > len(t.index) {
			return 0, frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
				"appending %d values to column %q exceeds the index length %d", len(values), name, len(t.index))
		}
	} else if len(values) > len(t.index) {
		return 0, frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
			"appending %d values to column %q exceeds the index length %d", len(values), name, len(t.index))
	}
	v, err := createColumnLocked[T](t, name)
	if err != nil {
		return 0, err
	}
	v.data = append(v.data, values...)
	if pad == PadWithNaNs {
		v.padTo(len(t.index))
	}
	t.bump()
	return len(values), nil
}

// ResultVisitor is an algorithm visitor exposing its computed series.
type ResultVisitor[T any] interface {
	Result() []T
}

// LoadResultAsColumn stores the result of a visitor as a new or replaced column.
func LoadResultAsColumn[T comparable, I comparable](t *Table[I], name string, v ResultVisitor[T], pad Padding) (n int, err error) {
	defer t.track("load_result_as_column")(&err)
	g := t.Guard(Lock)
	defer g.Release()
	return loadColumnLocked(t, name, v.Result(), pad)
}

// RetypeColumn converts every element of a column from From to To. The
// converted column keeps its name but moves to the end of the column order.
func RetypeColumn[From comparable, To comparable, I comparable](t *Table[I], name string, convert func(From) To) (err error) {
	defer t.track("retype_column")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	src, err := getColumnLocked[From](t, name)
	if err != nil {
		return err
	}
	out := make([]To, len(src.data))
	for i, x := range src.data {
		out[i] = convert(x)
	}

	slot, _ := t.cat.remove(name)
	t.columns[slot] = nil
	t.addColumnLocked(name, vectorOf(out))
	t.bump()
	t.log.Debug("column retyped", zap.String("column", name),
		zap.Stringer("from", src.ElemType()), zap.Stringer("to", reflect.TypeFor[To]()))
	return nil
}

// Visitor receives columns by name. Algorithms recover the typed storage
// with As.
type Visitor interface {
	Visit(name string, col Column) error
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(name string, col Column) error

func (f VisitorFunc) Visit(name string, col Column) error { return f(name, col) }

// Visit passes one column to v while holding the table lock. v must not call
// back into the table with the default lock policy.
func (t *Table[I]) Visit(name string, v Visitor) error {
	g := t.Guard(Lock)
	defer g.Release()
	c, err := t.lookupLocked(name)
	if err != nil {
		return err
	}
	return v.Visit(name, c)
}

// VisitAll passes every column to v in creation order, stopping at the first error.
func (t *Table[I]) VisitAll(v Visitor) error {
	g := t.Guard(Lock)
	defer g.Release()
	for _, e := range t.cat.order {
		if err := v.Visit(e.name, t.columns[e.slot]); err != nil {
			return err
		}
	}
	return nil
}
