package frame

import (
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// snapshotColumn resolves a column under the table lock and returns its
// current backing slice. Tables are locked one at a time.
func snapshotColumn[T comparable, I comparable](t *Table[I], name string) ([]T, error) {
	g := t.Guard(Lock)
	defer g.Release()
	v, err := getColumnLocked[T](t, name)
	if err != nil {
		return nil, err
	}
	return v.data, nil
}

// CombineN applies fn element-wise to the same-named column of every table.
// The result is as long as the shortest column and is not written back.
func CombineN[T comparable, R any, I comparable](name string, fn func(values []T) R, tables ...*Table[I]) ([]R, error) {
	if len(tables) < 2 {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeDataFrame, "combine needs at least two tables, got %d", len(tables))
	}

	cols := make([][]T, len(tables))
	n := -1
	for k, t := range tables {
		data, err := snapshotColumn[T](t, name)
		if err != nil {
			return nil, err
		}
		cols[k] = data
		if n < 0 || len(data) < n {
			n = len(data)
		}
	}

	out := make([]R, n)
	row := make([]T, len(cols))
	for i := range out {
		for k, c := range cols {
			row[k] = c[i]
		}
		out[i] = fn(row)
	}
	return out, nil
}

// Combine2 applies fn element-wise to column name of two tables.
func Combine2[T comparable, R any, I comparable](name string, t1, t2 *Table[I], fn func(a, b T) R) ([]R, error) {
	return CombineN(name, func(v []T) R { return fn(v[0], v[1]) }, t1, t2)
}

// Combine3 applies fn element-wise to column name of three tables.
func Combine3[T comparable, R any, I comparable](name string, t1, t2, t3 *Table[I], fn func(a, b, c T) R) ([]R, error) {
	return CombineN(name, func(v []T) R { return fn(v[0], v[1], v[2]) }, t1, t2, t3)
}

// Combine4 applies fn element-wise to column name of four tables.
func Combine4[T comparable, R any, I comparable](name string, t1, t2, t3, t4 *Table[I], fn func(a, b, c, d T) R) ([]R, error) {
	return CombineN(name, func(v []T) R { return fn(v[0], v[1], v[2], v[3]) }, t1, t2, t3, t4)
}
