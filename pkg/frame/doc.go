// Package frame implements an in-memory columnar table: an ordered index
// plus an open set of named columns, each independently typed.
//
// # Overview
//
// The frame package provides:
//   - Typed column storage (Vector[T]) behind one type-erased Column interface
//   - A name to slot catalog that never renumbers slots
//   - Materializing selections by index range, index values, positions,
//     predicate and random sampling
//   - Four aliasing views over the same selections
//   - Structural mutation: load, append, remove, retype, align, deduplicate,
//     one-hot indicators
//
// # Architecture
//
//   - Table[I]: the owning table, one mutex per table
//   - Vector[T]: contiguous storage of one column
//   - View, ConstView: contiguous sub-slice aliases of a row range
//   - PtrView, ConstPtrView: gathered pointer aliases of arbitrary rows
//   - Guard: scoped hold on a table's lock
//
// Typed operations are package functions because methods cannot take type
// parameters:
//
//	t := frame.New[int](frame.WithName("prices"))
//	t.LoadIndex([]int{1, 2, 3, 4, 5})
//	frame.LoadColumn(t, "close", []float64{10, 11, 12, 13, 14}, frame.PadWithNaNs)
//
//	sel, err := frame.SelectBy1(t, "close", func(_ int, c float64) bool {
//		return c > 11
//	})
//
// # Ragged Columns
//
// A column may be shorter than the index. Reads past its physical end return
// the element type's NaN (see NaN and IsNaN). Operations taking a Padding
// extend the column to the index length when given PadWithNaNs; removals
// always pad first.
//
// # Views
//
// Views alias the parent's storage. Writes through View and PtrView are
// visible in the parent. Only Table has view constructors, and only the
// mutable view kinds satisfy ViewWriter, so a read-only view cannot be
// written through:
//
//	v, _ := t.ViewByLoc(1, 3)
//	col, _ := frame.WriteColumn[float64](v, "close")
//	col.Set(0, 99)
//
// Every structural mutation advances the table's Epoch. A view taken before
// it returns a dataframe error from every accessor instead of reading freed
// or moved storage.
//
// # Thread Safety
//
// All Table methods lock the table. Holders of a Guard pass DontLock to the
// operations that accept a LockPolicy. Views do not lock; reading a view
// while its parent is being mutated is not supported.
package frame
