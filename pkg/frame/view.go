package frame

import (
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/pool"
)

type indexAccess[I comparable] interface {
	len() int
	at(i int) I
	set(i int, x I)
}

type sliceIndex[I comparable] []I

func (s sliceIndex[I]) len() int       { return len(s) }
func (s sliceIndex[I]) at(i int) I     { return s[i] }
func (s sliceIndex[I]) set(i int, x I) { s[i] = x }

type ptrIndex[I comparable] []*I

func (s ptrIndex[I]) len() int       { return len(s) }
func (s ptrIndex[I]) at(i int) I     { return *s[i] }
func (s ptrIndex[I]) set(i int, x I) { *s[i] = x }

// viewBase is the state shared by the four view kinds: the parent, the
// epoch the view was taken at and one aliased column per parent column.
type viewBase[I comparable] struct {
	parent *Table[I]
	epoch  uint64
	idx    indexAccess[I]
	names  []string
	byName map[string]int
	cols   []viewColumn
}

func (b *viewBase[I]) valid() error {
	if b.parent.epoch.Load() != b.epoch {
		return frameerrors.New(frameerrors.ErrorTypeDataFrame,
			"stale view: parent table was structurally modified").
			WithDetail("table", b.parent.name)
	}
	return nil
}

// Len returns the number of rows in the view.
func (b *viewBase[I]) Len() int { return b.idx.len() }

// Parent returns the table the view aliases.
func (b *viewBase[I]) Parent() *Table[I] { return b.parent }

// Index returns a copy of the viewed index values.
func (b *viewBase[I]) Index() ([]I, error) {
	if err := b.valid(); err != nil {
		return nil, err
	}
	out := make([]I, b.idx.len())
	for i := range out {
		out[i] = b.idx.at(i)
	}
	return out, nil
}

// IndexAt returns the index value of view row i.
func (b *viewBase[I]) IndexAt(i int) (I, error) {
	var zero I
	if err := b.valid(); err != nil {
		return zero, err
	}
	if i < 0 || i >= b.idx.len() {
		return zero, frameerrors.BadRange("IndexAt", i, i, b.idx.len())
	}
	return b.idx.at(i), nil
}

// ColumnNames returns the viewed column names in the parent's order.
func (b *viewBase[I]) ColumnNames() []string {
	return append([]string(nil), b.names...)
}

// ColumnsInfo describes the viewed columns.
func (b *viewBase[I]) ColumnsInfo() ([]ColumnInfo, error) {
	if err := b.valid(); err != nil {
		return nil, err
	}
	out := make([]ColumnInfo, len(b.cols))
	for k, c := range b.cols {
		out[k] = ColumnInfo{Name: b.names[k], Slot: k, Len: c.Len(), Type: c.Type(), ElemType: c.ElemType()}
	}
	return out, nil
}

// Materialize copies the viewed rows into a new owning table.
func (b *viewBase[I]) Materialize() (*Table[I], error) {
	g := b.parent.Guard(Lock)
	defer g.Release()
	if err := b.valid(); err != nil {
		return nil, err
	}

	out := b.parent.derive(b.idx.len())
	for i := 0; i < b.idx.len(); i++ {
		out.index = append(out.index, b.idx.at(i))
	}
	for k, c := range b.cols {
		out.addColumnLocked(b.names[k], c.materialize())
	}
	return out, nil
}

func (b *viewBase[I]) readColumn(name string) (viewColumn, func() error, error) {
	if err := b.valid(); err != nil {
		return nil, nil, err
	}
	k, ok := b.byName[name]
	if !ok {
		return nil, nil, frameerrors.ColumnNotFound(name)
	}
	return b.cols[k], b.valid, nil
}

func (b *viewBase[I]) setIndexAt(i int, x I) error {
	if err := b.valid(); err != nil {
		return err
	}
	if i < 0 || i >= b.idx.len() {
		return frameerrors.BadRange("SetIndexAt", i, i, b.idx.len())
	}
	b.idx.set(i, x)
	return nil
}

// View is a mutable window over a contiguous row range of a table.
type View[I comparable] struct{ viewBase[I] }

// ConstView is a read-only window over a contiguous row range of a table.
type ConstView[I comparable] struct{ viewBase[I] }

// PtrView is a mutable view over an arbitrary set of rows of a table.
type PtrView[I comparable] struct{ viewBase[I] }

// ConstPtrView is a read-only view over an arbitrary set of rows of a table.
type ConstPtrView[I comparable] struct{ viewBase[I] }

// SetIndexAt overwrites the parent's index value under view row i.
func (v *View[I]) SetIndexAt(i int, x I) error { return v.setIndexAt(i, x) }

func (v *View[I]) writeColumn(name string) (viewColumn, func() error, error) {
	return v.readColumn(name)
}

// SetIndexAt overwrites the parent's index value under view row i.
func (v *PtrView[I]) SetIndexAt(i int, x I) error { return v.setIndexAt(i, x) }

func (v *PtrView[I]) writeColumn(name string) (viewColumn, func() error, error) {
	return v.readColumn(name)
}

func (t *Table[I]) sliceViewLocked(lo, hi int) viewBase[I] {
	b := viewBase[I]{
		parent: t,
		epoch:  t.epoch.Load(),
		idx:    sliceIndex[I](t.index[lo:hi:hi]),
		byName: make(map[string]int, t.cat.len()),
	}
	for _, e := range t.cat.order {
		b.byName[e.name] = len(b.cols)
		b.names = append(b.names, e.name)
		b.cols = append(b.cols, t.columns[e.slot].aliasRange(lo, hi))
	}
	return b
}

func (t *Table[I]) ptrViewLocked(positions []int) viewBase[I] {
	idx := make(ptrIndex[I], len(positions))
	for k, p := range positions {
		idx[k] = &t.index[p]
	}
	b := viewBase[I]{
		parent: t,
		epoch:  t.epoch.Load(),
		idx:    idx,
		byName: make(map[string]int, t.cat.len()),
	}
	for _, e := range t.cat.order {
		b.byName[e.name] = len(b.cols)
		b.names = append(b.names, e.name)
		b.cols = append(b.cols, t.columns[e.slot].aliasPositions(positions))
	}
	return b
}

func (t *Table[I]) viewByIdx(begin, end I) (viewBase[I], error) {
	g := t.Guard(Lock)
	defer g.Release()
	lo, hi, err := t.idxRange("ViewByIdx", begin, end)
	if err != nil {
		return viewBase[I]{}, err
	}
	return t.sliceViewLocked(lo, hi), nil
}

func (t *Table[I]) viewByLoc(begin, end int) (viewBase[I], error) {
	g := t.Guard(Lock)
	defer g.Release()
	lo, hi, err := locRange("ViewByLoc", begin, end, len(t.index))
	if err != nil {
		return viewBase[I]{}, err
	}
	return t.sliceViewLocked(lo, hi), nil
}

func (t *Table[I]) viewByLocs(positions []int) (viewBase[I], error) {
	g := t.Guard(Lock)
	defer g.Release()
	pos, err := locPositions("ViewByLocs", positions, len(t.index))
	if err != nil {
		return viewBase[I]{}, err
	}
	return t.ptrViewLocked(pos), nil
}

func (t *Table[I]) viewByIdxValues(values []I) viewBase[I] {
	g := t.Guard(Lock)
	defer g.Release()
	return t.ptrViewLocked(t.idxValuePositions(values))
}

func (t *Table[I]) viewBySel(pred Predicate[I], cols []ColumnSpec) (viewBase[I], error) {
	g := t.Guard(Lock)
	defer g.Release()
	resolved, err := t.resolveSpecsLocked(cols)
	if err != nil {
		return viewBase[I]{}, err
	}
	buf := t.selectLocked(pred, resolved)
	defer pool.PutPositions(buf)
	return t.ptrViewLocked(*buf), nil
}

func (t *Table[I]) viewByRand(policy SamplePolicy, n float64, seed uint64) (viewBase[I], error) {
	g := t.Guard(Lock)
	defer g.Release()
	pos, err := t.samplePositionsLocked(policy, n, seed)
	if err != nil {
		return viewBase[I]{}, err
	}
	return t.ptrViewLocked(pos), nil
}

// ViewByIdx returns a mutable view of the rows whose index lies in [begin, end].
func (t *Table[I]) ViewByIdx(begin, end I) (*View[I], error) {
	b, err := t.viewByIdx(begin, end)
	if err != nil {
		return nil, err
	}
	return &View[I]{b}, nil
}

// ConstViewByIdx is the read-only form of ViewByIdx.
func (t *Table[I]) ConstViewByIdx(begin, end I) (*ConstView[I], error) {
	b, err := t.viewByIdx(begin, end)
	if err != nil {
		return nil, err
	}
	return &ConstView[I]{b}, nil
}

// ViewByLoc returns a mutable view of positions [begin, end], both inclusive.
func (t *Table[I]) ViewByLoc(begin, end int) (*View[I], error) {
	b, err := t.viewByLoc(begin, end)
	if err != nil {
		return nil, err
	}
	return &View[I]{b}, nil
}

// ConstViewByLoc is the read-only form of ViewByLoc.
func (t *Table[I]) ConstViewByLoc(begin, end int) (*ConstView[I], error) {
	b, err := t.viewByLoc(begin, end)
	if err != nil {
		return nil, err
	}
	return &ConstView[I]{b}, nil
}

// PtrViewByLocs returns a mutable view of the listed positions.
func (t *Table[I]) PtrViewByLocs(positions []int) (*PtrView[I], error) {
	b, err := t.viewByLocs(positions)
	if err != nil {
		return nil, err
	}
	return &PtrView[I]{b}, nil
}

// ConstPtrViewByLocs is the read-only form of PtrViewByLocs.
func (t *Table[I]) ConstPtrViewByLocs(positions []int) (*ConstPtrView[I], error) {
	b, err := t.viewByLocs(positions)
	if err != nil {
		return nil, err
	}
	return &ConstPtrView[I]{b}, nil
}

// PtrViewByIdxValues returns a mutable view of the rows whose index value is in values.
func (t *Table[I]) PtrViewByIdxValues(values []I) *PtrView[I] {
	return &PtrView[I]{t.viewByIdxValues(values)}
}

// ConstPtrViewByIdxValues is the read-only form of PtrViewByIdxValues.
func (t *Table[I]) ConstPtrViewByIdxValues(values []I) *ConstPtrView[I] {
	return &ConstPtrView[I]{t.viewByIdxValues(values)}
}

// ViewBySel returns a mutable view of the rows for which pred holds.
func (t *Table[I]) ViewBySel(pred Predicate[I], cols ...ColumnSpec) (*PtrView[I], error) {
	b, err := t.viewBySel(pred, cols)
	if err != nil {
		return nil, err
	}
	return &PtrView[I]{b}, nil
}

// ConstViewBySel is the read-only form of ViewBySel.
func (t *Table[I]) ConstViewBySel(pred Predicate[I], cols ...ColumnSpec) (*ConstPtrView[I], error) {
	b, err := t.viewBySel(pred, cols)
	if err != nil {
		return nil, err
	}
	return &ConstPtrView[I]{b}, nil
}

// ViewByRand returns a mutable view of randomly drawn rows.
func (t *Table[I]) ViewByRand(policy SamplePolicy, n float64, seed uint64) (*PtrView[I], error) {
	b, err := t.viewByRand(policy, n, seed)
	if err != nil {
		return nil, err
	}
	return &PtrView[I]{b}, nil
}

// ConstViewByRand is the read-only form of ViewByRand.
func (t *Table[I]) ConstViewByRand(policy SamplePolicy, n float64, seed uint64) (*ConstPtrView[I], error) {
	b, err := t.viewByRand(policy, n, seed)
	if err != nil {
		return nil, err
	}
	return &ConstPtrView[I]{b}, nil
}
