package frame

import (
	"cmp"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/config"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/logger"
	"github.com/ajitpratap0/nebulaframe/pkg/metrics"
)

// Table is an owning columnar table: one sorted-by-convention index series
// of type I plus any number of named columns of heterogeneous element type.
//
// A column may be shorter than the index; missing tail positions read as the
// column's NaN. A column is never longer than the index.
//
// All public operations are serialized by a per-table mutex. Views created
// from a table alias its storage and become stale after any structural
// mutation (see Epoch).
type Table[I comparable] struct {
	mu      sync.Mutex
	name    string
	index   []I
	compare func(a, b I) int
	columns []Column
	cat     catalog
	epoch   atomic.Uint64

	padding     Padding
	lockPolicy  LockPolicy
	capacity    int
	defaultSeed uint64

	log *zap.Logger
	rec *metrics.Recorder
}

type options struct {
	name       string
	capacity   int
	padding    Padding
	lockPolicy LockPolicy
	seed       uint64
	log        *zap.Logger
	metrics    bool
}

// Option configures a Table.
type Option func(*options)

// WithName sets the table name used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithCapacity preallocates index and column storage.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithPadding sets the padding policy used by operations that do not take one.
func WithPadding(p Padding) Option {
	return func(o *options) { o.padding = p }
}

// WithLockPolicy sets the lock policy used when a load call omits one.
func WithLockPolicy(p LockPolicy) Option {
	return func(o *options) { o.lockPolicy = p }
}

// WithSampleSeed sets the seed used by seeded sampling when the caller
// passes zero.
func WithSampleSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics enables Prometheus operation metrics for the table.
func WithMetrics(enabled bool) Option {
	return func(o *options) { o.metrics = enabled }
}

// New creates an empty table whose index type has a natural order.
func New[I cmp.Ordered](opts ...Option) *Table[I] {
	return NewWithCompare[I](cmp.Compare[I], opts...)
}

// NewWithCompare creates an empty table ordering its index with compare,
// which must return a negative number, zero or a positive number as a sorts
// before, equal to or after b.
func NewWithCompare[I comparable](compare func(a, b I) int, opts ...Option) *Table[I] {
	o := options{name: "frame"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get()
	}

	t := &Table[I]{
		name:        o.name,
		index:       make([]I, 0, o.capacity),
		compare:     compare,
		cat:         newCatalog(),
		padding:     o.padding,
		lockPolicy:  o.lockPolicy,
		capacity:    o.capacity,
		defaultSeed: o.seed,
		log:         o.log.With(zap.String("table", o.name)),
	}
	if o.metrics {
		t.rec = metrics.NewRecorder(o.name)
	}
	return t
}

// NewFromConfig creates an empty table from a validated FrameConfig.
func NewFromConfig[I cmp.Ordered](cfg *config.FrameConfig, opts ...Option) (*Table[I], error) {
	if err := cfg.Validate(); err != nil {
		return nil, frameerrors.Wrap(err, frameerrors.ErrorTypeDataFrame, "invalid frame config")
	}
	pad, err := ParsePadding(cfg.DefaultPadding)
	if err != nil {
		return nil, err
	}
	lock, err := ParseLockPolicy(cfg.LockPolicy)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithName(cfg.Name),
		WithCapacity(cfg.InitialCapacity),
		WithPadding(pad),
		WithLockPolicy(lock),
		WithSampleSeed(cfg.Sampling.Seed),
		WithMetrics(cfg.Observability.EnableMetrics),
	}
	return New[I](append(base, opts...)...), nil
}

// derive creates an empty table sharing this table's settings. Derived
// tables do not record metrics so they never overwrite the parent's gauges.
func (t *Table[I]) derive(capacity int) *Table[I] {
	out := &Table[I]{
		name:        t.name,
		index:       make([]I, 0, capacity),
		compare:     t.compare,
		cat:         newCatalog(),
		padding:     t.padding,
		lockPolicy:  t.lockPolicy,
		capacity:    t.capacity,
		defaultSeed: t.defaultSeed,
		log:         t.log,
	}
	return out
}

// Name returns the table name.
func (t *Table[I]) Name() string { return t.name }

// DefaultPadding returns the padding policy configured for the table.
func (t *Table[I]) DefaultPadding() Padding { return t.padding }

// Compare orders two index values with the table's comparator.
func (t *Table[I]) Compare(a, b I) int { return t.compare(a, b) }

// Guard acquires the table lock according to policy. Callers holding a Lock
// guard must pass DontLock to the operations they call until Release.
func (t *Table[I]) Guard(policy LockPolicy) *Guard {
	return acquire(&t.mu, policy)
}

func (t *Table[I]) policy(p []LockPolicy) LockPolicy {
	if len(p) > 0 {
		return p[0]
	}
	return t.lockPolicy
}

// Epoch returns the structural version of the table. It increases on every
// operation that can reallocate or remove storage.
func (t *Table[I]) Epoch() uint64 { return t.epoch.Load() }

func (t *Table[I]) bump() {
	t.epoch.Add(1)
	if t.rec != nil {
		t.rec.SetShape(len(t.index), t.cat.len())
	}
}

var noTrack = func(*error) {}

// track times one public operation. Use with a named error result:
//
//	defer t.track("remove_column")(&err)
func (t *Table[I]) track(op string) func(*error) {
	if t.rec == nil {
		return noTrack
	}
	timer := metrics.NewTimer(op)
	return func(err *error) {
		t.rec.Observe(timer, *err)
	}
}

// Len returns the index length.
func (t *Table[I]) Len() int {
	g := t.Guard(Lock)
	defer g.Release()
	return len(t.index)
}

// Shape returns the index length and the number of columns.
func (t *Table[I]) Shape() (rows, columns int) {
	g := t.Guard(Lock)
	defer g.Release()
	return len(t.index), t.cat.len()
}

// Index returns a copy of the index.
func (t *Table[I]) Index() []I {
	g := t.Guard(Lock)
	defer g.Release()
	return append([]I(nil), t.index...)
}

// IndexAt returns the index value at position i.
func (t *Table[I]) IndexAt(i int) (I, error) {
	g := t.Guard(Lock)
	defer g.Release()
	if i < 0 || i >= len(t.index) {
		var zero I
		return zero, frameerrors.BadRange("IndexAt", i, i, len(t.index))
	}
	return t.index[i], nil
}

// LoadIndex replaces the index with a copy of values and returns its length.
// Fails if an existing column would end up longer than the index.
func (t *Table[I]) LoadIndex(values []I, lock ...LockPolicy) (n int, err error) {
	defer t.track("load_index")(&err)
	g := t.Guard(t.policy(lock))
	defer g.Release()

	for _, e := range t.cat.order {
		if l := t.columns[e.slot].Len(); l > len(values) {
			return 0, frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
				"index of length %d is shorter than column %q of length %d", len(values), e.name, l)
		}
	}
	t.index = append(make([]I, 0, max(len(values), t.capacity)), values...)
	t.bump()
	t.log.Debug("index loaded", zap.Int("rows", len(t.index)))
	return len(t.index), nil
}

// AppendIndex appends values to the index and returns how many were appended.
func (t *Table[I]) AppendIndex(values ...I) (n int, err error) {
	defer t.track("append_index")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	t.index = append(t.index, values...)
	t.bump()
	return len(values), nil
}

// HasColumn reports whether name is cataloged.
func (t *Table[I]) HasColumn(name string) bool {
	g := t.Guard(Lock)
	defer g.Release()
	_, ok := t.cat.lookup(name)
	return ok
}

// HasColumnAt reports whether slot holds a live column.
func (t *Table[I]) HasColumnAt(slot int) bool {
	g := t.Guard(Lock)
	defer g.Release()
	_, err := t.lookupSlotLocked(slot)
	return err == nil
}

// ColumnNames returns the column names in creation order.
func (t *Table[I]) ColumnNames() []string {
	g := t.Guard(Lock)
	defer g.Release()
	return t.cat.names()
}

// ColumnsInfo describes every column in creation order.
func (t *Table[I]) ColumnsInfo() []ColumnInfo {
	g := t.Guard(Lock)
	defer g.Release()

	out := make([]ColumnInfo, 0, t.cat.len())
	for _, e := range t.cat.order {
		c := t.columns[e.slot]
		out = append(out, ColumnInfo{
			Name:     e.name,
			Slot:     e.slot,
			Len:      c.Len(),
			Type:     c.Type(),
			ElemType: c.ElemType(),
		})
	}
	return out
}

// IndexInfo describes the index series. Its Slot is -1.
func (t *Table[I]) IndexInfo() ColumnInfo {
	g := t.Guard(Lock)
	defer g.Release()

	tr := traitsOf[I]()
	return ColumnInfo{
		Name:     IndexColumnName,
		Slot:     -1,
		Len:      len(t.index),
		Type:     tr.kind,
		ElemType: tr.elem,
	}
}

func (t *Table[I]) lookupLocked(name string) (Column, error) {
	slot, ok := t.cat.lookup(name)
	if !ok {
		return nil, frameerrors.ColumnNotFound(name)
	}
	return t.columns[slot], nil
}

func (t *Table[I]) lookupSlotLocked(slot int) (Column, error) {
	if slot < 0 || slot >= len(t.columns) || t.columns[slot] == nil {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeColumnNotFound, "no column at slot %d", slot)
	}
	return t.columns[slot], nil
}

func (t *Table[I]) addColumnLocked(name string, c Column) {
	t.columns = append(t.columns, c)
	t.cat.add(name, len(t.columns)-1)
}

// RemoveColumn drops a column. Slots of other columns are unchanged.
func (t *Table[I]) RemoveColumn(name string) (err error) {
	defer t.track("remove_column")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	slot, ok := t.cat.remove(name)
	if !ok {
		return frameerrors.ColumnNotFound(name)
	}
	t.columns[slot] = nil
	t.bump()
	t.log.Debug("column removed", zap.String("column", name))
	return nil
}

// RenameColumn renames a column in place, keeping its slot and position.
func (t *Table[I]) RenameColumn(from, to string) (err error) {
	defer t.track("rename_column")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	if to == IndexColumnName {
		return frameerrors.Newf(frameerrors.ErrorTypeDataFrame, "cannot rename %q to the reserved name %s", from, IndexColumnName)
	}
	if _, ok := t.cat.lookup(from); !ok {
		return frameerrors.ColumnNotFound(from)
	}
	if from == to {
		return nil
	}
	if _, ok := t.cat.lookup(to); ok {
		return frameerrors.Newf(frameerrors.ErrorTypeDataFrame, "cannot rename %q: column %q already exists", from, to)
	}
	t.cat.rename(from, to)
	t.bump()
	return nil
}

// MakeConsistent pads every column to the index length with NaNs.
func (t *Table[I]) MakeConsistent() {
	g := t.Guard(Lock)
	defer g.Release()
	t.makeConsistentLocked()
}

func (t *Table[I]) makeConsistentLocked() {
	changed := false
	for _, e := range t.cat.order {
		if t.columns[e.slot].padTo(len(t.index)) {
			changed = true
		}
	}
	if changed {
		t.bump()
	}
}

// Clone returns a deep copy of the table with a fresh lock and epoch.
func (t *Table[I]) Clone() *Table[I] {
	g := t.Guard(Lock)
	defer g.Release()

	out := t.derive(len(t.index))
	out.index = append(out.index, t.index...)
	for _, e := range t.cat.order {
		out.addColumnLocked(e.name, t.columns[e.slot].clone())
	}
	return out
}

// EqualTables reports whether a and b have equal indexes and the same
// columns, in the same order, with equal contents. NaNs compare equal.
func EqualTables[I comparable](a, b *Table[I]) bool {
	if a == b {
		return true
	}
	// compare private snapshots so two tables are never locked together
	a, b = a.Clone(), b.Clone()

	if len(a.index) != len(b.index) || a.cat.len() != b.cat.len() {
		return false
	}
	for i := range a.index {
		if a.index[i] != b.index[i] {
			return false
		}
	}
	for k, ea := range a.cat.order {
		eb := b.cat.order[k]
		if ea.name != eb.name {
			return false
		}
		ca, cb := a.columns[ea.slot], b.columns[eb.slot]
		if ca.ElemType() != cb.ElemType() || ca.Len() != cb.Len() {
			return false
		}
		for i := 0; i < ca.Len(); i++ {
			if ca.IsNaN(i) != cb.IsNaN(i) {
				return false
			}
			if !ca.IsNaN(i) && ca.Value(i) != cb.Value(i) {
				return false
			}
		}
	}
	return true
}
