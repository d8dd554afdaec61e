package frame

import (
	"math"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type price struct {
	cents int64
	valid bool
}

func (price) NaN() price    { return price{} }
func (p price) IsNaN() bool { return !p.valid }

func TestCatalogStaysInSync(t *testing.T) {
	c := newCatalog()
	c.add("a", 0)
	c.add("b", 1)
	c.add("c", 2)

	check := func() {
		t.Helper()
		require.Len(t, c.bySlot, len(c.order))
		for _, e := range c.order {
			slot, ok := c.lookup(e.name)
			require.True(t, ok, e.name)
			assert.Equal(t, e.slot, slot)
		}
	}
	check()

	slot, ok := c.remove("b")
	require.True(t, ok)
	assert.Equal(t, 1, slot)
	check()

	require.True(t, c.rename("c", "z"))
	assert.False(t, c.rename("missing", "y"))
	check()
	assert.Equal(t, []string{"a", "z"}, c.names())

	_, ok = c.remove("b")
	assert.False(t, ok)
}

func TestLocRange(t *testing.T) {
	tests := []struct {
		begin, end, n int
		lo, hi        int
		wantErr       bool
	}{
		{begin: 1, end: 3, n: 5, lo: 1, hi: 4},
		{begin: -2, end: 5, n: 5, lo: 3, hi: 5},
		{begin: 0, end: -1, n: 5, lo: 0, hi: 5},
		{begin: 4, end: 4, n: 5, lo: 4, hi: 5},
		{begin: 0, end: 0, n: 0, wantErr: true},
		{begin: 2, end: 1, n: 5, wantErr: true},
		{begin: 0, end: 6, n: 5, wantErr: true},
		{begin: -6, end: 2, n: 5, wantErr: true},
	}

	for _, tt := range tests {
		lo, hi, err := locRange("test", tt.begin, tt.end, tt.n)
		if tt.wantErr {
			assert.Error(t, err, "[%d, %d] of %d", tt.begin, tt.end, tt.n)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.lo, lo)
		assert.Equal(t, tt.hi, hi)
	}
}

func TestTraits(t *testing.T) {
	assert.True(t, math.IsNaN(NaN[float64]()))
	assert.True(t, IsNaN(float32(math.NaN())))
	assert.False(t, IsNaN(1.5))

	assert.Equal(t, 0, NaN[int]())
	assert.False(t, IsNaN(0), "ints have no missing value")
	assert.False(t, IsNaN(false))

	assert.True(t, IsNaN(""))
	assert.True(t, IsNaN(time.Time{}))
	assert.False(t, IsNaN(time.Unix(0, 1)))

	assert.True(t, IsNaN(NaN[price]()))
	assert.False(t, IsNaN(price{cents: 100, valid: true}))

	assert.Equal(t, ColumnTypeTimestamp, traitsOf[time.Time]().kind)
	assert.Equal(t, ColumnTypeUint, traitsOf[uint16]().kind)
	assert.Equal(t, ColumnTypeOther, traitsOf[price]().kind)
}

func TestHashAgreesWithEquality(t *testing.T) {
	v := vectorOf([]float64{0, math.Copysign(0, -1), math.NaN(), math.NaN(), 1})
	d := xxhash.New()
	idx := []int{1, 2, 3, 4, 5}
	cols := []Column{v}

	assert.True(t, equalRows(idx, false, cols, 0, 1))
	assert.Equal(t, hashRow(d, idx, false, cols, 0), hashRow(d, idx, false, cols, 1))

	assert.True(t, equalRows(idx, false, cols, 2, 3))
	assert.Equal(t, hashRow(d, idx, false, cols, 2), hashRow(d, idx, false, cols, 3))

	assert.False(t, equalRows(idx, true, cols, 2, 3))
	assert.NotEqual(t, hashRow(d, idx, true, cols, 2), hashRow(d, idx, true, cols, 3))

	// past the physical end a row reads as NaN
	assert.True(t, v.equalAt(2, 9))

	s := vectorOf([]string{"ab", "a"})
	u := vectorOf([]string{"c", "bc"})
	assert.NotEqual(t,
		hashRow(d, idx, false, []Column{s, u}, 0),
		hashRow(d, idx, false, []Column{s, u}, 1),
		"field boundaries must be part of the key")
}

func TestVectorStorageOps(t *testing.T) {
	v := vectorOf([]int{1, 2, 3, 4, 5})

	v.eraseRange(1, 3)
	assert.Equal(t, []int{1, 4, 5}, v.Values())

	v.compact([]bool{true, false, true})
	assert.Equal(t, []int{1, 5}, v.Values())

	assert.True(t, v.padTo(4))
	assert.False(t, v.padTo(3))
	assert.Equal(t, []int{1, 5, 0, 0}, v.Values())

	g, err := As[int](v.gather([]int{3, 0, 7}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, g.Values())

	r, err := As[int](v.copyRange(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0, 0}, r.Values())

	assert.Error(t, v.Set(4, 1))
}

func TestEpochAdvancesOnStructuralChange(t *testing.T) {
	tbl := New[int](WithLogger(zaptest.NewLogger(t)))

	steps := []struct {
		name       string
		op         func() error
		structural bool
	}{
		{"load index", func() error { _, err := tbl.LoadIndex([]int{1, 2, 3}); return err }, true},
		{"create column", func() error { _, err := CreateColumn[int](tbl, "a"); return err }, false},
		{"load column", func() error { _, err := LoadColumn(tbl, "a", []int{1, 2, 3}, PadWithNaNs); return err }, true},
		{"set element", func() error {
			v, err := GetColumn[int](tbl, "a")
			if err != nil {
				return err
			}
			return v.Set(0, 9)
		}, false},
		{"rename", func() error { return tbl.RenameColumn("a", "b") }, true},
		{"append row", func() error { i := 4; return tbl.AppendRow(&i, C("b", 4)) }, true},
		{"remove rows", func() error { return tbl.RemoveDataByLoc(0, 0) }, true},
		{"remove column", func() error { return tbl.RemoveColumn("b") }, true},
	}

	for _, s := range steps {
		before := tbl.Epoch()
		require.NoError(t, s.op(), s.name)
		if s.structural {
			assert.Greater(t, tbl.Epoch(), before, s.name)
		} else {
			assert.Equal(t, before, tbl.Epoch(), s.name)
		}
	}
}
