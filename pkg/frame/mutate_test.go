package frame_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/testutil"
)

func TestRemoveDataByIdx(t *testing.T) {
	tbl := testutil.FiveRowTable(t)

	require.NoError(t, tbl.RemoveDataByIdx(2, 3))
	assert.Equal(t, []int{1, 4, 5}, tbl.Index())
	assert.Equal(t, []int{10, 40, 50}, values[int](t, tbl, "v"))

	require.NoError(t, tbl.RemoveDataByIdx(7, 9))
	assert.Equal(t, 3, tbl.Len())

	testutil.RequireErrorType(t, tbl.RemoveDataByIdx(5, 1), frameerrors.ErrorTypeBadRange)
}

func TestRemovePadsRaggedColumnsFirst(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	_, err := frame.LoadColumn(tbl, "s", []float64{1.5, 2.5}, frame.DontPadWithNaNs)
	require.NoError(t, err)

	require.NoError(t, tbl.RemoveDataByLoc(0, 0))

	s := values[float64](t, tbl, "s")
	require.Len(t, s, 4)
	assert.Equal(t, 2.5, s[0])
	for _, x := range s[1:] {
		assert.True(t, math.IsNaN(x))
	}
}

func TestRemoveDataBySel(t *testing.T) {
	tbl := testutil.FiveRowTable(t)

	n, err := tbl.RemoveDataBySel(func(_ int, r frame.Row) bool {
		return frame.Field[int](r, 0) > 25
	}, frame.Col[int]("v"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2}, tbl.Index())
	assert.Equal(t, []int{10, 20}, values[int](t, tbl, "v"))

	n, err = tbl.RemoveDataBySel(func(int, frame.Row) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func dedupTable(t *testing.T) *frame.Table[int] {
	t.Helper()
	tbl := frame.New[int](frame.WithLogger(testutil.TestLogger(t)))
	_, err := tbl.LoadIndex([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	_, err = frame.LoadColumn(tbl, "k", []string{"a", "b", "a", "c", "b", "a"}, frame.PadWithNaNs)
	require.NoError(t, err)
	_, err = frame.LoadColumn(tbl, "x", []int{1, 2, 1, 3, 5, 1}, frame.PadWithNaNs)
	require.NoError(t, err)
	_, err = frame.LoadColumn(tbl, "f", []float64{math.NaN(), 0, math.NaN(), math.Copysign(0, -1), 1, 2}, frame.PadWithNaNs)
	require.NoError(t, err)
	return tbl
}

func TestRemoveDuplicates(t *testing.T) {
	tbl := dedupTable(t)

	tests := []struct {
		name         string
		cols         []string
		includeIndex bool
		keep         frame.KeepPolicy
		want         []int
	}{
		{name: "keep first", cols: []string{"k"}, keep: frame.KeepFirst, want: []int{1, 2, 4}},
		{name: "keep last", cols: []string{"k"}, keep: frame.KeepLast, want: []int{4, 5, 6}},
		{name: "keep none", cols: []string{"k"}, keep: frame.KeepNone, want: []int{4}},
		{name: "composite key", cols: []string{"k", "x"}, keep: frame.KeepFirst, want: []int{1, 2, 4, 5}},
		{name: "index makes every row distinct", cols: []string{"k"}, includeIndex: true, keep: frame.KeepNone, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "NaNs and signed zeros compare equal", cols: []string{"f"}, keep: frame.KeepFirst, want: []int{1, 2, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tbl.RemoveDuplicates(tt.cols, tt.includeIndex, tt.keep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Index())

			k, err := frame.GetColumn[string](out, "k")
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), k.Len())
		})
	}

	_, err := tbl.RemoveDuplicates([]string{"missing"}, false, frame.KeepFirst)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeColumnNotFound)
	assert.Equal(t, 6, tbl.Len(), "source table is untouched")
}

func TestRemoveDuplicatesNoDuplicateSurvives(t *testing.T) {
	tbl := dedupTable(t)

	out, err := tbl.RemoveDuplicates([]string{"k", "x"}, false, frame.KeepLast)
	require.NoError(t, err)

	k, err := frame.GetColumn[string](out, "k")
	require.NoError(t, err)
	x, err := frame.GetColumn[int](out, "x")
	require.NoError(t, err)

	type key struct {
		k string
		x int
	}
	seen := map[key]bool{}
	for i := 0; i < out.Len(); i++ {
		kk := key{k.At(i), x.At(i)}
		assert.False(t, seen[kk], "duplicate %v", kk)
		seen[kk] = true
	}
	assert.IsIncreasing(t, out.Index())
}

func TestLoadAlignColumn(t *testing.T) {
	index, err := frame.GenerateSequence(0, 10, 1)
	require.NoError(t, err)
	diff := func(ref, cand int) int { return cand - ref }

	tests := []struct {
		name      string
		interval  int
		fromStart bool
		want      []int
		placed    int
	}{
		{
			name:   "start from beginning", interval: 3, fromStart: true,
			want:   []int{100, -1, -1, 200, -1, -1, 300, -1, -1, -1},
			placed: 3,
		},
		{
			name:   "first slot must also clear the interval", interval: 3,
			want:   []int{-1, -1, -1, 100, -1, -1, 200, -1, -1, 300},
			placed: 3,
		},
		{
			name:   "zero interval fills consecutively", interval: 0,
			want:   []int{100, 200, 300, -1, -1, -1, -1, -1, -1, -1},
			placed: 3,
		},
		{
			name:   "data left over is dropped", interval: 5,
			want:   []int{-1, -1, -1, -1, -1, 100, -1, -1, -1, -1},
			placed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := frame.New[int](frame.WithLogger(testutil.TestLogger(t)))
			_, err := tbl.LoadIndex(index)
			require.NoError(t, err)

			n, err := frame.LoadAlignColumn(tbl, "a", []int{100, 200, 300}, tt.interval, tt.fromStart, -1, diff)
			require.NoError(t, err)
			assert.Equal(t, tt.placed, n)
			assert.Equal(t, tt.want, values[int](t, tbl, "a"))
		})
	}
}

func TestLoadAlignColumnValidation(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	diff := func(ref, cand int) int { return cand - ref }

	_, err := frame.LoadAlignColumn(tbl, "a", []int{}, 1, true, 0, diff)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeInconsistentData)

	_, err = frame.LoadAlignColumn(tbl, "a", []int{1, 2, 3, 4, 5, 6}, 1, true, 0, diff)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeInconsistentData)

	_, err = frame.LoadAlignColumn(tbl, "a", []int{1}, -1, true, 0, diff)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeBadRange)

	_, err = frame.LoadAlignColumn(tbl, frame.IndexColumnName, []int{1}, 1, true, 0, diff)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeDataFrame)
	assert.False(t, tbl.HasColumn("a"))
}

func TestLoadAlignColumnOnTimeIndex(t *testing.T) {
	tbl := testutil.MinuteTable(t, 12)
	minutes := func(ref, cand time.Time) int { return int(cand.Sub(ref) / time.Minute) }

	n, err := frame.LoadAlignColumn(tbl, "quarter", []float64{1, 2, 3}, 5, true, math.NaN(), minutes)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	q, err := frame.GetColumn[float64](tbl, "quarter")
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.At(0))
	assert.Equal(t, 2.0, q.At(5))
	assert.Equal(t, 3.0, q.At(10))
	assert.True(t, q.IsNaN(11))
}

func TestIndicatorsRoundTrip(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	colors := []string{"red", "blue", "", "red", "green"}
	_, err := frame.LoadColumn(tbl, "color", colors, frame.PadWithNaNs)
	require.NoError(t, err)

	n, err := frame.LoadIndicators[string](tbl, "color", "is_")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"v", "color", "is_red", "is_blue", "is_green"}, tbl.ColumnNames())

	red, err := frame.GetColumn[bool](tbl, "is_red")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true, false}, red.Values())

	_, err = frame.FromIndicatorsByPrefix(tbl, []string{"is_red", "is_blue", "is_green"}, "color2", "is_")
	require.NoError(t, err)
	assert.Equal(t, colors, values[string](t, tbl, "color2"))

	_, err = frame.FromIndicators(tbl, []string{"is_red"}, "bad", []string{"red", "blue"})
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeInconsistentData)

	_, err = frame.FromIndicators(tbl, []string{"v"}, "bad", []string{"x"})
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeTypeMismatch)
}

func TestIndicatorsOnNumericColumn(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	_, err := frame.LoadColumn(tbl, "bucket", []float64{1, 2, math.NaN(), 2, 1}, frame.PadWithNaNs)
	require.NoError(t, err)

	n, err := frame.LoadIndicators[float64](tbl, "bucket", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = frame.FromIndicators(tbl, []string{"b1", "b2"}, "bucket2", []float64{1, 2})
	require.NoError(t, err)

	back, err := frame.GetColumn[float64](tbl, "bucket2")
	require.NoError(t, err)
	assert.Equal(t, 1.0, back.At(0))
	assert.Equal(t, 2.0, back.At(1))
	assert.True(t, back.IsNaN(2))

	// an existing non-bool column under an indicator name is refused up front
	_, err = frame.LoadColumn(tbl, "x_1", []int{1}, frame.PadWithNaNs)
	require.NoError(t, err)
	_, err = frame.LoadIndicators[float64](tbl, "bucket", "x_")
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeTypeMismatch)
	assert.False(t, tbl.HasColumn("x_2"))
}

func TestCombineTruncatesToShortest(t *testing.T) {
	a := testutil.FiveRowTable(t)
	b := testutil.FiveRowTable(t)
	_, err := frame.LoadColumn(b, "v", []int{1, 2, 3}, frame.DontPadWithNaNs)
	require.NoError(t, err)

	sum, err := frame.Combine2("v", a, b, func(x, y int) int { return x + y })
	require.NoError(t, err)
	assert.Equal(t, []int{11, 22, 33}, sum)

	c := testutil.FiveRowTable(t)
	d := testutil.FiveRowTable(t)
	mixed, err := frame.Combine4("v", a, b, c, d, func(w, x, y, z int) float64 {
		return float64(w+x+y+z) / 4
	})
	require.NoError(t, err)
	assert.Len(t, mixed, 3)
	assert.InDelta(t, 7.75, mixed[0], 1e-12)

	three, err := frame.Combine3("v", a, c, d, func(x, y, z int) bool { return x == y && y == z })
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true, true}, three)

	assert.Equal(t, []int{10, 20, 30, 40, 50}, values[int](t, a, "v"), "combine must not write back")

	_, err = frame.CombineN("v", func([]int) int { return 0 }, a)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeDataFrame)

	_, err = frame.Combine2("v", a, b, func(x, y string) string { return x + y })
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeTypeMismatch)
}

func TestGenerate(t *testing.T) {
	seq, err := frame.GenerateSequence(0, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 6, 8}, seq)

	down, err := frame.GenerateSequence(1.0, 3, -0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0}, down)

	_, err = frame.GenerateSequence(0, -1, 1)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotFeasible)
	_, err = frame.GenerateSequence(0, 0, 1)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotFeasible)
	_, err = frame.GenerateSequence(0, 3, 0)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotFeasible)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts, err := frame.GenerateTimeIndex(start, start.Add(2*time.Hour), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour)}, ts)

	_, err = frame.GenerateTimeIndex(start, start.Add(time.Hour), 0)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotFeasible)
	_, err = frame.GenerateTimeIndex(start, start.Add(-time.Hour), time.Minute)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotFeasible)
}

func TestTimeIndexSelection(t *testing.T) {
	tbl := testutil.MinuteTable(t, 10)
	idx := tbl.Index()

	out, err := tbl.DataByIdx(idx[2], idx[4])
	require.NoError(t, err)
	assert.Equal(t, idx[2:5], out.Index())
}
