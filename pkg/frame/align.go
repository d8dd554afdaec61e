package frame

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// LoadAlignColumn spreads data over the index so that consecutive placed
// values are at least interval apart, measured by diff on index values.
//
// The column is first filled with null to the index length. With
// startFromBeginning, data[0] goes to row 0. Walking the index, a row whose
// distance from the last placed row is below interval stays null; otherwise it
// takes the next data value and becomes the new reference. Placement stops
// when data or the index runs out. Returns the number of values placed.
func LoadAlignColumn[T comparable, I comparable](t *Table[I], name string, data []T, interval int, startFromBeginning bool, null T, diff func(ref, cand I) int) (n int, err error) {
	defer t.track("load_align_column")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	if name == IndexColumnName {
		return 0, reservedName("LoadAlignColumn")
	}
	if interval < 0 {
		return 0, frameerrors.Newf(frameerrors.ErrorTypeBadRange, "LoadAlignColumn: negative interval %d", interval)
	}
	if len(data) == 0 || len(data) > len(t.index) {
		return 0, frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
			"LoadAlignColumn: %d values cannot be aligned to an index of length %d", len(data), len(t.index))
	}

	out := make([]T, len(t.index))
	for i := range out {
		out[i] = null
	}

	next, row := 0, 0
	if startFromBeginning {
		out[0] = data[0]
		next, row = 1, 1
	}
	ref := 0
	for ; row < len(t.index) && next < len(data); row++ {
		if diff(t.index[ref], t.index[row]) < interval {
			continue
		}
		out[row] = data[next]
		next++
		ref = row
	}

	if _, err := loadColumnLocked(t, name, out, DontPadWithNaNs); err != nil {
		return 0, err
	}
	t.log.Debug("column aligned", zap.String("column", name), zap.Int("placed", next), zap.Int("interval", interval))
	return next, nil
}
