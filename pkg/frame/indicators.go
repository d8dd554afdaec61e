package frame

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// LoadIndicators one-hot encodes a categorical column. For each distinct
// non-NaN value, in first-seen order, a bool column named prefix+value is
// loaded with true where the row holds that value. Returns the number of
// indicator columns.
func LoadIndicators[T comparable, I comparable](t *Table[I], col, prefix string) (n int, err error) {
	defer t.track("load_indicators")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	src, err := getColumnLocked[T](t, col)
	if err != nil {
		return 0, err
	}

	var (
		categories []T
		rows       [][]bool
		seen       = make(map[T]int)
	)
	for i, v := range src.data {
		if src.tr.isNaN(v) {
			continue
		}
		k, ok := seen[v]
		if !ok {
			k = len(categories)
			seen[v] = k
			categories = append(categories, v)
			rows = append(rows, make([]bool, len(t.index)))
		}
		rows[k][i] = true
	}

	names := make([]string, len(categories))
	for k, v := range categories {
		names[k] = prefix + fmt.Sprint(v)
		if names[k] == IndexColumnName {
			return 0, reservedName("LoadIndicators")
		}
		if c, err := t.lookupLocked(names[k]); err == nil {
			if _, ok := c.(*Vector[bool]); !ok {
				return 0, typeMismatch[bool](names[k], c)
			}
		}
	}

	for k, name := range names {
		if _, err := loadColumnLocked(t, name, rows[k], PadWithNaNs); err != nil {
			return k, err
		}
	}
	t.log.Debug("indicators loaded", zap.String("column", col), zap.Int("categories", len(names)))
	return len(names), nil
}

// FromIndicators reverses LoadIndicators: each row of newCol receives the
// category of its first true indicator column, or NaN when none is set.
// Returns the length of the new column.
func FromIndicators[T comparable, I comparable](t *Table[I], indicators []string, newCol string, categories []T) (n int, err error) {
	defer t.track("from_indicators")(&err)
	if len(indicators) != len(categories) {
		return 0, frameerrors.Newf(frameerrors.ErrorTypeInconsistentData,
			"FromIndicators: %d indicator columns but %d categories", len(indicators), len(categories))
	}

	g := t.Guard(Lock)
	defer g.Release()

	cols := make([]*Vector[bool], len(indicators))
	for k, name := range indicators {
		if cols[k], err = getColumnLocked[bool](t, name); err != nil {
			return 0, err
		}
	}

	nan := NaN[T]()
	out := make([]T, len(t.index))
	for i := range out {
		out[i] = nan
		for k, c := range cols {
			if c.At(i) {
				out[i] = categories[k]
				break
			}
		}
	}
	return loadColumnLocked(t, newCol, out, PadWithNaNs)
}

// FromIndicatorsByPrefix is FromIndicators for string categories taken from
// the indicator names with prefix removed.
func FromIndicatorsByPrefix[I comparable](t *Table[I], indicators []string, newCol, prefix string) (int, error) {
	categories := make([]string, len(indicators))
	for k, name := range indicators {
		categories[k] = strings.TrimPrefix(name, prefix)
	}
	return FromIndicators(t, indicators, newCol, categories)
}
