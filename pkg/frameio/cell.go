package frameio

import (
	"reflect"
	"strconv"
	"time"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// column pairs a snapshot column with its catalog entry.
type column struct {
	info frame.ColumnInfo
	col  frame.Column
}

// present reports whether row i holds a real value.
func (c column) present(i int) bool {
	return i < c.col.Len() && !c.col.IsNaN(i)
}

// snapshot clones t once and returns the clone's index and columns in
// creation order.
func snapshot[I comparable](t *frame.Table[I]) (frame.ColumnInfo, []I, []column, error) {
	snap := t.Clone()
	infos := snap.ColumnsInfo()
	cols := make([]column, 0, len(infos))
	err := snap.VisitAll(frame.VisitorFunc(func(_ string, c frame.Column) error {
		cols = append(cols, column{info: infos[len(cols)], col: c})
		return nil
	}))
	if err != nil {
		return frame.ColumnInfo{}, nil, nil, err
	}
	return snap.IndexInfo(), snap.Index(), cols, nil
}

func checkEmittable(format string, index frame.ColumnInfo, cols []column) error {
	if index.Type == frame.ColumnTypeOther {
		return frameerrors.Newf(frameerrors.ErrorTypeNotImplemented,
			"%s: index element type %s is not supported", format, index.ElemType).
			WithDetail("format", format)
	}
	for _, c := range cols {
		if c.info.Type == frame.ColumnTypeOther {
			return frameerrors.Newf(frameerrors.ErrorTypeNotImplemented,
				"%s: column %q has unsupported element type %s", format, c.info.Name, c.info.ElemType).
				WithDetail("format", format).
				WithDetail("column", c.info.Name)
		}
	}
	return nil
}

// formatCell renders one value of a built-in element type.
func formatCell(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uintptr:
		return strconv.FormatUint(uint64(v), 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return reflect.ValueOf(value).String()
	}
}
