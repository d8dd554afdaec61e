package frame

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/ajitpratap0/nebulaframe/pkg/config"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// IndexColumnName is the reserved name of the index series. No data column
// may use it.
const IndexColumnName = "INDEX"

// ColumnType identifies the element type family of a column
type ColumnType int

const (
	ColumnTypeString ColumnType = iota
	ColumnTypeInt
	ColumnTypeUint
	ColumnTypeFloat
	ColumnTypeBool
	ColumnTypeTimestamp
	// ColumnTypeOther covers user element types
	ColumnTypeOther
)

func (c ColumnType) String() string {
	switch c {
	case ColumnTypeString:
		return "string"
	case ColumnTypeInt:
		return "int"
	case ColumnTypeUint:
		return "uint"
	case ColumnTypeFloat:
		return "float"
	case ColumnTypeBool:
		return "bool"
	case ColumnTypeTimestamp:
		return "timestamp"
	default:
		return "other"
	}
}

// Padding decides whether a short column is extended to the index length
// with its type's NaN sentinel.
type Padding int

const (
	PadWithNaNs Padding = iota
	DontPadWithNaNs
)

func (p Padding) String() string {
	if p == DontPadWithNaNs {
		return config.PaddingDontPad
	}
	return config.PaddingPadWithNaNs
}

// ParsePadding converts a configuration value into a Padding.
func ParsePadding(s string) (Padding, error) {
	switch s {
	case config.PaddingPadWithNaNs, "":
		return PadWithNaNs, nil
	case config.PaddingDontPad:
		return DontPadWithNaNs, nil
	}
	return PadWithNaNs, frameerrors.Newf(frameerrors.ErrorTypeDataFrame, "unknown padding policy %q", s)
}

// NaNer lets a user element type supply its own missing-value sentinel.
// The zero value of the type is asked for the sentinel.
type NaNer[T any] interface {
	NaN() T
	IsNaN() bool
}

// traits is the per-type behaviour resolved once when a column is created:
// the NaN sentinel, the NaN test and the type family.
type traits[T comparable] struct {
	nan   T
	isNaN func(T) bool
	kind  ColumnType
	elem  reflect.Type
}

func traitsOf[T comparable]() traits[T] {
	var zero T
	tr := traits[T]{
		nan: zero,
		// v != v only holds for IEEE NaN, directly or inside a struct
		isNaN: func(v T) bool { return v != v },
		kind:  ColumnTypeOther,
		elem:  reflect.TypeFor[T](),
	}

	switch any(zero).(type) {
	case float64:
		tr.nan = any(math.NaN()).(T)
		tr.kind = ColumnTypeFloat
	case float32:
		tr.nan = any(float32(math.NaN())).(T)
		tr.kind = ColumnTypeFloat
	case string:
		tr.isNaN = func(v T) bool { return v == zero }
		tr.kind = ColumnTypeString
	case time.Time:
		tr.isNaN = func(v T) bool { return any(v).(time.Time).IsZero() }
		tr.kind = ColumnTypeTimestamp
	case int, int8, int16, int32, int64:
		tr.kind = ColumnTypeInt
	case uint, uint8, uint16, uint32, uint64, uintptr:
		tr.kind = ColumnTypeUint
	case bool:
		tr.kind = ColumnTypeBool
	default:
		if n, ok := any(zero).(NaNer[T]); ok {
			tr.nan = n.NaN()
			tr.isNaN = func(v T) bool { return any(v).(NaNer[T]).IsNaN() }
		}
	}
	return tr
}

// NaN returns the missing-value sentinel of T: IEEE NaN for floats, the
// NaNer sentinel for user types implementing it, the zero value otherwise.
func NaN[T comparable]() T {
	return traitsOf[T]().nan
}

// IsNaN reports whether v is T's missing value. Integers, unsigned integers
// and booleans have no missing value; strings use "", time.Time the zero time.
func IsNaN[T comparable](v T) bool {
	return traitsOf[T]().isNaN(v)
}

// ColumnInfo describes one cataloged column.
type ColumnInfo struct {
	Name     string
	Slot     int
	Len      int
	Type     ColumnType
	ElemType reflect.Type
}

func (c ColumnInfo) String() string {
	return fmt.Sprintf("%s:%d:<%s>", c.Name, c.Len, c.ElemType)
}
