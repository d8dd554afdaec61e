package frameio

import (
	"cmp"
	"reflect"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/logger"
)

var (
	timeType      = reflect.TypeFor[time.Time]()
	timestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}
)

// arrowType maps a Go element type to its Arrow data type.
func arrowType(name string, elem reflect.Type) (arrow.DataType, error) {
	if elem == timeType {
		return timestampType, nil
	}
	switch elem.Kind() {
	case reflect.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case reflect.Int, reflect.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case reflect.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case reflect.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case reflect.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case reflect.Uint, reflect.Uint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case reflect.Uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case reflect.Uint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case reflect.Uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case reflect.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case reflect.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case reflect.String:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotImplemented,
			"arrow: series %q has unsupported element type %s", name, elem).
			WithDetail("column", name)
	}
}

// appendValue appends v to b. v must be of an element type arrowType accepted
// for b's data type.
func appendValue(b array.Builder, v any) {
	rv := reflect.ValueOf(v)
	switch b := b.(type) {
	case *array.BooleanBuilder:
		b.Append(rv.Bool())
	case *array.Int8Builder:
		b.Append(int8(rv.Int()))
	case *array.Int16Builder:
		b.Append(int16(rv.Int()))
	case *array.Int32Builder:
		b.Append(int32(rv.Int()))
	case *array.Int64Builder:
		b.Append(rv.Int())
	case *array.Uint8Builder:
		b.Append(uint8(rv.Uint()))
	case *array.Uint16Builder:
		b.Append(uint16(rv.Uint()))
	case *array.Uint32Builder:
		b.Append(uint32(rv.Uint()))
	case *array.Uint64Builder:
		b.Append(rv.Uint())
	case *array.Float32Builder:
		b.Append(float32(rv.Float()))
	case *array.Float64Builder:
		b.Append(rv.Float())
	case *array.StringBuilder:
		b.Append(rv.String())
	case *array.TimestampBuilder:
		b.Append(arrow.Timestamp(v.(time.Time).UnixNano()))
	default:
		b.AppendNull()
	}
}

// ToArrow converts t into an Arrow record with one field per series, INDEX
// first. Short columns and NaN cells become nulls. The caller releases the
// record.
func ToArrow[I comparable](t *frame.Table[I], alloc memory.Allocator) (arrow.Record, error) {
	if alloc == nil {
		alloc = memory.NewGoAllocator()
	}
	indexInfo, index, cols, err := snapshot(t)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, 0, len(cols)+1)
	dt, err := arrowType(indexInfo.Name, indexInfo.ElemType)
	if err != nil {
		return nil, err
	}
	fields = append(fields, arrow.Field{Name: indexInfo.Name, Type: dt})
	for _, c := range cols {
		if dt, err = arrowType(c.info.Name, c.info.ElemType); err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{Name: c.info.Name, Type: dt, Nullable: true})
	}

	rb := array.NewRecordBuilder(alloc, arrow.NewSchema(fields, nil))
	defer rb.Release()

	ib := rb.Field(0)
	ib.Reserve(len(index))
	for _, x := range index {
		appendValue(ib, x)
	}
	for k, c := range cols {
		fb := rb.Field(k + 1)
		fb.Reserve(len(index))
		for i := range index {
			if c.present(i) {
				appendValue(fb, c.col.Value(i))
			} else {
				fb.AppendNull()
			}
		}
	}

	rec := rb.NewRecord()
	logger.Debug("arrow record built",
		zap.String("table", t.Name()), zap.Int64("rows", rec.NumRows()), zap.Int64("cols", rec.NumCols()))
	return rec, nil
}

// FromArrow builds a table from rec. The first field must be INDEX and its
// values must convert to I; every other field becomes a column of the
// matching Go type, with nulls read as NaN.
func FromArrow[I cmp.Ordered](rec arrow.Record, opts ...frame.Option) (*frame.Table[I], error) {
	return FromArrowWithCompare(rec, cmp.Compare[I], opts...)
}

// FromArrowWithCompare is FromArrow for index types ordered by compare.
func FromArrowWithCompare[I comparable](rec arrow.Record, compare func(a, b I) int, opts ...frame.Option) (*frame.Table[I], error) {
	schema := rec.Schema()
	if schema.NumFields() == 0 || schema.Field(0).Name != frame.IndexColumnName {
		return nil, frameerrors.Newf(frameerrors.ErrorTypeDataFrame,
			"arrow: record must carry %s as its first field", frame.IndexColumnName)
	}

	index, err := decodeIndex[I](rec.Column(0))
	if err != nil {
		return nil, err
	}
	t := frame.NewWithCompare(compare, opts...)
	if _, err := t.LoadIndex(index); err != nil {
		return nil, err
	}

	for k := 1; k < schema.NumFields(); k++ {
		name := schema.Field(k).Name
		if name == frame.IndexColumnName {
			return nil, frameerrors.Newf(frameerrors.ErrorTypeDataFrame,
				"arrow: %s appears again at field %d", frame.IndexColumnName, k)
		}
		if err := loadArrowColumn(t, name, rec.Column(k)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func loadArrowColumn[I comparable](t *frame.Table[I], name string, arr arrow.Array) error {
	switch a := arr.(type) {
	case *array.Boolean:
		return loadArrow(t, name, a, a.Value)
	case *array.Int8:
		return loadArrow(t, name, a, a.Value)
	case *array.Int16:
		return loadArrow(t, name, a, a.Value)
	case *array.Int32:
		return loadArrow(t, name, a, a.Value)
	case *array.Int64:
		return loadArrow(t, name, a, a.Value)
	case *array.Uint8:
		return loadArrow(t, name, a, a.Value)
	case *array.Uint16:
		return loadArrow(t, name, a, a.Value)
	case *array.Uint32:
		return loadArrow(t, name, a, a.Value)
	case *array.Uint64:
		return loadArrow(t, name, a, a.Value)
	case *array.Float32:
		return loadArrow(t, name, a, a.Value)
	case *array.Float64:
		return loadArrow(t, name, a, a.Value)
	case *array.String:
		return loadArrow(t, name, a, a.Value)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return loadArrow(t, name, a, func(i int) time.Time { return timestampToTime(a.Value(i), unit) })
	default:
		return frameerrors.Newf(frameerrors.ErrorTypeNotImplemented,
			"arrow: field %q has unsupported type %s", name, arr.DataType()).
			WithDetail("column", name)
	}
}

func loadArrow[T comparable, I comparable](t *frame.Table[I], name string, arr arrow.Array, value func(int) T) error {
	data := make([]T, arr.Len())
	for i := range data {
		if arr.IsNull(i) {
			data[i] = frame.NaN[T]()
			continue
		}
		data[i] = value(i)
	}
	_, err := frame.LoadColumn(t, name, data, frame.PadWithNaNs)
	return err
}

func timestampToTime(ts arrow.Timestamp, unit arrow.TimeUnit) time.Time {
	switch unit {
	case arrow.Second:
		return time.Unix(int64(ts), 0).UTC()
	case arrow.Millisecond:
		return time.Unix(0, int64(ts)*int64(time.Millisecond)).UTC()
	case arrow.Microsecond:
		return time.Unix(0, int64(ts)*int64(time.Microsecond)).UTC()
	default:
		return time.Unix(0, int64(ts)).UTC()
	}
}

// decodeIndex reads an Arrow array into index values of type I. Values of
// the same numeric family convert, so an Int64 array loads into a []int index.
func decodeIndex[I comparable](arr arrow.Array) ([]I, error) {
	out := make([]I, arr.Len())
	target := reflect.TypeFor[I]()
	for i := range out {
		if arr.IsNull(i) {
			out[i] = frame.NaN[I]()
			continue
		}
		v, err := arrowValue(arr, i)
		if err != nil {
			return nil, err
		}
		if x, ok := v.(I); ok {
			out[i] = x
			continue
		}
		rv := reflect.ValueOf(v)
		if family(rv.Kind()) == 0 || family(rv.Kind()) != family(target.Kind()) {
			return nil, frameerrors.Newf(frameerrors.ErrorTypeTypeMismatch,
				"arrow: %s of type %s cannot load into an index of %s", frame.IndexColumnName, arr.DataType(), target)
		}
		out[i] = rv.Convert(target).Interface().(I)
	}
	return out, nil
}

func arrowValue(arr arrow.Array, i int) (any, error) {
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Int8:
		return a.Value(i), nil
	case *array.Int16:
		return a.Value(i), nil
	case *array.Int32:
		return a.Value(i), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return a.Value(i), nil
	case *array.Uint16:
		return a.Value(i), nil
	case *array.Uint32:
		return a.Value(i), nil
	case *array.Uint64:
		return a.Value(i), nil
	case *array.Float32:
		return a.Value(i), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.Timestamp:
		return timestampToTime(a.Value(i), a.DataType().(*arrow.TimestampType).Unit), nil
	default:
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotImplemented,
			"arrow: unsupported type %s", arr.DataType())
	}
}

// family groups reflect kinds that convert into each other without loss of
// meaning. Zero means no family.
func family(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 1
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	case reflect.String:
		return 4
	case reflect.Bool:
		return 5
	default:
		return 0
	}
}
