package frame

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

var (
	nanMarker   = []byte{0xfe}
	fieldMarker = []byte{0xff}
)

// hashValue feeds one non-NaN element into d. Fixed-width values are written
// little endian; -0 hashes like 0 so it lands in the same bucket as equality.
func hashValue(d *xxhash.Digest, v any) {
	var buf [8]byte
	put := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = d.Write(buf[:])
	}

	switch x := v.(type) {
	case string:
		put(uint64(len(x)))
		_, _ = d.WriteString(x)
	case int:
		put(uint64(x))
	case int8:
		put(uint64(x))
	case int16:
		put(uint64(x))
	case int32:
		put(uint64(x))
	case int64:
		put(uint64(x))
	case uint:
		put(uint64(x))
	case uint8:
		put(uint64(x))
	case uint16:
		put(uint64(x))
	case uint32:
		put(uint64(x))
	case uint64:
		put(x)
	case float64:
		if x == 0 {
			x = 0
		}
		put(math.Float64bits(x))
	case float32:
		f := float64(x)
		if f == 0 {
			f = 0
		}
		put(math.Float64bits(f))
	case bool:
		if x {
			put(1)
		} else {
			put(0)
		}
	case time.Time:
		put(uint64(x.UnixNano()))
	default:
		_, _ = fmt.Fprintf(d, "%v", x)
	}
}

// hashRow hashes the composite key of row i over cols, optionally prefixed by
// the index value.
func hashRow[I comparable](d *xxhash.Digest, index []I, withIndex bool, cols []Column, i int) uint64 {
	d.Reset()
	if withIndex {
		hashValue(d, index[i])
		_, _ = d.Write(fieldMarker)
	}
	for _, c := range cols {
		c.hashAt(d, i)
		_, _ = d.Write(fieldMarker)
	}
	return d.Sum64()
}

func equalRows[I comparable](index []I, withIndex bool, cols []Column, i, j int) bool {
	if withIndex && index[i] != index[j] {
		return false
	}
	for _, c := range cols {
		if !c.equalAt(i, j) {
			return false
		}
	}
	return true
}
