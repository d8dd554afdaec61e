package frame

import (
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/pool"
)

// KeepPolicy selects which member of a duplicate group survives.
type KeepPolicy int

const (
	KeepFirst KeepPolicy = iota
	KeepLast
	// KeepNone drops every row that has a duplicate
	KeepNone
)

func (k KeepPolicy) String() string {
	switch k {
	case KeepFirst:
		return "keep_first"
	case KeepLast:
		return "keep_last"
	}
	return "keep_none"
}

// RemoveDuplicates returns a copy of the table without duplicate rows. Rows
// are duplicates when they agree on every column in cols, and on the index
// when includeIndex is set. NaNs are equal to each other. Surviving rows keep
// their original order.
func (t *Table[I]) RemoveDuplicates(cols []string, includeIndex bool, keep KeepPolicy) (out *Table[I], err error) {
	defer t.track("remove_duplicates")(&err)
	g := t.Guard(Lock)
	defer g.Release()

	key := make([]Column, len(cols))
	for k, name := range cols {
		if key[k], err = t.lookupLocked(name); err != nil {
			return nil, err
		}
	}

	// groups[h] holds the rows of every distinct key hashing to h; the first
	// row of each group is its representative.
	groups := make(map[uint64][][]int, len(t.index))
	d := xxhash.New()
	for i := range t.index {
		h := hashRow(d, t.index, includeIndex, key, i)
		bucket := groups[h]
		found := false
		for b, rows := range bucket {
			if equalRows(t.index, includeIndex, key, rows[0], i) {
				bucket[b] = append(rows, i)
				found = true
				break
			}
		}
		if !found {
			groups[h] = append(bucket, []int{i})
		}
	}

	survive := make([]bool, len(t.index))
	for _, bucket := range groups {
		for _, rows := range bucket {
			switch {
			case len(rows) == 1:
				survive[rows[0]] = true
			case keep == KeepFirst:
				survive[rows[0]] = true
			case keep == KeepLast:
				survive[rows[len(rows)-1]] = true
			}
		}
	}

	buf := pool.GetPositions(len(t.index))
	defer pool.PutPositions(buf)
	for i, ok := range survive {
		if ok {
			*buf = append(*buf, i)
		}
	}

	out = t.gatherLocked(*buf)
	t.log.Debug("duplicates removed",
		zap.Int("rows", len(t.index)), zap.Int("kept", len(*buf)), zap.Stringer("keep", keep))
	return out, nil
}
