// Package pool provides typed object pooling for the frame engine.
// Selection, removal and deduplication build temporary row position lists on
// every call; pooling them keeps repeated selections on large tables from
// churning the garbage collector.
//
// Example usage:
//
//	buf := pool.GetPositions(n)
//	defer pool.PutPositions(buf)
//
//	for i := 0; i < n; i++ {
//	    if keep(i) {
//	        *buf = append(*buf, i)
//	    }
//	}
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It wraps sync.Pool with statistics tracking and an optional reset function.
// The pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	new   func() T
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
	}
}

// New creates a new typed pool. new is called when the pool is empty; reset,
// if not nil, is called on every object handed back through Put.
//
// Example:
//
//	p := New(
//	    func() *[]int { s := make([]int, 0, 64); return &s },
//	    func(s *[]int) { *s = (*s)[:0] },
//	)
func New[T any](new func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{
		new:   new,
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return new()
	}
	return p
}

// Get retrieves an object from the pool, allocating one if it is empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	obj := p.pool.Get().(T)
	atomic.AddInt64(&p.stats.hits, 1)
	return obj
}

// Put resets obj and returns it to the pool.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns the number of objects allocated by the pool, the number
// currently checked out, and the number of Get calls served.
func (p *Pool[T]) Stats() (allocated, inUse, hits int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits)
}

// maxPooledPositions caps the capacity of position buffers kept in the pool
// so a single huge selection does not pin its buffer forever.
const maxPooledPositions = 1 << 20

// PositionPool holds scratch []int buffers for row positions.
var PositionPool = New(
	func() *[]int {
		s := make([]int, 0, 256)
		return &s
	},
	func(s *[]int) {
		*s = (*s)[:0]
	},
)

// GetPositions returns an empty position buffer with at least the given capacity.
func GetPositions(capacity int) *[]int {
	buf := PositionPool.Get()
	if cap(*buf) < capacity {
		*buf = make([]int, 0, capacity)
	}
	return buf
}

// PutPositions returns a buffer obtained from GetPositions. Callers must not
// keep references to the slice afterwards.
func PutPositions(buf *[]int) {
	if buf == nil || cap(*buf) > maxPooledPositions {
		return
	}
	PositionPool.Put(buf)
}
