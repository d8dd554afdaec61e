package frame

import (
	"sync"

	"github.com/ajitpratap0/nebulaframe/pkg/config"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// LockPolicy selects whether an operation takes the table lock.
type LockPolicy int

const (
	Lock LockPolicy = iota
	// DontLock is for callers already holding the table's Guard
	DontLock
)

// ParseLockPolicy converts a configuration value into a LockPolicy.
func ParseLockPolicy(s string) (LockPolicy, error) {
	switch s {
	case config.LockPolicyLock, "":
		return Lock, nil
	case config.LockPolicyDontLock:
		return DontLock, nil
	}
	return Lock, frameerrors.Newf(frameerrors.ErrorTypeDataFrame, "unknown lock policy %q", s)
}

// Guard is a scoped hold on a table's mutex. Release is idempotent, so the
// usual pattern is
//
//	g := t.Guard(frame.Lock)
//	defer g.Release()
type Guard struct {
	mu   *sync.Mutex
	held bool
}

func acquire(mu *sync.Mutex, policy LockPolicy) *Guard {
	g := &Guard{mu: mu}
	if policy == Lock {
		mu.Lock()
		g.held = true
	}
	return g
}

// Release unlocks the table if this guard locked it.
func (g *Guard) Release() {
	if g == nil || !g.held {
		return
	}
	g.held = false
	g.mu.Unlock()
}

// Held reports whether the guard currently holds the lock.
func (g *Guard) Held() bool { return g != nil && g.held }
