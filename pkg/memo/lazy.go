// Package memo holds the two caching primitives the projection packages
// rely on: a compute-once cell and a single-entry last-call cache.
package memo

import "sync"

// Lazy is a compute-once cell. The first Get runs compute and every later
// Get returns the same value; nothing ever invalidates it, so it belongs on
// immutable owners only.
type Lazy[T any] struct {
	once  sync.Once
	value T
}

// Get returns the cached value, computing it on first use.
func (l *Lazy[T]) Get(compute func() T) T {
	l.once.Do(func() {
		l.value = compute()
	})
	return l.value
}
