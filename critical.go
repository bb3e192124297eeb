// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"sync"
	"unsafe"
)

// CriticalSection serializes callers that share a container or an arena.
// Containers never take it themselves: locking is always opt-in and the
// owner of the shared value decides where the section starts and ends.
// The zero value is ready to use.
type CriticalSection struct {
	mu sync.Mutex
}

// Do runs fn inside the critical section.
func (c *CriticalSection) Do(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

func within[R any](c *CriticalSection, fn func() R) R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}

type concurrentArena struct {
	cs CriticalSection
	a  Arena
}

// NewConcurrentArena returns an arena that is safe to be accessed concurrently
// from multiple goroutines. A nil a yields an arena that never allocates.
func NewConcurrentArena(a Arena) Arena {
	return &concurrentArena{a: a}
}

// Alloc satisfies the Arena interface.
func (c *concurrentArena) Alloc(size, alignment uintptr) unsafe.Pointer {
	return within(&c.cs, func() unsafe.Pointer {
		if c.a == nil {
			return nil
		}
		return c.a.Alloc(size, alignment)
	})
}

// Reset satisfies the Arena interface.
func (c *concurrentArena) Reset() {
	c.cs.Do(func() {
		if c.a != nil {
			c.a.Reset()
		}
	})
}

// Release satisfies the Arena interface.
func (c *concurrentArena) Release() {
	c.cs.Do(func() {
		if c.a != nil {
			c.a.Release()
		}
	})
}

// Len satisfies the Arena interface.
func (c *concurrentArena) Len() int {
	return c.stat(Arena.Len)
}

// Cap satisfies the Arena interface.
func (c *concurrentArena) Cap() int {
	return c.stat(Arena.Cap)
}

// Peak satisfies the Arena interface.
func (c *concurrentArena) Peak() int {
	return c.stat(Arena.Peak)
}

func (c *concurrentArena) stat(get func(Arena) int) int {
	return within(&c.cs, func() int {
		if c.a == nil {
			return 0
		}
		return get(c.a)
	})
}
