// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"unsafe"
)

const (
	minRegionSize = 1024 * 32 // 32KB
)

// monotonicArena hands out memory by bumping an offset through a list of
// regions. Nothing is freed individually; Reset rewinds every region.
type monotonicArena struct {
	regions      []*region
	peak         uintptr
	regionSize   uintptr
	initialCount int
}

type region struct {
	base   unsafe.Pointer // nil until the first allocation touches the region
	offset uintptr
	size   uintptr
}

func (r *region) alloc(size, alignment uintptr) unsafe.Pointer {
	if r.base == nil {
		r.base = unsafe.Pointer(unsafe.SliceData(make([]byte, r.size)))
	}
	start := alignUp(uintptr(r.base)+r.offset, alignment) - uintptr(r.base)
	if start+size > r.size {
		return nil
	}
	ptr := unsafe.Add(r.base, start)
	r.offset = start + size

	// Compiled to runtime.memclrNoHeapPointers.
	b := unsafe.Slice((*byte)(ptr), size)
	for i := range b {
		b[i] = 0
	}
	return ptr
}

func alignUp(p, alignment uintptr) uintptr {
	if alignment <= 1 {
		return p
	}
	if rem := p % alignment; rem != 0 {
		return p + alignment - rem
	}
	return p
}

// MonotonicArenaOption configures a monotonic arena.
type MonotonicArenaOption func(*monotonicArena)

// WithMinBufferSize sets the size of every region the arena creates, unless
// a single allocation needs a larger one.
func WithMinBufferSize(size int) MonotonicArenaOption {
	return func(a *monotonicArena) {
		a.regionSize = uintptr(size)
	}
}

// WithInitialBufferCount sets how many regions the arena starts with.
// Their memory is still allocated lazily.
func WithInitialBufferCount(count int) MonotonicArenaOption {
	return func(a *monotonicArena) {
		a.initialCount = count
	}
}

// NewMonotonicArena returns a bump arena with one 32KB region by default.
// The arena is not safe for concurrent use; see NewConcurrentArena.
func NewMonotonicArena(opts ...MonotonicArenaOption) Arena {
	a := &monotonicArena{
		regionSize:   minRegionSize,
		initialCount: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	for range a.initialCount {
		a.regions = append(a.regions, &region{size: a.regionSize})
	}
	return a
}

// Alloc satisfies the Arena interface.
func (a *monotonicArena) Alloc(size, alignment uintptr) unsafe.Pointer {
	for _, r := range a.regions {
		if ptr := r.alloc(size, alignment); ptr != nil {
			a.trackPeak()
			return ptr
		}
	}

	// Worst case padding is alignment-1 bytes.
	need := size
	if alignment > 1 {
		need += alignment - 1
	}
	r := &region{size: max(need, a.regionSize)}
	a.regions = append(a.regions, r)
	ptr := r.alloc(size, alignment)
	if ptr == nil {
		panic("containers: region sized for the allocation cannot serve it")
	}
	a.trackPeak()
	return ptr
}

func (a *monotonicArena) trackPeak() {
	if l := a.used(); l > a.peak {
		a.peak = l
	}
}

// Reset satisfies the Arena interface.
func (a *monotonicArena) Reset() {
	for _, r := range a.regions {
		r.offset = 0
	}
}

// Release satisfies the Arena interface.
func (a *monotonicArena) Release() {
	for _, r := range a.regions {
		r.offset = 0
		r.base = nil
	}
}

func (a *monotonicArena) used() uintptr {
	var total uintptr
	for _, r := range a.regions {
		total += r.offset
	}
	return total
}

// Len satisfies the Arena interface.
func (a *monotonicArena) Len() int {
	return int(a.used())
}

// Cap satisfies the Arena interface.
func (a *monotonicArena) Cap() int {
	var total uintptr
	for _, r := range a.regions {
		total += r.size
	}
	return int(total)
}

// Peak satisfies the Arena interface.
func (a *monotonicArena) Peak() int {
	return int(a.peak)
}
