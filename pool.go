// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"sync"
	"weak"
)

const (
	defaultPooledArenaSize = 4 * 1024
	poolSizeWindow         = 50
)

// BufferPool hands out arena-backed message buffers and takes them back.
//
// Returned items are held through weak pointers, so the garbage collector may
// reclaim idle buffers whenever it needs the memory; the pool shrinks and
// grows with GC pressure. The arena of a new item is sized from the average
// peak usage recorded for the same key.
type BufferPool struct {
	pool  []weak.Pointer[PooledBuffer]
	sizes map[uint64]*pooledSize
	mu    sync.Mutex
}

// pooledSize tracks the peak usage of the last buffers released under one key.
type pooledSize struct {
	count      int
	totalBytes int
}

// PooledBuffer is a Buffer together with the arena that stores it.
type PooledBuffer struct {
	Buffer *Buffer
	Arena  Arena
	Key    uint64
}

// NewBufferPool creates an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		sizes: make(map[uint64]*pooledSize),
	}
}

// Acquire returns an empty buffer. key groups buffers of the same use case so
// their arenas are sized alike.
func (p *BufferPool) Acquire(key uint64) *PooledBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pool) > 0 {
		last := len(p.pool) - 1
		wp := p.pool[last]
		p.pool = p.pool[:last]

		if item := wp.Value(); item != nil {
			item.Key = key
			return item
		}
	}

	a := NewMonotonicArena(WithMinBufferSize(p.arenaSize(key)))
	return &PooledBuffer{
		Buffer: NewBuffer(WithArena(a)),
		Arena:  a,
		Key:    key,
	}
}

// Release returns item to the pool. The buffer's contents are discarded and
// must not be used afterwards.
func (p *BufferPool) Release(item *PooledBuffer) {
	peak := item.Arena.Peak()
	item.Buffer.detach()
	item.Arena.Reset()

	p.mu.Lock()
	defer p.mu.Unlock()

	if size, ok := p.sizes[item.Key]; ok {
		if size.count == poolSizeWindow {
			size.count = 1
			size.totalBytes /= poolSizeWindow
		}
		size.count++
		size.totalBytes += peak
	} else {
		p.sizes[item.Key] = &pooledSize{count: 1, totalBytes: peak}
	}

	item.Key = 0
	p.pool = append(p.pool, weak.Make(item))
}

func (p *BufferPool) arenaSize(key uint64) int {
	if size, ok := p.sizes[key]; ok && size.totalBytes > 0 {
		return size.totalBytes / size.count
	}
	return defaultPooledArenaSize
}
