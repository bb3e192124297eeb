// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"unsafe"
)

// Arena is a source of raw memory for container storage.
// A container never returns memory to an arena; storage it abandons on
// reallocation stays in the arena until Reset or Release.
type Arena interface {
	// Alloc returns size bytes of zeroed memory aligned to alignment,
	// or nil if the arena cannot serve the request.
	Alloc(size, alignment uintptr) unsafe.Pointer

	// Reset rewinds the arena while keeping its memory.
	// Every pointer previously returned by Alloc becomes invalid, including
	// the storage of any container built on top of the arena.
	Reset()

	// Release drops the arena's memory. Like Reset it invalidates every
	// pointer handed out; later allocations start from fresh memory.
	Release()

	// Len returns the number of bytes handed out since the last Reset.
	Len() int

	// Cap returns the number of bytes the arena currently holds.
	Cap() int

	// Peak returns the high-water mark of Len. Reset does not clear it.
	Peak() int
}
