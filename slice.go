// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"unsafe"
)

// AllocateSlice creates a slice of type T with a given length and capacity,
// using the provided Arena for memory allocation.
// If the arena is nil or cannot serve the request, it returns a slice from make.
//
// The caller must make sure T holds no pointers when a is non-nil:
// the garbage collector does not scan arena memory.
func AllocateSlice[T any](a Arena, len, cap int) []T {
	if a != nil && cap > 0 {
		var x T
		bufSize := unsafe.Sizeof(x) * uintptr(cap)
		if bufSize > 0 {
			if ptr := (*T)(a.Alloc(bufSize, unsafe.Alignof(x))); ptr != nil {
				return unsafe.Slice(ptr, cap)[:len]
			}
		}
	}
	return make([]T, len, cap)
}

// makeStorage returns n zeroed slots for a container.
// Arena memory is used only for pointer-free element types.
func makeStorage[T any](a Arena, n int) []T {
	if n == 0 {
		return nil
	}
	if a != nil && pointerFree[T]() {
		return AllocateSlice[T](a, n, n)
	}
	return make([]T, n)
}

// overlaps reports whether a and b share any backing memory.
func overlaps[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	size := unsafe.Sizeof(a[0])
	if size == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*size
	bEnd := bStart + uintptr(len(b))*size
	return aStart < bEnd && bStart < aEnd
}
