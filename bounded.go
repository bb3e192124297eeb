// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// Bounded is an append-only array with a capacity fixed at construction.
// Its storage is allocated once and never reallocated; elements are never
// removed. Len reports the level, the number of elements appended so far.
//
// Iteration covers only the appended elements. Indexed access is checked
// against the capacity instead, so callers may read or prepare the slots
// above the level directly.
//
// A Bounded is not safe for concurrent use.
type Bounded[T any] struct {
	storage []T
	level   int
}

// NewBounded returns an empty array able to hold capacity elements.
// It panics if capacity is not positive.
func NewBounded[T any](capacity int, opts ...Option) *Bounded[T] {
	checkPositive("NewBounded", capacity)
	o := newOptions(opts)
	return &Bounded[T]{
		storage: makeStorage[T](o.arena, capacity),
	}
}

// Append stores value in the next free slot.
// It returns an error wrapping ErrFull, and stores nothing, when the array is full.
func (b *Bounded[T]) Append(value T) error {
	if b.IsFull() {
		return errors.Wrapf(ErrFull, "capacity %d", len(b.storage))
	}
	b.storage[b.level] = value
	b.level++
	return nil
}

// IsEmpty reports whether nothing has been appended yet.
func (b *Bounded[T]) IsEmpty() bool {
	return b.level == 0
}

// IsFull reports whether every slot is in use.
func (b *Bounded[T]) IsFull() bool {
	return b.level == len(b.storage)
}

// Len returns the number of appended elements.
func (b *Bounded[T]) Len() int {
	return b.level
}

// Cap returns the fixed capacity.
func (b *Bounded[T]) Cap() int {
	return len(b.storage)
}

// At returns the value of slot i. It panics if i is not in [0, Cap()).
func (b *Bounded[T]) At(i int) T {
	checkIndex("Bounded.At", i, len(b.storage))
	return b.storage[i]
}

// Ptr returns a pointer to slot i. It panics if i is not in [0, Cap()).
func (b *Bounded[T]) Ptr(i int) *T {
	checkIndex("Bounded.Ptr", i, len(b.storage))
	return &b.storage[i]
}

// Data returns the appended elements.
func (b *Bounded[T]) Data() []T {
	return b.storage[:b.level:b.level]
}

// All returns an iterator over index/element pairs of the appended elements.
func (b *Bounded[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < b.level; i++ {
			if !yield(i, b.storage[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the appended elements.
func (b *Bounded[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < b.level; i++ {
			if !yield(b.storage[i]) {
				return
			}
		}
	}
}
