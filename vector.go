// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"cmp"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

const (
	// DefaultCapacity is the capacity of a vector created by NewVector.
	DefaultCapacity = 4

	// growthFactor multiplies the capacity whenever an insertion overflows it.
	growthFactor = 4
)

// Vector is an owning, contiguous, growable sequence of T.
//
// Storage is allocated lazily on the first insertion and is never shared
// with another vector: Clone copies it, Move and Swap transfer it.
// When an insertion finds the vector full, the capacity is multiplied by 4.
//
// Elements leave a vector through Pop, Erase, EraseRange, Resize, Set,
// Assign, AssignSlice, Clear and Release. Each of them runs the drop
// function (see SetDrop) exactly once per departing element, then zeroes the
// vacated slot unless T holds no pointers.
//
// The zero value is an empty vector with zero capacity, ready to use.
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	storage  []T // nil or exactly capacity slots; live elements are storage[:length]
	length   int
	capacity int
	arena    Arena
	drop     func(T)
	scrub    bool
}

func newVector[T any](capacity int, opts []Option) *Vector[T] {
	o := newOptions(opts)
	return &Vector[T]{
		capacity: capacity,
		arena:    o.arena,
		scrub:    !pointerFree[T](),
	}
}

// NewVector returns an empty vector with DefaultCapacity.
// No storage is allocated until the first insertion.
func NewVector[T any](opts ...Option) *Vector[T] {
	return newVector[T](DefaultCapacity, opts)
}

// NewVectorLen returns a vector holding n zero values, with capacity n*4.
func NewVectorLen[T any](n int, opts ...Option) *Vector[T] {
	checkSize("NewVectorLen", n)
	v := newVector[T](n*growthFactor, opts)
	v.reallocate(v.capacity)
	v.length = n
	return v
}

// NewVectorFill returns a vector holding n copies of value, with capacity n*4.
func NewVectorFill[T any](n int, value T, opts ...Option) *Vector[T] {
	v := NewVectorLen[T](n, opts...)
	for i := range v.length {
		v.storage[i] = value
	}
	return v
}

// NewVectorFrom returns a vector holding a copy of src, with capacity len(src)*4.
func NewVectorFrom[T any](src []T, opts ...Option) *Vector[T] {
	v := newVector[T](len(src)*growthFactor, opts)
	v.reallocate(v.capacity)
	v.length = copy(v.storage, src)
	return v
}

// VectorOf returns a vector holding elems.
func VectorOf[T any](elems ...T) *Vector[T] {
	return NewVectorFrom(elems)
}

// SetDrop installs fn as the function run on every element that leaves the
// vector. The function belongs to the storage: Move, MoveFrom and Swap hand
// it over together with the elements, which are not dropped on the way.
func (v *Vector[T]) SetDrop(fn func(T)) {
	v.drop = fn
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.length
}

// Cap returns the number of elements the vector can hold without reallocating.
func (v *Vector[T]) Cap() int {
	return v.capacity
}

// IsEmpty reports whether the vector holds no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.length == 0
}

// At returns the element at i. It panics if i is not in [0, Len()).
func (v *Vector[T]) At(i int) T {
	checkIndex("Vector.At", i, v.length)
	return v.storage[i]
}

// Ptr returns a pointer to the element at i.
// The pointer is invalidated by any operation that reallocates.
func (v *Vector[T]) Ptr(i int) *T {
	checkIndex("Vector.Ptr", i, v.length)
	return &v.storage[i]
}

// Set replaces the element at i with value. The replaced element is dropped.
func (v *Vector[T]) Set(i int, value T) {
	checkIndex("Vector.Set", i, v.length)
	if v.drop != nil {
		v.drop(v.storage[i])
	}
	v.storage[i] = value
}

// Front returns the first element.
func (v *Vector[T]) Front() T {
	checkIndex("Vector.Front", 0, v.length)
	return v.storage[0]
}

// Back returns the last element.
func (v *Vector[T]) Back() T {
	checkIndex("Vector.Back", v.length-1, v.length)
	return v.storage[v.length-1]
}

// Data returns the live elements. The slice aliases the vector's storage and
// is valid only until the next operation that changes the length or reallocates.
// Its capacity is clipped so appending to it never writes into the vector.
func (v *Vector[T]) Data() []T {
	return v.storage[:v.length:v.length]
}

// All returns an iterator over index/element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(v.storage[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs from last to first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.length - 1; i >= 0; i-- {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}

// Push appends value, multiplying the capacity by 4 first if the vector is full.
func (v *Vector[T]) Push(value T) {
	v.growFor(v.length + 1)
	v.storage[v.length] = value
	v.length++
}

// PushMany appends values in order.
func (v *Vector[T]) PushMany(values ...T) {
	v.InsertSlice(v.length, values...)
}

// Pop removes and drops the last element. It panics on an empty vector.
func (v *Vector[T]) Pop() {
	checkIndex("Vector.Pop", v.length-1, v.length)
	v.length--
	v.dropRange(v.length, v.length+1)
}

// Insert places value at pos, shifting the elements at pos and after it up by one.
// pos may equal Len(), which appends.
func (v *Vector[T]) Insert(pos int, value T) {
	checkRange("Vector.Insert", pos, pos, v.length)
	v.growFor(v.length + 1)
	copy(v.storage[pos+1:v.length+1], v.storage[pos:v.length])
	v.storage[pos] = value
	v.length++
}

// InsertN places n copies of value at pos.
func (v *Vector[T]) InsertN(pos, n int, value T) {
	checkRange("Vector.InsertN", pos, pos, v.length)
	checkSize("Vector.InsertN", n)
	if n == 0 {
		return
	}
	v.openGap(pos, n)
	for i := pos; i < pos+n; i++ {
		v.storage[i] = value
	}
}

// InsertSlice places values at pos, keeping their order.
// values may alias the vector's own storage.
func (v *Vector[T]) InsertSlice(pos int, values ...T) {
	checkRange("Vector.InsertSlice", pos, pos, v.length)
	if len(values) == 0 {
		return
	}
	if overlaps(values, v.storage) {
		values = slices.Clone(values)
	}
	v.openGap(pos, len(values))
	copy(v.storage[pos:], values)
}

// openGap makes room for n elements at pos. Bulk insertions size the new
// storage to four times the required length.
func (v *Vector[T]) openGap(pos, n int) {
	needed := v.length + n
	if needed > v.capacity {
		v.reallocate(needed * growthFactor)
	} else {
		v.ensureStorage()
	}
	copy(v.storage[pos+n:needed], v.storage[pos:v.length])
	v.length = needed
}

// Erase removes the element at pos and shifts the following elements down by one.
func (v *Vector[T]) Erase(pos int) {
	checkIndex("Vector.Erase", pos, v.length)
	v.EraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last) and closes the gap,
// preserving the order of the remaining elements.
func (v *Vector[T]) EraseRange(first, last int) {
	checkRange("Vector.EraseRange", first, last, v.length)
	if first == last {
		return
	}
	v.runDrop(first, last)
	tail := first + copy(v.storage[first:], v.storage[last:v.length])
	v.zero(tail, v.length)
	v.length = tail
}

// Reserve grows the capacity to at least n. The length does not change.
func (v *Vector[T]) Reserve(n int) {
	if n > v.capacity {
		v.reallocate(n)
	}
}

// ShrinkToFit reallocates the storage down to exactly Len() elements.
func (v *Vector[T]) ShrinkToFit() {
	if v.capacity == v.length {
		return
	}
	v.reallocate(v.length)
}

// Resize sets the length to n. New elements are zero values; removed
// elements are dropped. A resize past the capacity sets the capacity to n.
func (v *Vector[T]) Resize(n int) {
	var zero T
	v.ResizeFill(n, zero)
}

// ResizeFill is Resize with new elements set to value.
func (v *Vector[T]) ResizeFill(n int, value T) {
	checkSize("Vector.Resize", n)
	switch {
	case n > v.length:
		if n > v.capacity {
			v.reallocate(n)
		} else {
			v.ensureStorage()
		}
		for i := v.length; i < n; i++ {
			v.storage[i] = value
		}
	case n < v.length:
		v.dropRange(n, v.length)
	}
	v.length = n
}

// Assign replaces the contents with n copies of value.
func (v *Vector[T]) Assign(n int, value T) {
	checkSize("Vector.Assign", n)
	v.prepareAssign(n)
	for i := range n {
		v.storage[i] = value
	}
	v.length = n
}

// AssignSlice replaces the contents with a copy of src.
// src may alias the vector's own storage.
func (v *Vector[T]) AssignSlice(src []T) {
	if overlaps(src, v.storage) {
		src = slices.Clone(src)
	}
	v.prepareAssign(len(src))
	v.length = copy(v.storage, src)
}

func (v *Vector[T]) prepareAssign(n int) {
	v.dropRange(0, v.length)
	v.length = 0
	if n > v.capacity {
		v.reallocate(n * growthFactor)
	} else {
		v.ensureStorage()
	}
}

// Clear drops every element. The capacity and storage are kept.
func (v *Vector[T]) Clear() {
	v.dropRange(0, v.length)
	v.length = 0
}

// Release drops every element and lets go of the storage.
// The vector is empty with zero capacity afterwards and may be reused.
func (v *Vector[T]) Release() {
	v.Clear()
	v.storage = nil
	v.capacity = 0
}

// Clone returns a deep copy with the same capacity, arena and drop function.
// Elements are copied by assignment.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{
		capacity: v.capacity,
		arena:    v.arena,
		drop:     v.drop,
		scrub:    v.scrub,
	}
	if v.storage != nil {
		c.reallocate(c.capacity)
		c.length = copy(c.storage, v.storage[:v.length])
	}
	return c
}

// Move transfers the storage and the drop function to a new vector in O(1).
// v is left empty with DefaultCapacity, no storage and no drop function,
// and remains usable.
func (v *Vector[T]) Move() *Vector[T] {
	moved := &Vector[T]{
		storage:  v.storage,
		length:   v.length,
		capacity: v.capacity,
		arena:    v.arena,
		drop:     v.drop,
		scrub:    v.scrub,
	}
	v.storage = nil
	v.length = 0
	v.capacity = DefaultCapacity
	v.drop = nil
	return moved
}

// MoveFrom releases v's own contents and takes over src's storage in O(1).
// src is left as Move leaves it.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Release()
	moved := src.Move()
	v.storage, v.length, v.capacity, v.arena = moved.storage, moved.length, moved.capacity, moved.arena
	v.drop, v.scrub = moved.drop, moved.scrub
}

// Swap exchanges the contents of v and other in O(1), drop functions included.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.storage, other.storage = other.storage, v.storage
	v.length, other.length = other.length, v.length
	v.capacity, other.capacity = other.capacity, v.capacity
	v.arena, other.arena = other.arena, v.arena
	v.drop, other.drop = other.drop, v.drop
	v.scrub, other.scrub = other.scrub, v.scrub
}

// EqualFunc reports whether v and other have the same length and eq holds
// for every pair of elements.
func (v *Vector[T]) EqualFunc(other *Vector[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(v.Data(), other.Data(), eq)
}

// CompareFunc compares v and other lexicographically using cmp.
func (v *Vector[T]) CompareFunc(other *Vector[T], cmp func(T, T) int) int {
	return slices.CompareFunc(v.Data(), other.Data(), cmp)
}

// Equal reports whether a and b have the same length and equal elements.
func Equal[T comparable](a, b *Vector[T]) bool {
	return a.EqualFunc(b, equal[T])
}

// Compare compares a and b lexicographically. The result is 0 if a == b,
// -1 if a < b, and +1 if a > b. A vector that is a prefix of the other is the smaller.
// Elements are ordered as cmp.Compare orders them, so a NaN is less than any
// other float and equal to another NaN.
func Compare[T constraints.Ordered](a, b *Vector[T]) int {
	return a.CompareFunc(b, compareOrdered[T])
}

func (v *Vector[T]) growFor(needed int) {
	if needed <= v.capacity {
		v.ensureStorage()
		return
	}
	newCap := v.capacity
	if newCap == 0 {
		newCap = DefaultCapacity
	}
	for newCap < needed {
		newCap *= growthFactor
	}
	v.reallocate(newCap)
}

func (v *Vector[T]) ensureStorage() {
	if v.storage == nil && v.capacity > 0 {
		v.storage = v.allocate(v.capacity)
	}
}

// reallocate moves the live elements into fresh storage of newCap slots.
// The old storage is abandoned to the garbage collector, or to its arena.
func (v *Vector[T]) reallocate(newCap int) {
	next := v.allocate(newCap)
	copy(next, v.storage[:v.length])
	v.storage = next
	v.capacity = newCap
}

// allocate returns n slots of fresh storage. scrub is settled here as well
// so a zero-value Vector learns it before its first element arrives.
func (v *Vector[T]) allocate(n int) []T {
	v.scrub = !pointerFree[T]()
	return makeStorage[T](v.arena, n)
}

func (v *Vector[T]) dropRange(first, last int) {
	v.runDrop(first, last)
	v.zero(first, last)
}

func (v *Vector[T]) runDrop(first, last int) {
	if v.drop == nil {
		return
	}
	for i := first; i < last; i++ {
		v.drop(v.storage[i])
	}
}

func (v *Vector[T]) zero(first, last int) {
	if v.scrub && first < last {
		clear(v.storage[first:last])
	}
}

func equal[T comparable](a, b T) bool {
	return a == b
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}
