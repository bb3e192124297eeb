// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"iter"
	"slices"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Fixed is an array of exactly Len() elements. The size is set at
// construction and never changes; every element is always live.
type Fixed[T any] struct {
	elems []T
}

// NewFixed returns n zero-valued elements. It panics if n is not positive.
func NewFixed[T any](n int, opts ...Option) *Fixed[T] {
	checkPositive("NewFixed", n)
	o := newOptions(opts)
	return &Fixed[T]{elems: makeStorage[T](o.arena, n)}
}

// FixedOf returns an array holding a copy of elems; its size is len(elems).
// All arguments share the single element type T, so mixed argument types do
// not compile. It panics if elems is empty.
func FixedOf[T any](elems ...T) *Fixed[T] {
	checkPositive("FixedOf", len(elems))
	return &Fixed[T]{elems: slices.Clone(elems)}
}

// Len returns the size of the array.
func (f *Fixed[T]) Len() int {
	return len(f.elems)
}

// Fill sets every element to value.
func (f *Fixed[T]) Fill(value T) {
	for i := range f.elems {
		f.elems[i] = value
	}
}

// Swap exchanges the elements of f and other pairwise.
// It panics if the sizes differ.
func (f *Fixed[T]) Swap(other *Fixed[T]) {
	if len(f.elems) != len(other.elems) {
		panic(errors.AssertionFailedf("containers: Fixed.Swap: size mismatch %d != %d", len(f.elems), len(other.elems)))
	}
	for i := range f.elems {
		f.elems[i], other.elems[i] = other.elems[i], f.elems[i]
	}
}

// At returns the element at i. It panics if i is not in [0, Len()).
func (f *Fixed[T]) At(i int) T {
	checkIndex("Fixed.At", i, len(f.elems))
	return f.elems[i]
}

// Set replaces the element at i.
func (f *Fixed[T]) Set(i int, value T) {
	checkIndex("Fixed.Set", i, len(f.elems))
	f.elems[i] = value
}

// Ptr returns a pointer to the element at i.
func (f *Fixed[T]) Ptr(i int) *T {
	checkIndex("Fixed.Ptr", i, len(f.elems))
	return &f.elems[i]
}

// Front returns the first element.
func (f *Fixed[T]) Front() T {
	return f.elems[0]
}

// Back returns the last element.
func (f *Fixed[T]) Back() T {
	return f.elems[len(f.elems)-1]
}

// Data returns the elements. The slice aliases the array.
func (f *Fixed[T]) Data() []T {
	return f.elems[:len(f.elems):len(f.elems)]
}

// All returns an iterator over index/element pairs in order.
func (f *Fixed[T]) All() iter.Seq2[int, T] {
	return slices.All(f.elems)
}

// Values returns an iterator over the elements in order.
func (f *Fixed[T]) Values() iter.Seq[T] {
	return slices.Values(f.elems)
}

// Backward returns an iterator over index/element pairs from last to first.
func (f *Fixed[T]) Backward() iter.Seq2[int, T] {
	return slices.Backward(f.elems)
}

// Clone returns an independent copy.
func (f *Fixed[T]) Clone() *Fixed[T] {
	return &Fixed[T]{elems: slices.Clone(f.elems)}
}

// EqualFunc reports whether f and other have the same size and eq holds for
// every pair of elements.
func (f *Fixed[T]) EqualFunc(other *Fixed[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(f.elems, other.elems, eq)
}

// CompareFunc compares f and other lexicographically using cmp.
func (f *Fixed[T]) CompareFunc(other *Fixed[T], cmp func(T, T) int) int {
	return slices.CompareFunc(f.elems, other.elems, cmp)
}

// EqualFixed reports whether a and b are elementwise equal.
func EqualFixed[T comparable](a, b *Fixed[T]) bool {
	return a.EqualFunc(b, equal[T])
}

// CompareFixed compares a and b lexicographically, like Compare.
func CompareFixed[T constraints.Ordered](a, b *Fixed[T]) int {
	return a.CompareFunc(b, compareOrdered[T])
}
