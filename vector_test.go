// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"math"
	"slices"
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// requirePanicsWithAssertion checks that fn panics with an assertion failure error.
func requirePanicsWithAssertion(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.IsAssertionFailure(err), "panic %v is not an assertion failure", err)
	}()
	fn()
}

func TestVectorNew(t *testing.T) {
	v := NewVector[int]()
	require.Equal(t, 0, v.Len())
	require.Equal(t, 4, v.Cap())
	require.True(t, v.IsEmpty())
	require.Nil(t, v.storage, "storage is allocated lazily")
	require.Empty(t, v.Data())
}

func TestVectorNewLenAndFill(t *testing.T) {
	v := NewVectorLen[int](3)
	require.Equal(t, 3, v.Len())
	require.Equal(t, 12, v.Cap())
	require.Equal(t, []int{0, 0, 0}, v.Data())

	f := NewVectorFill(2, "x")
	require.Equal(t, []string{"x", "x"}, f.Data())
	require.Equal(t, 8, f.Cap())

	empty := NewVectorLen[int](0)
	require.Equal(t, 0, empty.Cap())
	empty.Push(1)
	require.Equal(t, 4, empty.Cap(), "a zero capacity grows to the default")

	requirePanicsWithAssertion(t, func() { NewVectorLen[int](-1) })
}

func TestVectorNewFromCopies(t *testing.T) {
	src := []int{1, 2, 3}
	v := NewVectorFrom(src)
	src[0] = 100

	require.Equal(t, []int{1, 2, 3}, v.Data())
	require.Equal(t, 12, v.Cap())
	require.Equal(t, []int{7, 8}, VectorOf(7, 8).Data())
}

func TestVectorPushGrowth(t *testing.T) {
	v := NewVector[int]()
	for i := 1; i <= 5; i++ {
		v.Push(i)
	}
	require.Equal(t, 5, v.Len())
	require.Equal(t, 16, v.Cap())
	require.Equal(t, []int{1, 2, 3, 4, 5}, v.Data())
}

func TestVectorGrowthInvariant(t *testing.T) {
	v := NewVector[int]()
	for k := 1; k <= 300; k++ {
		v.Push(k)
		require.Equal(t, k, v.Len())

		want := 4
		for want < k {
			want *= 4
		}
		require.Equal(t, want, v.Cap(), "capacity after %d pushes", k)
	}
}

func TestVectorAccess(t *testing.T) {
	v := VectorOf(10, 20, 30)
	require.Equal(t, 20, v.At(1))
	require.Equal(t, 10, v.Front())
	require.Equal(t, 30, v.Back())

	*v.Ptr(2) = 33
	require.Equal(t, 33, v.At(2))

	v.Set(0, 11)
	require.Equal(t, []int{11, 20, 33}, v.Data())

	requirePanicsWithAssertion(t, func() { v.At(3) })
	requirePanicsWithAssertion(t, func() { v.At(-1) })
	requirePanicsWithAssertion(t, func() { v.Set(5, 1) })
	requirePanicsWithAssertion(t, func() { v.Ptr(3) })

	empty := NewVector[int]()
	requirePanicsWithAssertion(t, func() { empty.Front() })
	requirePanicsWithAssertion(t, func() { empty.Back() })
}

func TestVectorAtDoesNotReachSpareCapacity(t *testing.T) {
	v := NewVector[int]()
	v.Push(1)
	require.Equal(t, 4, v.Cap())
	requirePanicsWithAssertion(t, func() { v.At(1) })
}

func TestVectorDataIsClipped(t *testing.T) {
	v := VectorOf(1, 2)
	v.Reserve(10)
	d := v.Data()
	require.Equal(t, 2, cap(d))
	_ = append(d, 99)
	v.Push(3)
	require.Equal(t, []int{1, 2, 3}, v.Data())
}

func TestVectorPop(t *testing.T) {
	var dropped []string
	v := VectorOf("a", "b", "c")
	v.SetDrop(func(s string) { dropped = append(dropped, s) })

	v.Pop()
	require.Equal(t, []string{"a", "b"}, v.Data())
	require.Equal(t, []string{"c"}, dropped)
	require.Equal(t, "", v.storage[2], "vacated slot is zeroed")

	v.Pop()
	v.Pop()
	require.True(t, v.IsEmpty())
	requirePanicsWithAssertion(t, func() { v.Pop() })
}

func TestVectorPopSkipsZeroingForPointerFreeTypes(t *testing.T) {
	v := VectorOf(1, 2, 3)
	v.Pop()
	require.Equal(t, 3, v.storage[2], "pointer-free slots are left as they are")

	v.Resize(3)
	require.Equal(t, []int{1, 2, 0}, v.Data(), "growing still yields zero values")
}

func TestVectorInsert(t *testing.T) {
	v := VectorOf(1, 2, 4)
	v.Insert(2, 3)
	require.Equal(t, []int{1, 2, 3, 4}, v.Data())
	require.Equal(t, 12, v.Cap())

	v.Insert(0, 0)
	v.Insert(v.Len(), 5)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, v.Data())

	requirePanicsWithAssertion(t, func() { v.Insert(7, 1) })
	requirePanicsWithAssertion(t, func() { v.Insert(-1, 1) })
}

func TestVectorInsertGrowsByFour(t *testing.T) {
	v := NewVector[int]()
	v.PushMany(1, 2, 3, 4)
	require.Equal(t, 4, v.Cap())
	v.PushMany(5, 6)
	require.Equal(t, 24, v.Cap(), "bulk insert sizes capacity to four times the need")

	w := NewVector[int]()
	for i := range 4 {
		w.Push(i)
	}
	require.Equal(t, 4, w.Cap())
	w.Insert(1, 9)
	require.Equal(t, 16, w.Cap())
	require.Equal(t, []int{0, 9, 1, 2, 3}, w.Data())
}

func TestVectorInsertN(t *testing.T) {
	v := VectorOf("a", "d")
	v.InsertN(1, 2, "x")
	require.Equal(t, []string{"a", "x", "x", "d"}, v.Data())

	v.InsertN(0, 0, "never")
	require.Equal(t, 4, v.Len())
	requirePanicsWithAssertion(t, func() { v.InsertN(0, -1, "x") })
}

func TestVectorInsertSlice(t *testing.T) {
	v := VectorOf(1, 5)
	v.InsertSlice(1, 2, 3, 4)
	require.Equal(t, []int{1, 2, 3, 4, 5}, v.Data())
	require.Equal(t, 8, v.Cap())

	v.InsertSlice(5)
	require.Equal(t, 5, v.Len())
}

func TestVectorInsertSliceFromItself(t *testing.T) {
	v := VectorOf(1, 2, 3)
	v.Reserve(100)
	v.InsertSlice(0, v.Data()...)
	require.Equal(t, []int{1, 2, 3, 1, 2, 3}, v.Data())
}

func TestVectorErasePreservesOrder(t *testing.T) {
	const n = 10
	for i := range n {
		v := NewVector[int]()
		for k := range n {
			v.Push(k)
		}
		v.Erase(i)

		require.Equal(t, n-1, v.Len())
		for k := 0; k < i; k++ {
			require.Equal(t, k, v.At(k))
		}
		for k := i; k < n-1; k++ {
			require.Equal(t, k+1, v.At(k))
		}
	}
}

func TestVectorEraseRange(t *testing.T) {
	v := VectorOf(0, 1, 2, 3, 4, 5)
	v.EraseRange(1, 4)
	require.Equal(t, []int{0, 4, 5}, v.Data())

	v.EraseRange(1, 1)
	require.Equal(t, []int{0, 4, 5}, v.Data())

	v.EraseRange(0, v.Len())
	require.True(t, v.IsEmpty())

	requirePanicsWithAssertion(t, func() { v.EraseRange(0, 1) })
	requirePanicsWithAssertion(t, func() { VectorOf(1, 2).EraseRange(2, 1) })
	requirePanicsWithAssertion(t, func() { VectorOf(1).Erase(1) })
}

type resource struct {
	id   int
	name *string
}

func TestVectorEraseDropsExactlyOnce(t *testing.T) {
	drops := map[int]int{}
	v := NewVector[resource]()
	v.SetDrop(func(r resource) { drops[r.id]++ })
	for i := range 6 {
		name := string(rune('a' + i))
		v.Push(resource{id: i, name: &name})
	}

	v.EraseRange(1, 3)
	require.Equal(t, map[int]int{1: 1, 2: 1}, drops)
	ids := make([]int, 0, v.Len())
	for r := range v.Values() {
		ids = append(ids, r.id)
		require.NotNil(t, r.name, "shifted elements keep their resources")
	}
	require.Equal(t, []int{0, 3, 4, 5}, ids)

	// The two slots vacated at the tail hold no stale references.
	require.Equal(t, resource{}, v.storage[4])
	require.Equal(t, resource{}, v.storage[5])

	v.Clear()
	require.Equal(t, map[int]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, drops)
}

func TestVectorReserve(t *testing.T) {
	v := VectorOf(1, 2)
	v.Reserve(3)
	require.Equal(t, 8, v.Cap(), "reserve never shrinks")

	v.Reserve(50)
	require.Equal(t, 50, v.Cap())
	require.Equal(t, []int{1, 2}, v.Data())
}

func TestVectorShrinkToFit(t *testing.T) {
	v := VectorOf(1, 2, 3)
	require.Equal(t, 12, v.Cap())
	v.ShrinkToFit()
	require.Equal(t, 3, v.Cap())
	require.Equal(t, []int{1, 2, 3}, v.Data())

	v.Push(4)
	require.Equal(t, 12, v.Cap())

	v.Clear()
	v.ShrinkToFit()
	require.Equal(t, 0, v.Cap())
	v.Push(9)
	require.Equal(t, 4, v.Cap())
}

func TestVectorResize(t *testing.T) {
	v := VectorOf(1, 2)
	v.Resize(5)
	require.Equal(t, []int{1, 2, 0, 0, 0}, v.Data())
	require.Equal(t, 8, v.Cap())

	v.Resize(9)
	require.Equal(t, 9, v.Cap(), "resize past capacity sets it to the new size")

	v.ResizeFill(11, 7)
	require.Equal(t, []int{1, 2, 0, 0, 0, 0, 0, 0, 0, 7, 7}, v.Data())

	var dropped []int
	v.SetDrop(func(i int) { dropped = append(dropped, i) })
	v.Resize(2)
	require.Equal(t, []int{1, 2}, v.Data())
	require.Len(t, dropped, 9)
	require.Equal(t, 11, v.Cap())

	requirePanicsWithAssertion(t, func() { v.Resize(-1) })
}

func TestVectorAssign(t *testing.T) {
	var dropped []string
	v := VectorOf("a", "b")
	v.SetDrop(func(s string) { dropped = append(dropped, s) })

	v.Assign(3, "z")
	require.Equal(t, []string{"z", "z", "z"}, v.Data())
	require.Equal(t, []string{"a", "b"}, dropped)
	require.Equal(t, 8, v.Cap())

	v.Assign(9, "y")
	require.Equal(t, 36, v.Cap())

	v.AssignSlice([]string{"p", "q"})
	require.Equal(t, []string{"p", "q"}, v.Data())
	require.Equal(t, "", v.storage[2])
}

func TestVectorAssignSliceFromItself(t *testing.T) {
	v := VectorOf("a", "b", "c")
	v.AssignSlice(v.Data()[1:])
	require.Equal(t, []string{"b", "c"}, v.Data())
}

func TestVectorRelease(t *testing.T) {
	var dropped int
	v := VectorOf(1, 2, 3)
	v.SetDrop(func(int) { dropped++ })
	v.Release()

	require.Equal(t, 3, dropped)
	require.Equal(t, 0, v.Len())
	require.Equal(t, 0, v.Cap())
	require.Nil(t, v.storage)

	v.Push(4)
	require.Equal(t, []int{4}, v.Data())
}

func TestVectorCloneIsIndependent(t *testing.T) {
	a := VectorOf(1, 2, 3, 4, 5)
	b := a.Clone()
	require.True(t, Equal(a, b))
	require.Equal(t, a.Cap(), b.Cap())

	b.Push(6)
	b.Erase(0)
	b.Set(0, 100)
	b.Resize(2)

	require.Equal(t, []int{1, 2, 3, 4, 5}, a.Data())
	require.Equal(t, []int{100, 3}, b.Data())
}

func TestVectorCloneOfUnallocated(t *testing.T) {
	a := NewVector[int]()
	b := a.Clone()
	require.Nil(t, b.storage)
	require.Equal(t, 4, b.Cap())
}

func TestVectorMoveTransfersOwnership(t *testing.T) {
	a := VectorOf("x", "y", "z")
	storage := unsafe.SliceData(a.storage)

	b := a.Move()
	require.Equal(t, []string{"x", "y", "z"}, b.Data())
	require.Same(t, storage, unsafe.SliceData(b.storage), "move must not reallocate")

	require.Equal(t, 0, a.Len())
	require.Equal(t, DefaultCapacity, a.Cap())
	require.Nil(t, a.storage)

	// The source stays usable and never aliases the target.
	a.Push("fresh")
	require.Equal(t, []string{"fresh"}, a.Data())
	require.Equal(t, []string{"x", "y", "z"}, b.Data())
}

func TestVectorMoveDoesNotDrop(t *testing.T) {
	dropped := 0
	a := VectorOf(1, 2)
	a.SetDrop(func(int) { dropped++ })
	b := a.Move()
	require.Equal(t, 0, dropped)
	b.Clear()
	require.Equal(t, 2, dropped, "the drop function travels with the storage")

	a.Push(3)
	a.Clear()
	require.Equal(t, 2, dropped)
}

func TestVectorMoveFrom(t *testing.T) {
	var dropped []int
	dst := VectorOf(7, 8)
	dst.SetDrop(func(i int) { dropped = append(dropped, i) })
	src := VectorOf(1, 2, 3)

	dst.MoveFrom(src)
	require.Equal(t, []int{7, 8}, dropped)
	require.Equal(t, []int{1, 2, 3}, dst.Data())
	require.True(t, src.IsEmpty())

	dst.MoveFrom(dst)
	require.Equal(t, []int{1, 2, 3}, dst.Data())
}

func TestVectorSwap(t *testing.T) {
	a := VectorOf(1, 2, 3)
	b := VectorOf(9)
	a.Swap(b)
	require.Equal(t, []int{9}, a.Data())
	require.Equal(t, 4, a.Cap())
	require.Equal(t, []int{1, 2, 3}, b.Data())
	require.Equal(t, 12, b.Cap())
}

func TestVectorMoveFromCarriesDrop(t *testing.T) {
	var dropped []int
	src := VectorOf(1, 2)
	src.SetDrop(func(i int) { dropped = append(dropped, i) })
	dst := NewVector[int]()

	dst.MoveFrom(src)
	require.Empty(t, dropped)

	dst.Clear()
	require.Equal(t, []int{1, 2}, dropped)

	// src no longer owns the elements or their drop function.
	src.Push(5)
	src.Clear()
	require.Equal(t, []int{1, 2}, dropped)
}

func TestVectorSwapCarriesDrop(t *testing.T) {
	var droppedA, droppedB []int
	a := VectorOf(1, 2)
	a.SetDrop(func(i int) { droppedA = append(droppedA, i) })
	b := VectorOf(9)
	b.SetDrop(func(i int) { droppedB = append(droppedB, i) })

	a.Swap(b)
	b.Clear()
	require.Equal(t, []int{1, 2}, droppedA)
	require.Empty(t, droppedB)

	a.Clear()
	require.Equal(t, []int{9}, droppedB)
}

func TestVectorZeroValue(t *testing.T) {
	var v Vector[*int]
	require.True(t, v.IsEmpty())
	require.Equal(t, 0, v.Cap())
	require.Empty(t, v.Data())

	x := 1
	v.Push(&x)
	v.Push(&x)
	require.Equal(t, DefaultCapacity, v.Cap())

	v.Pop()
	require.Nil(t, v.storage[1], "vacated slot must not keep its pointer")

	var s Vector[string]
	s.PushMany("a", "b", "c")
	s.EraseRange(0, 2)
	require.Equal(t, []string{"c"}, s.Data())
	require.Equal(t, "", s.storage[1])
	require.Equal(t, "", s.storage[2])
}

func TestVectorIterators(t *testing.T) {
	v := VectorOf("a", "b", "c")

	var idx []int
	var vals []string
	for i, s := range v.All() {
		idx = append(idx, i)
		vals = append(vals, s)
	}
	require.Equal(t, []int{0, 1, 2}, idx)
	require.Equal(t, []string{"a", "b", "c"}, vals)

	require.Equal(t, []string{"a", "b", "c"}, slices.Collect(v.Values()))

	var back []string
	for _, s := range v.Backward() {
		back = append(back, s)
	}
	require.Equal(t, []string{"c", "b", "a"}, back)

	var first string
	for s := range v.Values() {
		first = s
		break
	}
	require.Equal(t, "a", first)
}

func TestVectorEqualAndCompare(t *testing.T) {
	require.True(t, Equal(VectorOf(1, 2, 3), VectorOf(1, 2, 3)))
	require.False(t, Equal(VectorOf(1, 2, 3), VectorOf(1, 2)))
	require.False(t, Equal(VectorOf(1, 2, 3), VectorOf(1, 2, 4)))
	require.True(t, Equal(NewVector[int](), NewVectorLen[int](0)))

	require.Equal(t, -1, Compare(VectorOf(1, 2, 3), VectorOf(1, 2, 4)))
	require.Equal(t, -1, Compare(VectorOf(1, 2), VectorOf(1, 2, 3)))
	require.Equal(t, 1, Compare(VectorOf(2), VectorOf(1, 9, 9)))
	require.Equal(t, 0, Compare(VectorOf("a"), VectorOf("a")))

	// Capacity does not take part in comparisons.
	a := VectorOf(1)
	a.Reserve(100)
	require.True(t, Equal(a, VectorOf(1)))
}

func TestVectorCompareNaN(t *testing.T) {
	nan := math.NaN()
	require.False(t, Equal(VectorOf(nan), VectorOf(1.0)))
	require.Equal(t, -1, Compare(VectorOf(nan), VectorOf(1.0)))
	require.Equal(t, 1, Compare(VectorOf(1.0), VectorOf(nan)))
	require.Equal(t, 0, Compare(VectorOf(nan), VectorOf(nan)))
	require.Equal(t, -1, CompareFixed(FixedOf(nan, 2.0), FixedOf(0.0, 1.0)))
}

func TestVectorEqualFunc(t *testing.T) {
	type pair struct{ k, v int }
	a := VectorOf(pair{1, 10}, pair{2, 20})
	b := VectorOf(pair{1, 11}, pair{2, 21})
	byKey := func(x, y pair) bool { return x.k == y.k }
	require.True(t, a.EqualFunc(b, byKey))

	cmpVal := func(x, y pair) int { return x.v - y.v }
	require.Negative(t, a.CompareFunc(b, cmpVal))
}

func TestVectorWithArena(t *testing.T) {
	arena := NewMonotonicArena(WithInitialBufferCount(1), WithMinBufferSize(1024))
	v := NewVector[int32](WithArena(arena))
	for i := range int32(5) {
		v.Push(i)
	}
	require.True(t, isMonotonicArenaPtr(arena, unsafe.Pointer(unsafe.SliceData(v.storage))))
	require.Equal(t, []int32{0, 1, 2, 3, 4}, v.Data())
	require.Equal(t, (4+16)*4, arena.Len(), "the first storage is abandoned in the arena")
}

func TestVectorWithArenaKeepsPointerTypesOnHeap(t *testing.T) {
	arena := NewMonotonicArena(WithInitialBufferCount(1), WithMinBufferSize(1024))
	v := NewVector[string](WithArena(arena))
	v.Push("heap")
	require.Equal(t, 0, arena.Len())
	require.False(t, isMonotonicArenaPtr(arena, unsafe.Pointer(unsafe.SliceData(v.storage))))
}
