// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	containers "github.com/wundergraph/go-containers"
	"github.com/wundergraph/go-containers/catalog"
)

func registerSelfChecks(cat *catalog.Catalog) error {
	units := []catalog.Unit{
		{Name: "vector/growth", Fn: checkVectorGrowth},
		{Name: "vector/erase", Fn: checkVectorErase},
		{Name: "vector/clone", Fn: checkVectorClone},
		{Name: "vector/move", Fn: checkVectorMove},
		{Name: "vector/arena", Fn: checkVectorArena},
		{Name: "bounded/ceiling", Fn: checkBoundedCeiling},
		{Name: "fixed/order", Fn: checkFixedOrder},
		{Name: "buffer/roundtrip", Fn: checkBufferRoundTrip},
	}
	for _, u := range units {
		if err := cat.Register(u.Name, u.Fn); err != nil {
			return err
		}
	}
	return nil
}

func checkVectorGrowth(context.Context) error {
	v := containers.NewVector[int]()
	for i := 1; i <= 5; i++ {
		v.Push(i)
	}
	if v.Len() != 5 || v.Cap() != 16 {
		return errors.Newf("after 5 pushes: len %d cap %d, want 5 and 16", v.Len(), v.Cap())
	}
	return nil
}

func checkVectorErase(context.Context) error {
	v := containers.VectorOf(10, 20, 30, 40)
	v.Erase(1)
	if !containers.Equal(v, containers.VectorOf(10, 30, 40)) {
		return errors.Newf("erase(1) left %v", v.Data())
	}
	return nil
}

func checkVectorClone(context.Context) error {
	a := containers.VectorOf("a", "b")
	b := a.Clone()
	b.Push("c")
	b.Set(0, "z")
	if a.Len() != 2 || a.At(0) != "a" {
		return errors.Newf("mutating a clone changed the source: %v", a.Data())
	}
	return nil
}

func checkVectorMove(context.Context) error {
	a := containers.VectorOf(1, 2, 3)
	b := a.Move()
	if a.Len() != 0 || b.Len() != 3 {
		return errors.Newf("move left source len %d, target len %d", a.Len(), b.Len())
	}
	return nil
}

func checkVectorArena(context.Context) error {
	a := containers.NewMonotonicArena(containers.WithMinBufferSize(1024))
	defer a.Release()
	v := containers.NewVector[uint64](containers.WithArena(a))
	for i := range uint64(64) {
		v.Push(i)
	}
	if a.Len() == 0 {
		return errors.New("pointer-free vector did not allocate from its arena")
	}
	if v.At(63) != 63 {
		return errors.Newf("arena-backed vector holds %d at 63", v.At(63))
	}
	return nil
}

func checkBoundedCeiling(context.Context) error {
	b := containers.NewBounded[rune](3)
	for _, r := range "abc" {
		if err := b.Append(r); err != nil {
			return err
		}
	}
	if err := b.Append('d'); !errors.Is(err, containers.ErrFull) {
		return errors.Newf("append to a full array returned %v", err)
	}
	var seen strings.Builder
	for r := range b.Values() {
		seen.WriteRune(r)
	}
	if seen.String() != "abc" {
		return errors.Newf("visited %q", seen.String())
	}
	return nil
}

func checkFixedOrder(context.Context) error {
	if containers.CompareFixed(containers.FixedOf(1, 2, 3), containers.FixedOf(1, 2, 4)) >= 0 {
		return errors.New("[1 2 3] is not less than [1 2 4]")
	}
	if containers.CompareFixed(containers.FixedOf(1, 2), containers.FixedOf(1, 2, 3)) >= 0 {
		return errors.New("[1 2] is not less than [1 2 3]")
	}
	return nil
}

func checkBufferRoundTrip(context.Context) error {
	buf := containers.Format("%s-%d", "unit", 7)
	out, err := io.ReadAll(buf)
	if err != nil {
		return err
	}
	if string(out) != "unit-7" {
		return errors.Newf("buffer returned %q", out)
	}
	return nil
}
