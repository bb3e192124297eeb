// SPDX-License-Identifier: Apache-2.0

// Package containers provides owning, exception-free containers:
// Vector, a growable array that quadruples its capacity on overflow;
// Bounded, a fixed-capacity append-only array; and Fixed, an array whose
// size is set once at construction.
//
// Storage can be drawn from an Arena for pointer-free element types.
// None of the containers is safe for concurrent use; CriticalSection is
// available to callers that need to share one.
//
// Contract violations such as out-of-range indexes panic with an
// assertion failure error (see github.com/cockroachdb/errors). Conditions a
// caller is expected to handle, like appending to a full Bounded, are
// reported through returned errors.
package containers
