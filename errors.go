// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"github.com/cockroachdb/errors"
)

// ErrFull is returned by Bounded.Append once every slot of the array is in use.
// The array is left unchanged.
var ErrFull = errors.New("containers: bounded array is full")

// Contract violations are programming errors, not conditions a caller can
// recover from. They panic with an assertion failure error in every build,
// so a bounds violation looks the same in tests and in production.

func checkIndex(op string, i, n int) {
	if uint(i) >= uint(n) {
		panic(errors.AssertionFailedf("containers: %s: index %d out of range [0:%d]", op, i, n))
	}
}

func checkRange(op string, first, last, n int) {
	if first < 0 || last < first || last > n {
		panic(errors.AssertionFailedf("containers: %s: range [%d:%d] out of range [0:%d]", op, first, last, n))
	}
}

func checkSize(op string, n int) {
	if n < 0 {
		panic(errors.AssertionFailedf("containers: %s: negative size %d", op, n))
	}
}

func checkPositive(op string, n int) {
	if n <= 0 {
		panic(errors.AssertionFailedf("containers: %s: size must be positive, got %d", op, n))
	}
}
