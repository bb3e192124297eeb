// SPDX-License-Identifier: Apache-2.0

package containers

// Option configures where a container takes its storage from.
type Option func(*options)

type options struct {
	arena Arena
}

// WithArena makes the container allocate its storage from a.
// Arena memory is invisible to the garbage collector, so it is only used
// for element types that hold no pointers. Containers of any other element
// type silently fall back to the Go heap.
//
// Storage taken from an arena is valid until the arena is reset or released.
func WithArena(a Arena) Option {
	return func(o *options) {
		o.arena = a
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
