// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"reflect"
	"sync"
)

var pointerFreeTypes sync.Map // reflect.Type -> bool

// pointerFree reports whether values of T contain no pointers, i.e. whether
// a stale copy of a T left in unused storage can keep nothing alive.
// Containers skip zeroing vacated slots for such types.
func pointerFree[T any]() bool {
	t := reflect.TypeFor[T]()
	if v, ok := pointerFreeTypes.Load(t); ok {
		return v.(bool)
	}
	free := typePointerFree(t)
	pointerFreeTypes.Store(t, free)
	return free
}

func typePointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || typePointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !typePointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// strings, slices, maps, channels, funcs, interfaces and pointers
		return false
	}
}
