// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// package unsafex contains extensions to Go's package unsafe.
//
// Importing this package should be treated as equivalent to importing unsafe.
package unsafex

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Layout is the layout of a type.
//
// This is a more convenient abstraction that manipulating the size and
// alignment separately.
type Layout struct {
	Size, Align int
}

// LayoutOf returns the layout of some type.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{
		Size:  int(unsafe.Sizeof(v)),
		Align: int(unsafe.Alignof(v)),
	}
}

// String implements [fmt.Stringer].
func (l Layout) String() string {
	return fmt.Sprintf("{size: %d, align: %d}", l.Size, l.Align)
}

// PointerFree returns whether values of T contain no pointers the garbage
// collector would need to trace.
//
// Only pointer-free values may be stored in memory that the GC believes to be
// untyped bytes, such as a []byte.
func PointerFree[T any]() bool {
	return pointerFree(reflect.TypeFor[T]())
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true

	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())

	case reflect.Struct:
		for i := range t.NumField() {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true

	default:
		// Pointers, strings, slices, maps, channels, funcs, interfaces and
		// unsafe.Pointer all hold GC-visible pointers.
		return false
	}
}

// Cast reinterprets the first n values of type T starting at p.
//
// p must be suitably aligned for T and point into an allocation large enough
// to hold n values of T. This function has the same safety caveats as
// [unsafe.Slice].
func Cast[T any](p *byte, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(p)), n)
}

// AlignOffset returns the number of bytes that must be skipped from p to
// reach an address that is a multiple of align, which must be a power of two.
func AlignOffset(p *byte, align int) int {
	addr := uintptr(unsafe.Pointer(p))
	return int(-addr & uintptr(align-1))
}
