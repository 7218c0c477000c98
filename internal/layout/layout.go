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

// Package layout packs several arrays of differently-typed values into a
// single allocation.
//
// A [Builder] is constructed by repeatedly calling [Extend], once per array.
// Each call places the new array in front of all of the arrays that came
// before it, inserting whatever padding the older arrays' alignment demands.
// The arrays are then recovered from a [Cursor] with [Next], in the reverse
// order they were declared in:
//
//	b := layout.New()
//	b, _ = layout.Extend[uint8](b, 19)
//	b, _ = layout.Extend[uint64](b, 10)
//
//	buf := b.Backing()
//	c := b.Write(buf)
//	words, c := layout.Next[uint64](c)
//	bytes, _ := layout.Next[uint8](c)
//
// The backing block is a []byte, so only pointer-free element types may be
// packed into it; see [unsafex.PointerFree].
package layout

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/bufbuild/protohydrate/internal/ext/bitsx"
	"github.com/bufbuild/protohydrate/internal/ext/unsafex"
)

// ErrOverflow is returned by [Extend] when a layout computation would exceed
// the address space.
var ErrOverflow = errors.New("layout: size overflows address space")

// Builder accumulates a combined layout for a sequence of arrays.
//
// The zero value is not ready to use; call [New].
type Builder struct {
	// Invariant: segments[i].offset is the offset, relative to the start of
	// segment i, at which segments[:i] begin.
	segments []segment
	layout   unsafex.Layout
}

type segment struct {
	count, offset int
	elem          unsafex.Layout
}

// New returns an empty builder: zero-sized, with alignment one.
func New() Builder {
	return Builder{layout: unsafex.Layout{Size: 0, Align: 1}}
}

// Extend returns a builder that additionally holds an array of count values
// of type V.
//
// b is not modified. Returns [ErrOverflow] if the combined layout cannot be
// represented.
//
// Panics if V contains pointers.
func Extend[V any](b Builder, count int) (Builder, error) {
	if !unsafex.PointerFree[V]() {
		var v V
		panic(fmt.Sprintf("layout: %T contains pointers and cannot be packed into a byte buffer", v))
	}
	if count < 0 {
		panic(fmt.Sprintf("layout: negative count %d", count))
	}
	if b.layout.Align == 0 {
		b = New()
	}

	elem := unsafex.LayoutOf[V]()
	array, err := arrayOf(elem, count)
	if err != nil {
		return Builder{}, err
	}
	combined, offset, err := extend(array, b.layout)
	if err != nil {
		return Builder{}, err
	}

	return Builder{
		segments: append(slices.Clip(b.segments), segment{
			count:  count,
			offset: offset,
			elem:   elem,
		}),
		layout: combined,
	}, nil
}

// Layout returns the combined layout of every array in this builder.
func (b Builder) Layout() unsafex.Layout {
	return b.layout
}

// Arrays returns the number of arrays this builder holds.
func (b Builder) Arrays() int {
	return len(b.segments)
}

// Len returns the number of bytes a backing buffer for this builder must
// have: enough to hold the combined layout starting at any address.
func (b Builder) Len() int {
	if b.layout.Align == 0 {
		return 0
	}
	// Cannot overflow: arrayOf and extend keep size <= MaxInt - (align - 1).
	return b.layout.Size + b.layout.Align - 1
}

// Backing allocates a buffer suitable for passing to [Builder.Write].
//
// This is always exactly one allocation, no matter how many arrays were
// declared.
func (b Builder) Backing() []byte {
	return make([]byte, b.Len())
}

// Write returns a cursor for populating the arrays in buf.
//
// Panics if len(buf) != b.Len(); that can only happen if buf was not
// allocated for this builder.
func (b Builder) Write(buf []byte) Cursor {
	return b.cursor(buf)
}

// Read returns a cursor for viewing arrays previously populated through
// [Builder.Write] on a builder with the same layout.
//
// The slices returned by [Next] on this cursor must not be written to.
//
// Panics if len(buf) != b.Len().
func (b Builder) Read(buf []byte) Cursor {
	return b.cursor(buf)
}

func (b Builder) cursor(buf []byte) Cursor {
	if len(buf) != b.Len() {
		panic(fmt.Sprintf("layout: improperly sized buffer: got %d bytes, want %d", len(buf), b.Len()))
	}
	if len(buf) > 0 {
		skip := unsafex.AlignOffset(&buf[0], b.layout.Align)
		buf = buf[skip:]
	}
	return Cursor{segments: b.segments, data: buf}
}

// Cursor walks the arrays of a [Builder] in reverse declaration order.
type Cursor struct {
	segments []segment
	data     []byte
}

// Remaining returns the number of arrays that have not been consumed yet.
func (c Cursor) Remaining() int {
	return len(c.segments)
}

// Next returns the most recently declared array that has not been consumed,
// and a cursor over the arrays declared before it.
//
// V must have the same size and alignment as the type the array was declared
// with; that it is the same type is the caller's responsibility.
//
// Panics if every array has already been consumed.
func Next[V any](c Cursor) ([]V, Cursor) {
	if len(c.segments) == 0 {
		panic("layout: called Next on an exhausted cursor")
	}

	last := c.segments[len(c.segments)-1]
	rest := c.segments[:len(c.segments)-1]
	if elem := unsafex.LayoutOf[V](); elem != last.elem {
		var v V
		panic(fmt.Sprintf("layout: %T has layout %v, but this array was declared with %v", v, elem, last.elem))
	}

	var out []V
	switch {
	case last.count == 0:
	case last.elem.Size == 0:
		out = make([]V, last.count)
	default:
		head := c.data[:last.offset]
		out = unsafex.Cast[V](&head[0], last.count)
	}

	return out, Cursor{segments: rest, data: c.data[last.offset:]}
}

// arrayOf computes the layout of [count]elem.
func arrayOf(elem unsafex.Layout, count int) (unsafex.Layout, error) {
	size, ok := bitsx.CheckedMul(elem.Size, count)
	if !ok || size > math.MaxInt-(elem.Align-1) {
		return unsafex.Layout{}, fmt.Errorf("%w: %d elements of %v", ErrOverflow, count, elem)
	}
	return unsafex.Layout{Size: size, Align: elem.Align}, nil
}

// extend computes the layout of first followed by next, with padding between
// them so that next is aligned. Returns the combined layout and next's
// offset.
//
// The trailing end of the combined layout is not padded.
func extend(first, next unsafex.Layout) (unsafex.Layout, int, error) {
	offset, ok := bitsx.AlignUp(first.Size, next.Align)
	if !ok {
		return unsafex.Layout{}, 0, ErrOverflow
	}
	size, ok := bitsx.CheckedAdd(offset, next.Size)
	align := max(first.Align, next.Align)
	if !ok || size > math.MaxInt-(align-1) {
		return unsafex.Layout{}, 0, ErrOverflow
	}
	return unsafex.Layout{Size: size, Align: align}, offset, nil
}
