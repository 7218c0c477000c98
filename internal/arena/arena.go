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

// Package arena allocates values that are referred to by 32-bit handles
// instead of Go pointers.
//
// Handles contain no GC-visible pointers, so records that link to each other
// through them can be packed into untyped memory, such as the blocks built
// by package layout.
//
// Values never move once allocated: a *T returned by [Arena.At] stays valid,
// and keeps seeing writes made through other lookups of the same handle, for
// as long as the arena is reachable.
package arena

import (
	"fmt"
	"math"
	"math/bits"
)

// Values are stored in chunks whose capacities start at firstChunk and double
// each time, so chunk c begins at index firstChunk * (2^c - 1).
const (
	firstChunkShift = 4
	firstChunk      = 1 << firstChunkShift
)

// Untyped is a handle to a value in some [Arena], with its type erased.
//
// Handle n refers to the nth value allocated on its arena, counting from one.
// The zero value is nil.
type Untyped uint32

// Nil returns whether this is the nil handle.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a handle to a value in an [Arena][T].
//
// The zero value is nil.
type Pointer[T any] Untyped

// Nil returns whether this is the nil handle.
func (p Pointer[T]) Nil() bool {
	return p == 0
}

// Untyped erases this handle's type.
func (p Pointer[T]) Untyped() Untyped {
	return Untyped(p)
}

// In looks up this handle in the arena that allocated it.
//
// Panics if p is nil or out of range for a. A handle from a different arena
// of the same type is not detected.
func (p Pointer[T]) In(a *Arena[T]) *T {
	return a.At(Untyped(p))
}

// Arena holds values of type T.
//
// The zero value is empty and ready to use. An Arena is not synchronized, but
// once no more values are being allocated, any number of goroutines may look
// values up concurrently.
type Arena[T any] struct {
	chunks [][]T // cap(chunks[c]) == firstChunk << c; only the last is not full.
	len    int
}

// New allocates value on this arena and returns a handle to it.
//
// Panics if the arena already holds as many values as a handle can count.
func (a *Arena[T]) New(value T) Pointer[T] {
	if uint64(a.len) >= math.MaxUint32 {
		panic(fmt.Sprintf("arena: cannot allocate more than %d values", a.len))
	}

	c, _ := locate(a.len)
	if c == len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, 0, firstChunk<<c))
	}
	a.chunks[c] = append(a.chunks[c], value)
	a.len++
	return Pointer[T](a.len)
}

// At returns the value p refers to, as if by [Pointer.In].
func (a *Arena[T]) At(p Untyped) *T {
	if p.Nil() {
		panic("arena: lookup of a nil handle")
	}
	i := int(p) - 1
	if i >= a.len {
		panic(fmt.Sprintf("arena: handle %d out of range for arena of %d values", p, a.len))
	}
	c, j := locate(i)
	return &a.chunks[c][j]
}

// Len returns the number of values allocated on this arena. It is also the
// largest valid handle.
func (a *Arena[T]) Len() int {
	return a.len
}

// locate returns the chunk that holds the ith value, and the value's offset
// within that chunk.
//
// Adding firstChunk to i turns the start of chunk c into firstChunk << c, so
// the chunk is given by the position of the highest set bit.
func locate(i int) (chunk, offset int) {
	n := uint(i) + firstChunk
	chunk = bits.Len(n) - 1 - firstChunkShift
	return chunk, int(n) - firstChunk<<chunk
}
