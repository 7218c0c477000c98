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

package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protohydrate/internal/arena"
)

func TestPointers(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var a arena.Arena[int]
	assert.Zero(a.Len())

	first := a.New(5)
	held := first.In(&a)
	assert.Equal(arena.Untyped(1), first.Untyped())
	assert.Equal(5, *held)

	var last arena.Pointer[int]
	for i := range 100 {
		last = a.New(i + 6)
	}
	assert.Equal(101, a.Len())
	assert.Equal(arena.Untyped(a.Len()), last.Untyped())

	for p := range arena.Untyped(a.Len() + 1) {
		if p.Nil() {
			continue
		}
		assert.Equal(int(p)+4, *a.At(p), "value at handle %d", p)
	}
	assert.Same(held, first.In(&a))
	assert.Same(a.At(last.Untyped()), last.In(&a))
}

func TestStable(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	type slot struct{ value string }
	var a arena.Arena[slot]

	p := a.New(slot{})
	held := p.In(&a)
	for range 1000 {
		a.New(slot{value: "filler"})
	}

	// Writes through a pointer obtained before growth are visible later.
	p.In(&a).value = "filled"
	assert.Equal("filled", held.value)
	assert.Same(held, a.At(p.Untyped()))
}

func TestNil(t *testing.T) {
	t.Parallel()

	var a arena.Arena[int]
	a.New(1)

	var p arena.Pointer[int]
	require.True(t, p.Nil())
	assert.True(t, p.Untyped().Nil())
	assert.False(t, a.New(2).Nil())

	assert.PanicsWithValue(t, "arena: lookup of a nil handle", func() { p.In(&a) })
	assert.PanicsWithValue(t, "arena: handle 3 out of range for arena of 2 values", func() { a.At(3) })
}
