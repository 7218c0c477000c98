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

package ast_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protohydrate/ast"
	"github.com/bufbuild/protohydrate/seq"
)

type decl struct {
	name string
	data ast.Data
}

// hydrate adds every decl, in order, and finishes.
func hydrate(t *testing.T, decls ...decl) (*ast.AST, error) {
	t.Helper()

	h := ast.NewHydration()
	for _, d := range decls {
		require.NoError(t, h.Add(d.name, d.data), "adding %s", d.name)
	}
	return h.Finish()
}

func rpc() []decl {
	return []decl{
		{"M", &ast.MethodData{Input: "Req", Output: "Resp", File: "f.proto", Name: "M"}},
		{"Req", &ast.MessageData{Name: "Req", File: "f.proto"}},
		{"Resp", &ast.MessageData{Name: "Resp", File: "f.proto"}},
		{"f.proto", &ast.FileData{Name: "f.proto", Syntax: "proto3", Messages: []string{"Req", "Resp"}}},
	}
}

func TestForwardReferences(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, err := hydrate(t, rpc()...)
	require.NoError(t, err)

	require.Equal(t, 1, a.Methods().Len())
	method := a.Methods().At(0)
	assert.Equal("M", method.Name())

	require.Equal(t, 2, a.Messages().Len())
	assert.Equal(a.Messages().At(0), method.Input())
	assert.Equal(a.Messages().At(1), method.Output())
	assert.True(a.Messages().At(0) == method.Input(), "Input is not the same node")
	assert.Equal("Req", method.Input().FullName())
	assert.Equal("Resp", method.Output().FullName())
	assert.NotEqual(method.Input(), method.Output())

	file := a.Files().At(0)
	assert.Equal(file, method.File())
	assert.Equal(file, method.Input().File())
	assert.Equal([]ast.Message{method.Input(), method.Output()}, seq.ToSlice(file.Messages()))
	assert.Equal(4, a.Len())
}

func TestAnyOrder(t *testing.T) {
	t.Parallel()

	decls := rpc()
	want, err := hydrate(t, decls...)
	require.NoError(t, err)

	reversed := slices.Clone(decls)
	slices.Reverse(reversed)
	rotated := append(slices.Clone(decls[2:]), decls[:2]...)

	for _, order := range [][]decl{reversed, rotated} {
		got, err := hydrate(t, order...)
		require.NoError(t, err)

		names := func(a *ast.AST) []string {
			var out []string
			for n := range seq.Values(a.Nodes()) {
				out = append(out, n.String())
			}
			return out
		}
		assert.Equal(t, names(want), names(got))
		assert.Equal(t, "Req", got.Methods().At(0).Input().FullName())
	}
}

func TestDuplicate(t *testing.T) {
	t.Parallel()

	h := ast.NewHydration()
	require.NoError(t, h.Add("f.proto", &ast.FileData{Name: "f.proto", Syntax: "proto2"}))
	err := h.Add("f.proto", &ast.FileData{Name: "f.proto", Syntax: "proto3"})
	require.ErrorIs(t, err, ast.ErrPresent)

	var astErr *ast.Error
	require.ErrorAs(t, err, &astErr)
	assert.Equal(t, "f.proto", astErr.Name)
	assert.Equal(t, ast.KindFile, astErr.Kind)
	assert.Equal(t, `ast: file "f.proto" is already declared`, err.Error())

	// The failed Add does not poison the hydration.
	a, err := h.Finish()
	require.NoError(t, err)
	assert.Equal(t, "proto2", a.Files().At(0).Syntax())
}

func TestKindMismatch(t *testing.T) {
	t.Parallel()

	t.Run("declared", func(t *testing.T) {
		t.Parallel()

		h := ast.NewHydration()
		require.NoError(t, h.Add("x", &ast.MessageData{Name: "x", File: "f.proto"}))
		err := h.Add("x", &ast.EnumData{Name: "x", File: "f.proto"})
		require.ErrorIs(t, err, ast.ErrTypeMismatch)

		var astErr *ast.Error
		require.ErrorAs(t, err, &astErr)
		assert.Equal(t, ast.KindEnum, astErr.Kind)
		assert.Equal(t, ast.KindMessage, astErr.Bound)
		assert.Equal(t, `ast: cannot use "x" as enum: it is already bound to message`, err.Error())
	})

	t.Run("referenced", func(t *testing.T) {
		t.Parallel()

		h := ast.NewHydration()
		require.NoError(t, h.Add("x", &ast.EnumData{Name: "x", File: "f.proto"}))
		require.NoError(t, h.Add("f.proto", &ast.FileData{Name: "f.proto", Enums: []string{"x"}}))

		// Referring to an enum as a message poisons the hydration.
		err := h.Add("M", &ast.MethodData{Input: "x", Output: "x", File: "f.proto", Name: "M"})
		require.ErrorIs(t, err, ast.ErrTypeMismatch)

		_, err = h.Finish()
		require.ErrorIs(t, err, ast.ErrTypeMismatch)
	})
}

func TestMismatchAndIncomplete(t *testing.T) {
	t.Parallel()

	h := ast.NewHydration()
	require.NoError(t, h.Add("x", &ast.EnumData{Name: "x", File: "f.proto"}))
	require.NoError(t, h.Add("f.proto", &ast.FileData{Name: "f.proto", Enums: []string{"x"}}))

	// New becomes a placeholder before x fails to resolve as a message.
	err := h.Add("M", &ast.MethodData{Input: "New", Output: "x", File: "f.proto", Name: "M"})
	require.ErrorIs(t, err, ast.ErrTypeMismatch)
	assert.Equal(t, []string{"New"}, h.Pending())

	_, err = h.Finish()
	require.ErrorIs(t, err, ast.ErrTypeMismatch)
	require.ErrorIs(t, err, ast.ErrIncomplete)

	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	errs := joined.Unwrap()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ast.ErrTypeMismatch)
	assert.EqualError(t, errs[1], `ast: message "New" is referenced but never declared`)
}

func TestIncomplete(t *testing.T) {
	t.Parallel()

	h := ast.NewHydration()
	require.NoError(t, h.Add("M", &ast.MethodData{Input: "Req", Output: "Resp", File: "f.proto", Name: "M"}))
	require.NoError(t, h.Add("Resp", &ast.MessageData{Name: "Resp", File: "f.proto"}))
	require.NoError(t, h.Add("f.proto", &ast.FileData{Name: "f.proto"}))
	assert.Equal(t, []string{"Req"}, h.Pending())
	assert.Equal(t, 4, h.Len())

	a, err := h.Finish()
	assert.Nil(t, a)
	require.ErrorIs(t, err, ast.ErrIncomplete)

	var astErr *ast.Error
	require.ErrorAs(t, err, &astErr)
	assert.Equal(t, "Req", astErr.Name)
	assert.Equal(t, ast.KindMessage, astErr.Kind)
}

func TestIncompleteOrder(t *testing.T) {
	t.Parallel()

	h := ast.NewHydration()
	require.NoError(t, h.Add("f.proto", &ast.FileData{
		Name:     "f.proto",
		Messages: []string{"c", "a"},
		Enums:    []string{"b"},
	}))

	_, err := h.Finish()
	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)

	var names []string
	for _, err := range joined.Unwrap() {
		var astErr *ast.Error
		require.True(t, errors.As(err, &astErr))
		require.ErrorIs(t, err, ast.ErrIncomplete)
		names = append(names, astErr.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestFinished(t *testing.T) {
	t.Parallel()

	h := ast.NewHydration()
	_, err := h.Finish()
	require.NoError(t, err)

	assert.Panics(t, func() { _ = h.Add("f.proto", &ast.FileData{Name: "f.proto"}) })
	assert.Panics(t, func() { _, _ = h.Finish() })
	assert.Panics(t, func() { h.Pending() })

	// A failed Finish consumes the hydration too.
	h = ast.NewHydration()
	require.NoError(t, h.Add("M", &ast.MethodData{Input: "Req", Output: "Req", File: "f.proto", Name: "M"}))
	_, err = h.Finish()
	require.Error(t, err)
	assert.Panics(t, func() { _ = h.Add("Req", &ast.MessageData{Name: "Req", File: "f.proto"}) })
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	var h ast.Hydration
	a, err := h.Finish()
	require.NoError(t, err)
	assert.Zero(t, a.Len())
	assert.Zero(t, a.Messages().Len())
	assert.True(t, a.Lookup("foo").IsZero())
}
