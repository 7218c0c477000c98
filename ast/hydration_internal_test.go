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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderStable(t *testing.T) {
	t.Parallel()

	h := NewHydration()
	release := h.enter()
	p1, err := placeholder(h, tables.messages, "pkg.M")
	require.NoError(t, err)
	p2, err := placeholder(h, tables.messages, "pkg.M")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	_, err = placeholder(h, tables.enums, "pkg.M")
	require.ErrorIs(t, err, ErrTypeMismatch)
	release()

	assert.Equal(t, []string{"pkg.M"}, h.Pending())
	require.NoError(t, h.Add("pkg.M", &MessageData{Name: "M", File: "a.proto"}))
	require.NoError(t, h.Add("a.proto", &FileData{Name: "a.proto", Messages: []string{"pkg.M"}}))
	assert.Empty(t, h.Pending())

	// The placeholder now sees what Add wrote.
	raw := p1.In(&h.nodes.messages)
	assert.Equal(t, "M", h.names.Value(raw.name))
	assert.Equal(t, "pkg.M", h.names.Value(raw.fqn))

	p3, err := placeholder(h, tables.messages, "pkg.M")
	require.NoError(t, err)
	assert.Equal(t, p1, p3)

	a, err := h.Finish()
	require.NoError(t, err)
	assert.Equal(t, a.Messages().At(0), wrapMessage(a, p1))
	assert.Equal(t, a.Files().At(0).Messages().At(0), wrapMessage(a, p1))
}

func TestConcurrentWriter(t *testing.T) {
	t.Parallel()

	h := NewHydration()
	release := h.enter()

	done := make(chan any)
	go func() {
		defer func() { done <- recover() }()
		h.Len()
	}()
	assert.NotNil(t, <-done)

	release()
	assert.NotPanics(t, func() { h.Len() })
}
