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

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONName(t *testing.T) {
	t.Parallel()

	tests := []struct{ name, want string }{
		{"foo", "foo"},
		{"foo_bar", "fooBar"},
		{"foo_bar_baz", "fooBarBaz"},
		{"_foo", "Foo"},
		{"foo__bar", "fooBar"},
		{"foo_1", "foo1"},
		{"FooBar", "FooBar"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, jsonName(tt.name), "jsonName(%q)", tt.name)
	}
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "foo.Bar", typeName(".foo.Bar"))
	assert.Equal(t, "foo.Bar", typeName("foo.Bar"))
	assert.Empty(t, typeName(""))
	assert.Equal(t, "a.b", join("a", "b"))
	assert.Equal(t, "b", join("", "b"))
}
