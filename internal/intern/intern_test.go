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

package intern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/protohydrate/internal/intern"
)

func TestIntern(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	data := []string{
		"",
		"a",
		"foo.Bar",
		"foo.Bar.baz",
		"google/protobuf/descriptor.proto",
		"a",
	}

	var table intern.Table
	ids := make([]intern.ID, len(data))
	for i, s := range data {
		ids[i] = table.Intern(s)
		assert.Equal(s, table.Value(ids[i]), "id: %v", ids[i])
	}

	assert.Equal(intern.ID(0), ids[0])
	assert.Equal(ids[1], ids[5])
	assert.Equal(4, table.Len())

	id, ok := table.Query("foo.Bar")
	assert.True(ok)
	assert.Equal(ids[2], id)

	_, ok = table.Query("missing")
	assert.False(ok)
}

func TestMap(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var table intern.Table
	m := make(intern.Map[int])

	_, inserted := m.AddID(table.Intern("x"), 1)
	assert.True(inserted)
	v, inserted := m.AddID(table.Intern("x"), 2)
	assert.False(inserted)
	assert.Equal(1, v)

	v, ok := m.Get(&table, "x")
	assert.True(ok)
	assert.Equal(1, v)
	_, ok = m.Get(&table, "y")
	assert.False(ok)
}
