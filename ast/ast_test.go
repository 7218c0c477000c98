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
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protohydrate/ast"
	"github.com/bufbuild/protohydrate/seq"
)

// fooSchema is roughly what foo/v1/foo.proto below would produce:
//
//	syntax = "proto3";
//	package foo.v1;
//
//	message Foo {
//	  int64 id = 1;
//	  Color color = 2;
//	  Foo child = 3;
//	  repeated string tags = 4;
//	  map<string, string> labels = 5;
//	  oneof choice { string name = 6; }
//	  optional string nickname = 7;
//	}
//	enum Color { RED = 0; BLUE = 1 [deprecated = true]; }
//	service FooService { rpc Get(Foo) returns (stream Foo); }
//	extend Foo { int32 weight = 100; }
func fooSchema() []decl {
	const file = "foo/v1/foo.proto"
	field := func(name string, number int32, kind protoreflect.Kind, typeName string) *ast.FieldData {
		return &ast.FieldData{
			Name:        name,
			Message:     "foo.v1.Foo",
			Number:      number,
			Cardinality: protoreflect.Optional,
			Type:        kind,
			TypeName:    typeName,
			JSONName:    name,
		}
	}

	tags := field("tags", 4, protoreflect.StringKind, "")
	tags.Cardinality = protoreflect.Repeated
	labels := field("labels", 5, protoreflect.MessageKind, "foo.v1.Foo.LabelsEntry")
	labels.Cardinality = protoreflect.Repeated
	name := field("name", 6, protoreflect.StringKind, "")
	name.Oneof = "foo.v1.Foo.choice"
	nickname := field("nickname", 7, protoreflect.StringKind, "")
	nickname.Oneof = "foo.v1.Foo._nickname"
	nickname.Proto3Optional = true

	return []decl{
		{"foo.v1.FooService.Get", &ast.MethodData{
			Input:           "foo.v1.Foo",
			Output:          "foo.v1.Foo",
			File:            file,
			Name:            "Get",
			ServerStreaming: true,
		}},
		{"foo.v1.Foo.id", field("id", 1, protoreflect.Int64Kind, "")},
		{"foo.v1.Foo.color", field("color", 2, protoreflect.EnumKind, "foo.v1.Color")},
		{"foo.v1.Foo.child", field("child", 3, protoreflect.MessageKind, "foo.v1.Foo")},
		{"foo.v1.Foo.tags", tags},
		{"foo.v1.Foo.labels", labels},
		{"foo.v1.Foo.name", name},
		{"foo.v1.Foo.nickname", nickname},
		{"foo.v1.Foo", &ast.MessageData{
			Name: "Foo",
			File: file,
			Fields: []string{
				"foo.v1.Foo.id", "foo.v1.Foo.color", "foo.v1.Foo.child", "foo.v1.Foo.tags",
				"foo.v1.Foo.labels", "foo.v1.Foo.name", "foo.v1.Foo.nickname",
			},
			Oneofs:   []string{"foo.v1.Foo.choice", "foo.v1.Foo._nickname"},
			Messages: []string{"foo.v1.Foo.LabelsEntry"},
		}},
		{"foo.v1.Foo.choice", &ast.OneofData{
			Name:    "choice",
			Message: "foo.v1.Foo",
			Fields:  []string{"foo.v1.Foo.name"},
		}},
		{"foo.v1.Foo._nickname", &ast.OneofData{
			Name:      "_nickname",
			Message:   "foo.v1.Foo",
			Fields:    []string{"foo.v1.Foo.nickname"},
			Synthetic: true,
		}},
		{"foo.v1.Foo.LabelsEntry", &ast.MessageData{
			Name:     "LabelsEntry",
			File:     file,
			Parent:   "foo.v1.Foo",
			Fields:   []string{"foo.v1.Foo.LabelsEntry.key", "foo.v1.Foo.LabelsEntry.value"},
			MapEntry: true,
		}},
		{"foo.v1.Foo.LabelsEntry.key", &ast.FieldData{
			Name: "key", Message: "foo.v1.Foo.LabelsEntry", Number: 1,
			Cardinality: protoreflect.Optional, Type: protoreflect.StringKind, JSONName: "key",
		}},
		{"foo.v1.Foo.LabelsEntry.value", &ast.FieldData{
			Name: "value", Message: "foo.v1.Foo.LabelsEntry", Number: 2,
			Cardinality: protoreflect.Optional, Type: protoreflect.StringKind, JSONName: "value",
		}},
		{"foo.v1.Color", &ast.EnumData{
			Name:   "Color",
			File:   file,
			Values: []string{"foo.v1.RED", "foo.v1.BLUE"},
		}},
		{"foo.v1.RED", &ast.EnumValueData{Name: "RED", Enum: "foo.v1.Color", Number: 0}},
		{"foo.v1.BLUE", &ast.EnumValueData{Name: "BLUE", Enum: "foo.v1.Color", Number: 1, Deprecated: true}},
		{"foo.v1.FooService", &ast.ServiceData{
			Name:    "FooService",
			File:    file,
			Methods: []string{"foo.v1.FooService.Get"},
		}},
		{"foo.v1.weight", &ast.ExtensionData{
			Name:        "weight",
			File:        file,
			Extendee:    "foo.v1.Foo",
			Number:      100,
			Cardinality: protoreflect.Optional,
			Type:        protoreflect.Int32Kind,
			JSONName:    "[foo.v1.weight]",
		}},
		{file, &ast.FileData{
			Name:       file,
			Package:    "foo.v1",
			Syntax:     "proto3",
			Messages:   []string{"foo.v1.Foo"},
			Enums:      []string{"foo.v1.Color"},
			Services:   []string{"foo.v1.FooService"},
			Extensions: []string{"foo.v1.weight"},
		}},
		{"foo.v1", &ast.PackageData{Name: "foo.v1", Files: []string{file}}},
	}
}

func names[N interface{ FullName() string }](s seq.Indexer[N]) []string {
	var out []string
	for n := range seq.Values(s) {
		out = append(out, n.FullName())
	}
	return out
}

func TestSortedByName(t *testing.T) {
	t.Parallel()

	a, err := hydrate(t, fooSchema()...)
	require.NoError(t, err)

	tests := []struct {
		kind string
		got  []string
		want []string
	}{
		{"packages", names(a.Packages()), []string{"foo.v1"}},
		{"files", names(a.Files()), []string{"foo/v1/foo.proto"}},
		{"messages", names(a.Messages()), []string{"foo.v1.Foo", "foo.v1.Foo.LabelsEntry"}},
		{"enums", names(a.Enums()), []string{"foo.v1.Color"}},
		{"values", names(a.EnumValues()), []string{"foo.v1.BLUE", "foo.v1.RED"}},
		{"services", names(a.Services()), []string{"foo.v1.FooService"}},
		{"methods", names(a.Methods()), []string{"foo.v1.FooService.Get"}},
		{"fields", names(a.Fields()), []string{
			"foo.v1.Foo.LabelsEntry.key", "foo.v1.Foo.LabelsEntry.value",
			"foo.v1.Foo.child", "foo.v1.Foo.color", "foo.v1.Foo.id", "foo.v1.Foo.labels",
			"foo.v1.Foo.name", "foo.v1.Foo.nickname", "foo.v1.Foo.tags",
		}},
		{"oneofs", names(a.Oneofs()), []string{"foo.v1.Foo._nickname", "foo.v1.Foo.choice"}},
		{"extensions", names(a.Extensions()), []string{"foo.v1.weight"}},
	}
	total := 0
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.got); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tt.kind, diff)
		}
		total += len(tt.got)
	}

	assert.Equal(t, total, a.Len())
	all := names(a.Nodes())
	assert.IsIncreasing(t, all)
	assert.Len(t, all, total)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, err := hydrate(t, fooSchema()...)
	require.NoError(t, err)

	foo := a.Lookup("foo.v1.Foo")
	assert.Equal(ast.KindMessage, foo.Kind())
	assert.Equal("message foo.v1.Foo", foo.String())
	assert.Equal(a.Messages().At(0), foo.AsMessage())
	assert.Equal(foo, foo.AsMessage().Node())
	assert.True(foo.AsEnum().IsZero())
	assert.True(foo.AsField().IsZero())

	red := a.Lookup("foo.v1.RED").AsEnumValue()
	assert.Equal("RED", red.Name())
	assert.Equal(a.Lookup("foo.v1.Color").AsEnum(), red.Enum())

	assert.True(a.Lookup("foo.v1.Bar").IsZero())
	assert.Equal(ast.KindInvalid, a.Lookup("").Kind())

	var scoped []string
	for n := range a.Range("foo.v1.Foo.") {
		scoped = append(scoped, n.FullName())
	}
	assert.Equal([]string{
		"foo.v1.Foo.LabelsEntry", "foo.v1.Foo.LabelsEntry.key", "foo.v1.Foo.LabelsEntry.value",
		"foo.v1.Foo._nickname", "foo.v1.Foo.child", "foo.v1.Foo.choice", "foo.v1.Foo.color",
		"foo.v1.Foo.id", "foo.v1.Foo.labels", "foo.v1.Foo.name", "foo.v1.Foo.nickname", "foo.v1.Foo.tags",
	}, scoped)
}

func TestReferences(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, err := hydrate(t, fooSchema()...)
	require.NoError(t, err)

	pkg := a.Packages().At(0)
	file := a.Files().At(0)
	foo := a.Lookup("foo.v1.Foo").AsMessage()
	entry := a.Lookup("foo.v1.Foo.LabelsEntry").AsMessage()

	assert.Equal(pkg, file.Package())
	assert.Equal([]ast.File{file}, seq.ToSlice(pkg.Files()))
	assert.False(pkg.IsWellKnown())
	assert.Equal("proto3", file.Syntax())
	assert.Equal(file.Name(), file.Path())
	assert.Zero(file.Dependencies().Len())

	assert.Equal(foo, entry.Parent())
	assert.True(foo.Parent().IsZero())
	assert.Equal([]ast.Message{entry}, seq.ToSlice(foo.Messages()))
	assert.Equal(7, foo.Fields().Len())
	assert.Equal("id", foo.Fields().At(0).Name())

	assert.True(entry.IsMapEntry())
	assert.Equal("key", entry.MapKey().Name())
	assert.Equal("value", entry.MapValue().Name())
	assert.True(foo.MapKey().IsZero())

	child := a.Lookup("foo.v1.Foo.child").AsField()
	assert.Equal(foo, child.Message())
	assert.Equal(foo, child.MessageType())
	assert.True(child.EnumType().IsZero())

	color := a.Lookup("foo.v1.Foo.color").AsField()
	assert.Equal(a.Enums().At(0), color.EnumType())
	assert.Equal(
		[]string{"RED", "BLUE"},
		[]string{color.EnumType().Values().At(0).Name(), color.EnumType().Values().At(1).Name()},
	)
	assert.True(color.EnumType().ValueByNumber(1).IsDeprecated())
	assert.True(color.EnumType().ValueByNumber(2).IsZero())

	get := a.Methods().At(0)
	assert.Equal(foo, get.Input())
	assert.Equal(foo, get.Output())
	assert.False(get.IsClientStreaming())
	assert.True(get.IsServerStreaming())
	assert.Equal([]ast.Method{get}, seq.ToSlice(a.Services().At(0).Methods()))

	weight := a.Extensions().At(0)
	assert.Equal(foo, weight.Extendee())
	assert.True(weight.Parent().IsZero())
	assert.Equal(int32(100), weight.Number())
	assert.Equal(protoreflect.Int32Kind, weight.Type())
	assert.Equal("[foo.v1.weight]", weight.JSONName())

	choice := a.Lookup("foo.v1.Foo.choice").AsOneof()
	assert.Equal(foo, choice.Message())
	assert.False(choice.IsSynthetic())
	assert.Equal(choice, a.Lookup("foo.v1.Foo.name").AsField().Oneof())
}

func TestVariant(t *testing.T) {
	t.Parallel()

	a, err := hydrate(t, fooSchema()...)
	require.NoError(t, err)

	tests := []struct {
		field string
		want  ast.FieldVariant
	}{
		{"foo.v1.Foo.id", ast.VariantScalar},
		{"foo.v1.Foo.color", ast.VariantEnum},
		{"foo.v1.Foo.child", ast.VariantEmbed},
		{"foo.v1.Foo.tags", ast.VariantRepeated},
		{"foo.v1.Foo.labels", ast.VariantMap},
		{"foo.v1.Foo.name", ast.VariantOneof},
		{"foo.v1.Foo.nickname", ast.VariantScalar},
		{"foo.v1.Foo.LabelsEntry.key", ast.VariantScalar},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()

			field := a.Lookup(tt.field).AsField()
			require.False(t, field.IsZero())
			assert.Equal(t, tt.want, field.Variant())
		})
	}

	assert.Equal(t, ast.VariantInvalid, ast.Field{}.Variant())
}

func TestZeroNodes(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var msg ast.Message
	assert.True(msg.IsZero())
	assert.Nil(msg.AST())
	assert.Empty(msg.FullName())
	assert.Empty(msg.Name())
	assert.False(msg.IsDeprecated())
	assert.True(msg.Node().IsZero())

	assert.Panics(func() { msg.File() })
	assert.Panics(func() { ast.Method{}.Input() })
	assert.Panics(func() { ast.Field{}.Number() })
	assert.Panics(func() { ast.EnumValue{}.Number() })

	a, err := hydrate(t, fooSchema()...)
	require.NoError(t, err)
	assert.True(a.Lookup("foo.v1.Foo").AsMessage().Parent().IsZero())
	assert.True(a.Lookup("foo.v1.Foo").AsEnum().IsZero())
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	a, err := hydrate(t, fooSchema()...)
	require.NoError(t, err)

	want := names(a.Nodes())
	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got []string
			for n := range seq.Values(a.Nodes()) {
				got = append(got, a.Lookup(n.FullName()).FullName())
			}
			results[i] = got
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestDependencyOrder(t *testing.T) {
	t.Parallel()

	file := func(name string, deps ...string) decl {
		return decl{name, &ast.FileData{Name: name, Syntax: "proto3", Dependencies: deps}}
	}
	paths := func(files []ast.File) []string {
		var out []string
		for _, f := range files {
			out = append(out, f.Path())
		}
		return out
	}

	a, err := hydrate(t,
		file("a.proto", "c.proto", "b.proto"),
		file("b.proto", "d.proto"),
		file("c.proto", "d.proto"),
		file("d.proto"),
		file("e.proto"),
	)
	require.NoError(t, err)
	files, err := a.DependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"d.proto", "b.proto", "c.proto", "a.proto", "e.proto"}, paths(files))

	a, err = hydrate(t,
		file("a.proto", "b.proto"),
		file("b.proto", "a.proto"),
	)
	require.NoError(t, err)
	_, err = a.DependencyOrder()
	require.ErrorIs(t, err, ast.ErrImportCycle)
	assert.EqualError(t, err, "toposort: cycle: a.proto -> b.proto -> a.proto")
}
