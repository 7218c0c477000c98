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

// Package dump renders an [ast.AST] in human-readable form.
package dump

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/protohydrate/ast"
	"github.com/bufbuild/protohydrate/seq"
)

// YAML renders every node of a as a YAML document, grouped by kind and
// sorted by name. References to other nodes are rendered as their full
// names.
func YAML(a *ast.AST) (string, error) {
	doc := document{
		Packages:   collect(a.Packages(), packageEntry),
		Files:      collect(a.Files(), fileEntry),
		Messages:   collect(a.Messages(), messageEntry),
		Enums:      collect(a.Enums(), enumEntry),
		EnumValues: collect(a.EnumValues(), enumValueEntry),
		Services:   collect(a.Services(), serviceEntry),
		Methods:    collect(a.Methods(), methodEntry),
		Fields:     collect(a.Fields(), fieldEntry),
		Oneofs:     collect(a.Oneofs(), oneofEntry),
		Extensions: collect(a.Extensions(), extensionEntry),
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("dump: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("dump: %w", err)
	}
	return buf.String(), nil
}

type document struct {
	Packages   []pkgYAML       `yaml:"packages,omitempty"`
	Files      []fileYAML      `yaml:"files,omitempty"`
	Messages   []messageYAML   `yaml:"messages,omitempty"`
	Enums      []enumYAML      `yaml:"enums,omitempty"`
	EnumValues []enumValueYAML `yaml:"enum_values,omitempty"`
	Services   []serviceYAML   `yaml:"services,omitempty"`
	Methods    []methodYAML    `yaml:"methods,omitempty"`
	Fields     []fieldYAML     `yaml:"fields,omitempty"`
	Oneofs     []oneofYAML     `yaml:"oneofs,omitempty"`
	Extensions []extensionYAML `yaml:"extensions,omitempty"`
}

type pkgYAML struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files,flow,omitempty"`
}

type fileYAML struct {
	Name              string   `yaml:"name"`
	Package           string   `yaml:"package,omitempty"`
	Syntax            string   `yaml:"syntax,omitempty"`
	SyntaxUnspecified bool     `yaml:"syntax_unspecified,omitempty"`
	Dependencies      []string `yaml:"dependencies,flow,omitempty"`
	Unused            []string `yaml:"unused_dependencies,flow,omitempty"`
	Messages          []string `yaml:"messages,flow,omitempty"`
	Enums             []string `yaml:"enums,flow,omitempty"`
	Services          []string `yaml:"services,flow,omitempty"`
	Extensions        []string `yaml:"extensions,flow,omitempty"`
	Deprecated        bool     `yaml:"deprecated,omitempty"`
}

type messageYAML struct {
	Name       string   `yaml:"name"`
	File       string   `yaml:"file"`
	Parent     string   `yaml:"parent,omitempty"`
	Fields     []string `yaml:"fields,flow,omitempty"`
	Oneofs     []string `yaml:"oneofs,flow,omitempty"`
	Messages   []string `yaml:"messages,flow,omitempty"`
	Enums      []string `yaml:"enums,flow,omitempty"`
	Extensions []string `yaml:"extensions,flow,omitempty"`
	MapEntry   bool     `yaml:"map_entry,omitempty"`
	Deprecated bool     `yaml:"deprecated,omitempty"`
}

type enumYAML struct {
	Name       string   `yaml:"name"`
	File       string   `yaml:"file"`
	Parent     string   `yaml:"parent,omitempty"`
	Values     []string `yaml:"values,flow,omitempty"`
	Deprecated bool     `yaml:"deprecated,omitempty"`
}

type enumValueYAML struct {
	Name       string `yaml:"name"`
	Enum       string `yaml:"enum"`
	Number     int32  `yaml:"number"`
	Deprecated bool   `yaml:"deprecated,omitempty"`
}

type serviceYAML struct {
	Name       string   `yaml:"name"`
	File       string   `yaml:"file"`
	Methods    []string `yaml:"methods,flow,omitempty"`
	Deprecated bool     `yaml:"deprecated,omitempty"`
}

type methodYAML struct {
	Name            string `yaml:"name"`
	File            string `yaml:"file"`
	Input           string `yaml:"input"`
	Output          string `yaml:"output"`
	ClientStreaming bool   `yaml:"client_streaming,omitempty"`
	ServerStreaming bool   `yaml:"server_streaming,omitempty"`
	Deprecated      bool   `yaml:"deprecated,omitempty"`
}

type fieldYAML struct {
	Name           string `yaml:"name"`
	Message        string `yaml:"message"`
	Number         int32  `yaml:"number"`
	Cardinality    string `yaml:"cardinality"`
	Type           string `yaml:"type"`
	Variant        string `yaml:"variant"`
	Oneof          string `yaml:"oneof,omitempty"`
	JSONName       string `yaml:"json_name,omitempty"`
	Proto3Optional bool   `yaml:"proto3_optional,omitempty"`
	Deprecated     bool   `yaml:"deprecated,omitempty"`
}

type oneofYAML struct {
	Name      string   `yaml:"name"`
	Message   string   `yaml:"message"`
	Fields    []string `yaml:"fields,flow,omitempty"`
	Synthetic bool     `yaml:"synthetic,omitempty"`
}

type extensionYAML struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Parent      string `yaml:"parent,omitempty"`
	Extendee    string `yaml:"extendee"`
	Number      int32  `yaml:"number"`
	Cardinality string `yaml:"cardinality"`
	Type        string `yaml:"type"`
	JSONName    string `yaml:"json_name,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty"`
}

func packageEntry(p ast.Package) pkgYAML {
	return pkgYAML{Name: p.FullName(), Files: names(p.Files())}
}

func fileEntry(f ast.File) fileYAML {
	return fileYAML{
		Name:              f.Path(),
		Package:           f.Package().FullName(),
		Syntax:            f.Syntax(),
		SyntaxUnspecified: f.IsSyntaxUnspecified(),
		Dependencies:      names(f.Dependencies()),
		Unused:            names(f.UnusedDependencies()),
		Messages:          names(f.Messages()),
		Enums:             names(f.Enums()),
		Services:          names(f.Services()),
		Extensions:        names(f.Extensions()),
		Deprecated:        f.IsDeprecated(),
	}
}

func messageEntry(m ast.Message) messageYAML {
	return messageYAML{
		Name:       m.FullName(),
		File:       m.File().Path(),
		Parent:     m.Parent().FullName(),
		Fields:     names(m.Fields()),
		Oneofs:     names(m.Oneofs()),
		Messages:   names(m.Messages()),
		Enums:      names(m.Enums()),
		Extensions: names(m.Extensions()),
		MapEntry:   m.IsMapEntry(),
		Deprecated: m.IsDeprecated(),
	}
}

func enumEntry(e ast.Enum) enumYAML {
	return enumYAML{
		Name:       e.FullName(),
		File:       e.File().Path(),
		Parent:     e.Parent().FullName(),
		Values:     names(e.Values()),
		Deprecated: e.IsDeprecated(),
	}
}

func enumValueEntry(v ast.EnumValue) enumValueYAML {
	return enumValueYAML{
		Name:       v.FullName(),
		Enum:       v.Enum().FullName(),
		Number:     v.Number(),
		Deprecated: v.IsDeprecated(),
	}
}

func serviceEntry(s ast.Service) serviceYAML {
	return serviceYAML{
		Name:       s.FullName(),
		File:       s.File().Path(),
		Methods:    names(s.Methods()),
		Deprecated: s.IsDeprecated(),
	}
}

func methodEntry(m ast.Method) methodYAML {
	return methodYAML{
		Name:            m.FullName(),
		File:            m.File().Path(),
		Input:           m.Input().FullName(),
		Output:          m.Output().FullName(),
		ClientStreaming: m.IsClientStreaming(),
		ServerStreaming: m.IsServerStreaming(),
		Deprecated:      m.IsDeprecated(),
	}
}

func fieldEntry(f ast.Field) fieldYAML {
	return fieldYAML{
		Name:           f.FullName(),
		Message:        f.Message().FullName(),
		Number:         f.Number(),
		Cardinality:    f.Cardinality().String(),
		Type:           fieldType(f),
		Variant:        f.Variant().String(),
		Oneof:          f.Oneof().FullName(),
		JSONName:       f.JSONName(),
		Proto3Optional: f.IsProto3Optional(),
		Deprecated:     f.IsDeprecated(),
	}
}

func oneofEntry(o ast.Oneof) oneofYAML {
	return oneofYAML{
		Name:      o.FullName(),
		Message:   o.Message().FullName(),
		Fields:    names(o.Fields()),
		Synthetic: o.IsSynthetic(),
	}
}

func extensionEntry(e ast.Extension) extensionYAML {
	return extensionYAML{
		Name:        e.FullName(),
		File:        e.File().Path(),
		Parent:      e.Parent().FullName(),
		Extendee:    e.Extendee().FullName(),
		Number:      e.Number(),
		Cardinality: e.Cardinality().String(),
		Type:        extensionType(e),
		JSONName:    e.JSONName(),
		Deprecated:  e.IsDeprecated(),
	}
}

// fieldType renders the type of a field: the full name of its message or
// enum type, or the name of its scalar type.
func fieldType(f ast.Field) string {
	switch {
	case !f.MessageType().IsZero():
		return f.MessageType().FullName()
	case !f.EnumType().IsZero():
		return f.EnumType().FullName()
	default:
		return f.Type().String()
	}
}

func extensionType(e ast.Extension) string {
	switch {
	case !e.MessageType().IsZero():
		return e.MessageType().FullName()
	case !e.EnumType().IsZero():
		return e.EnumType().FullName()
	default:
		return e.Type().String()
	}
}

func collect[N, E any](s seq.Indexer[N], entry func(N) E) []E {
	if s.Len() == 0 {
		return nil
	}
	out := make([]E, 0, s.Len())
	for n := range seq.Values(s) {
		out = append(out, entry(n))
	}
	return out
}

func names[N interface{ FullName() string }](s seq.Indexer[N]) []string {
	return collect(s, func(n N) string { return n.FullName() })
}
