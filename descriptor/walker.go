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
	"fmt"
	"strings"

	descriptorv1 "buf.build/gen/go/bufbuild/protodescriptor/protocolbuffers/go/buf/descriptor/v1"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protohydrate/ast"
)

// walker converts descriptor protos into staging records.
type walker struct {
	h   *ast.Hydration
	log *zap.Logger

	// Packages in the order they were first seen, and the files of each.
	packages []string
	files    map[string][]string
}

func (w *walker) file(fdp *descriptorpb.FileDescriptorProto) error {
	path := fdp.GetName()
	pkg := fdp.GetPackage()

	data := &ast.FileData{
		Name:         path,
		Package:      pkg,
		Syntax:       fdp.GetSyntax(),
		Dependencies: fdp.GetDependency(),
		Deprecated:   fdp.GetOptions().GetDeprecated(),
	}
	if data.Syntax == "" {
		// protoc leaves syntax unset for proto2 files.
		data.Syntax = "proto2"
	}
	if info := sourceInfo(fdp); info != nil {
		data.SyntaxUnspecified = info.GetIsSyntaxUnspecified()
		for _, i := range info.GetUnusedDependency() {
			if i < 0 || int(i) >= len(data.Dependencies) {
				return fmt.Errorf("unused dependency index %d out of range", i)
			}
			data.UnusedDependencies = append(data.UnusedDependencies, data.Dependencies[i])
		}
	}

	for _, m := range fdp.GetMessageType() {
		name := join(pkg, m.GetName())
		data.Messages = append(data.Messages, name)
		if err := w.message(path, "", name, m); err != nil {
			return err
		}
	}
	for _, e := range fdp.GetEnumType() {
		name, err := w.enum(path, "", pkg, e)
		if err != nil {
			return err
		}
		data.Enums = append(data.Enums, name)
	}
	for _, s := range fdp.GetService() {
		name := join(pkg, s.GetName())
		data.Services = append(data.Services, name)
		if err := w.service(path, name, s); err != nil {
			return err
		}
	}
	for _, x := range fdp.GetExtension() {
		name, err := w.extension(path, "", pkg, x)
		if err != nil {
			return err
		}
		data.Extensions = append(data.Extensions, name)
	}

	if pkg != "" {
		if _, ok := w.files[pkg]; !ok {
			w.packages = append(w.packages, pkg)
		}
		w.files[pkg] = append(w.files[pkg], path)
	}
	return w.h.Add(path, data)
}

func (w *walker) message(file, parent, name string, m *descriptorpb.DescriptorProto) error {
	data := &ast.MessageData{
		Name:       m.GetName(),
		File:       file,
		Parent:     parent,
		MapEntry:   m.GetOptions().GetMapEntry(),
		Deprecated: m.GetOptions().GetDeprecated(),
	}

	oneofs := make([]*ast.OneofData, len(m.GetOneofDecl()))
	for i, o := range m.GetOneofDecl() {
		oneofs[i] = &ast.OneofData{Name: o.GetName(), Message: name}
		data.Oneofs = append(data.Oneofs, join(name, o.GetName()))
	}

	for _, f := range m.GetField() {
		fieldName := join(name, f.GetName())
		data.Fields = append(data.Fields, fieldName)

		field := &ast.FieldData{
			Name:           f.GetName(),
			Message:        name,
			Number:         f.GetNumber(),
			Cardinality:    protoreflect.Cardinality(f.GetLabel()),
			Type:           protoreflect.Kind(f.GetType()),
			TypeName:       typeName(f.GetTypeName()),
			JSONName:       f.GetJsonName(),
			Proto3Optional: f.GetProto3Optional(),
			Deprecated:     f.GetOptions().GetDeprecated(),
		}
		if field.JSONName == "" {
			field.JSONName = jsonName(f.GetName())
		}
		if f.OneofIndex != nil {
			i := int(f.GetOneofIndex())
			if i < 0 || i >= len(oneofs) {
				return fmt.Errorf("field %s: oneof index %d out of range", fieldName, i)
			}
			field.Oneof = data.Oneofs[i]
			oneofs[i].Fields = append(oneofs[i].Fields, fieldName)
			oneofs[i].Synthetic = oneofs[i].Synthetic || f.GetProto3Optional()
		}
		if err := w.h.Add(fieldName, field); err != nil {
			return err
		}
	}
	for i, o := range oneofs {
		if err := w.h.Add(data.Oneofs[i], o); err != nil {
			return err
		}
	}

	for _, n := range m.GetNestedType() {
		nested := join(name, n.GetName())
		data.Messages = append(data.Messages, nested)
		if err := w.message(file, name, nested, n); err != nil {
			return err
		}
	}
	for _, e := range m.GetEnumType() {
		enum, err := w.enum(file, name, name, e)
		if err != nil {
			return err
		}
		data.Enums = append(data.Enums, enum)
	}
	for _, x := range m.GetExtension() {
		ext, err := w.extension(file, name, name, x)
		if err != nil {
			return err
		}
		data.Extensions = append(data.Extensions, ext)
	}

	return w.h.Add(name, data)
}

// enum adds e, declared in scope, and returns its name.
func (w *walker) enum(file, parent, scope string, e *descriptorpb.EnumDescriptorProto) (string, error) {
	name := join(scope, e.GetName())
	data := &ast.EnumData{
		Name:       e.GetName(),
		File:       file,
		Parent:     parent,
		Deprecated: e.GetOptions().GetDeprecated(),
	}
	for _, v := range e.GetValue() {
		value := join(scope, v.GetName())
		data.Values = append(data.Values, value)
		err := w.h.Add(value, &ast.EnumValueData{
			Name:       v.GetName(),
			Enum:       name,
			Number:     v.GetNumber(),
			Deprecated: v.GetOptions().GetDeprecated(),
		})
		if err != nil {
			return "", err
		}
	}
	return name, w.h.Add(name, data)
}

func (w *walker) service(file, name string, s *descriptorpb.ServiceDescriptorProto) error {
	data := &ast.ServiceData{
		Name:       s.GetName(),
		File:       file,
		Deprecated: s.GetOptions().GetDeprecated(),
	}
	for _, m := range s.GetMethod() {
		method := join(name, m.GetName())
		data.Methods = append(data.Methods, method)
		err := w.h.Add(method, &ast.MethodData{
			Input:           typeName(m.GetInputType()),
			Output:          typeName(m.GetOutputType()),
			File:            file,
			Name:            m.GetName(),
			Deprecated:      m.GetOptions().GetDeprecated(),
			ClientStreaming: m.GetClientStreaming(),
			ServerStreaming: m.GetServerStreaming(),
		})
		if err != nil {
			return err
		}
	}
	return w.h.Add(name, data)
}

// extension adds x, declared in scope, and returns its name.
func (w *walker) extension(file, parent, scope string, x *descriptorpb.FieldDescriptorProto) (string, error) {
	name := join(scope, x.GetName())
	data := &ast.ExtensionData{
		Name:        x.GetName(),
		File:        file,
		Parent:      parent,
		Extendee:    typeName(x.GetExtendee()),
		Number:      x.GetNumber(),
		Cardinality: protoreflect.Cardinality(x.GetLabel()),
		Type:        protoreflect.Kind(x.GetType()),
		TypeName:    typeName(x.GetTypeName()),
		JSONName:    x.GetJsonName(),
		Deprecated:  x.GetOptions().GetDeprecated(),
	}
	if data.JSONName == "" {
		data.JSONName = "[" + name + "]"
	}
	return name, w.h.Add(name, data)
}

// sourceInfo returns Buf's extension to a file's source code info, if
// present.
func sourceInfo(fdp *descriptorpb.FileDescriptorProto) *descriptorv1.SourceCodeInfoExtension {
	info := fdp.GetSourceCodeInfo()
	if info == nil || !proto.HasExtension(info, descriptorv1.E_BufSourceCodeInfoExtension) {
		return nil
	}
	ext, _ := proto.GetExtension(info, descriptorv1.E_BufSourceCodeInfoExtension).(*descriptorv1.SourceCodeInfoExtension)
	return ext
}

// join appends name to a dotted scope.
func join(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// typeName converts a fully-qualified type reference, which has a leading
// dot, into a declaration name.
func typeName(ref string) string {
	return strings.TrimPrefix(ref, ".")
}

// jsonName computes the default JSON name of a field: its name in
// lowerCamelCase, with underscores removed.
func jsonName(name string) string {
	var b strings.Builder
	upper := false
	for _, r := range name {
		switch {
		case r == '_':
			upper = true
		case upper && 'a' <= r && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
			upper = false
		default:
			b.WriteRune(r)
			upper = false
		}
	}
	return b.String()
}
