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
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protohydrate/internal/arena"
	"github.com/bufbuild/protohydrate/internal/intern"
)

// FieldData is the staging record for a [Field].
type FieldData struct {
	Name    string
	Message string

	Number      int32
	Cardinality protoreflect.Cardinality
	Type        protoreflect.Kind

	// The message type for fields of message or group type, or the enum type
	// for fields of enum type. Ignored for every other type.
	TypeName string

	Oneof          string // Optional.
	JSONName       string
	Proto3Optional bool
	Deprecated     bool
}

// Kind implements [Data].
func (*FieldData) Kind() Kind { return KindField }

func (d *FieldData) add(h *Hydration, name string) error {
	return add(h, tables.fields, name, func(p *populator, raw *rawField) {
		*raw = rawField{
			rawDecl:        p.decl(d.Name, d.Deprecated),
			message:        resolve(p, tables.messages, d.Message),
			oneof:          resolveOptional(p, tables.oneofs, d.Oneof),
			jsonName:       p.intern(d.JSONName),
			proto3Optional: d.Proto3Optional,
			typed:          resolveTyped(p, d.Number, d.Cardinality, d.Type, d.TypeName),
		}
	})
}

// typed is the part of a field's shape shared by fields and extensions.
type typed struct {
	number      int32
	cardinality protoreflect.Cardinality
	kind        protoreflect.Kind
	message     arena.Pointer[rawMessage]
	enum        arena.Pointer[rawEnum]
}

// resolveTyped resolves the type of a field or extension.
func resolveTyped(p *populator, number int32, card protoreflect.Cardinality, kind protoreflect.Kind, name string) typed {
	t := typed{number: number, cardinality: card, kind: kind}
	switch kind {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		t.message = resolveOptional(p, tables.messages, name)
	case protoreflect.EnumKind:
		t.enum = resolveOptional(p, tables.enums, name)
	}
	return t
}

type rawField struct {
	rawDecl
	typed
	message        arena.Pointer[rawMessage]
	oneof          arena.Pointer[rawOneof]
	jsonName       intern.ID
	proto3Optional bool
}

// Field is a field of a [Message].
type Field struct {
	decl
	raw *rawField
}

func wrapField(a *AST, p arena.Pointer[rawField]) Field {
	if a == nil || p.Nil() {
		return Field{}
	}
	raw := p.In(&a.nodes.fields)
	return Field{newDecl(a, &raw.rawDecl), raw}
}

// Message returns the message this field belongs to.
func (f Field) Message() Message {
	return wrapMessage(f.ast, f.raw.message)
}

// Number returns this field's number.
func (f Field) Number() int32 {
	return f.raw.number
}

// Cardinality returns this field's cardinality.
func (f Field) Cardinality() protoreflect.Cardinality {
	return f.raw.cardinality
}

// Type returns this field's type.
func (f Field) Type() protoreflect.Kind {
	return f.raw.kind
}

// MessageType returns the type of a message- or group-typed field.
func (f Field) MessageType() Message {
	return wrapMessage(f.ast, f.raw.typed.message)
}

// EnumType returns the type of an enum-typed field.
func (f Field) EnumType() Enum {
	return wrapEnum(f.ast, f.raw.enum)
}

// Oneof returns the oneof this field is a member of, if any.
func (f Field) Oneof() Oneof {
	return wrapOneof(f.ast, f.raw.oneof)
}

// JSONName returns this field's JSON name.
func (f Field) JSONName() string {
	return f.ast.names.Value(f.raw.jsonName)
}

// IsProto3Optional returns whether this is a proto3 optional field, which is
// the sole member of a synthetic oneof.
func (f Field) IsProto3Optional() bool {
	return f.raw.proto3Optional
}

// IsMap returns whether this is a map field.
func (f Field) IsMap() bool {
	return f.Cardinality() == protoreflect.Repeated && f.MessageType().IsMapEntry()
}

// Variant classifies this field by how it is represented.
func (f Field) Variant() FieldVariant {
	if f.IsZero() {
		return VariantInvalid
	}

	switch {
	case f.IsMap():
		return VariantMap
	case f.Cardinality() == protoreflect.Repeated:
		return VariantRepeated
	case !f.Oneof().IsZero() && !f.Oneof().IsSynthetic():
		return VariantOneof
	}

	switch f.Type() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return VariantEmbed
	case protoreflect.EnumKind:
		return VariantEnum
	default:
		return VariantScalar
	}
}
