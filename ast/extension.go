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

// ExtensionData is the staging record for an [Extension].
type ExtensionData struct {
	Name     string
	File     string
	Parent   string // Optional; set for extensions declared inside a message.
	Extendee string

	Number      int32
	Cardinality protoreflect.Cardinality
	Type        protoreflect.Kind
	TypeName    string // As for [FieldData.TypeName].

	JSONName   string
	Deprecated bool
}

// Kind implements [Data].
func (*ExtensionData) Kind() Kind { return KindExtension }

func (d *ExtensionData) add(h *Hydration, name string) error {
	return add(h, tables.extensions, name, func(p *populator, raw *rawExtension) {
		*raw = rawExtension{
			rawDecl:  p.decl(d.Name, d.Deprecated),
			file:     resolve(p, tables.files, d.File),
			parent:   resolveOptional(p, tables.messages, d.Parent),
			extendee: resolve(p, tables.messages, d.Extendee),
			jsonName: p.intern(d.JSONName),
			typed:    resolveTyped(p, d.Number, d.Cardinality, d.Type, d.TypeName),
		}
	})
}

type rawExtension struct {
	rawDecl
	typed
	file     arena.Pointer[rawFile]
	parent   arena.Pointer[rawMessage]
	extendee arena.Pointer[rawMessage]
	jsonName intern.ID
}

// Extension is an extension field: a field of some message declared outside
// of it.
type Extension struct {
	decl
	raw *rawExtension
}

func wrapExtension(a *AST, p arena.Pointer[rawExtension]) Extension {
	if a == nil || p.Nil() {
		return Extension{}
	}
	raw := p.In(&a.nodes.extensions)
	return Extension{newDecl(a, &raw.rawDecl), raw}
}

// File returns the file this extension is declared in.
func (e Extension) File() File {
	return wrapFile(e.ast, e.raw.file)
}

// Parent returns the message whose scope this extension is declared in,
// if any.
func (e Extension) Parent() Message {
	return wrapMessage(e.ast, e.raw.parent)
}

// Extendee returns the message this extension extends.
func (e Extension) Extendee() Message {
	return wrapMessage(e.ast, e.raw.extendee)
}

// Number returns this extension's number.
func (e Extension) Number() int32 {
	return e.raw.number
}

// Cardinality returns this extension's cardinality.
func (e Extension) Cardinality() protoreflect.Cardinality {
	return e.raw.cardinality
}

// Type returns this extension's type.
func (e Extension) Type() protoreflect.Kind {
	return e.raw.kind
}

// MessageType returns the type of a message- or group-typed extension.
func (e Extension) MessageType() Message {
	return wrapMessage(e.ast, e.raw.message)
}

// EnumType returns the type of an enum-typed extension.
func (e Extension) EnumType() Enum {
	return wrapEnum(e.ast, e.raw.enum)
}

// JSONName returns this extension's JSON name.
func (e Extension) JSONName() string {
	return e.ast.names.Value(e.raw.jsonName)
}
