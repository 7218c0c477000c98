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
	"github.com/bufbuild/protohydrate/internal/arena"
	"github.com/bufbuild/protohydrate/seq"
)

// EnumData is the staging record for an [Enum].
type EnumData struct {
	Name       string
	File       string
	Parent     string // Optional; set for enums nested in a message.
	Values     []string
	Deprecated bool
}

// Kind implements [Data].
func (*EnumData) Kind() Kind { return KindEnum }

func (d *EnumData) add(h *Hydration, name string) error {
	return add(h, tables.enums, name, func(p *populator, raw *rawEnum) {
		*raw = rawEnum{
			rawDecl: p.decl(d.Name, d.Deprecated),
			file:    resolve(p, tables.files, d.File),
			parent:  resolveOptional(p, tables.messages, d.Parent),
			values:  resolveAll(p, tables.enumValues, d.Values),
		}
	})
}

type rawEnum struct {
	rawDecl
	file   arena.Pointer[rawFile]
	parent arena.Pointer[rawMessage]
	values []arena.Pointer[rawEnumValue]
}

// Enum is an enum type.
type Enum struct {
	decl
	raw *rawEnum
}

func wrapEnum(a *AST, p arena.Pointer[rawEnum]) Enum {
	if a == nil || p.Nil() {
		return Enum{}
	}
	raw := p.In(&a.nodes.enums)
	return Enum{newDecl(a, &raw.rawDecl), raw}
}

// File returns the file this enum is declared in.
func (e Enum) File() File {
	return wrapFile(e.ast, e.raw.file)
}

// Parent returns the message this enum is nested in, if any.
func (e Enum) Parent() Message {
	return wrapMessage(e.ast, e.raw.parent)
}

// Values returns this enum's values, in declaration order.
func (e Enum) Values() seq.Indexer[EnumValue] {
	return wrapAll(e.ast, e.raw.values, wrapEnumValue)
}

// ValueByNumber returns the first value of this enum with the given number.
//
// Returns the zero [EnumValue] if there is no such value.
func (e Enum) ValueByNumber(number int32) EnumValue {
	for v := range seq.Values(e.Values()) {
		if v.Number() == number {
			return v
		}
	}
	return EnumValue{}
}
