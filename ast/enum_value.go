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

import "github.com/bufbuild/protohydrate/internal/arena"

// EnumValueData is the staging record for an [EnumValue].
type EnumValueData struct {
	Name       string
	Enum       string
	Number     int32
	Deprecated bool
}

// Kind implements [Data].
func (*EnumValueData) Kind() Kind { return KindEnumValue }

func (d *EnumValueData) add(h *Hydration, name string) error {
	return add(h, tables.enumValues, name, func(p *populator, raw *rawEnumValue) {
		*raw = rawEnumValue{
			rawDecl: p.decl(d.Name, d.Deprecated),
			enum:    resolve(p, tables.enums, d.Enum),
			number:  d.Number,
		}
	})
}

type rawEnumValue struct {
	rawDecl
	enum   arena.Pointer[rawEnum]
	number int32
}

// EnumValue is a value of an [Enum].
//
// Enum values are scoped as siblings of their enum, so the full name of
// value FOO in enum pkg.E is pkg.FOO.
type EnumValue struct {
	decl
	raw *rawEnumValue
}

func wrapEnumValue(a *AST, p arena.Pointer[rawEnumValue]) EnumValue {
	if a == nil || p.Nil() {
		return EnumValue{}
	}
	raw := p.In(&a.nodes.enumValues)
	return EnumValue{newDecl(a, &raw.rawDecl), raw}
}

// Enum returns the enum this value belongs to.
func (v EnumValue) Enum() Enum {
	return wrapEnum(v.ast, v.raw.enum)
}

// Number returns this value's number.
func (v EnumValue) Number() int32 {
	return v.raw.number
}
