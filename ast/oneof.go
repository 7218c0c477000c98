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

// OneofData is the staging record for a [Oneof].
type OneofData struct {
	Name      string
	Message   string
	Fields    []string
	Synthetic bool
}

// Kind implements [Data].
func (*OneofData) Kind() Kind { return KindOneof }

func (d *OneofData) add(h *Hydration, name string) error {
	return add(h, tables.oneofs, name, func(p *populator, raw *rawOneof) {
		*raw = rawOneof{
			rawDecl:   p.decl(d.Name, false),
			message:   resolve(p, tables.messages, d.Message),
			fields:    resolveAll(p, tables.fields, d.Fields),
			synthetic: d.Synthetic,
		}
	})
}

type rawOneof struct {
	rawDecl
	message   arena.Pointer[rawMessage]
	fields    []arena.Pointer[rawField]
	synthetic bool
}

// Oneof is a oneof of a [Message].
type Oneof struct {
	decl
	raw *rawOneof
}

func wrapOneof(a *AST, p arena.Pointer[rawOneof]) Oneof {
	if a == nil || p.Nil() {
		return Oneof{}
	}
	raw := p.In(&a.nodes.oneofs)
	return Oneof{newDecl(a, &raw.rawDecl), raw}
}

// Message returns the message this oneof belongs to.
func (o Oneof) Message() Message {
	return wrapMessage(o.ast, o.raw.message)
}

// Fields returns the members of this oneof.
func (o Oneof) Fields() seq.Indexer[Field] {
	return wrapAll(o.ast, o.raw.fields, wrapField)
}

// IsSynthetic returns whether this oneof was synthesized for a proto3
// optional field.
func (o Oneof) IsSynthetic() bool {
	return !o.IsZero() && o.raw.synthetic
}
