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

// MessageData is the staging record for a [Message].
type MessageData struct {
	Name   string
	File   string
	Parent string // Optional; set for nested messages.

	Fields     []string
	Oneofs     []string
	Messages   []string
	Enums      []string
	Extensions []string

	MapEntry   bool
	Deprecated bool
}

// Kind implements [Data].
func (*MessageData) Kind() Kind { return KindMessage }

func (d *MessageData) add(h *Hydration, name string) error {
	return add(h, tables.messages, name, func(p *populator, raw *rawMessage) {
		*raw = rawMessage{
			rawDecl:    p.decl(d.Name, d.Deprecated),
			file:       resolve(p, tables.files, d.File),
			parent:     resolveOptional(p, tables.messages, d.Parent),
			fields:     resolveAll(p, tables.fields, d.Fields),
			oneofs:     resolveAll(p, tables.oneofs, d.Oneofs),
			messages:   resolveAll(p, tables.messages, d.Messages),
			enums:      resolveAll(p, tables.enums, d.Enums),
			extensions: resolveAll(p, tables.extensions, d.Extensions),
			mapEntry:   d.MapEntry,
		}
	})
}

type rawMessage struct {
	rawDecl
	file       arena.Pointer[rawFile]
	parent     arena.Pointer[rawMessage]
	fields     []arena.Pointer[rawField]
	oneofs     []arena.Pointer[rawOneof]
	messages   []arena.Pointer[rawMessage]
	enums      []arena.Pointer[rawEnum]
	extensions []arena.Pointer[rawExtension]
	mapEntry   bool
}

// Message is a message type.
type Message struct {
	decl
	raw *rawMessage
}

func wrapMessage(a *AST, p arena.Pointer[rawMessage]) Message {
	if a == nil || p.Nil() {
		return Message{}
	}
	raw := p.In(&a.nodes.messages)
	return Message{newDecl(a, &raw.rawDecl), raw}
}

// File returns the file this message is declared in.
func (m Message) File() File {
	return wrapFile(m.ast, m.raw.file)
}

// Parent returns the message this message is nested in, if any.
func (m Message) Parent() Message {
	return wrapMessage(m.ast, m.raw.parent)
}

// Fields returns this message's fields, in declaration order.
func (m Message) Fields() seq.Indexer[Field] {
	return wrapAll(m.ast, m.raw.fields, wrapField)
}

// Oneofs returns this message's oneofs, including synthetic ones.
func (m Message) Oneofs() seq.Indexer[Oneof] {
	return wrapAll(m.ast, m.raw.oneofs, wrapOneof)
}

// Messages returns the messages nested in this one.
func (m Message) Messages() seq.Indexer[Message] {
	return wrapAll(m.ast, m.raw.messages, wrapMessage)
}

// Enums returns the enums nested in this message.
func (m Message) Enums() seq.Indexer[Enum] {
	return wrapAll(m.ast, m.raw.enums, wrapEnum)
}

// Extensions returns the extensions declared in the scope of this message.
func (m Message) Extensions() seq.Indexer[Extension] {
	return wrapAll(m.ast, m.raw.extensions, wrapExtension)
}

// IsMapEntry returns whether this is the synthetic entry type of a map field.
func (m Message) IsMapEntry() bool {
	return !m.IsZero() && m.raw.mapEntry
}

// MapKey returns the key field of a map entry: the field numbered 1.
//
// Returns the zero [Field] if this is not a map entry.
func (m Message) MapKey() Field {
	return m.mapField(1)
}

// MapValue returns the value field of a map entry: the field numbered 2.
//
// Returns the zero [Field] if this is not a map entry.
func (m Message) MapValue() Field {
	return m.mapField(2)
}

func (m Message) mapField(number int32) Field {
	if !m.IsMapEntry() {
		return Field{}
	}
	for f := range seq.Values(m.Fields()) {
		if f.Number() == number {
			return f
		}
	}
	return Field{}
}
