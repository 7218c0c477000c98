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

// MethodData is the staging record for a [Method].
type MethodData struct {
	Input  string
	Output string
	File   string
	Name   string

	Deprecated      bool
	ClientStreaming bool
	ServerStreaming bool
}

// Kind implements [Data].
func (*MethodData) Kind() Kind { return KindMethod }

func (d *MethodData) add(h *Hydration, name string) error {
	return add(h, tables.methods, name, func(p *populator, raw *rawMethod) {
		*raw = rawMethod{
			rawDecl:         p.decl(d.Name, d.Deprecated),
			input:           resolve(p, tables.messages, d.Input),
			output:          resolve(p, tables.messages, d.Output),
			file:            resolve(p, tables.files, d.File),
			clientStreaming: d.ClientStreaming,
			serverStreaming: d.ServerStreaming,
		}
	})
}

type rawMethod struct {
	rawDecl
	input, output   arena.Pointer[rawMessage]
	file            arena.Pointer[rawFile]
	clientStreaming bool
	serverStreaming bool
}

// Method is a method of a [Service].
type Method struct {
	decl
	raw *rawMethod
}

func wrapMethod(a *AST, p arena.Pointer[rawMethod]) Method {
	if a == nil || p.Nil() {
		return Method{}
	}
	raw := p.In(&a.nodes.methods)
	return Method{newDecl(a, &raw.rawDecl), raw}
}

// Input returns this method's request type.
func (m Method) Input() Message {
	return wrapMessage(m.ast, m.raw.input)
}

// Output returns this method's response type.
func (m Method) Output() Message {
	return wrapMessage(m.ast, m.raw.output)
}

// File returns the file this method is declared in.
func (m Method) File() File {
	return wrapFile(m.ast, m.raw.file)
}

// IsClientStreaming returns whether the client sends a stream of requests.
func (m Method) IsClientStreaming() bool {
	return m.raw.clientStreaming
}

// IsServerStreaming returns whether the server sends a stream of responses.
func (m Method) IsServerStreaming() bool {
	return m.raw.serverStreaming
}
