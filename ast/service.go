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

// ServiceData is the staging record for a [Service].
type ServiceData struct {
	Name       string
	File       string
	Methods    []string
	Deprecated bool
}

// Kind implements [Data].
func (*ServiceData) Kind() Kind { return KindService }

func (d *ServiceData) add(h *Hydration, name string) error {
	return add(h, tables.services, name, func(p *populator, raw *rawService) {
		*raw = rawService{
			rawDecl: p.decl(d.Name, d.Deprecated),
			file:    resolve(p, tables.files, d.File),
			methods: resolveAll(p, tables.methods, d.Methods),
		}
	})
}

type rawService struct {
	rawDecl
	file    arena.Pointer[rawFile]
	methods []arena.Pointer[rawMethod]
}

// Service is an RPC service.
type Service struct {
	decl
	raw *rawService
}

func wrapService(a *AST, p arena.Pointer[rawService]) Service {
	if a == nil || p.Nil() {
		return Service{}
	}
	raw := p.In(&a.nodes.services)
	return Service{newDecl(a, &raw.rawDecl), raw}
}

// File returns the file this service is declared in.
func (s Service) File() File {
	return wrapFile(s.ast, s.raw.file)
}

// Methods returns this service's methods, in declaration order.
func (s Service) Methods() seq.Indexer[Method] {
	return wrapAll(s.ast, s.raw.methods, wrapMethod)
}
