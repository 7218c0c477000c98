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
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/bufbuild/protohydrate/internal/arena"
	"github.com/bufbuild/protohydrate/internal/intern"
)

// Hydration builds an [AST] out of declarations added in any order.
//
// Every name is bound to exactly one [Kind] for the lifetime of a hydration.
// A name first becomes bound either when it is added, or when some other
// declaration refers to it; in the latter case it is a placeholder until it
// is added. The state of a name only moves forward:
//
//	unbound -> placeholder -> populated
//
// The zero value is empty and ready to use. A Hydration must not be used by
// more than one goroutine at a time; doing so panics.
type Hydration struct {
	writer writer

	names   intern.Table
	index   intern.Map[int32] // Indices into symbols.
	symbols []symbol
	nodes   *nodes

	// The first error produced while populating a node. Once set, Finish
	// will fail with it.
	err  error
	done bool
}

// NewHydration returns a new, empty hydration.
func NewHydration() *Hydration {
	return new(Hydration)
}

// Data is the staging record for a declaration of some [Kind].
//
// Data is implemented by the *XData types in this package, one for each
// kind, such as [*MessageData].
type Data interface {
	// Kind returns the kind of declaration this data describes.
	Kind() Kind

	add(h *Hydration, name string) error
}

// symbol is an entry in a hydration's name table.
type symbol struct {
	name      intern.ID
	kind      Kind
	ptr       arena.Untyped
	populated bool
}

// nodes holds the arenas every node of an AST is allocated on.
type nodes struct {
	packages   arena.Arena[rawPackage]
	files      arena.Arena[rawFile]
	messages   arena.Arena[rawMessage]
	enums      arena.Arena[rawEnum]
	enumValues arena.Arena[rawEnumValue]
	services   arena.Arena[rawService]
	methods    arena.Arena[rawMethod]
	fields     arena.Arena[rawField]
	oneofs     arena.Arena[rawOneof]
	extensions arena.Arena[rawExtension]
}

// table binds a kind to the arena its nodes live on.
type table[T any] struct {
	kind  Kind
	arena func(*nodes) *arena.Arena[T]
}

func (t table[T]) in(h *Hydration) *arena.Arena[T] {
	return t.arena(h.nodes)
}

var tables = struct {
	packages   table[rawPackage]
	files      table[rawFile]
	messages   table[rawMessage]
	enums      table[rawEnum]
	enumValues table[rawEnumValue]
	services   table[rawService]
	methods    table[rawMethod]
	fields     table[rawField]
	oneofs     table[rawOneof]
	extensions table[rawExtension]
}{
	packages:   table[rawPackage]{KindPackage, func(n *nodes) *arena.Arena[rawPackage] { return &n.packages }},
	files:      table[rawFile]{KindFile, func(n *nodes) *arena.Arena[rawFile] { return &n.files }},
	messages:   table[rawMessage]{KindMessage, func(n *nodes) *arena.Arena[rawMessage] { return &n.messages }},
	enums:      table[rawEnum]{KindEnum, func(n *nodes) *arena.Arena[rawEnum] { return &n.enums }},
	enumValues: table[rawEnumValue]{KindEnumValue, func(n *nodes) *arena.Arena[rawEnumValue] { return &n.enumValues }},
	services:   table[rawService]{KindService, func(n *nodes) *arena.Arena[rawService] { return &n.services }},
	methods:    table[rawMethod]{KindMethod, func(n *nodes) *arena.Arena[rawMethod] { return &n.methods }},
	fields:     table[rawField]{KindField, func(n *nodes) *arena.Arena[rawField] { return &n.fields }},
	oneofs:     table[rawOneof]{KindOneof, func(n *nodes) *arena.Arena[rawOneof] { return &n.oneofs }},
	extensions: table[rawExtension]{KindExtension, func(n *nodes) *arena.Arena[rawExtension] { return &n.extensions }},
}

// Add declares name with the given data.
//
// Returns an error wrapping [ErrPresent] if name was already declared, or
// [ErrTypeMismatch] if name is already bound to a different kind than
// data.Kind(). In both cases the hydration is unaffected.
//
// Names that data refers to are bound as placeholders if they are not bound
// yet. If one of them is already bound to a different kind, the returned
// error wraps [ErrTypeMismatch], and so will the error returned by
// [Hydration.Finish].
func (h *Hydration) Add(name string, data Data) error {
	defer h.enter()()
	return data.add(h, name)
}

// Len returns the number of names bound so far, including placeholders.
func (h *Hydration) Len() int {
	defer h.enter()()
	return len(h.symbols)
}

// Pending returns the names that have been referred to but not declared yet,
// sorted.
func (h *Hydration) Pending() []string {
	defer h.enter()()

	var pending []string
	for _, sym := range h.symbols {
		if !sym.populated {
			pending = append(pending, h.names.Value(sym.name))
		}
	}
	slices.Sort(pending)
	return pending
}

// Finish freezes this hydration into an [AST].
//
// If populating any declaration failed, returns that failure. If any name is
// still a placeholder, returns one [ErrIncomplete] error per such name, in
// name order. When both happen, the errors are joined with the population
// failure first.
//
// The hydration is consumed whether or not this succeeds: calling any method
// on it afterwards panics.
func (h *Hydration) Finish() (*AST, error) {
	defer h.enter()()
	h.done = true

	var (
		incomplete []*Error
		counts     [KindTotal]int
	)
	for _, sym := range h.symbols {
		if !sym.populated {
			incomplete = append(incomplete, &Error{
				Err:   ErrIncomplete,
				Name:  h.names.Value(sym.name),
				Kind:  sym.kind,
				Bound: sym.kind,
			})
			continue
		}
		counts[sym.kind]++
	}
	if incomplete != nil {
		slices.SortFunc(incomplete, func(a, b *Error) int { return cmp.Compare(a.Name, b.Name) })
		errs := make([]error, 0, len(incomplete)+1)
		if h.err != nil {
			errs = append(errs, h.err)
		}
		for _, err := range incomplete {
			errs = append(errs, err)
		}
		return nil, errors.Join(errs...)
	}
	if h.err != nil {
		return nil, h.err
	}

	a := &AST{names: h.names, nodes: h.nodes}
	for _, sym := range h.symbols {
		a.index.Set(h.names.Value(sym.name), rawNode{
			kind: sym.kind,
			name: sym.name,
			ptr:  sym.ptr,
		})
	}
	if err := a.allocate(&counts); err != nil {
		return nil, err
	}
	a.fill()
	return a, nil
}

// add implements [Hydration.Add] for a node of type T.
func add[T any](h *Hydration, t table[T], name string, populate func(*populator, *T)) error {
	var (
		id  intern.ID
		ptr arena.Untyped
	)
	if idx, ok := h.index.Get(&h.names, name); ok {
		sym := &h.symbols[idx]
		switch {
		case sym.kind != t.kind:
			return &Error{Err: ErrTypeMismatch, Name: name, Kind: t.kind, Bound: sym.kind}
		case sym.populated:
			return &Error{Err: ErrPresent, Name: name, Kind: t.kind, Bound: sym.kind}
		}
		sym.populated = true
		id, ptr = sym.name, sym.ptr
	} else {
		var zero T
		id = h.names.Intern(name)
		ptr = t.in(h).New(zero).Untyped()
		h.bind(symbol{name: id, kind: t.kind, ptr: ptr, populated: true})
	}

	// populate may bind more names, so sym must not be used past this point.
	// The node itself will not move: arenas never move their values.
	p := &populator{h: h, fqn: id}
	populate(p, t.in(h).At(ptr))
	if p.err != nil {
		err := fmt.Errorf("ast: populating %v %q: %w", t.kind, name, p.err)
		if h.err == nil {
			h.err = err
		}
		return err
	}
	return nil
}

// placeholder returns the node bound to name, binding a new placeholder if
// name is unbound.
//
// Returns the same pointer for the same name every time, whether or not the
// node has been populated yet.
func placeholder[T any](h *Hydration, t table[T], name string) (arena.Pointer[T], error) {
	if idx, ok := h.index.Get(&h.names, name); ok {
		sym := h.symbols[idx]
		if sym.kind != t.kind {
			return 0, &Error{Err: ErrTypeMismatch, Name: name, Kind: t.kind, Bound: sym.kind}
		}
		return arena.Pointer[T](sym.ptr), nil
	}

	var zero T
	ptr := t.in(h).New(zero)
	h.bind(symbol{name: h.names.Intern(name), kind: t.kind, ptr: ptr.Untyped()})
	return ptr, nil
}

func (h *Hydration) bind(sym symbol) {
	if h.index == nil {
		h.index = make(intern.Map[int32])
	}
	h.index.AddID(sym.name, int32(len(h.symbols)))
	h.symbols = append(h.symbols, sym)
}

// populator is passed to the populate method of each *XData type. It records
// the first error encountered while resolving references, so that populate
// functions can be written as a single struct literal.
type populator struct {
	h   *Hydration
	fqn intern.ID
	err error
}

// decl builds the header common to every raw node.
func (p *populator) decl(name string, deprecated bool) rawDecl {
	return rawDecl{
		fqn:        p.fqn,
		name:       p.h.names.Intern(name),
		deprecated: deprecated,
	}
}

func (p *populator) intern(s string) intern.ID {
	return p.h.names.Intern(s)
}

// resolve resolves a required reference to a node of type T.
func resolve[T any](p *populator, t table[T], name string) arena.Pointer[T] {
	if p.err != nil {
		return 0
	}
	ptr, err := placeholder(p.h, t, name)
	if err != nil {
		p.err = err
	}
	return ptr
}

// resolveOptional is like resolve, but the empty name resolves to nil.
func resolveOptional[T any](p *populator, t table[T], name string) arena.Pointer[T] {
	if name == "" {
		return 0
	}
	return resolve(p, t, name)
}

// resolveAll resolves a list of references.
func resolveAll[T any](p *populator, t table[T], names []string) []arena.Pointer[T] {
	if len(names) == 0 {
		return nil
	}
	out := make([]arena.Pointer[T], len(names))
	for i, name := range names {
		out[i] = resolve(p, t, name)
	}
	return out
}
