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
	"fmt"
	"iter"
	"strings"

	"github.com/tidwall/btree"

	"github.com/bufbuild/protohydrate/internal/arena"
	"github.com/bufbuild/protohydrate/internal/intern"
	"github.com/bufbuild/protohydrate/internal/layout"
	"github.com/bufbuild/protohydrate/internal/toposort"
	"github.com/bufbuild/protohydrate/seq"
)

// AST is a frozen, fully cross-referenced set of declarations, produced by
// [Hydration.Finish].
//
// An AST is immutable and may be shared freely between goroutines. Nodes
// obtained from it remain valid for as long as they are reachable.
type AST struct {
	names intern.Table
	nodes *nodes

	// Every per-kind array below, plus all, lives in block.
	block []byte

	all        []rawNode
	packages   []arena.Pointer[rawPackage]
	files      []arena.Pointer[rawFile]
	messages   []arena.Pointer[rawMessage]
	enums      []arena.Pointer[rawEnum]
	enumValues []arena.Pointer[rawEnumValue]
	services   []arena.Pointer[rawService]
	methods    []arena.Pointer[rawMethod]
	fields     []arena.Pointer[rawField]
	oneofs     []arena.Pointer[rawOneof]
	extensions []arena.Pointer[rawExtension]

	index btree.Map[string, rawNode]
}

// Len returns the number of nodes in this AST, of every kind.
func (a *AST) Len() int {
	return len(a.all)
}

// Lookup looks up a node by its fully-qualified name.
//
// Returns the zero [Node] if there is no such node.
func (a *AST) Lookup(name string) Node {
	raw, ok := a.index.Get(name)
	if !ok {
		return Node{}
	}
	return Node{a, raw}
}

// Nodes returns every node in this AST, sorted by name.
func (a *AST) Nodes() seq.Indexer[Node] {
	return seq.NewSlice(a.all, func(_ int, raw rawNode) Node { return Node{a, raw} })
}

// Range returns an iterator over the nodes whose names start with prefix,
// in name order.
func (a *AST) Range(prefix string) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		a.index.Ascend(prefix, func(name string, raw rawNode) bool {
			if !strings.HasPrefix(name, prefix) {
				return false
			}
			return yield(Node{a, raw})
		})
	}
}

// Packages returns every package in this AST, sorted by name.
func (a *AST) Packages() seq.Indexer[Package] {
	return wrapAll(a, a.packages, wrapPackage)
}

// Files returns every file in this AST, sorted by path.
func (a *AST) Files() seq.Indexer[File] {
	return wrapAll(a, a.files, wrapFile)
}

// DependencyOrder returns every file in this AST, ordered so that each file
// comes after every file it depends on. Files are otherwise visited in path
// order.
//
// Returns an error wrapping [ErrImportCycle] if the files have an import
// cycle.
func (a *AST) DependencyOrder() ([]File, error) {
	return toposort.Sort(
		seq.ToSlice(a.Files()),
		File.Path,
		func(f File) iter.Seq[File] { return seq.Values(f.Dependencies()) },
	)
}

// Messages returns every message in this AST, sorted by name.
func (a *AST) Messages() seq.Indexer[Message] {
	return wrapAll(a, a.messages, wrapMessage)
}

// Enums returns every enum in this AST, sorted by name.
func (a *AST) Enums() seq.Indexer[Enum] {
	return wrapAll(a, a.enums, wrapEnum)
}

// EnumValues returns every enum value in this AST, sorted by name.
func (a *AST) EnumValues() seq.Indexer[EnumValue] {
	return wrapAll(a, a.enumValues, wrapEnumValue)
}

// Services returns every service in this AST, sorted by name.
func (a *AST) Services() seq.Indexer[Service] {
	return wrapAll(a, a.services, wrapService)
}

// Methods returns every method in this AST, sorted by name.
func (a *AST) Methods() seq.Indexer[Method] {
	return wrapAll(a, a.methods, wrapMethod)
}

// Fields returns every field in this AST, sorted by name.
func (a *AST) Fields() seq.Indexer[Field] {
	return wrapAll(a, a.fields, wrapField)
}

// Oneofs returns every oneof in this AST, sorted by name.
func (a *AST) Oneofs() seq.Indexer[Oneof] {
	return wrapAll(a, a.oneofs, wrapOneof)
}

// Extensions returns every extension in this AST, sorted by name.
func (a *AST) Extensions() seq.Indexer[Extension] {
	return wrapAll(a, a.extensions, wrapExtension)
}

// allocate carves every per-kind array out of a single block.
//
// The arrays are declared in Kind order and recovered in reverse.
func (a *AST) allocate(counts *[KindTotal]int) error {
	total := 0
	for _, n := range counts {
		total += n
	}

	b, err := layout.Extend[rawNode](layout.New(), total)
	extend := func(kind Kind, next func(layout.Builder, int) (layout.Builder, error)) {
		if err == nil {
			b, err = next(b, counts[kind])
		}
	}
	extend(KindPackage, layout.Extend[arena.Pointer[rawPackage]])
	extend(KindFile, layout.Extend[arena.Pointer[rawFile]])
	extend(KindMessage, layout.Extend[arena.Pointer[rawMessage]])
	extend(KindEnum, layout.Extend[arena.Pointer[rawEnum]])
	extend(KindEnumValue, layout.Extend[arena.Pointer[rawEnumValue]])
	extend(KindService, layout.Extend[arena.Pointer[rawService]])
	extend(KindMethod, layout.Extend[arena.Pointer[rawMethod]])
	extend(KindField, layout.Extend[arena.Pointer[rawField]])
	extend(KindOneof, layout.Extend[arena.Pointer[rawOneof]])
	extend(KindExtension, layout.Extend[arena.Pointer[rawExtension]])
	if err != nil {
		return fmt.Errorf("ast: allocating %d nodes: %w", total, err)
	}

	a.block = b.Backing()
	c := b.Write(a.block)
	a.extensions, c = layout.Next[arena.Pointer[rawExtension]](c)
	a.oneofs, c = layout.Next[arena.Pointer[rawOneof]](c)
	a.fields, c = layout.Next[arena.Pointer[rawField]](c)
	a.methods, c = layout.Next[arena.Pointer[rawMethod]](c)
	a.services, c = layout.Next[arena.Pointer[rawService]](c)
	a.enumValues, c = layout.Next[arena.Pointer[rawEnumValue]](c)
	a.enums, c = layout.Next[arena.Pointer[rawEnum]](c)
	a.messages, c = layout.Next[arena.Pointer[rawMessage]](c)
	a.files, c = layout.Next[arena.Pointer[rawFile]](c)
	a.packages, c = layout.Next[arena.Pointer[rawPackage]](c)
	a.all, _ = layout.Next[rawNode](c)
	return nil
}

// fill populates the arrays made by allocate from the name index, so that
// every array comes out sorted by name.
func (a *AST) fill() {
	var next [KindTotal + 1]int
	put := func(raw rawNode) {
		a.all[next[0]] = raw
		next[0]++

		i := next[raw.kind]
		next[raw.kind]++
		switch raw.kind {
		case KindPackage:
			a.packages[i] = arena.Pointer[rawPackage](raw.ptr)
		case KindFile:
			a.files[i] = arena.Pointer[rawFile](raw.ptr)
		case KindMessage:
			a.messages[i] = arena.Pointer[rawMessage](raw.ptr)
		case KindEnum:
			a.enums[i] = arena.Pointer[rawEnum](raw.ptr)
		case KindEnumValue:
			a.enumValues[i] = arena.Pointer[rawEnumValue](raw.ptr)
		case KindService:
			a.services[i] = arena.Pointer[rawService](raw.ptr)
		case KindMethod:
			a.methods[i] = arena.Pointer[rawMethod](raw.ptr)
		case KindField:
			a.fields[i] = arena.Pointer[rawField](raw.ptr)
		case KindOneof:
			a.oneofs[i] = arena.Pointer[rawOneof](raw.ptr)
		case KindExtension:
			a.extensions[i] = arena.Pointer[rawExtension](raw.ptr)
		}
	}

	a.index.Scan(func(_ string, raw rawNode) bool {
		put(raw)
		return true
	})
}

// wrapAll wraps a list of node pointers into an indexable sequence.
func wrapAll[Raw, N any](a *AST, ptrs []arena.Pointer[Raw], wrap func(*AST, arena.Pointer[Raw]) N) seq.Indexer[N] {
	return seq.NewSlice(ptrs, func(_ int, p arena.Pointer[Raw]) N { return wrap(a, p) })
}
