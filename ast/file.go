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
	"github.com/bufbuild/protohydrate/internal/intern"
	"github.com/bufbuild/protohydrate/seq"
)

// FileData is the staging record for a [File].
//
// Files are named by their path.
type FileData struct {
	Name    string
	Package string // Optional.
	Syntax  string

	// Set when the file had no syntax declaration, and Syntax is the
	// "proto2" it defaults to.
	SyntaxUnspecified bool

	Dependencies       []string
	UnusedDependencies []string // A subset of Dependencies.

	Messages   []string
	Enums      []string
	Services   []string
	Extensions []string

	Deprecated bool
}

// Kind implements [Data].
func (*FileData) Kind() Kind { return KindFile }

func (d *FileData) add(h *Hydration, name string) error {
	return add(h, tables.files, name, func(p *populator, raw *rawFile) {
		*raw = rawFile{
			rawDecl:           p.decl(d.Name, d.Deprecated),
			pkg:               resolveOptional(p, tables.packages, d.Package),
			syntax:            p.intern(d.Syntax),
			syntaxUnspecified: d.SyntaxUnspecified,
			deps:              resolveAll(p, tables.files, d.Dependencies),
			unused:            resolveAll(p, tables.files, d.UnusedDependencies),
			messages:          resolveAll(p, tables.messages, d.Messages),
			enums:             resolveAll(p, tables.enums, d.Enums),
			services:          resolveAll(p, tables.services, d.Services),
			extensions:        resolveAll(p, tables.extensions, d.Extensions),
		}
	})
}

type rawFile struct {
	rawDecl
	pkg               arena.Pointer[rawPackage]
	syntax            intern.ID
	syntaxUnspecified bool

	deps, unused []arena.Pointer[rawFile]
	messages     []arena.Pointer[rawMessage]
	enums        []arena.Pointer[rawEnum]
	services     []arena.Pointer[rawService]
	extensions   []arena.Pointer[rawExtension]
}

// File is a single .proto file.
type File struct {
	decl
	raw *rawFile
}

func wrapFile(a *AST, p arena.Pointer[rawFile]) File {
	if a == nil || p.Nil() {
		return File{}
	}
	raw := p.In(&a.nodes.files)
	return File{newDecl(a, &raw.rawDecl), raw}
}

// Path returns this file's path; this is the same as its name.
func (f File) Path() string {
	return f.Name()
}

// Package returns the package this file declares.
//
// Returns the zero [Package] if the file has no package declaration.
func (f File) Package() Package {
	return wrapPackage(f.ast, f.raw.pkg)
}

// Syntax returns this file's syntax, such as "proto3" or "editions".
func (f File) Syntax() string {
	return f.ast.names.Value(f.raw.syntax)
}

// IsSyntaxUnspecified returns whether this file had no syntax declaration.
func (f File) IsSyntaxUnspecified() bool {
	return f.raw.syntaxUnspecified
}

// Dependencies returns the files this file imports, in import order.
func (f File) Dependencies() seq.Indexer[File] {
	return wrapAll(f.ast, f.raw.deps, wrapFile)
}

// UnusedDependencies returns the imports of this file that nothing in it
// refers to.
func (f File) UnusedDependencies() seq.Indexer[File] {
	return wrapAll(f.ast, f.raw.unused, wrapFile)
}

// Messages returns the top-level messages of this file.
func (f File) Messages() seq.Indexer[Message] {
	return wrapAll(f.ast, f.raw.messages, wrapMessage)
}

// Enums returns the top-level enums of this file.
func (f File) Enums() seq.Indexer[Enum] {
	return wrapAll(f.ast, f.raw.enums, wrapEnum)
}

// Services returns the services of this file.
func (f File) Services() seq.Indexer[Service] {
	return wrapAll(f.ast, f.raw.services, wrapService)
}

// Extensions returns the top-level extensions of this file.
func (f File) Extensions() seq.Indexer[Extension] {
	return wrapAll(f.ast, f.raw.extensions, wrapExtension)
}
