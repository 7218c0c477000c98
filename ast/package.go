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

// WellKnownPackage is the package that the well-known types live in.
const WellKnownPackage = "google.protobuf"

// PackageData is the staging record for a [Package].
type PackageData struct {
	Name  string
	Files []string
}

// Kind implements [Data].
func (*PackageData) Kind() Kind { return KindPackage }

func (d *PackageData) add(h *Hydration, name string) error {
	return add(h, tables.packages, name, func(p *populator, raw *rawPackage) {
		*raw = rawPackage{
			rawDecl: p.decl(d.Name, false),
			files:   resolveAll(p, tables.files, d.Files),
		}
	})
}

type rawPackage struct {
	rawDecl
	files []arena.Pointer[rawFile]
}

// Package is a protobuf package: the set of files that share a package
// declaration.
type Package struct {
	decl
	raw *rawPackage
}

func wrapPackage(a *AST, p arena.Pointer[rawPackage]) Package {
	if a == nil || p.Nil() {
		return Package{}
	}
	raw := p.In(&a.nodes.packages)
	return Package{newDecl(a, &raw.rawDecl), raw}
}

// Files returns the files that declare this package.
func (p Package) Files() seq.Indexer[File] {
	return wrapAll(p.ast, p.raw.files, wrapFile)
}

// IsWellKnown returns whether this is the package of the well-known types.
func (p Package) IsWellKnown() bool {
	return p.FullName() == WellKnownPackage
}
