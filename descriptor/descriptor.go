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

// Package descriptor hydrates an [ast.AST] from compiled descriptors, such
// as the FileDescriptorSet written by "buf build -o" or "protoc -o".
//
// Every declaration is keyed by its fully-qualified name, without a leading
// dot. Files are keyed by their path. Enum values are scoped as siblings of
// their enum, following protobuf's C++ scoping rules: value FOO of enum
// pkg.Color is named pkg.FOO.
package descriptor

import (
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protohydrate/ast"
)

// Hydrator adds descriptors to an [ast.Hydration], over any number of calls
// to [Hydrator.Add].
//
// A package may span several files, and those files may be added by
// different calls, so packages are only declared by [Hydrator.Finish].
type Hydrator struct {
	config *config
	w      walker
}

// NewHydrator returns a hydrator that adds to h.
//
// h may also be given declarations by other means. They must all be added
// before calling [Hydrator.Finish].
func NewHydrator(h *ast.Hydration, opts ...Option) (*Hydrator, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Hydrator{
		config: c,
		w:      walker{h: h, log: c.logger, files: make(map[string][]string)},
	}, nil
}

// Add adds every declaration in files to the hydration, except for the
// packages they belong to.
//
// Declarations may refer to files that are not in files; they are expected
// to be added by a later call, or by some other means.
func (d *Hydrator) Add(files ...*descriptorpb.FileDescriptorProto) error {
	h := d.w.h
	for _, fdp := range files {
		path := fdp.GetName()
		if !d.config.included(path) {
			d.w.log.Debug("skipping file", zap.String("file", path))
			continue
		}

		before := h.Len()
		if err := d.w.file(fdp); err != nil {
			return fmt.Errorf("descriptor: %s: %w", path, err)
		}
		d.w.log.Debug("hydrated file",
			zap.String("file", path),
			zap.String("package", fdp.GetPackage()),
			zap.Int("names", h.Len()-before))
	}
	return nil
}

// Finish declares every package seen by [Hydrator.Add], in the order they
// were first seen, and then finishes the hydration.
func (d *Hydrator) Finish() (*ast.AST, error) {
	h := d.w.h
	for _, pkg := range d.w.packages {
		if err := h.Add(pkg, &ast.PackageData{Name: pkg, Files: d.w.files[pkg]}); err != nil {
			return nil, fmt.Errorf("descriptor: package %s: %w", pkg, err)
		}
	}

	pending := h.Pending()
	a, err := h.Finish()
	if err != nil {
		d.w.log.Debug("hydration failed", zap.Strings("pending", pending))
		return nil, fmt.Errorf("descriptor: %w", err)
	}

	d.w.log.Info("loaded descriptor set",
		zap.Int("files", a.Files().Len()),
		zap.Int("nodes", a.Len()))
	return a, nil
}

// Load hydrates every file in set, and freezes the result.
func Load(set *descriptorpb.FileDescriptorSet, opts ...Option) (*ast.AST, error) {
	d, err := NewHydrator(ast.NewHydration(), opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Add(set.GetFile()...); err != nil {
		return nil, err
	}
	return d.Finish()
}

// Unmarshal decodes a binary FileDescriptorSet and loads it with [Load].
func Unmarshal(data []byte, opts ...Option) (*ast.AST, error) {
	set := new(descriptorpb.FileDescriptorSet)
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("descriptor: decoding FileDescriptorSet: %w", err)
	}
	return Load(set, opts...)
}
