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

	"github.com/bufbuild/protohydrate/internal/arena"
	"github.com/bufbuild/protohydrate/internal/intern"
)

// rawNode is an entry in the name index of an [AST]: a pointer into the
// arena for kind.
type rawNode struct {
	kind Kind
	name intern.ID
	ptr  arena.Untyped
}

// Node is any node in an [AST], tagged with its [Kind].
//
// The zero Node is not a node of any kind. Nodes are comparable: two Nodes are
// == if and only if they refer to the same declaration.
type Node struct {
	ast *AST
	raw rawNode
}

// IsZero returns whether this is the zero Node.
func (n Node) IsZero() bool {
	return n.ast == nil
}

// AST returns the AST this node belongs to.
func (n Node) AST() *AST {
	return n.ast
}

// Kind returns what kind of node this is.
func (n Node) Kind() Kind {
	return n.raw.kind
}

// FullName returns this node's fully-qualified name.
func (n Node) FullName() string {
	if n.IsZero() {
		return ""
	}
	return n.ast.names.Value(n.raw.name)
}

// String implements [fmt.Stringer].
func (n Node) String() string {
	if n.IsZero() {
		return "<nil>"
	}
	return fmt.Sprintf("%v %s", n.Kind(), n.FullName())
}

// AsPackage converts this node into a package, if that is its kind.
func (n Node) AsPackage() Package {
	if n.Kind() != KindPackage {
		return Package{}
	}
	return wrapPackage(n.ast, arena.Pointer[rawPackage](n.raw.ptr))
}

// AsFile converts this node into a file, if that is its kind.
func (n Node) AsFile() File {
	if n.Kind() != KindFile {
		return File{}
	}
	return wrapFile(n.ast, arena.Pointer[rawFile](n.raw.ptr))
}

// AsMessage converts this node into a message, if that is its kind.
func (n Node) AsMessage() Message {
	if n.Kind() != KindMessage {
		return Message{}
	}
	return wrapMessage(n.ast, arena.Pointer[rawMessage](n.raw.ptr))
}

// AsEnum converts this node into an enum, if that is its kind.
func (n Node) AsEnum() Enum {
	if n.Kind() != KindEnum {
		return Enum{}
	}
	return wrapEnum(n.ast, arena.Pointer[rawEnum](n.raw.ptr))
}

// AsEnumValue converts this node into an enum value, if that is its kind.
func (n Node) AsEnumValue() EnumValue {
	if n.Kind() != KindEnumValue {
		return EnumValue{}
	}
	return wrapEnumValue(n.ast, arena.Pointer[rawEnumValue](n.raw.ptr))
}

// AsService converts this node into a service, if that is its kind.
func (n Node) AsService() Service {
	if n.Kind() != KindService {
		return Service{}
	}
	return wrapService(n.ast, arena.Pointer[rawService](n.raw.ptr))
}

// AsMethod converts this node into a method, if that is its kind.
func (n Node) AsMethod() Method {
	if n.Kind() != KindMethod {
		return Method{}
	}
	return wrapMethod(n.ast, arena.Pointer[rawMethod](n.raw.ptr))
}

// AsField converts this node into a field, if that is its kind.
func (n Node) AsField() Field {
	if n.Kind() != KindField {
		return Field{}
	}
	return wrapField(n.ast, arena.Pointer[rawField](n.raw.ptr))
}

// AsOneof converts this node into a oneof, if that is its kind.
func (n Node) AsOneof() Oneof {
	if n.Kind() != KindOneof {
		return Oneof{}
	}
	return wrapOneof(n.ast, arena.Pointer[rawOneof](n.raw.ptr))
}

// AsExtension converts this node into an extension, if that is its kind.
func (n Node) AsExtension() Extension {
	if n.Kind() != KindExtension {
		return Extension{}
	}
	return wrapExtension(n.ast, arena.Pointer[rawExtension](n.raw.ptr))
}

// rawDecl is the header shared by every raw node.
type rawDecl struct {
	fqn, name  intern.ID
	deprecated bool
}

// decl provides the accessors shared by every node type.
type decl struct {
	ast *AST
	raw *rawDecl
}

func newDecl(a *AST, raw *rawDecl) decl {
	return decl{a, raw}
}

// IsZero returns whether this is the zero value of its node type.
func (d decl) IsZero() bool {
	return d.raw == nil
}

// AST returns the AST this node belongs to.
func (d decl) AST() *AST {
	return d.ast
}

// FullName returns this node's fully-qualified name.
func (d decl) FullName() string {
	if d.IsZero() {
		return ""
	}
	return d.ast.names.Value(d.raw.fqn)
}

// Name returns this node's name, as it was declared.
//
// For most nodes, this is the last component of [decl.FullName]. Files are
// named by their path.
func (d decl) Name() string {
	if d.IsZero() {
		return ""
	}
	return d.ast.names.Value(d.raw.name)
}

// IsDeprecated returns whether this node was marked as deprecated.
func (d decl) IsDeprecated() bool {
	return !d.IsZero() && d.raw.deprecated
}

// Node converts this node into a [Node].
func (d decl) Node() Node {
	if d.IsZero() {
		return Node{}
	}
	return d.ast.Lookup(d.FullName())
}
