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

// Package ast builds a cross-referencing AST of Protobuf declarations.
//
// Declarations are fed into a [Hydration] by fully-qualified name, in any
// order, as one of the staging records that implement [Data]. Staging records
// refer to other declarations by name. Whenever a record names a declaration
// that has not been added yet, the hydration reserves a placeholder for it;
// when that declaration is eventually added, it is written into the reserved
// slot, so every earlier reference observes it.
//
// [Hydration.Finish] checks that every placeholder was filled, and then
// freezes everything into an [AST]. In the AST, every reference is a direct
// link: [Method.Input] returns the [Message] itself, not its name.
//
// # Representation
//
// Nodes are stored in one arena per [Kind], and refer to each other through
// compressed arena pointers. The public node types, such as [Message], are
// small values that pair a pointer to the raw node with the [AST] that owns
// it. Two node values are equal with == exactly when they refer to the same
// declaration.
//
// # Zero values
//
// The zero value of every node type, such as Message{}, is not a node:
// IsZero reports true for it. The accessors shared by all node types (IsZero,
// AST, FullName, Name, IsDeprecated and Node) return zero values when called
// on it, and so does [Field.Variant]. Every other accessor panics.
//
// Accessors that return another node return its zero value when there is no
// such node, such as [Message.Parent] on a top-level message.
//
// # Concurrency
//
// A [Hydration] must only be used by one goroutine at a time. An [AST] is
// immutable and may be read by any number of goroutines concurrently.
package ast

//go:generate go run github.com/bufbuild/protohydrate/internal/enum kind.yaml
