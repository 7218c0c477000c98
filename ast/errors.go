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
	"errors"
	"fmt"

	"github.com/bufbuild/protohydrate/internal/toposort"
)

var (
	// ErrPresent is returned when a name is declared twice.
	ErrPresent = errors.New("already declared")

	// ErrTypeMismatch is returned when a name is declared or referenced as a
	// different kind than the one it is already bound to.
	ErrTypeMismatch = errors.New("kind mismatch")

	// ErrIncomplete is returned by [Hydration.Finish] for each name that was
	// referenced but never declared.
	ErrIncomplete = errors.New("never declared")

	// ErrImportCycle is returned by [AST.DependencyOrder] when files import
	// each other.
	ErrImportCycle = toposort.ErrCycle
)

// Error is an error produced while hydrating an AST.
//
// Err is always one of [ErrPresent], [ErrTypeMismatch] or [ErrIncomplete],
// so errors can be classified with [errors.Is].
type Error struct {
	Err error

	// The name that caused the error.
	Name string
	// The kind the failing operation wanted Name to be.
	Kind Kind
	// The kind Name was already bound to.
	Bound Kind
}

// Error implements [error].
func (e *Error) Error() string {
	switch e.Err {
	case ErrPresent:
		return fmt.Sprintf("ast: %v %q is already declared", e.Kind, e.Name)
	case ErrTypeMismatch:
		return fmt.Sprintf("ast: cannot use %q as %v: it is already bound to %v", e.Name, e.Kind, e.Bound)
	case ErrIncomplete:
		return fmt.Sprintf("ast: %v %q is referenced but never declared", e.Kind, e.Name)
	default:
		return fmt.Sprintf("ast: %q: %v", e.Name, e.Err)
	}
}

// Unwrap implements the interface used by [errors.Is].
func (e *Error) Unwrap() error {
	return e.Err
}
