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
	"sync/atomic"

	"github.com/petermattis/goid"
)

// writer detects a [Hydration] being mutated by two goroutines at once.
//
// This does not make a Hydration safe for concurrent use: it only turns
// some data races into a panic with a useful message.
type writer struct {
	owner atomic.Int64 // goid of the goroutine inside a method, or zero.
}

// enter marks h as being in use by the calling goroutine, and returns a
// function that marks it as no longer in use.
//
// Panics if h has been finished, or if another goroutine is using it.
func (h *Hydration) enter() (release func()) {
	if h.done {
		panic("ast: use of a Hydration after Finish")
	}

	id := goid.Get()
	if !h.writer.owner.CompareAndSwap(0, id) {
		panic(fmt.Sprintf(
			"ast: Hydration entered by goroutine %d while in use by goroutine %d",
			id, h.writer.owner.Load(),
		))
	}

	if h.nodes == nil {
		h.nodes = new(nodes)
	}
	return func() { h.writer.owner.Store(0) }
}
