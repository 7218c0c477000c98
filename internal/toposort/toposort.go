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

// Package toposort sorts the nodes of a directed graph so that every node
// comes after the nodes it has edges to.
package toposort

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrCycle is returned by [Sort] when the graph is not acyclic.
var ErrCycle = errors.New("toposort: cycle")

const (
	unvisited byte = iota
	open           // On the stack, with its children pushed above it.
	done
)

// Sort returns every node reachable from roots, each one after all of its
// children. key returns a unique key for each node, and children returns the
// nodes a node has edges to.
//
// Nodes reachable from an earlier root come before those only reachable from
// a later one.
//
// Returns an error wrapping [ErrCycle] if any node is reachable from itself.
func Sort[Node any, Key comparable](
	roots []Node,
	key func(Node) Key,
	children func(Node) iter.Seq[Node],
) ([]Node, error) {
	var (
		state = make(map[Key]byte)
		stack []Node
		out   []Node
	)
	push := func(n Node) error {
		switch state[key(n)] {
		case unvisited:
			stack = append(stack, n)
		case open:
			return cycle(stack, key, n)
		}
		return nil
	}

	// Depth-first search, with an explicit stack. Each node is seen at the top
	// of the stack twice: once to push its children, and once, after all of
	// them are done, to emit it.
	for _, root := range roots {
		if err := push(root); err != nil {
			return nil, err
		}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			k := key(top)
			switch state[k] {
			case unvisited:
				state[k] = open
				for child := range children(top) {
					if err := push(child); err != nil {
						return nil, err
					}
				}
			case open:
				state[k] = done
				out = append(out, top)
				stack = stack[:len(stack)-1]
			case done:
				stack = stack[:len(stack)-1]
			}
		}
	}
	return out, nil
}

// cycle builds the error for an edge to n, which is open.
func cycle[Node any, Key comparable](stack []Node, key func(Node) Key, n Node) error {
	k := key(n)
	start := len(stack) - 1
	for start > 0 && key(stack[start]) != k {
		start--
	}

	var path []string
	for _, m := range stack[start:] {
		path = append(path, fmt.Sprint(key(m)))
	}
	path = append(path, fmt.Sprint(k))
	return fmt.Errorf("%w: %s", ErrCycle, strings.Join(path, " -> "))
}
