// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

import "fmt"

// TypeGraph is the result of one introspection call: a root reference plus
// the nodes it transitively reaches, indexed by TypeID.
//
// Insertion order of nodes is preserved and drives deterministic definition
// output in the transformer. A graph is built once by a short-lived
// introspection context and is immutable afterwards; nodes are never replaced
// or mutated after insertion.
type TypeGraph struct {
	// Root is the entry point of the graph.
	Root TypeRef

	order []TypeID
	nodes map[TypeID]TypeNode
}

// NewTypeGraph returns an empty graph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{nodes: make(map[TypeID]TypeNode)}
}

// Add registers node under id. Each TypeID maps to exactly one node; adding
// a second node under the same id is an internal-invariant violation and
// returns an error.
func (g *TypeGraph) Add(id TypeID, node TypeNode) error {
	if id == "" {
		return fmt.Errorf("typegraph: empty TypeID")
	}
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("typegraph: duplicate node for %q", id)
	}

	g.nodes[id] = node
	g.order = append(g.order, id)

	return nil
}

// Lookup returns the node registered under id.
func (g *TypeGraph) Lookup(id TypeID) (TypeNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether a node is registered under id.
func (g *TypeGraph) Contains(id TypeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// IDs returns the registered TypeIDs in insertion order.
func (g *TypeGraph) IDs() []TypeID {
	out := make([]TypeID, len(g.order))
	copy(out, g.order)

	return out
}

// Len returns the number of registered nodes.
func (g *TypeGraph) Len() int {
	return len(g.nodes)
}
