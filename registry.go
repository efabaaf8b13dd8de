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

package typegraph

import (
	"context"
	"fmt"
)

// SourceKind identifies an introspection front-end.
type SourceKind string

const (
	// SourceReflection introspects live Go values at runtime.
	SourceReflection SourceKind = "reflection"

	// SourceSymbols introspects declared types from loaded package source,
	// without executing or even compiling the target.
	SourceSymbols SourceKind = "symbols"
)

// SchemaKind identifies an output schema shape.
type SchemaKind string

const (
	// SchemaObject is a standalone JSON Schema document.
	SchemaObject SchemaKind = "object"

	// SchemaTool is a function-calling tool schema with flattened
	// parameters.
	SchemaTool SchemaKind = "tool"
)

// Generator produces one schema kind from one introspection source.
//
// Implementations must be stateless or internally synchronized; a Generator
// is looked up and invoked concurrently.
type Generator interface {
	// Source reports the introspection front-end this generator reads from.
	Source() SourceKind

	// Kind reports the schema shape this generator emits.
	Kind() SchemaKind

	// Generate introspects target and produces the schema document.
	Generate(ctx context.Context, target any) (*Result, error)
}

// Registry resolves generators by source and schema kind.
//
// A registry is built explicitly from a generator list; there is no
// package-level registration. After construction it is immutable and safe
// for concurrent use.
type Registry struct {
	generators map[registryKey]Generator
	order      []registryKey
}

type registryKey struct {
	source SourceKind
	kind   SchemaKind
}

// NewRegistry builds a registry from the given generators. Two generators
// declaring the same source and schema kind is an error.
func NewRegistry(gens ...Generator) (*Registry, error) {
	r := &Registry{generators: make(map[registryKey]Generator, len(gens))}

	for _, g := range gens {
		key := registryKey{source: g.Source(), kind: g.Kind()}
		if _, exists := r.generators[key]; exists {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateGenerator, key.source, key.kind)
		}

		r.generators[key] = g
		r.order = append(r.order, key)
	}

	return r, nil
}

// Lookup returns the generator for the source/schema pair.
func (r *Registry) Lookup(source SourceKind, kind SchemaKind) (Generator, error) {
	g, ok := r.generators[registryKey{source: source, kind: kind}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrGeneratorNotFound, source, kind)
	}

	return g, nil
}

// Generators returns the registered generators in registration order.
func (r *Registry) Generators() []Generator {
	out := make([]Generator, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.generators[key])
	}

	return out
}

// defaultRegistry binds both front-ends to both schema kinds.
func defaultRegistry(api *API) *Registry {
	r, err := NewRegistry(
		&reflectionGenerator{api: api, kind: SchemaObject},
		&reflectionGenerator{api: api, kind: SchemaTool},
		&symbolGenerator{api: api, kind: SchemaObject},
		&symbolGenerator{api: api, kind: SchemaTool},
	)
	if err != nil {
		// The built-in bindings are distinct by construction.
		panic(err)
	}

	return r
}
