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

// Package typegraph generates JSON Schema documents and function-calling
// tool schemas from Go types.
//
// Generation runs in two phases. An introspection front-end walks a type
// and produces a language-neutral type graph: primitives, lists, maps,
// objects, string enums and closed polymorphic hierarchies, with cycle-safe
// references between declared types. A transformer then renders the graph
// into a concrete schema document, either with $defs references or fully
// inlined for tool consumers.
//
// # Features
//
//   - Two front-ends: runtime reflection over live values, and source-level
//     symbol loading that never executes the target
//   - Property names, descriptions, constraints and defaults from struct
//     tags (json, doc, validate, default)
//   - Closed hierarchies rendered as oneOf with an injected discriminator
//   - Default-value probing through registered constructors
//   - Deterministic output: identical inputs produce byte-identical JSON
//   - Non-fatal degradations surface as typed warnings, never as errors
//
// # Quick Start
//
//	import "rivaas.dev/typegraph"
//
//	type Person struct {
//	    Name  string   `json:"name" doc:"Full name" validate:"required"`
//	    Age   *int     `json:"age" doc:"Age in years" validate:"gte=0"`
//	    Tags  []string `json:"tags"`
//	}
//
//	api := typegraph.MustNew(
//	    typegraph.WithRequiredMode(typegraph.RequiredByPresence),
//	)
//
//	result, err := api.GenerateSchema(ctx, Person{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.JSON))
//
// Tool schemas wrap a flattened parameters object:
//
//	result, err := api.GenerateToolSchema(ctx, typegraph.ToolDef{
//	    Name:        "search_hotels",
//	    Description: "Search for hotels matching the criteria.",
//	    Target:      SearchRequest{},
//	})
//
// The symbol front-end introspects declarations without importing them:
//
//	result, err := api.GenerateSchema(ctx, typegraph.Symbol{
//	    Pattern: "./internal/api",
//	    Type:    "Person",
//	})
//
// # Configuration
//
// Configuration is done exclusively through functional options using [New]
// or [MustNew]. An [API] is immutable after construction and safe for
// concurrent use.
//
// # Conventions
//
// Under reflection, enum types implement SchemaEnum() []string; closed
// hierarchies are registered with [WithUnion]; constructor default probing
// is registered with [WithConstructor]. Under the symbol front-end, enums
// are discovered from package-scope constants and hierarchies from
// interface implementations, both in declaration order.
//
// # Definition Naming
//
// Definition names qualify a type's name with its package name
// ("alpha.Item", "beta.Item"), so same-named types from different packages
// keep distinct definitions. Subtype definitions append the subtype name to
// the parent's qualified name ("pkg.Parent.Sub"), transitively for nested
// hierarchies, so unrelated hierarchies sharing a subtype name also stay
// distinct. The injected discriminator constant carries the qualified
// subtype ID; the discriminator mapping is keyed by the simple subtype name.
package typegraph
