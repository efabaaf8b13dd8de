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

/*
Package diag provides diagnostic types for schema generation.

This package defines warning types and codes used throughout the typegraph
package. Warnings are informational, non-fatal issues that don't prevent
schema generation.

# Basic Usage

Most users don't need to import this package directly - warnings travel on
the generation result:

	import "rivaas.dev/typegraph"

	result, _ := api.GenerateSchema(ctx, Person{})
	if len(result.Warnings) > 0 {
	    fmt.Printf("generated with %d warnings\n", len(result.Warnings))
	}

# Type-Safe Warning Checks

Import this package for type-safe warning code comparisons:

	import (
	    "rivaas.dev/typegraph"
	    "rivaas.dev/typegraph/diag"
	)

	result, _ := api.GenerateSchema(ctx, Person{})

	if result.Warnings.Has(diag.WarnDegradedElementFallback) {
	    log.Println("a collection element type degraded to string")
	}

	degraded := result.Warnings.FilterCategory(diag.CategoryDegraded)

# Warning Categories

Warnings are grouped into categories:

  - CategoryDegraded: documented fallbacks (unknown element types, erased
    type parameters, unavailable defaults)
  - CategoryLimitation: known front-end limitations (default presence
    without content)

Invariant violations are ERRORS, not warnings.
*/
package diag
