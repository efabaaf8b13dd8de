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

import "rivaas.dev/typegraph/diag"

// Result contains one generated schema document.
type Result struct {
	// JSON is the schema document serialized as indented JSON. Generation is
	// deterministic: the same target and configuration produce byte-identical
	// output.
	JSON []byte

	// YAML is the schema document serialized as YAML.
	YAML []byte

	// Warnings contains informational, non-fatal issues.
	// These are advisory only and do not indicate failure.
	// The document in JSON/YAML is valid even when warnings exist.
	//
	// Import "rivaas.dev/typegraph/diag" for type-safe warning code checks.
	Warnings diag.Warnings
}
