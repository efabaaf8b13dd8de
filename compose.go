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

// WithOptions composes multiple options into a single option.
//
// This enables creating reusable option sets for common configurations.
// Options are applied in the order they are provided, with later options
// potentially overriding values set by earlier options.
//
// Example:
//
//	// Define reusable option sets
//	var (
//	    StrictTools = typegraph.WithOptions(
//	        typegraph.WithStrictRequired(),
//	        typegraph.WithDiscriminator(false),
//	    )
//
//	    Validated = typegraph.WithOptions(
//	        StrictTools,
//	        typegraph.WithValidation(true),
//	    )
//	)
//
//	api := typegraph.MustNew(
//	    Validated,
//	    typegraph.WithSchemaID("https://example.com/schemas/search"),
//	)
func WithOptions(opts ...Option) Option {
	return func(a *API) {
		for _, opt := range opts {
			opt(a)
		}
	}
}
