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
	"reflect"

	"rivaas.dev/typegraph/internal/reflectx"
	"rivaas.dev/typegraph/internal/transform"
)

// RequiredMode governs which properties land in an object schema's required
// list.
type RequiredMode uint8

const (
	// RequiredByPresence requires exactly the properties without a declared
	// default value. This is the default policy.
	RequiredByPresence RequiredMode = iota

	// RequiredNonNullable requires exactly the non-nullable properties.
	RequiredNonNullable

	// RequiredAll requires every property.
	RequiredAll
)

// Draft202012 is the default $schema dialect emitted on object schemas.
const Draft202012 = transform.Draft202012

// API holds schema-generation configuration.
// All fields are public for functional options, but direct modification after
// creation is not recommended. Use functional options to configure.
//
// Create instances using [New] or [MustNew]. An API is safe for concurrent
// use; each generation call is independent.
type API struct {
	// RequiredMode selects the required-field strategy.
	// Default: RequiredByPresence
	RequiredMode RequiredMode

	// TreatNullableOptionalAsRequired keeps defaulted nullable properties in
	// the required list, widening their type with a null variant and
	// attaching an explicit null default. Used for strict tool consumers
	// that reject schemas with optional properties.
	// Default: false
	TreatNullableOptionalAsRequired bool

	// NullableAsField encodes nullability as a boolean `nullable` flag
	// instead of a two-element type array.
	// Default: false
	NullableAsField bool

	// IncludeDiscriminator emits the discriminator block on oneOf
	// compositions.
	// Default: true
	IncludeDiscriminator bool

	// Flatten inlines every referenced type in place instead of emitting
	// $defs pointers. Tool schemas are always flattened regardless of this
	// setting.
	// Default: false
	Flatten bool

	// Draft is the $schema dialect emitted on object schemas.
	// Default: Draft202012
	Draft string

	// SchemaID, when set, is emitted as the top-level $id.
	SchemaID string

	// DescriptionTag is the struct tag holding property descriptions under
	// the reflection front-end.
	// Default: "doc"
	DescriptionTag string

	// ValidateOutput enables JSON Schema validation of generated documents.
	// When enabled, generation validates the output against the draft
	// 2020-12 dialect and returns an error if the document is invalid.
	// This catches generation bugs early but adds ~1-5ms overhead.
	// Default: false
	ValidateOutput bool

	// unions, constructors and defaults feed the reflection front-end
	// (private to enforce functional options).
	unions       map[reflect.Type][]reflect.Type
	constructors map[reflect.Type]reflect.Value
	defaults     *reflectx.DefaultCache

	// registry resolves generators by source and schema kind.
	registry *Registry
}

// Option configures schema generation using the functional options pattern.
// Options are applied in order, with later options potentially overriding
// earlier ones.
type Option func(*API)

// New creates a new [API] with the given options.
//
// It applies default values and validates the configuration. Returns an
// error if validation fails (e.g., a union registration whose variants do
// not implement the base interface).
//
// Example:
//
//	api, err := typegraph.New(
//	    typegraph.WithRequiredMode(typegraph.RequiredNonNullable),
//	    typegraph.WithUnion((*Shape)(nil), Circle{}, Rect{}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*API, error) {
	api := &API{
		RequiredMode:         RequiredByPresence,
		IncludeDiscriminator: true,
		Draft:                Draft202012,
		DescriptionTag:       "doc",
		defaults:             reflectx.NewDefaultCache(),
	}

	for _, opt := range opts {
		opt(api)
	}

	if err := api.Validate(); err != nil {
		return nil, err
	}

	if api.registry == nil {
		api.registry = defaultRegistry(api)
	}

	return api, nil
}

// MustNew creates a new [API] and panics if validation fails.
//
// This is a convenience wrapper around [New] for use in package
// initialization or when configuration errors should cause immediate failure.
func MustNew(opts ...Option) *API {
	api, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return api
}

// Registry returns the generator registry in use.
func (a *API) Registry() *Registry {
	return a.registry
}

// Validate checks if the [API] configuration is valid.
//
// It ensures the required-field mode is known, every registered union
// variant implements its base interface, and every registered constructor is
// a function returning the constructed type.
//
// Validation is automatically called by [New] and [MustNew].
func (a *API) Validate() error {
	if a.RequiredMode > RequiredAll {
		return ErrInvalidRequiredMode
	}

	for base, variants := range a.unions {
		if base == nil || base.Kind() != reflect.Interface || len(variants) == 0 {
			return ErrInvalidUnion
		}
		for _, v := range variants {
			if v == nil || (!v.Implements(base) && !reflect.PointerTo(v).Implements(base)) {
				return ErrInvalidUnion
			}
		}
	}

	for t, ctor := range a.constructors {
		if ctor.Kind() != reflect.Func || ctor.Type().NumOut() == 0 {
			return ErrInvalidConstructor
		}
		out := ctor.Type().Out(0)
		if out != t && out != reflect.PointerTo(t) {
			return ErrInvalidConstructor
		}
	}

	return nil
}

// transformConfig projects the API configuration onto one transformation.
func (a *API) transformConfig(kind SchemaKind) transform.Config {
	cfg := transform.Config{
		Required:                        transform.RequiredMode(a.RequiredMode),
		TreatNullableOptionalAsRequired: a.TreatNullableOptionalAsRequired,
		NullableAsField:                 a.NullableAsField,
		IncludeDiscriminator:            a.IncludeDiscriminator,
	}

	if a.Flatten {
		cfg.Mode = transform.ModeFlatten
	}

	// Tool parameters are always a self-contained flattened object; dialect
	// and identity headers belong to standalone documents only.
	if kind == SchemaTool {
		cfg.Mode = transform.ModeFlatten
	} else {
		cfg.Draft = a.Draft
		cfg.SchemaID = a.SchemaID
	}

	return cfg
}

// WithRequiredMode sets the required-field strategy.
//
// Default: RequiredByPresence
//
// Example:
//
//	typegraph.WithRequiredMode(typegraph.RequiredAll)
func WithRequiredMode(mode RequiredMode) Option {
	return func(a *API) {
		a.RequiredMode = mode
	}
}

// WithStrictRequired requires every property and keeps defaulted nullable
// properties required by widening them with a null variant. This is the
// policy strict function-calling consumers expect.
//
// Shorthand for WithRequiredMode(RequiredAll) plus
// WithTreatNullableOptionalAsRequired(true).
func WithStrictRequired() Option {
	return func(a *API) {
		a.RequiredMode = RequiredAll
		a.TreatNullableOptionalAsRequired = true
	}
}

// WithTreatNullableOptionalAsRequired keeps defaulted nullable properties in
// the required list, widening their type with null and defaulting them to
// null.
//
// Default: false
func WithTreatNullableOptionalAsRequired(enabled bool) Option {
	return func(a *API) {
		a.TreatNullableOptionalAsRequired = enabled
	}
}

// WithNullableField encodes nullability as a boolean `nullable` flag instead
// of a two-element type array. Some schema consumers predate type-array
// unions and only understand the flag form.
//
// Default: false (type arrays)
func WithNullableField(enabled bool) Option {
	return func(a *API) {
		a.NullableAsField = enabled
	}
}

// WithDiscriminator enables or disables the discriminator block on oneOf
// compositions.
//
// Default: true
func WithDiscriminator(enabled bool) Option {
	return func(a *API) {
		a.IncludeDiscriminator = enabled
	}
}

// WithFlatten inlines every referenced type in place instead of emitting
// $defs pointers. Inlining duplicates shared types by design; cyclic types
// degrade with a warning.
//
// Default: false ($defs references)
func WithFlatten(enabled bool) Option {
	return func(a *API) {
		a.Flatten = enabled
	}
}

// WithDraft sets the $schema dialect emitted on object schemas. An empty
// string suppresses the $schema keyword.
//
// Default: Draft202012
func WithDraft(draft string) Option {
	return func(a *API) {
		a.Draft = draft
	}
}

// WithSchemaID sets the top-level $id emitted on object schemas.
func WithSchemaID(id string) Option {
	return func(a *API) {
		a.SchemaID = id
	}
}

// WithDescriptionTag sets the struct tag the reflection front-end reads
// property descriptions from.
//
// Default: "doc"
//
// Example:
//
//	typegraph.WithDescriptionTag("description")
func WithDescriptionTag(tag string) Option {
	return func(a *API) {
		a.DescriptionTag = tag
	}
}

// WithUnion registers a closed hierarchy for the reflection front-end: base
// is a nil pointer to the interface type, variants are zero values of the
// implementing structs, in the order their subtype schemas should appear.
//
// Interfaces without a registration erase to the universal object with a
// warning. The symbol front-end discovers hierarchies from package scope and
// ignores registrations.
//
// Example:
//
//	typegraph.WithUnion((*Shape)(nil), Circle{}, Rect{})
func WithUnion(base any, variants ...any) Option {
	return func(a *API) {
		baseType := reflect.TypeOf(base)
		for baseType != nil && baseType.Kind() == reflect.Pointer {
			baseType = baseType.Elem()
		}

		variantTypes := make([]reflect.Type, 0, len(variants))
		for _, v := range variants {
			variantTypes = append(variantTypes, reflect.TypeOf(v))
		}

		if a.unions == nil {
			a.unions = make(map[reflect.Type][]reflect.Type)
		}
		a.unions[baseType] = variantTypes
	}
}

// WithConstructor registers a constructor function used to probe default
// values for the struct type it returns. The constructor is invoked once per
// type with zero-value arguments; fields it populates become declared
// defaults.
//
// Example:
//
//	typegraph.WithConstructor(NewSearchRequest)
func WithConstructor(fn any) Option {
	return func(a *API) {
		v := reflect.ValueOf(fn)
		if v.Kind() != reflect.Func || v.Type().NumOut() == 0 {
			// Validate() reports the error; key under a nil-safe placeholder.
			if a.constructors == nil {
				a.constructors = make(map[reflect.Type]reflect.Value)
			}
			a.constructors[reflect.TypeOf(struct{}{})] = v

			return
		}

		t := v.Type().Out(0)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		if a.constructors == nil {
			a.constructors = make(map[reflect.Type]reflect.Value)
		}
		a.constructors[t] = v
	}
}

// WithValidation enables or disables JSON Schema validation of generated
// documents.
//
// When enabled, generation validates the output against the draft 2020-12
// dialect and returns an error if the document is invalid. Useful in
// development and CI; adds ~1-5ms overhead per generation.
//
// Default: false
func WithValidation(enabled bool) Option {
	return func(a *API) {
		a.ValidateOutput = enabled
	}
}

// WithRegistry replaces the generator registry. Use NewRegistry to compose
// custom generators with the built-in ones.
func WithRegistry(r *Registry) Option {
	return func(a *API) {
		a.registry = r
	}
}
