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

package introspect

import "rivaas.dev/typegraph/ir"

// Descriptor is the capability interface both introspection front-ends
// (runtime reflection and compile-time symbols) implement.
//
// The context depends only on this interface, never on reflect or go/types
// directly. A descriptor describes one use of a type: it carries the
// nullability of the reference alongside the identity of the declaration.
type Descriptor interface {
	// ID returns the stable identifier of the declared type. Only meaningful
	// for declared (non-inline) types; inline types may return "".
	ID() ir.TypeID

	// Name returns the simple, unqualified declared name.
	Name() string

	// Nullable reports whether this use of the type admits null.
	Nullable() bool

	// Primitive returns the scalar kind when the type is primitive.
	Primitive() (ir.PrimitiveKind, bool)

	// ListElem returns the element descriptor for list-like types. The
	// element may be nil when element type information is unavailable; the
	// context degrades to a string-typed placeholder in that case.
	ListElem() (Descriptor, bool)

	// MapEntry returns key and value descriptors for map-like types. Either
	// may be nil when unavailable.
	MapEntry() (key, value Descriptor, ok bool)

	// Unresolvable reports whether the classifier cannot be identified as a
	// concrete declared type (an erased type parameter, an unconstrained
	// interface). Such types resolve to the universal object node.
	Unresolvable() bool

	// Variants returns the direct subtypes when the type is a closed
	// hierarchy root, in declaration order.
	Variants() ([]Descriptor, bool)

	// EnumEntries returns the declared constant names in declaration order
	// when the type is an enumeration.
	EnumEntries() ([]string, bool)

	// Properties returns the object members in declaration order. Front-ends
	// prefer constructor/field declarations with default and description
	// extraction; when that is impossible they enumerate public members and
	// report every property as declared-required.
	Properties() ([]PropertySpec, error)

	// Description returns the declaration's documentation, if any
	// description convention matched.
	Description() string
}

// PropertySpec is a front-end's view of one object member, before it is
// resolved into an ir.Property.
type PropertySpec struct {
	// Name is the wire-level property name.
	Name string

	// Type describes the property's type.
	Type Descriptor

	// Description documents the property, if any.
	Description string

	// HasDefault reports whether the declaration carries a default value.
	// Default may be nil even when HasDefault is set; the symbol front-end
	// knows presence but not content.
	HasDefault bool

	// Default is the concrete default value, when known.
	Default any

	// Required marks the property as declared-required independent of the
	// transformer's required-field strategy.
	Required bool

	// Example is an illustrative value for the property, when declared.
	Example any

	// Constraints lists validation constraints attached to the property.
	Constraints []ir.Constraint
}
