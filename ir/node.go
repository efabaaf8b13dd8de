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

// Package ir defines the language-agnostic intermediate representation of a
// data shape: a graph of type nodes indexed by stable identifiers.
//
// The IR is produced by an introspection front-end (reflection or
// compile-time symbols) and consumed by the schema transformer. It is a
// superset of what any single target schema format needs; format-specific
// differences are handled during transformation.
package ir

// TypeID is an opaque, globally unique key for a type declaration.
//
// For top-level declarations it is the declared name. Subtypes of a closed
// hierarchy are qualified with their parent's simple name ("Result.Unknown")
// to keep unrelated hierarchies from colliding in one graph namespace.
type TypeID string

// String returns the identifier as a string.
func (id TypeID) String() string {
	return string(id)
}

// UniversalObjectID identifies the well-known fallback node used for type
// parameters and other classifiers that cannot be resolved to a concrete
// declaration. It is registered at most once per graph.
const UniversalObjectID TypeID = "Any"

// PrimitiveKind enumerates the scalar kinds the IR distinguishes.
type PrimitiveKind uint8

const (
	KindString PrimitiveKind = iota
	KindBoolean
	KindInt
	KindLong
	KindFloat
	KindDouble
)

// String returns the kind name for diagnostics.
func (k PrimitiveKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	default:
		return "unknown"
	}
}

// TypeNode is a node in the type graph. The set of implementations is closed:
// PrimitiveNode, ListNode, MapNode, ObjectNode, EnumNode and PolymorphicNode.
//
// Nodes are never mutated after they are inserted into a TypeGraph. Anything
// reference-level (nullability) lives on TypeRef, not on the node.
type TypeNode interface {
	node()
}

// PrimitiveNode represents a scalar type.
type PrimitiveNode struct {
	Kind PrimitiveKind
}

// ListNode represents a homogeneous sequence.
type ListNode struct {
	Element TypeRef
}

// MapNode represents a key/value container. Keys are conventionally
// string-typed for JSON compatibility.
type MapNode struct {
	Key   TypeRef
	Value TypeRef
}

// Property describes one member of an ObjectNode.
type Property struct {
	// Name is the wire-level property name.
	Name string

	// Type is the property's type reference.
	Type TypeRef

	// Description documents the property, if any.
	Description string

	// HasDefault reports whether the property has a default value in the
	// source declaration. A front-end may know presence without knowing the
	// value, in which case Default is nil. Absence of a default value with
	// HasDefault set means "default unknown", never "default is null".
	HasDefault bool

	// Default is the concrete default value, when known.
	Default any

	// Const marks the property as fixed to Default (used for injected
	// discriminator properties on closed-hierarchy subtypes).
	Const bool

	// Example is an illustrative value for the property, when declared.
	Example any

	// Constraints lists validation constraints attached to the property.
	Constraints []Constraint
}

// ObjectNode represents a record type with named properties.
type ObjectNode struct {
	// Name is the simple declared name.
	Name string

	// Properties lists the members in declaration order. Order is
	// significant: it drives deterministic required-list output.
	Properties []Property

	// Required names the properties that are required regardless of the
	// transformer's required-field strategy (e.g. properties inherited from
	// a closed-hierarchy parent).
	Required map[string]bool

	// Description documents the declaration, if any.
	Description string
}

// EnumNode represents a closed set of named constants.
type EnumNode struct {
	// Name is the simple declared name.
	Name string

	// Entries lists the constant names in declaration order.
	Entries []string

	// Description documents the declaration, if any.
	Description string
}

// Discriminator describes how subtypes of a polymorphic node are told apart
// on the wire.
type Discriminator struct {
	// Property is the discriminator property name ("type").
	Property string

	// Required reports whether the discriminator property must be present.
	Required bool

	// Mapping maps the wire-level discriminator value (the unqualified
	// simple name) to the qualified TypeID of the subtype definition.
	Mapping map[string]TypeID
}

// PolymorphicNode represents a closed hierarchy rendered as a disjunction of
// its subtypes.
type PolymorphicNode struct {
	// BaseName is the simple declared name of the hierarchy root.
	BaseName string

	// Subtypes lists the qualified TypeIDs of the direct subtypes in
	// declaration order.
	Subtypes []TypeID

	// Discriminator describes the discriminator property, if one is used.
	Discriminator *Discriminator

	// Description documents the declaration, if any.
	Description string
}

func (PrimitiveNode) node()   {}
func (ListNode) node()        {}
func (MapNode) node()         {}
func (ObjectNode) node()      {}
func (EnumNode) node()        {}
func (PolymorphicNode) node() {}
