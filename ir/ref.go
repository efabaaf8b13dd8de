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

// TypeRef references a type, either by embedding a node directly (primitives,
// lists, maps) or by TypeID into the graph's node map (anything that can be
// cyclic or shared).
//
// Nullability is a property of the reference, not of the node: the same node
// may be referenced as nullable in one place and non-nullable in another.
type TypeRef struct {
	// Node is the inline node. Set exactly when Target is empty.
	Node TypeNode

	// Target is the TypeID of a node in the graph. Set exactly when Node is
	// nil.
	Target TypeID

	// Nullable reports whether this particular reference admits null.
	Nullable bool
}

// Inline returns a reference that embeds the given node directly.
func Inline(n TypeNode, nullable bool) TypeRef {
	return TypeRef{Node: n, Nullable: nullable}
}

// Ref returns a reference to the node registered under id.
func Ref(id TypeID, nullable bool) TypeRef {
	return TypeRef{Target: id, Nullable: nullable}
}

// IsRef reports whether the reference points into the graph's node map.
func (r TypeRef) IsRef() bool {
	return r.Target != ""
}

// WithNullable returns a copy of the reference with the nullability flag set
// to nullable. The receiver is not modified; cached references are always
// cloned, never mutated.
func (r TypeRef) WithNullable(nullable bool) TypeRef {
	r.Nullable = nullable
	return r
}
