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

// Package introspect implements the shared introspection algorithm that
// walks a type description and produces IR nodes into a type graph.
//
// The Context is call-scoped: one Context per introspection call, never
// shared across goroutines. Cycle detection uses a visiting set over
// TypeIDs, so self-referential and mutually recursive types terminate in
// O(distinct types) node visits.
package introspect

import (
	"errors"
	"fmt"

	"rivaas.dev/typegraph/diag"
	"rivaas.dev/typegraph/ir"
)

// DiscriminatorProperty is the synthetic property injected into subtypes of
// a closed hierarchy. Its constant value is the subtype's qualified TypeID.
const DiscriminatorProperty = "type"

// ErrNotAnObject is returned by a front-end's Properties when the described
// type has no object shape. The context turns it into an
// ir.UnsupportedTypeError naming the type.
var ErrNotAnObject = errors.New("introspect: not an object type")

// Context accumulates the nodes discovered during one introspection call.
//
// Per-call state only: a visiting set for cycle detection, a reference cache
// and the discovered-nodes map. No locking; a Context must not be shared
// across concurrent calls.
type Context struct {
	graph    *ir.TypeGraph
	visiting map[ir.TypeID]bool
	refs     map[ir.TypeID]ir.TypeRef
	warnings diag.Warnings
}

// New returns a fresh, empty context.
func New() *Context {
	return &Context{
		graph:    ir.NewTypeGraph(),
		visiting: make(map[ir.TypeID]bool),
		refs:     make(map[ir.TypeID]ir.TypeRef),
	}
}

// Graph returns the graph built so far. Callers set the root reference after
// the final ToRef.
func (c *Context) Graph() *ir.TypeGraph {
	return c.graph
}

// Warnings returns the degraded-condition warnings collected so far.
func (c *Context) Warnings() diag.Warnings {
	return c.warnings
}

// Resolve walks d, sets the graph root and returns the completed graph.
// Either a complete, consistent graph is produced or the call fails
// entirely; there is no partial-success mode.
func (c *Context) Resolve(d Descriptor) (*ir.TypeGraph, error) {
	ref, err := c.ToRef(d)
	if err != nil {
		return nil, err
	}

	c.graph.Root = ref

	return c.graph, nil
}

// ToRef recursively converts a type description into a TypeRef, registering
// newly discovered complex types into the shared node map exactly once.
//
// Resolution order, first match wins: primitive, collection, unresolvable
// fallback, closed hierarchy, enum, object. Every step is total; the final
// guard should be unreachable.
func (c *Context) ToRef(d Descriptor) (ir.TypeRef, error) {
	if d == nil {
		return ir.TypeRef{}, &ir.UnsupportedTypeError{TypeName: "<nil>", Reason: "nil descriptor"}
	}

	if kind, ok := d.Primitive(); ok {
		return ir.Inline(ir.PrimitiveNode{Kind: kind}, d.Nullable()), nil
	}

	if elem, ok := d.ListElem(); ok {
		elemRef, err := c.elementRef(elem, d.Name())
		if err != nil {
			return ir.TypeRef{}, err
		}

		return ir.Inline(ir.ListNode{Element: elemRef}, d.Nullable()), nil
	}

	if key, value, ok := d.MapEntry(); ok {
		keyRef, err := c.elementRef(key, d.Name())
		if err != nil {
			return ir.TypeRef{}, err
		}
		valueRef, err := c.elementRef(value, d.Name())
		if err != nil {
			return ir.TypeRef{}, err
		}

		return ir.Inline(ir.MapNode{Key: keyRef, Value: valueRef}, d.Nullable()), nil
	}

	// Erased type parameters and unconstrained interfaces resolve to the
	// universal object node, registered once. This keeps resolution total.
	if d.Unresolvable() {
		c.warn(diag.WarnDegradedGenericErased, d.Name(),
			fmt.Sprintf("classifier %q erased to the universal object", d.Name()))

		if !c.graph.Contains(ir.UniversalObjectID) {
			if err := c.graph.Add(ir.UniversalObjectID, ir.ObjectNode{Name: string(ir.UniversalObjectID)}); err != nil {
				return ir.TypeRef{}, err
			}
		}

		return ir.Ref(ir.UniversalObjectID, d.Nullable()), nil
	}

	id := d.ID()
	if id == "" {
		return ir.TypeRef{}, &ir.UnsupportedTypeError{TypeName: d.Name(), Reason: "no classifier identity"}
	}

	ref, err := c.declared(d, id)
	if err != nil {
		return ir.TypeRef{}, err
	}

	return ref.WithNullable(d.Nullable()), nil
}

// elementRef resolves a collection element or map key/value. A nil
// descriptor means the front-end could not determine the type; the element
// degrades to a string placeholder rather than failing.
func (c *Context) elementRef(d Descriptor, container string) (ir.TypeRef, error) {
	if d == nil {
		c.warn(diag.WarnDegradedElementFallback, container,
			fmt.Sprintf("element type of %q unavailable, falling back to string", container))

		return ir.Inline(ir.PrimitiveNode{Kind: ir.KindString}, false), nil
	}

	return c.ToRef(d)
}

// declared resolves a declared type under the given (possibly qualified) id.
// Returns the canonical non-nullable reference; callers overlay nullability.
func (c *Context) declared(d Descriptor, id ir.TypeID) (ir.TypeRef, error) {
	if ref, ok := c.refs[id]; ok {
		return ref, nil
	}

	// Currently under construction or already discovered: short-circuit with
	// a bare reference. This is what makes cyclic type graphs terminate.
	if c.visiting[id] || c.graph.Contains(id) {
		ref := ir.Ref(id, false)
		c.refs[id] = ref

		return ref, nil
	}

	if variants, ok := d.Variants(); ok {
		return c.polymorphic(d, id, variants)
	}

	if entries, ok := d.EnumEntries(); ok {
		node := ir.EnumNode{Name: d.Name(), Entries: entries, Description: d.Description()}
		if err := c.graph.Add(id, node); err != nil {
			return ir.TypeRef{}, err
		}

		ref := ir.Ref(id, false)
		c.refs[id] = ref

		return ref, nil
	}

	return c.object(d, id, nil)
}

// polymorphic builds a PolymorphicNode for a closed hierarchy root. Subtype
// ids are qualified with the parent id ("Result.Unknown"), transitively for
// deeper nesting, so unrelated hierarchies sharing a simple subtype name do
// not collide. The discriminator mapping keeps the unqualified simple name
// as the wire-level value.
func (c *Context) polymorphic(d Descriptor, id ir.TypeID, variants []Descriptor) (ir.TypeRef, error) {
	c.visiting[id] = true

	node := ir.PolymorphicNode{
		BaseName:    d.Name(),
		Description: d.Description(),
	}
	mapping := make(map[string]ir.TypeID, len(variants))

	for _, v := range variants {
		subID := ir.TypeID(string(id) + "." + v.Name())

		if _, err := c.variant(v, subID); err != nil {
			return ir.TypeRef{}, err
		}

		node.Subtypes = append(node.Subtypes, subID)
		mapping[v.Name()] = subID
	}

	node.Discriminator = &ir.Discriminator{
		Property: DiscriminatorProperty,
		Required: true,
		Mapping:  mapping,
	}

	delete(c.visiting, id)

	if err := c.graph.Add(id, node); err != nil {
		return ir.TypeRef{}, err
	}

	ref := ir.Ref(id, false)
	c.refs[id] = ref

	return ref, nil
}

// variant resolves one subtype of a closed hierarchy under its qualified id.
// Nested hierarchy roots recurse into polymorphic; plain subtypes become
// objects with an injected discriminator property.
func (c *Context) variant(v Descriptor, subID ir.TypeID) (ir.TypeRef, error) {
	if ref, ok := c.refs[subID]; ok {
		return ref, nil
	}

	if c.visiting[subID] || c.graph.Contains(subID) {
		ref := ir.Ref(subID, false)
		c.refs[subID] = ref

		return ref, nil
	}

	if nested, ok := v.Variants(); ok {
		return c.polymorphic(v, subID, nested)
	}

	disc := &ir.Property{
		Name:       DiscriminatorProperty,
		Type:       ir.Inline(ir.PrimitiveNode{Kind: ir.KindString}, false),
		HasDefault: true,
		Default:    string(subID),
		Const:      true,
	}

	return c.object(v, subID, disc)
}

// object builds an ObjectNode under id. disc, when non-nil, is the synthetic
// discriminator property prepended to the subtype's own members.
func (c *Context) object(d Descriptor, id ir.TypeID, disc *ir.Property) (ir.TypeRef, error) {
	c.visiting[id] = true

	props, err := d.Properties()
	if err != nil {
		if errors.Is(err, ErrNotAnObject) {
			return ir.TypeRef{}, &ir.UnsupportedTypeError{TypeName: d.Name(), Reason: "no rule matched the classifier"}
		}

		// Errors raised deep in resolution propagate unmodified.
		return ir.TypeRef{}, err
	}

	node := ir.ObjectNode{
		Name:        d.Name(),
		Description: d.Description(),
		Required:    make(map[string]bool),
	}

	if disc != nil {
		node.Properties = append(node.Properties, *disc)
		node.Required[disc.Name] = true
	}

	for _, p := range props {
		if disc != nil && p.Name == disc.Name {
			continue
		}

		ref, err := c.ToRef(p.Type)
		if err != nil {
			return ir.TypeRef{}, err
		}

		node.Properties = append(node.Properties, ir.Property{
			Name:        p.Name,
			Type:        ref,
			Description: p.Description,
			HasDefault:  p.HasDefault,
			Default:     p.Default,
			Example:     p.Example,
			Constraints: p.Constraints,
		})

		if p.Required {
			node.Required[p.Name] = true
		}

		if p.HasDefault && p.Default == nil {
			c.warn(diag.WarnLimitationDefaultValueUnknown, d.Name()+"."+p.Name,
				fmt.Sprintf("default value of %s.%s is present but unknown", d.Name(), p.Name))
		}
	}

	delete(c.visiting, id)

	if err := c.graph.Add(id, node); err != nil {
		return ir.TypeRef{}, err
	}

	ref := ir.Ref(id, false)
	c.refs[id] = ref

	return ref, nil
}

func (c *Context) warn(code diag.WarningCode, path, message string) {
	c.warnings = append(c.warnings, diag.NewWarning(code, path, message))
}
