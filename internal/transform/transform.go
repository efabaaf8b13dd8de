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

// Package transform renders a type graph into a concrete schema document.
//
// The transformation is deterministic: given the same graph and
// configuration, the output is byte-identical. Definitions are rendered in
// graph insertion order and the encoder canonicalizes object keys.
package transform

import (
	"rivaas.dev/typegraph/diag"
	"rivaas.dev/typegraph/ir"
)

// Draft202012 is the default $schema dialect for object schemas.
const Draft202012 = "https://json-schema.org/draft/2020-12/schema"

// RequiredMode governs which properties land in an object's required list.
type RequiredMode uint8

const (
	// RequiredByPresence requires exactly the properties without a declared
	// default. This is the default, lenient policy.
	RequiredByPresence RequiredMode = iota

	// RequiredNonNullable requires exactly the non-nullable properties.
	RequiredNonNullable

	// RequiredAll requires every property. Combined with
	// TreatNullableOptionalAsRequired this is the strict policy used for
	// tool schemas.
	RequiredAll
)

// Mode selects how references are emitted.
type Mode uint8

const (
	// ModeDefs renders each referenced node once into $defs and emits
	// pointers. Preferred for general object schemas.
	ModeDefs Mode = iota

	// ModeFlatten inlines every referenced node in place, every time it is
	// referenced. Intentional duplication, no memoization; required for
	// tool schemas whose consumers resolve no references.
	ModeFlatten
)

// Config configures one transformation.
type Config struct {
	// Mode selects $defs references or full inlining.
	Mode Mode

	// Required selects the required-field strategy.
	Required RequiredMode

	// TreatNullableOptionalAsRequired keeps defaulted nullable properties
	// in the required list, widening their type with a null variant and
	// attaching default null.
	TreatNullableOptionalAsRequired bool

	// NullableAsField encodes nullability as a boolean `nullable` flag
	// instead of a two-element type array.
	NullableAsField bool

	// IncludeDiscriminator emits the discriminator block on oneOf nodes.
	IncludeDiscriminator bool

	// Draft, when set, is emitted as the top-level $schema.
	Draft string

	// SchemaID, when set, is emitted as the top-level $id.
	SchemaID string
}

// Transform renders graph into a schema document under cfg.
func Transform(graph *ir.TypeGraph, cfg Config) (*Document, diag.Warnings, error) {
	t := &transformer{
		cfg:       cfg,
		graph:     graph,
		defs:      make(map[string]*Document),
		rendering: make(map[ir.TypeID]bool),
	}

	doc, err := t.root()
	if err != nil {
		return nil, t.warnings, err
	}

	return doc, t.warnings, nil
}

type transformer struct {
	cfg       Config
	graph     *ir.TypeGraph
	defs      map[string]*Document
	rendering map[ir.TypeID]bool
	warnings  diag.Warnings
}

// root renders the graph root. A declared root is rendered in place at the
// top level; any further reference to it points into $defs.
func (t *transformer) root() (*Document, error) {
	var doc *Document
	var err error

	ref := t.graph.Root
	if ref.IsRef() {
		node, ok := t.graph.Lookup(ref.Target)
		if !ok {
			return nil, &ir.MissingNodeError{ID: ref.Target}
		}

		t.rendering[ref.Target] = true
		doc, err = t.node(node, ref.Target)
		delete(t.rendering, ref.Target)
	} else {
		doc, err = t.node(ref.Node, "")
	}
	if err != nil {
		return nil, err
	}

	if ref.Nullable {
		doc = t.nullable(doc)
	}

	doc.Schema = t.cfg.Draft
	doc.ID = t.cfg.SchemaID
	if len(t.defs) > 0 {
		doc.Defs = t.defs
	}

	return doc, nil
}

// render resolves a TypeRef to a document, overlaying reference-level
// nullability.
func (t *transformer) render(ref ir.TypeRef) (*Document, error) {
	var doc *Document
	var err error

	if ref.IsRef() {
		doc, err = t.renderTarget(ref.Target)
	} else {
		doc, err = t.node(ref.Node, "")
	}
	if err != nil {
		return nil, err
	}

	if ref.Nullable {
		doc = t.nullable(doc)
	}

	return doc, nil
}

// renderTarget resolves a graph reference: a $defs pointer in reference
// mode, a fresh in-place rendering in flattening mode.
func (t *transformer) renderTarget(id ir.TypeID) (*Document, error) {
	node, ok := t.graph.Lookup(id)
	if !ok {
		return nil, &ir.MissingNodeError{ID: id}
	}

	if t.cfg.Mode == ModeFlatten {
		// Flattened output cannot express self-reference; degrade the
		// back-edge to a bare object.
		if t.rendering[id] {
			t.warn(diag.WarnDegradedCycleFlattened, string(id),
				"cyclic reference to "+string(id)+" rendered as a bare object in flattened output")

			return &Document{Type: "object"}, nil
		}

		t.rendering[id] = true
		defer delete(t.rendering, id)

		return t.node(node, id)
	}

	if _, exists := t.defs[string(id)]; !exists {
		// Reserve the slot first so cyclic definitions terminate.
		t.defs[string(id)] = nil

		doc, err := t.node(node, id)
		if err != nil {
			return nil, err
		}
		t.defs[string(id)] = doc
	}

	return &Document{Ref: "#/$defs/" + string(id)}, nil
}

// node renders a single node. id is the node's TypeID for declared types,
// empty for inline nodes.
func (t *transformer) node(node ir.TypeNode, id ir.TypeID) (*Document, error) {
	switch n := node.(type) {
	case ir.PrimitiveNode:
		return &Document{Type: primitiveType(n.Kind)}, nil

	case ir.ListNode:
		items, err := t.render(n.Element)
		if err != nil {
			return nil, err
		}

		return &Document{Type: "array", Items: items}, nil

	case ir.MapNode:
		// The value shape is rendered once and attached as the
		// any-key-matches constraint; maps are never enumerated key by key.
		value, err := t.render(n.Value)
		if err != nil {
			return nil, err
		}

		return &Document{Type: "object", AdditionalProps: value}, nil

	case ir.ObjectNode:
		return t.object(n)

	case ir.EnumNode:
		return &Document{
			Type:        "string",
			Enum:        toAnySlice(n.Entries),
			Description: n.Description,
		}, nil

	case ir.PolymorphicNode:
		return t.polymorphic(n)

	default:
		return nil, &ir.UnsupportedTypeError{TypeName: string(id), Reason: "unknown node variant"}
	}
}

// object renders an ObjectNode: the required set per the configured
// strategy, each property recursively, then per-property adjustments.
func (t *transformer) object(n ir.ObjectNode) (*Document, error) {
	doc := &Document{
		Type:            "object",
		Description:     n.Description,
		AdditionalProps: false,
	}

	if len(n.Properties) > 0 {
		doc.Properties = make(map[string]*Document, len(n.Properties))
	}

	for _, p := range n.Properties {
		required := n.Required[p.Name] || t.isRequired(p)

		nullable := p.Type.Nullable
		widenNull := false

		switch {
		case required && !p.HasDefault:
			// Required, non-defaulted fields lose the nullability union.
			nullable = false
		case p.HasDefault && nullable && t.cfg.TreatNullableOptionalAsRequired:
			required = true
			widenNull = true
		}

		pd, err := t.render(p.Type.WithNullable(nullable))
		if err != nil {
			return nil, err
		}

		t.adjust(pd, p, widenNull)

		doc.Properties[p.Name] = pd
		if required {
			doc.Required = append(doc.Required, p.Name)
		}
	}

	return doc, nil
}

// adjust overlays property-level decoration on a rendered type document.
func (t *transformer) adjust(pd *Document, p ir.Property, widenNull bool) {
	if p.Description != "" {
		pd.Description = p.Description
	}

	if p.Const {
		pd.Const = p.Default
	} else if p.HasDefault && p.Default != nil {
		pd.Default = p.Default
	}

	if widenNull {
		pd.Default = nullLiteral{}
	}

	if p.Example != nil {
		pd.Examples = []any{p.Example}
	}

	for _, c := range p.Constraints {
		applyConstraint(pd, c)
	}
}

func (t *transformer) isRequired(p ir.Property) bool {
	switch t.cfg.Required {
	case RequiredAll:
		return true
	case RequiredNonNullable:
		return !p.Type.Nullable
	default:
		return !p.HasDefault
	}
}

// polymorphic renders a oneOf disjunction over the subtypes, optionally
// with the discriminator block. The mapping points at $defs entries and is
// therefore only emitted in reference mode.
func (t *transformer) polymorphic(n ir.PolymorphicNode) (*Document, error) {
	doc := &Document{Description: n.Description}

	for _, sub := range n.Subtypes {
		sd, err := t.renderTarget(sub)
		if err != nil {
			return nil, err
		}
		doc.OneOf = append(doc.OneOf, sd)
	}

	if t.cfg.IncludeDiscriminator && n.Discriminator != nil {
		disc := &Discriminator{PropertyName: n.Discriminator.Property}

		if t.cfg.Mode == ModeDefs && len(n.Discriminator.Mapping) > 0 {
			disc.Mapping = make(map[string]string, len(n.Discriminator.Mapping))
			for value, target := range n.Discriminator.Mapping {
				disc.Mapping[value] = "#/$defs/" + string(target)
			}
		}

		doc.Discriminator = disc
	}

	return doc, nil
}

// nullable widens a rendered document with a null variant, or sets the
// boolean flag when that encoding is configured.
func (t *transformer) nullable(doc *Document) *Document {
	if t.cfg.NullableAsField {
		if doc.Ref != "" {
			return &Document{Nullable: true, OneOf: []*Document{doc}}
		}
		doc.Nullable = true

		return doc
	}

	if s, ok := doc.Type.(string); ok && doc.Enum == nil {
		doc.Type = []string{s, "null"}

		return doc
	}

	// References and enum documents cannot widen their own type keyword.
	return &Document{OneOf: []*Document{doc, {Type: "null"}}}
}

func (t *transformer) warn(code diag.WarningCode, path, message string) {
	t.warnings = append(t.warnings, diag.NewWarning(code, path, message))
}

func primitiveType(k ir.PrimitiveKind) string {
	switch k {
	case ir.KindString:
		return "string"
	case ir.KindBoolean:
		return "boolean"
	case ir.KindInt, ir.KindLong:
		return "integer"
	default:
		return "number"
	}
}

func applyConstraint(doc *Document, c ir.Constraint) {
	switch c.Kind {
	case ir.ConstraintMin:
		n := c.Number
		if c.Exclusive {
			doc.ExclusiveMinimum = &n
		} else {
			doc.Minimum = &n
		}
	case ir.ConstraintMax:
		n := c.Number
		if c.Exclusive {
			doc.ExclusiveMaximum = &n
		} else {
			doc.Maximum = &n
		}
	case ir.ConstraintMinLength:
		l := c.Length
		doc.MinLength = &l
	case ir.ConstraintMaxLength:
		l := c.Length
		doc.MaxLength = &l
	case ir.ConstraintPattern:
		doc.Pattern = c.Text
	case ir.ConstraintOneOf:
		doc.Enum = toAnySlice(c.Values)
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}

	return out
}
