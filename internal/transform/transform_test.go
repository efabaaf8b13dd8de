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

//go:build !integration

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/typegraph/diag"
	"rivaas.dev/typegraph/ir"
)

func str(nullable bool) ir.TypeRef {
	return ir.Inline(ir.PrimitiveNode{Kind: ir.KindString}, nullable)
}

func intRef() ir.TypeRef {
	return ir.Inline(ir.PrimitiveNode{Kind: ir.KindInt}, false)
}

func personGraph(t *testing.T) *ir.TypeGraph {
	t.Helper()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Person", ir.ObjectNode{
		Name: "Person",
		Properties: []ir.Property{
			{Name: "name", Type: str(false)},
			{Name: "age", Type: ir.Inline(ir.PrimitiveNode{Kind: ir.KindInt}, true), HasDefault: true, Default: 0},
			{Name: "tags", Type: ir.Inline(ir.ListNode{Element: str(false)}, false)},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Person", false)

	return g
}

func TestTransform_ObjectBasics(t *testing.T) {
	t.Parallel()

	doc, warns, err := Transform(personGraph(t), Config{Draft: Draft202012, SchemaID: "https://example.com/person"})
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, Draft202012, doc.Schema)
	assert.Equal(t, "https://example.com/person", doc.ID)
	assert.Equal(t, "object", doc.Type)
	assert.Equal(t, false, doc.AdditionalProps)

	require.Len(t, doc.Properties, 3)
	assert.Equal(t, "string", doc.Properties["name"].Type)
	assert.Equal(t, "array", doc.Properties["tags"].Type)
	assert.Equal(t, "string", doc.Properties["tags"].Items.Type)

	// Declared root renders in place, so no $defs appear.
	assert.Empty(t, doc.Defs)
}

func TestTransform_RequiredModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "by presence requires non-defaulted",
			cfg:  Config{Required: RequiredByPresence},
			want: []string{"name", "tags"},
		},
		{
			name: "non-nullable requires exactly non-nullable",
			cfg:  Config{Required: RequiredNonNullable},
			want: []string{"name", "tags"},
		},
		{
			name: "all requires everything",
			cfg:  Config{Required: RequiredAll},
			want: []string{"name", "age", "tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, _, err := Transform(personGraph(t), tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Required)
		})
	}
}

func TestTransform_RequiredStripsNullability(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Req", ir.ObjectNode{
		Name: "Req",
		Properties: []ir.Property{
			{Name: "q", Type: str(true)},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Req", false)

	doc, _, err := Transform(g, Config{Required: RequiredAll})
	require.NoError(t, err)

	// Required without default: the null variant is dropped.
	assert.Equal(t, "string", doc.Properties["q"].Type)
	assert.Equal(t, []string{"q"}, doc.Required)
}

func TestTransform_TreatNullableOptionalAsRequired(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Req", ir.ObjectNode{
		Name: "Req",
		Properties: []ir.Property{
			{Name: "cursor", Type: str(true), HasDefault: true, Default: nil},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Req", false)

	doc, _, err := Transform(g, Config{
		Required:                        RequiredAll,
		TreatNullableOptionalAsRequired: true,
	})
	require.NoError(t, err)

	cursor := doc.Properties["cursor"]
	assert.Equal(t, []string{"string", "null"}, cursor.Type)
	assert.Equal(t, nullLiteral{}, cursor.Default)
	assert.Equal(t, []string{"cursor"}, doc.Required)

	// The explicit null default survives encoding despite omitempty.
	res, err := Encode(doc, nil)
	require.NoError(t, err)
	assert.Contains(t, string(res.JSON), `"default": null`)
}

func TestTransform_DefsMode(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Person", ir.ObjectNode{
		Name: "Person",
		Properties: []ir.Property{
			{Name: "home", Type: ir.Ref("Address", false)},
			{Name: "work", Type: ir.Ref("Address", true)},
		},
		Required: map[string]bool{},
	}))
	require.NoError(t, g.Add("Address", ir.ObjectNode{
		Name: "Address",
		Properties: []ir.Property{
			{Name: "street", Type: str(false)},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Person", false)

	doc, _, err := Transform(g, Config{Mode: ModeDefs})
	require.NoError(t, err)

	assert.Equal(t, "#/$defs/Address", doc.Properties["home"].Ref)
	require.Contains(t, doc.Defs, "Address")
	assert.Equal(t, "object", doc.Defs["Address"].Type)

	// Nullable reference to a $ref widens with a oneOf wrapper.
	work := doc.Properties["work"]
	assert.Empty(t, work.Ref)
	require.Len(t, work.OneOf, 2)
	assert.Equal(t, "#/$defs/Address", work.OneOf[0].Ref)
	assert.Equal(t, "null", work.OneOf[1].Type)
}

func TestTransform_FlattenModeInlinesEverywhere(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Person", ir.ObjectNode{
		Name: "Person",
		Properties: []ir.Property{
			{Name: "home", Type: ir.Ref("Address", false)},
			{Name: "work", Type: ir.Ref("Address", false)},
		},
		Required: map[string]bool{},
	}))
	require.NoError(t, g.Add("Address", ir.ObjectNode{
		Name: "Address",
		Properties: []ir.Property{
			{Name: "street", Type: str(false)},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Person", false)

	doc, warns, err := Transform(g, Config{Mode: ModeFlatten})
	require.NoError(t, err)
	assert.Empty(t, warns)

	// Both uses are expanded in place; no defs, no refs.
	assert.Empty(t, doc.Defs)
	assert.Equal(t, "object", doc.Properties["home"].Type)
	assert.Equal(t, "string", doc.Properties["home"].Properties["street"].Type)
	assert.Equal(t, "object", doc.Properties["work"].Type)
}

func TestTransform_CyclicGraph(t *testing.T) {
	t.Parallel()

	cyclic := func() *ir.TypeGraph {
		g := ir.NewTypeGraph()
		require.NoError(t, g.Add("Node", ir.ObjectNode{
			Name: "Node",
			Properties: []ir.Property{
				{Name: "next", Type: ir.Ref("Node", true)},
			},
			Required: map[string]bool{},
		}))
		g.Root = ir.Ref("Node", false)
		return g
	}

	t.Run("defs mode terminates with self-reference", func(t *testing.T) {
		t.Parallel()

		doc, warns, err := Transform(cyclic(), Config{Mode: ModeDefs})
		require.NoError(t, err)
		assert.Empty(t, warns)

		next := doc.Properties["next"]
		require.Len(t, next.OneOf, 2)
		assert.Equal(t, "#/$defs/Node", next.OneOf[0].Ref)
		require.Contains(t, doc.Defs, "Node")
	})

	t.Run("flatten mode degrades the back-edge", func(t *testing.T) {
		t.Parallel()

		doc, warns, err := Transform(cyclic(), Config{Mode: ModeFlatten})
		require.NoError(t, err)

		assert.True(t, warns.Has(diag.WarnDegradedCycleFlattened))
		// Bare object, widened with null from the reference.
		next := doc.Properties["next"]
		assert.Equal(t, []string{"object", "null"}, next.Type)
		assert.Empty(t, next.Properties)
	})
}

func TestTransform_Enum(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Level", ir.EnumNode{
		Name:        "Level",
		Entries:     []string{"DEBUG", "INFO", "WARN", "ERROR"},
		Description: "Log severity.",
	}))
	g.Root = ir.Ref("Level", false)

	doc, _, err := Transform(g, Config{})
	require.NoError(t, err)

	assert.Equal(t, "string", doc.Type)
	assert.Equal(t, []any{"DEBUG", "INFO", "WARN", "ERROR"}, doc.Enum)
	assert.Equal(t, "Log severity.", doc.Description)
}

func TestTransform_NullableEnumUsesOneOf(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Level", ir.EnumNode{Name: "Level", Entries: []string{"A", "B"}}))
	g.Root = ir.Ref("Level", true)

	doc, _, err := Transform(g, Config{})
	require.NoError(t, err)

	// A type array would permit any string; enums widen via oneOf instead.
	require.Len(t, doc.OneOf, 2)
	assert.Equal(t, []any{"A", "B"}, doc.OneOf[0].Enum)
	assert.Equal(t, "null", doc.OneOf[1].Type)
}

func TestTransform_NullableAsField(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Req", ir.ObjectNode{
		Name: "Req",
		Properties: []ir.Property{
			{Name: "note", Type: str(true)},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Req", false)

	doc, _, err := Transform(g, Config{NullableAsField: true})
	require.NoError(t, err)

	note := doc.Properties["note"]
	assert.Equal(t, "string", note.Type)
	assert.True(t, note.Nullable)
}

func TestTransform_Map(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Env", ir.ObjectNode{
		Name: "Env",
		Properties: []ir.Property{
			{Name: "vars", Type: ir.Inline(ir.MapNode{Key: str(false), Value: intRef()}, false)},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Env", false)

	doc, _, err := Transform(g, Config{})
	require.NoError(t, err)

	vars := doc.Properties["vars"]
	assert.Equal(t, "object", vars.Type)
	ap, ok := vars.AdditionalProps.(*Document)
	require.True(t, ok)
	assert.Equal(t, "integer", ap.Type)
}

func TestTransform_Polymorphic(t *testing.T) {
	t.Parallel()

	build := func() *ir.TypeGraph {
		g := ir.NewTypeGraph()
		require.NoError(t, g.Add("Shape", ir.PolymorphicNode{
			BaseName: "Shape",
			Subtypes: []ir.TypeID{"Shape.Circle", "Shape.Rect"},
			Discriminator: &ir.Discriminator{
				Property: "type",
				Required: true,
				Mapping:  map[string]ir.TypeID{"Circle": "Shape.Circle", "Rect": "Shape.Rect"},
			},
		}))
		require.NoError(t, g.Add("Shape.Circle", ir.ObjectNode{
			Name: "Circle",
			Properties: []ir.Property{
				{Name: "type", Type: str(false), HasDefault: true, Default: "Shape.Circle", Const: true},
				{Name: "radius", Type: ir.Inline(ir.PrimitiveNode{Kind: ir.KindDouble}, false)},
			},
			Required: map[string]bool{"type": true},
		}))
		require.NoError(t, g.Add("Shape.Rect", ir.ObjectNode{
			Name: "Rect",
			Properties: []ir.Property{
				{Name: "type", Type: str(false), HasDefault: true, Default: "Shape.Rect", Const: true},
				{Name: "width", Type: ir.Inline(ir.PrimitiveNode{Kind: ir.KindDouble}, false)},
			},
			Required: map[string]bool{"type": true},
		}))
		g.Root = ir.Ref("Shape", false)
		return g
	}

	t.Run("defs mode emits mapping", func(t *testing.T) {
		t.Parallel()

		doc, _, err := Transform(build(), Config{Mode: ModeDefs, IncludeDiscriminator: true})
		require.NoError(t, err)

		require.Len(t, doc.OneOf, 2)
		assert.Equal(t, "#/$defs/Shape.Circle", doc.OneOf[0].Ref)

		require.NotNil(t, doc.Discriminator)
		assert.Equal(t, "type", doc.Discriminator.PropertyName)
		assert.Equal(t, "#/$defs/Shape.Circle", doc.Discriminator.Mapping["Circle"])

		// The injected discriminator renders as const, not default.
		circle := doc.Defs["Shape.Circle"]
		assert.Equal(t, "Shape.Circle", circle.Properties["type"].Const)
		assert.Nil(t, circle.Properties["type"].Default)
		assert.Contains(t, circle.Required, "type")
	})

	t.Run("flatten mode omits mapping", func(t *testing.T) {
		t.Parallel()

		doc, _, err := Transform(build(), Config{Mode: ModeFlatten, IncludeDiscriminator: true})
		require.NoError(t, err)

		require.Len(t, doc.OneOf, 2)
		assert.Equal(t, "object", doc.OneOf[0].Type)
		require.NotNil(t, doc.Discriminator)
		assert.Empty(t, doc.Discriminator.Mapping, "mapping points into $defs, absent when flattened")
	})

	t.Run("discriminator suppressed when disabled", func(t *testing.T) {
		t.Parallel()

		doc, _, err := Transform(build(), Config{Mode: ModeDefs})
		require.NoError(t, err)
		assert.Nil(t, doc.Discriminator)
	})
}

func TestTransform_ConstraintsAndExamples(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	require.NoError(t, g.Add("Req", ir.ObjectNode{
		Name: "Req",
		Properties: []ir.Property{
			{
				Name:        "age",
				Type:        intRef(),
				Description: "Age in years",
				Example:     30,
				Constraints: []ir.Constraint{ir.Min(0), ir.ExclusiveMax(150)},
			},
			{
				Name:        "name",
				Type:        str(false),
				Constraints: []ir.Constraint{ir.MinLength(1), ir.MaxLength(64), ir.Pattern("^[a-z]+$")},
			},
			{
				Name:        "color",
				Type:        str(false),
				Constraints: []ir.Constraint{ir.OneOf("red", "green")},
			},
		},
		Required: map[string]bool{},
	}))
	g.Root = ir.Ref("Req", false)

	doc, _, err := Transform(g, Config{})
	require.NoError(t, err)

	age := doc.Properties["age"]
	assert.Equal(t, "Age in years", age.Description)
	assert.Equal(t, []any{30}, age.Examples)
	require.NotNil(t, age.Minimum)
	assert.Equal(t, 0.0, *age.Minimum)
	require.NotNil(t, age.ExclusiveMaximum)
	assert.Equal(t, 150.0, *age.ExclusiveMaximum)

	name := doc.Properties["name"]
	assert.Equal(t, 1, *name.MinLength)
	assert.Equal(t, 64, *name.MaxLength)
	assert.Equal(t, "^[a-z]+$", name.Pattern)

	assert.Equal(t, []any{"red", "green"}, doc.Properties["color"].Enum)
}

func TestTransform_MissingNodeFails(t *testing.T) {
	t.Parallel()

	g := ir.NewTypeGraph()
	g.Root = ir.Ref("Ghost", false)

	_, _, err := Transform(g, Config{})

	var missing *ir.MissingNodeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ir.TypeID("Ghost"), missing.ID)
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()

	run := func() []byte {
		doc, _, err := Transform(personGraph(t), Config{Draft: Draft202012})
		require.NoError(t, err)
		res, err := Encode(doc, nil)
		require.NoError(t, err)
		return res.JSON
	}

	assert.Equal(t, string(run()), string(run()))
}

func TestEncode_JSONAndYAML(t *testing.T) {
	t.Parallel()

	doc, _, err := Transform(personGraph(t), Config{Draft: Draft202012})
	require.NoError(t, err)

	res, err := Encode(doc, diag.Warnings{
		diag.NewWarning(diag.WarnDegradedElementFallback, "Person.tags", "m"),
	})
	require.NoError(t, err)

	assert.Contains(t, string(res.JSON), `"$schema"`)
	// Wire-level key names survive the YAML round-trip.
	assert.Contains(t, string(res.YAML), "$schema:")
	assert.Len(t, res.Warnings, 1)
}

func TestEncode_ToolEnvelope(t *testing.T) {
	t.Parallel()

	doc, _, err := Transform(personGraph(t), Config{Mode: ModeFlatten})
	require.NoError(t, err)

	res, err := Encode(&Tool{
		Type:       "function",
		Name:       "describe_person",
		Strict:     true,
		Parameters: doc,
	}, nil)
	require.NoError(t, err)

	out := string(res.JSON)
	assert.Contains(t, out, `"type": "function"`)
	assert.Contains(t, out, `"name": "describe_person"`)
	assert.Contains(t, out, `"strict": true`)
	assert.Contains(t, out, `"parameters"`)
	assert.NotContains(t, out, "$defs")
}
