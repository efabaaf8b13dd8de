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

package typegraph

import (
	"context"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/typegraph/internal/fixture/alpha"
	"rivaas.dev/typegraph/internal/fixture/beta"
)

type person struct {
	Name  string `json:"name" doc:"Full name" validate:"required,minlen=1"`
	Age   *int   `json:"age" doc:"Age in years" validate:"gte=0" example:"30"`
	Limit int    `json:"limit" default:"20"`
}

type drawing struct {
	Title string `json:"title"`
	Shape shape  `json:"shape"`
}

type envelope struct {
	Data any `json:"data"`
}

// decode unmarshals a generated document for structural assertions.
func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	return doc
}

func TestGenerateSchema_Reflection(t *testing.T) {
	t.Parallel()

	api := MustNew()

	result, err := api.GenerateSchema(context.Background(), person{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Warnings)
	assert.NotEmpty(t, result.YAML)

	doc := decode(t, result.JSON)
	assert.Equal(t, Draft202012, doc["$schema"])
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, props, 3)

	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, "Full name", name["description"])
	assert.Equal(t, float64(1), name["minLength"])

	// Required by presence: no declared default means required, and required
	// non-defaulted properties lose the nullability union.
	age := props["age"].(map[string]any)
	assert.Equal(t, "integer", age["type"])
	assert.Equal(t, []any{float64(30)}, age["examples"])

	limit := props["limit"].(map[string]any)
	assert.Equal(t, float64(20), limit["default"])

	assert.Equal(t, []any{"name", "age"}, doc["required"])
}

func TestGenerateSchema_ReflectTypeTarget(t *testing.T) {
	t.Parallel()

	api := MustNew()

	fromValue, err := api.GenerateSchema(context.Background(), &person{})
	require.NoError(t, err)
	fromType, err := api.GenerateSchema(context.Background(), reflect.TypeFor[person]())
	require.NoError(t, err)

	assert.Equal(t, fromValue.JSON, fromType.JSON)
}

func TestGenerateSchemaString(t *testing.T) {
	t.Parallel()

	api := MustNew()

	s, err := api.GenerateSchemaString(context.Background(), person{})
	require.NoError(t, err)
	assert.Contains(t, s, `"$schema"`)
}

func TestGenerateSchema_TargetErrors(t *testing.T) {
	t.Parallel()

	api := MustNew()

	_, err := api.GenerateSchema(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilTarget)

	_, err = api.GenerateSchema(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrUnsupportedTarget)
}

func TestGenerateSchema_CanceledContext(t *testing.T) {
	t.Parallel()

	api := MustNew()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.GenerateSchema(ctx, person{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateSchema_UnionDefs(t *testing.T) {
	t.Parallel()

	api := MustNew(WithUnion((*shape)(nil), circle{}, rect{}))

	result, err := api.GenerateSchema(context.Background(), drawing{})
	require.NoError(t, err)

	doc := decode(t, result.JSON)
	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, defs, "typegraph.shape")
	require.Contains(t, defs, "typegraph.shape.circle")
	require.Contains(t, defs, "typegraph.shape.rect")

	base := defs["typegraph.shape"].(map[string]any)
	require.Len(t, base["oneOf"], 2)

	disc, ok := base["discriminator"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "type", disc["propertyName"])
	mapping := disc["mapping"].(map[string]any)
	assert.Equal(t, "#/$defs/typegraph.shape.circle", mapping["circle"])
}

func TestGenerateSchema_SameNameAcrossPackages(t *testing.T) {
	t.Parallel()

	type catalog struct {
		First  alpha.Item `json:"first"`
		Second beta.Item  `json:"second"`
	}

	api := MustNew()

	result, err := api.GenerateSchema(context.Background(), catalog{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	doc := decode(t, result.JSON)
	props := doc["properties"].(map[string]any)
	assert.Equal(t, "#/$defs/alpha.Item", props["first"].(map[string]any)["$ref"])
	assert.Equal(t, "#/$defs/beta.Item", props["second"].(map[string]any)["$ref"])

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, defs, "alpha.Item")
	require.Contains(t, defs, "beta.Item")

	// Each package's type keeps its own schema.
	a := defs["alpha.Item"].(map[string]any)
	assert.Contains(t, a["properties"], "sku")
	b := defs["beta.Item"].(map[string]any)
	assert.Contains(t, b["properties"], "quantity")
	assert.NotContains(t, b["properties"], "sku")
}

func TestGenerateSchema_UnregisteredInterfaceDegrades(t *testing.T) {
	t.Parallel()

	api := MustNew()

	result, err := api.GenerateSchema(context.Background(), envelope{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings, "erasing to the universal object warns")

	doc := decode(t, result.JSON)
	defs := doc["$defs"].(map[string]any)
	assert.Contains(t, defs, "Any")
}

func TestGenerateSchema_WithValidation(t *testing.T) {
	t.Parallel()

	api := MustNew(WithValidation(true))

	_, err := api.GenerateSchema(context.Background(), person{})
	assert.NoError(t, err)
}

func TestGenerateToolSchema_Reflection(t *testing.T) {
	t.Parallel()

	api := MustNew()

	result, err := api.GenerateToolSchema(context.Background(), ToolDef{
		Name:        "create_circle",
		Description: "Create a circle with the given radius.",
		Target:      circle{},
	})
	require.NoError(t, err)

	doc := decode(t, result.JSON)
	assert.Equal(t, "function", doc["type"])
	assert.Equal(t, "create_circle", doc["name"])
	assert.Equal(t, "Create a circle with the given radius.", doc["description"])
	assert.Equal(t, false, doc["strict"])

	params, ok := doc["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", params["type"])
	assert.NotContains(t, params, "$schema", "tool parameters are not standalone documents")
	assert.NotContains(t, params, "$defs", "tool parameters are fully inlined")
}

func TestGenerateToolSchema_Strict(t *testing.T) {
	t.Parallel()

	api := MustNew(WithStrictRequired())

	result, err := api.GenerateToolSchema(context.Background(), ToolDef{
		Name:   "create_person",
		Target: person{},
	})
	require.NoError(t, err)

	doc := decode(t, result.JSON)
	assert.Equal(t, true, doc["strict"])

	params := doc["parameters"].(map[string]any)
	assert.ElementsMatch(t, []any{"name", "age", "limit"}, params["required"])
}

func TestGenerateToolSchema_NameRequired(t *testing.T) {
	t.Parallel()

	api := MustNew()

	_, err := api.GenerateToolSchema(context.Background(), ToolDef{Target: circle{}})
	assert.ErrorIs(t, err, ErrToolNameRequired)
}

func TestGenerateSchema_Symbol(t *testing.T) {
	t.Parallel()

	api := MustNew()

	result, err := api.GenerateSchema(context.Background(), Symbol{
		Pattern: "./internal/symbolx/testdata/booking",
		Type:    "Booking",
	})
	require.NoError(t, err)

	doc := decode(t, result.JSON)
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, "Booking is one hotel reservation.", doc["description"])

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, defs, "booking.Status")
	assert.Contains(t, defs, "booking.Payment")
	assert.Contains(t, defs, "booking.Payment.Card")
	assert.Contains(t, defs, "booking.Payment.Cash")
}

func TestGenerateToolSchema_Symbol(t *testing.T) {
	t.Parallel()

	api := MustNew()

	result, err := api.GenerateToolSchema(context.Background(), ToolDef{
		Target: Symbol{
			Pattern: "./internal/symbolx/testdata/booking",
			Func:    "SearchHotels",
		},
	})
	require.NoError(t, err)

	doc := decode(t, result.JSON)
	assert.Equal(t, "SearchHotels", doc["name"], "tool name defaults to the function name")
	assert.Equal(t, "SearchHotels returns the hotels matching query, at most limit results.", doc["description"])

	params := doc["parameters"].(map[string]any)
	props := params["properties"].(map[string]any)
	assert.Len(t, props, 4)
	assert.ElementsMatch(t, []any{"query", "limit"}, params["required"])
}

func TestGenerateToolSchema_SymbolNameOverride(t *testing.T) {
	t.Parallel()

	api := MustNew()

	result, err := api.GenerateToolSchema(context.Background(), ToolDef{
		Name:        "search_hotels",
		Description: "Find hotels.",
		Target: Symbol{
			Pattern: "./internal/symbolx/testdata/booking",
			Func:    "SearchHotels",
		},
	})
	require.NoError(t, err)

	doc := decode(t, result.JSON)
	assert.Equal(t, "search_hotels", doc["name"])
	assert.Equal(t, "Find hotels.", doc["description"])
}
