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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/typegraph/internal/transform"
)

type shape interface{ area() float64 }

type circle struct {
	Radius float64 `json:"radius"`
}

func (circle) area() float64 { return 0 }

type rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (rect) area() float64 { return 0 }

type lonely struct {
	X int `json:"x"`
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	api, err := New()
	require.NoError(t, err)

	assert.Equal(t, RequiredByPresence, api.RequiredMode)
	assert.False(t, api.TreatNullableOptionalAsRequired)
	assert.False(t, api.NullableAsField)
	assert.True(t, api.IncludeDiscriminator)
	assert.False(t, api.Flatten)
	assert.Equal(t, Draft202012, api.Draft)
	assert.Empty(t, api.SchemaID)
	assert.Equal(t, "doc", api.DescriptionTag)
	assert.False(t, api.ValidateOutput)
	require.NotNil(t, api.Registry())
	assert.Len(t, api.Registry().Generators(), 4)
}

func TestNew_AppliesOptions(t *testing.T) {
	t.Parallel()

	api, err := New(
		WithRequiredMode(RequiredNonNullable),
		WithNullableField(true),
		WithDiscriminator(false),
		WithFlatten(true),
		WithDraft(""),
		WithSchemaID("https://example.com/schemas/person"),
		WithDescriptionTag("description"),
		WithValidation(true),
	)
	require.NoError(t, err)

	assert.Equal(t, RequiredNonNullable, api.RequiredMode)
	assert.True(t, api.NullableAsField)
	assert.False(t, api.IncludeDiscriminator)
	assert.True(t, api.Flatten)
	assert.Empty(t, api.Draft)
	assert.Equal(t, "https://example.com/schemas/person", api.SchemaID)
	assert.Equal(t, "description", api.DescriptionTag)
	assert.True(t, api.ValidateOutput)
}

func TestWithStrictRequired(t *testing.T) {
	t.Parallel()

	api, err := New(WithStrictRequired())
	require.NoError(t, err)

	assert.Equal(t, RequiredAll, api.RequiredMode)
	assert.True(t, api.TreatNullableOptionalAsRequired)
}

func TestNew_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{
			name: "unknown required mode",
			opts: []Option{WithRequiredMode(RequiredMode(42))},
			want: ErrInvalidRequiredMode,
		},
		{
			name: "union variant does not implement base",
			opts: []Option{WithUnion((*shape)(nil), circle{}, lonely{})},
			want: ErrInvalidUnion,
		},
		{
			name: "union base is not an interface",
			opts: []Option{WithUnion(circle{}, rect{})},
			want: ErrInvalidUnion,
		},
		{
			name: "union without variants",
			opts: []Option{WithUnion((*shape)(nil))},
			want: ErrInvalidUnion,
		},
		{
			name: "constructor is not a function",
			opts: []Option{WithConstructor("nope")},
			want: ErrInvalidConstructor,
		},
		{
			name: "constructor returns the wrong type",
			opts: []Option{WithConstructor(func() string { return "" })},
			want: ErrInvalidConstructor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_AcceptsValidRegistrations(t *testing.T) {
	t.Parallel()

	_, err := New(
		WithUnion((*shape)(nil), circle{}, rect{}),
		WithConstructor(func() circle { return circle{Radius: 1} }),
		WithConstructor(func() *rect { return &rect{Width: 2} }),
	)
	assert.NoError(t, err)
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { MustNew() })
	assert.Panics(t, func() { MustNew(WithRequiredMode(RequiredMode(42))) })
}

func TestAPI_TransformConfig(t *testing.T) {
	t.Parallel()

	t.Run("object schemas carry dialect and identity", func(t *testing.T) {
		t.Parallel()

		api := MustNew(WithSchemaID("https://example.com/s"))
		cfg := api.transformConfig(SchemaObject)

		assert.Equal(t, transform.ModeDefs, cfg.Mode)
		assert.Equal(t, Draft202012, cfg.Draft)
		assert.Equal(t, "https://example.com/s", cfg.SchemaID)
	})

	t.Run("tool schemas are always flattened and headerless", func(t *testing.T) {
		t.Parallel()

		api := MustNew(WithSchemaID("https://example.com/s"))
		cfg := api.transformConfig(SchemaTool)

		assert.Equal(t, transform.ModeFlatten, cfg.Mode)
		assert.Empty(t, cfg.Draft)
		assert.Empty(t, cfg.SchemaID)
	})

	t.Run("flatten option applies to object schemas", func(t *testing.T) {
		t.Parallel()

		api := MustNew(WithFlatten(true))
		assert.Equal(t, transform.ModeFlatten, api.transformConfig(SchemaObject).Mode)
	})
}
