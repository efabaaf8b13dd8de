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

package transform

// Document represents a JSON-Schema-shaped schema document.
//
// One document type serves both reference mode ($defs + $ref) and flattened
// mode; unused keywords stay empty and are omitted from the wire form.
type Document struct {
	Schema      string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Type        any    `json:"type,omitempty"` // string or []string
	Description string `json:"description,omitempty"`

	// Nullable is the boolean-flag nullability encoding, used only when the
	// configuration selects it over type-array unions.
	Nullable bool `json:"nullable,omitempty"`

	Enum     []any `json:"enum,omitempty"`
	Const    any   `json:"const,omitempty"`
	Default  any   `json:"default,omitempty"`
	Examples []any `json:"examples,omitempty"`

	Minimum          *float64 `json:"minimum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`
	MinLength        *int     `json:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`

	Items *Document `json:"items,omitempty"`

	Properties      map[string]*Document `json:"properties,omitempty"`
	Required        []string             `json:"required,omitempty"`
	AdditionalProps any                  `json:"additionalProperties,omitempty"` // bool or *Document

	OneOf         []*Document    `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`

	Defs map[string]*Document `json:"$defs,omitempty"`
}

// Discriminator tells subtypes of a oneOf composition apart on the wire.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// Tool is the function-calling schema shape. Parameters is always a
// flattened, self-contained object schema: tool consumers do not resolve
// references.
type Tool struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Strict      bool      `json:"strict"`
	Parameters  *Document `json:"parameters"`
}
