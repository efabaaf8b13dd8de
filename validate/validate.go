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

// Package validate checks generated schema documents against the JSON
// Schema draft 2020-12 dialect.
package validate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Engine validates generated schema documents.
//
// The engine uses santhosh-tekuri/jsonschema, which ships the draft 2020-12
// meta-schema; compiling a document validates it against its dialect.
// Engine is stateless and safe for concurrent use.
type Engine struct{}

// New creates a new validation engine.
func New() *Engine {
	return &Engine{}
}

// ValidateSchema checks that schemaJSON is a well-formed JSON Schema
// document under draft 2020-12.
func (e *Engine) ValidateSchema(ctx context.Context, schemaJSON []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := compile(schemaJSON); err != nil {
		return fmt.Errorf("invalid schema document: %w", err)
	}

	return nil
}

// ValidateInstance validates docJSON against schemaJSON.
func (e *Engine) ValidateInstance(ctx context.Context, schemaJSON, docJSON []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sch, err := compile(schemaJSON)
	if err != nil {
		return fmt.Errorf("invalid schema document: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(docJSON))
	if err != nil {
		return fmt.Errorf("invalid instance document: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("instance does not match schema: %w", err)
	}

	return nil
}

func compile(schemaJSON []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)

	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, err
	}

	return c.Compile("schema.json")
}
