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

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"rivaas.dev/typegraph/diag"
)

// Result contains the encoded output of one schema generation.
type Result struct {
	// JSON is the schema document serialized as indented JSON.
	JSON []byte

	// YAML is the schema document serialized as YAML.
	YAML []byte

	// Warnings contains informational, non-fatal issues. The document is
	// valid even when warnings exist.
	Warnings diag.Warnings
}

// nullLiteral marshals to a JSON null. Used where an explicit null default
// must survive omitempty.
type nullLiteral struct{}

func (nullLiteral) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Encode serializes doc to JSON and YAML. Map keys are canonicalized by the
// encoder, so identical inputs produce byte-identical output.
func Encode(doc any, warnings diag.Warnings) (*Result, error) {
	jsonBytes, err := gojson.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}

	// YAML goes through the JSON form so wire-level key names ($schema,
	// $defs) survive; yaml.v3 does not read json struct tags.
	var tree any
	if err := gojson.Unmarshal(jsonBytes, &tree); err != nil {
		return nil, fmt.Errorf("failed to rebuild schema tree: %w", err)
	}

	yamlBytes, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to YAML: %w", err)
	}

	return &Result{
		JSON:     jsonBytes,
		YAML:     yamlBytes,
		Warnings: warnings,
	}, nil
}
