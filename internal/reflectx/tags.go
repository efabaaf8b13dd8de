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

package reflectx

import (
	"reflect"
	"strconv"
	"strings"

	"rivaas.dev/typegraph/internal/introspect"
	"rivaas.dev/typegraph/ir"
)

// walkFields recursively walks struct fields, handling embedded/anonymous
// fields.
//
// Embedded fields are traversed recursively, so members declared on an
// embedded struct appear as properties of the embedding type. This is the
// reflection analog of inheriting documented properties from a supertype.
//
// Example:
//
//	type Base struct { ID int }
//	type User struct { Base; Name string }
//	// walkFields on User will visit both ID (from Base) and Name
func walkFields(t reflect.Type, fn func(reflect.StructField)) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := range t.NumField() {
		f := t.Field(i)

		if f.Anonymous {
			walkFields(f.Type, fn)
			continue
		}

		fn(f)
	}
}

// parseJSONName extracts the JSON field name from a tag.
//
// Examples:
//   - `json:"name"` -> "name"
//   - `json:"name,omitempty"` -> "name"
//   - `json:""` -> "" (empty, uses fallback)
func parseJSONName(tag, fallback string) string {
	if tag == "" {
		return fallback
	}

	p := strings.Split(tag, ",")
	if p[0] != "" {
		return p[0]
	}

	return fallback
}

// isFieldRequired determines if a field is declared required.
func isFieldRequired(f reflect.StructField) bool {
	if f.Type.Kind() == reflect.Pointer {
		return false
	}

	return strings.Contains(f.Tag.Get("validate"), "required")
}

// parseValue attempts to parse a string value into the target type.
func parseValue(s string, t reflect.Type) any {
	if s == "" {
		return nil
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return s
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v
		}
	case reflect.Float32, reflect.Float64:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	case reflect.Bool:
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
	}

	return s
}

// parseConstraints extracts validation constraints from the validate tag.
func parseConstraints(f reflect.StructField) []ir.Constraint {
	return introspect.ConstraintsFromValidateTag(f.Tag.Get("validate"))
}
