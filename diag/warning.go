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

// Package diag provides diagnostic types for schema generation.
// This package contains warning types and codes that are used throughout
// the typegraph package and its subpackages.
package diag

import (
	"fmt"
	"strings"
)

// Warning represents an informational, non-fatal issue during schema
// generation.
//
// Warnings are ADVISORY ONLY and never break execution.
// Use errors for issues that must stop the process.
//
// Common scenarios that produce warnings:
//   - Introspection degrading to a documented fallback (unknown collection
//     element types, erased type parameters)
//   - Front-end limitations (default value presence known, content unknown)
type Warning interface {
	// Code returns the warning identifier.
	// Compare with Warn* constants for type-safe checks.
	Code() WarningCode

	// Path returns the location of the affected element.
	// Example: "Person.tags", "Result.Unknown"
	Path() string

	// Message returns a human-readable description.
	Message() string

	// Category returns the warning's category for grouping.
	Category() WarningCategory

	// String returns a formatted representation.
	String() string
}

// WarningCode identifies a specific warning type.
// Use the Warn* constants for type-safe comparisons.
type WarningCode string

// String returns the code as a string.
func (c WarningCode) String() string {
	return string(c)
}

// Category returns the code's category.
func (c WarningCode) Category() WarningCategory {
	switch {
	case strings.HasPrefix(string(c), "DEGRADED"):
		return CategoryDegraded
	case strings.HasPrefix(string(c), "LIMITATION"):
		return CategoryLimitation
	default:
		return CategoryUnknown
	}
}

// Degraded-result warnings (documented fallbacks, not errors)
const (
	// WarnDegradedElementFallback indicates a collection's element type could
	// not be resolved and a string-typed placeholder was used.
	WarnDegradedElementFallback WarningCode = "DEGRADED_ELEMENT_FALLBACK"

	// WarnDegradedGenericErased indicates a type parameter or otherwise
	// unresolvable classifier was erased to the universal object node.
	WarnDegradedGenericErased WarningCode = "DEGRADED_GENERIC_ERASED"

	// WarnDegradedDefaultsUnavailable indicates default-value extraction for
	// a type failed and no defaults are known for it.
	WarnDegradedDefaultsUnavailable WarningCode = "DEGRADED_DEFAULTS_UNAVAILABLE"

	// WarnDegradedCycleFlattened indicates a cyclic reference was rendered as
	// a bare object because flattened output cannot express self-reference.
	WarnDegradedCycleFlattened WarningCode = "DEGRADED_CYCLE_FLATTENED"
)

// Front-end limitation warnings
const (
	// WarnLimitationDefaultValueUnknown indicates the front-end knows a
	// default exists but cannot determine its value (symbol front-end).
	WarnLimitationDefaultValueUnknown WarningCode = "LIMITATION_DEFAULT_VALUE_UNKNOWN"

	// WarnLimitationDescriptionUnavailable indicates no recognized
	// description convention matched a declaration.
	WarnLimitationDescriptionUnavailable WarningCode = "LIMITATION_DESCRIPTION_UNAVAILABLE"
)

// WarningCategory groups related warning types.
type WarningCategory string

const (
	// CategoryUnknown for unrecognized warning codes.
	CategoryUnknown WarningCategory = "unknown"

	// CategoryDegraded for documented degraded-result fallbacks.
	// The schema is still valid, just less precise.
	CategoryDegraded WarningCategory = "degraded"

	// CategoryLimitation for known front-end limitations.
	CategoryLimitation WarningCategory = "limitation"
)

// String returns the category as a string.
func (c WarningCategory) String() string {
	return string(c)
}

// Warnings is a collection of Warning with helper methods.
// Warnings are informational and never break execution.
type Warnings []Warning

// Has returns true if any warning matches the given code.
func (ws Warnings) Has(code WarningCode) bool {
	for _, w := range ws {
		if w.Code() == code {
			return true
		}
	}
	return false
}

// HasCategory returns true if any warning is in the given category.
func (ws Warnings) HasCategory(cat WarningCategory) bool {
	for _, w := range ws {
		if w.Category() == cat {
			return true
		}
	}
	return false
}

// Filter returns warnings matching the given codes.
func (ws Warnings) Filter(codes ...WarningCode) Warnings {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[WarningCode]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	result := make(Warnings, 0, len(ws))
	for _, w := range ws {
		if _, ok := set[w.Code()]; ok {
			result = append(result, w)
		}
	}
	return result
}

// FilterCategory returns warnings in the given category.
func (ws Warnings) FilterCategory(cat WarningCategory) Warnings {
	result := make(Warnings, 0, len(ws))
	for _, w := range ws {
		if w.Category() == cat {
			result = append(result, w)
		}
	}
	return result
}

// Codes returns all unique warning codes in this collection.
func (ws Warnings) Codes() []WarningCode {
	seen := make(map[WarningCode]struct{}, len(ws))
	codes := make([]WarningCode, 0, len(ws))
	for _, w := range ws {
		if _, ok := seen[w.Code()]; !ok {
			seen[w.Code()] = struct{}{}
			codes = append(codes, w.Code())
		}
	}
	return codes
}

// String returns a formatted string of all warnings.
func (ws Warnings) String() string {
	if len(ws) == 0 {
		return "no warnings"
	}
	var s strings.Builder
	fmt.Fprintf(&s, "%d warning(s):", len(ws))
	for i, w := range ws {
		fmt.Fprintf(&s, "\n  [%d] %s", i+1, w.String())
	}
	return s.String()
}

// warning is the concrete implementation of Warning interface.
type warning struct {
	code    WarningCode
	path    string
	message string
}

func (w *warning) Code() WarningCode {
	return w.code
}

func (w *warning) Path() string {
	return w.path
}

func (w *warning) Message() string {
	return w.message
}

func (w *warning) Category() WarningCategory {
	return w.code.Category()
}

func (w *warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.code.Category(), w.code, w.message)
}

// NewWarning creates a new Warning instance.
// This is the primary way to create warnings from internal packages.
func NewWarning(code WarningCode, path, message string) Warning {
	return &warning{
		code:    code,
		path:    path,
		message: message,
	}
}
