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

package ir

// ConstraintKind enumerates the validation constraint kinds the IR carries.
type ConstraintKind uint8

const (
	ConstraintMin ConstraintKind = iota
	ConstraintMax
	ConstraintMinLength
	ConstraintMaxLength
	ConstraintPattern
	ConstraintOneOf
)

// Constraint is a validation annotation attached to a property.
//
// Numeric constraints use Number (with Exclusive for open bounds), length
// constraints use Length, Pattern uses Text and OneOf uses Values.
type Constraint struct {
	Kind      ConstraintKind
	Number    float64
	Exclusive bool
	Length    int
	Text      string
	Values    []string
}

// Min returns an inclusive minimum-value constraint.
func Min(n float64) Constraint {
	return Constraint{Kind: ConstraintMin, Number: n}
}

// Max returns an inclusive maximum-value constraint.
func Max(n float64) Constraint {
	return Constraint{Kind: ConstraintMax, Number: n}
}

// ExclusiveMin returns an exclusive minimum-value constraint.
func ExclusiveMin(n float64) Constraint {
	return Constraint{Kind: ConstraintMin, Number: n, Exclusive: true}
}

// ExclusiveMax returns an exclusive maximum-value constraint.
func ExclusiveMax(n float64) Constraint {
	return Constraint{Kind: ConstraintMax, Number: n, Exclusive: true}
}

// MinLength returns a minimum string length constraint.
func MinLength(n int) Constraint {
	return Constraint{Kind: ConstraintMinLength, Length: n}
}

// MaxLength returns a maximum string length constraint.
func MaxLength(n int) Constraint {
	return Constraint{Kind: ConstraintMaxLength, Length: n}
}

// Pattern returns a regular-expression pattern constraint.
func Pattern(expr string) Constraint {
	return Constraint{Kind: ConstraintPattern, Text: expr}
}

// OneOf returns an enumerated-values constraint.
func OneOf(values ...string) Constraint {
	return Constraint{Kind: ConstraintOneOf, Values: values}
}
