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

// Package reflectx is the runtime-reflection introspection front-end.
//
// It adapts reflect.Type to the introspect.Descriptor capability interface.
// Conventions: `json` tags control property names and exclusion, the
// description tag (default `doc`) supplies documentation, `validate` tags
// supply constraints and declared-required, `default` tags and constructor
// probing supply default values, pointers mean nullable.
package reflectx

import (
	"reflect"
	"strings"
	"time"

	"rivaas.dev/typegraph/diag"
	"rivaas.dev/typegraph/internal/introspect"
	"rivaas.dev/typegraph/ir"
)

// Enumer is the convention for enum types under reflection: a named type
// returning its constant names in declaration order.
type Enumer interface {
	SchemaEnum() []string
}

var (
	enumerType = reflect.TypeFor[Enumer]()
	timeType   = reflect.TypeFor[time.Time]()
)

// Options configures the reflection front-end. The zero value is usable;
// use the With* helpers on the facade to populate it.
type Options struct {
	// DescriptionTag is the struct tag holding property descriptions.
	// Defaults to "doc".
	DescriptionTag string

	// Unions maps an interface type to its closed set of implementations,
	// in registration order. An interface without a registration is
	// unresolvable and erases to the universal object.
	Unions map[reflect.Type][]reflect.Type

	// Constructors maps a struct type to a constructor function used for
	// default-value probing.
	Constructors map[reflect.Type]reflect.Value

	// Defaults caches probed default values across calls. Shared and safe
	// for concurrent use; everything else in this front-end is call-scoped.
	Defaults *DefaultCache

	// Warnings, when non-nil, collects front-end degradation warnings.
	Warnings *diag.Warnings
}

func (o *Options) descriptionTag() string {
	if o == nil || o.DescriptionTag == "" {
		return "doc"
	}
	return o.DescriptionTag
}

func (o *Options) warn(code diag.WarningCode, path, message string) {
	if o == nil || o.Warnings == nil {
		return
	}
	*o.Warnings = append(*o.Warnings, diag.NewWarning(code, path, message))
}

// descriptor adapts one use of a reflect.Type.
type descriptor struct {
	t        reflect.Type
	nullable bool
	opts     *Options
}

// New returns a Descriptor for t. A pointer type marks the reference
// nullable and is dereferenced.
func New(t reflect.Type, opts *Options) introspect.Descriptor {
	nullable := false
	for t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	return &descriptor{t: t, nullable: nullable, opts: opts}
}

func (d *descriptor) child(t reflect.Type) introspect.Descriptor {
	return New(t, d.opts)
}

// ID qualifies the type name with its package name (the last component of
// the package path), so same-named types from different packages keep
// distinct graph nodes.
func (d *descriptor) ID() ir.TypeID {
	name := d.t.Name()
	if name == "" {
		return ""
	}

	pkg := d.t.PkgPath()
	if pkg == "" {
		return ir.TypeID(name)
	}
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}

	return ir.TypeID(pkg + "." + name)
}

func (d *descriptor) Name() string {
	if d.t.Name() != "" {
		return d.t.Name()
	}
	return d.t.String()
}

func (d *descriptor) Nullable() bool {
	return d.nullable
}

func (d *descriptor) Primitive() (ir.PrimitiveKind, bool) {
	// Enum and union types are declared types even when their underlying
	// kind is scalar.
	if d.isEnum() || d.isUnion() {
		return 0, false
	}

	if d.t == timeType {
		return ir.KindString, true
	}

	// []byte carries base64 text on the wire.
	if d.t.Kind() == reflect.Slice && d.t.Elem().Kind() == reflect.Uint8 {
		return ir.KindString, true
	}

	switch d.t.Kind() {
	case reflect.String:
		return ir.KindString, true
	case reflect.Bool:
		return ir.KindBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return ir.KindInt, true
	case reflect.Int64, reflect.Uint64:
		return ir.KindLong, true
	case reflect.Float32:
		return ir.KindFloat, true
	case reflect.Float64:
		return ir.KindDouble, true
	default:
		return 0, false
	}
}

func (d *descriptor) ListElem() (introspect.Descriptor, bool) {
	if d.t.Kind() != reflect.Slice && d.t.Kind() != reflect.Array {
		return nil, false
	}

	// []byte renders as a string, not a byte list.
	if d.t.Kind() == reflect.Slice && d.t.Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	return d.child(d.t.Elem()), true
}

func (d *descriptor) MapEntry() (introspect.Descriptor, introspect.Descriptor, bool) {
	if d.t.Kind() != reflect.Map {
		return nil, nil, false
	}

	return d.child(d.t.Key()), d.child(d.t.Elem()), true
}

func (d *descriptor) Unresolvable() bool {
	switch d.t.Kind() {
	case reflect.Interface:
		return !d.isUnion()
	case reflect.Struct:
		// Anonymous structs have no classifier identity.
		return d.t.Name() == ""
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Uintptr,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

func (d *descriptor) isUnion() bool {
	if d.opts == nil {
		return false
	}
	_, ok := d.opts.Unions[d.t]
	return ok
}

func (d *descriptor) Variants() ([]introspect.Descriptor, bool) {
	if d.opts == nil {
		return nil, false
	}

	variants, ok := d.opts.Unions[d.t]
	if !ok {
		return nil, false
	}

	out := make([]introspect.Descriptor, 0, len(variants))
	for _, v := range variants {
		out = append(out, d.child(v))
	}

	return out, true
}

func (d *descriptor) isEnum() bool {
	return d.t.Implements(enumerType) || reflect.PointerTo(d.t).Implements(enumerType)
}

func (d *descriptor) EnumEntries() ([]string, bool) {
	return enumEntriesOf(d.t)
}

// enumEntriesOf returns the declared entries of an Enumer type.
func enumEntriesOf(t reflect.Type) ([]string, bool) {
	if !t.Implements(enumerType) && !reflect.PointerTo(t).Implements(enumerType) {
		return nil, false
	}

	v := reflect.New(t).Elem()
	if e, ok := v.Interface().(Enumer); ok {
		return e.SchemaEnum(), true
	}
	if e, ok := v.Addr().Interface().(Enumer); ok {
		return e.SchemaEnum(), true
	}

	return nil, false
}

func (d *descriptor) Properties() ([]introspect.PropertySpec, error) {
	if d.t.Kind() != reflect.Struct {
		return nil, introspect.ErrNotAnObject
	}

	probed := d.probedDefaults()
	descTag := d.opts.descriptionTag()

	var out []introspect.PropertySpec
	walkFields(d.t, func(f reflect.StructField) {
		if !f.IsExported() {
			return
		}

		jsonTag := f.Tag.Get("json")
		if jsonTag == "-" {
			return
		}

		name := parseJSONName(jsonTag, f.Name)

		spec := introspect.PropertySpec{
			Name:        name,
			Type:        d.child(f.Type),
			Description: f.Tag.Get(descTag),
			Required:    isFieldRequired(f),
			Constraints: parseConstraints(f),
		}

		if raw := f.Tag.Get("example"); raw != "" {
			spec.Example = parseValue(raw, f.Type)
		}

		if raw := f.Tag.Get("default"); raw != "" {
			spec.HasDefault = true
			spec.Default = parseValue(raw, f.Type)
		} else if v, ok := probed[name]; ok {
			spec.HasDefault = true
			spec.Default = v
		}

		out = append(out, spec)
	})

	return out, nil
}

// probedDefaults returns the cached constructor-probed defaults for the
// struct, keyed by wire-level property name. Best-effort: an empty map when
// no constructor is registered or probing degrades.
func (d *descriptor) probedDefaults() map[string]any {
	if d.opts == nil || d.opts.Defaults == nil {
		return nil
	}

	ctor, ok := d.opts.Constructors[d.t]
	if !ok {
		return nil
	}

	defaults, ok := d.opts.Defaults.Extract(d.t, ctor)
	if !ok {
		d.opts.warn(diag.WarnDegradedDefaultsUnavailable, d.Name(),
			"default-value probing unavailable for "+d.Name())
	}

	return defaults
}

func (d *descriptor) Description() string {
	return ""
}
