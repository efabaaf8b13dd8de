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

package symbolx

import (
	"fmt"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"rivaas.dev/typegraph/internal/introspect"
	"rivaas.dev/typegraph/ir"
)

// Descriptor returns a descriptor for the named type declared at package
// scope.
func (p *Package) Descriptor(typeName string) (introspect.Descriptor, error) {
	obj := p.scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("typegraph: type %q not found in package %s", typeName, p.pkg.PkgPath)
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("typegraph: %q is not a type in package %s", typeName, p.pkg.PkgPath)
	}

	return &descriptor{t: tn.Type(), pkg: p}, nil
}

// FuncDescriptor returns a descriptor for a package-scope function's
// parameter list, rendered as an object with one property per parameter,
// plus the function's doc comment.
//
// Methods are rejected up front: receiver parameters have no place in a
// parameter schema.
func (p *Package) FuncDescriptor(funcName string) (introspect.Descriptor, string, error) {
	obj := p.scope().Lookup(funcName)
	if obj == nil {
		return nil, "", fmt.Errorf("typegraph: function %q not found in package %s", funcName, p.pkg.PkgPath)
	}

	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, "", fmt.Errorf("typegraph: %q is not a function in package %s", funcName, p.pkg.PkgPath)
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() != nil {
		return nil, "", fmt.Errorf("typegraph: function %q has a receiver parameter; methods are not supported", funcName)
	}

	return &funcDescriptor{fn: fn, sig: sig, pkg: p}, p.funcDocs[funcName], nil
}

// descriptor adapts one use of a types.Type.
type descriptor struct {
	t        types.Type
	nullable bool
	pkg      *Package
}

func (d *descriptor) child(t types.Type) introspect.Descriptor {
	nullable := false
	for {
		if ptr, ok := t.(*types.Pointer); ok {
			nullable = true
			t = ptr.Elem()
			continue
		}
		break
	}

	return &descriptor{t: t, nullable: nullable, pkg: d.pkg}
}

func (d *descriptor) named() (*types.Named, bool) {
	n, ok := d.t.(*types.Named)
	return n, ok
}

// ID qualifies the type name with its package name, matching the reflection
// front-end's collision-resistant scheme.
func (d *descriptor) ID() ir.TypeID {
	n, ok := d.named()
	if !ok {
		return ""
	}

	obj := n.Obj()
	if obj.Pkg() == nil {
		return ir.TypeID(obj.Name())
	}

	return ir.TypeID(obj.Pkg().Name() + "." + obj.Name())
}

func (d *descriptor) Name() string {
	if n, ok := d.named(); ok {
		return n.Obj().Name()
	}
	return d.t.String()
}

func (d *descriptor) Nullable() bool {
	return d.nullable
}

func (d *descriptor) Primitive() (ir.PrimitiveKind, bool) {
	if d.isEnum() || d.isUnion() {
		return 0, false
	}

	if n, ok := d.named(); ok {
		obj := n.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time" {
			return ir.KindString, true
		}
	}

	if slice, ok := d.t.Underlying().(*types.Slice); ok {
		if b, ok := slice.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return ir.KindString, true
		}
	}

	b, ok := d.t.Underlying().(*types.Basic)
	if !ok {
		return 0, false
	}

	switch b.Kind() {
	case types.String, types.UntypedString:
		return ir.KindString, true
	case types.Bool, types.UntypedBool:
		return ir.KindBoolean, true
	case types.Int, types.Int8, types.Int16, types.Int32,
		types.Uint, types.Uint8, types.Uint16, types.Uint32:
		return ir.KindInt, true
	case types.Int64, types.Uint64:
		return ir.KindLong, true
	case types.Float32:
		return ir.KindFloat, true
	case types.Float64:
		return ir.KindDouble, true
	default:
		return 0, false
	}
}

func (d *descriptor) ListElem() (introspect.Descriptor, bool) {
	switch u := d.t.Underlying().(type) {
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return nil, false
		}
		return d.child(u.Elem()), true
	case *types.Array:
		return d.child(u.Elem()), true
	default:
		return nil, false
	}
}

func (d *descriptor) MapEntry() (introspect.Descriptor, introspect.Descriptor, bool) {
	m, ok := d.t.Underlying().(*types.Map)
	if !ok {
		return nil, nil, false
	}

	return d.child(m.Key()), d.child(m.Elem()), true
}

func (d *descriptor) Unresolvable() bool {
	switch u := d.t.Underlying().(type) {
	case *types.Interface:
		return !d.isUnion()
	case *types.Chan, *types.Signature:
		return true
	case *types.Basic:
		switch u.Kind() {
		case types.Complex64, types.Complex128, types.Uintptr, types.UnsafePointer:
			return true
		}
		return false
	}

	if _, ok := d.t.(*types.TypeParam); ok {
		return true
	}

	return false
}

func (d *descriptor) isUnion() bool {
	n, ok := d.named()
	if !ok {
		return false
	}

	iface, ok := n.Underlying().(*types.Interface)
	if !ok {
		return false
	}

	return len(d.pkg.implementersOf(iface)) > 0
}

func (d *descriptor) Variants() ([]introspect.Descriptor, bool) {
	n, ok := d.named()
	if !ok {
		return nil, false
	}

	iface, ok := n.Underlying().(*types.Interface)
	if !ok {
		return nil, false
	}

	impls := d.pkg.implementersOf(iface)
	if len(impls) == 0 {
		return nil, false
	}

	out := make([]introspect.Descriptor, 0, len(impls))
	for _, impl := range impls {
		out = append(out, &descriptor{t: impl, pkg: d.pkg})
	}

	return out, true
}

func (d *descriptor) isEnum() bool {
	n, ok := d.named()
	if !ok {
		return false
	}
	if _, ok := n.Underlying().(*types.Basic); !ok {
		return false
	}

	return len(d.pkg.constantsOf(n)) > 0
}

func (d *descriptor) EnumEntries() ([]string, bool) {
	n, ok := d.named()
	if !ok {
		return nil, false
	}
	if _, ok := n.Underlying().(*types.Basic); !ok {
		return nil, false
	}

	entries := d.pkg.constantsOf(n)
	if len(entries) == 0 {
		return nil, false
	}

	return entries, true
}

func (d *descriptor) Properties() ([]introspect.PropertySpec, error) {
	st, ok := d.t.Underlying().(*types.Struct)
	if !ok {
		return nil, introspect.ErrNotAnObject
	}

	return d.structProperties(st, d.Name())
}

func (d *descriptor) structProperties(st *types.Struct, typeName string) ([]introspect.PropertySpec, error) {
	var out []introspect.PropertySpec

	for i := range st.NumFields() {
		f := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if f.Embedded() {
			// Promoted members of an embedded struct become properties of
			// the embedding type, same as the reflection front-end.
			if embedded, ok := derefStruct(f.Type()); ok {
				nested, err := d.structProperties(embedded, embeddedName(f.Type()))
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			}
			continue
		}

		if !f.Exported() {
			continue
		}

		jsonTag := tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := jsonName(jsonTag, f.Name())

		desc := tag.Get("doc")
		if desc == "" {
			desc = d.pkg.fieldDoc(typeName, f.Name())
		}

		_, isPtr := f.Type().(*types.Pointer)

		spec := introspect.PropertySpec{
			Name:        name,
			Type:        d.child(f.Type()),
			Description: desc,
			Required:    !isPtr && strings.Contains(tag.Get("validate"), "required"),
			Constraints: introspect.ConstraintsFromValidateTag(tag.Get("validate")),
		}

		// Presence is knowable from the tag; the evaluated value is not.
		if tag.Get("default") != "" {
			spec.HasDefault = true
		}

		if raw := tag.Get("example"); raw != "" {
			spec.Example = exampleValue(raw, f.Type())
		}

		out = append(out, spec)
	}

	return out, nil
}

func (d *descriptor) Description() string {
	if n, ok := d.named(); ok {
		return d.pkg.typeDoc(n.Obj().Name())
	}
	return ""
}

// funcDescriptor renders a function's parameter list as an object.
type funcDescriptor struct {
	fn  *types.Func
	sig *types.Signature
	pkg *Package
}

func (d *funcDescriptor) ID() ir.TypeID {
	if pkg := d.fn.Pkg(); pkg != nil {
		return ir.TypeID(pkg.Name() + "." + d.fn.Name())
	}
	return ir.TypeID(d.fn.Name())
}
func (d *funcDescriptor) Name() string   { return d.fn.Name() }
func (d *funcDescriptor) Nullable() bool { return false }

func (d *funcDescriptor) Primitive() (ir.PrimitiveKind, bool) { return 0, false }

func (d *funcDescriptor) ListElem() (introspect.Descriptor, bool) { return nil, false }

func (d *funcDescriptor) MapEntry() (introspect.Descriptor, introspect.Descriptor, bool) {
	return nil, nil, false
}

func (d *funcDescriptor) Unresolvable() bool { return false }

func (d *funcDescriptor) Variants() ([]introspect.Descriptor, bool) { return nil, false }

func (d *funcDescriptor) EnumEntries() ([]string, bool) { return nil, false }

func (d *funcDescriptor) Properties() ([]introspect.PropertySpec, error) {
	params := d.sig.Params()
	child := &descriptor{pkg: d.pkg}

	out := make([]introspect.PropertySpec, 0, params.Len())
	for i := range params.Len() {
		param := params.At(i)

		name := param.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}

		_, isPtr := param.Type().(*types.Pointer)
		variadic := d.sig.Variadic() && i == params.Len()-1

		out = append(out, introspect.PropertySpec{
			Name:     name,
			Type:     child.child(param.Type()),
			Required: !isPtr && !variadic,
		})
	}

	return out, nil
}

func (d *funcDescriptor) Description() string {
	return d.pkg.funcDocs[d.fn.Name()]
}

// exampleValue converts an example tag's text to the field's basic kind so
// numeric and boolean examples are not emitted as strings.
func exampleValue(raw string, t types.Type) any {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return raw
	}

	switch {
	case b.Info()&types.IsInteger != 0:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	case b.Info()&types.IsFloat != 0:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case b.Info()&types.IsBoolean != 0:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}

	return raw
}

// jsonName extracts the wire name from a json tag, falling back to the
// declared field name.
func jsonName(tag, fallback string) string {
	if tag == "" {
		return fallback
	}

	p := strings.Split(tag, ",")
	if p[0] != "" {
		return p[0]
	}

	return fallback
}

// derefStruct unwraps pointers and named types down to a struct underlying.
func derefStruct(t types.Type) (*types.Struct, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	st, ok := t.Underlying().(*types.Struct)

	return st, ok
}

// embeddedName returns the declared name of an embedded field's type.
func embeddedName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if n, ok := t.(*types.Named); ok {
		return n.Obj().Name()
	}

	return ""
}
