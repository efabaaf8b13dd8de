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

// Package symbolx is the compile-time-symbol introspection front-end.
//
// It adapts go/types objects to the introspect.Descriptor capability
// interface, using loaded syntax for what the type checker alone cannot
// answer: declaration order of constants and types, and doc comments.
//
// Front-end limitation: default-value presence is knowable (the `default`
// struct tag), default-value content is not evaluated. Downstream consumers
// must tolerate HasDefault=true with a nil Default.
package symbolx

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Package wraps one loaded package together with the syntax-derived indexes
// the descriptors need.
type Package struct {
	pkg *packages.Package

	typeOrder  []string
	constOrder []string

	typeDocs  map[string]string
	fieldDocs map[string]map[string]string
	funcDocs  map[string]string
}

// Load type-checks the single package matched by pattern.
func Load(ctx context.Context, pattern string) (*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedDeps | packages.NeedImports,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("typegraph: loading %q: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("typegraph: pattern %q matched %d packages, want exactly 1", pattern, len(pkgs))
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("typegraph: loading %q: %v", pattern, pkgs[0].Errors[0])
	}

	p := &Package{
		pkg:       pkgs[0],
		typeDocs:  make(map[string]string),
		fieldDocs: make(map[string]map[string]string),
		funcDocs:  make(map[string]string),
	}
	p.index()

	return p, nil
}

// index walks the syntax once, recording declaration order and doc comments.
func (p *Package) index() {
	for _, file := range p.pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				p.indexGenDecl(d)
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name != nil {
					p.funcDocs[d.Name.Name] = docText(d.Doc)
				}
			}
		}
	}
}

func (p *Package) indexGenDecl(d *ast.GenDecl) {
	switch d.Tok {
	case token.TYPE:
		for _, spec := range d.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			name := ts.Name.Name
			p.typeOrder = append(p.typeOrder, name)

			doc := docText(ts.Doc)
			if doc == "" {
				doc = docText(d.Doc)
			}
			p.typeDocs[name] = doc

			if st, ok := ts.Type.(*ast.StructType); ok {
				p.indexStructFields(name, st)
			}
		}

	case token.CONST:
		for _, spec := range d.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, ident := range vs.Names {
				if ident.Name != "_" {
					p.constOrder = append(p.constOrder, ident.Name)
				}
			}
		}
	}
}

func (p *Package) indexStructFields(typeName string, st *ast.StructType) {
	docs := make(map[string]string)
	for _, f := range st.Fields.List {
		doc := docText(f.Doc)
		if doc == "" {
			doc = docText(f.Comment)
		}
		for _, name := range f.Names {
			docs[name.Name] = doc
		}
	}
	p.fieldDocs[typeName] = docs
}

// docText flattens a comment group to a single-line description.
func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}

	return strings.TrimSpace(strings.ReplaceAll(cg.Text(), "\n", " "))
}

// scope returns the package-level scope.
func (p *Package) scope() *types.Scope {
	return p.pkg.Types.Scope()
}

// constantsOf returns the names of package-scope constants declared with the
// given named type, in declaration order.
func (p *Package) constantsOf(named *types.Named) []string {
	var out []string
	for _, name := range p.constOrder {
		obj := p.scope().Lookup(name)
		c, ok := obj.(*types.Const)
		if !ok {
			continue
		}
		if types.Identical(c.Type(), named) {
			out = append(out, name)
		}
	}

	return out
}

// implementersOf returns the package's named non-interface types that
// implement iface, in declaration order. A non-empty result marks iface a
// closed hierarchy within the package.
func (p *Package) implementersOf(iface *types.Interface) []*types.Named {
	var out []*types.Named
	for _, name := range p.typeOrder {
		obj, ok := p.scope().Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}

		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		if types.IsInterface(named) {
			continue
		}

		if types.Implements(named, iface) || types.Implements(types.NewPointer(named), iface) {
			out = append(out, named)
		}
	}

	return out
}

// fieldDoc returns the doc comment for a struct field, if indexed.
func (p *Package) fieldDoc(typeName, fieldName string) string {
	return p.fieldDocs[typeName][fieldName]
}

// typeDoc returns the doc comment for a type declaration, if indexed.
func (p *Package) typeDoc(typeName string) string {
	return p.typeDocs[typeName]
}
