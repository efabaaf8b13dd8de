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

package typegraph

import (
	"context"
	"fmt"
	"reflect"

	"rivaas.dev/typegraph/diag"
	"rivaas.dev/typegraph/internal/introspect"
	"rivaas.dev/typegraph/internal/reflectx"
	"rivaas.dev/typegraph/internal/symbolx"
	"rivaas.dev/typegraph/internal/transform"
	"rivaas.dev/typegraph/ir"
	"rivaas.dev/typegraph/validate"
)

// Shared validator instance for all generation (stateless, reused)
var sharedValidator = validate.New()

// Symbol names a declaration in Go source for the symbol front-end, which
// introspects loaded package syntax without executing the target.
type Symbol struct {
	// Pattern is the package pattern to load, e.g. "./internal/api".
	Pattern string

	// Type is the package-scope type name for object schema targets.
	Type string

	// Func is the package-scope function name for tool schema targets.
	Func string
}

// ToolDef describes one function-calling tool.
type ToolDef struct {
	// Name is the tool name. Required for reflection targets; symbol
	// targets default to the function name.
	Name string

	// Description documents the tool. Symbol targets default to the
	// function's doc comment.
	Description string

	// Target is the parameter source: a struct value (or reflect.Type)
	// under reflection, or a Symbol naming a function.
	Target any
}

// GenerateSchema produces a JSON Schema document from target.
//
// This is a pure function with no side effects. A live Go value (or
// reflect.Type) is introspected through reflection; a [Symbol] is
// introspected from package source. Caching is the caller's responsibility.
//
// Example:
//
//	api := typegraph.MustNew(
//	    typegraph.WithUnion((*Shape)(nil), Circle{}, Rect{}),
//	)
//
//	result, err := api.GenerateSchema(ctx, Person{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.JSON))
func (a *API) GenerateSchema(ctx context.Context, target any) (*Result, error) {
	g, err := a.registry.Lookup(sourceOf(target), SchemaObject)
	if err != nil {
		return nil, err
	}

	return g.Generate(ctx, target)
}

// GenerateSchemaString is GenerateSchema returning the JSON document as a
// string, discarding warnings.
func (a *API) GenerateSchemaString(ctx context.Context, target any) (string, error) {
	result, err := a.GenerateSchema(ctx, target)
	if err != nil {
		return "", err
	}

	return string(result.JSON), nil
}

// GenerateToolSchema produces a function-calling tool schema. The parameters
// object is always fully inlined: tool consumers resolve no references.
//
// Example:
//
//	result, err := api.GenerateToolSchema(ctx, typegraph.ToolDef{
//	    Name:        "search_hotels",
//	    Description: "Search for hotels matching the criteria.",
//	    Target:      SearchRequest{},
//	})
func (a *API) GenerateToolSchema(ctx context.Context, tool ToolDef) (*Result, error) {
	g, err := a.registry.Lookup(sourceOf(tool.Target), SchemaTool)
	if err != nil {
		return nil, err
	}

	return g.Generate(ctx, tool)
}

// sourceOf routes a target to its front-end: Symbol targets load source,
// everything else is reflected.
func sourceOf(target any) SourceKind {
	if _, ok := target.(Symbol); ok {
		return SourceSymbols
	}

	return SourceReflection
}

// reflectionGenerator introspects live Go values.
type reflectionGenerator struct {
	api  *API
	kind SchemaKind
}

func (g *reflectionGenerator) Source() SourceKind { return SourceReflection }
func (g *reflectionGenerator) Kind() SchemaKind   { return g.kind }

func (g *reflectionGenerator) Generate(ctx context.Context, target any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if g.kind == SchemaTool {
		def, ok := target.(ToolDef)
		if !ok {
			return nil, fmt.Errorf("%w: tool generation expects a ToolDef", ErrUnsupportedTarget)
		}
		if def.Name == "" {
			return nil, ErrToolNameRequired
		}

		graph, warns, err := g.introspect(def.Target)
		if err != nil {
			return nil, err
		}

		return g.api.encodeTool(graph, warns, def.Name, def.Description)
	}

	graph, warns, err := g.introspect(target)
	if err != nil {
		return nil, err
	}

	return g.api.encodeObject(ctx, graph, warns)
}

func (g *reflectionGenerator) introspect(target any) (*ir.TypeGraph, diag.Warnings, error) {
	if target == nil {
		return nil, nil, ErrNilTarget
	}

	t, ok := target.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(target)
	}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() == reflect.Func {
		// Runtime reflection cannot recover parameter names.
		return nil, nil, fmt.Errorf("%w: function targets require a Symbol", ErrUnsupportedTarget)
	}

	var warns diag.Warnings
	opts := &reflectx.Options{
		DescriptionTag: g.api.DescriptionTag,
		Unions:         g.api.unions,
		Constructors:   g.api.constructors,
		Defaults:       g.api.defaults,
		Warnings:       &warns,
	}

	ictx := introspect.New()
	graph, err := ictx.Resolve(reflectx.New(t, opts))
	if err != nil {
		return nil, nil, err
	}

	return graph, append(warns, ictx.Warnings()...), nil
}

// symbolGenerator introspects declared types from loaded package source.
type symbolGenerator struct {
	api  *API
	kind SchemaKind
}

func (g *symbolGenerator) Source() SourceKind { return SourceSymbols }
func (g *symbolGenerator) Kind() SchemaKind   { return g.kind }

func (g *symbolGenerator) Generate(ctx context.Context, target any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if g.kind == SchemaTool {
		return g.generateTool(ctx, target)
	}

	sym, ok := target.(Symbol)
	if !ok {
		return nil, fmt.Errorf("%w: symbol generation expects a Symbol target", ErrUnsupportedTarget)
	}

	pkg, err := symbolx.Load(ctx, sym.Pattern)
	if err != nil {
		return nil, err
	}

	d, err := pkg.Descriptor(sym.Type)
	if err != nil {
		return nil, err
	}

	ictx := introspect.New()
	graph, err := ictx.Resolve(d)
	if err != nil {
		return nil, err
	}

	return g.api.encodeObject(ctx, graph, ictx.Warnings())
}

func (g *symbolGenerator) generateTool(ctx context.Context, target any) (*Result, error) {
	def, ok := target.(ToolDef)
	if !ok {
		return nil, fmt.Errorf("%w: tool generation expects a ToolDef", ErrUnsupportedTarget)
	}

	sym, ok := def.Target.(Symbol)
	if !ok {
		return nil, fmt.Errorf("%w: symbol tool generation expects a Symbol target", ErrUnsupportedTarget)
	}

	pkg, err := symbolx.Load(ctx, sym.Pattern)
	if err != nil {
		return nil, err
	}

	fd, doc, err := pkg.FuncDescriptor(sym.Func)
	if err != nil {
		return nil, err
	}

	name := def.Name
	if name == "" {
		name = sym.Func
	}
	if name == "" {
		return nil, ErrToolNameRequired
	}

	desc := def.Description
	if desc == "" {
		desc = doc
	}

	ictx := introspect.New()
	graph, err := ictx.Resolve(fd)
	if err != nil {
		return nil, err
	}

	return g.api.encodeTool(graph, ictx.Warnings(), name, desc)
}

// encodeObject renders graph as a standalone JSON Schema document and
// optionally validates the output.
func (a *API) encodeObject(ctx context.Context, graph *ir.TypeGraph, warns diag.Warnings) (*Result, error) {
	doc, tw, err := transform.Transform(graph, a.transformConfig(SchemaObject))
	if err != nil {
		return nil, fmt.Errorf("failed to transform type graph: %w", err)
	}

	encoded, err := transform.Encode(doc, append(warns, tw...))
	if err != nil {
		return nil, err
	}

	if a.ValidateOutput {
		if err := sharedValidator.ValidateSchema(ctx, encoded.JSON); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaValidationFailed, err)
		}
	}

	return &Result{JSON: encoded.JSON, YAML: encoded.YAML, Warnings: encoded.Warnings}, nil
}

// encodeTool renders graph as the parameters object of a tool schema.
// Validation is skipped: a tool envelope is not itself a schema document.
func (a *API) encodeTool(graph *ir.TypeGraph, warns diag.Warnings, name, description string) (*Result, error) {
	doc, tw, err := transform.Transform(graph, a.transformConfig(SchemaTool))
	if err != nil {
		return nil, fmt.Errorf("failed to transform type graph: %w", err)
	}

	tool := &transform.Tool{
		Type:        "function",
		Name:        name,
		Description: description,
		Strict:      a.RequiredMode == RequiredAll && a.TreatNullableOptionalAsRequired,
		Parameters:  doc,
	}

	encoded, err := transform.Encode(tool, append(warns, tw...))
	if err != nil {
		return nil, err
	}

	return &Result{JSON: encoded.JSON, YAML: encoded.YAML, Warnings: encoded.Warnings}, nil
}
