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
	"sync"
)

// DefaultCache caches constructor-probed default values per type.
//
// Extraction is expensive and deterministic for a given type, and multiple
// generation calls may run concurrently, so the cache is the one piece of
// state shared across calls. Safe for concurrent use; a duplicate probe
// under contention is benign.
type DefaultCache struct {
	m sync.Map // reflect.Type -> probeResult
}

type probeResult struct {
	defaults map[string]any
	ok       bool
}

// NewDefaultCache returns an empty cache.
func NewDefaultCache() *DefaultCache {
	return &DefaultCache{}
}

// Extract determines the default values a constructor assigns, without the
// caller providing any.
//
// A probe instance is built by synthesizing placeholder values for every
// constructor parameter and invoking the constructor, letting it fill in
// default expressions. Declared property values are then read back off the
// instance; only non-zero values count as defaults, and absence of an entry
// means "no known default", never "default is null".
//
// Extraction is best-effort: when any parameter has no safe mock, the whole
// extraction for the type degrades to an empty result (ok=false) rather
// than partial results. Panics raised by user construction logic propagate
// to the caller unwrapped.
func (c *DefaultCache) Extract(t reflect.Type, ctor reflect.Value) (map[string]any, bool) {
	if cached, ok := c.m.Load(t); ok {
		r := cached.(probeResult)
		return r.defaults, r.ok
	}

	defaults, ok := probe(t, ctor)
	c.m.Store(t, probeResult{defaults: defaults, ok: ok})

	return defaults, ok
}

func probe(t reflect.Type, ctor reflect.Value) (map[string]any, bool) {
	if !ctor.IsValid() || ctor.Kind() != reflect.Func {
		return nil, false
	}

	ft := ctor.Type()
	if ft.NumOut() == 0 {
		return nil, false
	}

	out := ft.Out(0)
	if out != t && !(out.Kind() == reflect.Pointer && out.Elem() == t) {
		return nil, false
	}

	fixed := ft.NumIn()
	if ft.IsVariadic() {
		// The variadic part is optional by construction; probe without it.
		fixed--
	}

	args := make([]reflect.Value, 0, fixed)
	for i := range fixed {
		mock, ok := mockValue(ft.In(i))
		if !ok {
			return nil, false
		}
		args = append(args, mock)
	}

	results := ctor.Call(args)

	instance := results[0]
	if instance.Kind() == reflect.Pointer {
		if instance.IsNil() {
			return nil, true
		}
		instance = instance.Elem()
	}

	defaults := make(map[string]any)
	walkFields(t, func(f reflect.StructField) {
		if !f.IsExported() {
			return
		}

		jsonTag := f.Tag.Get("json")
		if jsonTag == "-" {
			return
		}

		v := instance.FieldByName(f.Name)
		if !v.IsValid() || v.IsZero() {
			return
		}

		defaults[parseJSONName(jsonTag, f.Name)] = v.Interface()
	})

	return defaults, true
}

// mockValue synthesizes a placeholder argument: the first declared entry for
// enum types, empty string for text, zero for numeric kinds, false for
// booleans, empty collections for containers, nil for pointers and
// interfaces. Kinds with no safe placeholder (channels, functions) report
// ok=false.
func mockValue(t reflect.Type) (reflect.Value, bool) {
	// A validating constructor may reject the zero value of an enum
	// parameter; the first declared entry is always legal.
	if t.Kind() == reflect.String {
		if entries, ok := enumEntriesOf(t); ok && len(entries) > 0 {
			v := reflect.New(t).Elem()
			v.SetString(entries[0])

			return v, true
		}
	}

	switch t.Kind() {
	case reflect.String,
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Pointer, reflect.Interface,
		reflect.Struct:
		return reflect.Zero(t), true
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0), true
	case reflect.Map:
		return reflect.MakeMap(t), true
	default:
		return reflect.Value{}, false
	}
}
