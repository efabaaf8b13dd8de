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
	"crypto/sha256"
	"fmt"
	"reflect"
	"sync"
)

// Manager caches generated schema documents.
//
// Generation itself is pure and stateless; the manager adds memoization and
// ETag support for callers that serve the same schema repeatedly, such as an
// HTTP handler exposing tool definitions.
//
// Concurrency: Manager is safe for concurrent use. Lookups take a read
// lock; a cache miss generates outside the lock and the first completed
// result wins.
//
// Manager instances are created via NewManager() and should not be
// constructed directly.
type Manager struct {
	api   *API
	mu    sync.RWMutex
	cache map[managerKey]*cachedResult
}

type managerKey struct {
	kind   SchemaKind
	tool   string
	rtype  reflect.Type
	symbol Symbol
}

type cachedResult struct {
	result *Result
	etag   string
}

// NewManager creates a manager over api. Returns nil if api is nil.
//
// Example:
//
//	api := typegraph.MustNew(typegraph.WithStrictRequired())
//	manager := typegraph.NewManager(api)
//
//	result, etag, err := manager.Schema(ctx, SearchRequest{})
func NewManager(api *API) *Manager {
	if api == nil {
		return nil
	}

	return &Manager{
		api:   api,
		cache: make(map[managerKey]*cachedResult),
	}
}

// Schema returns the cached schema document for target, generating it on
// first use. The second return value is a quoted ETag over the JSON form.
func (m *Manager) Schema(ctx context.Context, target any) (*Result, string, error) {
	key, err := m.keyFor(SchemaObject, "", target)
	if err != nil {
		return nil, "", err
	}

	if c, ok := m.lookup(key); ok {
		return c.result, c.etag, nil
	}

	result, err := m.api.GenerateSchema(ctx, target)
	if err != nil {
		return nil, "", err
	}

	c := m.store(key, result)

	return c.result, c.etag, nil
}

// ToolSchema returns the cached tool schema for tool, generating it on
// first use.
func (m *Manager) ToolSchema(ctx context.Context, tool ToolDef) (*Result, string, error) {
	key, err := m.keyFor(SchemaTool, tool.Name, tool.Target)
	if err != nil {
		return nil, "", err
	}

	if c, ok := m.lookup(key); ok {
		return c.result, c.etag, nil
	}

	result, err := m.api.GenerateToolSchema(ctx, tool)
	if err != nil {
		return nil, "", err
	}

	c := m.store(key, result)

	return c.result, c.etag, nil
}

// Invalidate drops every cached document. Call after changing the source
// packages a Symbol target points at.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache = make(map[managerKey]*cachedResult)
}

// Len reports the number of cached documents.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.cache)
}

func (m *Manager) keyFor(kind SchemaKind, tool string, target any) (managerKey, error) {
	key := managerKey{kind: kind, tool: tool}

	switch t := target.(type) {
	case nil:
		return managerKey{}, ErrNilTarget
	case Symbol:
		key.symbol = t
	case reflect.Type:
		key.rtype = t
	default:
		key.rtype = reflect.TypeOf(target)
	}

	return key, nil
}

func (m *Manager) lookup(key managerKey) (*cachedResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cache[key]

	return c, ok
}

// store caches result under key. When two goroutines generate the same
// schema concurrently, the first stored result wins; determinism makes the
// duplicates identical anyway.
func (m *Manager) store(key managerKey, result *Result) *cachedResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.cache[key]; ok {
		return c
	}

	c := &cachedResult{
		result: result,
		etag:   fmt.Sprintf("%q", fmt.Sprintf("%x", sha256.Sum256(result.JSON))),
	}
	m.cache[key] = c

	return c
}
