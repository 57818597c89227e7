/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package settings persists the application's settings document: a JSON-shaped key/value
// object whose top-level entries are owned by individual components (appearance preferences,
// the settings dialog, window geometry). Two backends exist, a JSON file and an SQLite table.
package settings

import (
	"context"
	"sort"
	"sync"
)

// Object is a nested JSON object stored under a top-level key.
type Object map[string]any

// String returns the value under key if it is a string.
func (o Object) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// Float returns the value under key if it is numeric.
func (o Object) Float(key string) (float64, bool) {
	return toFloat(o[key])
}

// AsObject converts a decoded JSON value into an Object.
func AsObject(v any) (Object, bool) {
	switch m := v.(type) {
	case Object:
		return m, true
	case map[string]any:
		return Object(m), true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Store is a document-shaped key/value store.
type Store interface {
	Value(key string) (any, bool)
	// Object returns a copy of the object under key, or an empty Object.
	Object(key string) Object
	Insert(key string, value any)
	Remove(key string)
	Keys() []string
	Save(ctx context.Context) error
	Close() error
}

// Document is the in-memory settings document shared by the backends.
// It is safe for concurrent use; file watchers reload it off the UI goroutine.
type Document struct {
	mu   sync.RWMutex
	data map[string]any
}

func NewDocument() *Document { return &Document{data: map[string]any{}} }

func (d *Document) Value(key string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.data[key]
	return v, ok
}

func (d *Document) Object(key string) Object {
	v, _ := d.Value(key)
	src, ok := AsObject(v)
	out := Object{}
	if !ok {
		return out
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

func (d *Document) Insert(key string, value any) {
	if o, ok := value.(Object); ok {
		value = map[string]any(o)
	}
	d.mu.Lock()
	d.data[key] = value
	d.mu.Unlock()
}

func (d *Document) Remove(key string) {
	d.mu.Lock()
	delete(d.data, key)
	d.mu.Unlock()
}

func (d *Document) Keys() []string {
	d.mu.RLock()
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	d.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// MemoryStore is a Store that never touches disk.
type MemoryStore struct{ *Document }

func NewMemoryStore() *MemoryStore { return &MemoryStore{Document: NewDocument()} }

func (MemoryStore) Save(context.Context) error { return nil }
func (MemoryStore) Close() error               { return nil }

func (d *Document) snapshot() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]any, len(d.data))
	for k, v := range d.data {
		out[k] = v
	}
	return out
}

func (d *Document) replace(data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	d.mu.Lock()
	d.data = data
	d.mu.Unlock()
}
