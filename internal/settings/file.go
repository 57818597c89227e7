/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	gojsonschema "github.com/xeipuuv/gojsonschema"

	applog "idecore/internal/log"
)

// documentSchema only constrains the namespaces this module owns. Preference values are
// deliberately untyped: malformed values are normalized by their readers, not rejected here.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "Preferences": {"type": "object"},
    "Core/SettingCatalog": {
      "type": "object",
      "properties": {"LastSettingPageId": {"type": "string"}}
    },
    "WindowSystem": {"type": "object"}
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// ErrInvalidDocument wraps schema violations found while loading a settings file.
var ErrInvalidDocument = errors.New("invalid settings document")

func validate(data []byte) error {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("compile settings schema: %w", schemaErr)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}

// FileStore keeps the settings document in a JSON file.
type FileStore struct {
	*Document
	path string
	log  *slog.Logger

	mu          sync.Mutex
	lastWritten []byte
}

// OpenFile loads the settings document at path. A missing file yields an empty document.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{
		Document: NewDocument(),
		path:     filepath.Clean(path),
		log:      applog.WithComponent("settings").With(slog.String("path", path)),
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := s.load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		s.replace(nil)
		return nil
	}
	if err := validate(data); err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode settings json: %w", err)
	}
	s.replace(doc)
	return nil
}

// Save writes the document atomically through a temp file.
func (s *FileStore) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write temp settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename temp settings: %w", err)
	}
	s.lastWritten = raw
	s.log.Debug("settings saved", slog.Int("keys", len(s.Keys())))
	return nil
}

func (s *FileStore) Close() error { return nil }

// Watch reloads the document whenever the file is changed by another process and then calls
// onChange. onChange runs on the watcher goroutine; UI callers must hop to their own thread.
// Watch returns once the watcher is installed; it stops when ctx is done.
func (s *FileStore) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		_ = w.Close()
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != s.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if s.reloadExternal() && onChange != nil {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("settings watcher error", slog.Any("err", err))
			}
		}
	}()
	return nil
}

// reloadExternal re-reads the file unless it still holds what this store wrote last.
func (s *FileStore) reloadExternal() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn("re-read settings failed", slog.Any("err", err))
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		// truncated mid-write; the following write event carries the content
		return false
	}
	s.mu.Lock()
	own := bytes.Equal(data, s.lastWritten)
	s.mu.Unlock()
	if own {
		return false
	}
	if err := s.load(data); err != nil {
		s.log.Warn("ignoring external settings change", slog.Any("err", err))
		return false
	}
	s.log.Info("settings reloaded after external change")
	return true
}
