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
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"idecore/internal/config"
)

func TestDocumentObjectIsACopy(t *testing.T) {
	d := NewDocument()
	d.Insert("Preferences", Object{"Theme": "dark"})
	o := d.Object("Preferences")
	o["Theme"] = "light"
	if got, _ := d.Object("Preferences").String("Theme"); got != "dark" {
		t.Fatalf("Theme = %q, want dark (Object must return a copy)", got)
	}
	if len(d.Object("missing")) != 0 {
		t.Fatalf("missing key should yield an empty object")
	}
	d.Insert("scalar", 3)
	if len(d.Object("scalar")) != 0 {
		t.Fatalf("non-object key should yield an empty object")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() on missing file: %v", err)
	}
	s.Insert("Preferences", Object{"Zoom": "150", "Theme": "dark"})
	s.Insert("Core/SettingCatalog", Object{"LastSettingPageId": "core.Appearance"})
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	s2, err := OpenFile(path)
	if err != nil {
		t.Fatalf("re-open: %v", err)
	}
	if got, _ := s2.Object("Preferences").String("Zoom"); got != "150" {
		t.Fatalf("Zoom = %q, want 150", got)
	}
	if got, _ := s2.Object("Core/SettingCatalog").String("LastSettingPageId"); got != "core.Appearance" {
		t.Fatalf("LastSettingPageId = %q", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFileStoreRejectsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"Core/SettingCatalog": "not an object"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("OpenFile() err = %v, want ErrInvalidDocument", err)
	}
}

func TestFileStoreAcceptsMalformedPreferenceValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"Preferences": {"Zoom": "abc", "UseSystemFont": 7}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	if got, _ := s.Object("Preferences").String("Zoom"); got != "abc" {
		t.Fatalf("Zoom = %q", got)
	}
}

func TestFileStoreWatchReloadsExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Insert("Preferences", Object{"Theme": "light"})
	if err := s.Save(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 4)
	if err := s.Watch(ctx, func() { changed <- struct{}{} }); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"Preferences": {"Theme": "dark"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload after external write")
	}
	if got, _ := s.Object("Preferences").String("Theme"); got != "dark" {
		t.Fatalf("Theme = %q, want dark", got)
	}
}

func TestSQLiteStoreRoundTripAndRemoval(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.sqlite")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	s.Insert("Preferences", Object{"Font": "Go,9,12,5,400,0,0,0,0,0"})
	s.Insert("Scratch", "temp")
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	s.Remove("Scratch")
	if err := s.Save(ctx); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("re-open: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close() })
	if got, _ := s2.Object("Preferences").String("Font"); got != "Go,9,12,5,400,0,0,0,0,0" {
		t.Fatalf("Font = %q", got)
	}
	if _, ok := s2.Value("Scratch"); ok {
		t.Fatalf("removed key still persisted")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Settings.Path = filepath.Join(dir, "s.json")
	st, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := st.(*FileStore); !ok {
		t.Fatalf("Open() = %T, want *FileStore", st)
	}

	cfg.Settings.Backend = config.BackendSQLite
	cfg.Settings.Path = filepath.Join(dir, "s.sqlite")
	st, err = Open(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if _, ok := st.(*SQLiteStore); !ok {
		t.Fatalf("Open() = %T, want *SQLiteStore", st)
	}
}

func TestWindowsGeometry(t *testing.T) {
	w := NewWindows(NewMemoryStore())
	def := Size{Width: 1280, Height: 720}
	if got := w.LoadGeometry("SettingsDialog", def); got != def {
		t.Fatalf("LoadGeometry() = %v, want default", got)
	}
	w.SaveGeometry("SettingsDialog", Size{Width: 900, Height: 600})
	if got := w.LoadGeometry("SettingsDialog", def); got != (Size{Width: 900, Height: 600}) {
		t.Fatalf("LoadGeometry() = %v", got)
	}

	if got := w.LoadSplitterSizes("SettingsDialog", []float32{250, 650}); got[0] != 250 || got[1] != 650 {
		t.Fatalf("LoadSplitterSizes() default = %v", got)
	}
	w.SaveSplitterSizes("SettingsDialog", []float32{300, 600})
	if got := w.LoadSplitterSizes("SettingsDialog", nil); len(got) != 2 || got[0] != 300 || got[1] != 600 {
		t.Fatalf("LoadSplitterSizes() = %v", got)
	}
}

func TestWindowsGeometryFromDecodedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"WindowSystem": {"SettingsDialog/Geometry": {"width": 1000, "height": -1}, "SettingsDialog/Splitter": [200, "x"]}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWindows(s)
	def := Size{Width: 1280, Height: 720}
	if got := w.LoadGeometry("SettingsDialog", def); got != def {
		t.Fatalf("negative height should fall back to default, got %v", got)
	}
	if got := w.LoadSplitterSizes("SettingsDialog", []float32{1, 2}); got[0] != 1 {
		t.Fatalf("malformed splitter should fall back to default, got %v", got)
	}
}
