/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Settings.Backend != BackendFile {
		t.Fatalf("Settings.Backend = %q, want %q", cfg.Settings.Backend, BackendFile)
	}
	if !cfg.General.ShowSplash {
		t.Fatalf("ShowSplash default should be true")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	cfg := Defaults()
	cfg.Settings.Backend = BackendSQLite
	cfg.Logging.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Settings.Backend != BackendSQLite || got.Logging.Level != "debug" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	p, err := got.SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath() error: %v", err)
	}
	if want := filepath.Join(dir, "settings.sqlite"); p != want {
		t.Fatalf("SettingsPath() = %q, want %q", p, want)
	}
}

func TestLoadFontFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	data := "fonts:\n" +
		"  - family: Fira Code\n    path: fonts/FiraCode.ttf\n    weight: 700\n" +
		"  - family: \"\"\n    path: nameless.ttf\n" +
		"  - family: Inter\n    path: \" /usr/share/fonts/Inter-Italic.otf \"\n    italic: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []FontFile{
		{Family: "Fira Code", Path: "fonts/FiraCode.ttf", Weight: 700},
		{Family: "Inter", Path: "/usr/share/fonts/Inter-Italic.otf", Italic: true},
	}
	if len(got.Fonts) != len(want) {
		t.Fatalf("Fonts = %+v, want %+v", got.Fonts, want)
	}
	for i := range want {
		if got.Fonts[i] != want[i] {
			t.Fatalf("Fonts[%d] = %+v, want %+v", i, got.Fonts[i], want[i])
		}
	}
}

func TestLoadMalformedFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("settings: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg.Settings.Backend != BackendFile {
		t.Fatalf("defaults not kept: %+v", cfg.Settings)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvSettingsBackend, "SQLite3")
	t.Setenv(EnvSettingsPath, "/tmp/x.sqlite")
	t.Setenv(EnvTelemetryOptIn, "yes")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvLogSource, "1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Settings.Backend != BackendSQLite || cfg.Settings.Path != "/tmp/x.sqlite" {
		t.Fatalf("settings overrides not applied: %+v", cfg.Settings)
	}
	if !cfg.General.TelemetryOptIn || cfg.Logging.Level != "error" || !cfg.Logging.Source {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestMergeIgnoresUnknownBackend(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Settings.Backend = "etcd"
	src.Logging.Format = " JSON "
	mergeInto(&dst, &src)
	if dst.Settings.Backend != BackendFile {
		t.Fatalf("unknown backend merged: %q", dst.Settings.Backend)
	}
	if dst.Logging.Format != "json" {
		t.Fatalf("Logging.Format = %q, want json", dst.Logging.Format)
	}
}

func TestMemorySecrets(t *testing.T) {
	s := NewMemorySecrets()
	if _, err := s.Get("proxy"); !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("Get on empty store err = %v, want ErrSecretNotFound", err)
	}
	if err := s.Set("proxy", "hunter2"); err != nil {
		t.Fatal(err)
	}
	if v, err := s.Get("proxy"); err != nil || v != "hunter2" {
		t.Fatalf("Get() = %q, %v", v, err)
	}
	_ = s.Delete("proxy")
	if _, err := s.Get("proxy"); !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("secret survived Delete")
	}
}
