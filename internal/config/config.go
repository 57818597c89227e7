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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable application configuration persisted as YAML in the user
// config directory. Environment variables act as read-only overrides at runtime.
// Appearance preferences are not part of it; they live in the settings store.
type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Settings      SettingsConfig `yaml:"settings"`
	Logging       LoggingConfig  `yaml:"logging"`
	Fonts         []FontFile     `yaml:"fonts,omitempty"`
}

// FontFile is an extra TrueType/OpenType font offered on the Appearance page. A relative
// Path is resolved against the config directory.
type FontFile struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
	Weight int    `yaml:"weight,omitempty"` // 100-900, 0 means 400
	Italic bool   `yaml:"italic,omitempty"`
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
	ShowSplash     bool `yaml:"show_splash"`
}

// SettingsConfig selects where the settings document is persisted.
type SettingsConfig struct {
	Backend string `yaml:"backend"` // "file" | "sqlite"
	Path    string `yaml:"path"`    // empty means <config dir>/settings.json or settings.sqlite
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, ShowSplash: true},
		Settings:      SettingsConfig{Backend: BackendFile},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigDir       = "IDECORE_CONFIG_DIR"
	EnvSettingsBackend = "IDECORE_SETTINGS_BACKEND"
	EnvSettingsPath    = "IDECORE_SETTINGS_PATH"
	EnvTelemetryOptIn  = "IDECORE_TELEMETRY_OPT_IN"
	EnvLogLevel        = "IDECORE_LOG_LEVEL"
	EnvLogFormat       = "IDECORE_LOG_FORMAT"
	EnvLogSource       = "IDECORE_LOG_SOURCE"
	EnvLogFile         = "IDECORE_LOG_FILE"
)

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "IDECore")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "IDECore")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "idecore")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "idecore")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// Path returns the per-user config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// SettingsPath resolves the settings document location for the configured backend.
func (c AppConfig) SettingsPath() (string, error) {
	if p := strings.TrimSpace(c.Settings.Path); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if c.Settings.Backend == BackendSQLite {
		return filepath.Join(dir, "settings.sqlite"), nil
	}
	return filepath.Join(dir, "settings.json"), nil
}

// Load reads the user config file (if present), applies defaults and merges environment overrides.
// A malformed file is reported but defaults are still returned.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("decode %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	dst.General = src.General
	if b := normalizeBackend(src.Settings.Backend); b != "" {
		dst.Settings.Backend = b
	}
	if p := strings.TrimSpace(src.Settings.Path); p != "" {
		dst.Settings.Path = p
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
	for _, f := range src.Fonts {
		f.Family, f.Path = strings.TrimSpace(f.Family), strings.TrimSpace(f.Path)
		if f.Family != "" && f.Path != "" {
			dst.Fonts = append(dst.Fonts, f)
		}
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if b := normalizeBackend(os.Getenv(EnvSettingsBackend)); b != "" {
		cfg.Settings.Backend = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvSettingsPath)); v != "" {
		cfg.Settings.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func normalizeBackend(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case BackendFile, "json":
		return BackendFile
	case BackendSQLite, "sqlite3", "db":
		return BackendSQLite
	default:
		return ""
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
