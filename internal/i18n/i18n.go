/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package i18n translates user-visible strings with go-i18n message files embedded in the binary.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	applog "idecore/internal/log"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves message ids for the active locale, falling back to English.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	locale    string
}

// systemLocale is swapped in tests.
var systemLocale = golocale.GetLocale

// New loads the embedded message files and activates the OS locale.
func New() (*Translator, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	for _, e := range entries {
		if _, err := b.LoadMessageFileFS(localeFS, path.Join("locales", e.Name())); err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
	}
	t := &Translator{bundle: b}
	t.SetLocale("")
	return t, nil
}

// SetLocale activates a locale such as "de", "de_DE" or "pt-BR". An empty name selects the OS
// locale; unknown locales fall back to English at lookup time.
func (t *Translator) SetLocale(name string) {
	name = normalize(name)
	if name == "" {
		if sys, err := systemLocale(); err == nil {
			name = normalize(sys)
		} else {
			applog.WithComponent("i18n").Debug("system locale unavailable", slog.Any("err", err))
		}
	}
	if name == "" {
		name = language.English.String()
	}
	t.locale = name
	t.localizer = i18n.NewLocalizer(t.bundle, name, language.English.String())
}

// Locale returns the active locale name.
func (t *Translator) Locale() string { return t.locale }

// Languages lists the locales that have a message file.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// T returns the translation for id, or id itself when no message exists.
func (t *Translator) T(id string) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || s == "" {
		return id
	}
	return s
}

func normalize(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", "-"))
	if i := strings.IndexByte(name, '.'); i >= 0 { // "de_DE.UTF-8"
		name = name[:i]
	}
	return name
}
