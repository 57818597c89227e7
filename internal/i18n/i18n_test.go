/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package i18n

import (
	"errors"
	"testing"
)

func withSystemLocale(t *testing.T, name string, err error) {
	t.Helper()
	old := systemLocale
	systemLocale = func() (string, error) { return name, err }
	t.Cleanup(func() { systemLocale = old })
}

func TestTranslateActiveLocale(t *testing.T) {
	withSystemLocale(t, "en-US", nil)
	tr, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := tr.T("SettingsWindowTitle"); got != "Settings" {
		t.Fatalf("T() = %q, want Settings", got)
	}
	tr.SetLocale("de_DE.UTF-8")
	if tr.Locale() != "de-DE" {
		t.Fatalf("Locale() = %q, want de-DE", tr.Locale())
	}
	if got := tr.T("SettingsSearchPlaceholder"); got != "Einstellungen durchsuchen" {
		t.Fatalf("T() = %q", got)
	}
}

func TestUnknownLocaleAndMessageFallBack(t *testing.T) {
	withSystemLocale(t, "", errors.New("no locale"))
	tr, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if tr.Locale() != "en" {
		t.Fatalf("Locale() = %q, want en when OS locale is unavailable", tr.Locale())
	}
	tr.SetLocale("xx")
	if got := tr.T("ButtonCancel"); got != "Cancel" {
		t.Fatalf("T() = %q, want English fallback", got)
	}
	if got := tr.T("NoSuchMessage"); got != "NoSuchMessage" {
		t.Fatalf("T() = %q, want id echo", got)
	}
}

func TestLanguages(t *testing.T) {
	withSystemLocale(t, "en", nil)
	tr, err := New()
	if err != nil {
		t.Fatal(err)
	}
	langs := map[string]bool{}
	for _, l := range tr.Languages() {
		langs[l] = true
	}
	if !langs["en"] || !langs["de"] {
		t.Fatalf("Languages() = %v, want en and de", tr.Languages())
	}
}
