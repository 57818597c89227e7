/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package pages

import (
	"idecore/internal/appearance"
	"idecore/internal/catalog"
	"idecore/internal/settings"
)

// GeneralValues are the editable values of the General page.
type GeneralValues struct {
	Language   string
	ShowSplash bool
}

// General edits the UI language.
type General struct {
	*catalog.BasePage
	store settings.Store
	dec   *appearance.Decorator

	saved, values GeneralValues
}

func NewGeneral(deps Deps) *General {
	p := &General{
		BasePage: catalog.NewBasePage(GeneralID, "General", "Language and startup"),
		store:    deps.Store,
		dec:      deps.Decorator,
	}
	p.SetKeywords(searchWords[GeneralID]...)
	p.load()
	return p
}

func (p *General) load() {
	prefs := p.store.Object(appearance.PreferencesKey)
	v := GeneralValues{ShowSplash: true}
	v.Language, _ = prefs.String("Translation")
	if b, ok := prefs["ShowSplash"].(bool); ok {
		v.ShowSplash = b
	}
	p.saved, p.values = v, v
}

func (p *General) Values() GeneralValues     { return p.values }
func (p *General) SetValues(v GeneralValues) { p.values = v }

func (p *General) Accept() error {
	if p.values == p.saved {
		return nil
	}
	prefs := p.store.Object(appearance.PreferencesKey)
	prefs["Translation"] = p.values.Language
	prefs["ShowSplash"] = p.values.ShowSplash
	p.store.Insert(appearance.PreferencesKey, prefs)
	if p.dec != nil {
		p.dec.SetLocale(p.values.Language)
	}
	p.saved = p.values
	return nil
}

func (p *General) Finish() {
	p.load()
	p.BasePage.Finish()
}
