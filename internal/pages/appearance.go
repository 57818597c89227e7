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
	"math"
	"strconv"

	"idecore/internal/appearance"
	"idecore/internal/catalog"
	"idecore/internal/settings"
)

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"

	MinZoomPercent = 50
	MaxZoomPercent = 400
)

// Themes lists the selectable themes.
func Themes() []string { return []string{ThemeSystem, ThemeLight, ThemeDark} }

// AppearanceValues are the editable values of the Appearance page.
type AppearanceValues struct {
	Theme         string
	ZoomPercent   int
	Font          appearance.Font
	UseSystemFont bool
}

// Appearance edits theme, zoom and the UI font. Font changes take effect on the next start;
// theme and zoom are applied immediately.
type Appearance struct {
	*catalog.BasePage
	store settings.Store
	dec   *appearance.Decorator
	app   *appearance.AppContext

	saved, values AppearanceValues
}

func NewAppearance(deps Deps) *Appearance {
	p := &Appearance{
		BasePage: catalog.NewBasePage(AppearanceID, "Appearance", "Theme, zoom and fonts"),
		store:    deps.Store,
		dec:      deps.Decorator,
		app:      deps.App,
	}
	p.SetKeywords(searchWords[AppearanceID]...)
	p.load()
	return p
}

func (p *Appearance) load() {
	prefs := p.store.Object(appearance.PreferencesKey)
	v := AppearanceValues{Theme: ThemeSystem, ZoomPercent: 100, Font: appearance.SystemFont(), UseSystemFont: true}
	if s, ok := prefs.String("Theme"); ok && s != "" {
		v.Theme = s
	}
	if z, ok := appearance.ParseZoom(prefs["Zoom"]); ok {
		v.ZoomPercent = int(math.Round(z * 100))
	}
	if p.app != nil {
		v.Font = p.app.UserFont()
		v.UseSystemFont = p.app.UseSystemFont()
	}
	if s, ok := prefs.String("Font"); ok {
		if f, err := appearance.ParseFont(s); err == nil && f.PixelSize > 0 {
			v.Font = f
		}
	}
	if v.Font.PixelSize <= 0 {
		v.Font = appearance.SystemFont()
	}
	p.saved, p.values = v, v
}

func (p *Appearance) Values() AppearanceValues     { return p.values }
func (p *Appearance) SetValues(v AppearanceValues) { p.values = v }

func (p *Appearance) Accept() error {
	v := p.values
	if v == p.saved {
		return nil
	}
	if v.ZoomPercent < MinZoomPercent || v.ZoomPercent > MaxZoomPercent {
		return invalid("zoom %d%% outside %d-%d%%", v.ZoomPercent, MinZoomPercent, MaxZoomPercent)
	}
	if v.Font.Family == "" || v.Font.PixelSize <= 0 {
		return invalid("font %q", v.Font.String())
	}
	prefs := p.store.Object(appearance.PreferencesKey)
	prefs["Theme"] = v.Theme
	prefs["Zoom"] = strconv.Itoa(v.ZoomPercent)
	prefs["Font"] = v.Font.String()
	prefs["UseSystemFont"] = strconv.FormatBool(v.UseSystemFont)
	p.store.Insert(appearance.PreferencesKey, prefs)

	if p.dec != nil {
		p.dec.SetTheme(v.Theme)
		p.dec.SetZoomRatio(float64(v.ZoomPercent) / 100)
	}
	if p.app != nil {
		p.app.SetUserFont(v.Font)
		p.app.SetUseSystemFont(v.UseSystemFont)
	}
	p.saved = v
	return nil
}

func (p *Appearance) Finish() {
	p.load()
	p.BasePage.Finish()
}
