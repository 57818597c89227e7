//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"idecore/internal/appearance"
	"idecore/internal/pages"
)

// appTheme applies the decorator's theme and zoom and the startup font to fyne. It is also
// the appearance.FontTarget for the startup routine.
type appTheme struct {
	base    fyne.Theme
	dec     *appearance.Decorator
	font    appearance.Font
	tooltip appearance.Font
}

func newAppTheme(dec *appearance.Decorator) *appTheme {
	return &appTheme{base: theme.DefaultTheme(), dec: dec}
}

func (t *appTheme) SetDefaultFont(f appearance.Font) { t.font = f }

// SetTooltipFont records the tooltip font; fyne has no tooltips, it is kept for hover labels.
func (t *appTheme) SetTooltipFont(f appearance.Font) { t.tooltip = f }

func (t *appTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch t.dec.Theme() {
	case pages.ThemeDark:
		variant = theme.VariantDark
	case pages.ThemeLight:
		variant = theme.VariantLight
	}
	return t.base.Color(name, variant)
}

func (t *appTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.font.FixedPitch || t.font.Family == appearance.MonoFamily {
		style.Monospace = true
	}
	return t.base.Font(style)
}

func (t *appTheme) Icon(name fyne.ThemeIconName) fyne.Resource { return t.base.Icon(name) }

func (t *appTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.font.PixelSize > 0 {
		return float32(t.font.PixelSize)
	}
	return t.base.Size(name) * float32(t.dec.ZoomRatio())
}

// bind re-installs the theme whenever the decorator changes so fyne redraws. The startup
// font is rescaled from the user's base font on zoom changes.
func (t *appTheme) bind(a fyne.App, user appearance.Font) (cancel func()) {
	return t.dec.Subscribe(func(c appearance.Change) {
		if c == appearance.ZoomChanged {
			t.font = appearance.EffectiveFont(user, t.dec.ZoomRatio())
		}
		if c == appearance.ThemeChanged || c == appearance.ZoomChanged {
			a.Settings().SetTheme(t)
		}
	})
}
