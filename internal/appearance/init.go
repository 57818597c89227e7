/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package appearance

import (
	"math"
	"strconv"
	"strings"

	applog "idecore/internal/log"
	"idecore/internal/settings"
)

// PreferencesKey is the top-level settings entry holding appearance preferences.
const PreferencesKey = "Preferences"

// FontTarget receives the effective fonts computed at startup.
type FontTarget interface {
	SetDefaultFont(Font)
	SetTooltipFont(Font)
}

// SystemFont returns the platform default UI font at the default pixel size.
func SystemFont() Font {
	return Font{Family: DefaultFamily, PointSize: -1, PixelSize: DefaultPixelSize}
}

// Initialize applies the persisted appearance preferences to a running application. Malformed
// values are ignored and the corresponding default is kept; the routine never fails.
// systemFont may be nil, in which case SystemFont is used.
func Initialize(store settings.Store, dec *Decorator, app *AppContext, target FontTarget, systemFont func() Font) {
	l := applog.WithOperation(applog.WithComponent("appearance"), "initialize")
	if systemFont == nil {
		systemFont = SystemFont
	}
	prefs := store.Object(PreferencesKey)

	if v, ok := prefs.String("Translation"); ok {
		dec.SetLocale(v)
	}
	if v, ok := prefs.String("Theme"); ok {
		dec.SetTheme(v)
	}
	if raw, present := prefs["Zoom"]; present {
		if z, ok := ParseZoom(raw); ok {
			dec.SetZoomRatio(z)
		} else {
			l.Warn("ignoring zoom preference", "value", raw)
		}
	}

	userFont := resolveUserFont(prefs["Font"], systemFont)
	dec.SetFontRatio(float64(userFont.PixelSize) / DefaultPixelSize)
	app.userFont = userFont
	app.userFontInitial = userFont

	effective := EffectiveFont(userFont, dec.ZoomRatio())
	target.SetDefaultFont(effective)
	target.SetTooltipFont(effective)

	app.useSystemFont = true
	if s, ok := prefs.String("UseSystemFont"); ok {
		app.useSystemFont = strings.EqualFold(strings.TrimSpace(s), "true")
	}

	l.Debug("appearance applied",
		"locale", dec.Locale(), "theme", dec.Theme(), "zoom", dec.ZoomRatio(),
		"font", effective.String(), "use_system_font", app.useSystemFont)
}

// ParseZoom reads a zoom percentage stored as a string or a number and returns it as a ratio
// ("150" is 1.5). Only finite positive values are accepted.
func ParseZoom(v any) (float64, bool) {
	var z float64
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		z = f
	case float64:
		z = t
	case int:
		z = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(z) || math.IsInf(z, 0) || z <= 0 {
		return 0, false
	}
	return z / 100, true
}

func resolveUserFont(v any, systemFont func() Font) Font {
	fallback := func() Font { return systemFont().WithPixelSize(DefaultPixelSize) }
	s, ok := v.(string)
	if !ok {
		return fallback()
	}
	f, err := ParseFont(s)
	if err != nil {
		applog.WithComponent("appearance").Warn("ignoring font preference", "value", s, "err", err)
		return fallback()
	}
	if f.PixelSize <= 0 {
		// Point-sized descriptor: keep the family and style, size it in pixels.
		return f.WithPixelSize(DefaultPixelSize)
	}
	return f
}

// EffectiveFont scales f by the zoom ratio. The result is at least one pixel high.
func EffectiveFont(f Font, zoom float64) Font {
	px := int(math.Round(float64(f.PixelSize) * zoom))
	if px < 1 {
		px = 1
	}
	return f.WithPixelSize(px)
}

// Reapply pushes locale, theme and zoom from the store to the decorator. It is used when the
// settings document changes on disk; fonts only change on restart.
func Reapply(store settings.Store, dec *Decorator) {
	prefs := store.Object(PreferencesKey)
	if v, ok := prefs.String("Translation"); ok {
		dec.SetLocale(v)
	}
	if v, ok := prefs.String("Theme"); ok {
		dec.SetTheme(v)
	}
	if z, ok := ParseZoom(prefs["Zoom"]); ok {
		dec.SetZoomRatio(z)
	}
}
