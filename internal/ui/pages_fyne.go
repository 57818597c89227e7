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
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	fynedialog "fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"idecore/internal/app"
	"idecore/internal/appearance"
	"idecore/internal/catalog"
	"idecore/internal/pages"
)

const previewText = "The quick brown fox jumps over the lazy dog"

// installContent gives the built-in pages their forms. Forms are built when a page is first
// shown and dropped by Finish.
func installContent(s *app.Session, w fyne.Window) {
	tr := s.Translator
	set := s.Pages
	set.General.SetContent(func() catalog.Surface { return generalForm(set.General, tr.Languages(), tr) })
	set.Appearance.SetContent(func() catalog.Surface { return appearanceForm(set.Appearance, s.Fonts, tr) })
	set.Network.SetContent(func() catalog.Surface { return networkForm(set.Network, tr) })
	set.Cache.SetContent(func() catalog.Surface { return cacheForm(set.Cache, tr, w) })
}

func generalForm(p *pages.General, languages []string, tr pages.Translator) fyne.CanvasObject {
	v := p.Values()
	lang := widget.NewSelect(languages, nil)
	lang.SetSelected(v.Language)
	lang.OnChanged = func(s string) {
		cur := p.Values()
		cur.Language = s
		p.SetValues(cur)
	}
	splash := widget.NewCheck("", func(b bool) {
		cur := p.Values()
		cur.ShowSplash = b
		p.SetValues(cur)
	})
	splash.SetChecked(v.ShowSplash)
	return widget.NewForm(
		widget.NewFormItem(tr.T("LabelLanguage"), lang),
		widget.NewFormItem(tr.T("LabelShowSplash"), splash),
	)
}

func appearanceForm(p *pages.Appearance, fonts *appearance.FontLibrary, tr pages.Translator) fyne.CanvasObject {
	v := p.Values()
	update := func(edit func(*pages.AppearanceValues)) {
		cur := p.Values()
		edit(&cur)
		p.SetValues(cur)
	}

	themeSel := widget.NewSelect(pages.Themes(), nil)
	themeSel.SetSelected(v.Theme)
	themeSel.OnChanged = func(s string) { update(func(a *pages.AppearanceValues) { a.Theme = s }) }

	zoomLabel := widget.NewLabel(fmt.Sprintf("%d%%", v.ZoomPercent))
	zoom := widget.NewSlider(pages.MinZoomPercent, pages.MaxZoomPercent)
	zoom.Step = 10
	zoom.SetValue(float64(v.ZoomPercent))
	zoom.OnChanged = func(f float64) {
		zoomLabel.SetText(fmt.Sprintf("%d%%", int(f)))
		update(func(a *pages.AppearanceValues) { a.ZoomPercent = int(f) })
	}

	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillOriginal
	refreshPreview := func() {
		fg := fyne.CurrentApp().Settings().Theme().Color(theme.ColorNameForeground, fyne.CurrentApp().Settings().ThemeVariant())
		img, err := fonts.Preview(p.Values().Font, previewText, fg)
		if err != nil {
			return
		}
		preview.Image = img
		preview.Refresh()
	}

	family := widget.NewSelect(fonts.Families(), nil)
	family.SetSelected(v.Font.Family)
	family.OnChanged = func(s string) {
		update(func(a *pages.AppearanceValues) { a.Font.Family = s })
		refreshPreview()
	}
	size := widget.NewEntry()
	size.SetText(strconv.Itoa(v.Font.PixelSize))
	size.Validator = func(s string) error {
		if n, err := strconv.Atoi(s); err != nil || n <= 0 {
			return fmt.Errorf("%q is not a pixel size", s)
		}
		return nil
	}
	size.OnChanged = func(s string) {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			update(func(a *pages.AppearanceValues) { a.Font = a.Font.WithPixelSize(n) })
			refreshPreview()
		}
	}

	useSystem := widget.NewCheck("", func(b bool) {
		update(func(a *pages.AppearanceValues) { a.UseSystemFont = b })
		if b {
			family.Disable()
			size.Disable()
		} else {
			family.Enable()
			size.Enable()
		}
	})
	useSystem.SetChecked(v.UseSystemFont)
	refreshPreview()

	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(tr.T("LabelTheme"), themeSel),
			widget.NewFormItem(tr.T("LabelZoom"), container.NewBorder(nil, nil, nil, zoomLabel, zoom)),
			widget.NewFormItem(tr.T("LabelUseSystemFont"), useSystem),
			widget.NewFormItem(tr.T("LabelFontFamily"), family),
			widget.NewFormItem(tr.T("LabelFontSize"), size),
		),
		preview,
	)
}

func networkForm(p *pages.Network, tr pages.Translator) fyne.CanvasObject {
	v := p.Values()
	update := func(edit func(*pages.NetworkValues)) {
		cur := p.Values()
		edit(&cur)
		p.SetValues(cur)
	}
	host := widget.NewEntry()
	host.SetText(v.ProxyHost)
	host.OnChanged = func(s string) { update(func(n *pages.NetworkValues) { n.ProxyHost = s }) }

	port := widget.NewEntry()
	if v.ProxyPort > 0 {
		port.SetText(strconv.Itoa(v.ProxyPort))
	}
	port.OnChanged = func(s string) {
		n, err := strconv.Atoi(s)
		if s == "" {
			n, err = 0, nil
		}
		if err != nil {
			n = -1 // rejected by Accept
		}
		update(func(nv *pages.NetworkValues) { nv.ProxyPort = n })
	}

	user := widget.NewEntry()
	user.SetText(v.ProxyUser)
	user.OnChanged = func(s string) { update(func(n *pages.NetworkValues) { n.ProxyUser = s }) }

	password := widget.NewPasswordEntry()
	password.SetText(v.ProxyPassword)
	password.OnChanged = func(s string) { update(func(n *pages.NetworkValues) { n.ProxyPassword = s }) }

	return widget.NewForm(
		widget.NewFormItem(tr.T("LabelProxyHost"), host),
		widget.NewFormItem(tr.T("LabelProxyPort"), port),
		widget.NewFormItem(tr.T("LabelProxyUser"), user),
		widget.NewFormItem(tr.T("LabelProxyPassword"), password),
	)
}

func cacheForm(p *pages.Cache, tr pages.Translator, w fyne.Window) fyne.CanvasObject {
	v := p.Values()
	update := func(edit func(*pages.CacheValues)) {
		cur := p.Values()
		edit(&cur)
		p.SetValues(cur)
	}
	dir := widget.NewEntry()
	dir.SetText(v.Directory)
	dir.OnChanged = func(s string) { update(func(c *pages.CacheValues) { c.Directory = s }) }
	browse := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		fynedialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			dir.SetText(uri.Path())
		}, w)
	})

	limit := widget.NewEntry()
	limit.SetText(strconv.Itoa(v.LimitMB))
	limit.OnChanged = func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			n = -1
		}
		update(func(c *pages.CacheValues) { c.LimitMB = n })
	}

	return widget.NewForm(
		widget.NewFormItem(tr.T("LabelCacheDir"), container.NewBorder(nil, nil, nil, browse, dir)),
		widget.NewFormItem(tr.T("LabelCacheLimit"), limit),
	)
}
