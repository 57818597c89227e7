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
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"idecore/internal/appearance"
	"idecore/internal/catalog"
	"idecore/internal/dialog"
	"idecore/internal/pages"
	"idecore/internal/settings"
)

func newTestDialog(t *testing.T) (*dialog.Dialog, *settingsView) {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewTempWindow(t, nil)

	group := catalog.NewBasePage("core.Tools", "Tools & Co", "")
	if err := group.AddPage(catalog.NewBasePage("core.Tools.Editor", "Editor", "")); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	cat := catalog.New()
	if err := cat.AddPage(group); err != nil {
		t.Fatalf("AddPage: %v", err)
	}

	view := newSettingsView(w)
	dlg := dialog.New(view, dialog.Options{Catalog: cat, Store: settings.NewMemoryStore()})
	view.dlg = dlg
	w.SetContent(view.split)
	dlg.Open()
	return dlg, view
}

func TestCatalogListOpensChildPage(t *testing.T) {
	dlg, view := newTestDialog(t)
	if got := dlg.Current().ID(); got != "core.Tools" {
		t.Fatalf("Current = %q, want core.Tools", got)
	}
	if len(view.content.Objects) != 1 {
		t.Fatalf("content objects = %d, want 1", len(view.content.Objects))
	}
	list, ok := view.content.Objects[0].(*catalogList)
	if !ok {
		t.Fatalf("content is %T, want *catalogList", view.content.Objects[0])
	}
	btn := list.buttons["core.Tools.Editor"]
	if btn == nil || btn.Text != "Editor" {
		t.Fatalf("catalog row missing or mislabeled: %+v", btn)
	}
	test.Tap(btn)
	if got := dlg.Current().ID(); got != "core.Tools.Editor" {
		t.Fatalf("Current after tap = %q, want core.Tools.Editor", got)
	}
	if got := view.title.Text; got != "Tools & Co > Editor" {
		t.Fatalf("header = %q", got)
	}
}

func TestSearchEntryFiltersTree(t *testing.T) {
	dlg, view := newTestDialog(t)
	test.Type(view.search, "edit")
	if dlg.SearchText() != "edit" {
		t.Fatalf("SearchText = %q, want edit", dlg.SearchText())
	}
	if got := view.childIDs("core.Tools"); len(got) != 1 || got[0] != "core.Tools.Editor" {
		t.Fatalf("visible children = %v", got)
	}
	view.search.SetText("nothing matches this")
	if got := view.childIDs(""); len(got) != 0 {
		t.Fatalf("visible roots = %v, want none", got)
	}
}

func TestThemeFollowsDecorator(t *testing.T) {
	test.NewTempApp(t)
	dec := appearance.NewDecorator()
	th := newAppTheme(dec)
	base := theme.DefaultTheme()

	dec.SetZoomRatio(2)
	if got, want := th.Size(theme.SizeNamePadding), base.Size(theme.SizeNamePadding)*2; got != want {
		t.Fatalf("padding = %v, want %v", got, want)
	}
	th.SetDefaultFont(appearance.Font{Family: appearance.MonoFamily, PixelSize: 20})
	if got := th.Size(theme.SizeNameText); got != 20 {
		t.Fatalf("text size = %v, want 20", got)
	}

	dec.SetTheme(pages.ThemeDark)
	if got, want := th.Color(theme.ColorNameBackground, theme.VariantLight), base.Color(theme.ColorNameBackground, theme.VariantDark); got != want {
		t.Fatalf("background = %v, want dark %v", got, want)
	}
}
