/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"idecore/internal/appearance"
	"idecore/internal/catalog"
	applog "idecore/internal/log"
	"idecore/internal/settings"
)

const (
	// TypeName keys the dialog's window geometry.
	TypeName = "SettingsDialog"
	// StoreKey is the settings entry holding the dialog state.
	StoreKey = "Core/SettingCatalog"
	// LastPageField holds the id of the page shown when the dialog was closed.
	LastPageField = "LastSettingPageId"

	treeWidth = 250
)

// DefaultSize is the window size used when none is stored.
var DefaultSize = settings.Size{Width: 1280, Height: 720}

// Translator looks up a UI string by message id.
type Translator interface {
	T(id string) string
}

type englishStrings struct{}

func (englishStrings) T(id string) string {
	switch id {
	case "SettingsWindowTitle":
		return "Settings"
	case "SettingsSearchPlaceholder":
		return "Search for settings"
	}
	return id
}

// Options wires a Dialog to its collaborators. Catalog and Store are required.
type Options struct {
	Catalog    *catalog.Catalog
	Store      settings.Store
	Windows    *settings.Windows     // defaults to a Windows over Store
	Translator Translator            // defaults to English strings
	Decorator  *appearance.Decorator // optional; strings reload on locale change
}

// Dialog is the toolkit independent state of the settings dialog.
type Dialog struct {
	cat     *catalog.Catalog
	store   settings.Store
	windows *settings.Windows
	tr      Translator
	dec     *appearance.Decorator
	view    View
	log     *slog.Logger

	tree    *Tree
	current *Node
	search  string
	lastID  string

	// mounted is the surface in the content area; owned marks a synthesized catalog view.
	mounted catalog.Surface
	owned   bool
	rowIDs  map[string]bool

	unwatch []func()
}

func New(view View, opts Options) *Dialog {
	d := &Dialog{
		cat:     opts.Catalog,
		store:   opts.Store,
		windows: opts.Windows,
		tr:      opts.Translator,
		dec:     opts.Decorator,
		view:    view,
		log:     applog.WithComponent("dialog"),
	}
	if d.windows == nil {
		d.windows = settings.NewWindows(d.store)
	}
	if d.tr == nil {
		d.tr = englishStrings{}
	}
	return d
}

// Open builds the tree and restores the persisted state: window geometry, splitter sizes and
// the last shown page. The first page is shown when the stored one no longer exists.
func (d *Dialog) Open() {
	d.ReloadStrings()

	size := d.windows.LoadGeometry(TypeName, DefaultSize)
	d.view.Resize(size)
	d.view.SetSplitterSizes(d.windows.LoadSplitterSizes(TypeName, []float32{treeWidth, size.Width - treeWidth}))

	d.lastID, _ = d.store.Object(StoreKey).String(LastPageField)
	d.tree = BuildTree(d.cat.Pages(), d.search)
	d.view.SetTree(d.tree)

	d.unwatch = append(d.unwatch, d.cat.Watch(d.Sync))
	if d.dec != nil {
		d.unwatch = append(d.unwatch, d.dec.Subscribe(func(c appearance.Change) {
			if c == appearance.LocaleChanged {
				d.ReloadStrings()
			}
		}))
	}

	d.SelectPage(d.lastID)
	if d.current == nil {
		d.SelectPage("")
	}
	d.log.Debug("settings dialog opened", "pages", d.tree.Len(), "page", d.lastID)
}

// Close finishes every page, persists the dialog state and saves the store.
func (d *Dialog) Close(ctx context.Context) error {
	if d.tree == nil {
		return nil
	}
	if d.current != nil {
		d.lastID = d.current.PageID
	}
	d.unmount()
	d.Finish()
	for _, cancel := range d.unwatch {
		cancel()
	}
	d.unwatch = nil

	state := d.store.Object(StoreKey)
	state[LastPageField] = d.lastID
	d.store.Insert(StoreKey, state)
	d.windows.SaveGeometry(TypeName, d.view.Size())
	d.windows.SaveSplitterSizes(TypeName, d.view.SplitterSizes())

	d.tree = nil
	d.current = nil
	if err := d.store.Save(ctx); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ReloadStrings retranslates the dialog's own strings.
func (d *Dialog) ReloadStrings() {
	d.view.SetWindowTitle(d.tr.T("SettingsWindowTitle"))
	d.view.SetSearchPlaceholder(d.tr.T("SettingsSearchPlaceholder"))
}

func (d *Dialog) Tree() *Tree { return d.tree }

// Current returns the page being shown, or nil.
func (d *Dialog) Current() catalog.Page {
	if d.current == nil {
		return nil
	}
	return d.current.page
}

func (d *Dialog) CurrentNode() *Node { return d.current }
func (d *Dialog) SearchText() string { return d.search }

// SetSearchText filters the tree.
func (d *Dialog) SetSearchText(text string) {
	d.search = text
	if d.tree == nil {
		return
	}
	d.tree.ApplyFilter(text)
	d.view.SetTree(d.tree)
}

// SelectNode shows n, or nothing when n is nil. The previous content is unmounted first.
func (d *Dialog) SelectNode(n *Node) {
	if n != nil && n == d.current {
		return
	}
	d.unmount()
	d.current = n
	if n == nil {
		d.view.SetHeader("", "")
		return
	}
	d.view.SetHeader(n.Breadcrumb(), n.page.Description())

	if n.page.HasContent() {
		if s := n.page.Content(); s != nil {
			d.mount(s, false)
			return
		}
	}
	// Rows follow the sorted tree order of the children, hidden or not.
	rows := make([]CatalogRow, 0, len(n.children))
	d.rowIDs = make(map[string]bool, len(n.children))
	for _, c := range n.children {
		rows = append(rows, CatalogRow{PageID: c.PageID, Text: EscapeMnemonic(c.page.Title())})
		d.rowIDs[c.PageID] = true
	}
	d.mount(d.view.NewCatalogView(rows, d.SelectPage), true)
}

// SelectPage shows the page with id. An unknown id leaves the selection alone; an empty id
// that matches nothing selects the first top-level page, or clears the selection when the
// tree is empty.
func (d *Dialog) SelectPage(id string) {
	if d.tree == nil {
		return
	}
	for _, p := range d.cat.PagesByID(id) {
		if n, ok := d.tree.Node(p.ID()); ok {
			d.selectAndMirror(n)
			return
		}
	}
	if id != "" {
		return
	}
	if len(d.tree.roots) > 0 {
		d.selectAndMirror(d.tree.roots[0])
	} else {
		d.selectAndMirror(nil)
	}
}

func (d *Dialog) selectAndMirror(n *Node) {
	d.SelectNode(n)
	d.view.Select(n)
}

// Apply accepts every page in the tree. All pages are visited; their errors are joined.
func (d *Dialog) Apply() error {
	if d.tree == nil {
		return nil
	}
	var errs []error
	d.tree.Walk(func(n *Node, _ int) {
		if err := n.page.Accept(); err != nil {
			errs = append(errs, fmt.Errorf("page %s: %w", n.PageID, err))
		}
	})
	if err := errors.Join(errs...); err != nil {
		d.log.Warn("apply settings", "err", err)
		return err
	}
	return nil
}

// Finish tells every page in the tree that the dialog is done with it.
func (d *Dialog) Finish() {
	if d.tree == nil {
		return
	}
	d.tree.Walk(func(n *Node, _ int) { n.page.Finish() })
}

// Sync brings the tree up to date with a catalog change.
func (d *Dialog) Sync(ev catalog.Event) {
	if d.tree == nil {
		return
	}
	switch ev.Kind {
	case catalog.TitleChanged, catalog.DescriptionChanged:
		n, ok := d.tree.Node(ev.PageID)
		if !ok {
			return
		}
		if ev.Kind == catalog.TitleChanged {
			n.Title = ev.Text
			if d.owned && d.rowIDs[ev.PageID] {
				d.view.SetRowText(d.mounted, ev.PageID, EscapeMnemonic(ev.Text))
			}
		} else {
			n.Tooltip = ev.Text
		}
		d.view.RefreshNode(n)
		if d.current != nil && n.IsAncestorOf(d.current) {
			d.view.SetHeader(d.current.Breadcrumb(), d.current.page.Description())
		}
	case catalog.StructureChanged:
		d.rebuild()
	}
}

// rebuild reprojects the catalog, keeping the current page when it survives.
func (d *Dialog) rebuild() {
	currentID := ""
	if d.current != nil {
		currentID = d.current.PageID
	}
	d.tree = BuildTree(d.cat.Pages(), d.search)
	d.view.SetTree(d.tree)

	n, ok := d.tree.Node(currentID)
	if !ok || currentID == "" {
		d.unmount()
		d.current = nil
		d.SelectPage("")
		return
	}
	if d.owned {
		// The group's children may have changed; synthesize its catalog view again.
		d.current = nil
		d.selectAndMirror(n)
		return
	}
	d.current = n
	d.view.SetHeader(n.Breadcrumb(), n.page.Description())
	d.view.Select(n)
}

func (d *Dialog) mount(s catalog.Surface, owned bool) {
	d.mounted, d.owned = s, owned
	d.view.Attach(s)
}

func (d *Dialog) unmount() {
	if d.mounted == nil {
		return
	}
	if d.owned {
		d.view.Destroy(d.mounted)
	} else {
		d.view.Detach(d.mounted)
	}
	d.mounted, d.owned, d.rowIDs = nil, false, nil
}
