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
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"idecore/internal/catalog"
	"idecore/internal/dialog"
	"idecore/internal/settings"
)

// settingsView renders a dialog.Dialog: search entry and page tree on the left, header and
// page content on the right.
type settingsView struct {
	window fyne.Window
	dlg    *dialog.Dialog
	tree   *dialog.Tree

	search  *widget.Entry
	pages   *widget.Tree
	title   *widget.Label
	desc    *widget.Label
	content *fyne.Container
	split   *container.Split
}

// catalogList is the synthesized view of a grouping page: one button per child.
type catalogList struct {
	*fyne.Container
	buttons map[string]*widget.Button
}

func newSettingsView(w fyne.Window) *settingsView {
	v := &settingsView{window: w}
	v.search = widget.NewEntry()
	v.search.OnChanged = func(s string) {
		if v.dlg != nil {
			v.dlg.SetSearchText(s)
		}
	}
	v.pages = widget.NewTree(v.childIDs, v.isBranch,
		func(bool) fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TreeNodeID, _ bool, o fyne.CanvasObject) {
			if n, ok := v.node(id); ok {
				o.(*widget.Label).SetText(n.Title)
			}
		})
	v.pages.OnSelected = func(id widget.TreeNodeID) {
		if n, ok := v.node(id); ok && v.dlg != nil {
			v.dlg.SelectNode(n)
		}
	}
	v.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.desc = widget.NewLabel("")
	v.desc.Wrapping = fyne.TextWrapWord
	v.content = container.NewStack()

	left := container.NewBorder(v.search, nil, nil, nil, v.pages)
	right := container.NewBorder(container.NewVBox(v.title, v.desc, widget.NewSeparator()), nil, nil, nil, container.NewVScroll(v.content))
	v.split = container.NewHSplit(left, right)
	return v
}

func (v *settingsView) node(id widget.TreeNodeID) (*dialog.Node, bool) {
	if v.tree == nil {
		return nil, false
	}
	return v.tree.Node(id)
}

func (v *settingsView) visible(nodes []*dialog.Node) []widget.TreeNodeID {
	var ids []widget.TreeNodeID
	for _, n := range nodes {
		if !n.Hidden {
			ids = append(ids, n.PageID)
		}
	}
	return ids
}

func (v *settingsView) childIDs(id widget.TreeNodeID) []widget.TreeNodeID {
	if v.tree == nil {
		return nil
	}
	if id == "" {
		return v.visible(v.tree.Roots())
	}
	if n, ok := v.tree.Node(id); ok {
		return v.visible(n.Children())
	}
	return nil
}

func (v *settingsView) isBranch(id widget.TreeNodeID) bool {
	return id == "" || len(v.childIDs(id)) > 0
}

func (v *settingsView) SetWindowTitle(title string)   { v.window.SetTitle(title) }
func (v *settingsView) SetSearchPlaceholder(s string) { v.search.SetPlaceHolder(s) }

func (v *settingsView) SetHeader(title, description string) {
	v.title.SetText(title)
	v.desc.SetText(description)
}

func (v *settingsView) SetTree(t *dialog.Tree) {
	v.tree = t
	if v.search.Text != "" {
		v.pages.OpenAllBranches()
	}
	v.pages.Refresh()
}

func (v *settingsView) RefreshNode(n *dialog.Node) { v.pages.RefreshItem(n.PageID) }

func (v *settingsView) Select(n *dialog.Node) {
	if n == nil {
		v.pages.UnselectAll()
		return
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		v.pages.OpenBranch(p.PageID)
	}
	v.pages.Select(n.PageID)
	v.pages.ScrollTo(n.PageID)
}

func (v *settingsView) Attach(s catalog.Surface) {
	v.content.Objects = []fyne.CanvasObject{s.(fyne.CanvasObject)}
	v.content.Refresh()
}

func (v *settingsView) Detach(catalog.Surface) {
	v.content.Objects = nil
	v.content.Refresh()
}

func (v *settingsView) Destroy(s catalog.Surface) {
	v.Detach(s)
	if cl, ok := s.(*catalogList); ok {
		cl.RemoveAll()
		cl.buttons = nil
	}
}

func (v *settingsView) NewCatalogView(rows []dialog.CatalogRow, open func(string)) catalog.Surface {
	cl := &catalogList{Container: container.NewVBox(), buttons: map[string]*widget.Button{}}
	for _, r := range rows {
		id := r.PageID
		b := widget.NewButton(dialog.UnescapeMnemonic(r.Text), func() { open(id) })
		b.Alignment = widget.ButtonAlignLeading
		cl.buttons[id] = b
		cl.Add(b)
	}
	return cl
}

func (v *settingsView) SetRowText(view catalog.Surface, pageID, text string) {
	if cl, ok := view.(*catalogList); ok {
		if b := cl.buttons[pageID]; b != nil {
			b.SetText(dialog.UnescapeMnemonic(text))
		}
	}
}

func (v *settingsView) Size() settings.Size {
	s := v.window.Canvas().Size()
	return settings.Size{Width: s.Width, Height: s.Height}
}

func (v *settingsView) Resize(s settings.Size) { v.window.Resize(fyne.NewSize(s.Width, s.Height)) }

func (v *settingsView) SplitterSizes() []float32 {
	w := v.Size().Width
	left := float32(v.split.Offset) * w
	return []float32{left, w - left}
}

func (v *settingsView) SetSplitterSizes(sizes []float32) {
	if len(sizes) < 2 || sizes[0]+sizes[1] <= 0 {
		return
	}
	v.split.SetOffset(float64(sizes[0] / (sizes[0] + sizes[1])))
}
