/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

// EventKind classifies catalog change notifications.
type EventKind int

const (
	TitleChanged EventKind = iota + 1
	DescriptionChanged
	// StructureChanged is emitted when a page is added or removed anywhere in the catalog.
	StructureChanged
)

func (k EventKind) String() string {
	switch k {
	case TitleChanged:
		return "title_changed"
	case DescriptionChanged:
		return "description_changed"
	case StructureChanged:
		return "structure_changed"
	default:
		return "unknown"
	}
}

// Event reports a change of the page identified by PageID. Text carries the new title or
// description.
type Event struct {
	Kind   EventKind
	PageID string
	Text   string
}

type watcher struct {
	id int
	fn func(Event)
}

// Catalog is the ordered set of top-level setting pages.
// It is not safe for concurrent use; all access happens on the UI goroutine.
type Catalog struct {
	pages    []Page
	watchers []watcher
	nextID   int
}

func New() *Catalog { return &Catalog{} }

// AddPage appends a top-level page together with its subtree.
func (c *Catalog) AddPage(p Page) error {
	if err := checkUnique(p, c, nil); err != nil {
		return err
	}
	c.attach(p)
	c.pages = append(c.pages, p)
	c.emit(Event{Kind: StructureChanged, PageID: p.ID()})
	return nil
}

// RemovePage removes the page with id from wherever it sits in the tree.
func (c *Catalog) RemovePage(id string) bool {
	for i, p := range c.pages {
		if p.ID() == id {
			c.pages = append(c.pages[:i:i], c.pages[i+1:]...)
			detach(p)
			c.emit(Event{Kind: StructureChanged, PageID: id})
			return true
		}
	}
	for _, p := range c.AllPages() {
		if p.base().RemovePage(id) {
			return true
		}
	}
	return false
}

// Pages returns the top-level pages in insertion order.
func (c *Catalog) Pages() []Page { return append([]Page(nil), c.pages...) }

// AllPages returns every page at every depth.
func (c *Catalog) AllPages() []Page {
	var out []Page
	for _, p := range c.pages {
		out = append(out, p)
		out = append(out, p.AllPages()...)
	}
	return out
}

// PagesByID returns the pages whose id equals id. Ids are unique, so the result holds at most
// one page; an empty id matches nothing.
func (c *Catalog) PagesByID(id string) []Page {
	if id == "" {
		return nil
	}
	var out []Page
	for _, p := range c.AllPages() {
		if p.ID() == id {
			out = append(out, p)
		}
	}
	return out
}

// Page looks up a single page by id.
func (c *Catalog) Page(id string) (Page, bool) {
	if ps := c.PagesByID(id); len(ps) > 0 {
		return ps[0], true
	}
	return nil, false
}

// Watch registers fn for every change event from any depth. The returned function
// unregisters it.
func (c *Catalog) Watch(fn func(Event)) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.watchers = append(c.watchers, watcher{id: id, fn: fn})
	return func() {
		for i, w := range c.watchers {
			if w.id == id {
				c.watchers = append(c.watchers[:i:i], c.watchers[i+1:]...)
				return
			}
		}
	}
}

func (c *Catalog) emit(ev Event) {
	for _, w := range append([]watcher(nil), c.watchers...) {
		w.fn(ev)
	}
}

func (c *Catalog) attach(p Page) {
	p.base().owner = c
	for _, child := range p.Pages() {
		c.attach(child)
	}
}
