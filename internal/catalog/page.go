/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package catalog holds the tree of setting pages shown by the settings dialog.
//
// Pages are identified by a catalog-wide unique id. Title and description may change at
// runtime (e.g. after a locale switch); such changes are reported as Events through the
// owning Catalog so views can re-synchronize.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Surface is an opaque content handle owned by a toolkit (a fyne.CanvasObject in the GUI build).
type Surface any

// Page is a node of the settings catalog.
//
// The interface is sealed: implementations outside this package embed *BasePage, which
// carries the children and the link to the owning Catalog that change events travel through.
// Embedders override the methods they need (Accept, Finish, Matches, Content and so on).
type Page interface {
	ID() string
	Title() string
	Description() string
	SortKeyword() string
	// Pages returns the direct children in insertion order.
	Pages() []Page
	// AllPages returns every descendant, excluding the page itself.
	AllPages() []Page
	// Matches reports whether the page or any of its descendants matches text.
	Matches(text string) bool
	// HasContent reports whether Content returns a page-owned surface. Pages without content
	// are grouping pages.
	HasContent() bool
	Content() Surface
	Accept() error
	Finish()

	// base returns the embedded BasePage.
	base() *BasePage
}

// ErrDuplicateID is returned when a page id is already present in the catalog.
var ErrDuplicateID = errors.New("duplicate page id")

// BasePage implements Page for grouping pages and provides the shared plumbing for
// pages with content.
type BasePage struct {
	id          string
	title       string
	description string
	sortKeyword string
	keywords    []string
	children    []Page
	owner       *Catalog

	newContent func() Surface
	content    Surface
}

func NewBasePage(id, title, description string) *BasePage {
	return &BasePage{id: id, title: title, description: description}
}

func (p *BasePage) base() *BasePage { return p }

func (p *BasePage) ID() string          { return p.id }
func (p *BasePage) Title() string       { return p.title }
func (p *BasePage) Description() string { return p.description }

// SortKeyword defaults to the title.
func (p *BasePage) SortKeyword() string {
	if p.sortKeyword != "" {
		return p.sortKeyword
	}
	return p.title
}

func (p *BasePage) SetSortKeyword(k string) { p.sortKeyword = k }

// SetKeywords sets extra search terms matched in addition to title and description.
func (p *BasePage) SetKeywords(words ...string) { p.keywords = append([]string(nil), words...) }

func (p *BasePage) SetTitle(title string) {
	if title == p.title {
		return
	}
	p.title = title
	p.emit(Event{Kind: TitleChanged, PageID: p.id, Text: title})
}

func (p *BasePage) SetDescription(description string) {
	if description == p.description {
		return
	}
	p.description = description
	p.emit(Event{Kind: DescriptionChanged, PageID: p.id, Text: description})
}

func (p *BasePage) Pages() []Page { return append([]Page(nil), p.children...) }

func (p *BasePage) AllPages() []Page {
	var out []Page
	for _, c := range p.children {
		out = append(out, c)
		out = append(out, c.AllPages()...)
	}
	return out
}

// AddPage appends a child page. Ids must stay unique within the owning catalog.
func (p *BasePage) AddPage(child Page) error {
	if err := checkUnique(child, p.owner, p); err != nil {
		return err
	}
	if p.owner != nil {
		p.owner.attach(child)
	}
	p.children = append(p.children, child)
	p.emit(Event{Kind: StructureChanged, PageID: child.ID()})
	return nil
}

// RemovePage removes a direct child by id.
func (p *BasePage) RemovePage(id string) bool {
	for i, c := range p.children {
		if c.ID() == id {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			detach(c)
			p.emit(Event{Kind: StructureChanged, PageID: id})
			return true
		}
	}
	return false
}

// Matches does a case-insensitive fuzzy match on title and keywords and a substring match on
// the description, then recurses into children.
func (p *BasePage) Matches(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	if fuzzy.MatchNormalizedFold(text, p.title) {
		return true
	}
	if strings.Contains(strings.ToLower(p.description), strings.ToLower(text)) {
		return true
	}
	for _, k := range p.keywords {
		if fuzzy.MatchNormalizedFold(text, k) {
			return true
		}
	}
	for _, c := range p.children {
		if c.Matches(text) {
			return true
		}
	}
	return false
}

// SetContent installs the factory for the page's content surface. The surface is built on
// first use and kept until Finish.
func (p *BasePage) SetContent(factory func() Surface) {
	p.newContent = factory
	p.content = nil
}

func (p *BasePage) HasContent() bool { return p.newContent != nil }

func (p *BasePage) Content() Surface {
	if p.newContent == nil {
		return nil
	}
	if p.content == nil {
		p.content = p.newContent()
	}
	return p.content
}

func (p *BasePage) Accept() error { return nil }

// Finish releases the cached content surface.
func (p *BasePage) Finish() { p.content = nil }

func (p *BasePage) emit(ev Event) {
	if p.owner != nil {
		p.owner.emit(ev)
	}
}

func checkUnique(p Page, c *Catalog, within Page) error {
	seen := map[string]bool{}
	if c != nil {
		for _, q := range c.AllPages() {
			seen[q.ID()] = true
		}
	} else if within != nil {
		seen[within.ID()] = true
		for _, q := range within.AllPages() {
			seen[q.ID()] = true
		}
	}
	for _, q := range append([]Page{p}, p.AllPages()...) {
		if seen[q.ID()] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, q.ID())
		}
		seen[q.ID()] = true
	}
	return nil
}

func detach(p Page) {
	p.base().owner = nil
	for _, c := range p.Pages() {
		detach(c)
	}
}
