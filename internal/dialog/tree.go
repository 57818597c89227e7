/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package dialog implements the settings dialog independently of the windowing toolkit: the
// projection of the page catalog into a sortable, filterable tree, the selection and content
// hosting state machine and the persistence of the dialog's state. A View renders it.
package dialog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"idecore/internal/catalog"
)

// Separator joins ancestor titles in the header breadcrumb.
const Separator = " > "

// Node mirrors one catalog page in the dialog's tree.
type Node struct {
	Title   string
	Tooltip string
	SortKey string
	PageID  string
	Hidden  bool

	page     catalog.Page
	parent   *Node
	children []*Node
}

func (n *Node) Page() catalog.Page { return n.page }
func (n *Node) Parent() *Node      { return n.parent }

func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// Path returns the nodes from the root down to n.
func (n *Node) Path() []*Node {
	var path []*Node
	for c := n; c != nil; c = c.parent {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Breadcrumb joins the titles on the path to n.
func (n *Node) Breadcrumb() string {
	path := n.Path()
	titles := make([]string, len(path))
	for i, p := range path {
		titles[i] = p.Title
	}
	return strings.Join(titles, Separator)
}

// IsAncestorOf reports whether n lies on the path from the root to other, other included.
func (n *Node) IsAncestorOf(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Tree is the projection of a page catalog. It holds exactly one node per page.
type Tree struct {
	roots []*Node
	index map[string]*Node
	coll  *collate.Collator
}

// BuildTree projects pages and their descendants. Siblings are ordered by sort key with an
// English collator, keeping insertion order on ties. A non-empty filter is applied before
// the tree is returned.
func BuildTree(pages []catalog.Page, filter string) *Tree {
	t := &Tree{index: map[string]*Node{}, coll: collate.New(language.English)}
	for _, p := range pages {
		t.roots = append(t.roots, t.build(p, nil))
	}
	t.sortNodes(t.roots)
	if filter != "" {
		t.ApplyFilter(filter)
	}
	return t
}

func (t *Tree) build(p catalog.Page, parent *Node) *Node {
	n := &Node{
		Title:   p.Title(),
		Tooltip: p.Description(),
		SortKey: p.SortKeyword(),
		PageID:  p.ID(),
		page:    p,
		parent:  parent,
	}
	t.index[n.PageID] = n
	for _, c := range p.Pages() {
		n.children = append(n.children, t.build(c, n))
	}
	t.sortNodes(n.children)
	return n
}

func (t *Tree) sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return t.coll.CompareString(nodes[i].SortKey, nodes[j].SortKey) < 0
	})
}

func (t *Tree) Roots() []*Node { return append([]*Node(nil), t.roots...) }

// Node returns the node projecting the page with id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

func (t *Tree) Len() int { return len(t.index) }

// Walk visits every node depth first in display order.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.children, depth+1)
		}
	}
	walk(t.roots, 0)
}

// String renders the visible nodes as an indented outline.
func (t *Tree) String() string {
	var b strings.Builder
	t.Walk(func(n *Node, depth int) {
		if n.Hidden {
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Title)
		b.WriteString(" [")
		b.WriteString(n.PageID)
		b.WriteString("]\n")
	})
	return b.String()
}
