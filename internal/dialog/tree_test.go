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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idecore/internal/catalog"
)

func page(id, title string, children ...catalog.Page) *catalog.BasePage {
	p := catalog.NewBasePage(id, title, "")
	for _, c := range children {
		if err := p.AddPage(c); err != nil {
			panic(err)
		}
	}
	return p
}

func newCatalog(t *testing.T, pages ...catalog.Page) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for _, p := range pages {
		require.NoError(t, c.AddPage(p))
	}
	return c
}

func titles(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}

func TestBuildTreeHasOneNodePerPage(t *testing.T) {
	c := newCatalog(t,
		page("a", "A", page("a.1", "A1", page("a.1.x", "X")), page("a.2", "A2")),
		page("b", "B"),
	)
	tree := BuildTree(c.Pages(), "")

	all := c.AllPages()
	require.Equal(t, len(all), tree.Len())
	for _, p := range all {
		n, ok := tree.Node(p.ID())
		require.True(t, ok, p.ID())
		assert.Same(t, p, n.Page())
		assert.Equal(t, p.ID(), n.PageID)
	}
	var walked []string
	tree.Walk(func(n *Node, _ int) { walked = append(walked, n.PageID) })
	assert.ElementsMatch(t, []string{"a", "a.1", "a.1.x", "a.2", "b"}, walked)

	x, _ := tree.Node("a.1.x")
	assert.Equal(t, "a.1", x.Parent().PageID)
	assert.Equal(t, "A > A1 > X", x.Breadcrumb())
	a, _ := tree.Node("a")
	assert.True(t, a.IsAncestorOf(x))
	assert.False(t, x.IsAncestorOf(a))
}

func TestBuildTreeCollatesSiblings(t *testing.T) {
	c := newCatalog(t, page("z", "Z"), page("a", "a"), page("b", "B"))
	tree := BuildTree(c.Pages(), "")
	assert.Equal(t, []string{"a", "B", "Z"}, titles(tree.Roots()))

	group := page("g", "Group", page("g.z", "zeta"), page("g.e", "Éclair"), page("g.a", "alpha"))
	tree = BuildTree([]catalog.Page{group}, "")
	assert.Equal(t, []string{"alpha", "Éclair", "zeta"}, titles(tree.Roots()[0].Children()))
}

func TestBuildTreeSortIsStable(t *testing.T) {
	first, second, third := page("1", "First"), page("2", "Second"), page("3", "Third")
	for _, p := range []*catalog.BasePage{first, second, third} {
		p.SetSortKeyword("same")
	}
	tree := BuildTree([]catalog.Page{first, second, third}, "")
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(tree.Roots()))
}

func filterCatalog(t *testing.T) *catalog.Catalog {
	return newCatalog(t,
		page("root", "Root", page("alpha", "Alpha", page("box", "Box"), page("beta", "Beta"))),
		page("other", "Other", page("misc", "Misc")),
	)
}

func hidden(tree *Tree) map[string]bool {
	out := map[string]bool{}
	tree.Walk(func(n *Node, _ int) { out[n.PageID] = n.Hidden })
	return out
}

func TestApplyFilterShowsPathToMatches(t *testing.T) {
	tree := BuildTree(filterCatalog(t).Pages(), "")
	tree.ApplyFilter("x")
	assert.Equal(t, map[string]bool{
		"root": false, "alpha": false, "box": false,
		"beta": true, "other": true, "misc": true,
	}, hidden(tree))
	assert.Equal(t, 3, tree.VisibleCount())
}

func TestApplyFilterEmptyRestoresEverything(t *testing.T) {
	tree := BuildTree(filterCatalog(t).Pages(), "")
	tree.ApplyFilter("x")
	tree.ApplyFilter("zzz")
	assert.Equal(t, 0, tree.VisibleCount())
	tree.ApplyFilter("")
	assert.Equal(t, tree.Len(), tree.VisibleCount())
}

func TestApplyFilterSharedAncestor(t *testing.T) {
	tree := BuildTree(filterCatalog(t).Pages(), "")
	tree.ApplyFilter("b")
	h := hidden(tree)
	assert.False(t, h["box"])
	assert.False(t, h["beta"])
	assert.False(t, h["alpha"])
	assert.False(t, h["root"])
	assert.True(t, h["misc"])
}

func TestBuildTreeAppliesActiveFilter(t *testing.T) {
	tree := BuildTree(filterCatalog(t).Pages(), "x")
	assert.True(t, hidden(tree)["other"])
	assert.Equal(t, "Root [root]\n  Alpha [alpha]\n    Box [box]\n", tree.String())
}

func TestMnemonicEscaping(t *testing.T) {
	assert.Equal(t, "A&&B", EscapeMnemonic("A&B"))
	assert.Equal(t, "A&B", UnescapeMnemonic("A&&B"))
	assert.Equal(t, "File", UnescapeMnemonic("&File"))
	assert.Equal(t, "plain", UnescapeMnemonic("plain"))
}
