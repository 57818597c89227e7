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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T) (*Catalog, *BasePage, *BasePage) {
	t.Helper()
	c := New()
	general := NewBasePage("core.General", "General", "Language and startup")
	advanced := NewBasePage("core.Advanced", "Advanced", "Expert settings")
	network := NewBasePage("core.Advanced.Network", "Network", "Proxy configuration")
	require.NoError(t, advanced.AddPage(network))
	require.NoError(t, advanced.AddPage(NewBasePage("core.Advanced.Cache", "Cache", "Disk cache")))
	require.NoError(t, c.AddPage(general))
	require.NoError(t, c.AddPage(advanced))
	return c, advanced, network
}

func TestCatalogLookup(t *testing.T) {
	c, _, network := newTree(t)

	assert.Len(t, c.Pages(), 2)
	assert.Len(t, c.AllPages(), 4)

	got := c.PagesByID("core.Advanced.Network")
	require.Len(t, got, 1)
	assert.Same(t, network, got[0].(*BasePage))

	assert.Empty(t, c.PagesByID(""))
	assert.Empty(t, c.PagesByID("nope"))

	_, ok := c.Page("core.General")
	assert.True(t, ok)
}

func TestCatalogRejectsDuplicateIDs(t *testing.T) {
	c, advanced, _ := newTree(t)

	err := c.AddPage(NewBasePage("core.General", "Dup", ""))
	assert.ErrorIs(t, err, ErrDuplicateID)

	err = advanced.AddPage(NewBasePage("core.General", "Nested dup", ""))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, advanced.Pages(), 2)

	loose := NewBasePage("loose", "Loose", "")
	require.NoError(t, loose.AddPage(NewBasePage("a", "A", "")))
	assert.ErrorIs(t, loose.AddPage(NewBasePage("a", "A again", "")), ErrDuplicateID)
}

func TestEventsBubbleFromAnyDepth(t *testing.T) {
	c, _, network := newTree(t)
	var got []Event
	cancel := c.Watch(func(ev Event) { got = append(got, ev) })

	network.SetTitle("Networking")
	network.SetTitle("Networking")
	network.SetDescription("Proxy and timeouts")

	require.Len(t, got, 2)
	assert.Equal(t, Event{Kind: TitleChanged, PageID: "core.Advanced.Network", Text: "Networking"}, got[0])
	assert.Equal(t, DescriptionChanged, got[1].Kind)

	cancel()
	network.SetTitle("Net")
	assert.Len(t, got, 2)
}

func TestRemovePageDetachesSubtree(t *testing.T) {
	c, _, network := newTree(t)
	var kinds []EventKind
	c.Watch(func(ev Event) { kinds = append(kinds, ev.Kind) })

	assert.True(t, c.RemovePage("core.Advanced.Network"))
	assert.False(t, c.RemovePage("core.Advanced.Network"))
	assert.Equal(t, []EventKind{StructureChanged}, kinds)
	assert.Len(t, c.AllPages(), 3)

	network.SetTitle("Orphan")
	assert.Equal(t, []EventKind{StructureChanged}, kinds)

	assert.True(t, c.RemovePage("core.General"))
	assert.Len(t, c.Pages(), 1)
}

func TestMatches(t *testing.T) {
	_, advanced, network := newTree(t)
	network.SetKeywords("http", "socks")

	assert.True(t, advanced.Matches(""))
	assert.True(t, advanced.Matches("socks"), "group must match through a descendant keyword")
	assert.True(t, network.Matches("NETW"))
	assert.True(t, network.Matches("proxy conf"))
	assert.False(t, network.Matches("cache"))
	assert.True(t, advanced.Matches("cache"))
}

func TestContentLifecycle(t *testing.T) {
	p := NewBasePage("p", "Page", "")
	assert.False(t, p.HasContent())
	assert.Nil(t, p.Content())

	built := 0
	p.SetContent(func() Surface {
		built++
		return &built
	})
	assert.True(t, p.HasContent())
	first := p.Content()
	assert.Same(t, first, p.Content())
	assert.Equal(t, 1, built)

	p.Finish()
	p.Content()
	assert.Equal(t, 2, built)
}

func TestSortKeywordDefaultsToTitle(t *testing.T) {
	p := NewBasePage("p", "Zebra", "")
	assert.Equal(t, "Zebra", p.SortKeyword())
	p.SetSortKeyword("000")
	assert.Equal(t, "000", p.SortKeyword())
}

// proxyPage is a page defined outside the BasePage defaults, the way concrete pages are.
type proxyPage struct {
	*BasePage
	accepted bool
}

func (p *proxyPage) Accept() error {
	p.accepted = true
	return nil
}

func (p *proxyPage) Matches(text string) bool { return text == "socks" || p.BasePage.Matches(text) }
func (p *proxyPage) SortKeyword() string      { return "zz-proxy" }

func TestEmbeddingPageParticipatesInCatalog(t *testing.T) {
	c, advanced, _ := newTree(t)
	p := &proxyPage{BasePage: NewBasePage("core.Advanced.Proxy", "Proxy", "")}
	var events []Event
	c.Watch(func(ev Event) { events = append(events, ev) })

	require.NoError(t, advanced.AddPage(p))
	got, ok := c.Page("core.Advanced.Proxy")
	require.True(t, ok)
	assert.Same(t, p, got)
	assert.True(t, got.Matches("socks"))
	assert.True(t, advanced.Matches("socks"))
	assert.Equal(t, "zz-proxy", got.SortKeyword())
	require.NoError(t, got.Accept())
	assert.True(t, p.accepted)

	p.SetTitle("SOCKS proxy")
	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: TitleChanged, PageID: "core.Advanced.Proxy", Text: "SOCKS proxy"}, events[1])

	assert.ErrorIs(t, c.AddPage(&proxyPage{BasePage: NewBasePage("core.Advanced.Proxy", "Dup", "")}), ErrDuplicateID)
	assert.True(t, c.RemovePage("core.Advanced.Proxy"))
	_, ok = c.Page("core.Advanced.Proxy")
	assert.False(t, ok)
}
