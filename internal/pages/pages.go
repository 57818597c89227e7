/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package pages provides the built-in setting pages. Each page keeps an editable copy of its
// values, loaded from the settings store; Accept validates and writes them back and Finish
// discards unsaved edits. The UI attaches content with SetContent.
package pages

import (
	"errors"
	"fmt"

	"idecore/internal/appearance"
	"idecore/internal/catalog"
	"idecore/internal/config"
	"idecore/internal/settings"
)

const (
	GeneralID    = "core.General"
	AppearanceID = "core.Appearance"
	AdvancedID   = "core.Advanced"
	NetworkID    = "core.Advanced.Network"
	CacheID      = "core.Advanced.Cache"
)

// searchWords are matched by the settings search in every locale.
var searchWords = map[string][]string{
	GeneralID:    {"language", "splash"},
	AppearanceID: {"theme", "dark", "light", "zoom", "font", "size"},
	NetworkID:    {"proxy", "host", "port"},
	CacheID:      {"cache", "disk"},
}

// ErrInvalidValue is wrapped by Accept when an edited value is rejected.
var ErrInvalidValue = errors.New("invalid setting value")

// Translator looks up a UI string by message id.
type Translator interface {
	T(id string) string
}

// Deps are the collaborators shared by the built-in pages.
type Deps struct {
	Store     settings.Store
	Decorator *appearance.Decorator
	App       *appearance.AppContext
	Secrets   config.SecretStore // in-memory when nil
}

// Set holds the installed built-in pages.
type Set struct {
	General    *General
	Appearance *Appearance
	Advanced   *catalog.BasePage
	Network    *Network
	Cache      *Cache
}

// Install creates the built-in pages and adds them to cat.
func Install(cat *catalog.Catalog, deps Deps) (*Set, error) {
	s := &Set{
		General:    NewGeneral(deps),
		Appearance: NewAppearance(deps),
		Advanced:   catalog.NewBasePage(AdvancedID, "Advanced", "Network and cache settings"),
		Network:    NewNetwork(deps),
		Cache:      NewCache(deps),
	}
	if err := s.Advanced.AddPage(s.Network); err != nil {
		return nil, fmt.Errorf("install pages: %w", err)
	}
	if err := s.Advanced.AddPage(s.Cache); err != nil {
		return nil, fmt.Errorf("install pages: %w", err)
	}
	for _, p := range []catalog.Page{s.General, s.Appearance, s.Advanced} {
		if err := cat.AddPage(p); err != nil {
			return nil, fmt.Errorf("install pages: %w", err)
		}
	}
	return s, nil
}

// ReloadStrings retitles the pages and refreshes their search keywords.
func (s *Set) ReloadStrings(tr Translator) {
	retitle := func(p *catalog.BasePage, prefix string, labels ...string) {
		p.SetTitle(tr.T(prefix + "Title"))
		p.SetDescription(tr.T(prefix + "Description"))
		words := append([]string(nil), searchWords[p.ID()]...)
		for _, l := range labels {
			words = append(words, tr.T(l))
		}
		p.SetKeywords(words...)
	}
	retitle(s.General.BasePage, "PageGeneral", "LabelLanguage", "LabelShowSplash")
	retitle(s.Appearance.BasePage, "PageAppearance", "LabelTheme", "LabelZoom", "LabelFontFamily", "LabelFontSize", "LabelUseSystemFont")
	retitle(s.Advanced, "PageAdvanced")
	retitle(s.Network.BasePage, "PageNetwork", "LabelProxyHost", "LabelProxyPort", "LabelProxyUser", "LabelProxyPassword")
	retitle(s.Cache.BasePage, "PageCache", "LabelCacheDir", "LabelCacheLimit")
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
