/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package pages

import (
	"path/filepath"

	"idecore/internal/catalog"
	"idecore/internal/settings"
)

// CacheKey is the settings entry holding cache settings.
const CacheKey = "Cache"

// DefaultCacheLimitMB is the cache size limit when none is stored.
const DefaultCacheLimitMB = 512

type CacheValues struct {
	Directory string
	LimitMB   int
}

// Cache edits the on-disk cache location and size limit. An empty directory selects the
// platform cache directory.
type Cache struct {
	*catalog.BasePage
	store settings.Store

	saved, values CacheValues
}

func NewCache(deps Deps) *Cache {
	p := &Cache{
		BasePage: catalog.NewBasePage(CacheID, "Cache", "Cache location and size"),
		store:    deps.Store,
	}
	p.SetKeywords(searchWords[CacheID]...)
	p.load()
	return p
}

func (p *Cache) load() {
	o := p.store.Object(CacheKey)
	v := CacheValues{LimitMB: DefaultCacheLimitMB}
	v.Directory, _ = o.String("Directory")
	if n, ok := o.Float("LimitMB"); ok && n >= 0 {
		v.LimitMB = int(n)
	}
	p.saved, p.values = v, v
}

func (p *Cache) Values() CacheValues     { return p.values }
func (p *Cache) SetValues(v CacheValues) { p.values = v }

func (p *Cache) Accept() error {
	v := p.values
	if v == p.saved {
		return nil
	}
	if v.LimitMB < 0 {
		return invalid("cache limit %d MB", v.LimitMB)
	}
	if v.Directory != "" {
		if !filepath.IsAbs(v.Directory) {
			return invalid("cache directory %q is not absolute", v.Directory)
		}
		v.Directory = filepath.Clean(v.Directory)
	}
	p.store.Insert(CacheKey, map[string]any{"Directory": v.Directory, "LimitMB": float64(v.LimitMB)})
	p.saved, p.values = v, v
	return nil
}

func (p *Cache) Finish() {
	p.load()
	p.BasePage.Finish()
}
