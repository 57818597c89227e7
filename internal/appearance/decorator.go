/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package appearance

// Change identifies which decorator property changed.
type Change int

const (
	LocaleChanged Change = iota + 1
	ThemeChanged
	ZoomChanged
	FontChanged
)

// Decorator holds the live appearance state of the running application: locale, theme, zoom
// ratio and font ratio. Widgets subscribe to re-translate or re-style themselves.
// It is used from the UI goroutine only.
type Decorator struct {
	locale    string
	theme     string
	zoom      float64
	fontRatio float64

	subs   []subscription
	nextID int
}

type subscription struct {
	id int
	fn func(Change)
}

func NewDecorator() *Decorator { return &Decorator{zoom: 1, fontRatio: 1} }

func (d *Decorator) Locale() string     { return d.locale }
func (d *Decorator) Theme() string      { return d.theme }
func (d *Decorator) ZoomRatio() float64 { return d.zoom }
func (d *Decorator) FontRatio() float64 { return d.fontRatio }

func (d *Decorator) SetLocale(locale string) {
	if locale != d.locale {
		d.locale = locale
		d.notify(LocaleChanged)
	}
}

func (d *Decorator) SetTheme(theme string) {
	if theme != d.theme {
		d.theme = theme
		d.notify(ThemeChanged)
	}
}

// SetZoomRatio ignores non-positive ratios.
func (d *Decorator) SetZoomRatio(r float64) {
	if r > 0 && r != d.zoom {
		d.zoom = r
		d.notify(ZoomChanged)
	}
}

func (d *Decorator) SetFontRatio(r float64) {
	if r > 0 && r != d.fontRatio {
		d.fontRatio = r
		d.notify(FontChanged)
	}
}

// Subscribe registers fn for every change. The returned function unregisters it.
func (d *Decorator) Subscribe(fn func(Change)) (cancel func()) {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

func (d *Decorator) notify(c Change) {
	for _, s := range append([]subscription(nil), d.subs...) {
		s.fn(c)
	}
}
