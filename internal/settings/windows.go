/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package settings

// WindowSystemKey is the top-level document key holding window geometry.
const WindowSystemKey = "WindowSystem"

// Size is a window size in device independent units.
type Size struct {
	Width  float32
	Height float32
}

// Windows persists window geometry and splitter sizes keyed by a window type name.
type Windows struct {
	store Store
}

func NewWindows(s Store) *Windows { return &Windows{store: s} }

// LoadGeometry returns the stored size for name, or def when absent or malformed.
func (w *Windows) LoadGeometry(name string, def Size) Size {
	o, ok := AsObject(w.store.Object(WindowSystemKey)[name+"/Geometry"])
	if !ok {
		return def
	}
	width, okW := o.Float("width")
	height, okH := o.Float("height")
	if !okW || !okH || width <= 0 || height <= 0 {
		return def
	}
	return Size{Width: float32(width), Height: float32(height)}
}

func (w *Windows) SaveGeometry(name string, s Size) {
	w.update(name+"/Geometry", map[string]any{"width": float64(s.Width), "height": float64(s.Height)})
}

// LoadSplitterSizes returns the stored pane sizes for name, or def when absent or malformed.
func (w *Windows) LoadSplitterSizes(name string, def []float32) []float32 {
	raw, ok := w.store.Object(WindowSystemKey)[name+"/Splitter"].([]any)
	if !ok || len(raw) == 0 {
		return def
	}
	out := make([]float32, 0, len(raw))
	for _, v := range raw {
		f, ok := toFloat(v)
		if !ok || f < 0 {
			return def
		}
		out = append(out, float32(f))
	}
	return out
}

func (w *Windows) SaveSplitterSizes(name string, sizes []float32) {
	raw := make([]any, len(sizes))
	for i, s := range sizes {
		raw[i] = float64(s)
	}
	w.update(name+"/Splitter", raw)
}

func (w *Windows) update(key string, v any) {
	o := w.store.Object(WindowSystemKey)
	o[key] = v
	w.store.Insert(WindowSystemKey, o)
}
