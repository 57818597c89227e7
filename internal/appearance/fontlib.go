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

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultFamily = "Go"
	MonoFamily    = "Go Mono"
)

// FontLibrary stores parsed OpenType fonts mapped by family, weight and style. The Appearance
// page lists its families and renders previews with Resolve.
type FontLibrary struct {
	fonts map[fontKey]*opentype.Font
}

type fontKey struct {
	family string
	weight font.Weight
	style  font.Style
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[fontKey]*opentype.Font)} }

// GoFontLibrary returns a library preloaded with the Go font family.
func GoFontLibrary() (*FontLibrary, error) {
	fl := NewFontLibrary()
	for _, f := range []struct {
		family string
		weight font.Weight
		style  font.Style
		data   []byte
	}{
		{DefaultFamily, font.WeightNormal, font.StyleNormal, goregular.TTF},
		{DefaultFamily, font.WeightMedium, font.StyleNormal, gomedium.TTF},
		{DefaultFamily, font.WeightBold, font.StyleNormal, gobold.TTF},
		{DefaultFamily, font.WeightNormal, font.StyleItalic, goitalic.TTF},
		{DefaultFamily, font.WeightBold, font.StyleItalic, gobolditalic.TTF},
		{MonoFamily, font.WeightNormal, font.StyleNormal, gomono.TTF},
	} {
		if err := fl.Register(f.family, f.weight, f.style, f.data); err != nil {
			return nil, err
		}
	}
	return fl, nil
}

// Register parses data and stores it under family/weight/style.
func (fl *FontLibrary) Register(family string, weight font.Weight, style font.Style, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.fonts[fontKey{family: family, weight: weight, style: style}] = f
	return nil
}

// LoadTTF loads a font file into the library.
func (fl *FontLibrary) LoadTTF(family string, weight font.Weight, style font.Style, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.Register(family, weight, style, data)
}

// Families returns the registered family names in sorted order.
func (fl *FontLibrary) Families() []string {
	seen := map[string]bool{}
	var out []string
	for k := range fl.fonts {
		if !seen[k.family] {
			seen[k.family] = true
			out = append(out, k.family)
		}
	}
	sort.Strings(out)
	return out
}

func (fl *FontLibrary) Has(family string) bool {
	for k := range fl.fonts {
		if k.family == family {
			return true
		}
	}
	return false
}

func (fl *FontLibrary) find(f Font) *opentype.Font {
	if ot, ok := fl.fonts[fontKey{family: f.Family, weight: f.Weight, style: f.Style}]; ok {
		return ot
	}
	// Same family, closest weight.
	var best *opentype.Font
	bestDist := 0
	for k, ot := range fl.fonts {
		if k.family != f.Family {
			continue
		}
		d := abs(int(k.weight) - int(f.Weight))
		if k.style != f.Style {
			d += 10
		}
		if best == nil || d < bestDist {
			best, bestDist = ot, d
		}
	}
	return best
}

// Resolve returns a face for f at its pixel size (12 px when unset). Unknown families fall back
// to DefaultFamily with the same weight and style.
func (fl *FontLibrary) Resolve(f Font) (font.Face, error) {
	px := f.PixelSize
	if px <= 0 {
		px = DefaultPixelSize
	}
	ot := fl.find(f)
	if ot == nil {
		fb := f
		fb.Family = DefaultFamily
		ot = fl.find(fb)
	}
	if ot == nil {
		return nil, fmt.Errorf("no font for family %q", f.Family)
	}
	// At 72 DPI one point is one pixel.
	return opentype.NewFace(ot, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
}

// Preview renders text in f onto a transparent image with a 4 px margin.
func (fl *FontLibrary) Preview(f Font, text string, fg color.Color) (image.Image, error) {
	face, err := fl.Resolve(f)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	const margin = 4
	m := face.Metrics()
	w := font.MeasureString(face, text).Ceil() + 2*margin
	h := m.Height.Ceil() + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(margin, margin+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img, nil
}
