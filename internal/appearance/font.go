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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
)

// DefaultPixelSize is the base UI font size; font ratios are expressed relative to it.
const DefaultPixelSize = 12

// ErrInvalidFont is returned by ParseFont for descriptors it cannot read.
var ErrInvalidFont = errors.New("invalid font descriptor")

// Font describes a UI font. It serializes to the comma separated descriptor used in the
// Preferences/Font setting: family,pointSize,pixelSize,styleHint,weight,style,underline,
// strikeOut,fixedPitch,rawMode. Weight is written on the CSS 100-900 scale; older descriptors
// with weights below 100 use the legacy 0-99 scale and are converted on read.
type Font struct {
	Family     string
	PointSize  float64 // -1 when the size is given in pixels
	PixelSize  int     // -1 when the size is given in points
	Weight     font.Weight
	Style      font.Style
	Underline  bool
	StrikeOut  bool
	FixedPitch bool
}

// ParseFont reads a serialized font descriptor.
func ParseFont(s string) (Font, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	f := Font{PointSize: -1, PixelSize: -1, Weight: font.WeightNormal, Style: font.StyleNormal}
	f.Family = strings.TrimSpace(fields[0])
	if f.Family == "" {
		return Font{}, fmt.Errorf("%w: empty family in %q", ErrInvalidFont, s)
	}
	if len(fields) > 17 {
		return Font{}, fmt.Errorf("%w: %d fields", ErrInvalidFont, len(fields))
	}
	field := func(i int) (string, bool) {
		if i >= len(fields) {
			return "", false
		}
		v := strings.TrimSpace(fields[i])
		return v, v != ""
	}

	var err error
	if v, ok := field(1); ok {
		if f.PointSize, err = strconv.ParseFloat(v, 64); err != nil || math.IsNaN(f.PointSize) {
			return Font{}, fmt.Errorf("%w: point size %q", ErrInvalidFont, v)
		}
	}
	if v, ok := field(2); ok {
		if f.PixelSize, err = strconv.Atoi(v); err != nil {
			return Font{}, fmt.Errorf("%w: pixel size %q", ErrInvalidFont, v)
		}
	}
	if v, ok := field(4); ok {
		w, err := strconv.Atoi(v)
		if err != nil || w < 0 {
			return Font{}, fmt.Errorf("%w: weight %q", ErrInvalidFont, v)
		}
		f.Weight = weightFromDescriptor(w)
	}
	if v, ok := field(5); ok {
		switch v {
		case "0":
			f.Style = font.StyleNormal
		case "1":
			f.Style = font.StyleItalic
		case "2":
			f.Style = font.StyleOblique
		default:
			return Font{}, fmt.Errorf("%w: style %q", ErrInvalidFont, v)
		}
	}
	for i, dst := range []*bool{&f.Underline, &f.StrikeOut, &f.FixedPitch} {
		if v, ok := field(6 + i); ok {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}
	return f, nil
}

// String serializes the font in the descriptor format read by ParseFont.
func (f Font) String() string {
	style := 0
	switch f.Style {
	case font.StyleItalic:
		style = 1
	case font.StyleOblique:
		style = 2
	}
	return strings.Join([]string{
		f.Family,
		strconv.FormatFloat(f.PointSize, 'g', -1, 64),
		strconv.Itoa(f.PixelSize),
		"5",
		strconv.Itoa(CSSWeight(f.Weight)),
		strconv.Itoa(style),
		boolDigit(f.Underline),
		boolDigit(f.StrikeOut),
		boolDigit(f.FixedPitch),
		"0",
	}, ",")
}

// WithPixelSize returns a copy sized in pixels.
func (f Font) WithPixelSize(px int) Font {
	f.PixelSize = px
	f.PointSize = -1
	return f
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// CSSWeight converts a font.Weight to the 100-900 scale.
func CSSWeight(w font.Weight) int { return (int(w) + 4) * 100 }

// WeightFromCSS converts a 100-900 weight to a font.Weight; zero is the normal weight.
func WeightFromCSS(css int) font.Weight {
	if css <= 0 {
		return font.WeightNormal
	}
	return weightFromDescriptor(max(css, 100))
}

// legacyWeights maps the 0-99 weight scale to CSS weights.
var legacyWeights = []struct{ legacy, css int }{
	{0, 100}, {12, 200}, {25, 300}, {50, 400}, {57, 500}, {63, 600}, {75, 700}, {81, 800}, {87, 900},
}

func weightFromDescriptor(w int) font.Weight {
	css := w
	if w < 100 {
		best := legacyWeights[0]
		for _, lw := range legacyWeights[1:] {
			if abs(lw.legacy-w) < abs(best.legacy-w) {
				best = lw
			}
		}
		css = best.css
	}
	n := int(math.Round(float64(css)/100)) - 4
	if n < int(font.WeightThin) {
		n = int(font.WeightThin)
	}
	if n > int(font.WeightBlack) {
		n = int(font.WeightBlack)
	}
	return font.Weight(n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
