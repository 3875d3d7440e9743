// seehuhn.de/go/gridcanvas - pixel grid overlays for bitmap drawing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gridcanvas

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the overlay colour used unless another one is set.
var DefaultColor = ColorFromARGB(0x88FF0088)

const (
	// labelHueShift moves the label colour to the split complement
	// (180° + 30°) of the overlay colour.
	labelHueShift = 210

	// labelStrokeAlpha is the opacity of the label outline (40%).
	labelStrokeAlpha = 0x66
)

// ColorFromARGB converts a packed 0xAARRGGBB value.
func ColorFromARGB(argb uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}

// ARGB packs c into a 0xAARRGGBB value.
func ARGB(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// labelFillColor returns the opaque colour used to fill the scale label:
// the overlay colour with its hue rotated by labelHueShift degrees.
func labelFillColor(c color.NRGBA) color.NRGBA {
	rgb := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, s, v := rgb.Hsv()
	h = math.Mod(h+labelHueShift, 360)

	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

// labelStrokeColor returns the colour used to outline the scale label.
func labelStrokeColor(c color.NRGBA) color.NRGBA {
	c.A = labelStrokeAlpha
	return c
}
