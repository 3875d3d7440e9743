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
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

// Surface is a drawing target with a current transformation matrix.
//
// Coordinates are in user space and are mapped to device pixels by the
// CTM.  The y axis points down.  Rectangles use LLx/LLy for the left/top
// corner and URx/URy for the right/bottom corner.
//
// A Surface is driven from a single goroutine.
type Surface interface {
	// Save pushes a copy of the current transformation state and returns
	// the save count before the push.
	Save() int

	// Restore pops the most recent transformation state.
	Restore()

	// RestoreToCount pops states until the save count equals n.
	RestoreToCount(n int)

	// Translate, Scale, Rotate and Concat pre-multiply the CTM, so that
	// the new transformation is applied to user coordinates first.
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(degrees float64)
	Concat(m matrix.Matrix)

	// Matrix returns the current transformation matrix.
	Matrix() matrix.Matrix

	// SetMatrix replaces the current transformation matrix.
	SetMatrix(m matrix.Matrix)

	// Density returns the rendering density in dots per inch, or
	// DensityNone if the surface does not scale bitmaps by density.
	Density() int
	SetDensity(density int)

	Width() int
	Height() int

	// DrawColor fills the whole surface, ignoring the CTM.
	DrawColor(c color.Color)

	DrawRect(r rect.Rect, p *Paint)

	// DrawText draws s with its baseline at y.  The paint's Align field
	// decides how x relates to the text extent.
	DrawText(s string, x, y float64, p *Paint)

	// DrawBitmap draws b with its top-left corner at (left, top).
	DrawBitmap(b *Bitmap, left, top float64, p *Paint)

	// DrawBitmapRect draws the src part of b into dst.  A nil src selects
	// the whole bitmap.  A nil dst covers the bitmap's native size at the
	// origin.
	DrawBitmapRect(b *Bitmap, src *image.Rectangle, dst *rect.Rect, p *Paint)

	// DrawPixels draws a width×height block of ARGB colours taken from
	// colors, starting at offset, with the given stride between rows.
	DrawPixels(colors []uint32, offset, stride int, x, y float64, width, height int, hasAlpha bool, p *Paint)
}

// Style selects whether shapes and text are filled or outlined.
type Style int

const (
	StyleFill Style = iota
	StyleStroke
)

// Align is the horizontal text alignment relative to the x coordinate
// given to DrawText.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Paint describes how a drawing operation is rendered.
// Bitmap draws only use the alpha of Color and the Filter flag.
// A nil *Paint draws bitmaps opaquely and shapes in opaque black.
type Paint struct {
	Color color.NRGBA

	Style       Style
	StrokeWidth float64
	Join        graphics.LineJoinStyle
	MiterLimit  float64

	TextSize float64
	Align    Align

	// Filter enables bilinear sampling when bitmaps are scaled.
	Filter bool
}

// Alpha returns the paint's opacity.  A nil paint is opaque.
func (p *Paint) Alpha() uint8 {
	if p == nil {
		return 0xFF
	}
	return p.Color.A
}
