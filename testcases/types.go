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

package testcases

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridcanvas"
)

// ScaleCase describes a single bitmap draw together with the scale label
// the grid canvas must show for it.
type ScaleCase struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Width  int    // bitmap width in pixels
	Height int    // bitmap height in pixels

	SurfaceDensity int // zero means no density scaling
	BitmapDensity  int

	CTM matrix.Matrix    // zero value means no transform
	Src *image.Rectangle // nil draws the whole bitmap
	Dst *rect.Rect       // nil together with Src uses DrawBitmap

	Label string // expected label text
}

// Bitmap returns a test bitmap of the case's size: a diagonal gradient, so
// that resampling changes neighbouring pixels.
func (tc ScaleCase) Bitmap() *gridcanvas.Bitmap {
	img := image.NewNRGBA(image.Rect(0, 0, tc.Width, tc.Height))
	for y := range tc.Height {
		for x := range tc.Width {
			v := uint8(255 * (x + y) / max(1, tc.Width+tc.Height-2))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: 255 - v, A: 0xFF})
		}
	}
	return gridcanvas.NewBitmap(img, tc.BitmapDensity)
}

// Matrix returns the case's transformation matrix.
func (tc ScaleCase) Matrix() matrix.Matrix {
	if tc.CTM == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return tc.CTM
}

// Setup prepares s for the draw: it sets the density and the CTM.
func (tc ScaleCase) Setup(s gridcanvas.Surface) {
	s.SetDensity(tc.SurfaceDensity)
	s.SetMatrix(tc.Matrix())
}

// Draw issues the case's draw call on gc.
func (tc ScaleCase) Draw(gc *gridcanvas.Canvas, b *gridcanvas.Bitmap) {
	if tc.Src == nil && tc.Dst == nil {
		gc.DrawBitmap(b, 0, 0, nil)
		return
	}
	gc.DrawBitmapRect(b, tc.Src, tc.Dst, nil)
}

// Bounds returns the device space bounding box of the drawn bitmap.
func (tc ScaleCase) Bounds() rect.Rect {
	var dst rect.Rect
	if tc.Dst != nil {
		dst = *tc.Dst
	} else {
		f := 1.0
		if tc.SurfaceDensity != gridcanvas.DensityNone && tc.BitmapDensity != gridcanvas.DensityNone {
			f = float64(tc.SurfaceDensity) / float64(tc.BitmapDensity)
		}
		dst = rect.Rect{URx: float64(tc.Width) * f, URy: float64(tc.Height) * f}
	}

	m := tc.Matrix()
	bbox := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range [][2]float64{
		{dst.LLx, dst.LLy}, {dst.URx, dst.LLy}, {dst.LLx, dst.URy}, {dst.URx, dst.URy},
	} {
		x, y := m.Apply(p[0], p[1])
		bbox.LLx = min(bbox.LLx, x)
		bbox.LLy = min(bbox.LLy, y)
		bbox.URx = max(bbox.URx, x)
		bbox.URy = max(bbox.URy, y)
	}
	return bbox
}

func rectP(llx, lly, urx, ury float64) *rect.Rect {
	return &rect.Rect{LLx: llx, LLy: lly, URx: urx, URy: ury}
}

func srcP(x0, y0, x1, y1 int) *image.Rectangle {
	r := image.Rect(x0, y0, x1, y1)
	return &r
}
