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
)

// call is one drawing operation seen by a recorder.
type call struct {
	op     string
	ctm    matrix.Matrix
	saves  int
	bitmap *Bitmap
	src    *image.Rectangle
	dst    *rect.Rect
	text   string
	x, y   float64
	paint  *Paint
	pixels []uint32
}

// recorder is a Surface which records drawing operations instead of
// performing them.
type recorder struct {
	MatrixStack

	density       int
	width, height int
	calls         []call
}

var _ Surface = (*recorder)(nil)

func newRecorder(density int) *recorder {
	return &recorder{density: density, width: 640, height: 480}
}

func (r *recorder) record(c call) {
	c.ctm = r.Matrix()
	c.saves = r.SaveCount()
	r.calls = append(r.calls, c)
}

func (r *recorder) ops(op string) []call {
	var res []call
	for _, c := range r.calls {
		if c.op == op {
			res = append(res, c)
		}
	}
	return res
}

func (r *recorder) Density() int           { return r.density }
func (r *recorder) SetDensity(density int) { r.density = density }
func (r *recorder) Width() int             { return r.width }
func (r *recorder) Height() int            { return r.height }

func (r *recorder) DrawColor(c color.Color) {
	r.record(call{op: "color"})
}

func (r *recorder) DrawRect(rr rect.Rect, p *Paint) {
	r.record(call{op: "rect", dst: &rr, paint: p})
}

func (r *recorder) DrawText(s string, x, y float64, p *Paint) {
	r.record(call{op: "text", text: s, x: x, y: y, paint: p})
}

func (r *recorder) DrawBitmap(b *Bitmap, left, top float64, p *Paint) {
	r.record(call{op: "bitmap", bitmap: b, x: left, y: top, paint: p})
}

func (r *recorder) DrawBitmapRect(b *Bitmap, src *image.Rectangle, dst *rect.Rect, p *Paint) {
	r.record(call{op: "bitmapRect", bitmap: b, src: src, dst: dst, paint: p})
}

func (r *recorder) DrawPixels(colors []uint32, offset, stride int, x, y float64, width, height int, hasAlpha bool, p *Paint) {
	r.record(call{op: "pixels", pixels: colors, x: x, y: y, paint: p})
}
