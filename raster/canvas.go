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

// Package raster provides a software implementation of the
// [gridcanvas.Surface] interface which draws into an [image.RGBA].
//
// Shapes and text are converted to anti-aliased coverage by a scanline
// rasteriser.  Bitmaps are resampled with [golang.org/x/image/draw].
// Text uses the Go Regular font.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/gridcanvas"
)

// Canvas draws into an RGBA image.
type Canvas struct {
	gridcanvas.MatrixStack

	img     *image.RGBA
	density int

	r     *Rasteriser
	text  *shaper
	shape path.Data

	// mask collects coverage for one shape; dirty is the part of it
	// which may be non-zero.
	mask  *image.Alpha
	dirty image.Rectangle
}

var _ gridcanvas.Surface = (*Canvas)(nil)

// New returns a Canvas which draws into img.  The canvas initially has no
// density, so bitmaps are drawn at their pixel size.
func New(img *image.RGBA) *Canvas {
	b := img.Bounds()
	return &Canvas{
		img:  img,
		r:    NewRasteriser(rect.Rect{LLx: float64(b.Min.X), LLy: float64(b.Min.Y), URx: float64(b.Max.X), URy: float64(b.Max.Y)}),
		mask: image.NewAlpha(b),
	}
}

// NewSize allocates a w×h image and returns a Canvas which draws into it.
func NewSize(w, h int) *Canvas {
	return New(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// Image returns the image the canvas draws into.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Density implements the [gridcanvas.Surface] interface.
func (c *Canvas) Density() int {
	return c.density
}

// SetDensity implements the [gridcanvas.Surface] interface.
func (c *Canvas) SetDensity(density int) {
	c.density = density
}

// Width implements the [gridcanvas.Surface] interface.
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height implements the [gridcanvas.Surface] interface.
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

// DrawColor implements the [gridcanvas.Surface] interface.
func (c *Canvas) DrawColor(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawRect implements the [gridcanvas.Surface] interface.
func (c *Canvas) DrawRect(rr rect.Rect, p *gridcanvas.Paint) {
	c.shape.Cmds = append(c.shape.Cmds[:0],
		path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose)
	c.shape.Coords = append(c.shape.Coords[:0],
		vec.Vec2{X: rr.LLx, Y: rr.LLy},
		vec.Vec2{X: rr.URx, Y: rr.LLy},
		vec.Vec2{X: rr.URx, Y: rr.URy},
		vec.Vec2{X: rr.LLx, Y: rr.URy},
	)
	c.paintShape(p)
}

// DrawText implements the [gridcanvas.Surface] interface.
// Text which cannot be laid out is logged and skipped.
func (c *Canvas) DrawText(s string, x, y float64, p *gridcanvas.Paint) {
	if p == nil || s == "" {
		return
	}
	if c.text == nil {
		f, err := defaultFont()
		if err != nil {
			gridcanvas.Logger().Warn("cannot load font", "error", err)
			return
		}
		c.text = newShaper(f)
	}

	c.shape.Cmds = c.shape.Cmds[:0]
	c.shape.Coords = c.shape.Coords[:0]
	err := c.text.appendOutline(&c.shape, s, x, y, p.TextSize, p.Align)
	if err != nil {
		gridcanvas.Logger().Warn("cannot draw text", "text", s, "error", err)
		return
	}
	c.paintShape(p)
}

// paintShape fills or strokes c.shape with the current CTM.
func (c *Canvas) paintShape(p *gridcanvas.Paint) {
	col := color.NRGBA{A: 0xFF}
	if p != nil {
		col = p.Color
	}
	if col.A == 0 || len(c.shape.Cmds) == 0 {
		return
	}

	c.r.CTM = c.Matrix()
	c.dirty = image.Rectangle{}
	if p != nil && p.Style == gridcanvas.StyleStroke {
		c.r.Width = p.StrokeWidth
		c.r.Join = p.Join
		c.r.MiterLimit = p.MiterLimit
		if c.r.MiterLimit < 1 {
			c.r.MiterLimit = defaultMiterLimit
		}
		c.r.Stroke(&c.shape, c.collect)
	} else {
		c.r.FillNonZero(&c.shape, c.collect)
	}
	if c.dirty.Empty() {
		return
	}

	draw.DrawMask(c.img, c.dirty, image.NewUniform(col), image.Point{}, c.mask, c.dirty.Min, draw.Over)

	for y := c.dirty.Min.Y; y < c.dirty.Max.Y; y++ {
		i := c.mask.PixOffset(c.dirty.Min.X, y)
		clear(c.mask.Pix[i : i+c.dirty.Dx()])
	}
}

// collect stores one row of coverage in the mask.
func (c *Canvas) collect(y, xMin int, coverage []float32) {
	i := c.mask.PixOffset(xMin, y)
	for k, v := range coverage {
		c.mask.Pix[i+k] = uint8(v*255 + 0.5)
	}
	c.dirty = c.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
}

// DrawBitmap implements the [gridcanvas.Surface] interface.
// If both the canvas and the bitmap have a density, the bitmap is scaled
// by their ratio.
func (c *Canvas) DrawBitmap(b *gridcanvas.Bitmap, left, top float64, p *gridcanvas.Paint) {
	f := c.densityRatio(b)
	w, h := float64(b.Width())*f, float64(b.Height())*f
	src := image.Rect(0, 0, b.Width(), b.Height())
	c.drawImage(b.Image, src, rect.Rect{LLx: left, LLy: top, URx: left + w, URy: top + h}, p)
}

// DrawBitmapRect implements the [gridcanvas.Surface] interface.
// Without dst, the bitmap is scaled by density as for DrawBitmap.
func (c *Canvas) DrawBitmapRect(b *gridcanvas.Bitmap, src *image.Rectangle, dst *rect.Rect, p *gridcanvas.Paint) {
	sr := image.Rect(0, 0, b.Width(), b.Height())
	if src != nil {
		sr = *src
	}
	if dst == nil {
		f := c.densityRatio(b)
		dst = &rect.Rect{URx: float64(b.Width()) * f, URy: float64(b.Height()) * f}
	}
	c.drawImage(b.Image, sr, *dst, p)
}

func (c *Canvas) densityRatio(b *gridcanvas.Bitmap) float64 {
	if c.density == gridcanvas.DensityNone || b.Density == gridcanvas.DensityNone {
		return 1
	}
	return float64(c.density) / float64(b.Density)
}

// DrawPixels implements the [gridcanvas.Surface] interface.
func (c *Canvas) DrawPixels(colors []uint32, offset, stride int, x, y float64, width, height int, hasAlpha bool, p *gridcanvas.Paint) {
	if width <= 0 || height <= 0 {
		return
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for row := range height {
		line := colors[offset+row*stride : offset+row*stride+width]
		pix := img.Pix[row*img.Stride:]
		for col, argb := range line {
			a := uint8(argb >> 24)
			if !hasAlpha {
				a = 0xFF
			}
			pix[4*col+0] = uint8(argb >> 16)
			pix[4*col+1] = uint8(argb >> 8)
			pix[4*col+2] = uint8(argb)
			pix[4*col+3] = a
		}
	}
	c.drawImage(img, img.Bounds(), rect.Rect{LLx: x, LLy: y, URx: x + float64(width), URy: y + float64(height)}, p)
}

// drawImage maps the src part of img, given relative to the image origin,
// onto the user space rectangle dst.
func (c *Canvas) drawImage(img image.Image, src image.Rectangle, dst rect.Rect, p *gridcanvas.Paint) {
	if src.Empty() || dst.URx == dst.LLx || dst.URy == dst.LLy {
		return
	}
	src = src.Add(img.Bounds().Min)

	kx := (dst.URx - dst.LLx) / float64(src.Dx())
	ky := (dst.URy - dst.LLy) / float64(src.Dy())
	toUser := matrix.Matrix{kx, 0, 0, ky, dst.LLx - kx*float64(src.Min.X), dst.LLy - ky*float64(src.Min.Y)}
	m := toUser.Mul(c.Matrix())
	if gridcanvas.Singular(m) {
		return
	}

	var opts *draw.Options
	if a := p.Alpha(); a < 0xFF {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: a})}
	}
	var interp draw.Interpolator = draw.NearestNeighbor
	if p != nil && p.Filter {
		interp = draw.BiLinear
	}
	interp.Transform(c.img, f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}, img, src, draw.Over, opts)
}
