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

	"seehuhn.de/go/geom/rect"
)

// Canvas is a Surface which overlays a coloured pixel grid on every bitmap
// drawn through it.
//
// All operations are forwarded to the wrapped surface.  DrawBitmap and
// DrawBitmapRect pass a cached composite of the bitmap instead of the
// bitmap itself and, if enabled, label the result with its effective
// scale.  DrawPixels is forwarded unchanged: raw colour arrays have no
// identity a composite could be cached under.
type Canvas struct {
	Surface

	cache *OverlayCache
	label *scaleLabel
	ratio bool
}

var _ Surface = (*Canvas)(nil)

// New returns a Canvas for a display with the given metrics.
// A surface must be set with SetDelegate before drawing.
func New(metrics DisplayMetrics, opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	density := metrics.Density
	if density <= 0 {
		density = 1
	}

	cache := o.cache
	if cache == nil {
		cache = NewOverlayCache(o.color)
	} else if cache.Color() != o.color {
		cache.SetColor(o.color)
	}

	c := &Canvas{
		cache: cache,
		label: newScaleLabel(o.textSize * density),
		ratio: o.ratio,
	}
	c.label.setColors(cache)
	return c
}

// SetDelegate sets the surface which receives the drawing operations.
func (c *Canvas) SetDelegate(s Surface) {
	c.Surface = s
}

// Delegate returns the wrapped surface.
func (c *Canvas) Delegate() Surface {
	return c.Surface
}

// SetColor sets the overlay colour.  This clears the composite cache,
// since composites embed the colour.
func (c *Canvas) SetColor(col color.NRGBA) {
	c.cache.SetColor(col)
	c.label.setColors(c.cache)
}

// Color returns the overlay colour.
func (c *Canvas) Color() color.NRGBA {
	return c.cache.Color()
}

// SetOverlayRatioEnabled turns the scale labels on or off.  The setting
// applies from the next bitmap draw on.
func (c *Canvas) SetOverlayRatioEnabled(enabled bool) {
	c.ratio = enabled
}

// OverlayRatioEnabled reports whether scale labels are drawn.
func (c *Canvas) OverlayRatioEnabled() bool {
	return c.ratio
}

// ClearCache drops all composites.
func (c *Canvas) ClearCache() {
	c.cache.Clear()
}

// CacheLen returns the number of cached composites.
func (c *Canvas) CacheLen() int {
	return c.cache.Len()
}

// DrawBitmap implements the [Surface] interface.
func (c *Canvas) DrawBitmap(b *Bitmap, left, top float64, p *Paint) {
	c.Surface.DrawBitmap(c.cache.Get(b), left, top, p)
	if c.ratio {
		c.label.draw(c.Surface, b, 1, 1, 0, 0)
	}
}

// DrawBitmapRect implements the [Surface] interface.
func (c *Canvas) DrawBitmapRect(b *Bitmap, src *image.Rectangle, dst *rect.Rect, p *Paint) {
	c.Surface.DrawBitmapRect(c.cache.Get(b), src, dst, p)
	if !c.ratio {
		return
	}

	srcW, srcH := float64(b.Width()), float64(b.Height())
	if src != nil {
		srcW, srcH = float64(src.Dx()), float64(src.Dy())
	}
	dstW, dstH := float64(b.Width()), float64(b.Height())
	var offX, offY int
	if dst != nil {
		dstW, dstH = dst.URx-dst.LLx, dst.URy-dst.LLy
		offX, offY = int(dst.LLx), int(dst.LLy)
	}
	c.label.draw(c.Surface, b, dstW/srcW, dstH/srcH, offX, offY)
}
