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
	"runtime"
	"sync"
	"weak"

	"golang.org/x/image/draw"
)

// OverlayCache maps bitmaps to their grid composites.
//
// Entries are keyed by bitmap identity and hold the original only weakly:
// once a bitmap becomes unreachable its composite is dropped as well.
// Composites embed the overlay colour, so changing the colour empties the
// cache.
//
// Apart from the removal of dead entries, which the runtime performs on
// its own goroutine, an OverlayCache must only be used from the goroutine
// which drives the surface.
type OverlayCache struct {
	color       color.NRGBA
	labelFill   color.NRGBA
	labelStroke color.NRGBA

	// mu guards entries against the runtime's cleanup goroutine.
	mu      sync.Mutex
	entries map[weak.Pointer[Bitmap]]*cacheEntry
}

type cacheEntry struct {
	composite *Bitmap
	cleanup   runtime.Cleanup
}

// NewOverlayCache returns an empty cache which tints the grid with col.
func NewOverlayCache(col color.NRGBA) *OverlayCache {
	c := &OverlayCache{
		entries: make(map[weak.Pointer[Bitmap]]*cacheEntry),
	}
	c.SetColor(col)
	return c
}

// SetColor sets the overlay colour and the derived label colours.
// All cached composites are discarded.
func (c *OverlayCache) SetColor(col color.NRGBA) {
	c.Clear()
	c.color = col
	c.labelFill = labelFillColor(col)
	c.labelStroke = labelStrokeColor(col)
}

// Color returns the overlay colour.
func (c *OverlayCache) Color() color.NRGBA {
	return c.color
}

// LabelColor returns the fill colour of scale labels, which is derived from
// the overlay colour.
func (c *OverlayCache) LabelColor() color.NRGBA {
	return c.labelFill
}

// Get returns the composite for orig, building it on first use.
// The same *Bitmap is returned for every call with the same orig until the
// cache is cleared.  orig must not be nil.
func (c *OverlayCache) Get(orig *Bitmap) *Bitmap {
	key := weak.Make(orig)

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return e.composite
	}

	e = &cacheEntry{composite: c.build(orig)}
	e.cleanup = runtime.AddCleanup(orig, c.evict, key)

	c.mu.Lock()
	c.entries[key] = e
	n := len(c.entries)
	c.mu.Unlock()

	Logger().Debug("built composite",
		"width", orig.Width(), "height", orig.Height(), "entries", n)
	return e.composite
}

// Clear drops all composites.
func (c *OverlayCache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	for _, e := range c.entries {
		e.cleanup.Stop()
	}
	clear(c.entries)
	c.mu.Unlock()

	if n > 0 {
		Logger().Debug("cleared composite cache", "entries", n)
	}
}

// Len returns the number of cached composites.
func (c *OverlayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evict runs after the original bitmap has become unreachable.
func (c *OverlayCache) evict(key weak.Pointer[Bitmap]) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	Logger().Debug("evicted composite")
}

// build copies orig into a new RGBA image and tiles the grid over it,
// tinted with the overlay colour.
func (c *OverlayCache) build(orig *Bitmap) *Bitmap {
	sb := orig.Image.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, orig.Image, sb.Min, draw.Src)

	grid := Grid()
	gw, gh := grid.Bounds().Dx(), grid.Bounds().Dy()
	tint := image.NewUniform(c.color)
	for top := 0; top < bounds.Dy(); top += gh {
		for left := 0; left < bounds.Dx(); left += gw {
			tile := image.Rect(left, top, left+gw, top+gh).Intersect(bounds)
			draw.DrawMask(dst, tile, tint, image.Point{}, grid, image.Point{}, draw.Over)
		}
	}

	return &Bitmap{Image: dst, Density: orig.Density}
}
