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
	"math"
	"runtime"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

func newTestCanvas(density int, opts ...Option) (*Canvas, *recorder) {
	rec := newRecorder(density)
	c := New(DisplayMetrics{Density: 1}, opts...)
	c.SetDelegate(rec)
	return c, rec
}

func TestCanvasDrawBitmapTwice(t *testing.T) {
	c, rec := newTestCanvas(DensityNone)
	b := solidBitmap(100, 100, color.NRGBA{0, 0, 255, 255}, DensityNone)

	c.DrawBitmap(b, 0, 0, nil)
	c.DrawBitmap(b, 0, 0, nil)

	draws := rec.ops("bitmap")
	if len(draws) != 2 {
		t.Fatalf("%d bitmap draws, want 2", len(draws))
	}
	if draws[0].bitmap != draws[1].bitmap {
		t.Error("draws used different composites")
	}
	if draws[0].bitmap == b {
		t.Error("original bitmap reached the surface")
	}
	if c.CacheLen() != 1 {
		t.Errorf("cache has %d entries, want 1", c.CacheLen())
	}
	if n := len(rec.ops("text")); n != 0 {
		t.Errorf("%d labels drawn while disabled", n)
	}
	runtime.KeepAlive(b)
}

func TestCanvasForwardsArguments(t *testing.T) {
	c, rec := newTestCanvas(DensityNone)
	b := solidBitmap(20, 10, color.NRGBA{A: 255}, DensityNone)
	p := &Paint{Color: color.NRGBA{A: 0x80}, Filter: true}
	src := image.Rect(2, 2, 12, 7)
	dst := rect.Rect{LLx: 5, LLy: 6, URx: 25, URy: 16}

	c.DrawBitmap(b, 3, 4, p)
	c.DrawBitmapRect(b, &src, &dst, p)

	d := rec.calls[0]
	if d.op != "bitmap" || d.x != 3 || d.y != 4 || d.paint != p {
		t.Errorf("DrawBitmap forwarded as %+v", d)
	}
	r := rec.calls[1]
	if r.op != "bitmapRect" || r.src != &src || r.dst != &dst || r.paint != p {
		t.Errorf("DrawBitmapRect forwarded as %+v", r)
	}
	if d.bitmap != r.bitmap {
		t.Error("DrawBitmap and DrawBitmapRect used different composites")
	}
	runtime.KeepAlive(b)
}

func TestCanvasLabel(t *testing.T) {
	c, rec := newTestCanvas(DensityNone, WithOverlayRatio(true))
	b := solidBitmap(100, 100, color.NRGBA{0, 0, 255, 255}, DensityNone)

	dst := rect.Rect{LLx: 10, LLy: 10, URx: 210, URy: 110}
	c.DrawBitmapRect(b, nil, &dst, nil)

	texts := rec.ops("text")
	if len(texts) != 2 {
		t.Fatalf("%d text draws, want 2", len(texts))
	}

	textSize := float64(DefaultTextSize)
	stroke, fill := texts[0], texts[1]
	for _, tx := range texts {
		if tx.text != "2.00 x 1.00" {
			t.Errorf("label %q, want %q", tx.text, "2.00 x 1.00")
		}
		if tx.x != 110 || tx.y != 60+textSize/2 {
			t.Errorf("label at (%g,%g), want (110,%g)", tx.x, tx.y, 60+textSize/2)
		}
		if !matrixClose(tx.ctm, matrix.Matrix{0.5, 0, 0, 1, 0, 0}) {
			t.Errorf("label CTM %v, want Scale(0.5, 1)", tx.ctm)
		}
		if tx.saves != 1 {
			t.Errorf("label drawn with %d saved states, want 1", tx.saves)
		}
		if tx.paint.Align != AlignCenter || tx.paint.TextSize != textSize {
			t.Errorf("label paint %+v", tx.paint)
		}
	}

	if stroke.paint.Style != StyleStroke || math.Abs(stroke.paint.StrokeWidth-textSize/10) > 1e-9 {
		t.Errorf("first label draw is not the outline: %+v", stroke.paint)
	}
	if stroke.paint.Color.A != labelStrokeAlpha {
		t.Errorf("outline alpha %#x, want %#x", stroke.paint.Color.A, labelStrokeAlpha)
	}
	if fill.paint.Style != StyleFill || fill.paint.Color != c.cache.LabelColor() {
		t.Errorf("second label draw is not the fill: %+v", fill.paint)
	}

	if rec.Matrix() != matrix.Identity || rec.SaveCount() != 0 {
		t.Errorf("transform state not restored: %v, %d saves", rec.Matrix(), rec.SaveCount())
	}
	runtime.KeepAlive(b)
}

// failingText is a surface whose text drawing panics.
type failingText struct {
	*recorder
}

func (f failingText) DrawText(s string, x, y float64, p *Paint) {
	panic("text drawing failed")
}

func TestCanvasLabelRestoresOnPanic(t *testing.T) {
	rec := newRecorder(DensityNone)
	rec.Scale(3, 2)
	before := rec.Matrix()

	c := New(DisplayMetrics{Density: 1}, WithOverlayRatio(true))
	c.SetDelegate(failingText{rec})
	b := solidBitmap(10, 10, color.NRGBA{A: 255}, DensityNone)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("DrawBitmap did not propagate the panic")
			}
		}()
		c.DrawBitmap(b, 0, 0, nil)
	}()

	if rec.Matrix() != before {
		t.Errorf("CTM %v after failed label, want %v", rec.Matrix(), before)
	}
	if rec.SaveCount() != 0 {
		t.Errorf("%d saved states after failed label, want 0", rec.SaveCount())
	}
	if len(rec.ops("bitmap")) != 1 {
		t.Errorf("composite not drawn before the label")
	}
}

func TestCanvasLabelPlacement(t *testing.T) {
	cases := []struct {
		name    string
		density int
		bmp     int
		setup   func(s Surface)
		draw    func(c *Canvas, b *Bitmap)
		text    string
		x, y    float64
	}{
		{
			name: "plain",
			draw: func(c *Canvas, b *Bitmap) { c.DrawBitmap(b, 7, 9, nil) },
			text: "1.0", x: 50, y: 50 + 7,
		},
		{
			name:    "density",
			density: DensityXHigh,
			bmp:     DensityMedium,
			draw:    func(c *Canvas, b *Bitmap) { c.DrawBitmap(b, 0, 0, nil) },
			text:    "2.0", x: 100, y: 100 + 7,
		},
		{
			name:  "ctm",
			setup: func(s Surface) { s.Scale(3, 3) },
			draw:  func(c *Canvas, b *Bitmap) { c.DrawBitmap(b, 0, 0, nil) },
			text:  "3.0", x: 150, y: 150 + 7,
		},
		{
			name: "src subset",
			draw: func(c *Canvas, b *Bitmap) {
				src := image.Rect(0, 0, 50, 50)
				c.DrawBitmapRect(b, &src, &rect.Rect{URx: 100, URy: 100}, nil)
			},
			text: "2.0", x: 100, y: 100 + 7,
		},
		{
			name: "downscale",
			draw: func(c *Canvas, b *Bitmap) {
				src := image.Rect(0, 0, 30, 30)
				c.DrawBitmapRect(b, &src, &rect.Rect{LLx: 0.9, LLy: 1.9, URx: 10.9, URy: 11.9}, nil)
			},
			text: "0.33", x: 0.33*50 + 0, y: 0.33*50 + 1 + 7,
		},
		{
			name: "native size",
			draw: func(c *Canvas, b *Bitmap) { c.DrawBitmapRect(b, nil, nil, nil) },
			text: "1.0", x: 50, y: 50 + 7,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestCanvas(tc.density, WithOverlayRatio(true))
			if tc.setup != nil {
				tc.setup(rec)
			}
			before := rec.Matrix()
			b := solidBitmap(100, 100, color.NRGBA{A: 255}, tc.bmp)

			tc.draw(c, b)

			texts := rec.ops("text")
			if len(texts) != 2 {
				t.Fatalf("%d text draws, want 2", len(texts))
			}
			got := texts[1]
			if got.text != tc.text {
				t.Errorf("label %q, want %q", got.text, tc.text)
			}
			if !near(got.x, tc.x) || !near(got.y, tc.y) {
				t.Errorf("label at (%g,%g), want (%g,%g)", got.x, got.y, tc.x, tc.y)
			}
			if rec.Matrix() != before {
				t.Errorf("CTM changed from %v to %v", before, rec.Matrix())
			}
			runtime.KeepAlive(b)
		})
	}
}

func near(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}

func TestCanvasPixelsPassThrough(t *testing.T) {
	c, rec := newTestCanvas(DensityNone, WithOverlayRatio(true))
	colors := []uint32{0xFF000000, 0xFFFFFFFF, 0xFF000000, 0xFFFFFFFF}

	c.DrawPixels(colors, 0, 2, 1, 2, 2, 2, false, nil)

	if len(rec.calls) != 1 {
		t.Fatalf("%d calls recorded, want 1", len(rec.calls))
	}
	got := rec.calls[0]
	if got.op != "pixels" || &got.pixels[0] != &colors[0] || got.x != 1 || got.y != 2 {
		t.Errorf("DrawPixels forwarded as %+v", got)
	}
	if c.CacheLen() != 0 {
		t.Errorf("raw pixel draw created %d cache entries", c.CacheLen())
	}
}

func TestCanvasSetColor(t *testing.T) {
	c, rec := newTestCanvas(DensityNone, WithOverlayRatio(true))
	b := solidBitmap(10, 10, color.NRGBA{A: 255}, DensityNone)

	c.DrawBitmap(b, 0, 0, nil)
	green := ColorFromARGB(0xFF00FF00)
	c.SetColor(green)
	if c.Color() != green {
		t.Errorf("Color() = %v, want %v", c.Color(), green)
	}
	if c.CacheLen() != 0 {
		t.Errorf("cache has %d entries after SetColor", c.CacheLen())
	}
	c.DrawBitmap(b, 0, 0, nil)

	draws := rec.ops("bitmap")
	if draws[0].bitmap == draws[1].bitmap {
		t.Error("composite reused across colour change")
	}
	texts := rec.ops("text")
	if texts[3].paint.Color != c.cache.LabelColor() {
		t.Errorf("label fill %v, want %v", texts[3].paint.Color, c.cache.LabelColor())
	}
	if texts[2].paint.Color != (color.NRGBA{0, 255, 0, labelStrokeAlpha}) {
		t.Errorf("label outline %v", texts[2].paint.Color)
	}
	runtime.KeepAlive(b)
}

func TestCanvasToggleRatio(t *testing.T) {
	c, rec := newTestCanvas(DensityNone)
	b := solidBitmap(10, 10, color.NRGBA{A: 255}, DensityNone)

	c.SetOverlayRatioEnabled(true)
	if !c.OverlayRatioEnabled() {
		t.Fatal("ratio not enabled")
	}
	c.DrawBitmap(b, 0, 0, nil)
	c.SetOverlayRatioEnabled(false)
	c.DrawBitmap(b, 0, 0, nil)

	if n := len(rec.ops("text")); n != 2 {
		t.Errorf("%d text draws, want 2", n)
	}
	runtime.KeepAlive(b)
}

func TestCanvasZeroScale(t *testing.T) {
	c, rec := newTestCanvas(DensityNone, WithOverlayRatio(true))
	b := solidBitmap(10, 10, color.NRGBA{A: 255}, DensityNone)

	rec.Scale(0, 1)
	c.DrawBitmap(b, 0, 0, nil)

	if len(rec.ops("bitmap")) != 1 {
		t.Error("bitmap not drawn")
	}
	if n := len(rec.ops("text")); n != 0 {
		t.Errorf("%d text draws for a degenerate CTM", n)
	}
	runtime.KeepAlive(b)
}

func TestSharedCache(t *testing.T) {
	cache := NewOverlayCache(DefaultColor)
	c1, rec1 := newTestCanvas(DensityNone, WithCache(cache))
	c2, rec2 := newTestCanvas(DensityNone, WithCache(cache))
	b := solidBitmap(10, 10, color.NRGBA{A: 255}, DensityNone)

	c1.DrawBitmap(b, 0, 0, nil)
	c2.DrawBitmap(b, 0, 0, nil)

	if rec1.calls[0].bitmap != rec2.calls[0].bitmap {
		t.Error("canvases sharing a cache used different composites")
	}
	if cache.Len() != 1 {
		t.Errorf("shared cache has %d entries, want 1", cache.Len())
	}
	runtime.KeepAlive(b)
}

func TestCanvasTextSize(t *testing.T) {
	rec := newRecorder(DensityNone)
	c := New(DisplayMetrics{Density: 2}, WithTextSize(10), WithOverlayRatio(true))
	c.SetDelegate(rec)
	if c.Delegate() != rec {
		t.Fatal("Delegate() does not return the surface")
	}
	b := solidBitmap(10, 10, color.NRGBA{A: 255}, DensityNone)

	c.DrawBitmap(b, 0, 0, nil)

	fill := rec.ops("text")[1]
	if fill.paint.TextSize != 20 {
		t.Errorf("text size %g, want 20", fill.paint.TextSize)
	}
	if fill.y != 5+10 {
		t.Errorf("baseline %g, want 15", fill.y)
	}
	runtime.KeepAlive(b)
}
