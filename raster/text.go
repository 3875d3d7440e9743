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

package raster

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/gridcanvas"
)

// defaultFont is parsed on first use.
var defaultFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

// shaper lays out text on a single line and converts it to glyph outlines.
type shaper struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	glyphs []sfnt.GlyphIndex
	kerns  []float64
}

func newShaper(f *sfnt.Font) *shaper {
	return &shaper{font: f}
}

// layout maps s to glyphs and returns the total advance at the given size.
func (s *shaper) layout(text string, ppem fixed.Int26_6) (float64, error) {
	s.glyphs = s.glyphs[:0]
	s.kerns = s.kerns[:0]

	var width fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for _, r := range text {
		g, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil {
			return 0, fmt.Errorf("glyph for %q: %w", r, err)
		}

		var kern fixed.Int26_6
		if len(s.glyphs) > 0 {
			k, err := s.font.Kern(&s.buf, prev, g, ppem, font.HintingNone)
			if err == nil {
				kern = k
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				return 0, fmt.Errorf("kerning: %w", err)
			}
		}

		adv, err := s.font.GlyphAdvance(&s.buf, g, ppem, font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("advance of glyph %d: %w", g, err)
		}

		s.glyphs = append(s.glyphs, g)
		s.kerns = append(s.kerns, fixedToFloat(kern))
		width += kern + adv
		prev = g
	}
	return fixedToFloat(width), nil
}

// appendOutline adds the outlines of text to dst.  The baseline starts at
// (x, y) for left aligned text and is shifted according to align.
func (s *shaper) appendOutline(dst *path.Data, text string, x, y, size float64, align gridcanvas.Align) error {
	if size <= 0 {
		return nil
	}
	ppem := fixed.Int26_6(math.Round(size * 64))
	width, err := s.layout(text, ppem)
	if err != nil {
		return err
	}
	switch align {
	case gridcanvas.AlignCenter:
		x -= width / 2
	case gridcanvas.AlignRight:
		x -= width
	}

	for i, g := range s.glyphs {
		x += s.kerns[i]
		segs, err := s.font.LoadGlyph(&s.buf, g, ppem, nil)
		if err != nil {
			return fmt.Errorf("outline of glyph %d: %w", g, err)
		}

		open := false
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					dst.Cmds = append(dst.Cmds, path.CmdClose)
				}
				dst.Cmds = append(dst.Cmds, path.CmdMoveTo)
				dst.Coords = append(dst.Coords, glyphPoint(seg.Args[0], x, y))
				open = true
			case sfnt.SegmentOpLineTo:
				dst.Cmds = append(dst.Cmds, path.CmdLineTo)
				dst.Coords = append(dst.Coords, glyphPoint(seg.Args[0], x, y))
			case sfnt.SegmentOpQuadTo:
				dst.Cmds = append(dst.Cmds, path.CmdQuadTo)
				dst.Coords = append(dst.Coords,
					glyphPoint(seg.Args[0], x, y),
					glyphPoint(seg.Args[1], x, y))
			case sfnt.SegmentOpCubeTo:
				dst.Cmds = append(dst.Cmds, path.CmdCubeTo)
				dst.Coords = append(dst.Coords,
					glyphPoint(seg.Args[0], x, y),
					glyphPoint(seg.Args[1], x, y),
					glyphPoint(seg.Args[2], x, y))
			}
		}
		if open {
			dst.Cmds = append(dst.Cmds, path.CmdClose)
		}

		adv, err := s.font.GlyphAdvance(&s.buf, g, ppem, font.HintingNone)
		if err != nil {
			return fmt.Errorf("advance of glyph %d: %w", g, err)
		}
		x += fixedToFloat(adv)
	}
	return nil
}

// glyphPoint converts a glyph outline point, which has y pointing down
// from the baseline, to user space.
func glyphPoint(p fixed.Point26_6, x, y float64) vec.Vec2 {
	return vec.Vec2{X: x + fixedToFloat(p.X), Y: y + fixedToFloat(p.Y)}
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
