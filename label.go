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
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

const (
	// scalePrecision is the number of label steps per unit of scale.
	scalePrecision = 100

	// truncationGuard absorbs binary rounding error before truncation,
	// e.g. 0.29*100 = 28.999999999999996.
	truncationGuard = 1e-9

	// labelStrokeRatio is the outline width relative to the text size.
	labelStrokeRatio = 0.10
)

// EffectiveScale returns the horizontal and vertical magnification of a
// bitmap draw, truncated to two decimal digits.
//
// The net scale of the CTM m is measured along each axis, so that
// rotations do not hide the scale.  This is multiplied by the explicit
// scale of the draw call (destination over source size) and, if both the
// surface and the bitmap carry a density, by the ratio of the two.
func EffectiveScale(m matrix.Matrix, inX, inY float64, surfaceDensity, bitmapDensity int) (sx, sy float64) {
	sx = math.Hypot(m[0], m[1])
	sy = math.Hypot(m[3], m[2])

	sx *= inX
	sy *= inY

	if surfaceDensity != DensityNone && bitmapDensity != DensityNone {
		f := float64(surfaceDensity) / float64(bitmapDensity)
		sx *= f
		sy *= f
	}

	return truncateScale(sx), truncateScale(sy)
}

func truncateScale(x float64) float64 {
	return math.Trunc(x*scalePrecision+math.Copysign(truncationGuard, x)) / scalePrecision
}

// FormatScale renders a scale pair for display.  Scales which agree to
// within one label step are shown as a single number.
func FormatScale(sx, sy float64) string {
	if math.Abs(sx-sy) < 1.0/scalePrecision {
		return formatSingle(sx)
	}
	return fmt.Sprintf("%.2f x %.2f", sx, sy)
}

// formatSingle uses the shortest representation, but always with a
// fractional part: "3.0", "1.5", "0.33".
func formatSingle(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// scaleLabel draws the effective scale on top of a bitmap.
type scaleLabel struct {
	textSize float64
	stroke   Paint
	fill     Paint
}

func newScaleLabel(textSize float64) *scaleLabel {
	return &scaleLabel{
		textSize: textSize,
		stroke: Paint{
			Style:       StyleStroke,
			StrokeWidth: textSize * labelStrokeRatio,
			Join:        graphics.LineJoinMiter,
			MiterLimit:  4,
			TextSize:    textSize,
			Align:       AlignCenter,
		},
		fill: Paint{
			Style:    StyleFill,
			TextSize: textSize,
			Align:    AlignCenter,
		},
	}
}

// setColors updates the outline and fill colours.
func (l *scaleLabel) setColors(cache *OverlayCache) {
	l.stroke.Color = cache.labelStroke
	l.fill.Color = cache.labelFill
}

// draw labels a draw of b on s.  inX and inY are the explicit scale of the
// draw call, offX and offY the position of the destination in pixels.
//
// The label is drawn with the CTM counter-scaled by the effective scale,
// so that it has the same size whatever the transformation.  The CTM is
// restored before draw returns, also if the surface panics.
func (l *scaleLabel) draw(s Surface, b *Bitmap, inX, inY float64, offX, offY int) {
	sx, sy := EffectiveScale(s.Matrix(), inX, inY, s.Density(), b.Density)
	if sx == 0 || sy == 0 {
		Logger().Debug("skipping scale label", "scaleX", sx, "scaleY", sy)
		return
	}
	text := FormatScale(sx, sy)

	x := sx*float64(b.Width())/2 + float64(offX)
	y := sy*float64(b.Height())/2 + float64(offY) + l.textSize/2

	save := s.Save()
	defer s.RestoreToCount(save)

	s.Scale(1/sx, 1/sy)
	s.DrawText(text, x, y, &l.stroke)
	s.DrawText(text, x, y, &l.fill)
}
