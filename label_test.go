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
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestFormatScale(t *testing.T) {
	cases := []struct {
		sx, sy float64
		want   string
	}{
		{1.50, 1.49, "1.50 x 1.49"},
		{2.00, 1.99, "2.00 x 1.99"},
		{3, 3, "3.0"},
		{1, 1, "1.0"},
		{1.5, 1.5, "1.5"},
		{0.33, 0.33, "0.33"},
		{2, 1, "2.00 x 1.00"},
		{0.5, 0.25, "0.50 x 0.25"},
	}
	for _, tc := range cases {
		got := FormatScale(tc.sx, tc.sy)
		if got != tc.want {
			t.Errorf("FormatScale(%g, %g) = %q, want %q", tc.sx, tc.sy, got, tc.want)
		}
	}
}

func TestEffectiveScale(t *testing.T) {
	cases := []struct {
		name           string
		m              matrix.Matrix
		inX, inY       float64
		surface, bmp   int
		wantX, wantY   float64
		wantFormatting string
	}{
		{"identity", matrix.Identity, 1, 1, DensityNone, DensityNone, 1, 1, "1.0"},
		{"ctm", matrix.Matrix{2, 0, 0, 1, 0, 0}, 1, 1, DensityNone, DensityNone, 2, 1, "2.00 x 1.00"},
		{"hint", matrix.Identity, 1.503, 1.497, DensityNone, DensityNone, 1.50, 1.49, "1.50 x 1.49"},
		{"upscale", matrix.Identity, 2.001, 1.999, DensityNone, DensityNone, 2.00, 1.99, "2.00 x 1.99"},
		{"density up", matrix.Identity, 1, 1, DensityXHigh, DensityMedium, 2, 2, "2.0"},
		{"density down", matrix.Identity, 1, 1, DensityMedium, DensityXHigh, 0.5, 0.5, "0.5"},
		{"bitmap density unset", matrix.Identity, 1, 1, DensityXHigh, DensityNone, 1, 1, "1.0"},
		{"surface density unset", matrix.Identity, 1, 1, DensityNone, DensityXHigh, 1, 1, "1.0"},
		{"third", matrix.Identity, 10.0 / 30.0, 10.0 / 30.0, DensityNone, DensityNone, 0.33, 0.33, "0.33"},
		{"two thirds", matrix.Identity, 2.0 / 3.0, 2.0 / 3.0, DensityNone, DensityNone, 0.66, 0.66, "0.66"},
		{"exact decimal", matrix.Identity, 0.29, 0.29, DensityNone, DensityNone, 0.29, 0.29, "0.29"},
		{"rotated", matrix.Matrix{math.Sqrt2, math.Sqrt2, -math.Sqrt2, math.Sqrt2, 0, 0}, 1, 1, DensityNone, DensityNone, 2, 2, "2.0"},
		{"translation ignored", matrix.Matrix{1, 0, 0, 1, 37, -12}, 1, 1, DensityNone, DensityNone, 1, 1, "1.0"},
		{"combined", matrix.Matrix{2, 0, 0, 2, 0, 0}, 1.5, 1, DensityXHigh, DensityMedium, 6, 4, "6.00 x 4.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := EffectiveScale(tc.m, tc.inX, tc.inY, tc.surface, tc.bmp)
			if sx != tc.wantX || sy != tc.wantY {
				t.Errorf("EffectiveScale = (%g, %g), want (%g, %g)", sx, sy, tc.wantX, tc.wantY)
			}
			if got := FormatScale(sx, sy); got != tc.wantFormatting {
				t.Errorf("label %q, want %q", got, tc.wantFormatting)
			}
		})
	}
}

func TestTruncateScale(t *testing.T) {
	for i := range 1000 {
		want := float64(i) / 100
		if got := truncateScale(want); got != want {
			t.Errorf("truncateScale(%g) = %g", want, got)
		}
		nudged := want + 0.004
		if got := truncateScale(nudged); got != want {
			t.Errorf("truncateScale(%g) = %g, want %g", nudged, got, want)
		}
	}
}

func ExampleFormatScale() {
	sx, sy := EffectiveScale(matrix.Identity, 1.503, 1.497, DensityNone, DensityNone)
	fmt.Println(FormatScale(sx, sy))
	sx, sy = EffectiveScale(matrix.Identity, 1, 1, DensityXHigh, DensityMedium)
	fmt.Println(FormatScale(sx, sy))
	// Output:
	// 1.50 x 1.49
	// 2.0
}
