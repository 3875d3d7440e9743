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

import "seehuhn.de/go/geom/matrix"

var ctmCases = []ScaleCase{
	{
		Name:   "identity",
		Width:  32,
		Height: 32,
		Label:  "1.0",
	},
	{
		Name:   "double",
		Width:  32,
		Height: 32,
		CTM:    matrix.Matrix{2, 0, 0, 2, 0, 0},
		Label:  "2.0",
	},
	{
		Name:   "half",
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{0.5, 0, 0, 0.5, 0, 0},
		Label:  "0.5",
	},
	{
		Name:   "anisotropic",
		Width:  32,
		Height: 32,
		CTM:    matrix.Matrix{2, 0, 0, 1, 0, 0},
		Label:  "2.00 x 1.00",
	},
	{
		Name:   "rotate_90_double",
		Width:  32,
		Height: 16,
		CTM:    matrix.Matrix{0, 2, -2, 0, 0, 0},
		Label:  "2.0",
	},
	{
		Name:   "rotate_45",
		Width:  32,
		Height: 32,
		CTM:    matrix.Matrix{1, 1, -1, 1, 0, 0},
		Label:  "1.41",
	},
	{
		Name:   "translate",
		Width:  32,
		Height: 32,
		CTM:    matrix.Matrix{1, 0, 0, 1, 7, 3},
		Label:  "1.0",
	},
}

var rectCases = []ScaleCase{
	{
		Name:   "dst_double",
		Width:  32,
		Height: 32,
		Dst:    rectP(0, 0, 64, 64),
		Label:  "2.0",
	},
	{
		Name:   "src_triple",
		Width:  32,
		Height: 32,
		Src:    srcP(0, 0, 16, 16),
		Dst:    rectP(0, 0, 48, 48),
		Label:  "3.0",
	},
	{
		Name:   "third",
		Width:  60,
		Height: 60,
		Dst:    rectP(0, 0, 20, 20),
		Label:  "0.33",
	},
	{
		Name:   "two_thirds",
		Width:  30,
		Height: 30,
		Dst:    rectP(0, 0, 20, 20),
		Label:  "0.66",
	},
	{
		Name:   "src_only",
		Width:  40,
		Height: 40,
		Src:    srcP(0, 0, 20, 20),
		Label:  "2.0",
	},
	{
		Name:   "stretch",
		Width:  20,
		Height: 20,
		Dst:    rectP(0, 0, 40, 20),
		Label:  "2.00 x 1.00",
	},
	{
		Name:   "offset",
		Width:  16,
		Height: 16,
		Dst:    rectP(8, 4, 40, 36),
		Label:  "2.0",
	},
}

var densityCases = []ScaleCase{
	{
		Name:           "xhigh_surface",
		Width:          16,
		Height:         16,
		SurfaceDensity: 320,
		BitmapDensity:  160,
		Label:          "2.0",
	},
	{
		Name:           "xxhigh_bitmap",
		Width:          48,
		Height:         48,
		SurfaceDensity: 160,
		BitmapDensity:  480,
		Label:          "0.33",
	},
	{
		Name:           "high_half",
		Width:          32,
		Height:         32,
		SurfaceDensity: 240,
		BitmapDensity:  160,
		CTM:            matrix.Matrix{0.5, 0, 0, 0.5, 0, 0},
		Label:          "0.75",
	},
	{
		Name:           "no_surface_density",
		Width:          32,
		Height:         32,
		SurfaceDensity: 0,
		BitmapDensity:  160,
		Label:          "1.0",
	},
	{
		Name:           "no_bitmap_density",
		Width:          32,
		Height:         32,
		SurfaceDensity: 320,
		BitmapDensity:  0,
		Label:          "1.0",
	},
	{
		Name:           "combined",
		Width:          20,
		Height:         20,
		SurfaceDensity: 240,
		BitmapDensity:  160,
		CTM:            matrix.Matrix{2, 0, 0, 2, 0, 0},
		Dst:            rectP(0, 0, 40, 20),
		Label:          "6.00 x 3.00",
	},
}
