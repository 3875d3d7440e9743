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

// Package gridcanvas makes bitmap scaling visible.
//
// A [Canvas] wraps a drawing [Surface].  Every bitmap drawn through it is
// replaced by a copy with a one-pixel checkerboard painted on top in a
// semi-transparent colour.  When the bitmap is drawn at its native size,
// the checkerboard appears as a crisp grid.  Any scaling smears the grid
// into a moiré or blur, so that unintended resampling shows at a glance.
// Optionally, each bitmap is labelled with its effective scale factor.
//
// Composites are cached per bitmap.  The cache holds the original bitmaps
// only weakly.
//
// The package [seehuhn.de/go/gridcanvas/raster] provides a software
// Surface backed by an [image.RGBA].
package gridcanvas
