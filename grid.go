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
	"sync"
)

// GridSize is the width and height of the grid tile in pixels.
const GridSize = 512

// Grid returns the coverage mask which is tiled over every composite.
//
// Pixel (x, y) is opaque iff x and y have the same parity, so that
// neighbouring bitmap pixels alternate between tinted and untinted.  Any
// resampling of the bitmap smears this pattern, which is what makes
// unintended scaling visible.
//
// The mask is built on first use and shared afterwards.  Callers must not
// modify it.
func Grid() *image.Alpha {
	return gridPattern()
}

var gridPattern = sync.OnceValue(func() *image.Alpha {
	Logger().Debug("building grid pattern", "size", GridSize)

	grid := image.NewAlpha(image.Rect(0, 0, GridSize, GridSize))
	for y := range GridSize {
		row := grid.Pix[y*grid.Stride : y*grid.Stride+GridSize]
		for x := range row {
			if x%2 == y%2 {
				row[x] = 0xFF
			}
		}
	}
	return grid
})
