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

import "image"

// Density values for bitmaps and surfaces, in dots per inch.
const (
	// DensityNone marks a bitmap or surface without density information.
	// No density scaling is applied if either side has DensityNone.
	DensityNone = 0

	DensityLow     = 120
	DensityMedium  = 160
	DensityHigh    = 240
	DensityXHigh   = 320
	DensityXXHigh  = 480
	DensityDefault = DensityMedium
)

// Bitmap is an image together with the density it was authored for.
//
// The pointer is the bitmap's identity: two Bitmap values wrapping the same
// image are different bitmaps as far as caching is concerned.
type Bitmap struct {
	Image   image.Image
	Density int
}

// NewBitmap wraps img with the given density.
func NewBitmap(img image.Image, density int) *Bitmap {
	return &Bitmap{Image: img, Density: density}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	return b.Image.Bounds().Dx()
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	return b.Image.Bounds().Dy()
}
