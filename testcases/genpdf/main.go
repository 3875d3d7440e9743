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

// Command genpdf renders the scale test cases through the grid canvas.
// For every case it writes the rendered PNG, and a PDF with one square per
// pixel which can be inspected at any zoom level.
// Run from the module root directory.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/gridcanvas"
	"seehuhn.de/go/gridcanvas/raster"
	"seehuhn.de/go/gridcanvas/testcases"
)

const sheetDir = "testdata/sheets"

func main() {
	if err := os.MkdirAll(sheetDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			img := render(tc)

			if err := writePNG(img, filepath.Join(sheetDir, name+".png")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := writePDF(img, filepath.Join(sheetDir, name+".pdf")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

// render draws the test case on a white surface which just holds the
// transformed bitmap.
func render(tc testcases.ScaleCase) *image.RGBA {
	bbox := tc.Bounds()
	w := int(math.Ceil(bbox.URx - bbox.LLx))
	h := int(math.Ceil(bbox.URy - bbox.LLy))

	s := raster.NewSize(max(w, 1), max(h, 1))
	s.DrawColor(color.White)
	tc.Setup(s)
	s.SetMatrix(tc.Matrix().Translate(-bbox.LLx, -bbox.LLy))

	gc := gridcanvas.New(gridcanvas.DisplayMetrics{},
		gridcanvas.WithOverlayRatio(true),
		gridcanvas.WithTextSize(8))
	gc.SetDelegate(s)
	tc.Draw(gc, tc.Bitmap())

	return s.Image()
}

func writePNG(img image.Image, fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writePDF draws every pixel of img as a grey square of size 1pt.  Runs of
// equal pixels in a row are merged into a single rectangle.
func writePDF(img *image.RGBA, pdfPath string) error {
	b := img.Bounds()
	paper := &pdf.Rectangle{
		URx: float64(b.Dx()),
		URy: float64(b.Dy()),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; images have the origin at the top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(b.Dy())})

	for y := b.Min.Y; y < b.Max.Y; y++ {
		x0 := b.Min.X
		for x0 < b.Max.X {
			g := grey(img.RGBAAt(x0, y))
			x1 := x0 + 1
			for x1 < b.Max.X && grey(img.RGBAAt(x1, y)) == g {
				x1++
			}
			page.SetFillColor(pdfcolor.DeviceGray(float64(g) / 255))
			page.Rectangle(float64(x0-b.Min.X), float64(y-b.Min.Y), float64(x1-x0), 1)
			page.Fill()
			x0 = x1
		}
	}

	return page.Close()
}

func grey(c color.RGBA) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}
