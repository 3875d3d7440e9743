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

// Command export writes the scale test cases to JSON, so that other
// implementations of the grid canvas can check their labels against them.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"image"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridcanvas/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/scalecases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name           string    `json:"name"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	SurfaceDensity int       `json:"surface_density,omitempty"`
	BitmapDensity  int       `json:"bitmap_density,omitempty"`
	CTM            []float64 `json:"ctm"`
	Src            []int     `json:"src,omitempty"`
	Dst            []float64 `json:"dst,omitempty"`
	Label          string    `json:"label"`
}

func toJSON(category string, tc testcases.ScaleCase) jsonTestCase {
	m := tc.Matrix()
	return jsonTestCase{
		Name:           category + "_" + tc.Name,
		Width:          tc.Width,
		Height:         tc.Height,
		SurfaceDensity: tc.SurfaceDensity,
		BitmapDensity:  tc.BitmapDensity,
		CTM:            m[:],
		Src:            srcToJSON(tc.Src),
		Dst:            dstToJSON(tc.Dst),
		Label:          tc.Label,
	}
}

func srcToJSON(r *image.Rectangle) []int {
	if r == nil {
		return nil
	}
	return []int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
}

func dstToJSON(r *rect.Rect) []float64 {
	if r == nil {
		return nil
	}
	return []float64{r.LLx, r.LLy, r.URx, r.URy}
}
