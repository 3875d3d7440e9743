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

package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/image/draw"

	"seehuhn.de/go/gridcanvas"
)

type gridCmd struct {
	Output string `help:"Output file" default:"grid.png" type:"path"`
	Color  string `help:"Tint the grid with this colour instead of writing the bare mask"`
}

func (c *gridCmd) Validate(kctx *kong.Context) error {
	if c.Color != "" {
		if _, err := parseColor(c.Color); err != nil {
			return err
		}
	}
	return nil
}

func (c *gridCmd) Run() error {
	var img image.Image = gridcanvas.Grid()
	if c.Color != "" {
		col, _ := parseColor(c.Color)
		img = tintGrid(col)
	}

	dir, name := filepath.Split(c.Output)
	if dir == "" {
		dir = "."
	}
	if err := savePNG(img, dir, name); err != nil {
		return fmt.Errorf("could not write grid: %w", err)
	}
	slog.Info("wrote grid", "file", c.Output, "size", gridcanvas.GridSize)
	return nil
}

// tintGrid draws the grid mask in col onto a transparent image.
func tintGrid(col color.NRGBA) *image.NRGBA {
	grid := gridcanvas.Grid()
	out := image.NewNRGBA(grid.Bounds())
	draw.DrawMask(out, out.Bounds(), image.NewUniform(col), image.Point{}, grid, image.Point{}, draw.Src)
	return out
}
