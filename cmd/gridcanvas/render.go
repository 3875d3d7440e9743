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
	_ "image/gif"
	_ "image/jpeg"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridcanvas"
	"seehuhn.de/go/gridcanvas/internal/parallel"
	"seehuhn.de/go/gridcanvas/raster"
)

type renderCmd struct {
	Scan string `help:"Source folder to scan" default:"."`
	Dest string `help:"Destination folder for the PNG files. Relative to scan dir if not absolute." default:"overlaid"`

	Scale  float64 `help:"Scale factor applied by the surface" default:"1"`
	Rotate float64 `help:"Rotation in degrees applied by the surface" default:"0"`
	Width  int     `help:"Draw into a destination rectangle of this width" group:"rect"`
	Height int     `help:"Draw into a destination rectangle of this height" group:"rect"`

	Density       int  `help:"Surface density in dpi, 0 to disable density scaling" default:"160"`
	BitmapDensity int  `help:"Density the images were authored for, in dpi" default:"160"`
	Filter        bool `help:"Use bilinear sampling"`

	Color      string  `help:"Overlay colour as #RGB, #RGBA, #RRGGBB or #RRGGBBAA"`
	Background string  `help:"Background colour, transparent if empty"`
	Ratio      bool    `help:"Label images with their effective scale" default:"true" negatable:""`
	TextSize   float64 `help:"Label size in density-independent pixels" default:"14"`

	overlay    color.NRGBA
	background color.NRGBA
}

func (c *renderCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.Scale <= 0 || math.IsInf(c.Scale, 0) || math.IsNaN(c.Scale):
		return fmt.Errorf("invalid scale: %g", c.Scale)
	case c.Width < 0:
		return fmt.Errorf("invalid width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid height: %d", c.Height)
	case c.Density < 0:
		return fmt.Errorf("invalid density: %d", c.Density)
	case c.BitmapDensity < 0:
		return fmt.Errorf("invalid bitmap density: %d", c.BitmapDensity)
	case c.TextSize <= 0:
		return fmt.Errorf("invalid text size: %g", c.TextSize)
	}

	c.overlay = gridcanvas.DefaultColor
	if c.Color != "" {
		if c.overlay, err = parseColor(c.Color); err != nil {
			return err
		}
	}
	if c.Background != "" {
		if c.background, err = parseColor(c.Background); err != nil {
			return err
		}
	}
	return nil
}

func (c *renderCmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				img, err := loadImage(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not load image", "error", err)
					return
				}

				out := c.render(gridcanvas.NewBitmap(img, c.BitmapDensity))

				destName := pngName(fileName)
				if err := savePNG(out, c.Dest, destName); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dir", c.Dest, "error", err)
					return
				}
				logger.Debug("rendered", "dest", destName,
					"width", out.Bounds().Dx(), "height", out.Bounds().Dy())
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// render draws b through a grid canvas onto a new surface which is just
// large enough to hold the transformed bitmap.
func (c *renderCmd) render(b *gridcanvas.Bitmap) image.Image {
	var dst *rect.Rect
	w, h := float64(b.Width()), float64(b.Height())
	if c.Width > 0 || c.Height > 0 {
		dw, dh := float64(c.Width), float64(c.Height)
		switch {
		case dw == 0:
			dw = w * dh / h
		case dh == 0:
			dh = h * dw / w
		}
		dst = &rect.Rect{URx: dw, URy: dh}
		w, h = dw, dh
	} else if c.Density != gridcanvas.DensityNone && b.Density != gridcanvas.DensityNone {
		f := float64(c.Density) / float64(b.Density)
		w, h = w*f, h*f
	}

	m := matrix.RotateDeg(c.Rotate).Mul(matrix.Scale(c.Scale, c.Scale))

	bbox := transformedBounds(m, w, h)
	surface := raster.NewSize(pixelSize(bbox.URx-bbox.LLx), pixelSize(bbox.URy-bbox.LLy))
	surface.SetDensity(c.Density)
	if c.background.A > 0 {
		surface.DrawColor(c.background)
	}
	surface.Translate(-bbox.LLx, -bbox.LLy)
	surface.Concat(m)

	metrics := gridcanvas.DisplayMetrics{}
	if c.Density != gridcanvas.DensityNone {
		metrics.Density = float64(c.Density) / gridcanvas.DensityDefault
	}
	gc := gridcanvas.New(metrics,
		gridcanvas.WithColor(c.overlay),
		gridcanvas.WithOverlayRatio(c.Ratio),
		gridcanvas.WithTextSize(c.TextSize))
	gc.SetDelegate(surface)

	paint := &gridcanvas.Paint{Color: color.NRGBA{A: 0xFF}, Filter: c.Filter}
	if dst != nil {
		gc.DrawBitmapRect(b, nil, dst, paint)
	} else {
		gc.DrawBitmap(b, 0, 0, paint)
	}
	return surface.Image()
}

// transformedBounds returns the device space bounding box of the
// rectangle (0, 0, w, h) under m.
func transformedBounds(m matrix.Matrix, w, h float64) rect.Rect {
	bbox := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := m.Apply(p[0], p[1])
		bbox.LLx = min(bbox.LLx, x)
		bbox.LLy = min(bbox.LLy, y)
		bbox.URx = max(bbox.URx, x)
		bbox.URy = max(bbox.URy, y)
	}
	return bbox
}

// pixelSize rounds an extent up to whole pixels, ignoring rounding noise
// from the rotation.
func pixelSize(x float64) int {
	return max(1, int(math.Ceil(x-1e-6)))
}

func loadImage(filePath string) (img image.Image, err error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close image: %w", closeErr)
		}
	}()

	img, _, err = image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}

func pngName(srcName string) string {
	ext := filepath.Ext(srcName)
	return srcName[:len(srcName)-len(ext)] + ".png"
}
