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

// Command gridcanvas draws images through a grid overlay, to show how
// they would be scaled on a display of a given density.
//
// Usage:
//
//	gridcanvas render --scan=DIR [--scale=S] [--rotate=DEG] [--density=DPI] ...
//	gridcanvas grid [--output=FILE] [--color=#RRGGBBAA]
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"seehuhn.de/go/gridcanvas"
	"seehuhn.de/go/gridcanvas/internal/parallel"
)

type cli struct {
	Verbose bool `short:"v" help:"Log debug messages"`
	Workers int  `help:"Number of images processed in parallel, 0 for one per CPU" default:"0"`

	Render renderCmd `cmd:"" help:"Overlay the pixel grid on all images in a folder"`
	Grid   gridCmd   `cmd:"" help:"Write the grid pattern to a PNG file"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("gridcanvas"),
		kong.Description("Make bitmap scaling visible by overlaying a pixel grid."),
		kong.UsageOnError(),
	)

	if c.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.SetDefault(logger)
		gridcanvas.SetLogger(logger)
	}

	pool := parallel.Start(c.Workers)
	defer pool.Cancel()

	err := kctx.Run(pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
