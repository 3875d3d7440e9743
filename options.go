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

import "image/color"

// DefaultTextSize is the size of scale labels in density-independent
// pixels.
const DefaultTextSize = 14

// DisplayMetrics describes the display a Canvas draws for.
type DisplayMetrics struct {
	// Density is the number of physical pixels per density-independent
	// pixel.  Zero is treated as 1.
	Density float64
}

// Option configures a Canvas created by New.
type Option func(*options)

type options struct {
	color    color.NRGBA
	ratio    bool
	textSize float64
	cache    *OverlayCache
}

func defaultOptions() options {
	return options{
		color:    DefaultColor,
		textSize: DefaultTextSize,
	}
}

// WithColor sets the initial overlay colour.
func WithColor(c color.NRGBA) Option {
	return func(o *options) {
		o.color = c
	}
}

// WithOverlayRatio enables scale labels from the start.
func WithOverlayRatio(enabled bool) Option {
	return func(o *options) {
		o.ratio = enabled
	}
}

// WithTextSize sets the label size in density-independent pixels.
func WithTextSize(dp float64) Option {
	return func(o *options) {
		o.textSize = dp
	}
}

// WithCache makes the Canvas use an existing cache instead of a private
// one.  This lets several canvases which are driven from the same
// goroutine share their composites.  The cache colour is set to the
// Canvas colour.
func WithCache(c *OverlayCache) Option {
	return func(o *options) {
		o.cache = c
	}
}
