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

package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// xAt returns the x coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser turns paths into anti-aliased pixel coverage.
//
// A Rasteriser is meant to be reused.  Its buffers grow to the largest
// path seen and are kept between calls.
type Rasteriser struct {
	// CTM maps user space to device pixels.
	CTM matrix.Matrix

	// Clip is the device region which receives coverage.  The
	// coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polygon which replaces it.
	Flatness float64

	// Width is the line width for Stroke, in user space units.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	crossings []float64

	devMin, devMax vec.Vec2
	haveBBox       bool

	// stroke outline polygons, stored back to back
	polys      []vec.Vec2
	polyStarts []int
	segs       []strokeSegment
}

// NewRasteriser returns a Rasteriser for the given clip region, with the
// identity CTM and a one unit wide butt-capped, miter-joined pen.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters for a new clip region.  Buffer
// capacity is retained.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
}

// FillNonZero fills p using the nonzero winding rule.
//
// Coverage is passed to emit one row at a time, starting at pixel
// (xMin, y).  The slice is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walkPath(p, r.addEdge, true)
	r.scan(integrateNonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walkPath(p, r.addEdge, true)
	r.scan(integrateEvenOdd, emit)
}

// walkPath flattens p and reports every line segment, in user space, to
// line.  If closeAll is set, open subpaths are closed implicitly as
// required for filling.
func (r *Rasteriser) walkPath(p *path.Data, line func(a, b vec.Vec2), closeAll bool) {
	var cur, start vec.Vec2
	open := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if closeAll && open && cur != start {
				line(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			open = true
			k++
		case path.CmdLineTo:
			line(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], line)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], line)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				line(cur, start)
			}
			cur = start
			open = false
		}
	}
	if closeAll && open && cur != start {
		line(cur, start)
	}
}

// deviceLength returns the length of the user space vector v after
// mapping through the linear part of the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2, line func(a, b vec.Vec2)) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		line(prev, q)
		prev = q
	}
}

func (r *Rasteriser) flattenCube(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	// Wang's bound on the second differences
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if k := math.Sqrt(3 * dev / (4 * r.Flatness)); k > 1 {
		n = int(math.Ceil(k))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		line(prev, q)
		prev = q
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.haveBBox = false
}

// addEdge maps the user space segment a-b to device space and records it.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	e := edge{
		x0: m[0]*a.X + m[2]*a.Y + m[4],
		y0: m[1]*a.X + m[3]*a.Y + m[5],
		x1: m[0]*b.X + m[2]*b.Y + m[4],
		y1: m[1]*b.X + m[3]*b.Y + m[5],
	}
	dy := e.y1 - e.y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	e.dxdy = (e.x1 - e.x0) / dy
	r.edges = append(r.edges, e)

	lo := vec.Vec2{X: min(e.x0, e.x1), Y: e.yMin()}
	hi := vec.Vec2{X: max(e.x0, e.x1), Y: e.yMax()}
	if !r.haveBBox {
		r.devMin, r.devMax = lo, hi
		r.haveBBox = true
		return
	}
	r.devMin = vec.Vec2{X: min(r.devMin.X, lo.X), Y: min(r.devMin.Y, lo.Y)}
	r.devMax = vec.Vec2{X: max(r.devMax.X, hi.X), Y: max(r.devMax.Y, hi.Y)}
}

// pixelBounds returns the pixel range touched by the recorded edges,
// clipped to r.Clip.
func (r *Rasteriser) pixelBounds() (x0, x1, y0, y1 int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	x0 = max(int(math.Floor(r.devMin.X)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(r.devMax.X))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(r.devMin.Y)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(r.devMax.Y))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

// Each pixel collects two sums.  cover is the signed height of the edge
// pieces inside the pixel, area the same weighted by the part of the
// pixel to the right of the edge.  Summing cover from the left and adding
// area gives the signed area of the shape inside each pixel.

// scan sweeps the recorded edges from top to bottom using an active edge
// list and emits one coverage row per scanline.
func (r *Rasteriser) scan(integrate func(cover, area []float32), emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].yMin() < bot {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax() <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if r.accumulate(e, top, bot, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area)
		if row, off := trimZeros(r.cover); row != nil {
			emit(y, xMin+off, row)
		}
	}
}

// accumulate adds the part of e between heights top and bot to the
// coverage buffers, which start at device column xMin.  It reports whether
// the edge contributed.
func (r *Rasteriser) accumulate(e *edge, top, bot float64, xMin, xMax int) bool {
	top = max(top, e.yMin())
	bot = min(bot, e.yMax())
	if bot <= top {
		return false
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(top), e.xAt(bot)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))
	if left >= xMax {
		return false
	}

	// Split the piece wherever it crosses a pixel column boundary.
	r.crossings = append(r.crossings[:0], top, bot)
	if left != right {
		for x := left + 1; x <= right; x++ {
			yx := e.y0 + (float64(x)-e.x0)/e.dxdy
			if yx > top && yx < bot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := 1; i < len(r.crossings); i++ {
		ya, yb := r.crossings[i-1], r.crossings[i]
		if yb <= ya {
			continue
		}
		c := sign * float32(yb-ya)
		xm := e.xAt((ya + yb) / 2)
		px := int(math.Floor(xm))
		switch {
		case px < xMin:
			// everything to the right of the clip edge is covered
			r.cover[0] += c
			r.area[0] += c
		case px < xMax:
			k := px - xMin
			r.cover[k] += c
			r.area[k] += c * float32(1-(xm-float64(px)))
		}
	}
	return true
}

// integrateNonZero turns the accumulated sums into coverage in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := abs32(acc + area[i])
		acc += cover[i]
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns the accumulated sums into coverage in place,
// folding the winding number modulo 2.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := abs32(acc + area[i])
		acc += cover[i]
		v -= 2 * float32(int(v/2))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips zero coverage from both ends of row.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

const (
	// defaultFlatness is below what the eye can resolve.
	defaultFlatness = 0.25

	// defaultMiterLimit turns joins sharper than about 11.5° into bevels.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6
)
