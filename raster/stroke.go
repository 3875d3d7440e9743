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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a piece of a flattened subpath, in user space.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // T turned by +90°
}

// Stroke paints the outline of p with the pen described by Width, Cap,
// Join and MiterLimit.  Coverage is delivered as for FillNonZero.
//
// The stroke is assembled from one quadrilateral per segment, a wedge
// at every corner and a cap at every open end.  All pieces have the same
// orientation, so that filling them together with the nonzero rule paints
// each pixel once.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.polys = r.polys[:0]
	r.polyStarts = r.polyStarts[:0]

	d := r.Width / 2
	if d <= 0 {
		return
	}
	r.eachSubpath(p, func(segs []strokeSegment, dot vec.Vec2, closed bool) {
		if len(segs) == 0 {
			if r.Cap == graphics.LineCapRound {
				r.beginPoly()
				r.addArc(dot, d, vec.Vec2{X: 1}, 2*math.Pi, true)
				r.endPoly()
			}
			return
		}
		r.strokeSegments(segs, closed, d)
	})

	r.beginEdges()
	for i, start := range r.polyStarts {
		end := len(r.polys)
		if i+1 < len(r.polyStarts) {
			end = r.polyStarts[i+1]
		}
		poly := r.polys[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(integrateNonZero, emit)
}

// eachSubpath flattens p and calls fn once per subpath.  Subpaths without
// any extent are reported with no segments and their position in dot.
func (r *Rasteriser) eachSubpath(p *path.Data, fn func(segs []strokeSegment, dot vec.Vec2, closed bool)) {
	var start vec.Vec2
	started := false
	drawn := false

	flush := func(closed bool) {
		if started && (drawn || closed) {
			fn(r.segs, start, closed)
		}
		r.segs = r.segs[:0]
		started = false
		drawn = false
	}
	add := func(a, b vec.Vec2) {
		drawn = true
		dv := b.Sub(a)
		l := dv.Length()
		if l < zeroLengthThreshold {
			return
		}
		t := dv.Mul(1 / l)
		r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
	}

	var cur vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			cur = p.Coords[k]
			start = cur
			started = true
			k++
		case path.CmdLineTo:
			add(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], add)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], add)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				add(cur, start)
			}
			cur = start
			flush(true)
		}
	}
	flush(false)
}

func (r *Rasteriser) strokeSegments(segs []strokeSegment, closed bool, d float64) {
	for i := range segs {
		s := &segs[i]
		r.beginPoly()
		r.polys = append(r.polys,
			s.A.Add(s.N.Mul(d)),
			s.B.Add(s.N.Mul(d)),
			s.B.Sub(s.N.Mul(d)),
			s.A.Sub(s.N.Mul(d)),
		)
		r.endPoly()

		if i > 0 {
			r.addJoin(s.A, segs[i-1].T, s.T, d)
		}
	}

	first, last := &segs[0], &segs[len(segs)-1]
	if closed {
		r.addJoin(first.A, last.T, first.T, d)
		return
	}
	r.addCap(first.A, first.T.Mul(-1), d)
	r.addCap(last.B, last.T, d)
}

// addJoin adds the wedge which fills the outer side of the corner at p,
// where the direction changes from t1 to t2.
func (r *Rasteriser) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	if math.Abs(cross) < collinearityThreshold && cos > 0 {
		return
	}

	// the outer side is the one the path turns away from
	side := 1.0
	if cross > 0 {
		side = -1
	}
	u1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(side)
	u2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(side)

	r.beginPoly()
	r.polys = append(r.polys, p, p.Add(u1.Mul(d)))
	switch r.Join {
	case graphics.LineJoinRound:
		sweep := math.Atan2(u1.X*u2.Y-u1.Y*u2.X, u1.Dot(u2))
		r.addArc(p, d, u1, sweep, false)
	case graphics.LineJoinMiter:
		// the miter length relative to the line width is 1/cos(θ/2)
		cosHalf := math.Sqrt((1 + cos) / 2)
		bis := u1.Add(u2)
		if l := bis.Length(); cosHalf > 0 && l > zeroLengthThreshold && 1/cosHalf <= r.MiterLimit+1e-10 {
			r.polys = append(r.polys, p.Add(bis.Mul(d/(cosHalf*l))))
		}
		r.polys = append(r.polys, p.Add(u2.Mul(d)))
	default:
		r.polys = append(r.polys, p.Add(u2.Mul(d)))
	}
	r.endPoly()
}

// addCap adds the cap at the open end p of a subpath.  t points away from
// the stroke.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		r.beginPoly()
		r.polys = append(r.polys,
			p.Add(n.Mul(d)),
			p.Add(n.Mul(d)).Add(t.Mul(d)),
			p.Sub(n.Mul(d)).Add(t.Mul(d)),
			p.Sub(n.Mul(d)),
		)
		r.endPoly()
	case graphics.LineCapRound:
		r.beginPoly()
		r.addArc(p, d, n, -math.Pi, true)
		r.endPoly()
	}
}

// addArc appends points on the circle of the given radius around c,
// starting in direction dir and turning by sweep radians.
func (r *Rasteriser) addArc(c vec.Vec2, radius float64, dir vec.Vec2, sweep float64, withStart bool) {
	devRadius := max(
		r.deviceLength(vec.Vec2{X: radius}),
		r.deviceLength(vec.Vec2{Y: radius}),
	)
	n := 1
	if devRadius > r.Flatness {
		// the sagitta of a chord spanning step radians is r(1-cos(step/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 {
			n = max(1, int(math.Ceil(math.Abs(sweep)/step)))
		}
	}

	i := 1
	if withStart {
		i = 0
	}
	for ; i <= n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		u := vec.Vec2{X: dir.X*cos - dir.Y*sin, Y: dir.X*sin + dir.Y*cos}
		r.polys = append(r.polys, c.Add(u.Mul(radius)))
	}
}

func (r *Rasteriser) beginPoly() {
	r.polyStarts = append(r.polyStarts, len(r.polys))
}

// endPoly drops degenerate polygons and gives all others positive
// orientation.
func (r *Rasteriser) endPoly() {
	k := len(r.polyStarts) - 1
	poly := r.polys[r.polyStarts[k]:]
	if len(poly) < 3 {
		r.polys = r.polys[:r.polyStarts[k]]
		r.polyStarts = r.polyStarts[:k]
		return
	}

	var area float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		area += a.X*b.Y - a.Y*b.X
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
}
