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
	"math"

	"seehuhn.de/go/geom/matrix"
)

// MatrixStack implements the transformation part of [Surface].
// Surface implementations can embed it.  The zero value holds the
// identity matrix and an empty stack.
type MatrixStack struct {
	ctm   matrix.Matrix
	valid bool
	saved []matrix.Matrix
}

// Save implements the [Surface] interface.
func (s *MatrixStack) Save() int {
	n := len(s.saved)
	s.saved = append(s.saved, s.Matrix())
	return n
}

// Restore implements the [Surface] interface.
// Calling Restore on an empty stack has no effect.
func (s *MatrixStack) Restore() {
	n := len(s.saved)
	if n == 0 {
		return
	}
	s.SetMatrix(s.saved[n-1])
	s.saved = s.saved[:n-1]
}

// RestoreToCount implements the [Surface] interface.
func (s *MatrixStack) RestoreToCount(n int) {
	if n < 0 {
		n = 0
	}
	for len(s.saved) > n {
		s.Restore()
	}
}

// SaveCount returns the number of saved states.
func (s *MatrixStack) SaveCount() int {
	return len(s.saved)
}

// Translate implements the [Surface] interface.
func (s *MatrixStack) Translate(dx, dy float64) {
	s.Concat(matrix.Translate(dx, dy))
}

// Scale implements the [Surface] interface.
func (s *MatrixStack) Scale(sx, sy float64) {
	s.Concat(matrix.Scale(sx, sy))
}

// Rotate implements the [Surface] interface.  Positive angles turn the
// x axis towards the y axis, which is clockwise on screen.
func (s *MatrixStack) Rotate(degrees float64) {
	s.Concat(matrix.RotateDeg(degrees))
}

// Concat implements the [Surface] interface.
func (s *MatrixStack) Concat(m matrix.Matrix) {
	s.SetMatrix(m.Mul(s.Matrix()))
}

// Matrix implements the [Surface] interface.
func (s *MatrixStack) Matrix() matrix.Matrix {
	if !s.valid {
		return matrix.Identity
	}
	return s.ctm
}

// SetMatrix implements the [Surface] interface.
func (s *MatrixStack) SetMatrix(m matrix.Matrix) {
	s.ctm = m
	s.valid = true
}

// Singular reports whether m collapses the plane onto a line or a point,
// so that nothing drawn under m is visible and m.Inv would panic.
func Singular(m matrix.Matrix) bool {
	det := m[0]*m[3] - m[1]*m[2]
	return det == 0 || math.IsNaN(det) || math.IsInf(det, 0)
}
