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
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func matrixClose(a, b matrix.Matrix) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestMatrixStack(t *testing.T) {
	var s MatrixStack
	if s.Matrix() != matrix.Identity {
		t.Fatalf("zero MatrixStack has CTM %v", s.Matrix())
	}

	n := s.Save()
	if n != 0 {
		t.Errorf("first Save returned %d", n)
	}
	s.Translate(10, 20)
	s.Scale(2, 3)

	// user coordinates are scaled first, then translated
	x, y := s.Matrix().Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("(1,1) maps to (%g,%g), want (12,23)", x, y)
	}

	s.Save()
	s.Rotate(90)
	x, y = s.Matrix().Apply(1, 0)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-23) > 1e-9 {
		t.Errorf("rotated (1,0) maps to (%g,%g), want (10,23)", x, y)
	}

	s.RestoreToCount(n)
	if s.SaveCount() != 0 {
		t.Errorf("save count %d after RestoreToCount", s.SaveCount())
	}
	if s.Matrix() != matrix.Identity {
		t.Errorf("CTM not restored: %v", s.Matrix())
	}

	s.Restore()
	if s.Matrix() != matrix.Identity {
		t.Errorf("Restore on empty stack changed CTM to %v", s.Matrix())
	}
}

func TestConcatOrder(t *testing.T) {
	var s MatrixStack
	s.SetMatrix(matrix.Scale(2, 2))
	s.Concat(matrix.Translate(1, 0))

	// the concatenated matrix acts on user coordinates first
	want := matrix.Translate(1, 0).Mul(matrix.Scale(2, 2))
	if s.Matrix() != want {
		t.Errorf("CTM %v, want %v", s.Matrix(), want)
	}
	if x, y := s.Matrix().Apply(0, 0); x != 2 || y != 0 {
		t.Errorf("origin maps to (%g,%g), want (2,0)", x, y)
	}
}

func TestSingular(t *testing.T) {
	for _, m := range []matrix.Matrix{
		matrix.Identity,
		{2, 0, 0, 3, 5, -7},
		{0.6, 0.8, -0.8, 0.6, 1, 2},
		{1, 2, 3, 4, 5, 6},
	} {
		if Singular(m) {
			t.Errorf("%v reported singular", m)
			continue
		}
		if p := m.Mul(m.Inv()); !matrixClose(p, matrix.Identity) {
			t.Errorf("m * inv(m) = %v for %v", p, m)
		}
	}

	for _, m := range []matrix.Matrix{
		{1, 2, 2, 4, 0, 0},
		matrix.Scale(0, 1),
		{math.NaN(), 0, 0, 1, 0, 0},
	} {
		if !Singular(m) {
			t.Errorf("%v not reported singular", m)
		}
	}
}
