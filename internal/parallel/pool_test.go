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

package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllJobs(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)

		var n atomic.Int64
		for i := range 100 {
			pool.Do(func() {
				n.Add(int64(i))
			})
		}
		pool.Wait(true)

		if got := n.Load(); got != 4950 {
			t.Errorf("%d workers: sum = %d, want 4950", workers, got)
		}
	}
}

func TestPoolWaitKeepsAccepting(t *testing.T) {
	pool := Start(3)
	defer pool.Wait(true)

	var n atomic.Int64
	for range 10 {
		pool.Do(func() { n.Add(1) })
	}
	pool.Wait(false)
	if got := n.Load(); got != 10 {
		t.Fatalf("after first batch: %d jobs, want 10", got)
	}

	for range 5 {
		pool.Do(func() { n.Add(1) })
	}
	pool.Wait(false)
	if got := n.Load(); got != 15 {
		t.Errorf("after second batch: %d jobs, want 15", got)
	}
}

func TestPoolCancelTwice(t *testing.T) {
	pool := Start(2)
	pool.Cancel()
	pool.Cancel()
	pool.Wait(true)
}
