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

// Package parallel runs closures on a fixed number of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues a job.  It blocks while all workers are busy and
	// the queue is full.
	WorkerFunc func(func())

	// WaitFunc waits for the queued jobs.  If done is true, no more jobs
	// may be queued afterwards.
	WaitFunc func(done bool)

	// CancelFunc stops accepting jobs.  It may be called more than once.
	CancelFunc func()
)

// Pool is a set of worker goroutines fed from a shared queue.
type Pool struct {
	wg      sync.WaitGroup
	pending sync.WaitGroup

	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start launches numWorkers goroutines.  If numWorkers is less than one,
// GOMAXPROCS workers are used.  With a single worker, jobs run on the
// calling goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	workChan := make(chan func(), numWorkers)

	pool.wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer pool.wg.Done()
			for {
				f, ok := <-workChan
				if !ok {
					return
				}
				f()
				pool.pending.Done()
			}
		}()
	}

	pool.Cancel = sync.OnceFunc(func() {
		close(workChan)
	})

	pool.Do = func(f func()) {
		pool.pending.Add(1)
		workChan <- f
	}

	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
			pool.wg.Wait()
			return
		}
		pool.pending.Wait()
	}

	return pool
}
