// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tasks provides a fixed-size worker pool used for asset
// loaders, file watching, and user-supplied background work. Tasks are
// not preemptively cancellable: a submitted task always runs to
// completion, and shutdown drains the queue cooperatively.
package tasks

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is a handle to a unit of work submitted to a [Pool]. Waiting on
// the handle blocks the caller until the task completes.
type Task struct {
	done chan struct{}
	err  error
}

// Wait blocks until the task has completed and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Done returns a channel that is closed when the task completes.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Pool is a fixed-size pool of worker goroutines. The zero value is
// not usable; use [NewPool]. All methods are safe for concurrent use.
type Pool struct {
	queue    chan func()
	wg       sync.WaitGroup
	shutdown atomic.Bool
	pending  atomic.Int64
}

// DefaultSize returns the default pool size: max(1, NumCPU - 1),
// leaving one CPU for the main thread.
func DefaultSize() int {
	return max(1, runtime.NumCPU()-1)
}

// NewPool returns a started pool with the given number of workers.
// If size <= 0, [DefaultSize] is used.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	p := &Pool{queue: make(chan func(), 256)}
	p.wg.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fun := range p.queue {
		fun()
		p.pending.Add(-1)
	}
}

// Run schedules the given function on the pool. It panics if the pool
// has been released.
func (p *Pool) Run(fun func()) {
	if p.shutdown.Load() {
		panic("tasks.Pool: Run after Release")
	}
	p.pending.Add(1)
	p.queue <- fun
}

// Submit schedules the given function and returns a [Task] handle that
// can be waited on for completion and the function's error.
func (p *Pool) Submit(fun func() error) *Task {
	t := &Task{done: make(chan struct{})}
	p.Run(func() {
		t.err = fun()
		close(t.done)
	})
	return t
}

// Pending returns the number of tasks queued or running.
func (p *Pool) Pending() int {
	return int(p.pending.Load())
}

// Release signals shutdown, waits for queued tasks to drain, and stops
// all workers. It is safe to call Release more than once.
func (p *Pool) Release() {
	if p.shutdown.Swap(true) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}
