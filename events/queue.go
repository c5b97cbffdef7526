// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO freelist-based event queue, with one
// instance per window. Producers (the windowing callbacks) and the
// consumer (the frame loop) may run on different goroutines.
// It must be initialized using [Queue.Init] before use.
type Queue struct {
	head atomic.Pointer[queueNode]
	tail atomic.Pointer[queueNode]
	len  atomic.Uint64
}

type queueNode struct {
	next atomic.Pointer[queueNode]
	v    Event
}

var queueNodePool = sync.Pool{
	New: func() any { return &queueNode{} },
}

// Init initializes the queue.
func (q *Queue) Init() {
	head := &queueNode{}
	q.head.Store(head)
	q.tail.Store(head)
}

// Len returns the number of events in the queue.
func (q *Queue) Len() int {
	return int(q.len.Load())
}

// Send adds an event to the end of the queue.
func (q *Queue) Send(ev Event) {
	n := queueNodePool.Get().(*queueNode)
	n.next.Store(nil)
	n.v = ev

	for {
		last := q.tail.Load()
		lastnext := last.next.Load()
		if q.tail.Load() != last {
			continue
		}
		if lastnext != nil {
			q.tail.CompareAndSwap(last, lastnext)
			continue
		}
		if last.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(last, n)
			q.len.Add(1)
			return
		}
	}
}

// Next removes and returns the next event in the queue. It returns a
// zero Event and false if the queue is empty.
func (q *Queue) Next() (Event, bool) {
	for {
		first := q.head.Load()
		last := q.tail.Load()
		firstnext := first.next.Load()
		if first != q.head.Load() {
			continue
		}
		if first == last {
			if firstnext == nil {
				return Event{}, false
			}
			q.tail.CompareAndSwap(last, firstnext)
			continue
		}
		v := firstnext.v
		if q.head.CompareAndSwap(first, firstnext) {
			q.len.Add(^uint64(0))
			queueNodePool.Put(first)
			return v, true
		}
	}
}

// Drain appends all queued events to the given batch, preserving
// arrival order, and returns the batch.
func (q *Queue) Drain(b *Batch) *Batch {
	for {
		ev, ok := q.Next()
		if !ok {
			return b
		}
		b.Events = append(b.Events, ev)
	}
}
