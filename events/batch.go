// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Batch is the set of events drained from a window's queue for one
// frame, dispatched in arrival order.
type Batch struct {
	Events []Event
}

// Reset empties the batch, preserving capacity.
func (b *Batch) Reset() {
	b.Events = b.Events[:0]
}

// Dispatch calls the given handler for each event in order. A handler
// returning [Consumed] stops propagation of that event to any further
// dispatch (the event is removed from the batch); [Handled] and
// [Ignored] leave it in place for subsequent dispatchers.
func (b *Batch) Dispatch(handler func(ev *Event) Status) {
	kept := b.Events[:0]
	for i := range b.Events {
		status := handler(&b.Events[i])
		if status != Consumed {
			kept = append(kept, b.Events[i])
		}
	}
	b.Events = kept
}

// HasCloseRequest reports whether the batch still contains an
// unconsumed close request.
func (b *Batch) HasCloseRequest() bool {
	for i := range b.Events {
		if b.Events[i].Type == CloseRequest {
			return true
		}
	}
	return false
}
