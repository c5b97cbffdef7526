// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slotmap provides a generational slot arena: a dense store of
// values addressed by [Slot] keys that remain permanently invalid after
// the value they referred to is removed. Slots are the substrate for
// every stable cross-frame reference in the engine (asset handles, UI
// node ids), rejecting stale references in O(1) without scanning.
package slotmap

// Slot is a stable reference into an [Arena]: an index plus the
// generation the index had when the slot was issued. A Slot is valid
// iff the arena's entry at Index is occupied and still has the same
// generation. The zero Slot is never valid.
type Slot struct {
	// Index is the position of the entry in the arena.
	Index uint32

	// Generation is the generation of the entry when this slot was
	// issued. Generations start at 1, so the zero Slot never matches.
	Generation uint32
}

// IsZero reports whether this is the zero (never valid) Slot.
func (s Slot) IsZero() bool {
	return s.Generation == 0
}

// Less reports a total order over slots by (Index, Generation),
// which the asset watcher uses to coalesce reload candidates.
func (s Slot) Less(o Slot) bool {
	if s.Index != o.Index {
		return s.Index < o.Index
	}
	return s.Generation < o.Generation
}

type entry[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena is a generational slot arena holding values of type T.
// The zero value is ready to use. An Arena is not safe for concurrent
// use; callers that share one across goroutines must serialize access.
type Arena[T any] struct {
	entries []entry[T]

	// free holds indices available for reuse, in LIFO order for
	// cache locality.
	free []uint32

	count int
}

// Len returns the number of occupied slots.
func (a *Arena[T]) Len() int {
	return a.count
}

// Add stores the given value and returns a slot for it, reusing the
// most recently freed index if one is available.
func (a *Arena[T]) Add(value T) Slot {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		e := &a.entries[idx]
		e.value = value
		e.occupied = true
		return Slot{Index: idx, Generation: e.generation}
	}
	idx := uint32(len(a.entries))
	a.entries = append(a.entries, entry[T]{value: value, generation: 1, occupied: true})
	return Slot{Index: idx, Generation: 1}
}

// Get returns a pointer to the value for the given slot, or nil if the
// slot is stale or was never issued by this arena. The pointer remains
// valid only until the next Add, which may grow the backing store.
func (a *Arena[T]) Get(s Slot) *T {
	if int(s.Index) >= len(a.entries) {
		return nil
	}
	e := &a.entries[s.Index]
	if !e.occupied || e.generation != s.Generation {
		return nil
	}
	return &e.value
}

// Contains reports whether the given slot is currently valid.
func (a *Arena[T]) Contains(s Slot) bool {
	return a.Get(s) != nil
}

// Remove frees the slot, returning the former value and true, or the
// zero value and false if the slot was already invalid. The index is
// recycled with a bumped generation, so any outstanding copies of the
// slot fail all subsequent lookups. Removing an invalid slot is a no-op.
func (a *Arena[T]) Remove(s Slot) (T, bool) {
	var zero T
	if a.Get(s) == nil {
		return zero, false
	}
	e := &a.entries[s.Index]
	v := e.value
	e.value = zero
	e.occupied = false
	e.generation++ // wraps at 32 bits; collision after 2^32 reuses is accepted
	a.free = append(a.free, s.Index)
	a.count--
	return v, true
}

// Range calls the given function for every occupied slot. It stops if
// the function returns false. Values must not be added or removed
// during iteration.
func (a *Arena[T]) Range(fun func(s Slot, value *T) bool) {
	for i := range a.entries {
		e := &a.entries[i]
		if !e.occupied {
			continue
		}
		if !fun(Slot{Index: uint32(i), Generation: e.generation}, &e.value) {
			return
		}
	}
}
