// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import "reflect"

// EventKind is the kind of an asset change [Event].
type EventKind int32

const (
	// Created is emitted when an entry first becomes Ready.
	Created EventKind = iota

	// Modified is emitted when a reload replaces a Ready entry's
	// value and bumps its version.
	Modified

	// Removed is emitted when the server drops an unreferenced entry.
	Removed

	// LoadFailed is emitted when a loader returns an error.
	LoadFailed
)

var eventKindNames = []string{"Created", "Modified", "Removed", "LoadFailed"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is one asset change notification. Events accumulate on the
// server and are observed, in emission order, by a single
// [Server.DrainEvents] pass.
type Event struct {
	// Kind is the change kind.
	Kind EventKind

	// Handle is the asset's handle. For Removed events the slot is
	// already stale and only identifies which entry went away.
	Handle Handle

	// Type is the asset's output type.
	Type reflect.Type

	// Version is the entry version after the change, for Created and
	// Modified.
	Version uint32

	// Message is the diagnostic for LoadFailed events.
	Message string
}
