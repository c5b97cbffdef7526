// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"reflect"

	"github.com/kilnworks/kiln/base/slotmap"
)

// Handle is a stable, copyable reference to an asset entry: a
// generational slot plus the asset's output type and the source path
// fingerprint. Handles are comparable and hashable lookup keys;
// copying one is cheap. A handle stays valid across reloads and
// failures; it goes stale only when the server drops the entry.
type Handle struct {
	// Slot is the generational slot of the entry in the server.
	Slot slotmap.Slot

	// Type is the asset's output type.
	Type reflect.Type

	// Path is the source name fingerprint, for diagnostics and
	// watcher mapping.
	Path string
}

// IsZero reports whether this is the zero (never valid) handle.
func (h Handle) IsZero() bool {
	return h.Slot.IsZero()
}

// Is reports whether the handle's output type is T.
func Is[T any](h Handle) bool {
	return h.Type == reflect.TypeFor[T]()
}

func (h Handle) String() string {
	t := "nil"
	if h.Type != nil {
		t = h.Type.String()
	}
	return "asset<" + t + ">:" + h.Path
}
