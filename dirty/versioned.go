// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dirty

// Versioned pairs a value with a 32-bit wrapping version that is
// bumped only when the value actually changes, so cache consumers can
// compare a stored version to detect staleness. Equal-value writes are
// silent.
type Versioned[T comparable] struct {
	value   T
	version uint32
}

// NewVersioned returns a Versioned holding the given initial value at
// version 0.
func NewVersioned[T comparable](value T) Versioned[T] {
	return Versioned[T]{value: value}
}

// Get returns the current value.
func (v *Versioned[T]) Get() T {
	return v.value
}

// Version returns the current version.
func (v *Versioned[T]) Version() uint32 {
	return v.version
}

// Set assigns the given value and bumps the version iff it differs
// from the current value. It reports whether the value changed.
func (v *Versioned[T]) Set(value T) bool {
	if v.value == value {
		return false
	}
	v.value = value
	v.version++ // wrapping
	return true
}

// IsNewerThan reports whether the current version differs from the
// given cached version. Versions wrap, so only inequality is
// meaningful.
func (v *Versioned[T]) IsNewerThan(cached uint32) bool {
	return v.version != cached
}
