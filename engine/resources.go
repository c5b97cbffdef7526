// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "reflect"

// Resources is a typed key-value container: one value per Go type.
// Values are stored boxed behind pointers so [GetMut] can hand out
// in-place mutable access. Access is main-thread only, like the rest
// of the engine state.
type Resources struct {
	m map[reflect.Type]any
}

// NewResources returns an empty container.
func NewResources() *Resources {
	return &Resources{m: map[reflect.Type]any{}}
}

// Set stores v, replacing any existing value of the same type, and
// returns the prior value if there was one.
func Set[T any](r *Resources, v T) (prior T, replaced bool) {
	t := reflect.TypeFor[T]()
	if old, ok := r.m[t]; ok {
		prior, replaced = *old.(*T), true
	}
	r.m[t] = &v
	return
}

// Get returns a copy of the stored value of type T.
func Get[T any](r *Resources) (T, bool) {
	if v, ok := r.m[reflect.TypeFor[T]()]; ok {
		return *v.(*T), true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the stored value of type T for in-place
// mutation.
func GetMut[T any](r *Resources) (*T, bool) {
	if v, ok := r.m[reflect.TypeFor[T]()]; ok {
		return v.(*T), true
	}
	return nil, false
}

// Remove deletes the value of type T, reporting whether one existed.
func Remove[T any](r *Resources) bool {
	t := reflect.TypeFor[T]()
	_, ok := r.m[t]
	delete(r.m, t)
	return ok
}

// Contains reports whether a value of type T is stored.
func Contains[T any](r *Resources) bool {
	_, ok := r.m[reflect.TypeFor[T]()]
	return ok
}

// GetOrDefault returns a pointer to the stored value of type T,
// inserting the zero value first if absent.
func GetOrDefault[T any](r *Resources) *T {
	t := reflect.TypeFor[T]()
	if v, ok := r.m[t]; ok {
		return v.(*T)
	}
	v := new(T)
	r.m[t] = v
	return v
}

// Len returns the number of stored resources.
func (r *Resources) Len() int { return len(r.m) }
