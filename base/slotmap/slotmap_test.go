// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGet(t *testing.T) {
	a := &Arena[string]{}
	s := a.Add("hello")
	require.NotNil(t, a.Get(s))
	assert.Equal(t, "hello", *a.Get(s))
	assert.Equal(t, 1, a.Len())
	assert.True(t, a.Contains(s))
}

func TestRemoveInvalidates(t *testing.T) {
	a := &Arena[int]{}
	s := a.Add(42)
	v, ok := a.Remove(s)
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Nil(t, a.Get(s))
	assert.Equal(t, 0, a.Len())

	// reuse of the index must not revive the old slot
	s2 := a.Add(7)
	assert.Equal(t, s.Index, s2.Index)
	assert.NotEqual(t, s.Generation, s2.Generation)
	assert.Nil(t, a.Get(s))
	require.NotNil(t, a.Get(s2))
	assert.Equal(t, 7, *a.Get(s2))
}

func TestDoubleRemove(t *testing.T) {
	a := &Arena[int]{}
	s := a.Add(1)
	_, ok := a.Remove(s)
	require.True(t, ok)
	_, ok = a.Remove(s)
	assert.False(t, ok)
	assert.Equal(t, 0, a.Len())
}

func TestLIFOReuse(t *testing.T) {
	a := &Arena[int]{}
	s0 := a.Add(0)
	s1 := a.Add(1)
	a.Remove(s0)
	a.Remove(s1)
	// most recently freed index comes back first
	s2 := a.Add(2)
	assert.Equal(t, s1.Index, s2.Index)
}

func TestZeroSlot(t *testing.T) {
	a := &Arena[int]{}
	var s Slot
	assert.True(t, s.IsZero())
	assert.Nil(t, a.Get(s))
	a.Add(3)
	assert.Nil(t, a.Get(s)) // generation 0 never matches
}

func TestRange(t *testing.T) {
	a := &Arena[int]{}
	a.Add(1)
	s := a.Add(2)
	a.Add(3)
	a.Remove(s)
	sum := 0
	a.Range(func(s Slot, v *int) bool {
		sum += *v
		return true
	})
	assert.Equal(t, 4, sum)
}

func TestSlotLess(t *testing.T) {
	assert.True(t, Slot{Index: 1, Generation: 5}.Less(Slot{Index: 2, Generation: 1}))
	assert.True(t, Slot{Index: 1, Generation: 1}.Less(Slot{Index: 1, Generation: 2}))
	assert.False(t, Slot{Index: 1, Generation: 2}.Less(Slot{Index: 1, Generation: 2}))
}
