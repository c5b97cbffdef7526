// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaping

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnworks/kiln/math32"
)

// fakeShape measures 8px per rune, 16px tall, ignoring wrap.
func fakeShape(text string, font FontID, size float32, wrap float32) Result {
	return Result{Size: math32.Vec2(float32(8*len(text)), 16), Lines: 1}
}

func TestKeyBucketing(t *testing.T) {
	// widths within one 4px bucket share a key
	a := NewKey(1, 16, "hi", 400)
	b := NewKey(1, 16, "hi", 401)
	assert.Equal(t, a, b)

	// different buckets differ
	c := NewKey(1, 16, "hi", 408)
	assert.NotEqual(t, a, c)

	// unbounded (0) never equals any positive width
	unb := NewKey(1, 16, "hi", 0)
	tiny := NewKey(1, 16, "hi", 1)
	assert.NotEqual(t, unb, tiny)
	assert.Equal(t, int32(0), unb.WrapBucket)
	assert.GreaterOrEqual(t, tiny.WrapBucket, int32(1))
}

func TestKeyContent(t *testing.T) {
	assert.NotEqual(t, NewKey(1, 16, "abc", 0), NewKey(1, 16, "abd", 0))
	assert.NotEqual(t, NewKey(1, 16, "abc", 0), NewKey(1, 17, "abc", 0))
	assert.NotEqual(t, NewKey(1, 16, "abc", 0), NewKey(2, 16, "abc", 0))
}

func TestRequestProcessTake(t *testing.T) {
	c := NewCache()
	id := c.RequestShape("hello", 1, 16, 0)
	_, ok := c.TakeCompleted(id)
	assert.False(t, ok, "not complete before Process")

	assert.Equal(t, 1, c.Process(fakeShape))
	e, ok := c.TakeCompleted(id)
	require.True(t, ok)
	assert.Equal(t, "hello", e.Text)
	assert.Equal(t, float32(40), e.Result.Size.X)

	// taken once
	_, ok = c.TakeCompleted(id)
	assert.False(t, ok)
}

func TestCacheHit(t *testing.T) {
	c := NewCache()
	id := c.RequestShape("hello", 1, 16, 100)
	c.Process(fakeShape)
	c.TakeCompleted(id)

	// second request completes immediately without Process
	id2 := c.RequestShape("hello", 1, 16, 101) // same bucket
	e, ok := c.TakeCompleted(id2)
	require.True(t, ok)
	assert.Equal(t, 2, e.RenderCount)

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
}

func TestPruneByVersion(t *testing.T) {
	c := NewCache()
	id := c.RequestShape("old", 1, 16, 0)
	c.Process(fakeShape)
	c.TakeCompleted(id)

	c.BumpVersion()
	id = c.RequestShape("new", 1, 16, 0)
	c.Process(fakeShape)
	c.TakeCompleted(id)

	removed := c.Prune(1)
	assert.Equal(t, 1, removed)
	assert.Nil(t, c.Get(NewKey(1, 16, "old", 0)))
	assert.NotNil(t, c.Get(NewKey(1, 16, "new", 0)))
}

func TestHitRateAfterWarmup(t *testing.T) {
	c := NewCache()
	warm := make([]string, 90)
	for i := range warm {
		warm[i] = fmt.Sprintf("warm-%d", i)
		c.RequestShape(warm[i], 1, 16, 400)
	}
	c.Process(fakeShape)
	st0 := c.Stats()

	for iter := range 1000 {
		for _, s := range warm {
			c.RequestShape(s, 1, 16, 400)
		}
		for j := range 10 {
			c.RequestShape(fmt.Sprintf("fresh-%d-%d", iter, j), 1, 16, 400)
		}
		c.Process(fakeShape)
	}
	st := c.Stats()
	hits := st.Hits - st0.Hits
	total := (st.Hits + st.Misses) - (st0.Hits + st0.Misses)
	assert.GreaterOrEqual(t, float64(hits)/float64(total), 0.9)
}

func TestStatsPending(t *testing.T) {
	c := NewCache()
	c.RequestShape("a", 1, 16, 0)
	assert.Equal(t, 1, c.Stats().Pending)
	c.Process(fakeShape)
	assert.Equal(t, 0, c.Stats().Pending)
	assert.Equal(t, 1, c.Stats().Entries)
}
