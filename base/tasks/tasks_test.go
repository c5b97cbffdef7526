// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tasks

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitWait(t *testing.T) {
	p := NewPool(2)
	defer p.Release()
	tk := p.Submit(func() error { return nil })
	assert.NoError(t, tk.Wait())

	werr := errors.New("boom")
	tk = p.Submit(func() error { return werr })
	assert.ErrorIs(t, tk.Wait(), werr)
}

func TestReleaseDrains(t *testing.T) {
	p := NewPool(4)
	var n atomic.Int64
	for range 100 {
		p.Run(func() { n.Add(1) })
	}
	p.Release()
	assert.Equal(t, int64(100), n.Load())
	assert.Equal(t, 0, p.Pending())
	p.Release() // second release is a no-op
}

func TestRunAfterRelease(t *testing.T) {
	p := NewPool(1)
	p.Release()
	require.Panics(t, func() { p.Run(func() {}) })
}

func TestDefaultSize(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultSize(), 1)
}
