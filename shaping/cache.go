// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaping

import (
	"sync"

	"github.com/kilnworks/kiln/math32"
)

// Glyph is one positioned glyph in a shaped run.
type Glyph struct {
	// ID is the glyph index in the font.
	ID uint32

	// Pos is the pen position of the glyph relative to the run origin.
	Pos math32.Vector2

	// Advance is the pen advance after this glyph.
	Advance float32

	// Cluster is the rune index this glyph maps back to.
	Cluster int32
}

// Result is the output of a shape function: the measured extent and
// the positioned glyph stream.
type Result struct {
	Size   math32.Vector2
	Glyphs []Glyph
	Lines  int
}

// ShapeFunc turns text plus font, size, and wrap constraints into a
// shaped [Result]. The wrap width is 0 for unbounded.
type ShapeFunc func(text string, font FontID, size float32, wrap float32) Result

// Entry is a cached shaped text, shared by reference across frames.
type Entry struct {
	// Key is the cache key this entry is stored under.
	Key Key

	// Text is a copy of the shaped content.
	Text string

	// Result is the shaped output.
	Result Result

	// Version is the cache shape-version the entry was last touched
	// at; [Cache.Prune] removes entries below a threshold.
	Version uint32

	// RenderCount is the number of times the entry has been used.
	RenderCount int
}

// RequestID identifies a pending shape request.
type RequestID uint64

type request struct {
	id   RequestID
	key  Key
	text string
	font FontID
	size float32
	wrap float32
}

// Stats are cache diagnostics exposed for middleware overlays.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
	Pending int
}

// HitRate returns hits / (hits + misses), or 0 before any lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is the shaped-text cache and request pipeline. Requests are
// queued with [Cache.RequestShape], processed by [Cache.Process]
// (synchronously or from a worker), and retrieved with
// [Cache.TakeCompleted]. All methods are safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*Entry
	pending   []request
	completed map[RequestID]*Entry
	nextID    RequestID
	version   uint32
	hits      uint64
	misses    uint64
}

// NewCache returns an empty shaping cache.
func NewCache() *Cache {
	return &Cache{
		entries:   map[Key]*Entry{},
		completed: map[RequestID]*Entry{},
	}
}

// Version returns the current shape-version.
func (c *Cache) Version() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// BumpVersion advances the shape-version; typically called once per
// frame so [Cache.Prune] can expire entries by age windows.
func (c *Cache) BumpVersion() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
}

// RequestShape queues a shape request and returns its id. If the key
// is already cached, the entry is touched and completed immediately
// (a hit); otherwise the request is pending until [Cache.Process].
func (c *Cache) RequestShape(text string, font FontID, size float32, wrap float32) RequestID {
	key := NewKey(font, size, text, wrap)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.touch(e)
		c.completed[id] = e
		return id
	}
	c.misses++
	c.pending = append(c.pending, request{
		id: id, key: key, text: text, font: font, size: size, wrap: wrap,
	})
	return id
}

func (c *Cache) touch(e *Entry) {
	e.Version = c.version
	e.RenderCount++
}

// Process shapes all pending requests with the given shape function
// and returns the number processed. Shaping runs outside the lock;
// requests deduplicated onto the same key share one shape call.
func (c *Cache) Process(shape ShapeFunc) int {
	c.mu.Lock()
	reqs := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, rq := range reqs {
		c.mu.Lock()
		e, ok := c.entries[rq.key]
		c.mu.Unlock()
		if !ok {
			// shape against the bucketed wrap so every member of the
			// bucket is visually equivalent
			res := shape(rq.text, rq.font, rq.size, rq.key.BucketedWrap())
			e = &Entry{Key: rq.key, Text: rq.text, Result: res}
		}
		c.mu.Lock()
		if existing, ok := c.entries[rq.key]; ok {
			e = existing
		} else {
			c.entries[rq.key] = e
		}
		c.touch(e)
		c.completed[rq.id] = e
		c.mu.Unlock()
	}
	return len(reqs)
}

// TakeCompleted returns and removes the completed entry for the given
// request id, or nil and false if it is not complete.
func (c *Cache) TakeCompleted(id RequestID) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.completed[id]
	if ok {
		delete(c.completed, id)
	}
	return e, ok
}

// Get returns the cached entry for the given key without touching it,
// or nil.
func (c *Cache) Get(key Key) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

// Prune removes entries whose version is below the given threshold
// and returns the number removed. Callers holding *Entry pointers keep
// their data; pruning only drops the cache's reference.
func (c *Cache) Prune(minVersion uint32) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if e.Version < minVersion {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: len(c.entries),
		Pending: len(c.pending),
	}
}
