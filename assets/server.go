// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets provides the asset server: a concurrent, type-erased
// content store addressed by typed generational handles, with
// pluggable loaders keyed by file extension, async loading on a task
// pool, change-detection events, and a filesystem watcher bridge that
// coalesces bursts of notifications into reload requests.
package assets

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kilnworks/kiln/base/slotmap"
	"github.com/kilnworks/kiln/base/tasks"
)

// State is the lifecycle state of an asset entry.
type State int32

const (
	// Unloaded means the entry exists but no load has started.
	Unloaded State = iota

	// Loading means a loader task is in flight.
	Loading

	// Ready means the entry holds a loaded value.
	Ready

	// Failed means the most recent load returned an error.
	Failed
)

type entryKey struct {
	src string
	typ reflect.Type
}

type entry struct {
	source  Source
	typ     reflect.Type
	state   State
	value   any
	err     error
	version uint32
	epoch   uint32
	refs    int

	// done is closed when the entry leaves Loading; replaced at the
	// start of each load so waiters always observe the current load.
	done chan struct{}
}

// Server is the asset store. All entry-map mutation is serialized by
// one lock; loader execution happens outside it, on the caller or the
// task pool. The server is safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	base     string
	pool     *tasks.Pool
	ownPool  bool
	entries  slotmap.Arena[*entry]
	byKey    map[entryKey]slotmap.Slot
	inFlight map[entryKey]bool
	loaders  []Loader
	events   []Event
}

// NewServer returns a server resolving relative paths under the given
// base directory, running async loads on the given pool. A nil pool
// makes the server create and own a default-sized one.
func NewServer(base string, pool *tasks.Pool) *Server {
	own := false
	if pool == nil {
		pool = tasks.NewPool(0)
		own = true
	}
	return &Server{
		base:     base,
		pool:     pool,
		ownPool:  own,
		byKey:    map[entryKey]slotmap.Slot{},
		inFlight: map[entryKey]bool{},
	}
}

// Base returns the base directory for path sources.
func (s *Server) Base() string {
	return s.base
}

// Close releases the server's own task pool, if it created one.
// Entries and handles remain readable.
func (s *Server) Close() {
	if s.ownPool {
		s.pool.Release()
	}
}

// readSource returns the raw bytes of the given source. IO errors
// carry the attempted path.
func (s *Server) readSource(src Source) ([]byte, error) {
	switch src.Kind {
	case FromBlob:
		return src.Data, nil
	case FromSynthetic:
		return nil, ioError(src.Name, ErrNotFound)
	}
	path := filepath.Join(s.base, filepath.FromSlash(src.Name))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ioError(path, ErrNotFound)
		}
		return nil, ioError(path, err)
	}
	return data, nil
}

// handleFor returns the handle for the given slot and entry.
func handleFor(slot slotmap.Slot, e *entry) Handle {
	return Handle{Slot: slot, Type: e.typ, Path: e.source.Name}
}

// ensure returns the slot and entry for the given (source, type),
// creating an Unloaded entry if none exists. Caller holds the lock.
func (s *Server) ensure(src Source, typ reflect.Type) (slotmap.Slot, *entry, bool) {
	key := entryKey{src.key(), typ}
	if slot, ok := s.byKey[key]; ok {
		return slot, *s.entries.Get(slot), true
	}
	e := &entry{source: src, typ: typ, state: Unloaded}
	slot := s.entries.Add(e)
	s.byKey[key] = slot
	return slot, e, false
}

// beginLoad transitions the entry to Loading and claims the in-flight
// token. It returns false if a load is already in flight for the key.
// Caller holds the lock.
func (s *Server) beginLoad(e *entry) bool {
	key := entryKey{e.source.key(), e.typ}
	if s.inFlight[key] {
		return false
	}
	s.inFlight[key] = true
	e.state = Loading
	e.done = make(chan struct{})
	return true
}

// finishLoad records a load result, emits the event, and releases the
// in-flight token and waiters. Caller holds the lock.
func (s *Server) finishLoad(slot slotmap.Slot, e *entry, value any, err error) {
	key := entryKey{e.source.key(), e.typ}
	delete(s.inFlight, key)
	done := e.done
	e.done = nil
	defer func() {
		if done != nil {
			close(done)
		}
	}()

	if err != nil {
		e.state = Failed
		e.err = err
		s.events = append(s.events, Event{
			Kind: LoadFailed, Handle: handleFor(slot, e),
			Type: e.typ, Message: err.Error(),
		})
		return
	}
	e.state = Ready
	e.value = value
	e.err = nil
	e.version++
	kind := Created
	if e.version > 1 {
		kind = Modified
		e.epoch++
	}
	s.events = append(s.events, Event{
		Kind: kind, Handle: handleFor(slot, e),
		Type: e.typ, Version: e.version,
	})
}

// runLoad reads and parses the source for the entry, outside the lock,
// and then records the result under it.
func (s *Server) runLoad(slot slotmap.Slot, e *entry, ld *Loader) {
	data, err := s.readSource(e.source)
	var value any
	if err == nil {
		value, err = ld.Load(data, e.source)
		if err != nil {
			err = loaderError(e.source.Name, err)
		}
	}
	s.mu.Lock()
	s.finishLoad(slot, e, value, err)
	s.mu.Unlock()
}

// load is the shared load path. If async, the loader runs on the pool;
// otherwise it runs on the caller, and an already-in-flight load is
// waited for.
func (s *Server) load(src Source, typ reflect.Type, async bool) (Handle, error) {
	s.mu.Lock()
	slot, e, existed := s.ensure(src, typ)
	e.refs++
	h := handleFor(slot, e)

	if existed && (e.state == Ready || e.state == Failed) {
		s.mu.Unlock()
		return h, e.err
	}
	if e.state == Loading {
		done := e.done
		s.mu.Unlock()
		if !async {
			<-done
		}
		return h, nil
	}

	ld, err := s.findLoader(typ, src.Ext())
	if err != nil {
		s.beginLoad(e)
		s.finishLoad(slot, e, nil, err)
		s.mu.Unlock()
		return h, err
	}
	s.beginLoad(e)
	s.mu.Unlock()

	if async {
		s.pool.Run(func() { s.runLoad(slot, e, ld) })
		return h, nil
	}
	s.runLoad(slot, e, ld)
	s.mu.Lock()
	err = e.err
	s.mu.Unlock()
	return h, err
}

// LoadSync loads the asset at the given relative path as type T,
// blocking until the load completes. The returned handle is valid even
// when the load failed; the error describes the failure.
func LoadSync[T any](s *Server, path string) (Handle, error) {
	return s.load(PathSource(path), reflect.TypeFor[T](), false)
}

// LoadAsync returns a handle immediately in the Loading state and
// completes the load on the task pool. Concurrent requests for the
// same (source, type) return the same handle, and exactly one loader
// task runs per key.
func LoadAsync[T any](s *Server, path string) Handle {
	h, _ := s.load(PathSource(path), reflect.TypeFor[T](), true)
	return h
}

// Insert stores a hand-built asset for the given source and returns
// its handle. The entry is immediately Ready at version 1; inserting
// over an existing entry replaces the value and bumps the version.
func Insert[T any](s *Server, src Source, value T) Handle {
	typ := reflect.TypeFor[T]()
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, e, _ := s.ensure(src, typ)
	e.refs++
	if s.beginLoad(e) {
		s.finishLoad(slot, e, value, nil)
		return handleFor(slot, e)
	}
	// a loader task is in flight for this key; record the inserted
	// value now and let the task's own result land after it
	e.state = Ready
	e.value = value
	e.err = nil
	e.version++
	kind := Created
	if e.version > 1 {
		kind = Modified
	}
	s.events = append(s.events, Event{
		Kind: kind, Handle: handleFor(slot, e), Type: typ, Version: e.version,
	})
	return handleFor(slot, e)
}

// Get returns the asset value for the given handle, or the zero value
// and false if the handle is stale, of the wrong type, or the entry is
// not Ready.
func Get[T any](s *Server, h Handle) (T, bool) {
	var zero T
	if h.Type != nil && h.Type != reflect.TypeFor[T]() {
		return zero, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := s.entries.Get(h.Slot)
	if ep == nil {
		return zero, false
	}
	e := *ep
	if e.typ != reflect.TypeFor[T]() || e.state != Ready {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// IsReady reports whether the asset for the given handle is Ready.
func (s *Server) IsReady(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := s.entries.Get(h.Slot)
	return ep != nil && (*ep).state == Ready
}

// State returns the entry state for the given handle and whether the
// handle is valid.
func (s *Server) State(h Handle) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := s.entries.Get(h.Slot)
	if ep == nil {
		return Unloaded, false
	}
	return (*ep).state, true
}

// Version returns the entry's version counter, or 0 and false for a
// stale handle. Versions start at 1 on first Ready.
func (s *Server) Version(h Handle) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := s.entries.Get(h.Slot)
	if ep == nil {
		return 0, false
	}
	return (*ep).version, true
}

// Err returns the recorded load error for the given handle, if any.
func (s *Server) Err(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := s.entries.Get(h.Slot)
	if ep == nil {
		return ErrInvalidHandle
	}
	return (*ep).err
}

// Retain increments the handle's reference count, for cloned handles
// whose lifetime outlives the original.
func (s *Server) Retain(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ep := s.entries.Get(h.Slot); ep != nil {
		(*ep).refs++
	}
}

// Release decrements the handle's reference count. When the count
// reaches zero and no load is in flight, the entry is dropped and a
// Removed event is emitted; the handle and all copies become stale.
func (s *Server) Release(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := s.entries.Get(h.Slot)
	if ep == nil {
		return
	}
	e := *ep
	e.refs--
	if e.refs > 0 || e.state == Loading {
		return
	}
	s.entries.Remove(h.Slot)
	delete(s.byKey, entryKey{e.source.key(), e.typ})
	s.events = append(s.events, Event{Kind: Removed, Handle: h, Type: e.typ})
}

// Reload re-runs the loader for the given handle's source, bumping the
// version and emitting Modified on success, or recording Failed and
// emitting LoadFailed. A reload already in flight for the key makes
// Reload a no-op, preserving the one-loader-per-key invariant; reload
// is idempotent as the watcher requires. Only path sources can reload.
func (s *Server) Reload(h Handle) error {
	s.mu.Lock()
	ep := s.entries.Get(h.Slot)
	if ep == nil {
		s.mu.Unlock()
		return ErrInvalidHandle
	}
	e := *ep
	if !e.source.IsPath() {
		s.mu.Unlock()
		return nil
	}
	ld, err := s.findLoader(e.typ, e.source.Ext())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.beginLoad(e) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.runLoad(h.Slot, e, ld)
	s.mu.Lock()
	err = e.err
	s.mu.Unlock()
	return err
}

// DrainEvents returns all accumulated events, in emission order, and
// clears the buffer. Events are observed by exactly one drain pass.
func (s *Server) DrainEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	evs := s.events
	s.events = nil
	return evs
}

// WaitAll blocks until every given handle has left the Loading state,
// returning the first load error encountered, if any.
func (s *Server) WaitAll(hs ...Handle) error {
	var g errgroup.Group
	for _, h := range hs {
		s.mu.Lock()
		ep := s.entries.Get(h.Slot)
		if ep == nil {
			s.mu.Unlock()
			return ErrInvalidHandle
		}
		done := (*ep).done
		s.mu.Unlock()
		g.Go(func() error {
			if done != nil {
				<-done
			}
			return s.Err(h)
		})
	}
	return g.Wait()
}
