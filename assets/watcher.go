// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher bridges filesystem change notifications to asset reloads.
// It watches a directory tree recursively, maps paths to the handles
// loaded from them, and coalesces bursts of notifications (editors
// that rewrite files as truncate+rename) into one reload per handle
// per poll. Delivery is at-least-once; [Server.Reload] is idempotent.
type Watcher struct {
	srv  *Server
	w    *fsnotify.Watcher
	done chan struct{}

	mu      sync.Mutex
	paths   map[string][]Handle
	pending []fsnotify.Event
}

// NewWatcher returns a watcher on the given directory tree, typically
// the server's base directory. Subdirectories are added to the watch
// recursively, including ones created later.
func NewWatcher(srv *Server, dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		srv:   srv,
		w:     fw,
		done:  make(chan struct{}),
		paths: map[string][]Handle{},
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, err
	}
	go w.listen()
	return w, nil
}

// listen accumulates raw notifications until the next [Watcher.Poll].
// Underlying watcher errors are logged and discarded; the watcher is
// not restarted.
func (w *Watcher) listen() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				w.addIfDir(ev.Name) // new directories join the recursive watch
			}
			w.mu.Lock()
			w.pending = append(w.pending, ev)
			w.mu.Unlock()
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			slog.Error("assets.Watcher", "err", err)
		}
	}
}

func (w *Watcher) addIfDir(path string) {
	st, err := os.Stat(path)
	if err != nil || !st.IsDir() {
		return
	}
	if err := w.w.Add(path); err != nil {
		slog.Error("assets.Watcher: add dir", "path", path, "err", err)
	}
}

// Track associates the given absolute or watch-relative path with the
// given handle, so notifications for the path enqueue its reload.
// Multiple handles may share a path (the same file loaded as different
// types).
func (w *Watcher) Track(path string, h Handle) {
	key := filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, have := range w.paths[key] {
		if have == h {
			return
		}
	}
	w.paths[key] = append(w.paths[key], h)
}

// TrackHandle associates the handle's own source path, resolved under
// the server base, with the handle.
func (w *Watcher) TrackHandle(h Handle) {
	w.Track(filepath.Join(w.srv.Base(), filepath.FromSlash(h.Path)), h)
}

// Poll drains pending notifications and returns the deduplicated list
// of handles to reload, sorted by (slot index, generation), plus the
// paths reported removed. Only modify and create notifications are
// actionable; N consecutive events for one path yield one reload.
func (w *Watcher) Poll() (reload []Handle, removed []string) {
	w.mu.Lock()
	pend := w.pending
	w.pending = nil
	for _, ev := range pend {
		key := filepath.Clean(ev.Name)
		switch {
		case ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create):
			reload = append(reload, w.paths[key]...)
		case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
			removed = append(removed, key)
		}
	}
	w.mu.Unlock()

	slices.SortFunc(reload, func(a, b Handle) int {
		if a.Slot == b.Slot {
			return 0
		}
		if a.Slot.Less(b.Slot) {
			return -1
		}
		return 1
	})
	reload = slices.Compact(reload)
	return reload, removed
}

// ProcessReloads polls and issues a reload for every affected handle,
// returning the number of reloads issued. Reload errors are recorded
// on the entries and surfaced as LoadFailed events, not returned.
func (w *Watcher) ProcessReloads() int {
	reload, _ := w.Poll()
	for _, h := range reload {
		if err := w.srv.Reload(h); err != nil {
			slog.Error("assets.Watcher: reload", "path", h.Path, "err", err)
		}
	}
	return len(reload)
}

// Notify injects a synthetic notification for the given path, for
// tests and manual reload triggering.
func (w *Watcher) Notify(path string, op fsnotify.Op) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, fsnotify.Event{Name: path, Op: op})
}

// Close stops the watcher. Existing handles are unaffected; reload
// notifications simply stop.
func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}
