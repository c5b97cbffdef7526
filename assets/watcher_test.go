// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, s *Server) *Watcher {
	t.Helper()
	w, err := NewWatcher(s, s.Base())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWatcherCoalesce(t *testing.T) {
	s := newTestServer(t)
	writeFile(t, s, "a.txt", "a")
	h, err := LoadSync[string](s, "a.txt")
	require.NoError(t, err)

	w := newTestWatcher(t, s)
	w.TrackHandle(h)

	// editors often emit several writes per save; one reload results
	path := filepath.Join(s.Base(), "a.txt")
	w.Notify(path, fsnotify.Write)
	w.Notify(path, fsnotify.Write)
	w.Notify(path, fsnotify.Create)

	reload, removed := w.Poll()
	require.Len(t, reload, 1)
	assert.Equal(t, h, reload[0])
	assert.Empty(t, removed)

	// polled notifications do not repeat
	reload, _ = w.Poll()
	assert.Empty(t, reload)
}

func TestWatcherSharedPath(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, RegisterBytesLoader(s, "txt"))
	writeFile(t, s, "a.txt", "a")

	hs, err := LoadSync[string](s, "a.txt")
	require.NoError(t, err)
	hb, err := LoadSync[[]byte](s, "a.txt")
	require.NoError(t, err)

	w := newTestWatcher(t, s)
	w.TrackHandle(hs)
	w.TrackHandle(hb)

	w.Notify(filepath.Join(s.Base(), "a.txt"), fsnotify.Write)
	reload, _ := w.Poll()
	require.Len(t, reload, 2)
	assert.True(t, reload[0].Slot.Less(reload[1].Slot))
}

func TestWatcherRemove(t *testing.T) {
	s := newTestServer(t)
	writeFile(t, s, "a.txt", "a")
	h, err := LoadSync[string](s, "a.txt")
	require.NoError(t, err)

	w := newTestWatcher(t, s)
	w.TrackHandle(h)

	path := filepath.Join(s.Base(), "a.txt")
	w.Notify(path, fsnotify.Remove)
	reload, removed := w.Poll()
	assert.Empty(t, reload)
	require.Len(t, removed, 1)
	assert.Equal(t, filepath.Clean(path), removed[0])
}

func TestWatcherUntracked(t *testing.T) {
	s := newTestServer(t)
	w := newTestWatcher(t, s)

	w.Notify(filepath.Join(s.Base(), "stranger.txt"), fsnotify.Write)
	reload, _ := w.Poll()
	assert.Empty(t, reload)
}

// TestWatcherHotReload drives the full pipeline: load a text asset,
// overwrite it on disk, let the watcher trigger the reload, and observe
// the Modified event at the bumped version.
func TestWatcherHotReload(t *testing.T) {
	s := newTestServer(t)
	writeFile(t, s, "readme.txt", "v1")

	h, err := LoadSync[string](s, "readme.txt")
	require.NoError(t, err)
	ver, _ := s.Version(h)
	assert.Equal(t, uint32(1), ver)

	evs := s.DrainEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, Created, evs[0].Kind)

	w := newTestWatcher(t, s)
	w.TrackHandle(h)

	writeFile(t, s, "readme.txt", "v2")

	// the OS notification is asynchronous; poll until it lands
	deadline := time.Now().Add(5 * time.Second)
	for w.ProcessReloads() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no filesystem notification arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}

	v, ok := Get[string](s, h)
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	ver, _ = s.Version(h)
	assert.Equal(t, uint32(2), ver)

	evs = s.DrainEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, Modified, evs[0].Kind)
	assert.Equal(t, uint32(2), evs[0].Version)
}

func TestWatcherNewSubdir(t *testing.T) {
	s := newTestServer(t)
	w := newTestWatcher(t, s)

	sub := filepath.Join(s.Base(), "textures")
	require.NoError(t, os.Mkdir(sub, 0777))
	// give the create notification time to land so the new directory
	// has joined the watch before the write below
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "grass.txt"), []byte("g"), 0666))

	h, err := LoadSync[string](s, "textures/grass.txt")
	require.NoError(t, err)
	w.TrackHandle(h)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "grass.txt"), []byte("g2"), 0666))

	deadline := time.Now().Add(5 * time.Second)
	for w.ProcessReloads() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no notification for file in new subdirectory")
		}
		time.Sleep(10 * time.Millisecond)
	}
	v, _ := Get[string](s, h)
	assert.Equal(t, "g2", v)
}
