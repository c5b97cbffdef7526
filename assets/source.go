// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"path/filepath"
	"strings"
)

// SourceKind discriminates asset sources.
type SourceKind int32

const (
	// FromPath is a filesystem path relative to the server's base
	// directory.
	FromPath SourceKind = iota

	// FromBlob is an in-memory blob with a display name.
	FromBlob

	// FromSynthetic is a synthetic identifier for hand-inserted
	// assets.
	FromSynthetic
)

// Source identifies where an asset comes from.
type Source struct {
	// Kind discriminates which fields are meaningful.
	Kind SourceKind

	// Name is the relative path (FromPath), display name (FromBlob),
	// or identifier (FromSynthetic).
	Name string

	// Data is the blob contents for FromBlob sources.
	Data []byte
}

// PathSource returns a filesystem source for the given relative path.
func PathSource(path string) Source {
	return Source{Kind: FromPath, Name: filepath.ToSlash(path)}
}

// BlobSource returns an in-memory source with the given display name.
func BlobSource(name string, data []byte) Source {
	return Source{Kind: FromBlob, Name: name, Data: data}
}

// SyntheticSource returns a synthetic source with the given id.
func SyntheticSource(id string) Source {
	return Source{Kind: FromSynthetic, Name: id}
}

// Ext returns the lower-case file extension of the source name,
// without the leading dot.
func (s Source) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(s.Name)), ".")
}

// IsPath reports whether this is a filesystem source, and thus
// reloadable from disk.
func (s Source) IsPath() bool {
	return s.Kind == FromPath
}

// key returns the dedupe key for this source within one asset type.
func (s Source) key() string {
	switch s.Kind {
	case FromBlob:
		return "blob:" + s.Name
	case FromSynthetic:
		return "synth:" + s.Name
	}
	return "path:" + s.Name
}

func (s Source) String() string {
	return s.key()
}
