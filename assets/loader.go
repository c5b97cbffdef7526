// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"fmt"
	"reflect"
	"strings"
)

// Loader parses raw source bytes into one asset output type, for a set
// of file extensions. Loaders are registered on the server; dispatch
// is by extension to the loader whose output type matches the
// requested handle type.
type Loader struct {
	// Type is the output type the loader produces.
	Type reflect.Type

	// Exts are the lower-case file extensions, without dots, the
	// loader claims.
	Exts []string

	// Load parses the data. The source is provided for diagnostics
	// and relative resolution.
	Load func(data []byte, src Source) (any, error)
}

// RegisterLoader registers a typed loader for the given extensions.
// Two loaders claiming the same extension for the same output type is
// a registration error.
func RegisterLoader[T any](s *Server, load func(data []byte, src Source) (T, error), exts ...string) error {
	typ := reflect.TypeFor[T]()
	norm := make([]string, len(exts))
	for i, ext := range exts {
		norm[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ld := range s.loaders {
		if ld.Type != typ {
			continue
		}
		for _, have := range ld.Exts {
			for _, ext := range norm {
				if have == ext {
					return fmt.Errorf("%w: %q for %v", ErrLoaderCollision, ext, typ)
				}
			}
		}
	}
	s.loaders = append(s.loaders, Loader{
		Type: typ,
		Exts: norm,
		Load: func(data []byte, src Source) (any, error) {
			return load(data, src)
		},
	})
	return nil
}

// findLoader returns the loader producing the given type for the given
// extension. Caller holds the lock.
func (s *Server) findLoader(typ reflect.Type, ext string) (*Loader, error) {
	for i := range s.loaders {
		ld := &s.loaders[i]
		if ld.Type != typ {
			continue
		}
		for _, have := range ld.Exts {
			if have == ext {
				return ld, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %v / %q", ErrNoLoader, typ, ext)
}
