// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for asset operations. IO and loader errors wrap
// these with the attempted path and the underlying cause.
var (
	// ErrNotFound means the asset source does not exist.
	ErrNotFound = errors.New("asset not found")

	// ErrNoLoader means no registered loader matches the requested
	// output type and file extension.
	ErrNoLoader = errors.New("no loader for type and extension")

	// ErrLoader means a loader failed to parse the source.
	ErrLoader = errors.New("loader error")

	// ErrInvalidHandle means the handle is stale (the entry was
	// removed) or was never issued by this server.
	ErrInvalidHandle = errors.New("invalid asset handle")

	// ErrTypeMismatch means the handle's type does not match the
	// requested type.
	ErrTypeMismatch = errors.New("asset type mismatch")

	// ErrNotReady means the asset is still loading or failed.
	ErrNotReady = errors.New("asset not ready")

	// ErrLoaderCollision means two loaders claim the same extension
	// for the same output type.
	ErrLoaderCollision = errors.New("loader extension collision")
)

// ioError wraps an IO failure with the attempted path.
func ioError(path string, err error) error {
	return fmt.Errorf("asset io %q: %w", path, err)
}

// loaderError wraps a loader failure with the path and diagnostic.
func loaderError(path string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrLoader, path, err)
}
