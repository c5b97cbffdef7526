// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/image/draw"
	yaml "gopkg.in/yaml.v3"
)

// RegisterDefaultLoaders registers the built-in loaders: text, raw
// bytes, decoded images, and TOML/YAML configuration tables.
func RegisterDefaultLoaders(s *Server) error {
	if err := RegisterTextLoader(s, "txt", "md", "wgsl", "json", "csv"); err != nil {
		return err
	}
	if err := RegisterBytesLoader(s, "bin", "ttf", "otf"); err != nil {
		return err
	}
	if err := RegisterImageLoader(s, "png", "jpg", "jpeg"); err != nil {
		return err
	}
	return RegisterConfigLoaders(s)
}

// RegisterTextLoader registers a loader producing string assets for
// the given extensions.
func RegisterTextLoader(s *Server, exts ...string) error {
	return RegisterLoader(s, func(data []byte, src Source) (string, error) {
		return string(data), nil
	}, exts...)
}

// RegisterBytesLoader registers a loader producing raw []byte assets.
func RegisterBytesLoader(s *Server, exts ...string) error {
	return RegisterLoader(s, func(data []byte, src Source) ([]byte, error) {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}, exts...)
}

// RegisterImageLoader registers a loader decoding images into RGBA
// form ready for texture upload.
func RegisterImageLoader(s *Server, exts ...string) error {
	return RegisterLoader(s, func(data []byte, src Source) (*image.RGBA, error) {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba, nil
		}
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		return rgba, nil
	}, exts...)
}

// Config is a generic configuration table loaded from TOML or YAML.
type Config map[string]any

// RegisterConfigLoaders registers TOML and YAML loaders producing
// [Config] assets, so applications can hot-reload configuration.
func RegisterConfigLoaders(s *Server) error {
	if err := RegisterLoader(s, func(data []byte, src Source) (Config, error) {
		var c Config
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	}, "toml"); err != nil {
		return err
	}
	return RegisterLoader(s, func(data []byte, src Source) (Config, error) {
		var c Config
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	}, "yaml", "yml")
}
