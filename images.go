// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"github.com/gogpu/paving/internal/imageio"
)

// LoadImages decodes brick photographs. Each path is an image file or a
// directory whose image files are loaded in name order. PNG, JPEG, GIF,
// WebP, BMP and TIFF are supported.
func LoadImages(paths ...string) (ImageSet, error) {
	images, err := imageio.LoadAll(paths...)
	if err != nil {
		return nil, err
	}
	return ImageSet(images), nil
}
