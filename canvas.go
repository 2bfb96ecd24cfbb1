// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync/atomic"

	"github.com/gogpu/paving/internal/imageio"
)

// DefaultCanvasSize is the side of a canvas created without a size.
const DefaultCanvasSize = 256

// Canvas is the destination raster of a synthesis.
//
// Every Synthesize call overwrites it completely and then bumps Version.
// Readers (a preview, a texture upload) should compare Version with the
// value they last consumed instead of assuming the buffer is stable.
//
// Canvas is NOT safe for concurrent writes. Session adds the locking needed
// to share one with other goroutines.
type Canvas struct {
	img     *image.RGBA
	version atomic.Uint64
}

// NewCanvas creates a canvas. Non-positive dimensions fall back to
// DefaultCanvasSize.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = DefaultCanvasSize
	}
	if height <= 0 {
		height = DefaultCanvasSize
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.Width(), c.Height()
}

// Image returns the live pixel buffer.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Version returns the number of completed syntheses.
func (c *Canvas) Version() uint64 {
	return c.version.Load()
}

// Resize changes the canvas dimensions, discarding its content.
// It is a no-op if the size is unchanged.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if c.Width() == width && c.Height() == height {
		return nil
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Clear fills the entire canvas with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// commit publishes the current content and returns the new version.
func (c *Canvas) commit() uint64 {
	return c.version.Add(1)
}

// Snapshot returns a copy of the pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Rect)
	copy(out.Pix, c.img.Pix)
	return out
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return imageio.EncodePNG(w, c.img)
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return imageio.SavePNG(path, c.img)
}
