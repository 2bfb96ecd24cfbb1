// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera describes the projection the textured surface is viewed through.
// Only *PerspectiveCamera and *OrthographicCamera support world/pixel
// conversion; any other implementation is a configuration error.
type Camera interface {
	Kind() string
}

// PerspectiveCamera is a camera looking down the z axis.
type PerspectiveCamera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Distance is the camera's distance from the textured plane.
	Distance float64
}

// Kind implements Camera.
func (*PerspectiveCamera) Kind() string { return "perspective" }

// OrthographicCamera is described by its world-space frustum extents.
type OrthographicCamera struct {
	Left, Right, Top, Bottom float64
}

// Kind implements Camera.
func (*OrthographicCamera) Kind() string { return "orthographic" }

// View is the camera context of one synthesis call.
type View struct {
	Camera Camera
	// Viewport is the renderer size in pixels.
	Viewport r2.Vec
}

// PixelsPerUnit returns how many viewport pixels one world unit covers.
func (v View) PixelsPerUnit() (float64, error) {
	switch cam := v.Camera.(type) {
	case *OrthographicCamera:
		if cam == nil {
			return 0, &ConfigurationError{Camera: "<nil> orthographic"}
		}
		w := cam.Right - cam.Left
		h := cam.Top - cam.Bottom
		return min(v.Viewport.X/w, v.Viewport.Y/h), nil
	case *PerspectiveCamera:
		if cam == nil {
			return 0, &ConfigurationError{Camera: "<nil> perspective"}
		}
		fov := cam.FOV * math.Pi / 180
		h := 2 * math.Tan(fov/2) * math.Abs(cam.Distance)
		return v.Viewport.Y / h, nil
	case nil:
		return 0, &ConfigurationError{Camera: "<nil>"}
	default:
		return 0, &ConfigurationError{Camera: fmt.Sprintf("%s (%T)", cam.Kind(), cam)}
	}
}

// WorldToPixel converts a world-space length to viewport pixels.
func (v View) WorldToPixel(length float64) (float64, error) {
	ppu, err := v.PixelsPerUnit()
	if err != nil {
		return 0, err
	}
	return length * ppu, nil
}

// PixelToWorld converts a viewport length in pixels to world units.
func (v View) PixelToWorld(pixels float64) (float64, error) {
	ppu, err := v.PixelsPerUnit()
	if err != nil {
		return 0, err
	}
	return pixels / ppu, nil
}

// repeatFor returns the per-axis tile count that makes referenceLength
// world units span whole copies of a width×height canvas.
func (v View) repeatFor(referenceLength float64, width, height int) (r2.Vec, error) {
	px, err := v.WorldToPixel(referenceLength)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Vec{
		X: tileCount(px / float64(width)),
		Y: tileCount(px / float64(height)),
	}, nil
}

// tileCount rounds a repeat factor up to a whole, finite count of at least 1.
func tileCount(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 1 {
		return 1
	}
	return math.Ceil(r)
}
