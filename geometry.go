// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import "math"

// defaultAspectRatio is used when no source image is available.
const defaultAspectRatio = 2.0

// CellSize returns the brick cell size for a canvas holding rows×cols
// bricks of the given aspect ratio (width/height).
//
// Wide or square images fill the rows exactly, tall images fill the
// columns, so the placed image keeps its proportions.
func CellSize(canvasWidth, canvasHeight, aspectRatio float64, rows, cols int) (width, height float64) {
	if aspectRatio >= 1 {
		height = canvasHeight / float64(rows)
		width = height * aspectRatio
		return width, height
	}
	width = canvasWidth / float64(cols)
	height = width / aspectRatio
	return width, height
}

// FitAspect returns the canvas size that keeps the longer side of
// (width, height) and matches aspectRatio.
func FitAspect(width, height int, aspectRatio float64) (int, int) {
	long := max(width, height)
	if aspectRatio > 1 {
		return long, max(1, int(math.Round(float64(long)/aspectRatio)))
	}
	return max(1, int(math.Round(float64(long)*aspectRatio))), long
}

// aspectRatioOf returns the width/height ratio of the first image, or the
// default when the set is empty or the image is degenerate.
func aspectRatioOf(images ImageSet) float64 {
	if len(images) == 0 {
		return defaultAspectRatio
	}
	b := images[0].Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return defaultAspectRatio
	}
	return float64(b.Dx()) / float64(b.Dy())
}
