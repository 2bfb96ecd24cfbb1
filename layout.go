// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"iter"
	"math"
)

// Cell is one brick placement on the canvas.
type Cell struct {
	Row, Col int

	// X, Y is the cell's top-left corner in canvas pixels.
	X, Y          float64
	Width, Height float64

	// Rotation is the brick's local rotation in degrees, clockwise.
	Rotation float64
}

// LayoutCells yields the cells covering a canvasWidth×canvasHeight canvas
// for p.Bond.
//
// Rows run from 0 to ceil(height/cellHeight) inclusive; columns run from
// the bond's left padding to ceil(width/cellWidth) inclusive, so staggered
// rows never leave an unpainted border. An unknown bond yields nothing.
func LayoutCells(canvasWidth, canvasHeight int, aspectRatio float64, p Parameters) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		l, ok := p.Bond.layout()
		if !ok {
			return
		}
		w, h := CellSize(float64(canvasWidth), float64(canvasHeight), aspectRatio, l.rows, l.cols)
		if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
			return
		}

		lastRow := int(math.Ceil(float64(canvasHeight) / h))
		lastCol := int(math.Ceil(float64(canvasWidth) / w))
		for row := 0; row <= lastRow; row++ {
			shift := l.stagger.offset(row, w)
			for col := -l.padCols; col <= lastCol; col++ {
				rot := p.LocalRotation
				if p.AlternateRotation && l.alternate.negate(row, col) {
					rot = -rot
				}
				c := Cell{
					Row:      row,
					Col:      col,
					X:        float64(col)*w + shift,
					Y:        float64(row) * h,
					Width:    w,
					Height:   h,
					Rotation: rot,
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}
