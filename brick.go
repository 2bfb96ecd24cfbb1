// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"image"
	"math"
	"math/rand/v2"

	"golang.org/x/image/draw"

	"github.com/gogpu/paving/internal/affine"
)

// ImageSet is the ordered set of brick photographs. Each cell picks one
// element uniformly at random. It is never modified by the synthesizer.
type ImageSet []image.Image

// pick returns a random element, or nil for an empty set.
func (s ImageSet) pick(rnd *rand.Rand) image.Image {
	switch len(s) {
	case 0:
		return nil
	case 1:
		return s[0]
	default:
		return s[rnd.IntN(len(s))]
	}
}

// neighbours are the nine placements, in cell units, drawn for every brick.
var neighbours = [9][2]float64{
	{0, 0},
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// cellPainter draws single bricks onto a destination raster.
type cellPainter struct {
	dst      *image.RGBA
	interp   draw.Interpolator
	fallback image.Image
}

// clipRect returns the pixels of c left after removing half the gap on
// every side. The cell edges snap to whole pixels first, shared with the
// neighbouring cells, then the same whole-pixel inset is taken from every
// edge. A negative gap counts as none; a gap wider than the cell leaves
// nothing.
func clipRect(c Cell, gap float64) image.Rectangle {
	x0, y0 := roundPx(c.X), roundPx(c.Y)
	x1, y1 := roundPx(c.X+c.Width), roundPx(c.Y+c.Height)
	inset := 0.0
	if gap > 0 {
		inset = math.Round(gap / 2)
	}
	if !(2*inset < float64(min(x1-x0, y1-y0))) {
		return image.Rectangle{}
	}
	d := int(inset)
	return image.Rectangle{
		Min: image.Pt(x0+d, y0+d),
		Max: image.Pt(x1-d, y1-d),
	}
}

// paint draws src into cell c. Only pixels inside the gap-adjusted cell are
// touched; a nil or empty src paints the fallback fill instead.
func (cp *cellPainter) paint(src image.Image, c Cell, p Parameters) {
	clip := clipRect(c, p.GapWidth).Intersect(cp.dst.Rect)
	if clip.Empty() {
		return
	}
	// The sub-image shares coordinates with dst and bounds every write.
	dst := cp.dst.SubImage(clip).(*image.RGBA)

	if src == nil || src.Bounds().Empty() {
		draw.Draw(dst, clip, cp.fallback, image.Point{}, draw.Src)
		return
	}

	sr := src.Bounds()
	fit := affine.Translate(-float64(sr.Min.X), -float64(sr.Min.Y)).
		Then(affine.Scale(c.Width/float64(sr.Dx()), c.Height/float64(sr.Dy())))
	place := affine.RotateAt(c.Rotation*math.Pi/180, c.Width/2, c.Height/2).
		Then(affine.Translate(c.X, c.Y))

	ox := wrapOffset(p.LocalOffsetX, c.Width)
	oy := wrapOffset(p.LocalOffsetY, c.Height)
	for _, n := range neighbours {
		shift := affine.Translate(ox+n[0]*c.Width, oy+n[1]*c.Height)
		m := fit.Then(shift, place)
		cp.interp.Transform(dst, m.Aff3(), src, sr, draw.Over, nil)
	}
}

// wrapOffset reduces o into [-size/2, size/2), so offsets a whole cell
// apart draw the same copies and the copies stay centred on the cell.
func wrapOffset(o, size float64) float64 {
	o = math.Mod(o, size)
	switch {
	case math.IsNaN(o):
		return 0
	case o < -size/2:
		o += size
	case o >= size/2:
		o -= size
	}
	return o
}

func roundPx(v float64) int {
	return int(math.Round(v))
}
