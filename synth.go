// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"fmt"
	"image"
	"iter"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/paving/internal/workers"
)

// seedStream is the second PCG word paired with a WithSeed seed.
const seedStream = 0x9e3779b97f4a7c15

// Synthesizer rasterizes brick textures.
//
// A Synthesizer is NOT safe for concurrent use: its random source is
// shared by every call. Session serializes access for concurrent callers.
type Synthesizer struct {
	opts options
	pool *workers.Pool
}

// NewSynthesizer creates a Synthesizer configured by opts.
func NewSynthesizer(opts ...Option) *Synthesizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded && o.rnd == nil {
		o.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Synthesizer{opts: o}
	if o.workers > 1 {
		s.pool = workers.New(o.workers)
	}
	return s
}

// Close stops the worker goroutines started by WithWorkers. The
// Synthesizer keeps working afterwards on the calling goroutine.
func (s *Synthesizer) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// random returns the generator for one synthesis call.
func (s *Synthesizer) random() *rand.Rand {
	if s.opts.seeded {
		return rand.New(rand.NewPCG(s.opts.seed, seedStream))
	}
	return s.opts.rnd
}

// Synthesize redraws canvas from scratch and updates binding to match.
//
// The canvas keeps its longer side and takes the aspect ratio of the first
// image (2:1 when images is empty). With a non-nil view the repeat factor
// is derived from the camera so bricks keep a stable world-space size;
// otherwise p.Repeat is used. The canvas is cleared to the background
// color, the bricks are laid out following p.Bond, and the binding gets
// the global offset, rotation and pivot.
//
// The only error is a *ConfigurationError for an unsupported camera,
// reported before the canvas is touched. Degraded input (no images,
// unknown bond, out-of-range values) never fails. binding may be nil.
func (s *Synthesizer) Synthesize(binding *TextureBinding, canvas *Canvas, view *View, p Parameters, images ImageSet) error {
	if canvas == nil {
		return fmt.Errorf("%w: nil canvas", ErrInvalidDimensions)
	}
	log := Logger()

	aspect := aspectRatioOf(images)
	width, height := FitAspect(canvas.Width(), canvas.Height(), aspect)

	repeat := r2.Vec{X: fixedRepeat(p.Repeat), Y: fixedRepeat(p.Repeat)}
	if view != nil {
		r, err := view.repeatFor(s.opts.referenceLength, width, height)
		if err != nil {
			return err
		}
		repeat = r
	}

	if err := canvas.Resize(width, height); err != nil {
		return err
	}
	canvas.Clear(s.opts.background)

	p = p.effective()
	if !p.Bond.Valid() {
		log.Warn("paving: unknown bond, canvas left blank", "bond", p.Bond)
	}
	if len(images) == 0 {
		log.Warn("paving: empty image set, painting fallback color")
	}

	painter := cellPainter{
		dst:      canvas.Image(),
		interp:   s.opts.interp,
		fallback: image.NewUniform(s.opts.fallback),
	}
	cells := s.paintAll(&painter, LayoutCells(width, height, aspect, p), p, images)

	version := canvas.commit()
	if binding != nil {
		binding.apply(repeat, p, version)
	}

	log.Debug("paving: texture synthesized",
		"bond", p.Bond,
		"width", width,
		"height", height,
		"repeat_x", repeat.X,
		"repeat_y", repeat.Y,
		"cells", cells,
		"version", version,
	)
	return nil
}

// paintAll paints every cell and returns the number painted. Images are
// picked in layout order before any painting so the result does not
// depend on scheduling.
func (s *Synthesizer) paintAll(painter *cellPainter, cells iter.Seq[Cell], p Parameters, images ImageSet) int {
	rnd := s.random()
	if s.pool == nil {
		n := 0
		for c := range cells {
			painter.paint(images.pick(rnd), c, p)
			n++
		}
		return n
	}

	var jobs []func()
	for c := range cells {
		src := images.pick(rnd)
		jobs = append(jobs, func() { painter.paint(src, c, p) })
	}
	s.pool.Run(jobs)
	return len(jobs)
}

// fixedRepeat sanitizes a caller-supplied repeat factor.
func fixedRepeat(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 1
	}
	return r
}
