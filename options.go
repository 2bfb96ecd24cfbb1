// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"image/color"
	"math/rand/v2"

	"golang.org/x/image/draw"
)

// Option configures a Synthesizer during creation.
//
// Example:
//
//	// Reproducible output with nearest-neighbour sampling
//	s := paving.NewSynthesizer(
//	    paving.WithSeed(42),
//	    paving.WithInterpolator(draw.NearestNeighbor),
//	)
type Option func(*options)

// options holds optional configuration for a Synthesizer.
type options struct {
	seed            uint64
	seeded          bool
	rnd             *rand.Rand
	interp          draw.Interpolator
	fallback        color.Color
	background      color.Color
	referenceLength float64
	workers         int
}

// DefaultReferenceLength is the world-space length, in scene units, that
// a camera-derived repeat factor is computed for.
const DefaultReferenceLength = 10

// FallbackColor fills brick cells when no source image is loaded.
var FallbackColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// defaultOptions returns the default synthesizer options.
func defaultOptions() options {
	return options{
		interp:          draw.BiLinear,
		fallback:        FallbackColor,
		background:      color.Black,
		referenceLength: DefaultReferenceLength,
	}
}

// WithSeed makes every Synthesize call draw its per-brick image choices
// from a fresh generator seeded with seed, so identical inputs produce
// identical canvases.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
		o.rnd = nil
	}
}

// WithRand draws per-brick image choices from r. The stream advances
// across calls. A nil r restores the default time-seeded source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rnd = r
		o.seeded = false
	}
}

// WithInterpolator sets the resampling kernel used to scale and rotate
// brick images. The default is draw.BiLinear.
func WithInterpolator(interp draw.Interpolator) Option {
	return func(o *options) {
		if interp != nil {
			o.interp = interp
		}
	}
}

// WithFallbackColor sets the flat fill used when the image set is empty.
func WithFallbackColor(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.fallback = c
		}
	}
}

// WithBackground sets the color the canvas is cleared to before painting.
// It is what shows through mortar gaps. The default is opaque black.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.background = c
		}
	}
}

// WithReferenceLength sets the world-space length used to derive the
// repeat factor from a camera. Non-positive values are ignored.
func WithReferenceLength(units float64) Option {
	return func(o *options) {
		if units > 0 {
			o.referenceLength = units
		}
	}
}

// WithWorkers paints bricks on n goroutines. Cells never share pixels, so
// the output is identical to a single-threaded synthesis. Values below 2
// keep painting on the calling goroutine. Call Synthesizer.Close to stop
// the workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
