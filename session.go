// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"image"
	"io"
	"slices"
	"sync"
)

// Session holds the state of an interactive editing session: the loaded
// images, the current parameters and camera context, and the canvas and
// binding they produce. Every change re-synthesizes the canvas from
// scratch.
//
// Session is safe for concurrent use. Writers are serialized; readers see
// either the previous or the new canvas, never a partial one.
type Session struct {
	mu      sync.RWMutex
	synth   *Synthesizer
	canvas  *Canvas
	binding *TextureBinding
	images  ImageSet
	params  Parameters
	view    *View
}

// NewSession creates a session drawing with synth onto a fresh canvas of
// the given size. A nil synth gets a default Synthesizer.
func NewSession(synth *Synthesizer, width, height int) *Session {
	if synth == nil {
		synth = NewSynthesizer()
	}
	return &Session{
		synth:   synth,
		canvas:  NewCanvas(width, height),
		binding: NewTextureBinding(),
		params:  DefaultParameters(),
	}
}

// SetImages replaces the source images and re-synthesizes.
func (s *Session) SetImages(images ImageSet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = slices.Clone(images)
	return s.synthesize()
}

// SetView replaces the camera context (nil for a fixed repeat) and
// re-synthesizes.
func (s *Session) SetView(v *View) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v != nil {
		cp := *v
		v = &cp
	}
	s.view = v
	return s.synthesize()
}

// Update replaces the parameters and re-synthesizes.
func (s *Session) Update(p Parameters) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p.clone()
	return s.synthesize()
}

// synthesize redraws the canvas. Until an image has been loaded there is
// nothing to show, so it reports false without drawing.
func (s *Session) synthesize() (bool, error) {
	if len(s.images) == 0 {
		return false, nil
	}
	if err := s.synth.Synthesize(s.binding, s.canvas, s.view, s.params, s.images); err != nil {
		return false, err
	}
	return true, nil
}

// Parameters returns a copy of the current parameters.
func (s *Session) Parameters() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.clone()
}

// Binding returns a copy of the current texture binding.
func (s *Session) Binding() TextureBinding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.binding
}

// Version returns the canvas version.
func (s *Session) Version() uint64 {
	return s.canvas.Version()
}

// Snapshot returns a copy of the canvas and its version.
func (s *Session) Snapshot() (*image.RGBA, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canvas.Snapshot(), s.canvas.Version()
}

// EncodePNG writes the canvas as PNG and returns the version written.
func (s *Session) EncodePNG(w io.Writer) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canvas.Version(), s.canvas.EncodePNG(w)
}
