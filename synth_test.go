// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"
)

// fisheyeCamera is a camera kind the synthesizer cannot measure.
type fisheyeCamera struct{}

func (fisheyeCamera) Kind() string { return "fisheye" }

func nearest(opts ...Option) *Synthesizer {
	return NewSynthesizer(append([]Option{WithSeed(1), WithInterpolator(draw.NearestNeighbor)}, opts...)...)
}

func TestSynthesizeRunningScenario(t *testing.T) {
	canvas := NewCanvas(256, 256)
	binding := NewTextureBinding()
	p := Parameters{Bond: BondRunning, Repeat: 2}

	err := nearest().Synthesize(binding, canvas, nil, p, ImageSet{quadrantImage(100, 50)})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if w, h := canvas.Size(); w != 256 || h != 128 {
		t.Fatalf("canvas = %dx%d, want 256x128", w, h)
	}

	img := canvas.Image()
	for y := range 128 {
		for x := range 256 {
			want := quadrantColor(x%128, y%64, 128, 64)
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if canvas.Version() != 1 {
		t.Errorf("version = %d, want 1", canvas.Version())
	}
}

func TestSynthesizeGapShowsBackground(t *testing.T) {
	canvas := NewCanvas(256, 256)
	p := Parameters{Bond: BondRunning, GapWidth: 4}
	if err := nearest().Synthesize(nil, canvas, nil, p, ImageSet{solidImage(100, 50, red)}); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	img := canvas.Image()
	for y := range 128 {
		for x := range 256 {
			lx, ly := x%128, y%64
			inGap := lx < 2 || lx >= 126 || ly < 2 || ly >= 62
			want := red
			if inGap {
				want = black
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSynthesizeGridIgnoresGap(t *testing.T) {
	canvas := NewCanvas(256, 256)
	p := Parameters{Bond: BondGrid, GapWidth: 6}
	if err := nearest().Synthesize(nil, canvas, nil, p, ImageSet{solidImage(100, 50, red)}); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	img := canvas.Image()
	for _, pt := range [][2]int{{0, 0}, {127, 63}, {128, 64}, {255, 127}} {
		if got := img.RGBAAt(pt[0], pt[1]); got != red {
			t.Errorf("pixel %v = %v, want red", pt, got)
		}
	}
}

func TestSynthesizeCrossSeam(t *testing.T) {
	canvas := NewCanvas(256, 256)
	p := Parameters{Bond: BondCross}
	if err := nearest().Synthesize(nil, canvas, nil, p, ImageSet{quadrantImage(100, 50)}); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	img := canvas.Image()
	for y := range 128 {
		for x := range 256 {
			a := img.RGBAAt(x, y)
			b := img.RGBAAt((x+64)%256, (y+64)%128)
			if a != b {
				t.Fatalf("pixel (%d,%d) = %v but its half-brick neighbour = %v", x, y, a, b)
			}
		}
	}
	// Odd rows are shifted by half a brick.
	if got, want := img.RGBAAt(0, 64), quadrantColor(64, 0, 128, 64); got != want {
		t.Errorf("pixel (0,64) = %v, want %v", got, want)
	}
}

func TestSynthesizeIdempotentWithSeed(t *testing.T) {
	images := ImageSet{solidImage(40, 20, red), solidImage(40, 20, green), solidImage(40, 20, blue)}
	p := Parameters{Bond: BondThirds, GapWidth: 2, LocalRotation: 7, AlternateRotation: true}
	s := NewSynthesizer(WithSeed(99))

	a, b := NewCanvas(300, 300), NewCanvas(300, 300)
	if err := s.Synthesize(nil, a, nil, p, images); err != nil {
		t.Fatal(err)
	}
	if err := s.Synthesize(nil, b, nil, p, images); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Error("identical inputs produced different canvases")
	}

	// Re-synthesizing the same canvas overwrites it completely.
	before := a.Snapshot()
	if err := s.Synthesize(nil, a, nil, p, images); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before.Pix, a.Image().Pix) {
		t.Error("second synthesis onto the same canvas differs")
	}
}

func TestSynthesizeResize(t *testing.T) {
	tests := []struct {
		name         string
		canvasW      int
		canvasH      int
		images       ImageSet
		wantW, wantH int
	}{
		{"wide image", 256, 256, ImageSet{solidImage(100, 50, red)}, 256, 128},
		{"tall image on wide canvas", 300, 100, ImageSet{solidImage(50, 100, red)}, 150, 300},
		{"square image", 200, 120, ImageSet{solidImage(10, 10, red)}, 200, 200},
		{"no images uses 2:1", 512, 512, nil, 512, 256},
		{"first image decides", 256, 256, ImageSet{solidImage(30, 10, red), solidImage(10, 30, red)}, 256, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := NewCanvas(tt.canvasW, tt.canvasH)
			if err := nearest().Synthesize(nil, canvas, nil, DefaultParameters(), tt.images); err != nil {
				t.Fatal(err)
			}
			if w, h := canvas.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("canvas = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSynthesizeEmptyImageSet(t *testing.T) {
	canvas := NewCanvas(256, 256)
	binding := NewTextureBinding()
	if err := nearest().Synthesize(binding, canvas, nil, Parameters{Bond: BondRunning}, nil); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	img := canvas.Image()
	for y := range 128 {
		for x := range 256 {
			if got := img.RGBAAt(x, y); got != FallbackColor {
				t.Fatalf("pixel (%d,%d) = %v, want fallback", x, y, got)
			}
		}
	}
	if !binding.NeedsUpdate {
		t.Error("binding not flagged for upload")
	}
}

func TestSynthesizeUnknownBondLeavesBackground(t *testing.T) {
	canvas := NewCanvas(64, 64)
	binding := NewTextureBinding()
	s := nearest(WithBackground(blue))
	if err := s.Synthesize(binding, canvas, nil, Parameters{Bond: Bond(9)}, ImageSet{solidImage(10, 5, red)}); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	img := canvas.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+2] != 0xff {
			t.Fatalf("byte %d not background", i)
		}
	}
	if canvas.Version() != 1 || binding.Version != 1 {
		t.Errorf("canvas version %d, binding version %d, want 1 and 1", canvas.Version(), binding.Version)
	}
}

func TestSynthesizeUnsupportedCamera(t *testing.T) {
	canvas := NewCanvas(0, 0)
	binding := NewTextureBinding()
	view := &View{Camera: fisheyeCamera{}, Viewport: r2.Vec{X: 800, Y: 600}}

	err := nearest().Synthesize(binding, canvas, view, DefaultParameters(), ImageSet{solidImage(100, 50, red)})

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
	if !errors.Is(err, ErrUnsupportedCamera) {
		t.Errorf("error %v does not match ErrUnsupportedCamera", err)
	}
	if w, h := canvas.Size(); w != 256 || h != 256 {
		t.Errorf("canvas resized to %dx%d", w, h)
	}
	if canvas.Version() != 0 {
		t.Errorf("canvas version = %d, want 0", canvas.Version())
	}
	if diff := cmp.Diff(NewTextureBinding(), binding); diff != "" {
		t.Errorf("binding changed (-want +got):\n%s", diff)
	}
}

func TestSynthesizeCameraRepeat(t *testing.T) {
	view := &View{
		Camera:   &PerspectiveCamera{FOV: 90, Distance: 5},
		Viewport: r2.Vec{X: 800, Y: 600},
	}
	binding := NewTextureBinding()
	p := DefaultParameters()
	p.Repeat = 7 // ignored with a camera

	err := nearest().Synthesize(binding, NewCanvas(256, 256), view, p, ImageSet{solidImage(100, 50, red)})
	if err != nil {
		t.Fatal(err)
	}
	// 10 units at 60 px/unit = 600 px over a 256x128 canvas.
	if diff := cmp.Diff(r2.Vec{X: 3, Y: 5}, binding.Repeat); diff != "" {
		t.Errorf("repeat mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeFixedRepeat(t *testing.T) {
	tests := []struct {
		repeat float64
		want   float64
	}{
		{2, 2},
		{0.5, 0.5},
		{0, 1},
		{-3, 1},
		{math.NaN(), 1},
		{math.Inf(1), 1},
	}
	for _, tt := range tests {
		binding := NewTextureBinding()
		p := Parameters{Bond: BondGrid, Repeat: tt.repeat}
		if err := nearest().Synthesize(binding, NewCanvas(32, 32), nil, p, nil); err != nil {
			t.Fatal(err)
		}
		if binding.Repeat.X != tt.want || binding.Repeat.Y != tt.want {
			t.Errorf("repeat %v: binding repeat = %v, want %v", tt.repeat, binding.Repeat, tt.want)
		}
	}
}

func TestSynthesizeBinding(t *testing.T) {
	p := Parameters{
		Bond:           BondRunning,
		GlobalOffsetX:  250,
		GlobalOffsetY:  -500,
		GlobalRotation: 90,
		UVCenter:       &r2.Vec{X: 0.5, Y: 0.5},
		Repeat:         3,
	}
	binding := NewTextureBinding()
	if err := nearest().Synthesize(binding, NewCanvas(64, 64), nil, p, ImageSet{solidImage(4, 2, red)}); err != nil {
		t.Fatal(err)
	}

	want := &TextureBinding{
		WrapS:           gputypes.AddressModeRepeat,
		WrapT:           gputypes.AddressModeRepeat,
		Repeat:          r2.Vec{X: 3, Y: 3},
		Offset:          r2.Vec{X: 0.25, Y: -0.5},
		Rotation:        math.Pi / 2,
		Center:          r2.Vec{X: 0.5, Y: 0.5},
		GenerateMipmaps: true,
		NeedsUpdate:     true,
		Version:         1,
	}
	if diff := cmp.Diff(want, binding, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("binding mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeNilCanvas(t *testing.T) {
	err := NewSynthesizer().Synthesize(nil, nil, nil, DefaultParameters(), nil)
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
}

func TestSynthesizeWithRand(t *testing.T) {
	images := ImageSet{solidImage(8, 4, red), solidImage(8, 4, green)}
	p := Parameters{Bond: BondRunning}
	render := func() []byte {
		s := NewSynthesizer(WithRand(rand.New(rand.NewPCG(3, 4))), WithInterpolator(draw.NearestNeighbor))
		c := NewCanvas(512, 512)
		if err := s.Synthesize(nil, c, nil, p, images); err != nil {
			t.Fatal(err)
		}
		return c.Image().Pix
	}
	if !bytes.Equal(render(), render()) {
		t.Error("equally seeded generators produced different canvases")
	}
}

func TestSynthesizeWithWorkers(t *testing.T) {
	images := ImageSet{quadrantImage(40, 20), solidImage(40, 20, green), solidImage(30, 15, blue)}
	p := Parameters{Bond: BondCross, GapWidth: 3, LocalRotation: 11, AlternateRotation: true, LocalOffsetX: 7}

	serial := NewSynthesizer(WithSeed(21))
	parallel := NewSynthesizer(WithSeed(21), WithWorkers(4))
	defer parallel.Close()

	a, b := NewCanvas(400, 400), NewCanvas(400, 400)
	if err := serial.Synthesize(nil, a, nil, p, images); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := parallel.Synthesize(nil, b, nil, p, images); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
			t.Fatal("parallel painting differs from serial painting")
		}
	}

	parallel.Close()
	if err := parallel.Synthesize(nil, b, nil, p, images); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Error("painting after Close differs")
	}
}

func TestSynthesizeWithWorkersOutOfRangeGap(t *testing.T) {
	images := ImageSet{solidImage(40, 20, red), solidImage(40, 20, green), solidImage(40, 20, blue)}
	for _, gap := range []float64{-20, math.NaN(), 500} {
		p := Parameters{Bond: BondRunning, GapWidth: gap, LocalRotation: 10}

		serial := NewSynthesizer(WithSeed(3))
		parallel := NewSynthesizer(WithSeed(3), WithWorkers(8))

		a, b := NewCanvas(256, 256), NewCanvas(256, 256)
		if err := serial.Synthesize(nil, a, nil, p, images); err != nil {
			t.Fatal(err)
		}
		for range 5 {
			if err := parallel.Synthesize(nil, b, nil, p, images); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
				t.Errorf("gap %v: parallel painting differs from serial painting", gap)
				break
			}
		}
		parallel.Close()
	}
}
