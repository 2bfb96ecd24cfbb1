// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewTextureBinding(t *testing.T) {
	b := NewTextureBinding()
	if b.WrapS != gputypes.AddressModeClampToEdge || b.WrapT != gputypes.AddressModeClampToEdge {
		t.Errorf("initial wrap = %v/%v, want clamp to edge", b.WrapS, b.WrapT)
	}
	if b.Repeat != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("initial repeat = %v, want {1 1}", b.Repeat)
	}
	if b.NeedsUpdate || b.GenerateMipmaps {
		t.Error("initial binding flags set")
	}
}

func TestMarkUploaded(t *testing.T) {
	b := NewTextureBinding()
	b.apply(r2.Vec{X: 2, Y: 2}, Parameters{}, 3)
	if !b.NeedsUpdate {
		t.Fatal("apply did not request an upload")
	}
	b.MarkUploaded()
	if b.NeedsUpdate {
		t.Error("MarkUploaded did not clear NeedsUpdate")
	}
	if b.Version != 3 {
		t.Errorf("Version = %d, want 3", b.Version)
	}
}

func TestSamplerDescriptor(t *testing.T) {
	b := NewTextureBinding()
	d := b.SamplerDescriptor()
	if d.AddressModeU != gputypes.AddressModeClampToEdge || d.MipmapFilter != gputypes.MipmapFilterModeNearest {
		t.Errorf("initial sampler = %+v", d)
	}

	b.apply(r2.Vec{X: 2, Y: 2}, Parameters{}, 1)
	d = b.SamplerDescriptor()
	if d.AddressModeU != gputypes.AddressModeRepeat || d.AddressModeV != gputypes.AddressModeRepeat {
		t.Errorf("sampler wrap = %v/%v, want repeat", d.AddressModeU, d.AddressModeV)
	}
	if d.MagFilter != gputypes.FilterModeLinear || d.MinFilter != gputypes.FilterModeLinear {
		t.Errorf("sampler filters = %v/%v, want linear", d.MagFilter, d.MinFilter)
	}
	if d.MipmapFilter != gputypes.MipmapFilterModeLinear {
		t.Errorf("mipmap filter = %v, want linear", d.MipmapFilter)
	}
}

func TestTextureDescriptor(t *testing.T) {
	b := NewTextureBinding()
	d := b.TextureDescriptor(256, 128)
	if d.MipLevelCount != 1 {
		t.Errorf("mip levels without mipmaps = %d, want 1", d.MipLevelCount)
	}
	if d.Size.Width != 256 || d.Size.Height != 128 {
		t.Errorf("size = %+v, want 256x128", d.Size)
	}
	if d.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", d.Format)
	}

	b.GenerateMipmaps = true
	d = b.TextureDescriptor(256, 128)
	if d.MipLevelCount != 9 {
		t.Errorf("mip levels = %d, want 9", d.MipLevelCount)
	}
	if d.Usage&gputypes.TextureUsageRenderAttachment == 0 {
		t.Error("mipmapped texture lacks render attachment usage")
	}
}

func TestMipLevelCount(t *testing.T) {
	tests := []struct {
		w, h int
		want uint32
	}{
		{1, 1, 1},
		{2, 1, 2},
		{256, 256, 9},
		{300, 17, 9},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := mipLevelCount(tt.w, tt.h); got != tt.want {
			t.Errorf("mipLevelCount(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestUVTransformIdentity(t *testing.T) {
	got := NewTextureBinding().UVTransform()
	want := f64.Aff3{1, 0, 0, 0, 1, 0}
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Fatalf("UVTransform() = %v, want %v", got, want)
		}
	}
}

// gradient returns a 4×4 canvas whose texel (x, y) has R=x and G=y.
func gradient() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 0xff})
		}
	}
	return img
}

func TestSample(t *testing.T) {
	img := gradient()
	tests := []struct {
		name   string
		b      TextureBinding
		u, v   float64
		wx, wy uint8
	}{
		{"origin is bottom left", TextureBinding{Repeat: r2.Vec{X: 1, Y: 1}}, 0.1, 0.1, 0, 3},
		{"top right", TextureBinding{Repeat: r2.Vec{X: 1, Y: 1}}, 0.9, 0.9, 3, 0},
		{"clamped", TextureBinding{Repeat: r2.Vec{X: 1, Y: 1}}, 1.7, -0.4, 3, 3},
		{
			"repeat wraps",
			TextureBinding{WrapS: gputypes.AddressModeRepeat, WrapT: gputypes.AddressModeRepeat, Repeat: r2.Vec{X: 2, Y: 2}},
			0.6, 0.1, 0, 3,
		},
		{
			"offset",
			TextureBinding{WrapS: gputypes.AddressModeRepeat, WrapT: gputypes.AddressModeRepeat, Repeat: r2.Vec{X: 1, Y: 1}, Offset: r2.Vec{X: 0.25}},
			0.1, 0.1, 1, 3,
		},
		{
			"half turn about the center",
			TextureBinding{
				WrapS: gputypes.AddressModeRepeat, WrapT: gputypes.AddressModeRepeat,
				Repeat: r2.Vec{X: 1, Y: 1}, Rotation: math.Pi, Center: r2.Vec{X: 0.5, Y: 0.5},
			},
			0.1, 0.1, 3, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.b.Sample(img, tt.u, tt.v)
			if got.R != tt.wx || got.G != tt.wy {
				t.Errorf("Sample(%v, %v) = texel (%d,%d), want (%d,%d)", tt.u, tt.v, got.R, got.G, tt.wx, tt.wy)
			}
		})
	}
}

func TestSampleEmpty(t *testing.T) {
	b := NewTextureBinding()
	if got := b.Sample(image.NewRGBA(image.Rectangle{}), 0.5, 0.5); got != (color.RGBA{}) {
		t.Errorf("Sample on empty image = %v", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		t    float64
		mode gputypes.AddressMode
		want float64
	}{
		{1.25, gputypes.AddressModeRepeat, 0.25},
		{-0.25, gputypes.AddressModeRepeat, 0.75},
		{1.25, gputypes.AddressModeMirrorRepeat, 0.75},
		{-0.25, gputypes.AddressModeMirrorRepeat, 0.25},
		{1.5, gputypes.AddressModeClampToEdge, 1},
		{-1, gputypes.AddressModeClampToEdge, 0},
	}
	for _, tt := range tests {
		if got := wrap(tt.t, tt.mode); math.Abs(got-tt.want) > epsilon {
			t.Errorf("wrap(%v, %v) = %v, want %v", tt.t, tt.mode, got, tt.want)
		}
	}
}
