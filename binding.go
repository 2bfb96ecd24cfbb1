// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/paving/internal/affine"
)

// globalOffsetScale converts GlobalOffsetX/Y into UV units.
const globalOffsetScale = 1000

// TextureBinding is the sampling configuration a renderer applies to the
// synthesized canvas.
type TextureBinding struct {
	WrapS, WrapT gputypes.AddressMode

	// Repeat is the number of canvas copies across the surface per axis.
	Repeat r2.Vec
	// Offset shifts the UV coordinates.
	Offset r2.Vec
	// Rotation turns the UV coordinates about Center, in radians.
	Rotation float64
	Center   r2.Vec

	GenerateMipmaps bool

	// NeedsUpdate is set by every synthesis; consumers clear it with
	// MarkUploaded once they re-upload the canvas.
	NeedsUpdate bool

	// Version is the canvas version this binding describes.
	Version uint64
}

// NewTextureBinding returns a binding in its initial, unsynthesized state.
func NewTextureBinding() *TextureBinding {
	return &TextureBinding{
		WrapS:  gputypes.AddressModeClampToEdge,
		WrapT:  gputypes.AddressModeClampToEdge,
		Repeat: r2.Vec{X: 1, Y: 1},
	}
}

// apply installs the post-synthesis sampling state.
func (b *TextureBinding) apply(repeat r2.Vec, p Parameters, version uint64) {
	b.WrapS = gputypes.AddressModeRepeat
	b.WrapT = gputypes.AddressModeRepeat
	b.Repeat = repeat
	b.Offset = r2.Vec{X: p.GlobalOffsetX / globalOffsetScale, Y: p.GlobalOffsetY / globalOffsetScale}
	b.Rotation = p.GlobalRotation * math.Pi / 180
	b.Center = r2.Vec{}
	if p.UVCenter != nil {
		b.Center = *p.UVCenter
	}
	b.GenerateMipmaps = true
	b.NeedsUpdate = true
	b.Version = version
}

// MarkUploaded clears NeedsUpdate.
func (b *TextureBinding) MarkUploaded() {
	b.NeedsUpdate = false
}

// SamplerDescriptor returns the GPU sampler matching the binding.
func (b *TextureBinding) SamplerDescriptor() gputypes.SamplerDescriptor {
	d := gputypes.LinearSamplerDescriptor()
	d.Label = "paving texture sampler"
	d.AddressModeU = b.WrapS
	d.AddressModeV = b.WrapT
	if !b.GenerateMipmaps {
		d.MipmapFilter = gputypes.MipmapFilterModeNearest
		d.LodMaxClamp = 0
	}
	return d
}

// TextureDescriptor returns the GPU texture that holds a width×height canvas.
func (b *TextureBinding) TextureDescriptor(width, height int) gputypes.TextureDescriptor {
	levels := uint32(1)
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if b.GenerateMipmaps {
		levels = mipLevelCount(width, height)
		usage |= gputypes.TextureUsageRenderAttachment
	}
	return gputypes.TextureDescriptor{
		Label:         "paving texture",
		Size:          gputypes.NewExtent2D(uint32(max(width, 1)), uint32(max(height, 1))),
		MipLevelCount: levels,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         usage,
	}
}

// mipLevelCount returns the length of a full mip chain.
func mipLevelCount(width, height int) uint32 {
	return 1 + uint32(math.Floor(math.Log2(float64(max(width, height, 1)))))
}

// uvMatrix maps surface UVs to canvas UVs: rotate about Center, scale by
// Repeat, then shift by Offset.
func (b *TextureBinding) uvMatrix() affine.Affine {
	c := b.Center
	return affine.Translate(-c.X, -c.Y).Then(
		affine.Rotate(-b.Rotation),
		affine.Scale(b.Repeat.X, b.Repeat.Y),
		affine.Translate(c.X+b.Offset.X, c.Y+b.Offset.Y),
	)
}

// UVTransform returns the UV matrix a renderer applies before sampling.
func (b *TextureBinding) UVTransform() f64.Aff3 {
	return b.uvMatrix().Aff3()
}

// Sample returns the canvas texel seen at surface coordinate (u, v).
// v grows upward, so v=0 addresses the bottom row of the canvas.
func (b *TextureBinding) Sample(img *image.RGBA, u, v float64) color.RGBA {
	r := img.Rect
	if r.Empty() {
		return color.RGBA{}
	}
	tu, tv := b.uvMatrix().TransformPoint(u, v)
	tu = wrap(tu, b.WrapS)
	tv = wrap(tv, b.WrapT)

	x := min(int(tu*float64(r.Dx())), r.Dx()-1)
	y := min(int((1-tv)*float64(r.Dy())), r.Dy()-1)
	return img.RGBAAt(r.Min.X+x, r.Min.Y+max(y, 0))
}

// wrap folds a texture coordinate into [0, 1] according to mode.
func wrap(t float64, mode gputypes.AddressMode) float64 {
	switch mode {
	case gputypes.AddressModeRepeat:
		return t - math.Floor(t)
	case gputypes.AddressModeMirrorRepeat:
		m := math.Mod(math.Abs(t), 2)
		if m > 1 {
			return 2 - m
		}
		return m
	default:
		return clampf(t, 0, 1)
	}
}
