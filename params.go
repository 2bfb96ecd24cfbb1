// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Parameters describes one synthesis request. It is treated as an
// immutable snapshot for the duration of a Synthesize call.
//
// Distances are in device pixels and angles in degrees. The core does not
// validate ranges: modulo and clip arithmetic absorb out-of-range values.
type Parameters struct {
	Bond Bond `json:"bond" yaml:"bond"`

	// GapWidth is the mortar joint between neighbouring bricks.
	GapWidth float64 `json:"gapWidth" yaml:"gap_width"`

	// LocalOffsetX and LocalOffsetY shift each brick image inside its
	// cell; they wrap modulo the cell size.
	LocalOffsetX float64 `json:"localOffsetX" yaml:"local_offset_x"`
	LocalOffsetY float64 `json:"localOffsetY" yaml:"local_offset_y"`

	// LocalRotation turns each brick about its cell center, clockwise.
	LocalRotation float64 `json:"localRotation" yaml:"local_rotation"`

	// AlternateRotation negates LocalRotation on alternating cells or rows.
	AlternateRotation bool `json:"alternateRotation" yaml:"alternate_rotation"`

	// GlobalOffsetX and GlobalOffsetY move the whole texture, in
	// thousandths of a UV unit.
	GlobalOffsetX float64 `json:"globalOffsetX" yaml:"global_offset_x"`
	GlobalOffsetY float64 `json:"globalOffsetY" yaml:"global_offset_y"`

	// GlobalRotation turns the sampled texture about UVCenter.
	GlobalRotation float64 `json:"globalRotation" yaml:"global_rotation"`

	// UVCenter is the pivot of GlobalRotation; nil means the UV origin.
	UVCenter *r2.Vec `json:"uvCenter,omitempty" yaml:"uv_center,omitempty"`

	// Repeat is the tile count used when no camera context is supplied.
	Repeat float64 `json:"repeat" yaml:"repeat"`
}

// DefaultParameters returns the control panel's initial state.
func DefaultParameters() Parameters {
	return Parameters{
		Bond:     BondGrid,
		GapWidth: 1,
		Repeat:   2,
	}
}

// Control panel slider ranges.
const (
	MaxGapWidth     = 10
	MaxLocalOffset  = 100
	MaxRotation     = 360
	MaxGlobalOffset = 1000
	MinRepeat       = 1
	MaxRepeat       = 10
)

// Clamp returns a copy of p limited to the control panel ranges.
// Synthesize does not require it; it is offered to input surfaces.
func (p Parameters) Clamp() Parameters {
	p.GapWidth = clampf(p.GapWidth, 0, MaxGapWidth)
	p.LocalOffsetX = clampf(p.LocalOffsetX, -MaxLocalOffset, MaxLocalOffset)
	p.LocalOffsetY = clampf(p.LocalOffsetY, -MaxLocalOffset, MaxLocalOffset)
	p.LocalRotation = clampf(p.LocalRotation, 0, MaxRotation)
	p.GlobalOffsetX = clampf(p.GlobalOffsetX, -MaxGlobalOffset, MaxGlobalOffset)
	p.GlobalOffsetY = clampf(p.GlobalOffsetY, -MaxGlobalOffset, MaxGlobalOffset)
	p.GlobalRotation = clampf(p.GlobalRotation, 0, MaxRotation)
	p.Repeat = clampf(p.Repeat, MinRepeat, MaxRepeat)
	return p.clone()
}

// effective returns the parameters the layout actually uses: bonds
// without mortar and negative or NaN gaps get a zero gap.
func (p Parameters) effective() Parameters {
	if l, ok := p.Bond.layout(); (ok && l.gapless) || !(p.GapWidth > 0) {
		p.GapWidth = 0
	}
	return p
}

// clone returns a copy of p that shares no memory with it.
func (p Parameters) clone() Parameters {
	if p.UVCenter != nil {
		c := *p.UVCenter
		p.UVCenter = &c
	}
	return p
}

func clampf(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
