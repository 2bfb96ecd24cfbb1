// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package paving synthesizes seamless brick and paving textures from
// photographs of a single brick.
//
// # Overview
//
// A Synthesizer rasterizes a tile made of many placed, rotated and offset
// copies of the source images, following one of several masonry bonds,
// then describes how the tile should be sampled onto a 3D surface.
//
// # Quick Start
//
//	images, err := paving.LoadImages("bricks/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s := paving.NewSynthesizer(paving.WithSeed(1))
//	canvas := paving.NewCanvas(512, 512)
//	binding := paving.NewTextureBinding()
//
//	p := paving.DefaultParameters()
//	p.Bond = paving.BondCross
//	p.GapWidth = 2
//
//	if err := s.Synthesize(binding, canvas, nil, p, images); err != nil {
//	    log.Fatal(err)
//	}
//	_ = canvas.SavePNG("bricks.png")
//
// # Bonds
//
//   - BondRunning: bricks on a plain grid
//   - BondGrid: the same grid without mortar gaps
//   - BondCross: odd rows shifted by half a brick
//   - BondThirds: each row shifted by another third of a brick
//
// # Coordinate System
//
// Canvas coordinates have their origin at the top-left, x increasing right
// and y increasing down. Positive angles turn clockwise on screen.
// Texture binding coordinates (UV) have v increasing upward.
//
// # Seamlessness
//
// Each brick draws its image nine times (itself and its eight neighbours
// shifted by one cell) inside a clip rectangle, so local offsets and
// rotations never uncover the cell's background. The canvas is sized so a
// whole number of cells spans it, making the result wrap-repeat cleanly.
package paving
