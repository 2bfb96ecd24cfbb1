// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/paving"
)

func addSynthesisFlags(fs *pflag.FlagSet) {
	d := paving.DefaultParameters()

	fs.StringSlice("images", nil, "brick images or directories of images")
	fs.Int("width", paving.DefaultCanvasSize, "canvas width before aspect fitting")
	fs.Int("height", paving.DefaultCanvasSize, "canvas height before aspect fitting")
	fs.Uint64("seed", 0, "seed for per-brick image choice (0 picks a random seed)")
	fs.Int("workers", 0, "paint bricks on this many goroutines (0 or 1 paints serially)")
	fs.String("interpolator", "bilinear", "resampling kernel: nearest, approxbilinear, bilinear, catmullrom")

	fs.String("bond", d.Bond.String(), "bond pattern: running, grid, cross, thirds")
	fs.Float64("gap", d.GapWidth, "mortar gap in pixels")
	fs.Float64("offset-x", 0, "image offset inside each brick, x")
	fs.Float64("offset-y", 0, "image offset inside each brick, y")
	fs.Float64("rotation", 0, "brick rotation in degrees")
	fs.Bool("alternate", false, "alternate the brick rotation sign")
	fs.Float64("global-offset-x", 0, "texture offset in thousandths of a UV unit, x")
	fs.Float64("global-offset-y", 0, "texture offset in thousandths of a UV unit, y")
	fs.Float64("global-rotation", 0, "texture rotation in degrees")
	fs.StringSlice("uv-center", nil, "texture rotation pivot as u,v")
	fs.Float64("repeat", d.Repeat, "texture repeat when no camera is given")

	fs.String("camera", "", "derive repeat from a camera: perspective or orthographic")
	fs.Float64("fov", 50, "perspective vertical field of view in degrees")
	fs.Float64("distance", 10, "perspective camera distance")
	fs.Float64("ortho-width", 20, "orthographic frustum width")
	fs.Float64("ortho-height", 20, "orthographic frustum height")
	fs.Float64("viewport-width", 800, "renderer viewport width in pixels")
	fs.Float64("viewport-height", 600, "renderer viewport height in pixels")
}

// parametersFrom assembles synthesis parameters from flags and config.
func parametersFrom(v *viper.Viper) (paving.Parameters, error) {
	bond, err := paving.ParseBond(v.GetString("bond"))
	if err != nil {
		return paving.Parameters{}, err
	}
	p := paving.Parameters{
		Bond:              bond,
		GapWidth:          v.GetFloat64("gap"),
		LocalOffsetX:      v.GetFloat64("offset-x"),
		LocalOffsetY:      v.GetFloat64("offset-y"),
		LocalRotation:     v.GetFloat64("rotation"),
		AlternateRotation: v.GetBool("alternate"),
		GlobalOffsetX:     v.GetFloat64("global-offset-x"),
		GlobalOffsetY:     v.GetFloat64("global-offset-y"),
		GlobalRotation:    v.GetFloat64("global-rotation"),
		Repeat:            v.GetFloat64("repeat"),
	}
	center, err := parseVec(v.GetStringSlice("uv-center"))
	if err != nil {
		return paving.Parameters{}, fmt.Errorf("uv-center: %w", err)
	}
	p.UVCenter = center
	return p, nil
}

// parseVec parses an optional "x,y" pair.
func parseVec(parts []string) (*r2.Vec, error) {
	switch len(parts) {
	case 0:
		return nil, nil
	case 2:
	default:
		return nil, fmt.Errorf("need two values, got %d", len(parts))
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, err
	}
	return &r2.Vec{X: x, Y: y}, nil
}

var interpolators = map[string]draw.Interpolator{
	"nearest":        draw.NearestNeighbor,
	"approxbilinear": draw.ApproxBiLinear,
	"bilinear":       draw.BiLinear,
	"catmullrom":     draw.CatmullRom,
}

// synthesizerFrom creates the synthesizer configured by flags and config.
func synthesizerFrom(v *viper.Viper) (*paving.Synthesizer, error) {
	name := strings.ToLower(v.GetString("interpolator"))
	interp, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("unknown interpolator %q", name)
	}
	opts := []paving.Option{
		paving.WithInterpolator(interp),
		paving.WithWorkers(v.GetInt("workers")),
	}
	if seed := v.GetUint64("seed"); seed != 0 {
		opts = append(opts, paving.WithSeed(seed))
	}
	return paving.NewSynthesizer(opts...), nil
}

// viewFrom returns the camera context, or nil for a fixed repeat.
func viewFrom(v *viper.Viper) (*paving.View, error) {
	viewport := r2.Vec{X: v.GetFloat64("viewport-width"), Y: v.GetFloat64("viewport-height")}
	switch kind := strings.ToLower(v.GetString("camera")); kind {
	case "", "none":
		return nil, nil
	case "perspective":
		cam := &paving.PerspectiveCamera{FOV: v.GetFloat64("fov"), Distance: v.GetFloat64("distance")}
		return &paving.View{Camera: cam, Viewport: viewport}, nil
	case "orthographic":
		w, h := v.GetFloat64("ortho-width")/2, v.GetFloat64("ortho-height")/2
		cam := &paving.OrthographicCamera{Left: -w, Right: w, Top: h, Bottom: -h}
		return &paving.View{Camera: cam, Viewport: viewport}, nil
	default:
		return nil, &paving.ConfigurationError{Camera: kind}
	}
}

// loadImages decodes the --images paths. No paths means an empty set.
func loadImages(v *viper.Viper) (paving.ImageSet, error) {
	paths := v.GetStringSlice("images")
	if len(paths) == 0 {
		return nil, nil
	}
	images, err := paving.LoadImages(paths...)
	if err != nil {
		return nil, err
	}
	paving.Logger().Debug("paving: images loaded", "count", len(images))
	return images, nil
}
