// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/paving"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Synthesize one texture and write it as PNG",
		Long: "Synthesize one texture from the brick images and write it as PNG,\n" +
			"followed by a YAML report of the texture binding a renderer should use.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, v)
		},
	}
	cmd.Flags().String("out", "paving.png", "output PNG path")
	cmd.Flags().String("report", "", "binding report path (default stdout, \"none\" to skip)")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(fmt.Sprintf("failed to bind render flags: %v", err))
	}
	return cmd
}

// report describes a rendered texture.
type report struct {
	Output     string            `yaml:"output"`
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Version    uint64            `yaml:"version"`
	Parameters paving.Parameters `yaml:"parameters"`
	Binding    bindingReport     `yaml:"binding"`
}

type bindingReport struct {
	WrapS           string     `yaml:"wrap_s"`
	WrapT           string     `yaml:"wrap_t"`
	Repeat          [2]float64 `yaml:"repeat,flow"`
	Offset          [2]float64 `yaml:"offset,flow"`
	Rotation        float64    `yaml:"rotation"`
	Center          [2]float64 `yaml:"center,flow"`
	GenerateMipmaps bool       `yaml:"generate_mipmaps"`
	MipLevels       uint32     `yaml:"mip_levels"`
	UVTransform     [6]float64 `yaml:"uv_transform,flow"`
}

func runRender(cmd *cobra.Command, v *viper.Viper) error {
	params, err := parametersFrom(v)
	if err != nil {
		return err
	}
	synth, err := synthesizerFrom(v)
	if err != nil {
		return err
	}
	defer synth.Close()
	view, err := viewFrom(v)
	if err != nil {
		return err
	}
	images, err := loadImages(v)
	if err != nil {
		return err
	}

	canvas := paving.NewCanvas(v.GetInt("width"), v.GetInt("height"))
	binding := paving.NewTextureBinding()
	if err := synth.Synthesize(binding, canvas, view, params, images); err != nil {
		return err
	}

	out := v.GetString("out")
	if err := canvas.SavePNG(out); err != nil {
		return err
	}
	binding.MarkUploaded()
	paving.Logger().Info("paving: texture written", "path", out, "width", canvas.Width(), "height", canvas.Height())

	r := report{
		Output:     out,
		Width:      canvas.Width(),
		Height:     canvas.Height(),
		Version:    canvas.Version(),
		Parameters: params,
		Binding:    bindingReportOf(binding, canvas),
	}
	return writeReport(cmd.OutOrStdout(), v.GetString("report"), r)
}

func bindingReportOf(b *paving.TextureBinding, c *paving.Canvas) bindingReport {
	return bindingReport{
		WrapS:           b.WrapS.String(),
		WrapT:           b.WrapT.String(),
		Repeat:          [2]float64{b.Repeat.X, b.Repeat.Y},
		Offset:          [2]float64{b.Offset.X, b.Offset.Y},
		Rotation:        b.Rotation,
		Center:          [2]float64{b.Center.X, b.Center.Y},
		GenerateMipmaps: b.GenerateMipmaps,
		MipLevels:       b.TextureDescriptor(c.Width(), c.Height()).MipLevelCount,
		UVTransform:     b.UVTransform(),
	}
}

func writeReport(stdout io.Writer, path string, r report) error {
	switch path {
	case "none":
		return nil
	case "", "-":
		return encodeReport(stdout, r)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := encodeReport(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeReport(w io.Writer, r report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
