// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/paving"
	"github.com/gogpu/paving/internal/preview"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview that re-synthesizes on parameter changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v)
		},
	}
	cmd.Flags().String("addr", ":8080", "HTTP listen address")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(fmt.Sprintf("failed to bind serve flags: %v", err))
	}
	return cmd
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
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

	session := paving.NewSession(synth, v.GetInt("width"), v.GetInt("height"))
	if _, err := session.Update(params); err != nil {
		return err
	}
	if _, err := session.SetView(view); err != nil {
		return err
	}
	if _, err := session.SetImages(images); err != nil {
		return err
	}
	if len(images) == 0 {
		paving.Logger().Warn("paving: no images loaded, preview stays blank")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return preview.NewServer(session).ListenAndServe(ctx, v.GetString("addr"))
}
