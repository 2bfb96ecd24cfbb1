// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command paving synthesizes seamless brick and paving textures.
//
// Usage:
//
//	paving render --images ./bricks --bond cross --gap 2 --out paving.png
//	paving serve --images ./bricks --addr :8080
//
// Every flag can also be set in a YAML file passed with --config; flags
// given on the command line win over the file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/paving"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "paving:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each tree carries its own viper
// instance so commands can be executed repeatedly in tests.
func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "paving",
		Short:         "Procedural brick and paving texture synthesizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v); err != nil {
				return err
			}
			initLogging(cmd, v.GetBool("verbose"))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML file with flag values")
	pf.Bool("verbose", false, "log debug records")
	addSynthesisFlags(pf)
	if err := v.BindPFlags(pf); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}

	root.AddCommand(newRenderCmd(v), newServeCmd(v))
	return root
}

// loadConfig reads the --config file, if any, underneath the flags.
func loadConfig(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func initLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	paving.SetLogger(logger)
}
