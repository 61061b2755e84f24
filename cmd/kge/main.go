// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command kge inspects the engine backends and runs a culling
// benchmark over a random scene.
package main

import (
	"os"

	"cogentcore.org/engine/base/logx"
	"cogentcore.org/engine/engine"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type flags struct {
	config  string
	debug   bool
	verbose bool
	quiet   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "kge",
		Short:        "kge inspects engine backends and benchmarks scene culling",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(f.debug, f.verbose, f.quiet)
			logx.SetLogger(cmd.ErrOrStderr())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "TOML or YAML engine config file")
	pf.BoolVar(&f.debug, "debug", false, "log debug messages")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log info messages")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(newBackendsCmd(), newBenchCmd(f), newConfigCmd(f))
	return root
}

// loadConfig returns the config file named by the flags, or the
// defaults if there is none.
func (f *flags) loadConfig() (engine.Config, error) {
	if f.config == "" {
		return engine.NewConfig(), nil
	}
	return engine.OpenConfig(f.config)
}

func newOutput(cmd *cobra.Command) *termenv.Output {
	return termenv.NewOutput(cmd.OutOrStdout())
}
