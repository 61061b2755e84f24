// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/base/plugin"
	"cogentcore.org/engine/input"
	"cogentcore.org/engine/render"
	"cogentcore.org/engine/scene"
	"cogentcore.org/engine/script"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the registered backends of every subsystem",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := newOutput(cmd)
			listPlugins(out, render.Backends)
			listPlugins(out, audio.Backends)
			listPlugins(out, input.Backends)
			listPlugins(out, script.Backends)
			listPlugins(out, scene.Indexes)
		},
	}
}

func listPlugins[T any](out *termenv.Output, r *plugin.Registry[T]) {
	fmt.Fprintln(out, out.String(r.Kind).Bold())
	for _, p := range r.Plugins() {
		fmt.Fprintf(out, "  %-12s %s\n", p.Name, out.String("v"+p.Version.String()).Foreground(out.Color("6")))
	}
}
