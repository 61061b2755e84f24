// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/engine/base/iox"
	"cogentcore.org/engine/base/iox/tomlx"
	"cogentcore.org/engine/base/iox/yamlx"
	"github.com/spf13/cobra"
)

func newConfigCmd(f *flags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective config, the file given by --config over the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var enc iox.EncoderFunc
			switch format {
			case "toml":
				enc = tomlx.NewEncoder
			case "yaml":
				enc = yamlx.NewEncoder
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			cfg, err := f.loadConfig()
			if err != nil {
				return err
			}
			return iox.Write(&cfg, cmd.OutOrStdout(), enc)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml or yaml")
	return cmd
}
