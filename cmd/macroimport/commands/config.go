// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package commands

import (
	"github.com/spf13/cobra"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig(cmd)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}
}
