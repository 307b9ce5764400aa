// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

// Package commands implements the macroimport CLI commands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/woozymasta/macroimport/internal/config"
	"github.com/woozymasta/macroimport/internal/observability"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// globalFlags holds persistent flags shared by every command.
type globalFlags struct {
	configPath string
	envFiles   []string
	logLevel   string
	logFormat  string
	debug      bool
}

// NewRootCommand creates the macroimport root command.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "macroimport",
		Short: "Inject the twin.macro import into JavaScript and TypeScript sources",
		Long: `macroimport walks JavaScript and TypeScript sources, classifies every file
against include and exclude patterns and prepends "import 'twin.macro';" to
eligible files that do not import it yet.

Files under node_modules, cache directories and .d.ts declarations are never touched.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default .macroimport.yaml in CWD or $HOME)")
	pf.StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files loaded before config (default .env)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: auto, text, json")
	pf.BoolVar(&flags.debug, "debug", false, "log one diagnostic line per file")

	cmd.AddCommand(newRunCommand(flags))
	cmd.AddCommand(newCheckCommand(flags))
	cmd.AddCommand(newConfigCommand(flags))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig resolves configuration and applies persistent flag overrides.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(g.configPath, g.envFiles...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}

	if flags.Changed("log-format") {
		cfg.Log.Format = g.logFormat
	}

	if flags.Changed("debug") {
		cfg.Debug = g.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate flags: %w", err)
	}

	return cfg, nil
}

// newLogger builds the run logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger, _ := observability.NewLogger(observability.LoggerConfig{
		Level:  logLevel(cfg),
		Format: observability.LogFormat(cfg.Log.Format),
		Writer: cmd.ErrOrStderr(),
	})

	return logger
}

// logLevel returns the configured level, lowered to info when debug diagnostics are on.
// Per-file diagnostics are info records and must not be filtered out by --log-level.
func logLevel(cfg *config.Config) string {
	if cfg.Debug && observability.ParseLevel(cfg.Log.Level) > slog.LevelInfo {
		return "info"
	}

	return cfg.Log.Level
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "macroimport %s\n", Version)
		},
	}
}
