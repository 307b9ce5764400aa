// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/woozymasta/macroimport"
)

// checkFlags holds flags of the check command.
type checkFlags struct {
	include      []string
	exclude      []string
	includeFiles []string
	excludeFiles []string
	optionsFiles []string
	format       string
}

// checkEntry is one classified file.
type checkEntry struct {
	File    string `yaml:"file"`
	Action  string `yaml:"action"`
	Reason  string `yaml:"reason,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

func newCheckCommand(global *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Show how files are classified without reading or changing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, global, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&flags.include, "include", nil, "include pattern (repeatable)")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "exclude pattern (repeatable)")
	f.StringArrayVar(&flags.includeFiles, "include-file", nil, "file with include patterns (repeatable)")
	f.StringArrayVar(&flags.excludeFiles, "exclude-file", nil, "file with exclude patterns (repeatable)")
	f.StringArrayVar(&flags.optionsFiles, "options-file", nil, "YAML file with include, exclude and debug (repeatable)")
	f.StringVar(&flags.format, "format", "", "output format: text, yaml")

	return cmd
}

func runCheck(cmd *cobra.Command, global *globalFlags, flags *checkFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Include = append(cfg.Include, flags.include...)
	cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	cfg.IncludeFiles = append(cfg.IncludeFiles, flags.includeFiles...)
	cfg.ExcludeFiles = append(cfg.ExcludeFiles, flags.excludeFiles...)
	cfg.OptionsFiles = append(cfg.OptionsFiles, flags.optionsFiles...)

	if cmd.Flags().Changed("format") {
		cfg.Format = flags.format
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validate flags: %w", err)
		}
	}

	patterns := macroimport.NewPatternCache()

	opts, err := cfg.Options(patterns)
	if err != nil {
		return err
	}

	files, err := collectFiles(ctx, args)
	if err != nil {
		return err
	}

	tr := macroimport.NewTransformer(macroimport.TransformerOptions{
		Logger:   newLogger(cmd, cfg),
		Patterns: patterns,
	})

	entries := make([]checkEntry, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := displayName(path)

		decision, err := tr.Classify(name, opts)
		if err != nil {
			return err
		}

		entries = append(entries, checkEntry{
			File:    name,
			Action:  decision.Action.String(),
			Reason:  string(decision.Reason),
			Pattern: decision.Pattern,
		})
	}

	out := cmd.OutOrStdout()
	if cfg.Format == formatYAML {
		return writeYAML(out, entries)
	}

	printCheckTable(out, entries)

	return nil
}

func printCheckTable(w io.Writer, entries []checkEntry) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"File", "Action", "Reason", "Pattern"})

	inject := 0
	for _, e := range entries {
		if e.Action == macroimport.ActionInject.String() {
			inject++
		}

		tbl.AppendRow(table.Row{e.File, e.Action, e.Reason, e.Pattern})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(entries)), fmt.Sprintf("inject: %d", inject), "", ""})
	tbl.Render()
}
