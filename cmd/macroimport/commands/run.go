// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/macroimport"
	"github.com/woozymasta/macroimport/internal/config"
	"github.com/woozymasta/macroimport/internal/fileio"
	"github.com/woozymasta/macroimport/internal/jsast"
	"github.com/woozymasta/macroimport/internal/observability"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
)

// stateOversized marks eligible files left untouched because of max_file_size.
const stateOversized = "oversized"

// errOversized stops loading of a file over max_file_size.
var errOversized = errors.New("file exceeds max file size")

// runFlags holds flags of the run command.
type runFlags struct {
	include      []string
	exclude      []string
	includeFiles []string
	excludeFiles []string
	optionsFiles []string
	metricsFile  string
	format       string
	maxFileSize  string
	jobs         int
	write        bool
	diff         bool
}

// fileReport is the outcome of one processed file.
type fileReport struct {
	File    string `yaml:"file"`
	State   string `yaml:"state"`
	Reason  string `yaml:"reason,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
	Written bool   `yaml:"written,omitempty"`
	Size    int64  `yaml:"size,omitempty"`
	Diff    string `yaml:"diff,omitempty"`
}

// runReport is the YAML document printed by run --format yaml.
type runReport struct {
	Files     []fileReport      `yaml:"files"`
	Stats     macroimport.Stats `yaml:"stats"`
	Oversized int64             `yaml:"oversized"`
}

// runSettings is the resolved configuration of one run.
type runSettings struct {
	logger      *slog.Logger
	opts        macroimport.Options
	maxFileSize uint64
	write       bool
	diff        bool
}

func newRunCommand(global *globalFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Inject the macro import into eligible files",
		Long: `Walk the given files and directories (default: current directory), classify
every file and inject the macro import where it is missing.

Without --write nothing is modified and the run only reports what would change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd, global, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&flags.include, "include", nil, "include pattern (repeatable)")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "exclude pattern (repeatable)")
	f.StringArrayVar(&flags.includeFiles, "include-file", nil, "file with include patterns (repeatable)")
	f.StringArrayVar(&flags.excludeFiles, "exclude-file", nil, "file with exclude patterns (repeatable)")
	f.StringArrayVar(&flags.optionsFiles, "options-file", nil, "YAML file with include, exclude and debug (repeatable)")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	f.StringVar(&flags.format, "format", "", "output format: text, yaml")
	f.StringVar(&flags.maxFileSize, "max-file-size", "", "skip eligible files larger than this (e.g. 4MiB)")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "parallel workers (0 = number of CPUs)")
	f.BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	f.BoolVar(&flags.diff, "diff", false, "print a diff for every changed file")

	return cmd
}

// apply merges command flags into cfg. Pattern flags are appended to configured patterns.
func (r *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	cfg.Include = append(cfg.Include, r.include...)
	cfg.Exclude = append(cfg.Exclude, r.exclude...)
	cfg.IncludeFiles = append(cfg.IncludeFiles, r.includeFiles...)
	cfg.ExcludeFiles = append(cfg.ExcludeFiles, r.excludeFiles...)
	cfg.OptionsFiles = append(cfg.OptionsFiles, r.optionsFiles...)

	flags := cmd.Flags()
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = r.metricsFile
	}

	if flags.Changed("format") {
		cfg.Format = r.format
	}

	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = r.maxFileSize
	}

	if flags.Changed("jobs") {
		cfg.Jobs = r.jobs
	}

	if flags.Changed("write") {
		cfg.Write = r.write
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate flags: %w", err)
	}

	return nil
}

func runInject(cmd *cobra.Command, global *globalFlags, flags *runFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := flags.apply(cmd, cfg); err != nil {
		return err
	}

	patterns := macroimport.NewPatternCache()

	opts, err := cfg.Options(patterns)
	if err != nil {
		return err
	}

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)

	files, err := collectFiles(ctx, args)
	if err != nil {
		return err
	}

	logger.Debug("run started",
		slog.Int("files", len(files)),
		slog.Bool("write", cfg.Write),
		slog.Int("jobs", workerCount(cfg.Jobs)),
	)

	tr := macroimport.NewTransformer(macroimport.TransformerOptions{Logger: logger, Patterns: patterns})
	settings := runSettings{
		logger:      logger,
		opts:        opts,
		maxFileSize: maxSize,
		write:       cfg.Write,
		diff:        flags.diff,
	}

	reports, err := processFiles(ctx, tr, files, settings, workerCount(cfg.Jobs))
	if err != nil {
		return err
	}

	stats := tr.Stats()
	oversized := countState(reports, stateOversized)

	if cfg.MetricsFile != "" {
		metrics := observability.NewMetrics()
		metrics.Observe(stats)
		metrics.ObserveOversized(oversized)
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if cfg.Format == formatYAML {
		return writeYAML(out, runReport{Files: reports, Stats: stats, Oversized: oversized})
	}

	printRunText(out, reports, stats, oversized, cfg.Write)

	return nil
}

// processFiles runs processFile over files with at most jobs concurrent workers.
//
// Reports keep the order of files. The first error cancels the remaining work.
func processFiles(
	ctx context.Context,
	tr *macroimport.Transformer,
	files []string,
	settings runSettings,
	jobs int,
) ([]fileReport, error) {
	reports := make([]fileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report, err := processFile(tr, path, settings)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// processFile classifies one file and injects the import when eligible.
//
// Skipped files are never read. Eligible files over the size limit are reported as
// oversized and left out of the transformer counters.
func processFile(tr *macroimport.Transformer, path string, settings runSettings) (fileReport, error) {
	name := displayName(path)
	report := fileReport{File: name}

	var (
		src  []byte
		file *jsast.File
	)

	res, err := tr.ProcessLoad(name, func() (macroimport.Program, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}

		report.Size = info.Size()
		if settings.maxFileSize > 0 && uint64(info.Size()) > settings.maxFileSize {
			return nil, errOversized
		}

		src, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		file, err = jsast.Parse(name, src)
		if err != nil {
			return nil, err
		}

		return file, nil
	}, settings.opts)
	if errors.Is(err, errOversized) {
		report.State = stateOversized
		if settings.opts.Debug {
			settings.logger.Info(fmt.Sprintf("%s: File too large %q", macroimport.LogPrefix, name),
				slog.String("file", name),
				slog.String("state", stateOversized),
				slog.Int64("size", report.Size),
			)
		}

		return report, nil
	}

	if err != nil {
		return report, err
	}

	report.fill(res)

	if file == nil || !file.Changed() {
		return report, nil
	}

	out := file.Bytes()
	if settings.diff {
		report.Diff = renderDiff(name, src, out)
	}

	if settings.write {
		if err := fileio.WriteFileAtomic(path, out); err != nil {
			return report, err
		}

		report.Written = true
		report.Size = int64(len(out))
	}

	return report, nil
}

// fill copies the transformer result into the report.
func (r *fileReport) fill(res macroimport.Result) {
	r.State = res.State.String()
	r.Reason = string(res.Decision.Reason)
	r.Pattern = res.Decision.Pattern
}

// workerCount resolves the configured job count.
func workerCount(jobs int) int {
	if jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return jobs
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}

// countState returns the number of reports in state.
func countState(reports []fileReport, state string) int64 {
	var n int64
	for _, report := range reports {
		if report.State == state {
			n++
		}
	}

	return n
}

func printRunText(w io.Writer, reports []fileReport, stats macroimport.Stats, oversized int64, write bool) {
	verb := "would inject"
	if write {
		verb = "injected"
	}

	for _, report := range reports {
		if report.Diff != "" {
			fmt.Fprint(w, report.Diff)
		}

		switch report.State {
		case macroimport.StateInjected.String():
			color.New(color.FgGreen).Fprintf(w, "%s %s\n", verb, report.File)
		case stateOversized:
			color.New(color.FgYellow).Fprintf(w, "skipped %s: %s exceeds max file size\n",
				report.File, humanize.IBytes(uint64(report.Size)))
		}
	}

	summary := color.New(color.FgCyan)
	if stats.Injected > 0 {
		summary = color.New(color.FgGreen, color.Bold)
	}

	line := fmt.Sprintf("%s files: %s %s, %s already present, %s skipped",
		humanize.Comma(int64(len(reports))),
		humanize.Comma(stats.Injected),
		verb,
		humanize.Comma(stats.AlreadyPresent),
		humanize.Comma(stats.Skipped),
	)
	if oversized > 0 {
		line += fmt.Sprintf(", %s oversized", humanize.Comma(oversized))
	}

	summary.Fprintln(w, line)
}
