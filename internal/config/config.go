// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

// Package config resolves CLI configuration from defaults, a YAML file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/woozymasta/macroimport"
)

// Default values.
const (
	DefaultJobs      = 4
	DefaultLogLevel  = "info"
	DefaultLogFormat = "auto"
	DefaultFormat    = "text"
	// DefaultMaxFileSize bounds the size of files parsed for injection.
	DefaultMaxFileSize = "4MiB"
)

// Validation errors.
var (
	ErrInvalidJobs      = errors.New("jobs must be >= 0")
	ErrInvalidLogFormat = errors.New("log.format must be auto, text or json")
	ErrInvalidFormat    = errors.New("format must be text or yaml")
	ErrInvalidFileSize  = errors.New("invalid max_file_size")
)

// Config is the top-level CLI configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Include      []string  `mapstructure:"include" yaml:"include,omitempty"`
	Exclude      []string  `mapstructure:"exclude" yaml:"exclude,omitempty"`
	IncludeFiles []string  `mapstructure:"include_files" yaml:"include_files,omitempty"`
	ExcludeFiles []string  `mapstructure:"exclude_files" yaml:"exclude_files,omitempty"`
	OptionsFiles []string  `mapstructure:"options_files" yaml:"options_files,omitempty"`
	Debug        bool      `mapstructure:"debug" yaml:"debug"`
	Write        bool      `mapstructure:"write" yaml:"write"`
	Jobs         int       `mapstructure:"jobs" yaml:"jobs"`
	Format       string    `mapstructure:"format" yaml:"format"`
	MetricsFile  string    `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
	MaxFileSize  string    `mapstructure:"max_file_size" yaml:"max_file_size"`
	Log          LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return ErrInvalidJobs
	}

	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	switch c.Format {
	case "", "text", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}

	return nil
}

// MaxFileSizeBytes parses MaxFileSize. Empty means no limit and returns 0.
func (c *Config) MaxFileSizeBytes() (uint64, error) {
	if strings.TrimSpace(c.MaxFileSize) == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidFileSize, c.MaxFileSize, err)
	}

	return size, nil
}

// Options builds classification options.
//
// Inline patterns come first, then pattern files, then YAML options files in order.
// Every pattern is compiled into patterns here so malformed ones fail before any file
// is touched. Pass the same cache to the transformer to avoid compiling twice; nil uses
// a private cache.
func (c *Config) Options(patterns *macroimport.PatternCache) (macroimport.Options, error) {
	fileIncludes, err := macroimport.LoadPatternsFiles(c.IncludeFiles...)
	if err != nil {
		return macroimport.Options{}, fmt.Errorf("include files: %w", err)
	}

	fileExcludes, err := macroimport.LoadPatternsFiles(c.ExcludeFiles...)
	if err != nil {
		return macroimport.Options{}, fmt.Errorf("exclude files: %w", err)
	}

	sets := make([]macroimport.Options, 0, 2+len(c.OptionsFiles))
	sets = append(sets,
		macroimport.Options{Include: c.Include, Exclude: c.Exclude, Debug: c.Debug},
		macroimport.Options{Include: fileIncludes, Exclude: fileExcludes},
	)

	for _, path := range c.OptionsFiles {
		set, err := macroimport.LoadOptionsFile(path)
		if err != nil {
			return macroimport.Options{}, err
		}

		sets = append(sets, set)
	}

	opts := macroimport.MergeOptions(sets...)

	if patterns == nil {
		patterns = macroimport.NewPatternCache()
	}

	for _, set := range [][]string{opts.Include, opts.Exclude} {
		for _, pattern := range set {
			if _, err := patterns.Compile(pattern); err != nil {
				return macroimport.Options{}, err
			}
		}
	}

	return opts, nil
}
