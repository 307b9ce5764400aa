// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPatternsFile reads and parses patterns from a file.
func LoadPatternsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open patterns file: %w", err)
	}
	defer func() { _ = f.Close() }()

	patterns, err := ParsePatterns(f)
	if err != nil {
		return nil, fmt.Errorf("parse patterns file: %w", err)
	}

	return patterns, nil
}

// LoadPatternsFiles reads and concatenates patterns from files in the given order.
func LoadPatternsFiles(paths ...string) ([]string, error) {
	out := make([]string, 0, len(paths)*8)
	for _, path := range paths {
		patterns, err := LoadPatternsFile(path)
		if err != nil {
			return nil, err
		}

		out = append(out, patterns...)
	}

	return out, nil
}

// LoadOptionsFile reads Options from a YAML document.
//
// Unknown keys are rejected, an empty document yields zero Options. Patterns are compiled later, on first classification.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open options file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var opts Options
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("decode options file %s: %w", path, err)
	}

	return opts, nil
}
