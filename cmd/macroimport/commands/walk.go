// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// prunedDirs are never descended into. Their files would be skipped by default excludes anyway.
var prunedDirs = []string{".git", "node_modules"}

// collectFiles expands roots into a sorted, de-duplicated list of regular files.
//
// A root naming a file is returned as is, so explicitly listed files are still classified.
func collectFiles(ctx context.Context, roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	files := make([]string, 0, 64)
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && slices.Contains(prunedDirs, d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if d.Type().IsRegular() {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// displayName is the slash-separated form of path used for classification and output.
func displayName(path string) string {
	return filepath.ToSlash(path)
}
