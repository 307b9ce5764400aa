// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import "strings"

// SourceExtensions lists file suffixes that may receive the macro import.
var SourceExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// DefaultExcludes lists path fragments that are never processed.
//
// Fragments are matched as plain substrings of the slash-normalized, ASCII lower-cased
// filename prefixed with "/", so "node_modules/a.js" and "/abs/node_modules/a.js" both match.
// Fragments must be lower-case.
var DefaultExcludes = []string{
	"/node_modules/",
	"/.cache/",
	"/.tmp/",
	"/.temp/",
	".d.ts",
	".d.mts",
	".d.cts",
}

// NormalizeExtensions converts an extension list to lower-case ".ext" form.
//
// Accepted extension forms:
//   - "ts"
//   - ".ts"
//   - "*.ts"
//
// Empty values are skipped. Output preserves input order.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		ext = asciiLower(ext)
		if ext == "" {
			continue
		}

		out = append(out, "."+ext)
	}

	return out
}

// hasExtension reports whether filename ends with one of exts (ASCII case-insensitive).
func hasExtension(filename string, exts []string) bool {
	dot := strings.LastIndexByte(filename, '.')
	if dot < 0 || strings.IndexByte(filename[dot:], '/') >= 0 {
		return false
	}

	suffix := asciiLower(filename[dot:])
	for _, ext := range exts {
		if suffix == ext {
			return true
		}
	}

	return false
}

// defaultExcludeFragment returns the first default fragment found in candidate (ASCII case-insensitive).
func defaultExcludeFragment(candidate string, fragments []string) (string, bool) {
	candidate = asciiLower(candidate)
	for _, fragment := range fragments {
		if strings.Contains(candidate, fragment) {
			return fragment, true
		}
	}

	return "", false
}
