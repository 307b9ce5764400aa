// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package commands

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderDiff returns a line diff of before and after with +/- markers.
//
// Unchanged lines are omitted; injection only ever adds lines.
func renderDiff(name string, before, after []byte) string {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- " + name + "\n")
	sb.WriteString("+++ " + name + "\n")

	for _, d := range diffs {
		var marker string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			marker = "+"
		case diffmatchpatch.DiffDelete:
			marker = "-"
		case diffmatchpatch.DiffEqual:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			sb.WriteString(marker + line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}
