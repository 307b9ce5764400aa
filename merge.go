// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

// MergeOptions merges option sets preserving pattern order.
//
// Include and Exclude are concatenated. Debug is enabled when any input enables it.
func MergeOptions(sets ...Options) Options {
	includes, excludes := 0, 0
	for _, set := range sets {
		includes += len(set.Include)
		excludes += len(set.Exclude)
	}

	out := Options{}
	if includes > 0 {
		out.Include = make([]string, 0, includes)
	}

	if excludes > 0 {
		out.Exclude = make([]string, 0, excludes)
	}

	for _, set := range sets {
		out.Include = append(out.Include, set.Include...)
		out.Exclude = append(out.Exclude, set.Exclude...)
		out.Debug = out.Debug || set.Debug
	}

	return out
}
