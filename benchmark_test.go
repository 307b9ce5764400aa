// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"fmt"
	"strings"
	"testing"
)

const (
	benchPatternCount = 24
	benchPathCount    = 512
)

var (
	benchDecisionSink Decision
	benchResultSink   Result
)

func BenchmarkParsePatterns(b *testing.B) {
	src := buildBenchmarkPatternsSource(benchPatternCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		patterns, err := ParsePatternsString(src)
		if err != nil {
			b.Fatal(err)
		}

		if len(patterns) == 0 {
			b.Fatal("empty patterns")
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	patterns, err := ParsePatternsString(buildBenchmarkPatternsSource(benchPatternCount))
	if err != nil {
		b.Fatal(err)
	}

	c := NewClassifier(nil)
	opts := Options{Include: []string{"^(src|app|packages)/"}, Exclude: patterns}
	paths := benchmarkPaths(benchPathCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d, err := c.Classify(paths[i%len(paths)], opts)
		if err != nil {
			b.Fatal(err)
		}

		benchDecisionSink = d
	}
}

func BenchmarkTransformerProcessCached(b *testing.B) {
	patterns, err := ParsePatternsString(buildBenchmarkPatternsSource(benchPatternCount))
	if err != nil {
		b.Fatal(err)
	}

	tr := NewTransformer(TransformerOptions{})
	opts := Options{Exclude: patterns}
	paths := benchmarkPaths(benchPathCount)
	for _, path := range paths {
		if _, err := tr.Process(path, &StatementList{}, opts); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := tr.Process(paths[i%len(paths)], nil, opts)
		if err != nil {
			b.Fatal(err)
		}

		benchResultSink = res
	}
}

func BenchmarkTransformerProcessCold(b *testing.B) {
	patterns, err := ParsePatternsString(buildBenchmarkPatternsSource(benchPatternCount))
	if err != nil {
		b.Fatal(err)
	}

	opts := Options{Exclude: patterns}
	paths := benchmarkPaths(benchPathCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := NewTransformer(TransformerOptions{})
		res, err := tr.Process(paths[i%len(paths)], &StatementList{}, opts)
		if err != nil {
			b.Fatal(err)
		}

		benchResultSink = res
	}
}

func buildBenchmarkPatternsSource(patternCount int) string {
	var sb strings.Builder
	sb.Grow(patternCount * 24)

	sb.WriteString("# bench patterns\n")
	for i := 0; i < patternCount; i++ {
		switch i % 4 {
		case 0:
			_, _ = fmt.Fprintf(&sb, `\.stories_%02d\.tsx$`+"\n", i)
		case 1:
			_, _ = fmt.Fprintf(&sb, "^packages/legacy_%02d/\n", i)
		case 2:
			_, _ = fmt.Fprintf(&sb, `/__generated_%02d__/`+"\n", i)
		default:
			_, _ = fmt.Fprintf(&sb, `\.spec_%02d\.[jt]sx?$`+"\n", i)
		}
	}

	return sb.String()
}

func benchmarkPaths(pathCount int) []string {
	paths := make([]string, 0, pathCount)
	for i := 0; i < pathCount; i++ {
		switch i % 6 {
		case 0:
			paths = append(paths, fmt.Sprintf("src/components/Button_%04d.tsx", i))
		case 1:
			paths = append(paths, fmt.Sprintf("src/components/Button_%04d.stories_%02d.tsx", i, i%24))
		case 2:
			paths = append(paths, fmt.Sprintf("packages/legacy_%02d/index_%04d.js", i%24, i))
		case 3:
			paths = append(paths, fmt.Sprintf("node_modules/pkg_%03d/index.js", i%97))
		case 4:
			paths = append(paths, fmt.Sprintf("app/routes/route_%04d.jsx", i))
		default:
			paths = append(paths, fmt.Sprintf("docs/page_%04d.md", i))
		}
	}

	return paths
}
