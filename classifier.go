// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

// Classifier decides whether a filename is eligible for the macro import.
type Classifier struct {
	// patterns compiles include/exclude patterns once per source string.
	patterns *PatternCache
	// defaultExcludes are built-in path fragments checked before anything else.
	defaultExcludes []string
	// extensions are recognized source suffixes in ".ext" lower-case form.
	extensions []string
}

// NewClassifier creates a classifier backed by patterns.
//
// A nil cache gets a private one.
func NewClassifier(patterns *PatternCache) *Classifier {
	if patterns == nil {
		patterns = NewPatternCache()
	}

	return &Classifier{
		patterns:        patterns,
		defaultExcludes: DefaultExcludes,
		extensions:      NormalizeExtensions(SourceExtensions),
	}
}

// Classify returns a deterministic decision for one filename.
//
// Decision order, first matching rule wins:
// 1. built-in exclude fragments (substring test)
// 2. source extension gate
// 3. include patterns, one must match when any are set
// 4. exclude patterns, any match skips
// 5. inject
//
// The only error is *InvalidPatternError for a malformed include/exclude pattern.
func (c *Classifier) Classify(filename string, opts Options) (Decision, error) {
	if fragment, ok := defaultExcludeFragment(excludeCandidate(filename), c.defaultExcludes); ok {
		return skip(ReasonDefaultExclude, fragment), nil
	}

	if !hasExtension(filename, c.extensions) {
		return skip(ReasonIrrelevantExtension, ""), nil
	}

	if len(opts.Include) > 0 {
		_, matched, err := c.patterns.FirstMatch(opts.Include, filename)
		if err != nil {
			return Decision{}, err
		}

		if !matched {
			return skip(ReasonNotIncluded, ""), nil
		}
	}

	if len(opts.Exclude) > 0 {
		pattern, matched, err := c.patterns.FirstMatch(opts.Exclude, filename)
		if err != nil {
			return Decision{}, err
		}

		if matched {
			return skip(ReasonExcluded, pattern), nil
		}
	}

	return Decision{Action: ActionInject}, nil
}

// Patterns returns the pattern cache used by the classifier.
func (c *Classifier) Patterns() *PatternCache {
	return c.patterns
}
