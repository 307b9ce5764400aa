// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"regexp"
	"sync"
	"sync/atomic"
)

// PatternCache compiles and memoizes regular expressions by pattern source.
//
// Entries live as long as the cache. Pattern sets come from configuration and are small,
// so there is no eviction.
type PatternCache struct {
	// compiled stores compiled patterns by original source string.
	compiled map[string]*regexp.Regexp
	// compiles counts real regexp compilations, cache hits excluded.
	compiles atomic.Int64
	// mu guards compiled.
	mu sync.Mutex
}

// NewPatternCache creates an empty pattern cache.
func NewPatternCache() *PatternCache {
	return &PatternCache{
		compiled: make(map[string]*regexp.Regexp),
	}
}

// Compile returns the cached matcher for pattern, compiling it on first use.
//
// Invalid syntax returns *InvalidPatternError. Failed compilations are not cached,
// so every call with the same invalid pattern fails the same way.
func (c *PatternCache) Compile(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.compiled[pattern]; ok {
		return re, nil
	}

	c.compiles.Add(1)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}

	c.compiled[pattern] = re
	return re, nil
}

// FirstMatch returns the first pattern in input order found anywhere in s.
//
// An invalid pattern aborts the scan with its compile error, even when a later
// pattern would have matched.
func (c *PatternCache) FirstMatch(patterns []string, s string) (string, bool, error) {
	for _, pattern := range patterns {
		re, err := c.Compile(pattern)
		if err != nil {
			return "", false, err
		}

		if re.MatchString(s) {
			return pattern, true, nil
		}
	}

	return "", false, nil
}

// Len returns the number of cached compiled patterns.
func (c *PatternCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.compiled)
}

// Compiles returns the number of regexp compilations performed so far.
func (c *PatternCache) Compiles() int64 {
	return c.compiles.Load()
}
