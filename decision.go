// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"sync"
	"sync/atomic"
)

// DecisionCache memoizes the terminal result per filename.
//
// Entries are write-once: the first Set for a filename wins and later calls are ignored.
// The key is the filename alone, content changes are not observed.
type DecisionCache struct {
	// results stores terminal results by filename.
	results map[string]Result
	// hits counts Get calls that found an entry.
	hits atomic.Int64
	// misses counts Get calls that found nothing.
	misses atomic.Int64
	// mu guards results.
	mu sync.Mutex
}

// NewDecisionCache creates an empty decision cache.
func NewDecisionCache() *DecisionCache {
	return &DecisionCache{
		results: make(map[string]Result),
	}
}

// Get returns the recorded result for filename.
func (c *DecisionCache) Get(filename string) (Result, bool) {
	c.mu.Lock()
	res, ok := c.results[filename]
	c.mu.Unlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	return res, ok
}

// Set records res for filename and reports whether it was stored.
func (c *DecisionCache) Set(filename string, res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.results[filename]; exists {
		return false
	}

	res.Cached = false
	c.results[filename] = res
	return true
}

// Len returns the number of recorded filenames.
func (c *DecisionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.results)
}

// Reset drops every recorded result. Hit/miss counters are kept.
func (c *DecisionCache) Reset() {
	c.mu.Lock()
	c.results = make(map[string]Result)
	c.mu.Unlock()
}

// Hits returns the number of cache hits.
func (c *DecisionCache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of cache misses.
func (c *DecisionCache) Misses() int64 {
	return c.misses.Load()
}
