// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// LogPrefix tags every diagnostic line.
const LogPrefix = "macroimport"

// TransformerOptions configures one transformer.
type TransformerOptions struct {
	// Logger receives diagnostics as Info records when Options.Debug is set.
	// Nil discards them.
	Logger *slog.Logger
	// Patterns is a shared pattern cache. Nil creates a private one.
	Patterns *PatternCache
	// Decisions is a shared decision cache. Nil creates a private one.
	Decisions *DecisionCache
}

// Transformer runs classification, caching and injection for a stream of files.
//
// One transformer corresponds to one host run. It is safe for concurrent use, but
// processing the same filename concurrently may inject into both programs before
// either result is cached.
type Transformer struct {
	// classifier holds the pattern cache.
	classifier *Classifier
	// decisions memoizes terminal results per filename.
	decisions *DecisionCache
	// logger receives debug diagnostics.
	logger *slog.Logger
	// canonical is the statement prepended to eligible files.
	canonical ImportDecl

	skipped        atomic.Int64
	alreadyPresent atomic.Int64
	injected       atomic.Int64
}

// Stats is a point-in-time snapshot of transformer counters.
type Stats struct {
	// Compiles is the number of regexp compilations.
	Compiles int64 `json:"compiles" yaml:"compiles"`
	// Hits is the number of decision cache hits.
	Hits int64 `json:"hits" yaml:"hits"`
	// Misses is the number of decision cache misses.
	Misses int64 `json:"misses" yaml:"misses"`
	// Skipped counts files classified as skip.
	Skipped int64 `json:"skipped" yaml:"skipped"`
	// AlreadyPresent counts files that already imported the macro module.
	AlreadyPresent int64 `json:"already_present" yaml:"already_present"`
	// Injected counts files that received the import.
	Injected int64 `json:"injected" yaml:"injected"`
}

// NewTransformer creates a transformer with its own or injected caches.
func NewTransformer(opts TransformerOptions) *Transformer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	decisions := opts.Decisions
	if decisions == nil {
		decisions = NewDecisionCache()
	}

	return &Transformer{
		classifier: NewClassifier(opts.Patterns),
		decisions:  decisions,
		logger:     logger,
		canonical:  CanonicalImport(),
	}
}

// ProgramLoader returns the program of a file classified for injection.
type ProgramLoader func() (Program, error)

// Process classifies filename and injects the macro import into prog when eligible.
//
// A filename seen before returns its recorded result with Cached set, without
// classification or injection. prog is only touched for inject decisions and may be
// nil when the caller knows the file is skipped. Errors are not cached.
func (t *Transformer) Process(filename string, prog Program, opts Options) (Result, error) {
	return t.ProcessLoad(filename, func() (Program, error) { return prog, nil }, opts)
}

// ProcessLoad is Process with a program that is loaded only for inject decisions.
//
// Skipped and cached files never call load. A load error is returned wrapped, and
// nothing is counted or cached for the file.
func (t *Transformer) ProcessLoad(filename string, load ProgramLoader, opts Options) (Result, error) {
	if t == nil {
		return Result{}, ErrNilTransformer
	}

	if res, ok := t.decisions.Get(filename); ok {
		res.Cached = true
		return res, nil
	}

	decision, err := t.classifier.Classify(filename, opts)
	if err != nil {
		return Result{}, fmt.Errorf("classify %q: %w", filename, err)
	}

	res := Result{Decision: decision, State: StateSkipped}
	if decision.Action == ActionInject {
		if load == nil {
			return Result{}, fmt.Errorf("inject %q: %w", filename, ErrNilProgram)
		}

		prog, err := load()
		if err != nil {
			return Result{}, fmt.Errorf("load %q: %w", filename, err)
		}

		if prog == nil {
			return Result{}, fmt.Errorf("inject %q: %w", filename, ErrNilProgram)
		}

		outcome, err := MaybeInject(prog, t.canonical)
		if err != nil {
			return Result{}, fmt.Errorf("inject %q: %w", filename, err)
		}

		res.State = StateInjected
		if outcome == OutcomeAlreadyPresent {
			res.State = StateAlreadyPresent
		}
	}

	t.count(res.State)
	t.decisions.Set(filename, res)

	if opts.Debug {
		t.logResult(filename, res)
	}

	return res, nil
}

// Classify returns the decision for filename without injection or decision caching.
//
// Patterns are still compiled through the shared pattern cache.
func (t *Transformer) Classify(filename string, opts Options) (Decision, error) {
	if t == nil {
		return Decision{}, ErrNilTransformer
	}

	decision, err := t.classifier.Classify(filename, opts)
	if err != nil {
		return Decision{}, fmt.Errorf("classify %q: %w", filename, err)
	}

	return decision, nil
}

// Reset clears the decision cache for a new independent run.
//
// Compiled patterns and counters are kept.
func (t *Transformer) Reset() {
	if t == nil {
		return
	}

	t.decisions.Reset()
}

// Stats returns current counters.
func (t *Transformer) Stats() Stats {
	if t == nil {
		return Stats{}
	}

	return Stats{
		Compiles:       t.classifier.Patterns().Compiles(),
		Hits:           t.decisions.Hits(),
		Misses:         t.decisions.Misses(),
		Skipped:        t.skipped.Load(),
		AlreadyPresent: t.alreadyPresent.Load(),
		Injected:       t.injected.Load(),
	}
}

// count increments the counter for state.
func (t *Transformer) count(state State) {
	switch state {
	case StateSkipped:
		t.skipped.Add(1)
	case StateAlreadyPresent:
		t.alreadyPresent.Add(1)
	case StateInjected:
		t.injected.Add(1)
	}
}

// logResult emits one diagnostic line for a processed file.
func (t *Transformer) logResult(filename string, res Result) {
	var msg string
	switch res.State {
	case StateInjected:
		msg = fmt.Sprintf("%s: Injected import in %q", LogPrefix, filename)
	case StateAlreadyPresent:
		msg = fmt.Sprintf("%s: Skipped injection in %q", LogPrefix, filename)
	default:
		switch res.Decision.Reason {
		case ReasonDefaultExclude:
			msg = fmt.Sprintf("%s: Matched default exclude pattern %q on %q", LogPrefix, res.Decision.Pattern, filename)
		case ReasonExcluded:
			msg = fmt.Sprintf("%s: Matched exclude pattern %q on %q", LogPrefix, res.Decision.Pattern, filename)
		case ReasonNotIncluded:
			msg = fmt.Sprintf("%s: Not included %q", LogPrefix, filename)
		default:
			msg = fmt.Sprintf("%s: Irrelevant extension %q", LogPrefix, filename)
		}
	}

	t.logger.Info(msg,
		slog.String("file", filename),
		slog.String("state", res.State.String()),
		slog.String("reason", string(res.Decision.Reason)),
	)
}
