// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

// Action is the classifier verdict for one filename.
type Action uint8

const (
	// ActionSkip means the file must be left untouched.
	ActionSkip Action = iota
	// ActionInject means the file proceeds to the import check.
	ActionInject
)

// String returns a stable lower-case name of the action.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionInject:
		return "inject"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Reason names the classification rule that produced a skip.
type Reason string

const (
	// ReasonNone is used for inject decisions.
	ReasonNone Reason = ""
	// ReasonDefaultExclude means a built-in exclude fragment was found in the filename.
	ReasonDefaultExclude Reason = "default-exclude"
	// ReasonIrrelevantExtension means the filename does not end with a source extension.
	ReasonIrrelevantExtension Reason = "irrelevant-extension"
	// ReasonNotIncluded means include patterns are set and none matched.
	ReasonNotIncluded Reason = "not-included"
	// ReasonExcluded means a custom exclude pattern matched.
	ReasonExcluded Reason = "excluded"
)

// Options is a per-call classification snapshot.
type Options struct {
	// Include lists patterns of which at least one must match, empty disables the filter.
	Include []string `json:"include,omitempty" yaml:"include,omitempty" mapstructure:"include"`
	// Exclude lists patterns that skip a file on any match, empty disables the filter.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude"`
	// Debug enables one diagnostic line per processed file.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty" mapstructure:"debug"`
}

// Decision is a deterministic classification for one filename.
type Decision struct {
	// Action is the verdict.
	Action Action `json:"action" yaml:"action"`
	// Reason is the skip reason, empty for inject.
	Reason Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Pattern is the matched exclude pattern or built-in fragment, when any.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// State is the terminal per-file state recorded in the decision cache.
type State uint8

const (
	// StateSkipped means classification skipped the file.
	StateSkipped State = iota + 1
	// StateAlreadyPresent means the file already imports the macro module.
	StateAlreadyPresent
	// StateInjected means the import was prepended.
	StateInjected
)

// String returns a stable lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateSkipped:
		return "skipped"
	case StateAlreadyPresent:
		return "already-present"
	case StateInjected:
		return "injected"
	default:
		return "unseen"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of processing one file.
type Result struct {
	// Decision is the classification that led to State.
	Decision Decision `json:"decision" yaml:"decision"`
	// State is the terminal state.
	State State `json:"state" yaml:"state"`
	// Cached reports whether the result was served from the decision cache.
	Cached bool `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// skip builds a skip decision.
func skip(reason Reason, pattern string) Decision {
	return Decision{Action: ActionSkip, Reason: reason, Pattern: pattern}
}
