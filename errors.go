// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"errors"
	"fmt"
)

// Sentinel errors for macroimport operations.
var (
	// ErrInvalidPattern indicates an include/exclude pattern that is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidStatement indicates a canonical statement that is not an import.
	ErrInvalidStatement = errors.New("invalid statement")
	// ErrNilTransformer indicates a nil Transformer receiver.
	ErrNilTransformer = errors.New("transformer is nil")
	// ErrNilProgram indicates a nil Program argument.
	ErrNilProgram = errors.New("program is nil")
)

// InvalidPatternError reports one pattern that failed to compile.
type InvalidPatternError struct {
	// Pattern is the offending pattern source.
	Pattern string
	// Err is the underlying compile error.
	Err error
}

// Error implements error.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrInvalidPattern, e.Pattern, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidPattern) report true.
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}
