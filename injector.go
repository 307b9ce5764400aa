// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"fmt"
	"strconv"
	"strings"
)

// MacroModule is the module whose import is injected.
const MacroModule = "twin.macro"

// Statement is one top-level statement as seen by the injector.
type Statement interface {
	// ImportSource returns the imported module name and true for import statements.
	ImportSource() (string, bool)
}

// Program is the mutable top-level statement list of one file.
//
// Implementations own the tree; the injector only reads import sources and
// performs at most one Prepend.
type Program interface {
	// Len returns the number of top-level statements.
	Len() int
	// Statement returns the statement at index i, 0 <= i < Len().
	Statement(i int) Statement
	// Prepend inserts stmt before the first top-level statement.
	Prepend(stmt Statement) error
}

// Outcome is the result of MaybeInject.
type Outcome uint8

const (
	// OutcomeInjected means the canonical import was prepended.
	OutcomeInjected Outcome = iota + 1
	// OutcomeAlreadyPresent means an identical import exists and nothing changed.
	OutcomeAlreadyPresent
)

// String returns a stable lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInjected:
		return "injected"
	case OutcomeAlreadyPresent:
		return "already-present"
	default:
		return "unknown"
	}
}

// ImportDecl is a side-effect import statement: import 'source';
type ImportDecl struct {
	// Source is the imported module name.
	Source string
}

// ImportSource implements Statement.
func (d ImportDecl) ImportSource() (string, bool) {
	return d.Source, true
}

// String renders the declaration as JavaScript source.
func (d ImportDecl) String() string {
	return "import " + singleQuote(d.Source) + ";"
}

// CanonicalImport returns the import statement injected into eligible files.
func CanonicalImport() ImportDecl {
	return ImportDecl{Source: MacroModule}
}

// MaybeInject prepends canonical to prog unless a leading import already imports
// the same module.
//
// The scan stops at the first non-import statement. Imports that follow other code
// are not seen and lead to a second import being prepended.
func MaybeInject(prog Program, canonical Statement) (Outcome, error) {
	if prog == nil {
		return 0, ErrNilProgram
	}

	module, ok := canonical.ImportSource()
	if !ok {
		return 0, fmt.Errorf("%w: canonical statement is not an import", ErrInvalidStatement)
	}

	for i := 0; i < prog.Len(); i++ {
		source, isImport := prog.Statement(i).ImportSource()
		if !isImport {
			break
		}

		if source == module {
			return OutcomeAlreadyPresent, nil
		}
	}

	if err := prog.Prepend(canonical); err != nil {
		return 0, fmt.Errorf("prepend import %q: %w", module, err)
	}

	return OutcomeInjected, nil
}

// StatementList is an in-memory Program.
type StatementList struct {
	// Items are the statements in source order.
	Items []Statement
}

// Len implements Program.
func (l *StatementList) Len() int {
	return len(l.Items)
}

// Statement implements Program.
func (l *StatementList) Statement(i int) Statement {
	return l.Items[i]
}

// Prepend implements Program.
func (l *StatementList) Prepend(stmt Statement) error {
	l.Items = append([]Statement{stmt}, l.Items...)
	return nil
}

// OtherStmt is a non-import statement placeholder for StatementList.
type OtherStmt struct {
	// Kind is a free-form statement kind, for diagnostics only.
	Kind string
}

// ImportSource implements Statement.
func (OtherStmt) ImportSource() (string, bool) {
	return "", false
}

// singleQuote quotes s with single quotes using JavaScript escaping rules for ' and \.
func singleQuote(s string) string {
	q := strconv.Quote(s)
	q = q[1 : len(q)-1]
	q = strings.ReplaceAll(q, `\"`, `"`)
	q = strings.ReplaceAll(q, `'`, `\'`)
	return "'" + q + "'"
}
