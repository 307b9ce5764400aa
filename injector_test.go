// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package macroimport

import (
	"errors"
	"testing"
)

type failingProgram struct {
	StatementList
}

var errPrependFailed = errors.New("prepend failed")

func (p *failingProgram) Prepend(Statement) error {
	return errPrependFailed
}

func TestMaybeInjectEmptyProgram(t *testing.T) {
	t.Parallel()

	prog := &StatementList{}
	outcome, err := MaybeInject(prog, CanonicalImport())
	if err != nil {
		t.Fatalf("MaybeInject: %v", err)
	}

	if outcome != OutcomeInjected {
		t.Fatalf("outcome=%v, want injected", outcome)
	}

	if prog.Len() != 1 || prog.Statement(0) != CanonicalImport() {
		t.Fatalf("program=%+v, want exactly the canonical import", prog.Items)
	}
}

func TestMaybeInjectAlreadyPresent(t *testing.T) {
	t.Parallel()

	prog := &StatementList{Items: []Statement{
		ImportDecl{Source: "react"},
		ImportDecl{Source: MacroModule},
		OtherStmt{Kind: "function"},
	}}

	outcome, err := MaybeInject(prog, CanonicalImport())
	if err != nil {
		t.Fatalf("MaybeInject: %v", err)
	}

	if outcome != OutcomeAlreadyPresent || prog.Len() != 3 {
		t.Fatalf("outcome=%v len=%d, want already-present and 3", outcome, prog.Len())
	}
}

func TestMaybeInjectPrependsBeforeOtherImports(t *testing.T) {
	t.Parallel()

	prog := &StatementList{Items: []Statement{
		ImportDecl{Source: "react"},
		OtherStmt{Kind: "export"},
	}}

	outcome, err := MaybeInject(prog, CanonicalImport())
	if err != nil {
		t.Fatalf("MaybeInject: %v", err)
	}

	if outcome != OutcomeInjected || prog.Len() != 3 {
		t.Fatalf("outcome=%v len=%d, want injected and 3", outcome, prog.Len())
	}

	if src, _ := prog.Statement(0).ImportSource(); src != MacroModule {
		t.Fatalf("first statement imports %q, want %q", src, MacroModule)
	}
}

func TestMaybeInjectMissesLateImport(t *testing.T) {
	t.Parallel()

	// The scan stops at the first non-import statement.
	prog := &StatementList{Items: []Statement{
		OtherStmt{Kind: "variable"},
		ImportDecl{Source: MacroModule},
	}}

	outcome, err := MaybeInject(prog, CanonicalImport())
	if err != nil {
		t.Fatalf("MaybeInject: %v", err)
	}

	if outcome != OutcomeInjected || prog.Len() != 3 {
		t.Fatalf("outcome=%v len=%d, want injected and 3", outcome, prog.Len())
	}
}

func TestMaybeInjectRejectsNonImportCanonical(t *testing.T) {
	t.Parallel()

	prog := &StatementList{}
	_, err := MaybeInject(prog, OtherStmt{})
	if !errors.Is(err, ErrInvalidStatement) {
		t.Fatalf("err=%v, want ErrInvalidStatement", err)
	}

	if prog.Len() != 0 {
		t.Fatalf("program mutated on error")
	}
}

func TestMaybeInjectPropagatesPrependError(t *testing.T) {
	t.Parallel()

	_, err := MaybeInject(&failingProgram{}, CanonicalImport())
	if !errors.Is(err, errPrependFailed) {
		t.Fatalf("err=%v, want errPrependFailed", err)
	}
}

func TestMaybeInjectNilProgram(t *testing.T) {
	t.Parallel()

	if _, err := MaybeInject(nil, CanonicalImport()); !errors.Is(err, ErrNilProgram) {
		t.Fatalf("err=%v, want ErrNilProgram", err)
	}
}

func TestImportDeclString(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		MacroModule:  "import 'twin.macro';",
		"it's":       `import 'it\'s';`,
		`say "hi"`:   `import 'say "hi"';`,
		`back\slash`: `import 'back\\slash';`,
	}

	for source, want := range cases {
		if got := (ImportDecl{Source: source}).String(); got != want {
			t.Fatalf("String(%q)=%s, want %s", source, got, want)
		}
	}
}
