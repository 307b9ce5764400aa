// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

// Package jsast exposes the top-level statements of JavaScript and TypeScript files
// through tree-sitter and renders prepended imports back into the source.
package jsast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/woozymasta/macroimport"
)

// Node types of the tree-sitter JavaScript/TypeScript grammars.
const (
	nodeImport     = "import_statement"
	nodeExpression = "expression_statement"
	nodeString     = "string"
	nodeComment    = "comment"
	nodeHashBang   = "hash_bang_line"
)

var (
	errLanguageNotAvailable = errors.New("language not available")
	errPoolType             = errors.New("unexpected parser pool type")
	errNoRootNode           = errors.New("no root node")

	// ErrUnrenderable is returned by Prepend for statements without a source form.
	ErrUnrenderable = errors.New("statement cannot be rendered")
)

// Statement is one top-level statement of a parsed file.
type Statement struct {
	// Kind is the tree-sitter node type.
	Kind string
	// Source is the imported module for import statements.
	Source string
	// Start is the byte offset of the statement in the original source.
	Start uint
	// End is the byte offset after the statement in the original source.
	End uint
}

// ImportSource implements macroimport.Statement.
func (s Statement) ImportSource() (string, bool) {
	if s.Kind != nodeImport {
		return "", false
	}

	return s.Source, true
}

// File is a parsed source file implementing macroimport.Program.
//
// Comments, a hashbang line and the directive prologue ('use strict', 'use client')
// are not statements. Prepended statements are rendered after the prologue.
type File struct {
	name       string
	grammar    string
	src        []byte
	statements []macroimport.Statement
	prepended  []string
	insertAt   int
}

// Parse parses src with the grammar chosen by filename.
func Parse(filename string, src []byte) (*File, error) {
	grammar := GrammarFor(filename)

	lang := language(grammar)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", errLanguageNotAvailable, grammar)
	}

	pool := parserPool(grammar, lang)

	parser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer pool.Put(parser)

	if src == nil {
		src = []byte{}
	}

	tree, err := parser.ParseString(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("parse %s: %w", filename, errNoRootNode)
	}

	f := &File{
		name:    filename,
		grammar: grammar,
		src:     src,
	}
	f.collect(root)

	return f, nil
}

// collect records body statements and the prologue end offset.
func (f *File) collect(root sitter.Node) {
	prologueEnd := -1
	inPrologue := true

	for idx := range root.NamedChildCount() {
		child := root.NamedChild(idx)
		typ := child.Type()

		switch {
		case typ == nodeComment:
			continue
		case typ == nodeHashBang:
			prologueEnd = int(child.EndByte())
			continue
		case inPrologue && f.isDirective(child):
			prologueEnd = int(child.EndByte())
			continue
		}

		inPrologue = false
		stmt := Statement{
			Kind:  typ,
			Start: child.StartByte(),
			End:   child.EndByte(),
		}

		if typ == nodeImport {
			if source := child.ChildByFieldName("source"); !source.IsNull() {
				stmt.Source = unquote(f.text(source))
			}
		}

		f.statements = append(f.statements, stmt)
	}

	if prologueEnd >= 0 {
		f.insertAt = lineEnd(f.src, prologueEnd)
	}
}

// isDirective reports whether node is an expression statement holding only a string literal.
func (f *File) isDirective(node sitter.Node) bool {
	if node.Type() != nodeExpression || node.NamedChildCount() != 1 {
		return false
	}

	return node.NamedChild(0).Type() == nodeString
}

// text returns the source text of node.
func (f *File) text(node sitter.Node) string {
	start, end := node.StartByte(), node.EndByte()
	if end > uint(len(f.src)) || start > end {
		return ""
	}

	return string(f.src[start:end])
}

// Len implements macroimport.Program.
func (f *File) Len() int {
	return len(f.statements)
}

// Statement implements macroimport.Program.
func (f *File) Statement(i int) macroimport.Statement {
	return f.statements[i]
}

// Prepend implements macroimport.Program. stmt must implement fmt.Stringer.
func (f *File) Prepend(stmt macroimport.Statement) error {
	s, ok := stmt.(fmt.Stringer)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnrenderable, stmt)
	}

	f.statements = append([]macroimport.Statement{stmt}, f.statements...)
	f.prepended = append([]string{s.String()}, f.prepended...)

	return nil
}

// Changed reports whether any statement was prepended.
func (f *File) Changed() bool {
	return len(f.prepended) > 0
}

// Name returns the filename given to Parse.
func (f *File) Name() string {
	return f.name
}

// Grammar returns the grammar used to parse the file.
func (f *File) Grammar() string {
	return f.grammar
}

// Bytes renders the source with prepended statements.
//
// The original bytes are returned unchanged when nothing was prepended.
func (f *File) Bytes() []byte {
	if !f.Changed() {
		return f.src
	}

	var buf bytes.Buffer
	buf.Grow(len(f.src) + 32*len(f.prepended))

	head := f.src[:f.insertAt]
	buf.Write(head)
	if len(head) > 0 && head[len(head)-1] != '\n' {
		buf.WriteByte('\n')
	}

	buf.WriteString(strings.Join(f.prepended, "\n"))
	buf.WriteByte('\n')
	buf.Write(f.src[f.insertAt:])

	return buf.Bytes()
}

// lineEnd returns the offset after the line break that follows offset, or len(src).
func lineEnd(src []byte, offset int) int {
	if offset >= len(src) {
		return len(src)
	}

	if i := bytes.IndexByte(src[offset:], '\n'); i >= 0 {
		return offset + i + 1
	}

	return len(src)
}

// unquote strips matching JavaScript string quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}

	return s
}
