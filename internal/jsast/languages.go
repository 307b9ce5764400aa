// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package jsast

import (
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
)

// Grammar names.
const (
	GrammarJavaScript = "javascript"
	GrammarTypeScript = "typescript"
	GrammarTSX        = "tsx"
)

// languageFuncs maps grammar names to their tree-sitter GetLanguage functions.
var languageFuncs = map[string]func() unsafe.Pointer{
	GrammarJavaScript: javascript.GetLanguage,
	GrammarTypeScript: typescript.GetLanguage,
	GrammarTSX:        tsx.GetLanguage,
}

var (
	languageCache sync.Map
	parserPools   sync.Map
)

// GrammarFor returns the grammar used to parse filename.
//
// TypeScript suffixes get the typescript grammar, ".tsx" gets tsx and everything
// else is parsed as JavaScript with JSX.
func GrammarFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript
	case ".tsx":
		return GrammarTSX
	default:
		return GrammarJavaScript
	}
}

// language returns the tree-sitter Language for the given grammar, or nil if not supported.
func language(name string) *sitter.Language {
	if cached, ok := languageCache.Load(name); ok {
		if lang, castOK := cached.(*sitter.Language); castOK {
			return lang
		}
	}

	fn, ok := languageFuncs[name]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	languageCache.Store(name, lang)

	return lang
}

// parserPool returns the shared parser pool for one grammar.
func parserPool(name string, lang *sitter.Language) *sync.Pool {
	if cached, ok := parserPools.Load(name); ok {
		if pool, castOK := cached.(*sync.Pool); castOK {
			return pool
		}
	}

	pool := &sync.Pool{
		New: func() any {
			p := sitter.NewParser()
			p.SetLanguage(lang)

			return p
		},
	}

	actual, _ := parserPools.LoadOrStore(name, pool)
	if stored, ok := actual.(*sync.Pool); ok {
		return stored
	}

	return pool
}
