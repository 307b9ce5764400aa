// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

/*
Package macroimport decides which source files need an `import 'twin.macro';`
statement and injects it exactly once.

The package is the classification and caching engine of a build-time source filter.
Parsing and printing source files is left to a collaborator that implements `Program`.

Basic flow:
  - create one transformer per run (`NewTransformer`)
  - for each visited file call `Process` with the filename, its `Program` and `Options`
  - repeated visits of one filename are served from the decision cache
  - use `Classify` for a dry run without touching the program

Classification order (first match wins):
  - built-in excludes (dependency, cache and declaration paths), plain substring test
  - source extension gate (`.js`, `.jsx`, `.mjs`, `.cjs`, `.ts`, `.tsx`, `.mts`, `.cts`)
  - include patterns, at least one must be found in the filename
  - exclude patterns, any match skips the file

Patterns are Go regular expressions (RE2) matched anywhere in the filename.
Compiled patterns are cached per transformer and never evicted.

The decision cache is keyed by filename only. A file whose content changes between two
visits within one run keeps its first decision; call `Transformer.Reset` between
independent runs.

The import scan stops at the first non-import top-level statement, so an import of the
macro module placed after other code is not detected and the import is added again.
*/
package macroimport
