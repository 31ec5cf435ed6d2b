package gen

import "strings"

// Import identifies one collected import: what is imported and from where.
// Deduplication is on the full pair, so `{ z }` from "zod" and `z` from "zod"
// are distinct entries.
type Import struct {
	Names string
	From  string
}

// Context is the mutable per-pass emission state: indentation bookkeeping and
// an insertion-ordered, deduplicated import list. A context is scoped to one
// generated file and discarded afterward; it must never be shared across
// concurrent generation passes.
type Context struct {
	unit    string
	level   int
	imports []Import
	seen    map[Import]struct{}
}

// NewContext returns a context using the given indentation unit (for example
// "  " or "\t").
func NewContext(unit string) *Context {
	return &Context{unit: unit, seen: make(map[Import]struct{})}
}

// Indent increases the indentation level.
func (c *Context) Indent() { c.level++ }

// Dedent decreases the indentation level. It never goes below zero.
func (c *Context) Dedent() {
	if c.level > 0 {
		c.level--
	}
}

// Level returns the current indentation level.
func (c *Context) Level() int { return c.level }

// Pad returns the indentation prefix for the current level.
func (c *Context) Pad() string {
	return strings.Repeat(c.unit, c.level)
}

// Line returns s prefixed with the current indentation.
func (c *Context) Line(s string) string {
	return c.Pad() + s
}

// AddImport records an import, deduplicating on the (names, from) pair and
// preserving first-insertion order.
func (c *Context) AddImport(names, from string) {
	imp := Import{Names: names, From: from}
	if _, ok := c.seen[imp]; ok {
		return
	}
	c.seen[imp] = struct{}{}
	c.imports = append(c.imports, imp)
}

// Imports returns the collected imports in first-insertion order.
func (c *Context) Imports() []Import {
	out := make([]Import, len(c.imports))
	copy(out, c.imports)
	return out
}
