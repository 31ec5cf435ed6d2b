// Package symbol builds the cross-file symbol index for a loaded project and
// resolves references against it. Kinds are disjoint namespaces: a name that
// exists under the wrong kind is treated as not found.
package symbol

import (
	"fmt"

	"github.com/specforge/specforge/compiler/diag"
	"github.com/specforge/specforge/spec"
)

// Kind distinguishes which namespace a reference must resolve into.
type Kind string

// Symbol kinds.
const (
	KindRoute      Kind = "route"
	KindSchema     Kind = "schema"
	KindModel      Kind = "model"
	KindMiddleware Kind = "middleware"
	KindHandler    Kind = "handler"
)

// Definition is an entry of the index: a definition of any spec kind together
// with its originating file.
type Definition struct {
	Kind Kind
	// Name is the qualified name the definition is indexed under.
	Name string
	// File is the source file the definition was loaded from.
	File string
	// Def holds the underlying *spec.Route, *spec.Schema, *spec.Model,
	// *spec.Middleware or *spec.Handler.
	Def any
}

type key struct {
	kind Kind
	name string
}

// Index maps (kind, qualified name) to a definition. It is built once per
// validation or generation pass and never mutated afterward, so concurrent
// lookups need no coordination.
type Index struct {
	defs  map[key]*Definition
	order []*Definition
}

// BuildIndex scans every definition across all five kinds and files. Duplicate
// qualified names within one kind keep the first definition and append a
// warning-severity diagnostic for each shadowed one.
func BuildIndex(p *spec.Project) (*Index, []diag.Diagnostic) {
	idx := &Index{defs: make(map[key]*Definition)}
	var ds []diag.Diagnostic
	for _, f := range p.Routes {
		ds = idx.insert(KindRoute, f.Def.Name, f.Path, f.Def, ds)
	}
	for _, f := range p.Schemas {
		ds = idx.insert(KindSchema, f.Def.Name, f.Path, f.Def, ds)
	}
	for _, f := range p.Models {
		ds = idx.insert(KindModel, f.Def.Name, f.Path, f.Def, ds)
	}
	for _, f := range p.Middlewares {
		ds = idx.insert(KindMiddleware, f.Def.Name, f.Path, f.Def, ds)
	}
	for _, f := range p.Handlers {
		ds = idx.insert(KindHandler, f.Def.Name, f.Path, f.Def, ds)
	}
	return idx, ds
}

func (i *Index) insert(kind Kind, name, file string, def any, ds []diag.Diagnostic) []diag.Diagnostic {
	if name == "" {
		// Nameless definitions are reported by the required-fields rule,
		// not the index.
		return ds
	}
	k := key{kind: kind, name: name}
	if prev, ok := i.defs[k]; ok {
		return append(ds, diag.Warnf(diag.CodeDuplicateSymbol, file, diag.Path("name"),
			"%s %q already defined in %s; this definition is ignored", kind, name, prev.File))
	}
	d := &Definition{Kind: kind, Name: name, File: file, Def: def}
	i.defs[k] = d
	i.order = append(i.order, d)
	return ds
}

// Lookup returns the definition for (kind, name). A missing key is a normal,
// expected outcome, reported through the second return value.
func (i *Index) Lookup(kind Kind, name string) (*Definition, bool) {
	d, ok := i.defs[key{kind: kind, name: name}]
	return d, ok
}

// Len returns the number of indexed definitions.
func (i *Index) Len() int { return len(i.order) }

// All returns the indexed definitions in insertion order.
func (i *Index) All() []*Definition {
	out := make([]*Definition, len(i.order))
	copy(out, i.order)
	return out
}

// Resolver answers reference lookups against a borrowed index. It holds no
// mutable state and may be invoked concurrently from multiple checks.
type Resolver struct {
	index *Index
}

// NewResolver returns a resolver over the given index.
func NewResolver(idx *Index) *Resolver {
	return &Resolver{index: idx}
}

// ResolveOrError looks up a reference under the expected kind only. On failure
// it returns a diagnostic carrying the offending file and structured path, so
// the caller does not need to reconstruct location context.
func (r *Resolver) ResolveOrError(ref spec.Ref, kind Kind, file, path string) (*Definition, *diag.Diagnostic) {
	if d, ok := r.index.Lookup(kind, ref.Ref); ok {
		return d, nil
	}
	d := diag.Errorf(diag.CodeUnresolvedReference, file, path,
		"unresolved %s reference %q", kind, ref.Ref)
	d.Suggestion = fmt.Sprintf("define a %s named %q or fix the reference", kind, ref.Ref)
	return nil, &d
}
