// Package validate orchestrates the structural validation of a loaded
// project: required fields, reference integrity, target compatibility and
// cycle detection. Rules are independent and non-short-circuiting, so a
// single pass surfaces the complete problem set.
package validate

import (
	"github.com/specforge/specforge/compiler/diag"
	"github.com/specforge/specforge/compiler/symbol"
	"github.com/specforge/specforge/spec"
)

// rule is one independent validation check. Rules append findings to the
// shared report and never abort the pass.
type rule func(p *spec.Project, r *symbol.Resolver, report *Report)

var rules = []rule{
	checkRequiredFields,
	checkReferences,
	checkTarget,
	checkCycles,
}

// Validate runs every rule over the project and merges all findings into one
// report. Index-construction diagnostics (duplicate symbols) are included.
func Validate(p *spec.Project) *Report {
	report := &Report{}
	idx, ds := symbol.BuildIndex(p)
	report.Append(ds...)
	resolver := symbol.NewResolver(idx)
	for _, r := range rules {
		r(p, resolver, report)
	}
	return report
}

// checkRequiredFields verifies the minimal shape of every definition.
func checkRequiredFields(p *spec.Project, _ *symbol.Resolver, report *Report) {
	for _, f := range p.Routes {
		rt := f.Def
		if rt.Name == "" {
			report.Append(missing(f.Path, diag.Path("name"), "route has no name", `add a "name" field`))
		}
		if rt.Path == "" {
			report.Append(missing(f.Path, diag.Path("path"), "route has no path", `add a "path" such as "/users/:id"`))
		}
		if len(rt.Methods) == 0 {
			report.Append(missing(f.Path, diag.Path("methods"), "route declares no methods", `add at least one method such as "GET"`))
		}
		for _, m := range sortedMethods(rt.Methods) {
			if rt.Methods[m].Handler.Ref == "" {
				report.Append(missing(f.Path, diag.Path("methods", m, "handler"),
					"method "+m+" has no handler reference", `add {"handler": {"ref": "<handler name>"}}`))
			}
		}
	}
	for _, f := range p.Schemas {
		if f.Def.Name == "" {
			report.Append(missing(f.Path, diag.Path("name"), "schema has no name", `add a "name" field`))
		}
	}
	for _, f := range p.Models {
		if f.Def.Name == "" {
			report.Append(missing(f.Path, diag.Path("name"), "model has no name", `add a "name" field`))
		}
		if len(f.Def.Columns) == 0 {
			report.Append(missing(f.Path, diag.Path("columns"), "model has no columns", "add at least one column"))
		}
	}
	for _, f := range p.Middlewares {
		if f.Def.Name == "" {
			report.Append(missing(f.Path, diag.Path("name"), "middleware has no name", `add a "name" field`))
		}
	}
	for _, f := range p.Handlers {
		if f.Def.Name == "" {
			report.Append(missing(f.Path, diag.Path("name"), "handler has no name", `add a "name" field`))
		}
	}
}

func missing(file, path, msg, suggestion string) diag.Diagnostic {
	d := diag.Errorf(diag.CodeMissingField, file, path, "%s", msg)
	d.Suggestion = suggestion
	return d
}

// checkReferences resolves every cross-entity reference at its exact
// structured path. Each unresolved reference becomes one diagnostic.
func checkReferences(p *spec.Project, r *symbol.Resolver, report *Report) {
	for _, f := range p.Routes {
		for _, m := range sortedMethods(f.Def.Methods) {
			rm := f.Def.Methods[m]
			if rm.Handler.Ref != "" {
				if _, d := r.ResolveOrError(rm.Handler, symbol.KindHandler, f.Path, diag.Path("methods", m, "handler", "ref")); d != nil {
					report.Append(*d)
				}
			}
			for i, mw := range rm.Middlewares {
				if _, d := r.ResolveOrError(mw, symbol.KindMiddleware, f.Path, diag.Path("methods", m, "middlewares", itoa(i), "ref")); d != nil {
					report.Append(*d)
				}
			}
			if rm.Request != nil {
				if _, d := r.ResolveOrError(*rm.Request, symbol.KindSchema, f.Path, diag.Path("methods", m, "request", "ref")); d != nil {
					report.Append(*d)
				}
			}
			if rm.Response != nil {
				if _, d := r.ResolveOrError(*rm.Response, symbol.KindSchema, f.Path, diag.Path("methods", m, "response", "ref")); d != nil {
					report.Append(*d)
				}
			}
		}
		for i, mw := range f.Def.Middlewares {
			if _, d := r.ResolveOrError(mw, symbol.KindMiddleware, f.Path, diag.Path("middlewares", itoa(i), "ref")); d != nil {
				report.Append(*d)
			}
		}
	}
	if p.Config != nil {
		for i, mw := range p.Config.Middleware.Global {
			if _, d := r.ResolveOrError(mw, symbol.KindMiddleware, configFile(p), diag.Path("middleware", "global", itoa(i), "ref")); d != nil {
				report.Append(*d)
			}
		}
	}
	for _, f := range p.Middlewares {
		if f.Def.Handler != nil && f.Def.Handler.Ref != "" {
			if _, d := r.ResolveOrError(*f.Def.Handler, symbol.KindHandler, f.Path, diag.Path("handler", "ref")); d != nil {
				report.Append(*d)
			}
		}
		for i, c := range f.Def.Composes {
			if _, d := r.ResolveOrError(c, symbol.KindMiddleware, f.Path, diag.Path("composes", itoa(i), "ref")); d != nil {
				report.Append(*d)
			}
		}
	}
	for _, f := range p.Models {
		for _, name := range sortedRelations(f.Def.Relations) {
			rel := f.Def.Relations[name]
			if _, d := r.ResolveOrError(rel.Target, symbol.KindModel, f.Path, diag.Path("relations", name, "target")); d != nil {
				report.Append(*d)
			}
		}
	}
}

// checkTarget verifies the declared (language, framework) pairing against the
// compatibility matrix. An incompatible pairing is a single diagnostic naming
// both sides.
func checkTarget(p *spec.Project, _ *symbol.Resolver, report *Report) {
	if p.Config == nil {
		return
	}
	t := p.Config.Target
	if t.Language == "" && t.Framework == "" {
		return
	}
	if !spec.Compatible(t.Language, t.Framework) {
		report.Append(diag.Errorf(diag.CodeIncompatibleTarget, configFile(p), diag.Path("target"),
			"framework %q is not compatible with language %q", t.Framework, t.Language))
	}
}

// configFile locates config diagnostics at the file the project was loaded
// from, falling back to the canonical name for in-memory projects.
func configFile(p *spec.Project) string {
	if p.ConfigPath != "" {
		return p.ConfigPath
	}
	return "specforge.json"
}
