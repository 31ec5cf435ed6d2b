package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/specforge/compiler/diag"
	"github.com/specforge/specforge/spec"
)

// wellFormed builds a minimal project that passes every rule.
func wellFormed() *spec.Project {
	p := spec.NewProject()
	p.Config.Name = "shop"
	p.Config.Target = spec.Target{Language: spec.Typescript, Framework: spec.Express}
	p.Routes = append(p.Routes, spec.File[*spec.Route]{
		Path: "routes/users.route.json",
		Def: &spec.Route{
			Name: "users",
			Path: "/users/:id",
			Methods: map[string]*spec.RouteMethod{
				"GET": {Handler: spec.Ref{Ref: "get_user"}},
			},
		},
	})
	p.Handlers = append(p.Handlers, spec.File[*spec.Handler]{
		Path: "handlers/get_user.handler.json",
		Def:  &spec.Handler{Name: "get_user"},
	})
	return p
}

func TestValidateOK(t *testing.T) {
	report := Validate(wellFormed())
	assert.True(t, report.OK(), report.String())
	assert.Empty(t, report.Errors())
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func TestRequiredFields(t *testing.T) {
	t.Run("route without path or methods", func(t *testing.T) {
		p := wellFormed()
		p.Routes[0].Def.Path = ""
		p.Routes[0].Def.Methods = nil
		report := Validate(p)
		require.False(t, report.OK())
		assert.Contains(t, codes(report.Errors()), diag.CodeMissingField)
		assert.Len(t, report.Errors(), 2)
	})

	t.Run("method without handler", func(t *testing.T) {
		p := wellFormed()
		p.Routes[0].Def.Methods["POST"] = &spec.RouteMethod{}
		report := Validate(p)
		require.False(t, report.OK())
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, diag.CodeMissingField, errs[0].Code)
		assert.Equal(t, "$.methods.POST.handler", errs[0].Path)
	})

	t.Run("model without columns", func(t *testing.T) {
		p := wellFormed()
		p.Models = append(p.Models, spec.File[*spec.Model]{
			Path: "models/user.model.json",
			Def:  &spec.Model{Name: "user"},
		})
		report := Validate(p)
		require.Len(t, report.Errors(), 1)
		assert.Equal(t, "$.columns", report.Errors()[0].Path)
	})
}

func TestReferences(t *testing.T) {
	t.Run("unresolved handler names the exact path", func(t *testing.T) {
		p := wellFormed()
		p.Routes[0].Def.Methods["GET"].Handler = spec.Ref{Ref: "nope"}
		report := Validate(p)
		require.False(t, report.OK())
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, diag.CodeUnresolvedReference, errs[0].Code)
		assert.Equal(t, "routes/users.route.json", errs[0].File)
		assert.Equal(t, "$.methods.GET.handler.ref", errs[0].Path)
	})

	t.Run("unresolved request schema", func(t *testing.T) {
		p := wellFormed()
		p.Routes[0].Def.Methods["GET"].Request = &spec.Ref{Ref: "create_user"}
		report := Validate(p)
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "$.methods.GET.request.ref", errs[0].Path)
	})

	t.Run("unresolved global middleware", func(t *testing.T) {
		p := wellFormed()
		p.Config.Middleware.Global = []spec.Ref{{Ref: "cors"}}
		report := Validate(p)
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "specforge.json", errs[0].File)
		assert.Equal(t, "$.middleware.global.0.ref", errs[0].Path)
	})

	t.Run("config diagnostics use the loaded config file", func(t *testing.T) {
		p := wellFormed()
		p.ConfigPath = "specforge.yaml"
		p.Config.Middleware.Global = []spec.Ref{{Ref: "cors"}}
		report := Validate(p)
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "specforge.yaml", errs[0].File)
	})

	t.Run("unresolved model relation", func(t *testing.T) {
		p := wellFormed()
		p.Models = append(p.Models, spec.File[*spec.Model]{
			Path: "models/post.model.json",
			Def: &spec.Model{
				Name:    "post",
				Columns: map[string]*spec.Column{"id": {Type: "uuid", Primary: true}},
				Relations: map[string]*spec.Relation{
					"author": {Kind: "belongsTo", Target: spec.Ref{Ref: "user"}},
				},
			},
		})
		report := Validate(p)
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "$.relations.author.target", errs[0].Path)
	})
}

func TestTarget(t *testing.T) {
	t.Run("incompatible pairing", func(t *testing.T) {
		p := wellFormed()
		p.Config.Target = spec.Target{Language: spec.Typescript, Framework: spec.Gin}
		report := Validate(p)
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, diag.CodeIncompatibleTarget, errs[0].Code)
		assert.Equal(t, "$.target", errs[0].Path)
	})

	t.Run("empty target is not checked", func(t *testing.T) {
		p := wellFormed()
		p.Config.Target = spec.Target{}
		assert.True(t, Validate(p).OK())
	})
}

func TestCycles(t *testing.T) {
	mw := func(name string, composes ...string) spec.File[*spec.Middleware] {
		def := &spec.Middleware{Name: name}
		for _, c := range composes {
			def.Composes = append(def.Composes, spec.Ref{Ref: c})
		}
		return spec.File[*spec.Middleware]{Path: "middleware/" + name + ".middleware.json", Def: def}
	}

	t.Run("two-node middleware cycle", func(t *testing.T) {
		p := wellFormed()
		p.Middlewares = append(p.Middlewares, mw("a", "b"), mw("b", "a"))
		report := Validate(p)
		require.False(t, report.OK())
		var cycles []diag.Diagnostic
		for _, d := range report.Errors() {
			if d.Code == diag.CodeCycleDetected {
				cycles = append(cycles, d)
			}
		}
		require.Len(t, cycles, 1)
		assert.Contains(t, cycles[0].Message, "a -> b -> a")
	})

	t.Run("self cycle", func(t *testing.T) {
		p := wellFormed()
		p.Middlewares = append(p.Middlewares, mw("loop", "loop"))
		report := Validate(p)
		var cycles int
		for _, d := range report.Errors() {
			if d.Code == diag.CodeCycleDetected {
				cycles++
			}
		}
		assert.Equal(t, 1, cycles)
	})

	t.Run("chain without cycle", func(t *testing.T) {
		p := wellFormed()
		p.Middlewares = append(p.Middlewares, mw("a", "b"), mw("b", "c"), mw("c"))
		for _, d := range Validate(p).Errors() {
			assert.NotEqual(t, diag.CodeCycleDetected, d.Code)
		}
	})

	t.Run("model relation cycle", func(t *testing.T) {
		p := wellFormed()
		model := func(name, target string) spec.File[*spec.Model] {
			return spec.File[*spec.Model]{
				Path: "models/" + name + ".model.json",
				Def: &spec.Model{
					Name:    name,
					Columns: map[string]*spec.Column{"id": {Type: "uuid", Primary: true}},
					Relations: map[string]*spec.Relation{
						"rel": {Kind: "hasMany", Target: spec.Ref{Ref: target}},
					},
				},
			}
		}
		p.Models = append(p.Models, model("user", "post"), model("post", "user"))
		report := Validate(p)
		var found bool
		for _, d := range report.Errors() {
			if d.Code == diag.CodeCycleDetected {
				found = true
				assert.Contains(t, d.Message, "model relation cycle")
				assert.Equal(t, "$.relations", d.Path)
			}
		}
		assert.True(t, found)
	})
}

func TestDuplicateSymbolIsWarning(t *testing.T) {
	p := wellFormed()
	p.Handlers = append(p.Handlers, spec.File[*spec.Handler]{
		Path: "handlers/dup.handler.json",
		Def:  &spec.Handler{Name: "get_user"},
	})
	report := Validate(p)
	assert.True(t, report.OK())
	require.Len(t, report.Diagnostics(), 1)
	assert.Equal(t, diag.CodeDuplicateSymbol, report.Diagnostics()[0].Code)
}
