package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/specforge/compiler/diag"
	"github.com/specforge/specforge/spec"
)

func project() *spec.Project {
	p := spec.NewProject()
	p.Routes = append(p.Routes, spec.File[*spec.Route]{
		Path: "routes/users.route.json",
		Def:  &spec.Route{Name: "users", Path: "/users"},
	})
	p.Schemas = append(p.Schemas, spec.File[*spec.Schema]{
		Path: "schemas/create_user.schema.json",
		Def:  &spec.Schema{Name: "create_user"},
	})
	p.Handlers = append(p.Handlers, spec.File[*spec.Handler]{
		Path: "handlers/get_user.handler.json",
		Def:  &spec.Handler{Name: "get_user"},
	})
	return p
}

func TestBuildIndex(t *testing.T) {
	t.Run("indexes every kind", func(t *testing.T) {
		idx, ds := BuildIndex(project())
		require.Empty(t, ds)
		require.Equal(t, 3, idx.Len())

		d, ok := idx.Lookup(KindRoute, "users")
		require.True(t, ok)
		assert.Equal(t, "routes/users.route.json", d.File)

		_, ok = idx.Lookup(KindHandler, "get_user")
		assert.True(t, ok)
	})

	t.Run("kinds are disjoint namespaces", func(t *testing.T) {
		idx, _ := BuildIndex(project())
		_, ok := idx.Lookup(KindMiddleware, "get_user")
		assert.False(t, ok)
	})

	t.Run("duplicate keeps first and warns", func(t *testing.T) {
		p := project()
		p.Handlers = append(p.Handlers, spec.File[*spec.Handler]{
			Path: "handlers/dup.handler.json",
			Def:  &spec.Handler{Name: "get_user"},
		})
		idx, ds := BuildIndex(p)
		require.Len(t, ds, 1)
		assert.Equal(t, diag.CodeDuplicateSymbol, ds[0].Code)
		assert.Equal(t, diag.SeverityWarning, ds[0].Severity)
		assert.Equal(t, "handlers/dup.handler.json", ds[0].File)

		d, ok := idx.Lookup(KindHandler, "get_user")
		require.True(t, ok)
		assert.Equal(t, "handlers/get_user.handler.json", d.File)
	})

	t.Run("same name in different kinds is no duplicate", func(t *testing.T) {
		p := project()
		p.Models = append(p.Models, spec.File[*spec.Model]{
			Path: "models/users.model.json",
			Def:  &spec.Model{Name: "users"},
		})
		_, ds := BuildIndex(p)
		assert.Empty(t, ds)
	})

	t.Run("nameless definitions are skipped", func(t *testing.T) {
		p := project()
		p.Schemas = append(p.Schemas, spec.File[*spec.Schema]{Path: "schemas/x.schema.json", Def: &spec.Schema{}})
		idx, ds := BuildIndex(p)
		assert.Empty(t, ds)
		assert.Equal(t, 3, idx.Len())
	})
}

func TestResolveOrError(t *testing.T) {
	idx, _ := BuildIndex(project())
	r := NewResolver(idx)

	t.Run("resolves", func(t *testing.T) {
		d, diagnostic := r.ResolveOrError(spec.Ref{Ref: "get_user"}, KindHandler,
			"routes/users.route.json", diag.Path("methods", "GET", "handler", "ref"))
		require.Nil(t, diagnostic)
		assert.Equal(t, "get_user", d.Name)
	})

	t.Run("unresolved carries file and path", func(t *testing.T) {
		d, diagnostic := r.ResolveOrError(spec.Ref{Ref: "missing"}, KindHandler,
			"routes/users.route.json", diag.Path("methods", "GET", "handler", "ref"))
		require.Nil(t, d)
		require.NotNil(t, diagnostic)
		assert.Equal(t, diag.CodeUnresolvedReference, diagnostic.Code)
		assert.Equal(t, "routes/users.route.json", diagnostic.File)
		assert.Equal(t, "$.methods.GET.handler.ref", diagnostic.Path)
		assert.NotEmpty(t, diagnostic.Suggestion)
	})

	t.Run("wrong kind is unresolved", func(t *testing.T) {
		_, diagnostic := r.ResolveOrError(spec.Ref{Ref: "get_user"}, KindSchema,
			"routes/users.route.json", diag.Path("methods", "GET", "request", "ref"))
		require.NotNil(t, diagnostic)
		assert.Equal(t, diag.CodeUnresolvedReference, diagnostic.Code)
	})
}
