package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/specforge/spec"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.json", `{
		"name": "shop",
		"version": "1.0.0",
		"target": {"language": "typescript", "framework": "express"},
		"server": {"port": 8080}
	}`)
	writeFile(t, dir, "routes/users.route.json", `{
		"path": "/users/:id",
		"methods": {"GET": {"handler": {"ref": "get_user"}}}
	}`)
	writeFile(t, dir, "schemas/create_user.schema.yaml", `
name: create_user
fields:
  email:
    type: email
    required: true
`)
	writeFile(t, dir, "models/user.model.toml", `
name = "user"

[columns.id]
type = "uuid"
primary = true
`)
	writeFile(t, dir, "handlers/get_user.handler.json", `{"body": [{"op": "respond", "value": "ok"}]}`)

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "shop", p.Config.Name)
	assert.Equal(t, "specforge.json", p.ConfigPath)
	assert.Equal(t, spec.Typescript, p.Config.Target.Language)
	assert.Equal(t, 8080, p.Config.Server.Port)
	assert.Equal(t, spec.DefaultHost, p.Config.Server.Host)
	assert.Equal(t, spec.DefaultOutDir, p.Config.Codegen.OutDir)

	require.Len(t, p.Routes, 1)
	assert.Equal(t, "users", p.Routes[0].Def.Name)
	assert.Equal(t, "routes/users.route.json", p.Routes[0].Path)

	require.Len(t, p.Schemas, 1)
	assert.Equal(t, "create_user", p.Schemas[0].Def.Name)
	require.Contains(t, p.Schemas[0].Def.Fields, "email")
	assert.True(t, p.Schemas[0].Def.Fields["email"].Required)

	require.Len(t, p.Models, 1)
	assert.True(t, p.Models[0].Def.Columns["id"].Primary)

	require.Len(t, p.Handlers, 1)
	assert.Equal(t, "get_user", p.Handlers[0].Def.Name)
	require.Len(t, p.Handlers[0].Def.Body, 1)
	assert.Equal(t, "respond", p.Handlers[0].Def.Body[0].Op)
}

func TestLoadNoConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.json", `{"name": "shop"}`)
	writeFile(t, dir, "routes/bad.route.json", `{not json`)
	_, err := Load(dir)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Path, "bad.route.json")
}

func TestLoadSkipsDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.yaml", "name: shop")
	writeFile(t, dir, "node_modules/pkg/x.route.json", `{}`)
	writeFile(t, dir, "dist/y.route.json", `{}`)
	writeFile(t, dir, ".hidden/z.route.json", `{}`)
	p, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, p.Routes)
	assert.Equal(t, "specforge.yaml", p.ConfigPath)
}

func TestLoadExplicitNameWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.json", `{"name": "shop"}`)
	writeFile(t, dir, "routes/users.route.json", `{"name": "accounts", "path": "/accounts"}`)
	p, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, p.Routes, 1)
	assert.Equal(t, "accounts", p.Routes[0].Def.Name)
}

func TestLoadDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.json", `{"name": "shop"}`)
	writeFile(t, dir, "routes/b.route.json", `{"path": "/b"}`)
	writeFile(t, dir, "routes/a.route.json", `{"path": "/a"}`)
	writeFile(t, dir, "routes/c.route.json", `{"path": "/c"}`)

	p, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, p.Routes, 3)
	assert.Equal(t, "a", p.Routes[0].Def.Name)
	assert.Equal(t, "b", p.Routes[1].Def.Name)
	assert.Equal(t, "c", p.Routes[2].Def.Name)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"users.route.json", "route"},
		{"auth.middleware.yaml", "middleware"},
		{"user.model.toml", "model"},
		{"create_user.schema.yml", "schema"},
		{"get_user.handler.json", "handler"},
		{"specforge.json", ""},
		{"readme.md", ""},
		{"users.route.txt", ""},
		{"route.json", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kindOf(tt.name), "file %q", tt.name)
	}
}
