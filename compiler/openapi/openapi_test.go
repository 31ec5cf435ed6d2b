package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specforge/specforge/compiler/ir"
)

func exportProject() *ir.Project {
	return &ir.Project{
		Name:    "shop",
		Version: "1.0.0",
		Server:  ir.Server{Port: 3000, Host: "0.0.0.0"},
		Routes: []*ir.Route{{
			Name: "users",
			Path: "/users/:id",
			Methods: []*ir.Binding{
				{Method: "GET", Handler: "get_user", Response: "user_view"},
				{Method: "PUT", Handler: "update_user", Request: "update_user"},
			},
		}},
		Schemas: []*ir.Schema{{
			Name: "update_user",
			Fields: []*ir.Field{
				{Name: "email", Type: &ir.Type{Kind: ir.TypeString}, Required: true, Format: "email"},
				{Name: "age", Type: &ir.Type{Kind: ir.TypeInt}},
			},
		}},
	}
}

func TestExport(t *testing.T) {
	doc := Export(exportProject())

	assert.Equal(t, Version, doc.OpenAPI)
	assert.Equal(t, "shop", doc.Info.Title)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "http://0.0.0.0:3000", doc.Servers[0].URL)

	item, ok := doc.Paths["/users/{id}"]
	require.True(t, ok, "path converted to brace convention")

	get, ok := (*item)["get"]
	require.True(t, ok)
	assert.Equal(t, "get_user", get.OperationID)
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "id", get.Parameters[0].Name)
	assert.Equal(t, "path", get.Parameters[0].In)
	require.Contains(t, get.Responses, "200")
	assert.Equal(t, "#/components/schemas/user_view",
		get.Responses["200"].Content["application/json"].Schema.Ref)

	put := (*item)["put"]
	require.NotNil(t, put)
	assert.Equal(t, "#/components/schemas/update_user",
		put.RequestBody.Content["application/json"].Schema.Ref)

	require.NotNil(t, doc.Components)
	schema, ok := doc.Components.Schemas["update_user"]
	require.True(t, ok)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"email"}, schema.Required)
	assert.Equal(t, "email", schema.Properties["email"].Format)
	assert.Equal(t, "integer", schema.Properties["age"].Type)
}

func TestMarshalYAML(t *testing.T) {
	out, err := MarshalYAML(Export(exportProject()))
	require.NoError(t, err)

	var back Document
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, Version, back.OpenAPI)
	assert.Contains(t, back.Paths, "/users/{id}")
}

func TestImport(t *testing.T) {
	doc := Export(exportProject())
	p := Import(doc)

	assert.Equal(t, "shop", p.Config.Name)

	require.Len(t, p.Routes, 1)
	r := p.Routes[0].Def
	assert.Equal(t, "/users/:id", r.Path, "path converted back to colon convention")
	require.Contains(t, r.Methods, "GET")
	assert.Equal(t, "get_user", r.Methods["GET"].Handler.Ref)
	require.Contains(t, r.Methods, "PUT")
	require.NotNil(t, r.Methods["PUT"].Request)
	assert.Equal(t, "update_user", r.Methods["PUT"].Request.Ref)

	require.Len(t, p.Schemas, 1)
	s := p.Schemas[0].Def
	assert.Equal(t, "update_user", s.Name)
	require.Contains(t, s.Fields, "email")
	assert.True(t, s.Fields["email"].Required)
	assert.Equal(t, "int", s.Fields["age"].Type)
}

func TestPathParams(t *testing.T) {
	assert.Empty(t, pathParams("/users"))
	assert.Equal(t, []string{"id"}, pathParams("/users/:id"))
	assert.Equal(t, []string{"a", "b"}, pathParams("/:a/x/:b"))
	assert.Empty(t, pathParams("/users/:"))
}

func TestRouteName(t *testing.T) {
	assert.Equal(t, "root", routeName("/"))
	assert.Equal(t, "users", routeName("/users"))
	assert.Equal(t, "users-id", routeName("/users/{id}"))
}
