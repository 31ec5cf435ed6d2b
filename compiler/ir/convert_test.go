package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/specforge/spec"
)

func TestConvertProject(t *testing.T) {
	p := spec.NewProject()
	p.Config.Name = "shop"
	p.Config.Version = "1.2.0"
	p.Config.Middleware.Global = []spec.Ref{{Ref: "cors"}, {Ref: "logger"}}
	p.Routes = append(p.Routes, spec.File[*spec.Route]{
		Path: "routes/users.route.json",
		Def: &spec.Route{
			Name: "users",
			Path: "/users/[id]",
			Methods: map[string]*spec.RouteMethod{
				"PUT":  {Handler: spec.Ref{Ref: "update_user"}},
				"GET":  {Handler: spec.Ref{Ref: "get_user"}},
				"POST": {Handler: spec.Ref{Ref: "create_user"}, Request: &spec.Ref{Ref: "create_user"}},
			},
		},
	})

	out, err := ConvertProject(p)
	require.NoError(t, err)
	assert.Equal(t, "shop", out.Name)
	assert.Equal(t, spec.DefaultPort, out.Server.Port)
	assert.Equal(t, []string{"cors", "logger"}, out.GlobalMW)

	require.Len(t, out.Routes, 1)
	r := out.Routes[0]
	assert.Equal(t, "/users/:id", r.Path)

	// Methods come out sorted regardless of map iteration order.
	require.Len(t, r.Methods, 3)
	assert.Equal(t, "GET", r.Methods[0].Method)
	assert.Equal(t, "POST", r.Methods[1].Method)
	assert.Equal(t, "PUT", r.Methods[2].Method)
	assert.Equal(t, "create_user", r.Methods[1].Request)
}

func TestConvertSchemaOrdering(t *testing.T) {
	s := &spec.Schema{
		Name: "create_user",
		Fields: map[string]*spec.SchemaField{
			"name":  {Type: "string", Required: true},
			"age":   {Type: "int"},
			"email": {Type: "email", Required: true},
		},
	}
	out := convertSchema(s)
	require.Len(t, out.Fields, 3)
	assert.Equal(t, "age", out.Fields[0].Name)
	assert.Equal(t, "email", out.Fields[1].Name)
	assert.Equal(t, "name", out.Fields[2].Name)
	assert.Equal(t, TypeString, out.Fields[1].Type.Kind)
	assert.True(t, out.Fields[2].Required)
}

func TestConvertType(t *testing.T) {
	tests := []struct {
		in   string
		want TypeKind
	}{
		{"string", TypeString},
		{"email", TypeString},
		{"int", TypeInt},
		{"float", TypeFloat},
		{"bool", TypeBool},
		{"uuid", TypeUUID},
		{"datetime", TypeTime},
		{"json", TypeObject},
		{"mystery", TypeAny},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, convertType(tt.in).Kind, "type %q", tt.in)
	}

	arr := convertType("string[]")
	require.Equal(t, TypeArray, arr.Kind)
	assert.Equal(t, TypeString, arr.Elem.Kind)
}

func TestConvertHandler(t *testing.T) {
	t.Run("steps lower with tiers", func(t *testing.T) {
		h := &spec.Handler{Name: "get_user", Body: []*spec.Step{
			{Op: "let", Name: "limit", Value: 10},
			{Op: "context", Name: "id", Source: "params"},
			{Op: "call", Target: "find_user", Args: []any{"$id"}},
			{Op: "respond", Value: map[string]any{"ok": true}},
		}}
		out, err := convertHandler(h)
		require.NoError(t, err)
		require.Len(t, out.Body, 4)

		assert.Equal(t, StmtLet, out.Body[0].Kind)
		assert.Equal(t, TierBasic, out.Body[0].Tier)

		assert.Equal(t, StmtLet, out.Body[1].Kind)
		assert.Equal(t, TierContext, out.Body[1].Tier)
		assert.Equal(t, ExprContext, out.Body[1].Value.Kind)
		assert.Equal(t, "params", out.Body[1].Value.Source)

		assert.Equal(t, StmtExpr, out.Body[2].Kind)
		require.Len(t, out.Body[2].Value.Args, 1)
		assert.Equal(t, ExprIdent, out.Body[2].Value.Args[0].Kind)
		assert.Equal(t, "id", out.Body[2].Value.Args[0].Name)

		assert.Equal(t, StmtRespond, out.Body[3].Kind)
		assert.Equal(t, 200, out.Body[3].Status)

		assert.Equal(t, TierCall, out.MaxTier())
	})

	t.Run("respond keeps explicit status", func(t *testing.T) {
		out, err := convertHandler(&spec.Handler{Name: "h", Body: []*spec.Step{
			{Op: "respond", Status: 201, Value: "created"},
		}})
		require.NoError(t, err)
		assert.Equal(t, 201, out.Body[0].Status)
	})

	t.Run("unknown op fails atomically", func(t *testing.T) {
		_, err := convertHandler(&spec.Handler{Name: "bad", Body: []*spec.Step{
			{Op: "let", Name: "x", Value: 1},
			{Op: "loop"},
		}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConversion)
		var ce *ConversionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "bad", ce.Handler)
		assert.Equal(t, 1, ce.Step)
	})

	t.Run("let without name fails", func(t *testing.T) {
		_, err := convertHandler(&spec.Handler{Name: "bad", Body: []*spec.Step{{Op: "let", Value: 1}}})
		assert.ErrorIs(t, err, ErrConversion)
	})

	t.Run("unknown context source fails", func(t *testing.T) {
		_, err := convertHandler(&spec.Handler{Name: "bad", Body: []*spec.Step{
			{Op: "context", Name: "x", Source: "session"},
		}})
		assert.ErrorIs(t, err, ErrConversion)
	})
}

func TestMaxTier(t *testing.T) {
	h := &Handler{Name: "h", Body: []*Statement{
		{Kind: StmtLet, Tier: TierBasic},
	}}
	assert.Equal(t, TierBasic, h.MaxTier())
	assert.Equal(t, TierBasic, (&Handler{Name: "empty"}).MaxTier())
}
