package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// goEmitter renders IR fragments as Go. Struct definitions (schemas and
// models) are built with jennifer, everything else is plain syntax.
type goEmitter struct{}

func (e *goEmitter) Language() spec.Language { return spec.Go }
func (e *goEmitter) FileExt() string         { return "go" }
func (e *goEmitter) IndentUnit() string      { return "\t" }
func (e *goEmitter) MaxTier() ir.Tier        { return ir.TierCall }

func (e *goEmitter) Statement(ctx *Context, s *ir.Statement, style ContextStyle, expr ExprFunc) string {
	switch s.Kind {
	case ir.StmtLet:
		return ctx.Line(fmt.Sprintf("%s := %s", camel(s.Name), expr(s.Value)))
	case ir.StmtReturn:
		return ctx.Line(fmt.Sprintf("return %s", expr(s.Value)))
	case ir.StmtRespond:
		if style == StyleContext {
			return ctx.Line(fmt.Sprintf("c.JSON(%d, %s)", s.Status, expr(s.Value)))
		}
		return ctx.Line(fmt.Sprintf("respond(w, %d, %s)", s.Status, expr(s.Value)))
	default:
		return ctx.Line(expr(s.Value))
	}
}

func (e *goEmitter) Expression(ctx *Context, x *ir.Expression, style ContextStyle, expr ExprFunc) string {
	switch x.Kind {
	case ir.ExprLit:
		return goLit(ctx, x.Value)
	case ir.ExprIdent:
		return camel(x.Name)
	case ir.ExprContext:
		if style == StyleContext {
			switch x.Source {
			case "params":
				return fmt.Sprintf("c.Param(%q)", x.Name)
			case "query":
				return fmt.Sprintf("c.Query(%q)", x.Name)
			case "body":
				return fmt.Sprintf("body[%q]", x.Name)
			default:
				return fmt.Sprintf("c.GetHeader(%q)", x.Name)
			}
		}
		return fmt.Sprintf("ctx.Value(%q)", x.Source+"."+x.Name)
	case ir.ExprCall:
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, expr(a))
		}
		return fmt.Sprintf("%s(%s)", pascal(x.Name), strings.Join(args, ", "))
	default:
		return "nil"
	}
}

func (e *goEmitter) TypeAnnotation(t *ir.Type) string {
	if t == nil {
		return "any"
	}
	switch t.Kind {
	case ir.TypeString:
		return "string"
	case ir.TypeInt:
		return "int64"
	case ir.TypeFloat:
		return "float64"
	case ir.TypeBool:
		return "bool"
	case ir.TypeUUID:
		return "string"
	case ir.TypeTime:
		return "time.Time"
	case ir.TypeArray:
		return "[]" + e.TypeAnnotation(t.Elem)
	case ir.TypeObject:
		return "map[string]any"
	default:
		return "any"
	}
}

// SchemaBlock renders a request/response struct with binding tags, built with
// jennifer and rendered as a fragment.
func (e *goEmitter) SchemaBlock(ctx *Context, s *ir.Schema) string {
	fields := make([]jen.Code, 0, len(s.Fields))
	for _, f := range s.Fields {
		tag := map[string]string{"json": snake(f.Name)}
		if rule := ginBinding(f); rule != "" {
			tag["binding"] = rule
		}
		fields = append(fields, jen.Id(pascal(f.Name)).Add(goType(ctx, e, f.Type)).Tag(tag))
	}
	def := jen.Type().Id(pascal(s.Name)).Struct(fields...)
	return fmt.Sprintf("%#v", def)
}

func ginBinding(f *ir.Field) string {
	var parts []string
	if f.Required {
		parts = append(parts, "required")
	}
	if f.Format == "email" {
		parts = append(parts, "email")
	}
	if f.Type.Kind == ir.TypeUUID {
		parts = append(parts, "uuid")
	}
	if f.Min != nil {
		parts = append(parts, fmt.Sprintf("min=%d", *f.Min))
	}
	if f.Max != nil {
		parts = append(parts, fmt.Sprintf("max=%d", *f.Max))
	}
	return strings.Join(parts, ",")
}

// ModelDef renders a model struct, built with jennifer.
func (e *goEmitter) ModelDef(ctx *Context, m *ir.Model) string {
	fields := make([]jen.Code, 0, len(m.Columns)+len(m.Relations))
	for _, c := range m.Columns {
		field := jen.Id(pascal(c.Name))
		if c.Nullable {
			field = field.Op("*")
		}
		field = field.Add(goType(ctx, e, c.Type))
		fields = append(fields, field.Tag(map[string]string{"json": snake(c.Name)}))
	}
	for _, r := range m.Relations {
		field := jen.Id(pascal(r.Name))
		if r.Kind == "hasMany" || r.Kind == "manyToMany" {
			field = field.Index()
		} else {
			field = field.Op("*")
		}
		field = field.Id(pascal(r.Target))
		fields = append(fields, field.Tag(map[string]string{"json": snake(r.Name) + ",omitempty"}))
	}
	def := jen.Type().Id(pascal(m.Name)).Struct(fields...)
	table := jen.Const().Id(pascal(m.Name) + "Table").Op("=").Lit(modelTable(m))
	return fmt.Sprintf("%#v\n\n%#v", def, table)
}

// goType returns the jennifer code for an IR type and records any standard
// library import it needs.
func goType(ctx *Context, e *goEmitter, t *ir.Type) jen.Code {
	if t == nil {
		return jen.Any()
	}
	switch t.Kind {
	case ir.TypeTime:
		ctx.AddImport("", "time")
		return jen.Qual("time", "Time")
	case ir.TypeArray:
		return jen.Index().Add(goType(ctx, e, t.Elem))
	case ir.TypeObject:
		return jen.Map(jen.String()).Any()
	case ir.TypeInt:
		return jen.Int64()
	case ir.TypeFloat:
		return jen.Float64()
	case ir.TypeBool:
		return jen.Bool()
	case ir.TypeString, ir.TypeUUID:
		return jen.String()
	default:
		return jen.Any()
	}
}

func (e *goEmitter) Imports(ctx *Context) string {
	imps := ctx.Imports()
	if len(imps) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range imps {
		if imp.Names != "" {
			fmt.Fprintf(&b, "\t%s %q\n", imp.Names, imp.From)
		} else {
			fmt.Fprintf(&b, "\t%q\n", imp.From)
		}
	}
	b.WriteString(")\n")
	return b.String()
}

// goLit renders a literal as a Go expression. Maps become gin.H literals with
// sorted keys for deterministic output.
func goLit(ctx *Context, v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", t)
	case bool:
		return fmt.Sprintf("%v", t)
	case map[string]any:
		ctx.AddImport("", "github.com/gin-gonic/gin")
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q: %s", k, goLit(ctx, t[k])))
		}
		return "gin.H{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, goLit(ctx, item))
		}
		return "[]any{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", t)
	}
}
