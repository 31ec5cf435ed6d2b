package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// typescriptEmitter renders IR fragments as TypeScript. Schema blocks use
// zod; everything else is plain language syntax.
type typescriptEmitter struct{}

func (e *typescriptEmitter) Language() spec.Language { return spec.Typescript }
func (e *typescriptEmitter) FileExt() string         { return "ts" }
func (e *typescriptEmitter) IndentUnit() string      { return "  " }
func (e *typescriptEmitter) MaxTier() ir.Tier        { return ir.TierCall }

func (e *typescriptEmitter) Statement(ctx *Context, s *ir.Statement, style ContextStyle, expr ExprFunc) string {
	switch s.Kind {
	case ir.StmtLet:
		return ctx.Line(fmt.Sprintf("const %s = %s;", camel(s.Name), expr(s.Value)))
	case ir.StmtReturn:
		return ctx.Line(fmt.Sprintf("return %s;", expr(s.Value)))
	case ir.StmtRespond:
		if style == StyleReqRes {
			return ctx.Line(fmt.Sprintf("res.status(%d).json(%s);", s.Status, expr(s.Value)))
		}
		return ctx.Line(fmt.Sprintf("return respond(%d, %s);", s.Status, expr(s.Value)))
	default:
		return ctx.Line(expr(s.Value) + ";")
	}
}

func (e *typescriptEmitter) Expression(ctx *Context, x *ir.Expression, style ContextStyle, expr ExprFunc) string {
	switch x.Kind {
	case ir.ExprLit:
		return jsLit(x.Value)
	case ir.ExprIdent:
		return camel(x.Name)
	case ir.ExprContext:
		if style == StyleReqRes {
			switch x.Source {
			case "headers":
				return fmt.Sprintf("req.headers[%q]", x.Name)
			default:
				return fmt.Sprintf("req.%s.%s", x.Source, x.Name)
			}
		}
		return fmt.Sprintf("ctx.%s.%s", x.Source, x.Name)
	case ir.ExprCall:
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, expr(a))
		}
		return fmt.Sprintf("await %s(%s)", camel(x.Name), strings.Join(args, ", "))
	default:
		return "undefined"
	}
}

func (e *typescriptEmitter) TypeAnnotation(t *ir.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind {
	case ir.TypeString, ir.TypeUUID:
		return "string"
	case ir.TypeInt, ir.TypeFloat:
		return "number"
	case ir.TypeBool:
		return "boolean"
	case ir.TypeTime:
		return "Date"
	case ir.TypeArray:
		return e.TypeAnnotation(t.Elem) + "[]"
	case ir.TypeObject:
		return "Record<string, unknown>"
	default:
		return "unknown"
	}
}

// SchemaBlock renders a zod object schema.
func (e *typescriptEmitter) SchemaBlock(ctx *Context, s *ir.Schema) string {
	ctx.AddImport("{ z }", "zod")
	var b strings.Builder
	fmt.Fprintf(&b, "export const %sSchema = z.object({\n", pascal(s.Name))
	ctx.Indent()
	for _, f := range s.Fields {
		b.WriteString(ctx.Line(fmt.Sprintf("%s: %s,", camel(f.Name), zodField(f))))
		b.WriteString("\n")
	}
	ctx.Dedent()
	b.WriteString(ctx.Line("});"))
	return b.String()
}

func zodField(f *ir.Field) string {
	var rule string
	switch f.Type.Kind {
	case ir.TypeInt, ir.TypeFloat:
		rule = "z.number()"
	case ir.TypeBool:
		rule = "z.boolean()"
	case ir.TypeTime:
		rule = "z.coerce.date()"
	case ir.TypeArray:
		rule = "z.array(z.unknown())"
	case ir.TypeObject:
		rule = "z.record(z.unknown())"
	default:
		rule = "z.string()"
	}
	if f.Format == "email" {
		rule += ".email()"
	}
	if f.Type.Kind == ir.TypeUUID {
		rule += ".uuid()"
	}
	if f.Min != nil {
		rule += fmt.Sprintf(".min(%d)", *f.Min)
	}
	if f.Max != nil {
		rule += fmt.Sprintf(".max(%d)", *f.Max)
	}
	if !f.Required {
		rule += ".optional()"
	}
	return rule
}

// ModelDef renders a model as an exported interface.
func (e *typescriptEmitter) ModelDef(ctx *Context, m *ir.Model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export interface %s {\n", pascal(m.Name))
	ctx.Indent()
	for _, c := range m.Columns {
		opt := ""
		if c.Nullable {
			opt = "?"
		}
		b.WriteString(ctx.Line(fmt.Sprintf("%s%s: %s;", camel(c.Name), opt, e.TypeAnnotation(c.Type))))
		b.WriteString("\n")
	}
	for _, r := range m.Relations {
		ann := pascal(r.Target)
		if r.Kind == "hasMany" || r.Kind == "manyToMany" {
			ann += "[]"
		}
		b.WriteString(ctx.Line(fmt.Sprintf("%s?: %s;", camel(r.Name), ann)))
		b.WriteString("\n")
	}
	ctx.Dedent()
	b.WriteString(ctx.Line("}"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "export const %sTable = %q;", camel(m.Name), modelTable(m))
	return b.String()
}

func (e *typescriptEmitter) Imports(ctx *Context) string {
	var b strings.Builder
	for _, imp := range ctx.Imports() {
		fmt.Fprintf(&b, "import %s from %q;\n", imp.Names, imp.From)
	}
	return b.String()
}

// jsLit renders a literal as a JavaScript expression. JSON marshaling sorts
// map keys, keeping output deterministic.
func jsLit(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
