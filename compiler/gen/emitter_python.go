package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// pythonEmitter renders IR fragments as Python. Schemas and models become
// pydantic classes.
type pythonEmitter struct{}

func (e *pythonEmitter) Language() spec.Language { return spec.Python }
func (e *pythonEmitter) FileExt() string         { return "py" }
func (e *pythonEmitter) IndentUnit() string      { return "    " }
func (e *pythonEmitter) MaxTier() ir.Tier        { return ir.TierCall }

func (e *pythonEmitter) Statement(ctx *Context, s *ir.Statement, style ContextStyle, expr ExprFunc) string {
	switch s.Kind {
	case ir.StmtLet:
		return ctx.Line(fmt.Sprintf("%s = %s", snake(s.Name), expr(s.Value)))
	case ir.StmtReturn:
		return ctx.Line(fmt.Sprintf("return %s", expr(s.Value)))
	case ir.StmtRespond:
		if style == StyleInjection {
			ctx.AddImport("JSONResponse", "fastapi.responses")
			return ctx.Line(fmt.Sprintf("return JSONResponse(status_code=%d, content=%s)", s.Status, expr(s.Value)))
		}
		return ctx.Line(fmt.Sprintf("return respond(%d, %s)", s.Status, expr(s.Value)))
	default:
		return ctx.Line(expr(s.Value))
	}
}

func (e *pythonEmitter) Expression(ctx *Context, x *ir.Expression, style ContextStyle, expr ExprFunc) string {
	switch x.Kind {
	case ir.ExprLit:
		return pyLit(x.Value)
	case ir.ExprIdent:
		return snake(x.Name)
	case ir.ExprContext:
		if style == StyleInjection {
			switch x.Source {
			case "params", "query":
				// Injected as function parameters by the framework.
				return snake(x.Name)
			case "body":
				return fmt.Sprintf("payload.get(%q)", x.Name)
			default:
				return fmt.Sprintf("request.headers.get(%q)", x.Name)
			}
		}
		return fmt.Sprintf("ctx[%q][%q]", x.Source, x.Name)
	case ir.ExprCall:
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, expr(a))
		}
		return fmt.Sprintf("await %s(%s)", snake(x.Name), strings.Join(args, ", "))
	default:
		return "None"
	}
}

func (e *pythonEmitter) TypeAnnotation(t *ir.Type) string {
	if t == nil {
		return "Any"
	}
	switch t.Kind {
	case ir.TypeString:
		return "str"
	case ir.TypeInt:
		return "int"
	case ir.TypeFloat:
		return "float"
	case ir.TypeBool:
		return "bool"
	case ir.TypeUUID:
		return "UUID"
	case ir.TypeTime:
		return "datetime"
	case ir.TypeArray:
		return fmt.Sprintf("list[%s]", e.TypeAnnotation(t.Elem))
	case ir.TypeObject:
		return "dict"
	default:
		return "Any"
	}
}

// SchemaBlock renders a pydantic model with Field constraints.
func (e *pythonEmitter) SchemaBlock(ctx *Context, s *ir.Schema) string {
	ctx.AddImport("BaseModel, Field", "pydantic")
	var b strings.Builder
	fmt.Fprintf(&b, "class %s(BaseModel):\n", pascal(s.Name))
	ctx.Indent()
	if len(s.Fields) == 0 {
		b.WriteString(ctx.Line("pass"))
		ctx.Dedent()
		return b.String()
	}
	for i, f := range s.Fields {
		e.addFieldImports(ctx, f.Type)
		ann := e.TypeAnnotation(f.Type)
		if !f.Required {
			ann += " | None"
		}
		line := fmt.Sprintf("%s: %s%s", snake(f.Name), ann, pyField(f))
		b.WriteString(ctx.Line(line))
		if i < len(s.Fields)-1 {
			b.WriteString("\n")
		}
	}
	ctx.Dedent()
	return b.String()
}

func (e *pythonEmitter) addFieldImports(ctx *Context, t *ir.Type) {
	if t == nil {
		ctx.AddImport("Any", "typing")
		return
	}
	switch t.Kind {
	case ir.TypeUUID:
		ctx.AddImport("UUID", "uuid")
	case ir.TypeTime:
		ctx.AddImport("datetime", "datetime")
	case ir.TypeArray:
		e.addFieldImports(ctx, t.Elem)
	case ir.TypeAny:
		ctx.AddImport("Any", "typing")
	}
}

func pyField(f *ir.Field) string {
	var parts []string
	if !f.Required {
		parts = append(parts, "default=None")
	}
	if f.Min != nil {
		parts = append(parts, fmt.Sprintf("min_length=%d", *f.Min))
	}
	if f.Max != nil {
		parts = append(parts, fmt.Sprintf("max_length=%d", *f.Max))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" = Field(%s)", strings.Join(parts, ", "))
}

// ModelDef renders a model as a pydantic class.
func (e *pythonEmitter) ModelDef(ctx *Context, m *ir.Model) string {
	ctx.AddImport("BaseModel", "pydantic")
	var b strings.Builder
	fmt.Fprintf(&b, "%s_TABLE = %q\n\n\n", strings.ToUpper(snake(m.Name)), modelTable(m))
	fmt.Fprintf(&b, "class %s(BaseModel):\n", pascal(m.Name))
	ctx.Indent()
	if len(m.Columns) == 0 {
		b.WriteString(ctx.Line("pass"))
		ctx.Dedent()
		return b.String()
	}
	for i, c := range m.Columns {
		e.addFieldImports(ctx, c.Type)
		ann := e.TypeAnnotation(c.Type)
		if c.Nullable {
			ann += " | None = None"
		}
		b.WriteString(ctx.Line(fmt.Sprintf("%s: %s", snake(c.Name), ann)))
		if i < len(m.Columns)-1 {
			b.WriteString("\n")
		}
	}
	ctx.Dedent()
	return b.String()
}

func (e *pythonEmitter) Imports(ctx *Context) string {
	var b strings.Builder
	for _, imp := range ctx.Imports() {
		fmt.Fprintf(&b, "from %s import %s\n", imp.From, imp.Names)
	}
	return b.String()
}

// pyLit renders a literal as a Python expression.
func pyLit(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return fmt.Sprintf("%q", t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q: %s", k, pyLit(t[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, pyLit(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}
