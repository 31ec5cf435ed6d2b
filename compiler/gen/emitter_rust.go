package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// rustEmitter renders IR fragments as Rust. Schemas and models become serde
// structs; responses follow the extractor style of the paired framework.
type rustEmitter struct{}

func (e *rustEmitter) Language() spec.Language { return spec.Rust }
func (e *rustEmitter) FileExt() string         { return "rs" }
func (e *rustEmitter) IndentUnit() string      { return "    " }
func (e *rustEmitter) MaxTier() ir.Tier        { return ir.TierCall }

func (e *rustEmitter) Statement(ctx *Context, s *ir.Statement, style ContextStyle, expr ExprFunc) string {
	switch s.Kind {
	case ir.StmtLet:
		return ctx.Line(fmt.Sprintf("let %s = %s;", snake(s.Name), expr(s.Value)))
	case ir.StmtReturn:
		return ctx.Line(fmt.Sprintf("return %s;", expr(s.Value)))
	case ir.StmtRespond:
		if style == StyleExtractor {
			ctx.AddImport("actix_web::HttpResponse", "actix-web")
			return ctx.Line(fmt.Sprintf("return %s.json(%s);", rustStatus(s.Status), expr(s.Value)))
		}
		return ctx.Line(fmt.Sprintf("return respond(%d, %s);", s.Status, expr(s.Value)))
	default:
		return ctx.Line(expr(s.Value) + ";")
	}
}

// rustStatus maps common statuses to HttpResponse constructors and falls back
// to an explicit status-code build.
func rustStatus(status int) string {
	switch status {
	case 200:
		return "HttpResponse::Ok()"
	case 201:
		return "HttpResponse::Created()"
	case 204:
		return "HttpResponse::NoContent()"
	case 400:
		return "HttpResponse::BadRequest()"
	case 404:
		return "HttpResponse::NotFound()"
	default:
		return fmt.Sprintf("HttpResponse::build(actix_web::http::StatusCode::from_u16(%d).unwrap())", status)
	}
}

func (e *rustEmitter) Expression(ctx *Context, x *ir.Expression, style ContextStyle, expr ExprFunc) string {
	switch x.Kind {
	case ir.ExprLit:
		return rustLit(ctx, x.Value)
	case ir.ExprIdent:
		return snake(x.Name)
	case ir.ExprContext:
		if style == StyleExtractor {
			switch x.Source {
			case "params":
				return fmt.Sprintf("path.%s.clone()", snake(x.Name))
			case "query":
				return fmt.Sprintf("query.%s.clone()", snake(x.Name))
			case "body":
				return fmt.Sprintf("body.%s.clone()", snake(x.Name))
			default:
				return fmt.Sprintf("req.headers().get(%q)", x.Name)
			}
		}
		return fmt.Sprintf("ctx.%s(%q)", x.Source, x.Name)
	case ir.ExprCall:
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, expr(a))
		}
		return fmt.Sprintf("%s(%s).await", snake(x.Name), strings.Join(args, ", "))
	default:
		return "()"
	}
}

func (e *rustEmitter) TypeAnnotation(t *ir.Type) string {
	if t == nil {
		return "serde_json::Value"
	}
	switch t.Kind {
	case ir.TypeString:
		return "String"
	case ir.TypeInt:
		return "i64"
	case ir.TypeFloat:
		return "f64"
	case ir.TypeBool:
		return "bool"
	case ir.TypeUUID:
		return "uuid::Uuid"
	case ir.TypeTime:
		return "chrono::DateTime<chrono::Utc>"
	case ir.TypeArray:
		return fmt.Sprintf("Vec<%s>", e.TypeAnnotation(t.Elem))
	default:
		return "serde_json::Value"
	}
}

// SchemaBlock renders a serde + validator struct.
func (e *rustEmitter) SchemaBlock(ctx *Context, s *ir.Schema) string {
	ctx.AddImport("serde::{Deserialize, Serialize}", "serde")
	ctx.AddImport("validator::Validate", "validator")
	var b strings.Builder
	b.WriteString("#[derive(Debug, Serialize, Deserialize, Validate)]\n")
	fmt.Fprintf(&b, "pub struct %s {\n", pascal(s.Name))
	ctx.Indent()
	for _, f := range s.Fields {
		if rule := validateRule(f); rule != "" {
			b.WriteString(ctx.Line(rule))
			b.WriteString("\n")
		}
		ann := e.TypeAnnotation(f.Type)
		if !f.Required {
			ann = fmt.Sprintf("Option<%s>", ann)
		}
		b.WriteString(ctx.Line(fmt.Sprintf("pub %s: %s,", snake(f.Name), ann)))
		b.WriteString("\n")
	}
	ctx.Dedent()
	b.WriteString(ctx.Line("}"))
	return b.String()
}

func validateRule(f *ir.Field) string {
	var parts []string
	if f.Format == "email" {
		parts = append(parts, "email")
	}
	if f.Min != nil || f.Max != nil {
		var bounds []string
		if f.Min != nil {
			bounds = append(bounds, fmt.Sprintf("min = %d", *f.Min))
		}
		if f.Max != nil {
			bounds = append(bounds, fmt.Sprintf("max = %d", *f.Max))
		}
		parts = append(parts, fmt.Sprintf("length(%s)", strings.Join(bounds, ", ")))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("#[validate(%s)]", strings.Join(parts, ", "))
}

// ModelDef renders a model as a serde struct.
func (e *rustEmitter) ModelDef(ctx *Context, m *ir.Model) string {
	ctx.AddImport("serde::{Deserialize, Serialize}", "serde")
	var b strings.Builder
	b.WriteString("#[derive(Debug, Clone, Serialize, Deserialize)]\n")
	fmt.Fprintf(&b, "pub struct %s {\n", pascal(m.Name))
	ctx.Indent()
	for _, c := range m.Columns {
		ann := e.TypeAnnotation(c.Type)
		if c.Nullable {
			ann = fmt.Sprintf("Option<%s>", ann)
		}
		b.WriteString(ctx.Line(fmt.Sprintf("pub %s: %s,", snake(c.Name), ann)))
		b.WriteString("\n")
	}
	ctx.Dedent()
	b.WriteString(ctx.Line("}"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "pub const %s_TABLE: &str = %q;", strings.ToUpper(snake(m.Name)), modelTable(m))
	return b.String()
}

func (e *rustEmitter) Imports(ctx *Context) string {
	var b strings.Builder
	for _, imp := range ctx.Imports() {
		fmt.Fprintf(&b, "use %s;\n", imp.Names)
	}
	return b.String()
}

// rustLit renders a literal. Compound values go through serde_json's json!
// macro; JSON marshaling sorts map keys, keeping output deterministic.
func rustLit(ctx *Context, v any) string {
	switch t := v.(type) {
	case nil:
		return "serde_json::Value::Null"
	case string:
		return fmt.Sprintf("%q.to_string()", t)
	case bool:
		return fmt.Sprintf("%v", t)
	case int, int64, float64:
		return fmt.Sprintf("%v", t)
	default:
		ctx.AddImport("serde_json::json", "serde_json")
		b, err := json.Marshal(v)
		if err != nil {
			return "serde_json::Value::Null"
		}
		return fmt.Sprintf("json!(%s)", string(b))
	}
}
