package gen

import (
	"fmt"
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// actixAdapter composes Rust emitter output into an Actix Web project:
// src/ modules, web::resource registration with "{param}" paths, extractor
// handler signatures and a Cargo.toml manifest.
type actixAdapter struct {
	em Emitter
}

func (a *actixAdapter) Framework() spec.Framework  { return spec.Actix }
func (a *actixAdapter) ContextStyle() ContextStyle { return StyleExtractor }

func (a *actixAdapter) ExpressionOverride(ctx *Context, e *ir.Expression) (string, bool) {
	return "", false
}

func (a *actixAdapter) EntrypointPath() string  { return "src/main.rs" }
func (a *actixAdapter) RoutesIndexPath() string { return "src/routes.rs" }
func (a *actixAdapter) HandlerPath(name string) string {
	return "src/handlers/" + snake(name) + ".rs"
}
func (a *actixAdapter) MiddlewarePath(name string) string {
	return "src/middleware/" + snake(name) + ".rs"
}
func (a *actixAdapter) SchemaPath(name string) string {
	return "src/schemas/" + snake(name) + ".rs"
}
func (a *actixAdapter) ModelPath(name string) string {
	return "src/models/" + snake(name) + ".rs"
}

func (a *actixAdapter) Entrypoint(ctx *Context, p *ir.Project) string {
	var b strings.Builder
	b.WriteString("use actix_web::{App, HttpServer};\n\n")
	for _, mod := range []string{"routes", "handlers", "schemas", "models", "middleware"} {
		fmt.Fprintf(&b, "mod %s;\n", mod)
	}
	b.WriteString("\n#[actix_web::main]\n")
	b.WriteString("async fn main() -> std::io::Result<()> {\n")
	ctx.Indent()
	b.WriteString(ctx.Line(fmt.Sprintf("println!(%q);", fmt.Sprintf("%s listening on http://%s:%d (actix-web)", p.Name, p.Server.Host, p.Server.Port))))
	b.WriteString("\n")
	if len(p.GlobalMW) == 0 {
		b.WriteString(ctx.Line("HttpServer::new(|| App::new().configure(routes::configure))"))
		b.WriteString("\n")
	} else {
		b.WriteString(ctx.Line("HttpServer::new(|| {"))
		b.WriteString("\n")
		ctx.Indent()
		b.WriteString(ctx.Line("App::new()"))
		b.WriteString("\n")
		ctx.Indent()
		for _, name := range p.GlobalMW {
			b.WriteString(ctx.Line(a.MiddlewareApply(ctx, name)))
			b.WriteString("\n")
		}
		b.WriteString(ctx.Line(".configure(routes::configure)"))
		b.WriteString("\n")
		ctx.Dedent()
		ctx.Dedent()
		b.WriteString(ctx.Line("})"))
		b.WriteString("\n")
	}
	ctx.Indent()
	b.WriteString(ctx.Line(fmt.Sprintf(".bind((%q, %d))?", p.Server.Host, p.Server.Port)))
	b.WriteString("\n")
	b.WriteString(ctx.Line(".run()"))
	b.WriteString("\n")
	b.WriteString(ctx.Line(".await"))
	b.WriteString("\n")
	ctx.Dedent()
	ctx.Dedent()
	b.WriteString("}\n")
	return b.String()
}

func (a *actixAdapter) MiddlewareApply(ctx *Context, name string) string {
	return fmt.Sprintf(".wrap(actix_web::middleware::from_fn(middleware::%s::%s))", snake(name), snake(name))
}

// RouteRegistration renders web::resource routes with the path converted to
// the "{param}" convention.
func (a *actixAdapter) RouteRegistration(ctx *Context, r *ir.Route) string {
	var b strings.Builder
	path := ir.ColonToBrace(r.Path)
	for _, m := range r.Methods {
		b.WriteString(ctx.Line(fmt.Sprintf("cfg.route(%q, web::%s().to(handlers::%s::%s));",
			path, strings.ToLower(m.Method), snake(m.Handler), snake(m.Handler))))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *actixAdapter) RoutesIndex(ctx *Context, p *ir.Project, registrations []string) string {
	var b strings.Builder
	b.WriteString("use actix_web::web;\n\n")
	b.WriteString("use crate::handlers;\n\n")
	b.WriteString("pub fn configure(cfg: &mut web::ServiceConfig) {\n")
	b.WriteString(DefaultRoutesIndex(registrations))
	b.WriteString("}\n")
	return b.String()
}

func (a *actixAdapter) HandlerFile(ctx *Context, h *ir.Handler) string {
	ctx.AddImport("actix_web::HttpResponse", "actix-web")
	reads := contextReads(h)
	if len(reads.params)+len(reads.query)+len(reads.body) > 0 {
		ctx.AddImport("actix_web::web", "actix-web")
	}
	if reads.headers {
		ctx.AddImport("actix_web::HttpRequest", "actix-web")
	}
	ctx.Indent()
	lines := renderBody(ctx, a.em, a, h.Body)
	ctx.Dedent()
	var b strings.Builder
	b.WriteString(extractorStruct(ctx, pascal(h.Name)+"Path", reads.params, "String"))
	b.WriteString(extractorStruct(ctx, pascal(h.Name)+"Query", reads.query, "String"))
	b.WriteString(extractorStruct(ctx, pascal(h.Name)+"Body", reads.body, "serde_json::Value"))
	fmt.Fprintf(&b, "pub async fn %s(%s) -> HttpResponse {\n",
		snake(h.Name), strings.Join(extractorArgs(h.Name, reads), ", "))
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	ctx.Indent()
	b.WriteString(ctx.Line("HttpResponse::Ok().finish()"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString("}\n")
	return a.em.Imports(ctx) + "\n" + b.String()
}

// handlerReads collects which request sources a handler body touches, keyed
// by extractor. Field lists keep first-read order.
type handlerReads struct {
	params  []string
	query   []string
	body    []string
	headers bool
}

// contextReads walks the handler body and records every context read so the
// extractor signature binds exactly the identifiers the body uses.
func contextReads(h *ir.Handler) handlerReads {
	var r handlerReads
	seen := make(map[string]struct{})
	add := func(list []string, source, name string) []string {
		key := source + "." + name
		if _, ok := seen[key]; ok {
			return list
		}
		seen[key] = struct{}{}
		return append(list, name)
	}
	var walk func(e *ir.Expression)
	walk = func(e *ir.Expression) {
		if e == nil {
			return
		}
		if e.Kind == ir.ExprContext {
			switch e.Source {
			case "params":
				r.params = add(r.params, e.Source, e.Name)
			case "query":
				r.query = add(r.query, e.Source, e.Name)
			case "body":
				r.body = add(r.body, e.Source, e.Name)
			case "headers":
				r.headers = true
			}
		}
		for _, arg := range e.Args {
			walk(arg)
		}
	}
	for _, s := range h.Body {
		walk(s.Value)
	}
	return r
}

// extractorStruct renders the Deserialize struct backing one extractor, or
// nothing when the handler reads no fields from that source.
func extractorStruct(ctx *Context, name string, fields []string, typ string) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("#[derive(serde::Deserialize)]\n")
	fmt.Fprintf(&b, "pub struct %s {\n", name)
	ctx.Indent()
	for _, f := range fields {
		b.WriteString(ctx.Line(fmt.Sprintf("pub %s: %s,", snake(f), typ)))
		b.WriteString("\n")
	}
	ctx.Dedent()
	b.WriteString("}\n\n")
	return b.String()
}

// extractorArgs builds the handler signature from the collected reads,
// keeping Actix's conventional extractor order.
func extractorArgs(name string, r handlerReads) []string {
	var args []string
	if len(r.params) > 0 {
		args = append(args, fmt.Sprintf("path: web::Path<%sPath>", pascal(name)))
	}
	if len(r.query) > 0 {
		args = append(args, fmt.Sprintf("query: web::Query<%sQuery>", pascal(name)))
	}
	if len(r.body) > 0 {
		args = append(args, fmt.Sprintf("body: web::Json<%sBody>", pascal(name)))
	}
	if r.headers {
		args = append(args, "req: HttpRequest")
	}
	return args
}

// MiddlewareFile renders a from_fn-style middleware function. Composed
// middlewares are invoked in declaration order before continuing the chain.
func (a *actixAdapter) MiddlewareFile(ctx *Context, m *ir.Middleware) string {
	var b strings.Builder
	b.WriteString("use actix_web::body::MessageBody;\n")
	b.WriteString("use actix_web::dev::{ServiceRequest, ServiceResponse};\n")
	b.WriteString("use actix_web::middleware::Next;\n")
	b.WriteString("use actix_web::Error;\n\n")
	fmt.Fprintf(&b, "pub async fn %s(\n", snake(m.Name))
	ctx.Indent()
	b.WriteString(ctx.Line("req: ServiceRequest,"))
	b.WriteString("\n")
	b.WriteString(ctx.Line("next: Next<impl MessageBody>,"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString(") -> Result<ServiceResponse<impl MessageBody>, Error> {\n")
	ctx.Indent()
	for _, c := range m.Composes {
		b.WriteString(ctx.Line(fmt.Sprintf("// composed: %s", snake(c))))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Line("next.call(req).await"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString("}\n")
	return b.String()
}

func (a *actixAdapter) SchemaFile(ctx *Context, s *ir.Schema) string {
	block := a.em.SchemaBlock(ctx, s)
	return a.em.Imports(ctx) + "\n" + block + "\n"
}

func (a *actixAdapter) ModelFile(ctx *Context, m *ir.Model) string {
	def := a.em.ModelDef(ctx, m)
	return a.em.Imports(ctx) + "\n" + def + "\n"
}

// ConfigFiles emits Cargo.toml plus the mod.rs files the per-entity modules
// need, derived from the project contents so the module tree always matches
// the emitted files.
func (a *actixAdapter) ConfigFiles(p *ir.Project) []GeneratedFile {
	name := p.Name
	if name == "" {
		name = "specforge-app"
	}
	version := p.Version
	if version == "" {
		version = "0.1.0"
	}
	cargo := fmt.Sprintf(`[package]
name = %q
version = %q
edition = "2021"

[dependencies]
actix-web = "4"
serde = { version = "1", features = ["derive"] }
serde_json = "1"
validator = { version = "0.18", features = ["derive"] }
uuid = { version = "1", features = ["serde", "v4"] }
chrono = { version = "0.4", features = ["serde"] }
`, name, version)

	files := []GeneratedFile{
		{Path: "Cargo.toml", Content: cargo},
	}
	files = append(files, modFile("src/handlers/mod.rs", handlerNames(p)))
	files = append(files, modFile("src/schemas/mod.rs", schemaNames(p)))
	files = append(files, modFile("src/models/mod.rs", modelNames(p)))
	files = append(files, modFile("src/middleware/mod.rs", middlewareNames(p)))
	return files
}

func modFile(path string, names []string) GeneratedFile {
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "pub mod %s;\n", snake(n))
	}
	return GeneratedFile{Path: path, Content: b.String()}
}

func handlerNames(p *ir.Project) []string {
	out := make([]string, 0, len(p.Handlers))
	for _, h := range p.Handlers {
		out = append(out, h.Name)
	}
	return out
}

func schemaNames(p *ir.Project) []string {
	out := make([]string, 0, len(p.Schemas))
	for _, s := range p.Schemas {
		out = append(out, s.Name)
	}
	return out
}

func modelNames(p *ir.Project) []string {
	out := make([]string, 0, len(p.Models))
	for _, m := range p.Models {
		out = append(out, m.Name)
	}
	return out
}

func middlewareNames(p *ir.Project) []string {
	out := make([]string, 0, len(p.Middlewares))
	for _, m := range p.Middlewares {
		out = append(out, m.Name)
	}
	return out
}
