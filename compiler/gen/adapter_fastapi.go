package gen

import (
	"fmt"
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// fastapiAdapter composes Python emitter output into a FastAPI project:
// app/ package layout, add_api_route registration with "{param}" paths,
// injected handler parameters and pyproject/requirements config files.
type fastapiAdapter struct {
	em Emitter
}

func (a *fastapiAdapter) Framework() spec.Framework  { return spec.FastAPI }
func (a *fastapiAdapter) ContextStyle() ContextStyle { return StyleInjection }

func (a *fastapiAdapter) ExpressionOverride(ctx *Context, e *ir.Expression) (string, bool) {
	return "", false
}

func (a *fastapiAdapter) EntrypointPath() string  { return "app/main.py" }
func (a *fastapiAdapter) RoutesIndexPath() string { return "app/routes.py" }
func (a *fastapiAdapter) HandlerPath(name string) string {
	return "app/handlers/" + snake(name) + ".py"
}
func (a *fastapiAdapter) MiddlewarePath(name string) string {
	return "app/middleware/" + snake(name) + ".py"
}
func (a *fastapiAdapter) SchemaPath(name string) string {
	return "app/schemas/" + snake(name) + ".py"
}
func (a *fastapiAdapter) ModelPath(name string) string {
	return "app/models/" + snake(name) + ".py"
}

func (a *fastapiAdapter) Entrypoint(ctx *Context, p *ir.Project) string {
	ctx.AddImport("FastAPI", "fastapi")
	ctx.AddImport("router", "app.routes")
	for _, name := range p.GlobalMW {
		ctx.AddImport(snake(name), "app.middleware."+snake(name))
	}
	var b strings.Builder
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\n")
	fmt.Fprintf(&b, "app = FastAPI(title=%q, version=%q)\n", title(p.Name), p.Version)
	for _, name := range p.GlobalMW {
		b.WriteString(a.MiddlewareApply(ctx, name))
		b.WriteString("\n")
	}
	b.WriteString("app.include_router(router)\n\n\n")
	b.WriteString("if __name__ == \"__main__\":\n")
	ctx.Indent()
	b.WriteString(ctx.Line("import uvicorn"))
	b.WriteString("\n\n")
	b.WriteString(ctx.Line(fmt.Sprintf("uvicorn.run(app, host=%q, port=%d)", p.Server.Host, p.Server.Port)))
	b.WriteString("\n")
	ctx.Dedent()
	return b.String()
}

func (a *fastapiAdapter) MiddlewareApply(ctx *Context, name string) string {
	return fmt.Sprintf("app.middleware(\"http\")(%s.%s)", snake(name), snake(name))
}

// RouteRegistration renders add_api_route lines with the path converted to
// the "{param}" convention.
func (a *fastapiAdapter) RouteRegistration(ctx *Context, r *ir.Route) string {
	var b strings.Builder
	path := ir.ColonToBrace(r.Path)
	for _, m := range r.Methods {
		ctx.AddImport(snake(m.Handler), "app.handlers."+snake(m.Handler))
		b.WriteString(ctx.Line(fmt.Sprintf("router.add_api_route(%q, %s.%s, methods=[%q])",
			path, snake(m.Handler), snake(m.Handler), m.Method)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *fastapiAdapter) RoutesIndex(ctx *Context, p *ir.Project, registrations []string) string {
	ctx.AddImport("APIRouter", "fastapi")
	var b strings.Builder
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\nrouter = APIRouter()\n\n\ndef register() -> None:\n")
	if len(registrations) == 0 {
		ctx.Indent()
		b.WriteString(ctx.Line("pass"))
		b.WriteString("\n")
		ctx.Dedent()
	} else {
		b.WriteString(DefaultRoutesIndex(registrations))
	}
	b.WriteString("\n\nregister()\n")
	return b.String()
}

func (a *fastapiAdapter) HandlerFile(ctx *Context, h *ir.Handler) string {
	ctx.Indent()
	lines := renderBody(ctx, a.em, a, h.Body)
	ctx.Dedent()
	params := injectedParams(h)
	for _, p := range params {
		if p == "request: Request" {
			ctx.AddImport("Request", "fastapi")
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "async def %s(%s):\n", snake(h.Name), strings.Join(params, ", "))
	if len(lines) == 0 {
		ctx.Indent()
		b.WriteString(ctx.Line("pass"))
		b.WriteString("\n")
		ctx.Dedent()
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	imports := a.em.Imports(ctx)
	if imports != "" {
		imports += "\n\n"
	}
	return imports + b.String()
}

// injectedParams derives the handler's parameter list from the context reads
// its body performs, matching FastAPI's parameter-injection model.
func injectedParams(h *ir.Handler) []string {
	var params []string
	seen := make(map[string]struct{})
	var walkExpr func(e *ir.Expression)
	walkExpr = func(e *ir.Expression) {
		if e == nil {
			return
		}
		if e.Kind == ir.ExprContext {
			var p string
			switch e.Source {
			case "params", "query":
				p = snake(e.Name) + ": str"
			case "body":
				p = "payload: dict"
			case "headers":
				p = "request: Request"
			}
			if _, ok := seen[p]; !ok && p != "" {
				seen[p] = struct{}{}
				params = append(params, p)
			}
		}
		for _, arg := range e.Args {
			walkExpr(arg)
		}
	}
	for _, s := range h.Body {
		walkExpr(s.Value)
	}
	return params
}

func (a *fastapiAdapter) MiddlewareFile(ctx *Context, m *ir.Middleware) string {
	ctx.AddImport("Request", "fastapi")
	var b strings.Builder
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\n\n")
	if len(m.Composes) > 0 {
		for _, c := range m.Composes {
			fmt.Fprintf(&b, "from app.middleware.%s import %s\n", snake(c), snake(c))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "async def %s(request: Request, call_next):\n", snake(m.Name))
	ctx.Indent()
	for _, c := range m.Composes {
		b.WriteString(ctx.Line(fmt.Sprintf("request = await %s(request, call_next)", snake(c))))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Line("return await call_next(request)"))
	b.WriteString("\n")
	ctx.Dedent()
	return b.String()
}

func (a *fastapiAdapter) SchemaFile(ctx *Context, s *ir.Schema) string {
	block := a.em.SchemaBlock(ctx, s)
	return a.em.Imports(ctx) + "\n\n" + block + "\n"
}

func (a *fastapiAdapter) ModelFile(ctx *Context, m *ir.Model) string {
	def := a.em.ModelDef(ctx, m)
	return a.em.Imports(ctx) + "\n\n" + def + "\n"
}

// ConfigFiles emits pyproject.toml and requirements.txt plus the package
// __init__ files the app layout needs.
func (a *fastapiAdapter) ConfigFiles(p *ir.Project) []GeneratedFile {
	name := p.Name
	if name == "" {
		name = "specforge-app"
	}
	version := p.Version
	if version == "" {
		version = "0.1.0"
	}
	pyproject := fmt.Sprintf(`[project]
name = %q
version = %q
description = %q
requires-python = ">=3.11"
dependencies = [
    "fastapi>=0.111",
    "pydantic>=2.7",
    "uvicorn>=0.29",
]
`, name, version, p.Description)
	requirements := "fastapi>=0.111\npydantic>=2.7\nuvicorn>=0.29\n"

	return []GeneratedFile{
		{Path: "pyproject.toml", Content: pyproject},
		{Path: "requirements.txt", Content: requirements},
		{Path: "app/__init__.py", Content: ""},
		{Path: "app/handlers/__init__.py", Content: ""},
		{Path: "app/middleware/__init__.py", Content: ""},
		{Path: "app/schemas/__init__.py", Content: ""},
		{Path: "app/models/__init__.py", Content: ""},
	}
}
