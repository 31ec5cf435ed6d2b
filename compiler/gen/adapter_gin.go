package gen

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// ginAdapter composes Go emitter output into a Gin project: cmd/internal
// layout, router.METHOD registration with the canonical ":param" paths Gin
// shares, single-context handler signatures and a go.mod manifest. Emitted
// Go files are run through goimports; files that fail to format are kept
// unformatted rather than dropped.
type ginAdapter struct {
	em Emitter
}

func (a *ginAdapter) Framework() spec.Framework  { return spec.Gin }
func (a *ginAdapter) ContextStyle() ContextStyle { return StyleContext }

func (a *ginAdapter) ExpressionOverride(ctx *Context, e *ir.Expression) (string, bool) {
	return "", false
}

func (a *ginAdapter) EntrypointPath() string  { return "cmd/server/main.go" }
func (a *ginAdapter) RoutesIndexPath() string { return "internal/routes/routes.go" }
func (a *ginAdapter) HandlerPath(name string) string {
	return "internal/handlers/" + snake(name) + ".go"
}
func (a *ginAdapter) MiddlewarePath(name string) string {
	return "internal/middleware/" + snake(name) + ".go"
}
func (a *ginAdapter) SchemaPath(name string) string {
	return "internal/schemas/" + snake(name) + ".go"
}
func (a *ginAdapter) ModelPath(name string) string {
	return "internal/models/" + snake(name) + ".go"
}

// modulePath derives the generated module path from the project name.
func (a *ginAdapter) modulePath(p *ir.Project) string {
	name := p.Name
	if name == "" {
		name = "specforge-app"
	}
	return "example.com/" + snake(name)
}

func (a *ginAdapter) Entrypoint(ctx *Context, p *ir.Project) string {
	mod := a.modulePath(p)
	var b strings.Builder
	b.WriteString("package main\n\n")
	ctx.AddImport("", "fmt")
	ctx.AddImport("", "github.com/gin-gonic/gin")
	ctx.AddImport("", mod+"/internal/routes")
	if len(p.GlobalMW) > 0 {
		ctx.AddImport("", mod+"/internal/middleware")
	}
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\nfunc main() {\n")
	ctx.Indent()
	b.WriteString(ctx.Line("r := gin.Default()"))
	b.WriteString("\n")
	for _, name := range p.GlobalMW {
		b.WriteString(ctx.Line(a.MiddlewareApply(ctx, name)))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Line("routes.Register(r)"))
	b.WriteString("\n")
	b.WriteString(ctx.Line(fmt.Sprintf("fmt.Printf(%q)", fmt.Sprintf("%s listening on http://%s:%d (gin)\n", p.Name, p.Server.Host, p.Server.Port))))
	b.WriteString("\n")
	b.WriteString(ctx.Line(fmt.Sprintf("if err := r.Run(%q); err != nil {", fmt.Sprintf("%s:%d", p.Server.Host, p.Server.Port))))
	b.WriteString("\n")
	ctx.Indent()
	b.WriteString(ctx.Line("panic(err)"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString(ctx.Line("}"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString("}\n")
	return a.gofmt("main.go", b.String())
}

func (a *ginAdapter) MiddlewareApply(ctx *Context, name string) string {
	return fmt.Sprintf("r.Use(middleware.%s())", pascal(name))
}

// RouteRegistration renders router.METHOD lines. Gin shares the canonical
// ":param" convention, so paths pass through unconverted.
func (a *ginAdapter) RouteRegistration(ctx *Context, r *ir.Route) string {
	var b strings.Builder
	for _, m := range r.Methods {
		chain := make([]string, 0, len(r.Middlewares)+len(m.Middlewares)+1)
		for _, mw := range r.Middlewares {
			chain = append(chain, fmt.Sprintf("middleware.%s()", pascal(mw)))
		}
		for _, mw := range m.Middlewares {
			chain = append(chain, fmt.Sprintf("middleware.%s()", pascal(mw)))
		}
		chain = append(chain, fmt.Sprintf("handlers.%s", pascal(m.Handler)))
		b.WriteString(ctx.Line(fmt.Sprintf("r.%s(%q, %s)", m.Method, r.Path, strings.Join(chain, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *ginAdapter) RoutesIndex(ctx *Context, p *ir.Project, registrations []string) string {
	mod := a.modulePath(p)
	var b strings.Builder
	b.WriteString("package routes\n\n")
	ctx.AddImport("", "github.com/gin-gonic/gin")
	if len(p.Routes) > 0 {
		ctx.AddImport("", mod+"/internal/handlers")
	}
	needMW := false
	for _, r := range p.Routes {
		if len(r.Middlewares) > 0 {
			needMW = true
		}
		for _, m := range r.Methods {
			if len(m.Middlewares) > 0 {
				needMW = true
			}
		}
	}
	if needMW {
		ctx.AddImport("", mod+"/internal/middleware")
	}
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\n// Register wires every generated route onto the engine.\n")
	b.WriteString("func Register(r *gin.Engine) {\n")
	b.WriteString(DefaultRoutesIndex(registrations))
	b.WriteString("}\n")
	return a.gofmt("routes.go", b.String())
}

func (a *ginAdapter) HandlerFile(ctx *Context, h *ir.Handler) string {
	ctx.AddImport("", "github.com/gin-gonic/gin")
	ctx.Indent()
	lines := renderBody(ctx, a.em, a, h.Body)
	ctx.Dedent()
	var b strings.Builder
	b.WriteString("package handlers\n\n")
	b.WriteString(a.em.Imports(ctx))
	fmt.Fprintf(&b, "\n// %s handles one route method.\n", pascal(h.Name))
	fmt.Fprintf(&b, "func %s(c *gin.Context) {\n", pascal(h.Name))
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return a.gofmt(snake(h.Name)+".go", b.String())
}

func (a *ginAdapter) MiddlewareFile(ctx *Context, m *ir.Middleware) string {
	ctx.AddImport("", "github.com/gin-gonic/gin")
	var b strings.Builder
	b.WriteString("package middleware\n\n")
	b.WriteString(a.em.Imports(ctx))
	fmt.Fprintf(&b, "\n// %s returns the %s middleware.\n", pascal(m.Name), m.Name)
	fmt.Fprintf(&b, "func %s() gin.HandlerFunc {\n", pascal(m.Name))
	ctx.Indent()
	b.WriteString(ctx.Line("return func(c *gin.Context) {"))
	b.WriteString("\n")
	ctx.Indent()
	for _, c := range m.Composes {
		b.WriteString(ctx.Line(fmt.Sprintf("%s()(c)", pascal(c))))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Line("c.Next()"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString(ctx.Line("}"))
	b.WriteString("\n")
	ctx.Dedent()
	b.WriteString("}\n")
	return a.gofmt(snake(m.Name)+".go", b.String())
}

func (a *ginAdapter) SchemaFile(ctx *Context, s *ir.Schema) string {
	block := a.em.SchemaBlock(ctx, s)
	var b strings.Builder
	b.WriteString("package schemas\n\n")
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\n")
	b.WriteString(block)
	b.WriteString("\n")
	return a.gofmt(snake(s.Name)+".go", b.String())
}

func (a *ginAdapter) ModelFile(ctx *Context, m *ir.Model) string {
	def := a.em.ModelDef(ctx, m)
	var b strings.Builder
	b.WriteString("package models\n\n")
	b.WriteString(a.em.Imports(ctx))
	b.WriteString("\n")
	b.WriteString(def)
	b.WriteString("\n")
	return a.gofmt(snake(m.Name)+".go", b.String())
}

// ConfigFiles emits the generated module's go.mod and a Makefile.
func (a *ginAdapter) ConfigFiles(p *ir.Project) []GeneratedFile {
	gomod := fmt.Sprintf(`module %s

go 1.22

require github.com/gin-gonic/gin v1.10.0
`, a.modulePath(p))
	makefile := `.PHONY: build run

build:
	go build ./...

run:
	go run ./cmd/server
`
	return []GeneratedFile{
		{Path: "go.mod", Content: gomod},
		{Path: "Makefile", Content: makefile},
	}
}

// gofmt formats an emitted Go file with goimports. Formatting failures fall
// back to the unformatted text; generation still has to produce every file.
func (a *ginAdapter) gofmt(filename, src string) string {
	formatted, err := imports.Process(filename, []byte(src), nil)
	if err != nil {
		return src
	}
	return string(formatted)
}
