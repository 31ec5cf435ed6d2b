package gen

import (
	"fmt"
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// expressAdapter composes TypeScript emitter output into an Express project:
// src/ layout, app.METHOD route registration, (req, res, next) signatures and
// a package.json/tsconfig.json pair.
type expressAdapter struct {
	em Emitter
}

func (a *expressAdapter) Framework() spec.Framework  { return spec.Express }
func (a *expressAdapter) ContextStyle() ContextStyle { return StyleReqRes }

// ExpressionOverride is not needed for Express; the req/res style is already
// the emitter's rendering for StyleReqRes.
func (a *expressAdapter) ExpressionOverride(ctx *Context, e *ir.Expression) (string, bool) {
	return "", false
}

func (a *expressAdapter) EntrypointPath() string  { return "src/index.ts" }
func (a *expressAdapter) RoutesIndexPath() string { return "src/routes/index.ts" }
func (a *expressAdapter) HandlerPath(name string) string {
	return "src/handlers/" + snake(name) + ".ts"
}
func (a *expressAdapter) MiddlewarePath(name string) string {
	return "src/middleware/" + snake(name) + ".ts"
}
func (a *expressAdapter) SchemaPath(name string) string {
	return "src/schemas/" + snake(name) + ".ts"
}
func (a *expressAdapter) ModelPath(name string) string {
	return "src/models/" + snake(name) + ".ts"
}

func (a *expressAdapter) Entrypoint(ctx *Context, p *ir.Project) string {
	ctx.AddImport("express", "express")
	ctx.AddImport("{ registerRoutes }", "./routes/index")
	for _, name := range p.GlobalMW {
		ctx.AddImport(fmt.Sprintf("{ %s }", camel(name)), "./middleware/"+snake(name))
	}

	var body strings.Builder
	body.WriteString("const app = express();\n")
	body.WriteString("app.use(express.json());\n")
	body.WriteString(DefaultGlobalMiddleware(ctx, a, p.GlobalMW))
	body.WriteString("registerRoutes(app);\n\n")
	fmt.Fprintf(&body, "app.listen(%d, %q, () => {\n", p.Server.Port, p.Server.Host)
	ctx.Indent()
	body.WriteString(ctx.Line(fmt.Sprintf("console.log(%q);", fmt.Sprintf("%s listening on http://%s:%d", p.Name, p.Server.Host, p.Server.Port))))
	body.WriteString("\n")
	ctx.Dedent()
	body.WriteString("});\n")

	return a.em.Imports(ctx) + "\n" + body.String()
}

func (a *expressAdapter) MiddlewareApply(ctx *Context, name string) string {
	return fmt.Sprintf("app.use(%s);", camel(name))
}

// RouteRegistration renders one app.METHOD line per binding. Express uses the
// canonical ":param" convention directly, so no path conversion is needed.
func (a *expressAdapter) RouteRegistration(ctx *Context, r *ir.Route) string {
	var b strings.Builder
	for _, m := range r.Methods {
		ctx.AddImport(fmt.Sprintf("{ %s }", camel(m.Handler)), "../handlers/"+snake(m.Handler))
		chain := make([]string, 0, len(r.Middlewares)+len(m.Middlewares)+1)
		for _, mw := range r.Middlewares {
			ctx.AddImport(fmt.Sprintf("{ %s }", camel(mw)), "../middleware/"+snake(mw))
			chain = append(chain, camel(mw))
		}
		for _, mw := range m.Middlewares {
			ctx.AddImport(fmt.Sprintf("{ %s }", camel(mw)), "../middleware/"+snake(mw))
			chain = append(chain, camel(mw))
		}
		chain = append(chain, camel(m.Handler))
		b.WriteString(ctx.Line(fmt.Sprintf("app.%s(%q, %s);", strings.ToLower(m.Method), r.Path, strings.Join(chain, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *expressAdapter) RoutesIndex(ctx *Context, p *ir.Project, registrations []string) string {
	ctx.AddImport("{ Express }", "express")
	var b strings.Builder
	b.WriteString("export function registerRoutes(app: Express): void {\n")
	b.WriteString(DefaultRoutesIndex(registrations))
	b.WriteString("}\n")
	return a.em.Imports(ctx) + "\n" + b.String()
}

func (a *expressAdapter) HandlerFile(ctx *Context, h *ir.Handler) string {
	ctx.AddImport("{ Request, Response }", "express")
	ctx.Indent()
	lines := renderBody(ctx, a.em, a, h.Body)
	ctx.Dedent()
	var b strings.Builder
	fmt.Fprintf(&b, "export async function %s(req: Request, res: Response): Promise<void> {\n", camel(h.Name))
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return a.em.Imports(ctx) + "\n" + b.String()
}

func (a *expressAdapter) MiddlewareFile(ctx *Context, m *ir.Middleware) string {
	ctx.AddImport("{ Request, Response, NextFunction }", "express")
	var b strings.Builder
	if len(m.Composes) > 0 {
		for _, c := range m.Composes {
			ctx.AddImport(fmt.Sprintf("{ %s }", camel(c)), "./"+snake(c))
		}
		refs := make([]string, 0, len(m.Composes))
		for _, c := range m.Composes {
			refs = append(refs, camel(c))
		}
		fmt.Fprintf(&b, "export const %s = [%s];\n", camel(m.Name), strings.Join(refs, ", "))
		return a.em.Imports(ctx) + "\n" + b.String()
	}
	if m.Handler != "" {
		ctx.AddImport(fmt.Sprintf("{ %s }", camel(m.Handler)), "../handlers/"+snake(m.Handler))
	}
	fmt.Fprintf(&b, "export async function %s(req: Request, res: Response, next: NextFunction): Promise<void> {\n", camel(m.Name))
	if m.Handler != "" {
		fmt.Fprintf(&b, "  await %s(req, res);\n", camel(m.Handler))
	}
	b.WriteString("  next();\n")
	b.WriteString("}\n")
	return a.em.Imports(ctx) + "\n" + b.String()
}

func (a *expressAdapter) SchemaFile(ctx *Context, s *ir.Schema) string {
	block := a.em.SchemaBlock(ctx, s)
	return a.em.Imports(ctx) + "\n" + block + "\n"
}

func (a *expressAdapter) ModelFile(ctx *Context, m *ir.Model) string {
	def := a.em.ModelDef(ctx, m)
	imports := a.em.Imports(ctx)
	if imports != "" {
		imports += "\n"
	}
	return imports + def + "\n"
}

// ConfigFiles emits the package manifest and compiler config. The manifest
// always names the project.
func (a *expressAdapter) ConfigFiles(p *ir.Project) []GeneratedFile {
	name := p.Name
	if name == "" {
		name = "specforge-app"
	}
	version := p.Version
	if version == "" {
		version = "0.1.0"
	}
	pkg := fmt.Sprintf(`{
  "name": %q,
  "version": %q,
  "description": %q,
  "main": "dist/index.js",
  "scripts": {
    "build": "tsc",
    "start": "node dist/index.js",
    "dev": "ts-node src/index.ts"
  },
  "dependencies": {
    "express": "^4.19.0",
    "zod": "^3.23.0"
  },
  "devDependencies": {
    "@types/express": "^4.17.21",
    "ts-node": "^10.9.2",
    "typescript": "^5.4.0"
  }
}
`, name, version, p.Description)
	tsconfig := `{
  "compilerOptions": {
    "target": "ES2022",
    "module": "commonjs",
    "outDir": "./dist",
    "rootDir": "./src",
    "strict": true,
    "esModuleInterop": true,
    "skipLibCheck": true
  },
  "include": ["src/**/*"]
}
`
	return []GeneratedFile{
		{Path: "package.json", Content: pkg},
		{Path: "tsconfig.json", Content: tsconfig},
	}
}
