package gen

import (
	"strings"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// GeneratedFile pairs a relative output path with its content.
type GeneratedFile struct {
	Path    string
	Content string
}

// Adapter composes emitter output into one framework's idioms: route
// registration, middleware wiring, handler signatures, the entrypoint and
// project configuration files. Adapters are stateless; per-pass state lives
// in the Context.
type Adapter interface {
	// Framework returns the target framework.
	Framework() spec.Framework
	// ContextStyle returns how this framework exposes request context.
	ContextStyle() ContextStyle
	// ExpressionOverride renders a domain expression in this framework's
	// idiom, or reports false to fall back to the emitter.
	ExpressionOverride(ctx *Context, e *ir.Expression) (string, bool)
	// Entrypoint renders the application entrypoint file.
	Entrypoint(ctx *Context, p *ir.Project) string
	// RouteRegistration renders the registration of one route.
	RouteRegistration(ctx *Context, r *ir.Route) string
	// MiddlewareApply renders the application of one global middleware.
	MiddlewareApply(ctx *Context, name string) string
	// RoutesIndex wraps the collected route registrations into the routes
	// index file. Adapters may delegate to DefaultRoutesIndex.
	RoutesIndex(ctx *Context, p *ir.Project, registrations []string) string
	// HandlerFile renders one handler file.
	HandlerFile(ctx *Context, h *ir.Handler) string
	// MiddlewareFile renders one middleware file.
	MiddlewareFile(ctx *Context, m *ir.Middleware) string
	// SchemaFile renders one schema file.
	SchemaFile(ctx *Context, s *ir.Schema) string
	// ModelFile renders one model file.
	ModelFile(ctx *Context, m *ir.Model) string
	// ConfigFiles renders the project configuration files (package manifest,
	// build config) in a fixed order.
	ConfigFiles(p *ir.Project) []GeneratedFile
	// EntrypointPath returns the relative path of the entrypoint file.
	EntrypointPath() string
	// RoutesIndexPath returns the relative path of the routes index file.
	RoutesIndexPath() string
	// HandlerPath returns the relative path for a handler file.
	HandlerPath(name string) string
	// MiddlewarePath returns the relative path for a middleware file.
	MiddlewarePath(name string) string
	// SchemaPath returns the relative path for a schema file.
	SchemaPath(name string) string
	// ModelPath returns the relative path for a model file.
	ModelPath(name string) string
}

// adapterFor returns the adapter for a framework paired with the given
// emitter, or nil when none is implemented. The set is closed, mirroring
// emitterFor.
func adapterFor(f spec.Framework, em Emitter) Adapter {
	switch f {
	case spec.Express:
		return &expressAdapter{em: em}
	case spec.Actix:
		return &actixAdapter{em: em}
	case spec.FastAPI:
		return &fastapiAdapter{em: em}
	case spec.Gin:
		return &ginAdapter{em: em}
	default:
		return nil
	}
}

// DefaultRoutesIndex is the fallback wrapping of collected route
// registrations: simple concatenation separated by blank lines. Adapters
// override it when the framework needs a different file shape.
func DefaultRoutesIndex(registrations []string) string {
	return strings.Join(registrations, "\n")
}

// DefaultGlobalMiddleware is the fallback application of global middleware:
// one MiddlewareApply line per name, concatenated in declaration order.
func DefaultGlobalMiddleware(ctx *Context, a Adapter, names []string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(a.MiddlewareApply(ctx, name))
		b.WriteString("\n")
	}
	return b.String()
}
