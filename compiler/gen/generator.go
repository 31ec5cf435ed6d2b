package gen

import (
	"fmt"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// Generator drives one (emitter, adapter) pair over every IR entity and
// assembles the generated project. Construction validates the pairing; a
// constructed generator is immutable and safe for concurrent Generate calls,
// since every pass gets its own emission contexts.
type Generator struct {
	language  spec.Language
	framework spec.Framework
	emitter   Emitter
	adapter   Adapter
}

// NewGenerator validates the (language, framework) pairing against the
// compatibility matrix and selects the emitter/adapter pair. It fails with an
// IncompatibleTargetError for a pairing outside the matrix, and with an
// UnsupportedLanguageError or UnsupportedFrameworkError for a matrix-legal
// pairing that has no implementation. Rejecting at construction is cheap and
// prevents wasted emission work.
func NewGenerator(language spec.Language, framework spec.Framework) (*Generator, error) {
	if !spec.Compatible(language, framework) {
		return nil, &IncompatibleTargetError{Language: language, Framework: framework}
	}
	em := emitterFor(language)
	if em == nil {
		return nil, &UnsupportedLanguageError{Language: language}
	}
	ad := adapterFor(framework, em)
	if ad == nil {
		return nil, &UnsupportedFrameworkError{Framework: framework}
	}
	return &Generator{language: language, framework: framework, emitter: em, adapter: ad}, nil
}

// Language returns the target language.
func (g *Generator) Language() spec.Language { return g.language }

// Framework returns the target framework.
func (g *Generator) Framework() spec.Framework { return g.framework }

// Generate emits every IR entity through the selected pair and assembles the
// path→content map. The entrypoint, routes index and project-config files are
// always produced, even for an empty project. Output is fully deterministic:
// file set, file order and file content are identical across repeated calls
// on the same IR.
func (g *Generator) Generate(p *ir.Project) (*GeneratedProject, error) {
	if p == nil {
		return nil, &GenerationError{Message: "nil project IR"}
	}
	for _, h := range p.Handlers {
		if t := h.MaxTier(); t > g.emitter.MaxTier() {
			return nil, &GenerationError{
				Entity:  "handler " + h.Name,
				Message: fmt.Sprintf("body requires tier %d, emitter supports up to %d", t, g.emitter.MaxTier()),
			}
		}
	}

	out := NewGeneratedProject()

	ctx := g.newContext()
	out.Add(g.adapter.EntrypointPath(), g.adapter.Entrypoint(ctx, p))

	ctx = g.newContext()
	ctx.Indent()
	regs := make([]string, 0, len(p.Routes))
	for _, r := range p.Routes {
		regs = append(regs, g.adapter.RouteRegistration(ctx, r))
	}
	ctx.Dedent()
	out.Add(g.adapter.RoutesIndexPath(), g.adapter.RoutesIndex(ctx, p, regs))

	for _, s := range p.Schemas {
		ctx = g.newContext()
		out.Add(g.adapter.SchemaPath(s.Name), g.adapter.SchemaFile(ctx, s))
	}
	for _, m := range p.Models {
		ctx = g.newContext()
		out.Add(g.adapter.ModelPath(m.Name), g.adapter.ModelFile(ctx, m))
	}
	for _, m := range p.Middlewares {
		ctx = g.newContext()
		out.Add(g.adapter.MiddlewarePath(m.Name), g.adapter.MiddlewareFile(ctx, m))
	}
	for _, h := range p.Handlers {
		ctx = g.newContext()
		out.Add(g.adapter.HandlerPath(h.Name), g.adapter.HandlerFile(ctx, h))
	}
	for _, f := range g.adapter.ConfigFiles(p) {
		out.Add(f.Path, f.Content)
	}
	return out, nil
}

// newContext returns a fresh emission context for one file of this pass.
func (g *Generator) newContext() *Context {
	return NewContext(g.emitter.IndentUnit())
}

// ExprRenderer returns the composed expression renderer for this pair: the
// adapter's override is consulted first, then the emitter's default. Adapters
// and emitters call back through it for nested expressions.
func (g *Generator) ExprRenderer(ctx *Context) ExprFunc {
	var f ExprFunc
	f = func(e *ir.Expression) string {
		if s, ok := g.adapter.ExpressionOverride(ctx, e); ok {
			return s
		}
		return g.emitter.Expression(ctx, e, g.adapter.ContextStyle(), f)
	}
	return f
}

// renderBody renders a handler body line by line through an emitter/adapter
// pair. It is shared by all adapters.
func renderBody(ctx *Context, em Emitter, ad Adapter, body []*ir.Statement) []string {
	var f ExprFunc
	f = func(e *ir.Expression) string {
		if s, ok := ad.ExpressionOverride(ctx, e); ok {
			return s
		}
		return em.Expression(ctx, e, ad.ContextStyle(), f)
	}
	lines := make([]string, 0, len(body))
	for _, s := range body {
		lines = append(lines, em.Statement(ctx, s, ad.ContextStyle(), f))
	}
	return lines
}
