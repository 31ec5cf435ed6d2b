package gen

import (
	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// ExprFunc renders one expression node. The generator composes the adapter's
// expression override with the emitter's default rendering into a single
// ExprFunc and threads it through every statement rendering call.
type ExprFunc func(e *ir.Expression) string

// ContextStyle describes how a framework exposes request context to
// handlers. Emitters consult it when rendering context reads and responses.
type ContextStyle int

// Context styles.
const (
	// StyleReqRes passes separate request and response objects (Express).
	StyleReqRes ContextStyle = iota
	// StyleContext passes a single context object (Gin).
	StyleContext
	// StyleExtractor uses declarative extractors in the handler signature
	// (Actix).
	StyleExtractor
	// StyleInjection injects request parameters as plain function arguments
	// (FastAPI).
	StyleInjection
)

// Emitter renders IR fragments as syntactically valid text for one target
// language. Emitters are stateless; all mutable emission state lives in the
// Context threaded through each call.
type Emitter interface {
	// Language returns the target language.
	Language() spec.Language
	// FileExt returns the source file extension, without the dot.
	FileExt() string
	// IndentUnit returns the indentation unit ("  ", "    " or "\t").
	IndentUnit() string
	// MaxTier returns the highest IR node tier this emitter can render.
	MaxTier() ir.Tier
	// Statement renders one statement at the context's indentation, possibly
	// spanning multiple lines.
	Statement(ctx *Context, s *ir.Statement, style ContextStyle, expr ExprFunc) string
	// Expression renders one expression.
	Expression(ctx *Context, e *ir.Expression, style ContextStyle, expr ExprFunc) string
	// TypeAnnotation renders a type annotation.
	TypeAnnotation(t *ir.Type) string
	// SchemaBlock renders a validation block for a schema.
	SchemaBlock(ctx *Context, s *ir.Schema) string
	// ModelDef renders a data-model definition.
	ModelDef(ctx *Context, m *ir.Model) string
	// Imports renders the context's collected imports, one declaration per
	// line in first-insertion order.
	Imports(ctx *Context) string
}

// emitterFor returns the emitter for a language, or nil when none is
// implemented. The set is closed; adding a language means adding a case here.
func emitterFor(l spec.Language) Emitter {
	switch l {
	case spec.Typescript:
		return &typescriptEmitter{}
	case spec.Rust:
		return &rustEmitter{}
	case spec.Python:
		return &pythonEmitter{}
	case spec.Go:
		return &goEmitter{}
	default:
		return nil
	}
}
