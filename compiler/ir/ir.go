// Package ir defines the language-neutral intermediate representation the
// generator backends consume, and the converter that lowers a validated
// project model into it. The IR knows nothing about any target language or
// framework; handler bodies are trees of tagged-variant statement and
// expression nodes, each annotated with the minimum expressive tier a
// rendering pipeline must support to emit it.
package ir

// Tier marks the minimum expressive complexity required to represent a node.
// Backends compare a node's tier against their supported ceiling to detect
// node kinds they cannot yet render.
type Tier int

// Tiers, lowest to highest.
const (
	// TierBasic covers literals, identifiers, let-bindings and returns.
	TierBasic Tier = 1
	// TierContext covers request-context access and responding.
	TierContext Tier = 2
	// TierCall covers calls into named operations.
	TierCall Tier = 3
)

// Project is the root of the IR: normalized collections of every lowered
// spec entity plus the project-level settings generation needs. It is
// immutable after conversion; generation only reads it.
type Project struct {
	Name        string        `msgpack:"name"`
	Version     string        `msgpack:"version"`
	Description string        `msgpack:"description"`
	Server      Server        `msgpack:"server"`
	Database    Database      `msgpack:"database"`
	GlobalMW    []string      `msgpack:"global_mw"`
	Routes      []*Route      `msgpack:"routes"`
	Schemas     []*Schema     `msgpack:"schemas"`
	Models      []*Model      `msgpack:"models"`
	Middlewares []*Middleware `msgpack:"middlewares"`
	Handlers    []*Handler    `msgpack:"handlers"`
}

// Server carries the emitted server settings.
type Server struct {
	Port     int    `msgpack:"port"`
	Host     string `msgpack:"host"`
	BasePath string `msgpack:"base_path"`
}

// Database carries the emitted database settings.
type Database struct {
	Type string `msgpack:"type"`
	ORM  string `msgpack:"orm"`
}

// Route is a lowered route: a canonical ":param" path and its ordered
// method bindings.
type Route struct {
	Name    string     `msgpack:"name"`
	Path    string     `msgpack:"path"`
	Methods []*Binding `msgpack:"methods"`
	// Middlewares are route-level middleware names applied to every method.
	Middlewares []string `msgpack:"middlewares"`
}

// Binding binds one HTTP method to a handler plus optional middleware and
// schema names.
type Binding struct {
	Method      string   `msgpack:"method"`
	Handler     string   `msgpack:"handler"`
	Middlewares []string `msgpack:"middlewares"`
	Request     string   `msgpack:"request"`
	Response    string   `msgpack:"response"`
}

// Schema is a lowered validation schema with ordered fields.
type Schema struct {
	Name   string   `msgpack:"name"`
	Fields []*Field `msgpack:"fields"`
}

// Field is one schema field with its lowered type.
type Field struct {
	Name     string `msgpack:"name"`
	Type     *Type  `msgpack:"type"`
	Required bool   `msgpack:"required"`
	Min      *int   `msgpack:"min"`
	Max      *int   `msgpack:"max"`
	Format   string `msgpack:"format"`
}

// Model is a lowered data model with ordered columns and relations.
type Model struct {
	Name      string      `msgpack:"name"`
	Table     string      `msgpack:"table"`
	Columns   []*Column   `msgpack:"columns"`
	Relations []*Relation `msgpack:"relations"`
}

// Column is one model column.
type Column struct {
	Name     string `msgpack:"name"`
	Type     *Type  `msgpack:"type"`
	Primary  bool   `msgpack:"primary"`
	Unique   bool   `msgpack:"unique"`
	Nullable bool   `msgpack:"nullable"`
}

// Relation links a model to another model by name.
type Relation struct {
	Name   string `msgpack:"name"`
	Kind   string `msgpack:"kind"`
	Target string `msgpack:"target"`
}

// Middleware is a lowered middleware: either a handler name or a composed
// chain of other middleware names.
type Middleware struct {
	Name     string   `msgpack:"name"`
	Handler  string   `msgpack:"handler"`
	Composes []string `msgpack:"composes"`
}

// Handler is a lowered handler body.
type Handler struct {
	Name string       `msgpack:"name"`
	Body []*Statement `msgpack:"body"`
}

// StmtKind tags a statement variant.
type StmtKind string

// Statement kinds.
const (
	StmtLet     StmtKind = "let"
	StmtReturn  StmtKind = "return"
	StmtRespond StmtKind = "respond"
	StmtExpr    StmtKind = "expr"
)

// Statement is a tagged-variant statement node of a handler body.
type Statement struct {
	Kind StmtKind `msgpack:"kind"`
	Tier Tier     `msgpack:"tier"`
	// Name is the binding name for StmtLet.
	Name string `msgpack:"name"`
	// Value is the bound, returned or responded expression.
	Value *Expression `msgpack:"value"`
	// Status is the HTTP status for StmtRespond.
	Status int `msgpack:"status"`
}

// ExprKind tags an expression variant.
type ExprKind string

// Expression kinds.
const (
	ExprLit     ExprKind = "lit"
	ExprIdent   ExprKind = "ident"
	ExprContext ExprKind = "context"
	ExprCall    ExprKind = "call"
)

// Expression is a tagged-variant expression node.
type Expression struct {
	Kind ExprKind `msgpack:"kind"`
	Tier Tier     `msgpack:"tier"`
	// Value is the literal value for ExprLit.
	Value any `msgpack:"value"`
	// Name is the identifier for ExprIdent, the context key for ExprContext
	// and the callee for ExprCall.
	Name string `msgpack:"name"`
	// Source names where an ExprContext read comes from: "params", "query",
	// "body" or "headers".
	Source string `msgpack:"source"`
	// Args are the operands for ExprCall.
	Args []*Expression `msgpack:"args"`
}

// TypeKind tags a type variant.
type TypeKind string

// Type kinds.
const (
	TypeString TypeKind = "string"
	TypeInt    TypeKind = "int"
	TypeFloat  TypeKind = "float"
	TypeBool   TypeKind = "bool"
	TypeUUID   TypeKind = "uuid"
	TypeTime   TypeKind = "time"
	TypeArray  TypeKind = "array"
	TypeObject TypeKind = "object"
	TypeAny    TypeKind = "any"
)

// Type is a lowered type annotation.
type Type struct {
	Kind TypeKind `msgpack:"kind"`
	// Elem is the element type for TypeArray.
	Elem *Type `msgpack:"elem"`
}

// MaxTier returns the highest tier used anywhere in the handler body.
func (h *Handler) MaxTier() Tier {
	max := TierBasic
	for _, s := range h.Body {
		if t := s.maxTier(); t > max {
			max = t
		}
	}
	return max
}

func (s *Statement) maxTier() Tier {
	max := s.Tier
	if s.Value != nil {
		if t := s.Value.maxTier(); t > max {
			max = t
		}
	}
	return max
}

func (e *Expression) maxTier() Tier {
	max := e.Tier
	for _, a := range e.Args {
		if t := a.maxTier(); t > max {
			max = t
		}
	}
	return max
}
