package spec

// Ref is a named pointer from one spec entity to another, optionally carrying
// an inline configuration payload. References are resolved against the symbol
// index by qualified name within a single kind's namespace.
type Ref struct {
	Ref    string         `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty"`
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.Ref == "" && len(r.Config) == 0
}

// Route describes one route document: a path, a set of HTTP methods and the
// handler, middleware and schema bindings for each method.
type Route struct {
	Schema      string                  `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`
	Name        string                  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Path        string                  `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Methods     map[string]*RouteMethod `json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty"`
	Middlewares []Ref                   `json:"middlewares,omitempty" yaml:"middlewares,omitempty" toml:"middlewares,omitempty"`
	Meta        map[string]any          `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// RouteMethod binds one HTTP method of a route to its handler and the
// optional request/response schemas and per-method middleware chain.
type RouteMethod struct {
	Handler     Ref   `json:"handler,omitempty" yaml:"handler,omitempty" toml:"handler,omitempty"`
	Middlewares []Ref `json:"middlewares,omitempty" yaml:"middlewares,omitempty" toml:"middlewares,omitempty"`
	Request     *Ref  `json:"request,omitempty" yaml:"request,omitempty" toml:"request,omitempty"`
	Response    *Ref  `json:"response,omitempty" yaml:"response,omitempty" toml:"response,omitempty"`
}

// Schema describes a validation schema document (request/response shapes).
type Schema struct {
	SchemaRef string                  `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`
	Name      string                  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Fields    map[string]*SchemaField `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
	Meta      map[string]any          `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// SchemaField is a single field of a validation schema.
type SchemaField struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Min      *int   `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max      *int   `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
}

// Model describes a data-model document: columns and relations to other
// models.
type Model struct {
	SchemaRef string               `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`
	Name      string               `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Table     string               `json:"table,omitempty" yaml:"table,omitempty" toml:"table,omitempty"`
	Columns   map[string]*Column   `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`
	Relations map[string]*Relation `json:"relations,omitempty" yaml:"relations,omitempty" toml:"relations,omitempty"`
	Meta      map[string]any       `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// Column is a single column of a data model.
type Column struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Primary  bool   `json:"primary,omitempty" yaml:"primary,omitempty" toml:"primary,omitempty"`
	Unique   bool   `json:"unique,omitempty" yaml:"unique,omitempty" toml:"unique,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" toml:"nullable,omitempty"`
	Default  any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// Relation links a model to another model.
type Relation struct {
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Target Ref    `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty" toml:"field,omitempty"`
}

// Middleware describes a middleware document. A middleware either names its
// own handler or composes other middlewares into a chain.
type Middleware struct {
	SchemaRef string         `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Handler   *Ref           `json:"handler,omitempty" yaml:"handler,omitempty" toml:"handler,omitempty"`
	Composes  []Ref          `json:"composes,omitempty" yaml:"composes,omitempty" toml:"composes,omitempty"`
	Meta      map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// Handler describes a handler document: a named body of declarative steps.
type Handler struct {
	SchemaRef string         `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Body      []*Step        `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty"`
	Meta      map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// Step is one declarative statement of a handler body. Exactly one of the
// operation fields is set; the converter lowers steps into IR statements.
type Step struct {
	// Op names the operation: "let", "return", "respond", "context", "call".
	Op string `json:"op,omitempty" yaml:"op,omitempty" toml:"op,omitempty"`
	// Name is the binding name for "let" and the source key for "context".
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	// Value is a literal or expression operand.
	Value any `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	// Status is the HTTP status for "respond".
	Status int `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
	// Source names where a "context" read comes from: "params", "query",
	// "body", "headers".
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	// Target names the callee for "call".
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	// Args are the operands for "call".
	Args []any `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
}

// File pairs a definition with the source file it was loaded from.
type File[T any] struct {
	// Path is the source file path relative to the project root.
	Path string
	// Def is the parsed definition.
	Def T
}

// Project is the loaded specification: the project configuration plus an
// ordered collection of (source file, definition) pairs for every spec kind.
// Ordering follows load order and is preserved through validation, lowering
// and generation.
type Project struct {
	Config *Config
	// ConfigPath is the config document path relative to the project root,
	// e.g. "specforge.yaml". Empty for projects built in memory.
	ConfigPath  string
	Routes      []File[*Route]
	Schemas     []File[*Schema]
	Models      []File[*Model]
	Middlewares []File[*Middleware]
	Handlers    []File[*Handler]
}

// NewProject returns an empty project with a default configuration.
func NewProject() *Project {
	return &Project{Config: DefaultConfig()}
}
