package ir

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specforge/specforge/spec"
)

// ErrConversion is the sentinel every conversion failure matches.
var ErrConversion = errors.New("specforge: ir conversion failed")

// ConversionError reports the first node shape the converter could not lower.
// Conversion is atomic: no partial IR is ever returned, since a partially
// lowered handler cannot be safely emitted by any backend.
type ConversionError struct {
	Handler string
	Step    int
	Message string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Handler != "" {
		return fmt.Sprintf("specforge: cannot lower handler %q step %d: %s", e.Handler, e.Step, e.Message)
	}
	return "specforge: cannot lower project: " + e.Message
}

// Is reports whether the target matches the conversion sentinel.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ConvertProject lowers a validated project model into IR. Route paths are
// normalized to the canonical ":param" convention and every map-shaped
// collection is ordered so repeated conversions of the same model yield
// identical IR.
func ConvertProject(p *spec.Project) (*Project, error) {
	out := &Project{}
	if c := p.Config; c != nil {
		out.Name = c.Name
		out.Version = c.Version
		out.Description = c.Description
		out.Server = Server{Port: c.Server.Port, Host: c.Server.Host, BasePath: c.Server.BasePath}
		out.Database = Database{Type: c.Database.Type, ORM: c.Database.ORM}
		for _, mw := range c.Middleware.Global {
			out.GlobalMW = append(out.GlobalMW, mw.Ref)
		}
	}
	for _, f := range p.Routes {
		out.Routes = append(out.Routes, convertRoute(f.Def))
	}
	for _, f := range p.Schemas {
		out.Schemas = append(out.Schemas, convertSchema(f.Def))
	}
	for _, f := range p.Models {
		out.Models = append(out.Models, convertModel(f.Def))
	}
	for _, f := range p.Middlewares {
		out.Middlewares = append(out.Middlewares, convertMiddleware(f.Def))
	}
	for _, f := range p.Handlers {
		h, err := convertHandler(f.Def)
		if err != nil {
			return nil, err
		}
		out.Handlers = append(out.Handlers, h)
	}
	return out, nil
}

func convertRoute(r *spec.Route) *Route {
	out := &Route{Name: r.Name, Path: NormalizePath(r.Path)}
	for _, mw := range r.Middlewares {
		out.Middlewares = append(out.Middlewares, mw.Ref)
	}
	methods := make([]string, 0, len(r.Methods))
	for m := range r.Methods {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		rm := r.Methods[m]
		b := &Binding{Method: m, Handler: rm.Handler.Ref}
		for _, mw := range rm.Middlewares {
			b.Middlewares = append(b.Middlewares, mw.Ref)
		}
		if rm.Request != nil {
			b.Request = rm.Request.Ref
		}
		if rm.Response != nil {
			b.Response = rm.Response.Ref
		}
		out.Methods = append(out.Methods, b)
	}
	return out
}

func convertSchema(s *spec.Schema) *Schema {
	out := &Schema{Name: s.Name}
	names := make([]string, 0, len(s.Fields))
	for n := range s.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		f := s.Fields[n]
		out.Fields = append(out.Fields, &Field{
			Name:     n,
			Type:     convertType(f.Type),
			Required: f.Required,
			Min:      f.Min,
			Max:      f.Max,
			Format:   f.Format,
		})
	}
	return out
}

func convertModel(m *spec.Model) *Model {
	out := &Model{Name: m.Name, Table: m.Table}
	cols := make([]string, 0, len(m.Columns))
	for n := range m.Columns {
		cols = append(cols, n)
	}
	sort.Strings(cols)
	for _, n := range cols {
		c := m.Columns[n]
		out.Columns = append(out.Columns, &Column{
			Name:     n,
			Type:     convertType(c.Type),
			Primary:  c.Primary,
			Unique:   c.Unique,
			Nullable: c.Nullable,
		})
	}
	rels := make([]string, 0, len(m.Relations))
	for n := range m.Relations {
		rels = append(rels, n)
	}
	sort.Strings(rels)
	for _, n := range rels {
		r := m.Relations[n]
		out.Relations = append(out.Relations, &Relation{Name: n, Kind: r.Kind, Target: r.Target.Ref})
	}
	return out
}

func convertMiddleware(m *spec.Middleware) *Middleware {
	out := &Middleware{Name: m.Name}
	if m.Handler != nil {
		out.Handler = m.Handler.Ref
	}
	for _, c := range m.Composes {
		out.Composes = append(out.Composes, c.Ref)
	}
	return out
}

// convertType maps spec type names to IR type nodes. Unknown names lower to
// TypeAny rather than failing, since schema types are open-ended strings.
func convertType(name string) *Type {
	switch name {
	case "string", "text", "email":
		return &Type{Kind: TypeString}
	case "int", "integer", "number":
		return &Type{Kind: TypeInt}
	case "float", "double", "decimal":
		return &Type{Kind: TypeFloat}
	case "bool", "boolean":
		return &Type{Kind: TypeBool}
	case "uuid":
		return &Type{Kind: TypeUUID}
	case "time", "timestamp", "date", "datetime":
		return &Type{Kind: TypeTime}
	case "object", "json":
		return &Type{Kind: TypeObject}
	default:
		if len(name) > 2 && name[len(name)-2:] == "[]" {
			return &Type{Kind: TypeArray, Elem: convertType(name[:len(name)-2])}
		}
		return &Type{Kind: TypeAny}
	}
}

func convertHandler(h *spec.Handler) (*Handler, error) {
	out := &Handler{Name: h.Name}
	for i, step := range h.Body {
		s, err := convertStep(h.Name, i, step)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, s)
	}
	return out, nil
}

// convertStep lowers one declarative step. The first unlowerable node fails
// the whole conversion; this is a structural precondition, not a recoverable
// per-node error.
func convertStep(handler string, i int, step *spec.Step) (*Statement, error) {
	switch step.Op {
	case "let":
		if step.Name == "" {
			return nil, &ConversionError{Handler: handler, Step: i, Message: `"let" step has no binding name`}
		}
		v, err := convertOperand(handler, i, step)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtLet, Tier: TierBasic, Name: step.Name, Value: v}, nil
	case "return":
		v, err := convertOperand(handler, i, step)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtReturn, Tier: TierBasic, Value: v}, nil
	case "respond":
		status := step.Status
		if status == 0 {
			status = 200
		}
		v, err := convertOperand(handler, i, step)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtRespond, Tier: TierContext, Status: status, Value: v}, nil
	case "context":
		e, err := contextExpr(handler, i, step)
		if err != nil {
			return nil, err
		}
		if step.Name == "" {
			return nil, &ConversionError{Handler: handler, Step: i, Message: `"context" step has no binding name`}
		}
		return &Statement{Kind: StmtLet, Tier: TierContext, Name: step.Name, Value: e}, nil
	case "call":
		if step.Target == "" {
			return nil, &ConversionError{Handler: handler, Step: i, Message: `"call" step has no target`}
		}
		call := &Expression{Kind: ExprCall, Tier: TierCall, Name: step.Target}
		for _, a := range step.Args {
			call.Args = append(call.Args, literalExpr(a))
		}
		return &Statement{Kind: StmtExpr, Tier: TierCall, Value: call}, nil
	default:
		return nil, &ConversionError{Handler: handler, Step: i, Message: fmt.Sprintf("unknown operation %q", step.Op)}
	}
}

// convertOperand lowers a step's value operand. A map shaped like a context
// read ({"source": ..., "name": ...}) lowers to ExprContext; strings starting
// with "$" lower to identifier references; everything else is a literal.
func convertOperand(handler string, i int, step *spec.Step) (*Expression, error) {
	if step.Source != "" {
		return contextExpr(handler, i, step)
	}
	return literalExpr(step.Value), nil
}

func contextExpr(handler string, i int, step *spec.Step) (*Expression, error) {
	switch step.Source {
	case "params", "query", "body", "headers":
		return &Expression{Kind: ExprContext, Tier: TierContext, Source: step.Source, Name: step.Name}, nil
	default:
		return nil, &ConversionError{Handler: handler, Step: i,
			Message: fmt.Sprintf("unknown context source %q", step.Source)}
	}
}

func literalExpr(v any) *Expression {
	if s, ok := v.(string); ok && len(s) > 1 && s[0] == '$' {
		return &Expression{Kind: ExprIdent, Tier: TierBasic, Name: s[1:]}
	}
	return &Expression{Kind: ExprLit, Tier: TierBasic, Value: v}
}
