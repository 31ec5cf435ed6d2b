// Package openapi converts between project IR and OpenAPI 3.1-shaped
// documents: export renders routes and schemas as a paths/components
// document, import reconstructs spec fragments from one. The compiler core
// never consumes these documents directly; they exist for interchange.
package openapi

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

// Version is the OpenAPI version stamped on exported documents.
const Version = "3.1.0"

// Document is an OpenAPI 3.1-shaped document.
type Document struct {
	OpenAPI    string                `yaml:"openapi" json:"openapi"`
	Info       Info                  `yaml:"info" json:"info"`
	Servers    []Server              `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      map[string]*PathItem  `yaml:"paths" json:"paths"`
	Components *Components           `yaml:"components,omitempty" json:"components,omitempty"`
	Tags       []Tag                 `yaml:"tags,omitempty" json:"tags,omitempty"`
	Security   []map[string][]string `yaml:"security,omitempty" json:"security,omitempty"`
}

// Info is the document info block.
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Server is one servers entry.
type Server struct {
	URL string `yaml:"url" json:"url"`
}

// Tag is one tags entry.
type Tag struct {
	Name string `yaml:"name" json:"name"`
}

// PathItem maps lowercase HTTP methods to operations.
type PathItem map[string]*Operation

// Operation is one path operation.
type Operation struct {
	OperationID string               `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []Parameter          `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody         `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]*Response `yaml:"responses,omitempty" json:"responses,omitempty"`
}

// Parameter is one operation parameter.
type Parameter struct {
	Name     string     `yaml:"name" json:"name"`
	In       string     `yaml:"in" json:"in"`
	Required bool       `yaml:"required" json:"required"`
	Schema   *SchemaObj `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// RequestBody references a component schema.
type RequestBody struct {
	Content map[string]*MediaType `yaml:"content" json:"content"`
}

// Response is one response entry.
type Response struct {
	Description string                `yaml:"description" json:"description"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
}

// MediaType holds a schema for a media type.
type MediaType struct {
	Schema *SchemaObj `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Components holds reusable schema objects.
type Components struct {
	Schemas map[string]*SchemaObj `yaml:"schemas,omitempty" json:"schemas,omitempty"`
}

// SchemaObj is a JSON-schema-shaped object. Ref is exclusive with the rest.
type SchemaObj struct {
	Ref        string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type       string                `yaml:"type,omitempty" json:"type,omitempty"`
	Format     string                `yaml:"format,omitempty" json:"format,omitempty"`
	Properties map[string]*SchemaObj `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required   []string              `yaml:"required,omitempty" json:"required,omitempty"`
	Items      *SchemaObj            `yaml:"items,omitempty" json:"items,omitempty"`
	MinLength  *int                  `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength  *int                  `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
}

// Export renders the IR as an OpenAPI document. Route paths convert from the
// canonical ":param" convention to OpenAPI's "{param}".
func Export(p *ir.Project) *Document {
	doc := &Document{
		OpenAPI: Version,
		Info:    Info{Title: p.Name, Version: orDefault(p.Version, "0.1.0"), Description: p.Description},
		Paths:   make(map[string]*PathItem),
	}
	if p.Server.Port != 0 {
		doc.Servers = []Server{{URL: fmt.Sprintf("http://%s:%d%s", p.Server.Host, p.Server.Port, p.Server.BasePath)}}
	}
	for _, r := range p.Routes {
		path := ir.ColonToBrace(r.Path)
		item, ok := doc.Paths[path]
		if !ok {
			pi := make(PathItem)
			item = &pi
			doc.Paths[path] = item
		}
		for _, m := range r.Methods {
			op := &Operation{
				OperationID: m.Handler,
				Responses:   map[string]*Response{"200": {Description: "OK"}},
			}
			for _, name := range pathParams(r.Path) {
				op.Parameters = append(op.Parameters, Parameter{
					Name: name, In: "path", Required: true, Schema: &SchemaObj{Type: "string"},
				})
			}
			if m.Request != "" {
				op.RequestBody = &RequestBody{Content: map[string]*MediaType{
					"application/json": {Schema: &SchemaObj{Ref: "#/components/schemas/" + m.Request}},
				}}
			}
			if m.Response != "" {
				op.Responses["200"].Content = map[string]*MediaType{
					"application/json": {Schema: &SchemaObj{Ref: "#/components/schemas/" + m.Response}},
				}
			}
			(*item)[strings.ToLower(m.Method)] = op
		}
	}
	if len(p.Schemas) > 0 {
		doc.Components = &Components{Schemas: make(map[string]*SchemaObj)}
		for _, s := range p.Schemas {
			doc.Components.Schemas[s.Name] = exportSchema(s)
		}
	}
	return doc
}

func exportSchema(s *ir.Schema) *SchemaObj {
	obj := &SchemaObj{Type: "object", Properties: make(map[string]*SchemaObj)}
	for _, f := range s.Fields {
		obj.Properties[f.Name] = exportType(f)
		if f.Required {
			obj.Required = append(obj.Required, f.Name)
		}
	}
	sort.Strings(obj.Required)
	return obj
}

func exportType(f *ir.Field) *SchemaObj {
	obj := &SchemaObj{}
	switch f.Type.Kind {
	case ir.TypeInt:
		obj.Type = "integer"
	case ir.TypeFloat:
		obj.Type = "number"
	case ir.TypeBool:
		obj.Type = "boolean"
	case ir.TypeTime:
		obj.Type = "string"
		obj.Format = "date-time"
	case ir.TypeUUID:
		obj.Type = "string"
		obj.Format = "uuid"
	case ir.TypeArray:
		obj.Type = "array"
		obj.Items = &SchemaObj{Type: "string"}
	case ir.TypeObject:
		obj.Type = "object"
	default:
		obj.Type = "string"
	}
	if f.Format != "" && obj.Format == "" {
		obj.Format = f.Format
	}
	obj.MinLength = f.Min
	obj.MaxLength = f.Max
	return obj
}

// pathParams extracts the ":param" names of a canonical path in order.
func pathParams(path string) []string {
	var out []string
	for i := 0; i < len(path); {
		if path[i] != ':' {
			i++
			continue
		}
		j := i + 1
		for j < len(path) && (path[j] == '_' ||
			(path[j] >= 'a' && path[j] <= 'z') ||
			(path[j] >= 'A' && path[j] <= 'Z') ||
			(path[j] >= '0' && path[j] <= '9')) {
			j++
		}
		if j > i+1 {
			out = append(out, path[i+1:j])
		}
		i = j
	}
	return out
}

// MarshalYAML renders the document as YAML.
func MarshalYAML(doc *Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal: %w", err)
	}
	return out, nil
}

// Import reconstructs route and schema fragments from a document. Paths
// normalize back to the canonical ":param" convention.
func Import(doc *Document) *spec.Project {
	p := spec.NewProject()
	p.Config.Name = doc.Info.Title
	p.Config.Version = doc.Info.Version
	p.Config.Description = doc.Info.Description

	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		item := doc.Paths[path]
		route := &spec.Route{
			Name:    routeName(path),
			Path:    ir.BraceToColon(path),
			Methods: make(map[string]*spec.RouteMethod),
		}
		methods := make([]string, 0, len(*item))
		for m := range *item {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			op := (*item)[m]
			rm := &spec.RouteMethod{Handler: spec.Ref{Ref: op.OperationID}}
			if op.RequestBody != nil {
				if mt, ok := op.RequestBody.Content["application/json"]; ok && mt.Schema != nil {
					rm.Request = &spec.Ref{Ref: refName(mt.Schema.Ref)}
				}
			}
			route.Methods[strings.ToUpper(m)] = rm
		}
		p.Routes = append(p.Routes, spec.File[*spec.Route]{Path: "openapi-import", Def: route})
	}
	if doc.Components != nil {
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p.Schemas = append(p.Schemas, spec.File[*spec.Schema]{
				Path: "openapi-import",
				Def:  importSchema(name, doc.Components.Schemas[name]),
			})
		}
	}
	return p
}

func importSchema(name string, obj *SchemaObj) *spec.Schema {
	s := &spec.Schema{Name: name, Fields: make(map[string]*spec.SchemaField)}
	required := make(map[string]bool, len(obj.Required))
	for _, r := range obj.Required {
		required[r] = true
	}
	for prop, po := range obj.Properties {
		f := &spec.SchemaField{Required: required[prop], Format: po.Format, Min: po.MinLength, Max: po.MaxLength}
		switch po.Type {
		case "integer":
			f.Type = "int"
		case "number":
			f.Type = "float"
		case "boolean":
			f.Type = "bool"
		case "array":
			f.Type = "string[]"
		case "object":
			f.Type = "object"
		default:
			f.Type = "string"
		}
		s.Fields[prop] = f
	}
	return s
}

func refName(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// routeName derives a stable route name from a path: "/users/{id}" becomes
// "users-id".
func routeName(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	clean := strings.NewReplacer("{", "", "}", "", ":", "", "/", "-").Replace(trimmed)
	return clean
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
