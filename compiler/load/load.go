// Package load reads a specification project from disk. A project root holds
// one specforge config document plus any number of route, schema, model,
// middleware and handler documents, each in JSON, YAML or TOML. The document
// kind comes from the filename: users.route.json is a route, auth.middleware.yaml
// is a middleware. Load order is deterministic (sorted paths) so repeated runs
// see the same project.
package load

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/specforge/specforge/spec"
)

// ConfigBase is the config document basename, without extension.
const ConfigBase = "specforge"

// Extensions lists the document extensions the loader accepts, in the order
// the config file is probed.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// ErrNoConfig is returned when the project root has no specforge config
// document.
var ErrNoConfig = errors.New("load: no specforge config found")

// ParseError is returned when a document fails to decode.
type ParseError struct {
	Path string
	err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("load: parse %s: %s", e.Path, e.err) }

func (e *ParseError) Unwrap() error { return e.err }

// Is implements the errors.Is interface.
func (e *ParseError) Is(target error) bool {
	_, ok := target.(*ParseError)
	return ok
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"target":       true,
	"vendor":       true,
}

// Load reads the project rooted at dir. The config document is required;
// everything else is optional. Document definitions that omit a name inherit
// the filename stem, so routes/users.route.json defines "users" unless the
// document says otherwise.
func Load(dir string) (*spec.Project, error) {
	p := spec.NewProject()
	cfgPath, err := findConfig(dir)
	if err != nil {
		return nil, err
	}
	if err := decodeFile(cfgPath, p.Config); err != nil {
		return nil, err
	}
	p.ConfigPath = filepath.Base(cfgPath)
	p.Config.ApplyDefaults()

	paths, err := collect(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if err := loadDocument(p, path, rel); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// findConfig probes the root for specforge.{json,yaml,yml,toml}.
func findConfig(dir string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, ConfigBase+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoConfig, dir)
}

// collect walks the tree and returns every document path in sorted order.
func collect(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if kindOf(name) != "" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load: walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// kindOf returns the document kind encoded in a filename, or "" when the
// file is not a spec document.
func kindOf(name string) string {
	ext := filepath.Ext(name)
	ok := false
	for _, e := range Extensions {
		if ext == e {
			ok = true
			break
		}
	}
	if !ok {
		return ""
	}
	stem := strings.TrimSuffix(name, ext)
	i := strings.LastIndexByte(stem, '.')
	if i < 0 {
		return ""
	}
	switch kind := stem[i+1:]; kind {
	case "route", "schema", "model", "middleware", "handler":
		return kind
	default:
		return ""
	}
}

// docName strips the kind suffix and extension: "users.route.json" -> "users".
func docName(rel string) string {
	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.LastIndexByte(stem, '.'); i >= 0 {
		return stem[:i]
	}
	return stem
}

func loadDocument(p *spec.Project, path, rel string) error {
	switch kindOf(filepath.Base(path)) {
	case "route":
		def := &spec.Route{}
		if err := decodeFile(path, def); err != nil {
			return err
		}
		if def.Name == "" {
			def.Name = docName(rel)
		}
		p.Routes = append(p.Routes, spec.File[*spec.Route]{Path: rel, Def: def})
	case "schema":
		def := &spec.Schema{}
		if err := decodeFile(path, def); err != nil {
			return err
		}
		if def.Name == "" {
			def.Name = docName(rel)
		}
		p.Schemas = append(p.Schemas, spec.File[*spec.Schema]{Path: rel, Def: def})
	case "model":
		def := &spec.Model{}
		if err := decodeFile(path, def); err != nil {
			return err
		}
		if def.Name == "" {
			def.Name = docName(rel)
		}
		p.Models = append(p.Models, spec.File[*spec.Model]{Path: rel, Def: def})
	case "middleware":
		def := &spec.Middleware{}
		if err := decodeFile(path, def); err != nil {
			return err
		}
		if def.Name == "" {
			def.Name = docName(rel)
		}
		p.Middlewares = append(p.Middlewares, spec.File[*spec.Middleware]{Path: rel, Def: def})
	case "handler":
		def := &spec.Handler{}
		if err := decodeFile(path, def); err != nil {
			return err
		}
		if def.Name == "" {
			def.Name = docName(rel)
		}
		p.Handlers = append(p.Handlers, spec.File[*spec.Handler]{Path: rel, Def: def})
	}
	return nil
}

// decodeFile parses one document into v according to its extension.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load: read %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".toml":
		err = toml.Unmarshal(data, v)
	default:
		err = fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		return &ParseError{Path: path, err: err}
	}
	return nil
}
