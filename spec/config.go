package spec

// Default server and codegen settings applied by DefaultConfig and by the
// loader when a project config omits them.
const (
	DefaultPort   = 3000
	DefaultHost   = "0.0.0.0"
	DefaultOutDir = "./dist"
)

// Config is the project-level configuration document.
type Config struct {
	SchemaRef   string            `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`
	Version     string            `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Target      Target            `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Server      Server            `json:"server,omitempty" yaml:"server,omitempty" toml:"server,omitempty"`
	Database    Database          `json:"database,omitempty" yaml:"database,omitempty" toml:"database,omitempty"`
	Codegen     Codegen           `json:"codegen,omitempty" yaml:"codegen,omitempty" toml:"codegen,omitempty"`
	Middleware  MiddlewareConfig  `json:"middleware,omitempty" yaml:"middleware,omitempty" toml:"middleware,omitempty"`
	Plugins     []string          `json:"plugins,omitempty" yaml:"plugins,omitempty" toml:"plugins,omitempty"`
	Meta        map[string]any    `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`
}

// Target selects the generation target.
type Target struct {
	Language  Language  `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	Framework Framework `json:"framework,omitempty" yaml:"framework,omitempty" toml:"framework,omitempty"`
	Runtime   string    `json:"runtime,omitempty" yaml:"runtime,omitempty" toml:"runtime,omitempty"`
}

// Server holds the emitted server settings.
type Server struct {
	Port     int    `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`
	Host     string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty" toml:"protocol,omitempty"`
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty" toml:"basePath,omitempty"`
}

// Database holds the emitted database settings.
type Database struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	ORM  string `json:"orm,omitempty" yaml:"orm,omitempty" toml:"orm,omitempty"`
}

// Codegen holds output settings for generation.
type Codegen struct {
	OutDir    string `json:"outDir,omitempty" yaml:"outDir,omitempty" toml:"outDir,omitempty"`
	SourceMap bool   `json:"sourceMap,omitempty" yaml:"sourceMap,omitempty" toml:"sourceMap,omitempty"`
	Strict    bool   `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty"`
}

// MiddlewareConfig holds the global middleware chain applied to every route.
type MiddlewareConfig struct {
	Global []Ref `json:"global,omitempty" yaml:"global,omitempty" toml:"global,omitempty"`
}

// DefaultConfig returns a configuration with the documented defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Server:  Server{Port: DefaultPort, Host: DefaultHost, Protocol: "http"},
		Codegen: Codegen{OutDir: DefaultOutDir},
	}
}

// ApplyDefaults fills zero-valued settings with the documented defaults.
// The loader calls this after parsing a project config document.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Protocol == "" {
		c.Server.Protocol = "http"
	}
	if c.Codegen.OutDir == "" {
		c.Codegen.OutDir = DefaultOutDir
	}
}
