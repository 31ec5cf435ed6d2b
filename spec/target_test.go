package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		language  Language
		framework Framework
		want      bool
	}{
		{Typescript, Express, true},
		{Typescript, Fastify, true},
		{Typescript, Gin, false},
		{Rust, Actix, true},
		{Rust, Axum, true},
		{Rust, FastAPI, false},
		{Python, FastAPI, true},
		{Python, Flask, true},
		{Python, Express, false},
		{Go, Gin, true},
		{Go, Fiber, true},
		{Go, Actix, false},
		{Language("cobol"), Express, false},
		{Typescript, Framework("laravel"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compatible(tt.language, tt.framework),
			"%s/%s", tt.language, tt.framework)
	}
}

func TestFrameworks(t *testing.T) {
	t.Run("matrix order", func(t *testing.T) {
		require.Equal(t, []Framework{Express, Fastify, Hono, Elysia, NestJS}, Frameworks(Typescript))
		require.Equal(t, []Framework{Gin, Echo, Fiber}, Frameworks(Go))
	})
	t.Run("unknown language", func(t *testing.T) {
		assert.Empty(t, Frameworks(Language("cobol")))
	})
	t.Run("copy is independent", func(t *testing.T) {
		fws := Frameworks(Rust)
		fws[0] = Flask
		require.Equal(t, []Framework{Actix, Axum, Rocket}, Frameworks(Rust))
	})
}

func TestKnown(t *testing.T) {
	for _, l := range Languages() {
		assert.True(t, KnownLanguage(l))
	}
	assert.False(t, KnownLanguage(Language("java")))
	assert.True(t, KnownFramework(Rocket))
	assert.True(t, KnownFramework(Django))
	assert.False(t, KnownFramework(Framework("spring")))
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		c := &Config{}
		c.ApplyDefaults()
		assert.Equal(t, DefaultPort, c.Server.Port)
		assert.Equal(t, DefaultHost, c.Server.Host)
		assert.Equal(t, "http", c.Server.Protocol)
		assert.Equal(t, DefaultOutDir, c.Codegen.OutDir)
	})
	t.Run("keeps explicit values", func(t *testing.T) {
		c := &Config{Server: Server{Port: 8080, Host: "127.0.0.1"}, Codegen: Codegen{OutDir: "./out"}}
		c.ApplyDefaults()
		assert.Equal(t, 8080, c.Server.Port)
		assert.Equal(t, "127.0.0.1", c.Server.Host)
		assert.Equal(t, "./out", c.Codegen.OutDir)
	})
}

func TestRefIsZero(t *testing.T) {
	assert.True(t, Ref{}.IsZero())
	assert.False(t, Ref{Ref: "auth"}.IsZero())
	assert.False(t, Ref{Config: map[string]any{"limit": 10}}.IsZero())
}
