package spec

// Language is a supported target language.
type Language string

// Supported target languages.
const (
	Typescript Language = "typescript"
	Rust       Language = "rust"
	Python     Language = "python"
	Go         Language = "go"
)

// Framework is a supported target web framework.
type Framework string

// Supported target frameworks.
const (
	Express Framework = "express"
	Fastify Framework = "fastify"
	Hono    Framework = "hono"
	Elysia  Framework = "elysia"
	NestJS  Framework = "nestjs"
	Actix   Framework = "actix"
	Axum    Framework = "axum"
	Rocket  Framework = "rocket"
	FastAPI Framework = "fastapi"
	Django  Framework = "django"
	Flask   Framework = "flask"
	Gin     Framework = "gin"
	Echo    Framework = "echo"
	Fiber   Framework = "fiber"
)

// compatibility is the static language→frameworks matrix shared by
// validation and generator construction. It is read-only data, safe for
// concurrent lookups.
var compatibility = map[Language][]Framework{
	Typescript: {Express, Fastify, Hono, Elysia, NestJS},
	Rust:       {Actix, Axum, Rocket},
	Python:     {FastAPI, Django, Flask},
	Go:         {Gin, Echo, Fiber},
}

// Languages returns the supported languages in a stable order.
func Languages() []Language {
	return []Language{Typescript, Rust, Python, Go}
}

// Frameworks returns the frameworks compatible with the given language, in
// matrix order. It returns nil for an unknown language.
func Frameworks(l Language) []Framework {
	fws := compatibility[l]
	out := make([]Framework, len(fws))
	copy(out, fws)
	return out
}

// KnownLanguage reports whether l is a supported target language.
func KnownLanguage(l Language) bool {
	_, ok := compatibility[l]
	return ok
}

// KnownFramework reports whether f is a supported framework for any language.
func KnownFramework(f Framework) bool {
	for _, fws := range compatibility {
		for _, fw := range fws {
			if fw == f {
				return true
			}
		}
	}
	return false
}

// Compatible reports whether framework f is a legal pairing for language l
// according to the compatibility matrix.
func Compatible(l Language, f Framework) bool {
	for _, fw := range compatibility[l] {
		if fw == f {
			return true
		}
	}
	return false
}
