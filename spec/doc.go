// Package spec defines the in-memory project model for a specforge project:
// the declarative, multi-file backend description (routes, schemas, models,
// middleware, handlers and the project configuration) that the compiler
// stages consume.
//
// Definitions are plain structs with JSON tags, mirroring the on-disk
// document shapes the loader parses. The package also carries the shared
// language/framework compatibility matrix, consumed by both validation and
// generator construction.
//
// The model is produced once per opened project by the loader and is only
// ever read by the compiler core; none of the compiler stages mutate it.
package spec
