// Package gen implements the multi-target code generator: an emission
// context, per-language emitters, per-framework adapters and the orchestrator
// that drives one (emitter, adapter) pair over a project IR to produce a
// deterministic set of output files.
package gen

import (
	"errors"
	"fmt"

	"github.com/specforge/specforge/spec"
)

// Sentinel errors for generator failure modes.
var (
	// ErrIncompatibleTarget indicates a (language, framework) pairing outside
	// the compatibility matrix.
	ErrIncompatibleTarget = errors.New("specforge: incompatible target")
	// ErrUnsupportedTarget indicates a pairing that is legal in principle but
	// has no implemented emitter/adapter pair.
	ErrUnsupportedTarget = errors.New("specforge: unsupported target")
	// ErrGenerationFailed indicates a failure while emitting files.
	ErrGenerationFailed = errors.New("specforge: generation failed")
	// ErrWriteFailed indicates a failure while materializing files to disk.
	ErrWriteFailed = errors.New("specforge: write failed")
)

// IncompatibleTargetError reports a language/framework pairing the
// compatibility matrix forbids. Both sides are named, since the pairing is
// invalid together rather than either value alone.
type IncompatibleTargetError struct {
	Language  spec.Language
	Framework spec.Framework
}

// Error implements the error interface.
func (e *IncompatibleTargetError) Error() string {
	return fmt.Sprintf("specforge: framework %q is not compatible with language %q", e.Framework, e.Language)
}

// Is reports whether the target matches the incompatible-target sentinel.
func (e *IncompatibleTargetError) Is(target error) bool {
	return target == ErrIncompatibleTarget
}

// UnsupportedLanguageError reports a matrix-legal language with no
// implemented emitter.
type UnsupportedLanguageError struct {
	Language spec.Language
}

// Error implements the error interface.
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("specforge: no emitter implemented for language %q", e.Language)
}

// Is reports whether the target matches the unsupported-target sentinel.
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedTarget
}

// UnsupportedFrameworkError reports a matrix-legal framework with no
// implemented adapter.
type UnsupportedFrameworkError struct {
	Framework spec.Framework
}

// Error implements the error interface.
func (e *UnsupportedFrameworkError) Error() string {
	return fmt.Sprintf("specforge: no adapter implemented for framework %q", e.Framework)
}

// Is reports whether the target matches the unsupported-target sentinel.
func (e *UnsupportedFrameworkError) Is(target error) bool {
	return target == ErrUnsupportedTarget
}

// GenerationError reports a failure while emitting a specific entity.
type GenerationError struct {
	Entity  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	msg := "specforge: generation error"
	if e.Entity != "" {
		msg += " on " + e.Entity
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the generation sentinel.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// WriteError reports which file failed during disk materialization. Files
// written before the failure remain on disk; there is no rollback.
type WriteError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("specforge: write %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the write sentinel.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}
