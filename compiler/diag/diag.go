// Package diag defines the diagnostic model shared by the symbol index,
// resolver and validation engine: stable machine codes, severities and
// located findings with JSON-pointer-like paths.
package diag

import (
	"fmt"
	"strings"
)

// Code classifies a diagnostic finding.
type Code string

// Diagnostic codes.
const (
	CodeMissingField        Code = "missing_field"
	CodeUnresolvedReference Code = "unresolved_reference"
	CodeIncompatibleTarget  Code = "incompatible_target"
	CodeCycleDetected       Code = "cycle_detected"
	CodeDuplicateSymbol     Code = "duplicate_symbol"
	CodeInvalidVersion      Code = "invalid_version"
)

// Severity indicates diagnostic impact. Only error-severity findings flip a
// validation report to not-ok; warnings never block.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one located validation finding.
type Diagnostic struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// File is the source file the finding points at, relative to the
	// project root.
	File string `json:"file,omitempty"`
	// Path is a JSON-pointer-like path rooted at "$", for example
	// "$.methods.GET.handler.ref". It is stable and precise enough to
	// round-trip to an editor location.
	Path string `json:"path,omitempty"`
	// Suggestion is an optional human-readable fix.
	Suggestion string `json:"suggestion,omitempty"`
}

// String formats the diagnostic in "severity code file path: message" form.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.Severity, d.Code)
	if d.File != "" {
		b.WriteString(" ")
		b.WriteString(d.File)
	}
	if d.Path != "" {
		b.WriteString(" ")
		b.WriteString(d.Path)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Suggestion != "" {
		b.WriteString(" (")
		b.WriteString(d.Suggestion)
		b.WriteString(")")
	}
	return b.String()
}

// Errorf builds an error-severity diagnostic.
func Errorf(code Code, file, path, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Path:     path,
	}
}

// Warnf builds a warning-severity diagnostic.
func Warnf(code Code, file, path, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Path:     path,
	}
}

// Path joins segments into a JSON-pointer-like path rooted at "$".
// Path("methods", "GET", "handler", "ref") yields "$.methods.GET.handler.ref".
func Path(segments ...string) string {
	if len(segments) == 0 {
		return "$"
	}
	return "$." + strings.Join(segments, ".")
}
