package validate

import (
	"strings"

	"github.com/specforge/specforge/compiler/diag"
)

// Report is the consolidated outcome of one validation pass. It is purely
// additive: every rule appends its findings and no rule may remove another's.
type Report struct {
	diags []diag.Diagnostic
}

// Append adds findings to the report.
func (r *Report) Append(ds ...diag.Diagnostic) {
	r.diags = append(r.diags, ds...)
}

// OK reports whether the pass found no error-severity diagnostics. Warnings
// never block.
func (r *Report) OK() bool {
	for _, d := range r.diags {
		if d.Severity == diag.SeverityError {
			return false
		}
	}
	return true
}

// Diagnostics returns all findings in the order rules appended them.
func (r *Report) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Errors returns only the error-severity findings.
func (r *Report) Errors() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range r.diags {
		if d.Severity == diag.SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// String renders the report one diagnostic per line.
func (r *Report) String() string {
	if len(r.diags) == 0 {
		return "ok"
	}
	var b strings.Builder
	for _, d := range r.diags {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}
