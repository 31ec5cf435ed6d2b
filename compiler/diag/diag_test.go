package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	assert.Equal(t, "$", Path())
	assert.Equal(t, "$.path", Path("path"))
	assert.Equal(t, "$.methods.GET.handler.ref", Path("methods", "GET", "handler", "ref"))
}

func TestString(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		d := Diagnostic{
			Code:       CodeUnresolvedReference,
			Severity:   SeverityError,
			Message:    `unresolved handler "getUser"`,
			File:       "routes/users.route.json",
			Path:       "$.methods.GET.handler.ref",
			Suggestion: `did you mean "get_user"?`,
		}
		assert.Equal(t,
			`error unresolved_reference routes/users.route.json $.methods.GET.handler.ref: unresolved handler "getUser" (did you mean "get_user"?)`,
			d.String())
	})
	t.Run("minimal", func(t *testing.T) {
		d := Warnf(CodeDuplicateSymbol, "", "", "duplicate %q", "auth")
		assert.Equal(t, `warning duplicate_symbol: duplicate "auth"`, d.String())
	})
}

func TestConstructors(t *testing.T) {
	e := Errorf(CodeMissingField, "a.route.json", "$.path", "route has no path")
	assert.Equal(t, SeverityError, e.Severity)
	assert.Equal(t, CodeMissingField, e.Code)
	assert.Equal(t, "a.route.json", e.File)

	w := Warnf(CodeInvalidVersion, "specforge.json", "$.version", "version %q is not semver", "latest")
	assert.Equal(t, SeverityWarning, w.Severity)
	assert.Equal(t, `version "latest" is not semver`, w.Message)
}
