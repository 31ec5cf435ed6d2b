package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/specforge/specforge/compiler/ir"
)

var titleCaser = cases.Title(language.English)

// pascal converts a qualified name to PascalCase: "create-user" and
// "create_user" both become "CreateUser".
func pascal(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	return inflect.Camelize(name)
}

// camel converts a qualified name to camelCase.
func camel(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	return inflect.CamelizeDownFirst(name)
}

// snake converts a qualified name to snake_case.
func snake(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	return inflect.Underscore(name)
}

// tableName derives a plural snake_case table name from a model name when the
// model does not declare one.
func tableName(model string) string {
	return inflect.Tableize(model)
}

// modelTable returns the declared table name or the derived default.
func modelTable(m *ir.Model) string {
	if m.Table != "" {
		return m.Table
	}
	return tableName(m.Name)
}

// title capitalizes the first word of a free-form phrase, used for generated
// comments and descriptions.
func title(s string) string {
	return titleCaser.String(s)
}
