// Package fragments provides template name constants for the UI templates
package fragments

// Template names, as declared with {{define}}
const (
	Menu   = "menu"
	Page   = "page"
	Tables = "fragments/tables"
)

// All lists every template the server must be able to execute
func All() []string {
	return []string{Menu, Page, Tables}
}
