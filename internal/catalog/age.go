package catalog

import "strings"

// AgeParts is a defensively parsed age string.
type AgeParts struct {
	Value string
	Unit  string
}

// ParseAge splits a free-text age like "3 months" into value and unit.
// Malformed input degrades to placeholders instead of failing; sourced
// catalogs are not trusted to populate every field.
func ParseAge(age string) AgeParts {
	trimmed := strings.TrimSpace(age)
	if trimmed == "" {
		return AgeParts{Value: "N/A", Unit: "Age"}
	}
	fields := strings.Fields(trimmed)
	parts := AgeParts{Value: fields[0], Unit: "Age"}
	if len(fields) > 1 {
		parts.Unit = fields[1]
	}
	return parts
}
