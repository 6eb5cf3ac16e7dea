package reconciler

import (
	"fmt"
	"strings"

	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// SchemaMode decides which columns an upsert writes.
type SchemaMode string

// String returns the string representation of a schema mode.
func (s SchemaMode) String() string {
	return string(s)
}

// Name returns a title-cased name for reports.
func (s SchemaMode) Name() string {
	str := s.String()
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

const (
	// SchemaOriginal keeps exactly the base file's columns. Columns that only
	// the modifications carry are dropped.
	SchemaOriginal SchemaMode = "original"
	// SchemaUnion appends the modification-only columns after the base columns.
	SchemaUnion SchemaMode = "union"
)

// ParseSchemaMode validates a schema mode name. The empty string selects
// SchemaOriginal.
func ParseSchemaMode(s string) (SchemaMode, error) {
	switch m := SchemaMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SchemaOriginal, nil
	case SchemaOriginal, SchemaUnion:
		return m, nil
	default:
		return "", errors.NewValidationError("schema", s, fmt.Sprintf("unknown schema mode %q: must be original or union", s))
	}
}

// outputHeaders returns the columns an upsert writes for the given mode.
func outputHeaders(mode SchemaMode, base, mods []string) []string {
	if mode == SchemaUnion {
		return tabular.UnionHeaders(base, mods)
	}
	return append([]string(nil), base...)
}
