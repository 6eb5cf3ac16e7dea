package reconciler

import (
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// validateKeyColumn checks that column is set and present in every file.
// All files missing it are named in one error.
func validateKeyColumn(column string, files ...*tabular.File) error {
	if column == "" {
		return errors.NewKeyColumnError("")
	}
	var missing []string
	for _, f := range files {
		if f == nil {
			return errors.NewValidationError("file", nil, "file is required")
		}
		if !f.HasColumn(column) {
			missing = append(missing, fileName(f))
		}
	}
	if len(missing) > 0 {
		return errors.NewKeyColumnError(column, missing...)
	}
	return nil
}

func fileName(f *tabular.File) string {
	if f.Name == "" {
		return "<input>"
	}
	return f.Name
}
