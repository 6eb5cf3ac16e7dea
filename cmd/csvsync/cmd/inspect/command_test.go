package inspect

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/pkg/errors"
)

func run(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("id;'name'\r\n1;'Ann'\r\n1;'Bo'"), 0o600))

	t.Run("layout", func(t *testing.T) {
		out, err := run(t, &appcontext.Mock{}, path, "--comma", ";")
		require.NoError(t, err)
		assert.Contains(t, out, `"rows": 2`)
		assert.Contains(t, out, `"comma": ";"`)
		assert.Contains(t, out, `"name": "name"`)
		assert.NotContains(t, out, `"duplicates"`)
	})

	t.Run("duplicates", func(t *testing.T) {
		out, err := run(t, &appcontext.Mock{}, path, "--comma", ";", "--key", "id")
		require.NoError(t, err)
		assert.Contains(t, out, `"duplicates"`)
		assert.Contains(t, out, `"keyed": 1`)
	})

	t.Run("table", func(t *testing.T) {
		app := &appcontext.Mock{OutputFormatFunc: func() string { return "table" }}
		out, err := run(t, app, path, "--comma", ";")
		require.NoError(t, err)
		assert.Contains(t, out, "Columns")
		assert.Contains(t, out, "'…'")
	})

	t.Run("unknown key column", func(t *testing.T) {
		_, err := run(t, &appcontext.Mock{}, path, "--comma", ";", "--key", "sku")
		assert.True(t, errors.IsValidationError(err))
	})
}
