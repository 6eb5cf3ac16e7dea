package csvsync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/logging"
)

// Save writes text to path, creating parent directories as needed. The file
// is written to a temporary sibling first and renamed into place, so a failed
// write never leaves a truncated output behind.
func (c *client) Save(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Int("bytes", len(text)).
		Msg("Saved output")
	return nil
}
