package project

import (
	"io/fs"
	"path"
	"path/filepath"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/logging"
)

// planTree adds a write for every regular file of src, and a mkdir for
// every directory, rooted at dir. Files whose slash path is in skip are
// left out. Copied files are always owner readable and writable so the
// next run can overwrite them again. It returns the planned file paths.
func planTree(src fs.FS, dir string, skip map[string]bool, b *filesystem.Batch) ([]string, error) {
	logger := logging.GetLogger("project.copy")
	var copied []string

	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read template %s", p)
		}

		target := filepath.Join(dir, filepath.FromSlash(p))

		switch {
		case d.IsDir():
			b.Mkdir(target)
			return nil
		case !d.Type().IsRegular():
			logger.Debug().Str("path", p).Str("type", d.Type().String()).Msg("skipping non-regular template entry")
			return nil
		case skip[path.Clean(p)]:
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat template %s", p)
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read template %s", p)
		}

		b.Write(target, data, info.Mode().Perm()|0600)
		copied = append(copied, path.Clean(p))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("files", len(copied)).Str("dir", dir).Msg("template tree planned")
	return copied, nil
}
