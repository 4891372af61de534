package project

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Options controls a single materialization.
type Options struct {
	// Templates is the template tree copied into the project directory.
	Templates fs.FS

	// Existed must be true when the project directory was present before
	// this run. Only then is carried state captured.
	Existed bool

	// AllowMissingCarriedState proceeds without carry-over when an existing
	// project has no .env, instead of failing with MISSING_CARRIED_STATE.
	AllowMissingCarriedState bool

	// Keep lists extra doublestar patterns, relative to the project
	// directory, whose files survive re-materialization like .env does.
	Keep []string
}

// Result describes what Materialize did.
type Result struct {
	Dir     string
	Copied  []string
	Carried []string
	Removed string
}

// Materializer copies the template tree into project directories. Reads
// go to the afero filesystem; the changes are collected into one batch and
// handed to the applier.
type Materializer struct {
	fs      afero.Fs
	applier filesystem.Applier
}

// NewMaterializer creates a materializer reading from and writing to fsys.
func NewMaterializer(fsys afero.Fs) *Materializer {
	return &Materializer{fs: fsys, applier: filesystem.NewAferoApplier(fsys)}
}

// WithApplier routes the writes of a materialization through a.
func (m *Materializer) WithApplier(a filesystem.Applier) *Materializer {
	if a != nil {
		m.applier = a
	}
	return m
}

type carriedFile struct {
	rel  string
	data []byte
	mode os.FileMode
}

// Materialize ensures dir exists, copies the template tree into it with
// carried state preserved, and drops the web-server config variant that
// does not match the SSL activation setting. Nothing is written before
// every check has passed.
func (m *Materializer) Materialize(s settings.Settings, dir string, opts Options) (*Result, error) {
	logger := logging.GetLogger("project")
	done := logging.LogOperationStart(logger, "materialize")
	defer done()

	if opts.Templates == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no template tree given")
	}
	for _, pattern := range opts.Keep {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid keep pattern %q", pattern)
		}
	}
	remove, err := configVariantToRemove(s, opts.Templates)
	if err != nil {
		return nil, err
	}

	var carried []carriedFile
	if opts.Existed {
		carried, err = m.captureCarriedState(dir, opts)
		if err != nil {
			return nil, err
		}
	}

	skip := map[string]bool{remove: true}
	for _, c := range carried {
		skip[c.rel] = true
	}

	var batch filesystem.Batch
	copied, err := planTree(opts.Templates, dir, skip, &batch)
	if err != nil {
		return nil, err
	}

	result := &Result{Dir: dir, Copied: copied, Removed: remove}
	for _, c := range carried {
		if c.rel == remove {
			continue
		}
		batch.Write(filepath.Join(dir, filepath.FromSlash(c.rel)), c.data, c.mode)
		result.Carried = append(result.Carried, c.rel)
	}

	stale := filepath.Join(dir, filepath.FromSlash(remove))
	exists, err := afero.Exists(m.fs, stale)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to check %s", stale)
	}
	if exists {
		batch.Remove(stale)
	}

	if err := m.applier.Apply(batch); err != nil {
		return nil, err
	}

	logger.Info().
		Str("dir", dir).
		Int("copied", len(result.Copied)).
		Strs("carried", result.Carried).
		Str("removed", remove).
		Bool("removedStale", exists).
		Msg("project materialized")
	return result, nil
}

func (m *Materializer) captureCarriedState(dir string, opts Options) ([]carriedFile, error) {
	logger := logging.GetLogger("project")

	required, err := m.readCarried(dir, CarriedStateFile)
	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist):
		if !opts.AllowMissingCarriedState {
			return nil, errors.Newf(errors.ErrMissingCarriedState,
				"project %s exists but has no %s; rerun with --force to regenerate it", dir, CarriedStateFile).
				WithDetail("path", filepath.Join(dir, CarriedStateFile))
		}
		logger.Warn().Str("dir", dir).Msg("existing project has no carried state, continuing without it")
	default:
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read carried state in %s", dir)
	}

	var out []carriedFile
	if required != nil {
		out = append(out, *required)
	}

	if len(opts.Keep) == 0 {
		return out, nil
	}

	err = afero.Walk(m.fs, dir, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == CarriedStateFile || !matchesAny(opts.Keep, rel) {
			return nil
		}
		c, err := m.readCarried(dir, rel)
		if err != nil {
			return err
		}
		out = append(out, *c)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to scan %s for kept files", dir)
	}

	logger.Debug().Int("files", len(out)).Msg("carried state captured")
	return out, nil
}

func (m *Materializer) readCarried(dir, rel string) (*carriedFile, error) {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	info, err := m.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return &carriedFile{rel: rel, data: data, mode: info.Mode().Perm()}, nil
}

// configVariantToRemove checks the template tree carries both web-server
// configs and returns the one the settings do not use, relative to the
// project directory.
func configVariantToRemove(s settings.Settings, templates fs.FS) (string, error) {
	remove := SSLConfigFile
	if SSLActive(s) {
		remove = PlainConfigFile
	}

	for _, rel := range []string{PlainConfigFile, SSLConfigFile} {
		info, err := fs.Stat(templates, rel)
		if err != nil || !info.Mode().IsRegular() {
			return "", errors.Newf(errors.ErrTemplateMissing, "template tree has no %s", rel).
				WithDetail("path", rel)
		}
	}
	return remove, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
