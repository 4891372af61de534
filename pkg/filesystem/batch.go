package filesystem

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/spf13/afero"
)

// OpKind is the type of a batched filesystem change.
type OpKind string

const (
	OpMkdir  OpKind = "mkdir"
	OpWrite  OpKind = "write"
	OpRemove OpKind = "remove"
)

// Op is one change of a Batch. Paths are absolute. A write replaces any
// existing file and creates missing parent directories, so the ops of a
// batch do not depend on each other's order.
type Op struct {
	Kind OpKind
	Path string
	Data []byte
	Mode os.FileMode
}

// Batch is a list of changes applied together.
type Batch struct {
	Ops []Op
}

// Mkdir appends a directory creation.
func (b *Batch) Mkdir(path string) {
	b.Ops = append(b.Ops, Op{Kind: OpMkdir, Path: path, Mode: 0755})
}

// Write appends a file write.
func (b *Batch) Write(path string, data []byte, mode os.FileMode) {
	b.Ops = append(b.Ops, Op{Kind: OpWrite, Path: path, Data: data, Mode: mode})
}

// Remove appends a file removal.
func (b *Batch) Remove(path string) {
	b.Ops = append(b.Ops, Op{Kind: OpRemove, Path: path})
}

// Applier carries out a batch.
type Applier interface {
	Apply(b Batch) error
}

// AferoApplier applies batches op by op on an afero filesystem.
type AferoApplier struct {
	fs afero.Fs
}

// NewAferoApplier returns an applier writing to fsys.
func NewAferoApplier(fsys afero.Fs) *AferoApplier {
	return &AferoApplier{fs: fsys}
}

func (a *AferoApplier) Apply(b Batch) error {
	logger := logging.GetLogger("filesystem.batch")

	for _, op := range b.Ops {
		if err := a.apply(op); err != nil {
			return err
		}
		logger.Trace().Str("op", string(op.Kind)).Str("path", op.Path).Msg("applied")
	}
	logger.Debug().Int("ops", len(b.Ops)).Msg("batch applied")
	return nil
}

func (a *AferoApplier) apply(op Op) error {
	switch op.Kind {
	case OpMkdir:
		if err := a.fs.MkdirAll(op.Path, op.Mode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", op.Path)
		}
	case OpWrite:
		if err := a.fs.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(op.Path))
		}
		if err := afero.WriteFile(a.fs, op.Path, op.Data, op.Mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", op.Path).
				WithDetail("path", op.Path)
		}
		// WriteFile keeps the mode of a file that already exists.
		if err := a.fs.Chmod(op.Path, op.Mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode of %s", op.Path).
				WithDetail("path", op.Path)
		}
	case OpRemove:
		if err := a.fs.Remove(op.Path); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", op.Path).
				WithDetail("path", op.Path)
		}
	default:
		return errors.Newf(errors.ErrInternal, "unknown batch op %q", op.Kind)
	}
	return nil
}
