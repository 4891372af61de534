// Package synthfs applies filesystem batches on the real disk through the
// synthfs operation pipeline.
package synthfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/rs/zerolog"
)

// Executor runs batches against the OS filesystem. Relative paths are
// resolved against the working directory.
type Executor struct {
	logger     zerolog.Logger
	filesystem sfsfs.FullFileSystem
}

// NewExecutor creates an executor rooted at "/".
func NewExecutor() *Executor {
	osfs := sfsfs.NewOSFileSystem("/")
	return &Executor{
		logger:     logging.GetLogger("synthfs"),
		filesystem: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
	}
}

// Apply converts every op to a synthfs operation and runs them as one
// pipeline.
func (e *Executor) Apply(b filesystem.Batch) error {
	if len(b.Ops) == 0 {
		e.logger.Debug().Msg("empty batch")
		return nil
	}

	sfs := synthfs.New()
	ops := make([]synthfs.Operation, 0, len(b.Ops))
	for i, op := range b.Ops {
		converted, err := convert(sfs, i, op)
		if err != nil {
			return err
		}
		ops = append(ops, converted)
	}

	options := synthfs.DefaultPipelineOptions()

	e.logger.Info().
		Int("operationCount", len(ops)).
		Msg("Executing synthfs operations")

	result, err := synthfs.RunWithOptions(context.Background(), e.filesystem, options, ops...)
	if err != nil {
		e.logFailures(result)
		return errors.Wrap(err, errors.ErrFileWrite, "failed to apply filesystem changes")
	}
	return nil
}

func opID(i int, op filesystem.Op) string {
	return fmt.Sprintf("%s_%03d_%s", op.Kind, i, filepath.Base(op.Path))
}

// convert maps an op onto a custom synthfs operation. Writes remove the
// previous file first, so regenerating over an existing project succeeds.
func convert(sfs *synthfs.SynthFS, i int, op filesystem.Op) (synthfs.Operation, error) {
	abs, err := filepath.Abs(op.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve %s", op.Path)
	}
	op.Path = abs
	id := opID(i, op)

	switch op.Kind {
	case filesystem.OpMkdir:
		return sfs.CustomOperationWithID(id, func(ctx context.Context, fs sfsfs.FileSystem) error {
			return fs.MkdirAll(op.Path, op.Mode)
		}), nil
	case filesystem.OpWrite:
		return sfs.CustomOperationWithID(id, func(ctx context.Context, fs sfsfs.FileSystem) error {
			if err := fs.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
				return err
			}
			if err := fs.Remove(op.Path); err != nil && !os.IsNotExist(err) {
				return err
			}
			return fs.WriteFile(op.Path, op.Data, op.Mode)
		}), nil
	case filesystem.OpRemove:
		return sfs.CustomOperationWithID(id, func(ctx context.Context, fs sfsfs.FileSystem) error {
			return fs.Remove(op.Path)
		}), nil
	default:
		return nil, errors.Newf(errors.ErrInternal, "unknown batch op %q", op.Kind)
	}
}

func (e *Executor) logFailures(result *synthfs.Result) {
	if result == nil {
		return
	}
	for _, opResult := range result.GetOperations() {
		r, ok := opResult.(synthfs.OperationResult)
		if !ok || r.Status == synthfs.StatusSuccess {
			continue
		}
		e.logger.Error().
			Err(r.Error).
			Str("operationID", string(r.OperationID)).
			Msg("synthfs operation failed")
	}
}
