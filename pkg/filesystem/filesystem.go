package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/spf13/afero"
)

// NewOS returns the real filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// DirExists reports whether path exists and is a directory.
func DirExists(fsys afero.Fs, path string) (bool, error) {
	ok, err := afero.DirExists(fsys, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	return ok, nil
}

// ChangeKind classifies a file touched during a dry run.
type ChangeKind string

const (
	Created  ChangeKind = "create"
	Modified ChangeKind = "modify"
	Deleted  ChangeKind = "delete"
)

// Change is one file a dry run would have written or removed.
type Change struct {
	Path string
	Kind ChangeKind
}

// DryRun is a copy-on-write overlay: reads fall through to base, writes
// land in memory. Removing a file that exists in base hides it from every
// later read and records the deletion.
type DryRun struct {
	cow     afero.Fs
	base    afero.Fs
	layer   afero.Fs
	deleted map[string]bool
}

// NewDryRun wraps base so nothing is ever written to it.
func NewDryRun(base afero.Fs) *DryRun {
	layer := afero.NewMemMapFs()
	return &DryRun{
		cow:     afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), layer),
		base:    base,
		layer:   layer,
		deleted: map[string]bool{},
	}
}

// hidden reports whether name or one of its parents was removed.
func (d *DryRun) hidden(name string) bool {
	for p := filepath.Clean(name); ; p = filepath.Dir(p) {
		if d.deleted[p] {
			return true
		}
		if parent := filepath.Dir(p); parent == p {
			return false
		}
	}
}

func notExist(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
}

func (d *DryRun) Name() string { return "DryRun" }

func (d *DryRun) Create(name string) (afero.File, error) {
	return d.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (d *DryRun) Mkdir(name string, perm os.FileMode) error {
	delete(d.deleted, filepath.Clean(name))
	return d.cow.Mkdir(name, perm)
}

func (d *DryRun) MkdirAll(path string, perm os.FileMode) error {
	delete(d.deleted, filepath.Clean(path))
	return d.cow.MkdirAll(path, perm)
}

func (d *DryRun) Open(name string) (afero.File, error) {
	if d.hidden(name) {
		return nil, notExist("open", name)
	}
	f, err := d.cow.Open(name)
	if err != nil {
		return nil, err
	}
	return &dryRunDir{File: f, d: d, dir: filepath.Clean(name)}, nil
}

func (d *DryRun) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	clean := filepath.Clean(name)
	if d.hidden(clean) {
		if flag&os.O_CREATE == 0 {
			return nil, notExist("open", name)
		}
		// Recreating a removed file starts from empty content.
		flag |= os.O_TRUNC
		delete(d.deleted, clean)
	}
	return d.cow.OpenFile(name, flag, perm)
}

// Remove deletes name from the overlay. When name also exists in base it
// is hidden and reported as deleted by Changes.
func (d *DryRun) Remove(name string) error {
	clean := filepath.Clean(name)
	if d.hidden(clean) {
		return notExist("remove", name)
	}

	inBase, err := afero.Exists(d.base, clean)
	if err != nil {
		return err
	}
	if inBase {
		if isDir, _ := afero.IsDir(d.base, clean); isDir {
			return d.cow.Remove(name)
		}
	}

	inLayer, err := afero.Exists(d.layer, clean)
	if err != nil {
		return err
	}
	if !inBase && !inLayer {
		return notExist("remove", name)
	}
	if inLayer {
		if err := d.layer.Remove(clean); err != nil {
			return err
		}
	}
	if inBase {
		d.deleted[clean] = true
	}
	return nil
}

func (d *DryRun) RemoveAll(path string) error {
	clean := filepath.Clean(path)
	if err := d.layer.RemoveAll(clean); err != nil {
		return err
	}
	if ok, _ := afero.Exists(d.base, clean); ok {
		d.deleted[clean] = true
	}
	return nil
}

func (d *DryRun) Rename(oldname, newname string) error {
	if d.hidden(oldname) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrNotExist}
	}
	if err := d.cow.Rename(oldname, newname); err != nil {
		return err
	}
	delete(d.deleted, filepath.Clean(newname))
	return nil
}

func (d *DryRun) Stat(name string) (os.FileInfo, error) {
	if d.hidden(name) {
		return nil, notExist("stat", name)
	}
	return d.cow.Stat(name)
}

// LstatIfPossible lets walkers see symlinks instead of their targets.
func (d *DryRun) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if d.hidden(name) {
		return nil, false, notExist("lstat", name)
	}
	if l, ok := d.cow.(afero.Lstater); ok {
		return l.LstatIfPossible(name)
	}
	fi, err := d.cow.Stat(name)
	return fi, false, err
}

func (d *DryRun) Chmod(name string, mode os.FileMode) error {
	if d.hidden(name) {
		return notExist("chmod", name)
	}
	return d.cow.Chmod(name, mode)
}

func (d *DryRun) Chown(name string, uid, gid int) error {
	if d.hidden(name) {
		return notExist("chown", name)
	}
	return d.cow.Chown(name, uid, gid)
}

func (d *DryRun) Chtimes(name string, atime, mtime time.Time) error {
	if d.hidden(name) {
		return notExist("chtimes", name)
	}
	return d.cow.Chtimes(name, atime, mtime)
}

// dryRunDir drops removed entries from directory listings.
type dryRunDir struct {
	afero.File
	d   *DryRun
	dir string
}

func (f *dryRunDir) Readdir(count int) ([]os.FileInfo, error) {
	infos, err := f.File.Readdir(count)
	out := infos[:0]
	for _, fi := range infos {
		if !f.d.deleted[filepath.Join(f.dir, fi.Name())] {
			out = append(out, fi)
		}
	}
	return out, err
}

func (f *dryRunDir) Readdirnames(n int) ([]string, error) {
	names, err := f.File.Readdirnames(n)
	out := names[:0]
	for _, name := range names {
		if !f.d.deleted[filepath.Join(f.dir, name)] {
			out = append(out, name)
		}
	}
	return out, err
}

// Changes lists files under root that the dry run created, modified or
// deleted relative to base, sorted by path.
func (d *DryRun) Changes(root string) ([]Change, error) {
	var changes []Change
	root = filepath.Clean(root)

	for path := range d.deleted {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			changes = append(changes, Change{Path: path, Kind: Deleted})
		}
	}

	exists, err := afero.DirExists(d.layer, root)
	if err != nil {
		return nil, err
	}
	if exists {
		err = afero.Walk(d.layer, root, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			written, err := afero.ReadFile(d.layer, path)
			if err != nil {
				return err
			}
			original, err := afero.ReadFile(d.base, path)
			switch {
			case os.IsNotExist(err):
				changes = append(changes, Change{Path: filepath.Clean(path), Kind: Created})
			case err != nil:
				return err
			case !bytes.Equal(original, written):
				changes = append(changes, Change{Path: filepath.Clean(path), Kind: Modified})
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to collect dry run changes under %s", root)
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}
