// Package templates provides the embedded template tree copied into every
// generated project.
package templates

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:tree
var embedded embed.FS

// FS is the default template tree, rooted at the project directory.
var FS fs.FS = mustSub(embedded, "tree")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Dir returns an on-disk template tree, or FS when dir is empty.
func Dir(dir string) fs.FS {
	if dir == "" {
		return FS
	}
	return os.DirFS(dir)
}

// ListFiles returns every file in the tree, hidden files included.
func ListFiles(fsys fs.FS) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})

	return files, err
}
