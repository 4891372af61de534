// Package rewrite substitutes placeholder tokens in every regular file of a
// materialized project.
package rewrite

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Resolver yields the substitution for a token.
type Resolver interface {
	Resolve(token string) (string, error)
}

// Result lists the files touched by a rewrite, relative to the root.
type Result struct {
	Rewritten []string
	Unchanged []string
	Skipped   []string
}

// Rewriter applies a token set to files on an afero filesystem.
type Rewriter struct {
	fs   afero.Fs
	skip []string
}

// New creates a rewriter. Files whose path relative to the rewritten root
// matches a skip pattern are left alone.
func New(fsys afero.Fs, skip ...string) (*Rewriter, error) {
	for _, pattern := range skip {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid skip pattern %q", pattern)
		}
	}
	return &Rewriter{fs: fsys, skip: skip}, nil
}

// Matcher builds the single alternation used to find tokens. Longer tokens
// come first so a token that prefixes another never wins.
func Matcher(tokens []string) (*regexp.Regexp, error) {
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no tokens to match")
	}

	ordered := make([]string, len(tokens))
	copy(ordered, tokens)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	quoted := make([]string, len(ordered))
	for i, token := range ordered {
		quoted[i] = regexp.QuoteMeta(token)
	}
	return regexp.Compile(strings.Join(quoted, "|"))
}

// Rewrite walks root and substitutes every occurrence of tokens in every
// regular file, hidden files included. pass resolves every match of the
// walk, so a memoizing resolver yields one value per token.
func (rw *Rewriter) Rewrite(root string, tokens []string, pass Resolver) (*Result, error) {
	logger := logging.GetLogger("rewrite")
	done := logging.LogOperationStart(logger, "rewrite")
	defer done()

	re, err := Matcher(tokens)
	if err != nil {
		return nil, err
	}
	result := &Result{}

	err = afero.Walk(rw.fs, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, errors.ErrFileAccess, "failed to walk %s", path)
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", path)
		}
		rel = filepath.ToSlash(rel)

		// Walk lstats where it can, so symlinks show up here unfollowed.
		if !info.Mode().IsRegular() || rw.skipped(rel) {
			result.Skipped = append(result.Skipped, rel)
			return nil
		}

		changed, err := rw.rewriteFile(path, info.Mode().Perm(), re, pass)
		if err != nil {
			return err
		}
		if changed {
			result.Rewritten = append(result.Rewritten, rel)
		} else {
			result.Unchanged = append(result.Unchanged, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("root", root).
		Int("rewritten", len(result.Rewritten)).
		Int("unchanged", len(result.Unchanged)).
		Int("skipped", len(result.Skipped)).
		Msg("templates rewritten")
	return result, nil
}

func (rw *Rewriter) skipped(rel string) bool {
	for _, pattern := range rw.skip {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (rw *Rewriter) rewriteFile(path string, perm os.FileMode, re *regexp.Regexp, pass Resolver) (bool, error) {
	data, err := afero.ReadFile(rw.fs, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	if !utf8.Valid(data) {
		return false, errors.Newf(errors.ErrUnsupportedFileEncoding, "%s is not valid UTF-8 text", path).
			WithDetail("path", path)
	}

	content := string(data)
	locs := re.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return false, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, loc := range locs {
		value, err := pass.Resolve(content[loc[0]:loc[1]])
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrInternal, "failed to resolve token in %s", path)
		}
		b.WriteString(content[last:loc[0]])
		b.WriteString(value)
		last = loc[1]
	}
	b.WriteString(content[last:])

	if err := afero.WriteFile(rw.fs, path, []byte(b.String()), perm); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("rewrite")
	logger.Debug().Str("path", path).Int("tokens", len(locs)).Msg("file rewritten")
	return true, nil
}
