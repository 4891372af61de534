package replacements

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/spf13/afero"
)

// Input is everything a dictionary reads. Settings must be the committed
// settings, never an in-progress edit.
type Input struct {
	Settings settings.Settings

	// OutputRoot is the directory holding project directories.
	OutputRoot string

	// GeneratorDir and GeneratorFile identify the running generator.
	GeneratorDir  string
	GeneratorFile string

	// FS is probed by Probe entries. It must already hold the
	// materialized project.
	FS afero.Fs

	// Random feeds Secret entries. Defaults to crypto/rand.
	Random io.Reader
}

// Dictionary maps every known token to its Entry.
type Dictionary struct {
	in      Input
	dir     string
	entries map[string]Entry
}

// Build creates the dictionary for the committed settings in in.
func Build(in Input) *Dictionary {
	if in.Random == nil {
		in.Random = rand.Reader
	}
	if in.FS == nil {
		in.FS = afero.NewOsFs()
	}

	d := &Dictionary{
		in:      in,
		dir:     project.Directory(in.OutputRoot, in.Settings),
		entries: make(map[string]Entry),
	}
	for _, e := range entries(in) {
		d.entries[e.Token] = e
	}
	return d
}

// Tokens returns every token in lexical order.
func (d *Dictionary) Tokens() []string {
	tokens := make([]string, 0, len(d.entries))
	for token := range d.entries {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Entry returns the entry for token.
func (d *Dictionary) Entry(token string) (Entry, bool) {
	e, ok := d.entries[token]
	return e, ok
}

// NewPass starts a resolution pass. Secrets are generated lazily and
// reused for the lifetime of the pass.
func (d *Dictionary) NewPass() *Pass {
	return &Pass{d: d, secrets: make(map[string]string)}
}

// Pass resolves tokens for one rewrite of the project tree.
type Pass struct {
	d       *Dictionary
	secrets map[string]string
}

// Resolve returns the substitution for token.
func (p *Pass) Resolve(token string) (string, error) {
	e, ok := p.d.entries[token]
	if !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown token %q", token)
	}

	s := p.d.in.Settings
	switch e.Kind {
	case Field:
		return s.Get(e.Field), nil
	case Constant:
		return e.Value, nil
	case Derived:
		v, err := derive(e.Derivation, s, p.d.in.OutputRoot)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to derive "+token)
		}
		return v, nil
	case Probe:
		return p.probe(e)
	case Secret:
		return p.secret(token)
	}
	return "", errors.Newf(errors.ErrInternal, "token %s has unknown kind %s", token, e.Kind)
}

func (p *Pass) probe(e Entry) (string, error) {
	path := filepath.Join(p.d.dir, filepath.FromSlash(e.Path))
	exists, err := afero.Exists(p.d.in.FS, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to probe %s", path)
	}

	logger := logging.GetLogger("replacements")
	logger.Trace().
		Str("token", e.Token).
		Str("path", path).
		Bool("exists", exists).
		Msg("probed")

	if !exists {
		return "", nil
	}
	return basicAuth(p.d.in.Settings), nil
}

func (p *Pass) secret(token string) (string, error) {
	if v, ok := p.secrets[token]; ok {
		return v, nil
	}

	buf := make([]byte, SecretBytes)
	if _, err := io.ReadFull(p.d.in.Random, buf); err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to generate secret for %s", token)
	}
	v := hex.EncodeToString(buf)
	p.secrets[token] = v
	return v, nil
}
