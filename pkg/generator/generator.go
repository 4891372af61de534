// Package generator runs one generation: materialize the project directory,
// fetch TLS parameters, substitute placeholders and persist the settings.
package generator

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/wpstack/pkg/fetch"
	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/replacements"
	"github.com/arthur-debert/wpstack/pkg/rewrite"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/arthur-debert/wpstack/pkg/templates"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Fetcher downloads a URL to a path.
type Fetcher interface {
	Download(ctx context.Context, url, destPath string) error
}

// Options configures a generation run.
type Options struct {
	// Settings are the committed settings.
	Settings settings.Settings

	// FS receives every write. Defaults to the OS filesystem.
	FS afero.Fs

	// Applier carries out the project materialization batch. Defaults to
	// applying it on FS.
	Applier filesystem.Applier

	// Templates defaults to the embedded tree.
	Templates fs.FS

	// OutputRoot holds project directories. Defaults to project.DefaultRoot.
	OutputRoot string

	GeneratorDir  string
	GeneratorFile string

	// Force proceeds when an existing project has lost its .env.
	Force bool

	// Keep adds carried-state patterns, Skip excludes files from rewriting.
	Keep []string
	Skip []string

	// Offline skips the TLS parameters download.
	Offline       bool
	TLSOptionsURL string
	Fetcher       Fetcher

	// Random feeds generated secrets. Defaults to crypto/rand.
	Random io.Reader
}

// Result describes a completed run.
type Result struct {
	// RunID tags every log line of the run.
	RunID            string
	ProjectDir       string
	SettingsPath     string
	InstructionsPath string
	Existed          bool
	Materialized     *project.Result
	Rewritten        *rewrite.Result

	// FetchErr holds a failed best-effort download. The run still succeeds.
	FetchErr error
}

// Generate materializes the project for opts.Settings. Nothing is written
// when the settings are invalid.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	runID := uuid.NewString()
	logger := logging.GetLogger("generator").With().Str("run", runID).Logger()
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Templates == nil {
		opts.Templates = templates.FS
	}
	if opts.OutputRoot == "" {
		opts.OutputRoot = project.DefaultRoot
	}
	if opts.TLSOptionsURL == "" {
		opts.TLSOptionsURL = fetch.TLSOptionsURL
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.DefaultDownloader(opts.FS)
	}

	rw, err := rewrite.New(opts.FS, opts.Skip...)
	if err != nil {
		return nil, err
	}

	dir := project.Directory(opts.OutputRoot, opts.Settings)
	existed, err := filesystem.DirExists(opts.FS, dir)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("dir", dir).Bool("existed", existed).Msg("project directory resolved")

	materialized, err := project.NewMaterializer(opts.FS).WithApplier(opts.Applier).Materialize(opts.Settings, dir, project.Options{
		Templates:                opts.Templates,
		Existed:                  existed,
		AllowMissingCarriedState: opts.Force,
		Keep:                     opts.Keep,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:            runID,
		ProjectDir:       dir,
		SettingsPath:     filepath.Join(dir, settings.FileName),
		InstructionsPath: filepath.Join(dir, filepath.FromSlash(project.InstructionsFile)),
		Existed:          existed,
		Materialized:     materialized,
	}

	if opts.Offline {
		logger.Info().Msg("offline, skipping TLS options download")
	} else {
		dest := filepath.Join(dir, filepath.FromSlash(project.TLSOptionsFile))
		if err := opts.Fetcher.Download(ctx, opts.TLSOptionsURL, dest); err != nil {
			logger.Warn().Err(err).Str("url", opts.TLSOptionsURL).Msg("TLS options download failed, continuing")
			result.FetchErr = err
		}
	}

	dict := replacements.Build(replacements.Input{
		Settings:      opts.Settings,
		OutputRoot:    opts.OutputRoot,
		GeneratorDir:  opts.GeneratorDir,
		GeneratorFile: opts.GeneratorFile,
		FS:            opts.FS,
		Random:        opts.Random,
	})
	result.Rewritten, err = rw.Rewrite(dir, dict.Tokens(), dict.NewPass())
	if err != nil {
		return nil, err
	}

	if err := settings.WriteFile(opts.FS, result.SettingsPath, opts.Settings); err != nil {
		return nil, err
	}

	logger.Info().
		Str("dir", dir).
		Str("settings", result.SettingsPath).
		Msg("project generated")
	return result, nil
}
