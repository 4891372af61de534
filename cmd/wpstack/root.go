package wpstack

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arthur-debert/wpstack/cmd/wpstack/commands/genconfig"
	"github.com/arthur-debert/wpstack/cmd/wpstack/commands/tokens"
	"github.com/arthur-debert/wpstack/internal/version"
	"github.com/arthur-debert/wpstack/pkg/editor"
	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/fetch"
	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/generator"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/arthur-debert/wpstack/pkg/style"
	"github.com/arthur-debert/wpstack/pkg/synthfs"
	"github.com/arthur-debert/wpstack/pkg/templates"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbosity     int
	dryRun        bool
	force         bool
	yes           bool
	templatesDir  string
	outputRoot    string
	offline       bool
	tlsOptionsURL string
	skip          []string
	keep          []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	registerHelpFuncs()

	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:     "wpstack [settings-file]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Short(),
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)

	f := rootCmd.Flags()
	f.BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	f.BoolVar(&flags.force, "force", false, MsgFlagForce)
	f.BoolVarP(&flags.yes, "yes", "y", false, MsgFlagYes)
	f.StringVar(&flags.templatesDir, "templates", "", MsgFlagTemplates)
	f.StringVar(&flags.outputRoot, "output-root", project.DefaultRoot, MsgFlagOutputRoot)
	f.BoolVar(&flags.offline, "offline", false, MsgFlagOffline)
	f.StringVar(&flags.tlsOptionsURL, "tls-options-url", fetch.TLSOptionsURL, MsgFlagTLSOptionsURL)
	f.StringArrayVar(&flags.skip, "skip", nil, MsgFlagSkip)
	f.StringArrayVar(&flags.keep, "keep", nil, MsgFlagKeep)
	_ = rootCmd.MarkFlagDirname("templates")
	_ = rootCmd.MarkFlagDirname("output-root")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(tokens.NewCommand())

	return rootCmd
}

func runGenerate(cmd *cobra.Command, args []string, flags rootFlags) error {
	logger := logging.GetLogger("cmd.generate")
	out := cmd.OutOrStdout()

	s := settings.Defaults()
	if len(args) == 1 {
		loaded, err := settings.LoadFile(args[0])
		if err != nil {
			return err
		}
		s = loaded
	}
	s, err := settings.ApplyEnv(s)
	if err != nil {
		return err
	}

	tree, err := templateTree(flags.templatesDir)
	if err != nil {
		return err
	}

	if !flags.yes {
		ed, err := editor.New(s, editor.DefaultOptions())
		if err != nil {
			return err
		}
		outcome, final, err := editor.NewConsole(cmd.InOrStdin(), out).Run(ed)
		if err != nil {
			return err
		}
		if outcome == editor.OutcomeAborted {
			fmt.Fprintln(out, MsgAborted)
			return nil
		}
		s = final
	}

	var fsys afero.Fs = filesystem.NewOS()
	var applier filesystem.Applier = synthfs.NewExecutor()
	var dry *filesystem.DryRun
	if flags.dryRun {
		dry = filesystem.NewDryRun(fsys)
		fsys = dry
		applier = filesystem.NewAferoApplier(dry)
	}

	genFile, genDir := generatorLocation()
	logger.Info().
		Bool("dryRun", flags.dryRun).
		Bool("force", flags.force).
		Str("outputRoot", flags.outputRoot).
		Msg("Starting generation")

	result, err := generator.Generate(cmd.Context(), generator.Options{
		Settings:      s,
		FS:            fsys,
		Applier:       applier,
		Templates:     tree,
		OutputRoot:    flags.outputRoot,
		GeneratorDir:  genDir,
		GeneratorFile: genFile,
		Force:         flags.force,
		Keep:          flags.keep,
		Skip:          flags.skip,
		Offline:       flags.offline || flags.dryRun,
		TLSOptionsURL: flags.tlsOptionsURL,
	})
	if err != nil {
		return err
	}

	if dry != nil {
		return printDryRun(cmd, dry, result.ProjectDir)
	}

	if result.FetchErr != nil {
		errOut := cmd.ErrOrStderr()
		fmt.Fprint(errOut, style.Apply(errOut, style.WarningStyle,
			fmt.Sprintf(MsgFetchFailed, flags.tlsOptionsURL, result.FetchErr)))
	}
	return printSummary(cmd, genFile, result)
}

func templateTree(dir string) (fs.FS, error) {
	if dir == "" {
		return templates.FS, nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrTemplateDir, dir)
	}
	return templates.Dir(dir), nil
}

// generatorLocation names the running binary for the re-run hint.
func generatorLocation() (file, dir string) {
	file, err := os.Executable()
	if err != nil {
		file = os.Args[0]
	}
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	return file, filepath.Dir(file)
}

func printDryRun(cmd *cobra.Command, dry *filesystem.DryRun, dir string) error {
	out := cmd.OutOrStdout()
	changes, err := dry.Changes(dir)
	if err != nil {
		return err
	}

	if len(changes) == 0 {
		fmt.Fprintln(out, MsgNoChanges)
	} else {
		fmt.Fprintf(out, MsgDryRunChanges, len(changes))
		for _, c := range changes {
			fmt.Fprintf(out, MsgDryRunChange, c.Kind, style.Apply(out, style.PathStyle, c.Path))
		}
	}
	fmt.Fprintln(out, style.Apply(out, style.WarningStyle, MsgDryRunNotice))
	return nil
}

var summaryTemplate = template.Must(template.New("summary").Parse(MsgSummary))

func printSummary(cmd *cobra.Command, genFile string, result *generator.Result) error {
	out := cmd.OutOrStdout()

	var md strings.Builder
	err := summaryTemplate.Execute(&md, map[string]string{
		"SettingsPath":     result.SettingsPath,
		"InstructionsPath": result.InstructionsPath,
		"Command":          genFile + " " + result.SettingsPath,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render summary")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, style.RenderMarkdown(out, md.String()))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
