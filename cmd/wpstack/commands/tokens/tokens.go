package tokens

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/replacements"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/arthur-debert/wpstack/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the tokens command
func NewCommand() *cobra.Command {
	var resolve bool

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: MsgShort,
		Long:  MsgLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			s, err := settings.ApplyEnv(settings.Defaults())
			if err != nil {
				return err
			}
			dict := replacements.Build(replacements.Input{
				Settings:   s,
				OutputRoot: project.DefaultRoot,
				FS:         filesystem.NewMemory(),
			})
			pass := dict.NewPass()

			fmt.Fprint(out, style.Apply(out, style.TitleStyle, fmt.Sprintf(MsgHeader, "TOKEN", "KIND", "SOURCE")))
			for _, token := range dict.Tokens() {
				entry, _ := dict.Entry(token)
				fmt.Fprintf(out, MsgRow, token, entry.Kind, entry.Source())

				if !resolve {
					continue
				}
				value := MsgSecretValue
				if entry.Kind != replacements.Secret {
					if value, err = pass.Resolve(token); err != nil {
						return err
					}
				}
				for _, line := range strings.Split(value, "\n") {
					fmt.Fprintf(out, MsgValue, style.Apply(out, style.MutedStyle, line))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, MsgFlagResolve)

	return cmd
}
