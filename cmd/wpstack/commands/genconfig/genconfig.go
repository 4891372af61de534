package genconfig

import (
	"fmt"

	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/arthur-debert/wpstack/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the gen-config command
func NewCommand() *cobra.Command {
	var (
		format string
		write  bool
		output string
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.ApplyEnv(settings.Defaults())
			if err != nil {
				return err
			}

			if write && output == "" {
				output = settings.FileName
			}
			if output != "" {
				if err := settings.WriteFile(filesystem.NewOS(), output, s); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, style.Apply(out, style.SuccessStyle, fmt.Sprintf(MsgWritten, output)))
				return nil
			}

			f, err := settings.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := settings.Serialize(s, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(settings.FormatYAML), MsgFlagFormat)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)

	return cmd
}
