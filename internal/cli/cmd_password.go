package cli

import (
	"fmt"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/password"
	"github.com/spf13/cobra"
)

func newPasswordCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password suggestions",
	}
	cmd.AddCommand(newPasswordGenerateCommand(deps))
	return cmd
}

func newPasswordGenerateCommand(deps commandDeps) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a throwaway strong password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("password generate does not accept positional arguments")
			}

			// The config default only applies when the flag is not set.
			if !cmd.Flags().Changed("length") {
				if cfg, err := loadRuntimeConfig(deps); err == nil {
					length = cfg.Password.DefaultLength
				}
			}

			generated, err := password.Generate(length)
			if err != nil {
				return usageErrorf("password generate: %v", err)
			}
			_, err = fmt.Fprintln(deps.out, generated)
			return err
		},
	}
	cmd.Flags().IntVar(&length, "length", password.DefaultLength, "Password length (minimum 3)")
	return cmd
}
