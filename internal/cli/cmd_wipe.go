package cli

import (
	"context"
	"fmt"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/config"
	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/storage"
	"github.com/spf13/cobra"
)

func newWipeCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Delete all app data (reminders, saved tips, settings)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("wipe does not accept positional arguments")
			}
			ok, err := confirm(deps, "This will remove reminders, saved tips and app settings. Continue?")
			if err != nil {
				return mapCommandError(err)
			}
			if !ok {
				return nil
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				store.Wipe(ctx)
				if deps.globals.Quiet {
					return nil
				}
				_, err := fmt.Fprintln(deps.out, "app data deleted")
				return err
			})
		},
	}
}
