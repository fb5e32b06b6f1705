package cli

import (
	"context"
	"fmt"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/config"
	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/storage"
	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/tips"
	"github.com/spf13/cobra"
)

func newTipsCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Security tip catalog",
	}
	cmd.AddCommand(
		newTipsListCommand(deps),
		newTipsToggleCommand(deps),
	)
	return cmd
}

func newTipsListCommand(deps commandDeps) *cobra.Command {
	var savedOnly bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tips, optionally only bookmarked ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("tips ls does not accept positional arguments")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				var list []tips.Tip
				if savedOnly {
					list = store.SavedTips.ListSaved(ctx)
				} else {
					list = tips.Catalog()
				}

				if deps.globals.JSON {
					return printJSON(deps.out, list)
				}
				if deps.globals.Quiet {
					return nil
				}
				for _, tip := range list {
					marker := " "
					if store.SavedTips.IsSaved(ctx, tip.ID) {
						marker = "*"
					}
					if _, err := fmt.Fprintf(deps.out, "%s %2s  %s\n", marker, tip.ID, tip.Text); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&savedOnly, "saved", false, "Only bookmarked tips")
	return cmd
}

func newTipsToggleCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Bookmark or un-bookmark a tip",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("tips toggle requires exactly one tip id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				saved, err := store.SavedTips.Toggle(ctx, args[0])
				if err != nil {
					return err
				}
				if deps.globals.Quiet {
					return nil
				}
				_, err = fmt.Fprintf(deps.out, "tip %s %s\n", args[0], boolToState(saved, "saved", "removed"))
				return err
			})
		},
	}
}
