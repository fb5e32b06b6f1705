package cli

import (
	"context"
	"fmt"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/config"
	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/storage"
	"github.com/spf13/cobra"
)

func newSettingsCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "App preferences",
	}
	cmd.AddCommand(
		newSettingsShowCommand(deps),
		newSettingsSetCommand(deps),
		newSettingsResetCommand(deps),
	)
	return cmd
}

func newSettingsShowCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("settings show does not accept positional arguments")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				return printSettings(deps, store.Settings.Load(ctx))
			})
		},
	}
}

func newSettingsSetCommand(deps commandDeps) *cobra.Command {
	var (
		notifications bool
		vibration     bool
		hideByDefault bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("settings set does not accept positional arguments")
			}

			// Only flags the user actually passed become part of the patch.
			patch := storage.SettingsPatch{}
			if cmd.Flags().Changed("notifications") {
				patch.Notifications = &notifications
			}
			if cmd.Flags().Changed("vibration") {
				patch.Vibration = &vibration
			}
			if cmd.Flags().Changed("hide-by-default") {
				patch.HideByDefault = &hideByDefault
			}
			if patch.Notifications == nil && patch.Vibration == nil && patch.HideByDefault == nil {
				return usageErrorf("settings set requires at least one of --notifications, --vibration, --hide-by-default")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				return printSettings(deps, store.Settings.Update(ctx, patch))
			})
		},
	}
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Reminder notifications preference")
	cmd.Flags().BoolVar(&vibration, "vibration", true, "Vibration preference")
	cmd.Flags().BoolVar(&hideByDefault, "hide-by-default", true, "Mask generated passwords by default")
	return cmd
}

func newSettingsResetCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("settings reset does not accept positional arguments")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				return printSettings(deps, store.Settings.Reset(ctx))
			})
		},
	}
}

func printSettings(deps commandDeps, settings storage.Settings) error {
	if deps.globals.JSON {
		return printJSON(deps.out, settings)
	}
	if deps.globals.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(deps.out, "notifications=%s vibration=%s hide-by-default=%s\n",
		boolToState(settings.Notifications, "on", "off"),
		boolToState(settings.Vibration, "on", "off"),
		boolToState(settings.HideByDefault, "on", "off"))
	return err
}
