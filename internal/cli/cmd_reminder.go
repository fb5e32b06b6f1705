package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/config"
	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/storage"
	"github.com/spf13/cobra"
)

func newReminderCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Credential rotation reminders",
	}
	cmd.AddCommand(
		newReminderAddCommand(deps),
		newReminderListCommand(deps),
		newReminderEditCommand(deps),
		newReminderRemoveCommand(deps),
		newReminderClearCommand(deps),
	)
	return cmd
}

func newReminderAddCommand(deps commandDeps) *cobra.Command {
	var (
		title    string
		interval int
		comment  string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a rotation reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("reminder add does not accept positional arguments")
			}
			if strings.TrimSpace(title) == "" {
				return usageErrorf("reminder add requires --title")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				reminder, err := store.Reminders.Create(ctx, storage.CreateReminderRequest{
					Title:    title,
					Comment:  comment,
					Interval: storage.Interval(interval),
				})
				if err != nil {
					return err
				}
				return printReminder(deps, *reminder)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Service or website name")
	cmd.Flags().IntVar(&interval, "interval", int(storage.Interval30), "Rotation interval in days (10|30|60)")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional note")
	return cmd
}

func newReminderListCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List reminders by urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("reminder ls does not accept positional arguments")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				reminders := store.Reminders.List(ctx)
				if deps.globals.JSON {
					return printJSON(deps.out, reminders)
				}
				if deps.globals.Quiet {
					return nil
				}
				now := time.Now()
				for _, reminder := range reminders {
					left := reminder.DaysLeft(now)
					state := fmt.Sprintf("%d day(s) left", left)
					if left == 0 {
						state = "due"
					}
					if _, err := fmt.Fprintf(deps.out, "%s  %s  every %dd  %s\n", reminder.ID, reminder.Title, reminder.Interval, state); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newReminderEditCommand(deps commandDeps) *cobra.Command {
	var (
		title    string
		interval int
		comment  string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a reminder in place",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("reminder edit requires exactly one reminder id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("interval") && !cmd.Flags().Changed("comment") {
				return usageErrorf("reminder edit requires at least one of --title, --interval, --comment")
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				current, ok := findReminder(store.Reminders.List(ctx), args[0])
				if !ok {
					return fmt.Errorf("%w: reminder %s", storage.ErrNotFound, args[0])
				}

				// Fields without a flag keep their stored value.
				req := storage.UpdateReminderRequest{
					ID:       current.ID,
					Title:    current.Title,
					Comment:  current.Comment,
					Interval: current.Interval,
				}
				if cmd.Flags().Changed("title") {
					req.Title = title
				}
				if cmd.Flags().Changed("interval") {
					req.Interval = storage.Interval(interval)
				}
				if cmd.Flags().Changed("comment") {
					req.Comment = comment
				}

				reminder, err := store.Reminders.Update(ctx, req)
				if err != nil {
					return err
				}
				return printReminder(deps, *reminder)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Service or website name")
	cmd.Flags().IntVar(&interval, "interval", int(storage.Interval30), "Rotation interval in days (10|30|60)")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional note")
	return cmd
}

func newReminderRemoveCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reminder",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("reminder rm requires exactly one reminder id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(deps, fmt.Sprintf("Delete reminder %s?", args[0]))
			if err != nil {
				return mapCommandError(err)
			}
			if !ok {
				return nil
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				store.Reminders.Delete(ctx, args[0])
				return nil
			})
		},
	}
}

func newReminderClearCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("reminder clear does not accept positional arguments")
			}
			ok, err := confirm(deps, "Delete all reminders?")
			if err != nil {
				return mapCommandError(err)
			}
			if !ok {
				return nil
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, store *storage.Store, _ config.Config) error {
				store.Reminders.DeleteAll(ctx)
				return nil
			})
		},
	}
}

func findReminder(items []storage.Reminder, id string) (storage.Reminder, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return storage.Reminder{}, false
}

func printReminder(deps commandDeps, reminder storage.Reminder) error {
	if deps.globals.JSON {
		return printJSON(deps.out, reminder)
	}
	if deps.globals.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(deps.out, "%s  %s  every %dd\n", reminder.ID, reminder.Title, reminder.Interval)
	return err
}
