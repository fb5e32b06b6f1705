package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type GlobalOptions struct {
	ConfigPath string
	DataPath   string
	JSON       bool
	Quiet      bool
	Yes        bool
}

type commandDeps struct {
	out     io.Writer
	in      io.Reader
	globals *GlobalOptions
}

func NewRootCommand(out io.Writer, in io.Reader, build BuildInfo) *cobra.Command {
	globals := &GlobalOptions{}
	deps := commandDeps{out: out, in: in, globals: globals}

	cmd := &cobra.Command{
		Use:           "protouch",
		Short:         "Credential rotation reminders, security tips and password suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&globals.DataPath, "data", "", "Path to the data file")
	cmd.PersistentFlags().BoolVar(&globals.JSON, "json", false, "Print machine-readable JSON output")
	cmd.PersistentFlags().BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&globals.Yes, "yes", "y", false, "Skip confirmation prompts")

	cmd.AddCommand(newReminderCommand(deps))
	cmd.AddCommand(newTipsCommand(deps))
	cmd.AddCommand(newPasswordCommand(deps))
	cmd.AddCommand(newSettingsCommand(deps))
	cmd.AddCommand(newWipeCommand(deps))
	cmd.AddCommand(newVersionCommand(out, build))
	cmd.InitDefaultCompletionCmd()
	return cmd
}

func newVersionCommand(out io.Writer, build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(build)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n", build.Version, build.Commit, build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
