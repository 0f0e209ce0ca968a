package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/instance-scheduler/cmd/instance-scheduler/handlers"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the version command.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			handlers.Version(cmd.OutOrStdout(), version, commit, date)
		},
	}
}
