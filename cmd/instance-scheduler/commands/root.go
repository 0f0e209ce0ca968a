// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the instance-scheduler CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "instance-scheduler",
		Short:        "Start and stop cloud instances on weekly tag schedules",
		SilenceUsage: true,
	}

	cmd.AddCommand(Run())
	cmd.AddCommand(Evaluate())
	cmd.AddCommand(Version())

	return cmd
}
