package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/instance-scheduler/cmd/instance-scheduler/handlers"
)

// Run returns the command that performs one scheduling pass.
func Run() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start and stop instances according to their schedule tags",
		Long: `Perform one scheduling pass over every instance of the configured provider.

For each instance carrying StartTime-<TZ>-SMTWTFS and/or StopTime-<TZ>-SMTWTFS
tags, the desired state for the current local time is computed and the
instance is started or stopped when it differs from the observed state.

Instances without schedule tags are skipped. A malformed schedule on one
instance is logged and never aborts the pass. The command exits non-zero only
when the configuration is invalid or the inventory cannot be listed.

Configuration is read from --config (a local path or s3://bucket/key),
then environment variables, then the flags below.
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.DryRunSet = cmd.Flags().Changed("dry-run")
			return handlers.Run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file or s3://bucket/key")
	cmd.Flags().StringVar(&opts.Provider, "provider", "", "Cloud provider: aws or hcloud")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Log decisions without starting or stopping instances")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Number of instances processed in parallel")
	cmd.Flags().StringVar(&opts.PushgatewayURL, "pushgateway", "", "Prometheus Pushgateway URL for run metrics")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable development logging")

	return cmd
}
