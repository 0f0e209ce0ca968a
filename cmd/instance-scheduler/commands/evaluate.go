package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/instance-scheduler/cmd/instance-scheduler/handlers"
)

// Evaluate returns the command for checking a schedule offline.
func Evaluate() *cobra.Command {
	var opts handlers.EvaluateOptions
	var at string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Show the state a schedule implies, without touching any instance",
		Long: `Evaluate a start/stop schedule pair for a timezone.

Values have seven segments, Sunday first, separated by '|' (or '_' as used in
Hetzner labels). Each segment is HHhMM, running, stopped, n/a or empty.

Examples:
  instance-scheduler evaluate --timezone Europe/Paris \
    --start 'n/a|08h00|08h00|08h00|08h00|08h00|n/a' \
    --stop  'n/a|18h00|18h00|18h00|18h00|18h00|n/a'

  instance-scheduler evaluate --timezone UTC --start '|||running|||' --at 2026-03-04T10:00:00Z
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at %q: %w", at, err)
				}
				opts.At = t
			}
			return handlers.Evaluate(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "StartTime tag value")
	cmd.Flags().StringVar(&opts.Stop, "stop", "", "StopTime tag value")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", "UTC", "Timezone from the tag key, e.g. Europe/Paris")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate at this RFC3339 instant instead of now")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}
