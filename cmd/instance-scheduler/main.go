// Package main is the entry point for the instance-scheduler CLI.
//
// instance-scheduler starts and stops compute instances on AWS EC2 or
// Hetzner Cloud according to weekly schedules stored in StartTime and
// StopTime tags. Each invocation performs one pass; run it periodically from
// cron, a Kubernetes CronJob or an EventBridge rule.
//
// Commands: run, evaluate, version.
//
// For detailed usage information, run:
//
//	instance-scheduler --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/instance-scheduler/cmd/instance-scheduler/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
