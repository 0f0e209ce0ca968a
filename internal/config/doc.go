// Package config defines the runtime configuration of the scheduler.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (local path or s3://bucket/key), then environment variables, then CLI flags
// applied by the command layer. [Config.Validate] runs last.
//
// Example file:
//
//	provider: hcloud
//	dryRun: false
//	concurrency: 4
//	hcloud:
//	  labelSelector: scheduler=enabled
//	  poweroff: false
//	metrics:
//	  pushgatewayURL: http://pushgateway:9091
package config
