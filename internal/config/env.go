package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvProvider       = "INSTANCE_SCHEDULER_PROVIDER"
	EnvDryRun         = "INSTANCE_SCHEDULER_DRY_RUN"
	EnvConcurrency    = "INSTANCE_SCHEDULER_CONCURRENCY"
	EnvPushgatewayURL = "INSTANCE_SCHEDULER_PUSHGATEWAY_URL"
	EnvHCloudToken    = "HCLOUD_TOKEN"
	EnvHCloudEndpoint = "HCLOUD_ENDPOINT"
	EnvAWSRegion      = "AWS_REGION"
	EnvAWSAccessKey   = "INSTANCE_SCHEDULER_AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey   = "INSTANCE_SCHEDULER_AWS_SECRET_ACCESS_KEY"
)

// ApplyEnv overrides fields from the environment. Unset variables leave the
// current value alone; malformed values are an error.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvDryRun); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDryRun, v, err)
		}
		c.DryRun = b
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvConcurrency, v, err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv(EnvPushgatewayURL); v != "" {
		c.Metrics.PushgatewayURL = v
	}
	if v := os.Getenv(EnvHCloudToken); v != "" {
		c.HCloud.Token = v
	}
	if v := os.Getenv(EnvHCloudEndpoint); v != "" {
		c.HCloud.Endpoint = v
	}
	if v := os.Getenv(EnvAWSRegion); v != "" && c.AWS.Region == "" {
		c.AWS.Region = v
	}
	if v := os.Getenv(EnvAWSAccessKey); v != "" {
		c.AWS.AccessKeyID = v
	}
	if v := os.Getenv(EnvAWSSecretKey); v != "" {
		c.AWS.SecretAccessKey = v
	}
	return nil
}
