package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAWS:
	case ProviderHCloud:
		if c.HCloud.Token == "" {
			return fmt.Errorf("%s is required for provider %q", EnvHCloudToken, ProviderHCloud)
		}
	case "":
		return fmt.Errorf("provider is required")
	default:
		return fmt.Errorf("unsupported provider %q (want %q or %q)", c.Provider, ProviderAWS, ProviderHCloud)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}

	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf("%s and %s must be set together", EnvAWSAccessKey, EnvAWSSecretKey)
	}

	if err := validateURL("aws.endpoint", c.AWS.Endpoint); err != nil {
		return err
	}
	if err := validateURL("hcloud.endpoint", c.HCloud.Endpoint); err != nil {
		return err
	}
	if err := validateURL("metrics.pushgatewayURL", c.Metrics.PushgatewayURL); err != nil {
		return err
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be http or https", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", field, raw)
	}
	return nil
}
