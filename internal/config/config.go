package config

// Supported providers.
const (
	ProviderAWS    = "aws"
	ProviderHCloud = "hcloud"
)

// DefaultMetricsJob is the Pushgateway job name used when none is configured.
const DefaultMetricsJob = "instance-scheduler"

// Config is the scheduler's runtime configuration.
type Config struct {
	Provider    string        `yaml:"provider"`
	DryRun      bool          `yaml:"dryRun"`
	Concurrency int           `yaml:"concurrency"`
	AWS         AWSConfig     `yaml:"aws"`
	HCloud      HCloudConfig  `yaml:"hcloud"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// AWSConfig configures the EC2 provider. Credentials come from the default
// AWS credential chain unless static keys are set in the environment.
type AWSConfig struct {
	Region   string `yaml:"region"`
	Profile  string `yaml:"profile"`
	Endpoint string `yaml:"endpoint"`
	// Filters are DescribeInstances filters, e.g. {"tag:team": ["platform"]}.
	Filters map[string][]string `yaml:"filters"`
	// Static keys are read from the environment only.
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

// HCloudConfig configures the Hetzner Cloud provider.
type HCloudConfig struct {
	// Token is read from HCLOUD_TOKEN only and never from the file.
	Token         string `yaml:"-"`
	Endpoint      string `yaml:"endpoint"`
	LabelSelector string `yaml:"labelSelector"`
	// Poweroff cuts power instead of sending an ACPI shutdown.
	Poweroff bool `yaml:"poweroff"`
}

// MetricsConfig configures the optional Prometheus Pushgateway export.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL"`
	Job            string `yaml:"job"`
}

// Default returns the configuration used when nothing else is specified.
func Default() *Config {
	return &Config{
		Provider:    ProviderAWS,
		Concurrency: 1,
		Metrics: MetricsConfig{
			Job: DefaultMetricsJob,
		},
	}
}
