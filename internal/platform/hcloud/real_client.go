package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/instance-scheduler/internal/config"
)

// ProviderName identifies this platform in logs and metrics.
const ProviderName = "hcloud"

// RealClient implements inventory.Platform using the Hetzner Cloud API.
type RealClient struct {
	client        *hcloud.Client
	endpoint      string
	timeouts      *config.Timeouts
	labelSelector string
	poweroff      bool
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithEndpoint overrides the public API URL. Empty keeps the default.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *RealClient) {
		c.endpoint = endpoint
	}
}

// WithLabelSelector limits listing to servers matching selector.
func WithLabelSelector(selector string) ClientOption {
	return func(c *RealClient) {
		c.labelSelector = selector
	}
}

// WithPoweroff makes StopInstance cut power instead of requesting an ACPI shutdown.
func WithPoweroff(poweroff bool) ClientOption {
	return func(c *RealClient) {
		c.poweroff = poweroff
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hcOpts := []hcloud.ClientOption{
		hcloud.WithToken(token),
		hcloud.WithApplication("instance-scheduler", ""),
	}
	if c.endpoint != "" {
		hcOpts = append(hcOpts, hcloud.WithEndpoint(c.endpoint))
	}
	c.client = hcloud.NewClient(hcOpts...)
	return c
}

// NewRealClientFromConfig builds a client from the hcloud section of cfg.
func NewRealClientFromConfig(cfg config.HCloudConfig, timeouts *config.Timeouts) *RealClient {
	return NewRealClient(cfg.Token,
		WithEndpoint(cfg.Endpoint),
		WithTimeouts(timeouts),
		WithLabelSelector(cfg.LabelSelector),
		WithPoweroff(cfg.Poweroff),
	)
}

// Name returns the provider name.
func (c *RealClient) Name() string {
	return ProviderName
}
