package ec2

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/instance-scheduler/internal/config"
	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/platform/awsconfig"
)

// ProviderName identifies this platform in logs and metrics.
const ProviderName = "aws"

// API is the subset of the EC2 client the scheduler uses.
type API interface {
	ec2.DescribeInstancesAPIClient
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

var (
	_ API                = (*ec2.Client)(nil)
	_ inventory.Platform = (*RealClient)(nil)
)

// RealClient implements inventory.Platform using the EC2 API.
type RealClient struct {
	api      API
	timeouts *config.Timeouts
	filters  []types.Filter
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithFilters narrows listing to instances matching every filter.
func WithFilters(filters map[string][]string) ClientOption {
	return func(c *RealClient) {
		c.filters = toFilters(filters)
	}
}

// NewRealClient wraps an EC2 API client.
func NewRealClient(api API, opts ...ClientOption) *RealClient {
	c := &RealClient{
		api:      api,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRealClientFromConfig resolves AWS credentials and builds a client from
// the aws section of cfg.
func NewRealClientFromConfig(ctx context.Context, cfg config.AWSConfig, timeouts *config.Timeouts) (*RealClient, error) {
	awsCfg, err := awsconfig.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	api := ec2.NewFromConfig(awsCfg, func(o *ec2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewRealClient(api, WithTimeouts(timeouts), WithFilters(cfg.Filters)), nil
}

// Name returns the provider name.
func (c *RealClient) Name() string {
	return ProviderName
}

// toFilters converts a filter map into EC2 filters ordered by name.
func toFilters(m map[string][]string) []types.Filter {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	filters := make([]types.Filter, 0, len(names))
	for _, name := range names {
		filters = append(filters, types.Filter{
			Name:   aws.String(name),
			Values: append([]string(nil), m[name]...),
		})
	}
	return filters
}
