package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/imamik/instance-scheduler/internal/config"
	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/metrics"
	"github.com/imamik/instance-scheduler/internal/platform/ec2"
	"github.com/imamik/instance-scheduler/internal/platform/hcloud"
	"github.com/imamik/instance-scheduler/internal/platform/s3"
	"github.com/imamik/instance-scheduler/internal/runner"
)

// RunOptions carries the run command's flags. Zero values leave the
// configuration untouched.
type RunOptions struct {
	ConfigPath     string
	Provider       string
	DryRun         bool
	DryRunSet      bool
	Concurrency    int
	PushgatewayURL string
	Debug          bool
}

// Factory function variables for run - can be replaced in tests.
var (
	// newPlatform creates the inventory provider selected by the configuration.
	newPlatform = buildPlatform

	// newObjectFetcher creates the client used for s3:// configuration paths.
	newObjectFetcher = func(ctx context.Context) (config.ObjectFetcher, error) {
		return s3.NewClient(ctx, config.AWSConfig{})
	}

	// newClock returns the clock schedules are evaluated against.
	newClock = func() clock.PassiveClock { return clock.RealClock{} }

	// newLogger builds the process logger.
	newLogger = func(debug bool) logr.Logger {
		return zap.New(zap.UseDevMode(debug || os.Getenv("DEBUG") == "true"))
	}
)

// Run handles the run command.
//
// It loads and validates the configuration, performs one scheduling pass and
// pushes run metrics when a Pushgateway is configured. Per-instance failures
// are logged and summarized; only configuration and listing errors are
// returned.
func Run(ctx context.Context, out io.Writer, opts RunOptions) error {
	logger := newLogger(opts.Debug)
	log.SetLogger(logger)
	ctx = log.IntoContext(ctx, logger)

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	platform, err := newPlatform(ctx, cfg, config.LoadTimeouts())
	if err != nil {
		return fmt.Errorf("failed to initialize %s client: %w", cfg.Provider, err)
	}

	rec := metrics.NewRecorder(platform.Name())
	r := runner.New(platform,
		runner.WithClock(newClock()),
		runner.WithDryRun(cfg.DryRun),
		runner.WithConcurrency(cfg.Concurrency),
		runner.WithMetrics(rec),
	)

	summary, runErr := r.Run(ctx)

	if err := rec.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
		logger.Error(err, "Metrics push failed")
	}
	if runErr != nil {
		return runErr
	}

	if isInteractiveTTY() {
		fmt.Fprint(out, renderRunSummary(summary))
	} else {
		fmt.Fprint(out, plainRunSummary(summary))
	}
	return nil
}

// apply layers explicitly set flags over the loaded configuration.
func (o RunOptions) apply(cfg *config.Config) {
	if o.Provider != "" {
		cfg.Provider = o.Provider
	}
	if o.DryRunSet {
		cfg.DryRun = o.DryRun
	}
	if o.Concurrency > 0 {
		cfg.Concurrency = o.Concurrency
	}
	if o.PushgatewayURL != "" {
		cfg.Metrics.PushgatewayURL = o.PushgatewayURL
	}
}

// loadConfig reads the configuration, creating an object storage client
// only for s3:// paths.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	var fetcher config.ObjectFetcher
	if _, _, ok := config.ParseS3URL(path); ok {
		f, err := newObjectFetcher(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create object storage client: %w", err)
		}
		fetcher = f
	}
	cfg, err := config.Load(ctx, path, fetcher)
	if err != nil {
		if s3.IsNotFound(err) {
			return nil, fmt.Errorf("config object %s does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func buildPlatform(ctx context.Context, cfg *config.Config, timeouts *config.Timeouts) (inventory.Platform, error) {
	switch cfg.Provider {
	case config.ProviderAWS:
		client, err := ec2.NewRealClientFromConfig(ctx, cfg.AWS, timeouts)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderHCloud:
		return hcloud.NewRealClientFromConfig(cfg.HCloud, timeouts), nil
	}
	return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
}
