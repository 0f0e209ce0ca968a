package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ObjectFetcher downloads an object from S3-compatible storage.
type ObjectFetcher interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Load reads the configuration at path. An empty path yields the defaults.
// Paths of the form s3://bucket/key are downloaded with fetcher.
// Environment overrides are applied; validation is left to the caller so
// flags can be layered on top first.
func Load(ctx context.Context, path string, fetcher ObjectFetcher) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var data []byte
	if bucket, key, ok := ParseS3URL(path); ok {
		if fetcher == nil {
			return nil, fmt.Errorf("cannot load %s: no object storage client", path)
		}
		var err error
		data, err = fetcher.GetObject(ctx, bucket, key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch config file: %w", err)
		}
	} else {
		// #nosec G304
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = DefaultMetricsJob
	}
	return cfg, nil
}

// ParseS3URL splits s3://bucket/key into its parts.
func ParseS3URL(path string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(path, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
