package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/instance-scheduler/internal/config"
	"github.com/imamik/instance-scheduler/internal/platform/awsconfig"
)

// Client reads objects from a bucket. It satisfies config.ObjectFetcher.
type Client struct {
	s3 *s3.Client
}

var _ config.ObjectFetcher = (*Client)(nil)

// NewClient creates a client from the aws section of the configuration.
// A non-empty endpoint switches to path-style addressing, which most
// S3-compatible services expect.
func NewClient(ctx context.Context, cfg config.AWSConfig) (*Client, error) {
	awsCfg, err := awsconfig.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(awsCfg, cfg.Endpoint), nil
}

// NewFromConfig wraps an already resolved aws.Config.
func NewFromConfig(awsCfg aws.Config, endpoint string) *Client {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &Client{s3: client}
}

// GetObject downloads an object from a bucket.
func (c *Client) GetObject(ctx context.Context, bucketName, key string) ([]byte, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("object %s not found in bucket %s: %w", key, bucketName, err)
		}
		return nil, fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucketName, err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return buf.Bytes(), nil
}

// IsNotFound reports whether err means the bucket or key does not exist.
func IsNotFound(err error) bool {
	return isNotFoundError(err)
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound", "404":
			return true
		}
	}

	return false
}
