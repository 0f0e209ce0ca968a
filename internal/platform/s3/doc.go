// Package s3 fetches configuration files from S3 or S3-compatible object storage.
package s3
