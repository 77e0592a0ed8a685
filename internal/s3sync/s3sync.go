// Package s3sync pushes and pulls a codesweep dataset directory to and from
// an S3-compatible bucket, so a dataset built on one machine (or in CI) can
// be shared without re-parsing the tree.
package s3sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/nullpilot/codesweep/internal/config"
	"github.com/nullpilot/codesweep/internal/writer"
)

// ErrNotConfigured is returned when bucket_name/endpoint are unset.
var ErrNotConfigured = errors.New("s3 sync is not configured: set s3.bucket_name and s3.endpoint")

// Client pushes and pulls a dataset directory against one bucket/prefix.
type Client struct {
	s3     *s3.Client
	bucket string
	prefix string
}

// NewClient builds a Client from cfg, pointing at a custom S3-compatible
// endpoint with path-style addressing — the Go SDK's equivalent of the
// original tool's Region::Custom plus with_path_style() construction.
func NewClient(ctx context.Context, cfg config.S3Config) (*Client, error) {
	if strings.TrimSpace(cfg.BucketName) == "" || strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, ErrNotConfigured
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &cfg.Endpoint
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: cfg.BucketName, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (c *Client) key(name string) string {
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

// Push uploads every dataset file found in localDir. Missing optional
// tables (imports/comments/errors.parquet) are skipped rather than erroring,
// matching the writer's own "five independent files" contract.
func (c *Client) Push(ctx context.Context, localDir string) error {
	for _, name := range writer.DatasetFiles {
		localPath := filepath.Join(localDir, name)
		f, err := os.Open(localPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to open %s: %w", name, err)
		}

		_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket: &c.bucket,
			Key:    strPtr(c.key(name)),
			Body:   f,
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", name, err)
		}
	}
	return nil
}

// Pull downloads every dataset file present in the bucket under prefix into
// localDir, skipping files the bucket doesn't have. Each file is written
// atomically (temp-then-rename) so a reader never observes a partial
// download, matching internal/writer's own write pattern.
func (c *Client) Pull(ctx context.Context, localDir string) error {
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", localDir, err)
	}

	for _, name := range writer.DatasetFiles {
		key := c.key(name)
		out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{Bucket: &c.bucket, Key: &key})
		if err != nil {
			var noSuchKey *types.NoSuchKey
			if errors.As(err, &noSuchKey) {
				continue
			}
			return fmt.Errorf("failed to download %s: %w", name, err)
		}

		if err := writeAtomic(localDir, name, out.Body); err != nil {
			out.Body.Close()
			return err
		}
		out.Body.Close()
	}
	return nil
}

func writeAtomic(dir, name string, body io.Reader) error {
	tempPath := filepath.Join(dir, "."+name+".tmp")
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tempPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s into place: %w", name, err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
