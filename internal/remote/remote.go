// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/modeldiff/modeldiff/internal/cacheutil"
	"github.com/modeldiff/modeldiff/internal/log"
)

const s3Scheme = "s3://"

// IsRemote reports whether the input names a remote object rather than a
// local path.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// Fetch resolves an s3:// URI to a local file path, downloading the object
// on a cache miss. The returned file keeps the object's extension so the
// loaders can dispatch on it.
func Fetch(ctx context.Context, uri string, opts ...Option) (string, error) {
	bucket, key, err := parseURI(uri)
	if err != nil {
		return "", err
	}

	if entry, ok := cacheutil.Read([]string{"s3", bucket}, uri); ok {
		return materialize(entry.Data, key)
	}

	cfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3v2.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", uri, err)
	}
	log.Debugf("fetched %s: %d bytes", uri, len(data))

	if err := cacheutil.Write([]string{"s3", bucket}, uri, data); err != nil {
		log.WithError(err).Warnf("failed to cache %s", uri)
	}

	return materialize(data, key)
}

// loadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func loadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// parseURI splits s3://bucket/key into its parts.
func parseURI(uri string) (bucket string, key string, err error) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	if rest == uri {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 uri: %s", uri)
	}
	return bucket, key, nil
}

// materialize writes the object bytes to a temp file that keeps the key's
// extension.
func materialize(data []byte, key string) (string, error) {
	f, err := os.CreateTemp("", "modeldiff-*"+filepath.Ext(key))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}
