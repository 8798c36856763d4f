// Package s3 provides a catalog source fetching a versioned JSON dataset
// object from an S3-compatible backend (AWS S3 or MinIO).
package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"postalcore/internal/catalog"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source fetches the catalog document from a single bucket/key pair.
type Source struct {
	client *s3.Client
	bucket string
	key    string
}

// Config holds explicit construction parameters (mostly for tests). For
// prod we rely primarily on environment variables.
type Config struct {
	Region    string
	Bucket    string
	Key       string
	Endpoint  string // optional; enables custom endpoint (e.g. MinIO)
	PathStyle bool
}

// Environment variables:
//   POSTALCORE_CATALOG_DRIVER=s3
//   POSTALCORE_CATALOG_S3_BUCKET=<bucket> (required)
//   POSTALCORE_CATALOG_S3_KEY=<object key> (default catalog.json)
//   POSTALCORE_CATALOG_S3_REGION=<region> (default us-east-1)
//   POSTALCORE_CATALOG_S3_ENDPOINT=<url> (optional, for MinIO)
//   POSTALCORE_CATALOG_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// New creates an S3 catalog source from Config.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if cfg.Key == "" {
		cfg.Key = "catalog.json"
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Source{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// OpenFromEnv constructs an S3 source from process environment.
func OpenFromEnv(ctx context.Context) (*Source, error) {
	bucket := os.Getenv("POSTALCORE_CATALOG_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("POSTALCORE_CATALOG_S3_BUCKET required for s3 driver")
	}
	cfg := Config{
		Bucket:    bucket,
		Key:       os.Getenv("POSTALCORE_CATALOG_S3_KEY"),
		Region:    os.Getenv("POSTALCORE_CATALOG_S3_REGION"),
		Endpoint:  os.Getenv("POSTALCORE_CATALOG_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("POSTALCORE_CATALOG_S3_PATH_STYLE"), "true"),
	}
	return New(ctx, cfg)
}

// Driver identifies the backend.
func (s *Source) Driver() string { return "s3" }

// Load fetches and decodes the catalog object.
func (s *Source) Load(ctx context.Context) (catalog.Dataset, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("fetch catalog object %s/%s: %w", s.bucket, s.key, err)
	}
	defer func() { _ = out.Body.Close() }()
	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("read catalog object: %w", err)
	}
	var ds catalog.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return catalog.Dataset{}, fmt.Errorf("decode catalog object: %w", err)
	}
	return ds, nil
}
