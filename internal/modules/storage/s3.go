// Package storage talks to the S3-compatible object store holding uploaded
// manuscript files and images. Only URLs are persisted in the database.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	appcfg "github.com/CHIRGJAIN/journal-admin-sub000/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore uploads objects and resolves their public URLs.
type ObjectStore struct {
	client       *s3.Client
	bucket       string
	region       string
	endpoint     string
	customDomain string
	pathStyle    bool
}

// New builds an ObjectStore from config. Bucket and region are required;
// endpoint is only set for S3-compatible providers (MinIO, R2, ...).
func New(cfg appcfg.S3Config) (*ObjectStore, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket and region are required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.PathStyle,
	}
	endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
		// Most S3-compatible providers only route path-style requests.
		opts.UsePathStyle = true
	}

	return &ObjectStore{
		client:       s3.New(opts),
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		endpoint:     endpoint,
		customDomain: strings.TrimRight(strings.TrimSpace(cfg.CustomDomain), "/"),
		pathStyle:    opts.UsePathStyle,
	}, nil
}

// Upload stores payload under a generated key inside dir and returns the
// public URL of the object.
func (o *ObjectStore) Upload(ctx context.Context, dir, fileName string, payload []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := objectKey(dir, fileName)

	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return o.publicURL(key), nil
}

// objectKey namespaces uploads by month and randomizes the name; the original
// file name survives only as the extension.
func objectKey(dir, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 10 {
		ext = ""
	}
	return path.Join(dir, time.Now().UTC().Format("2006/01"), uuid.New().String()+ext)
}

func (o *ObjectStore) publicURL(key string) string {
	if o.customDomain != "" {
		return o.customDomain + "/" + key
	}
	if o.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", o.endpoint, o.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", o.bucket, o.region, key)
}
