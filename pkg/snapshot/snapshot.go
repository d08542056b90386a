// Package snapshot stores rendered HTML on the local filesystem or in S3.
//
// A target is either a file path or an s3://bucket/key URL:
//
//	t, err := snapshot.ParseTarget("s3://site/pages/index.html", snapshot.S3FromEnv)
//	loc, err := t.Save(ctx, []byte(html))
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/rendr/internal/errors"
)

// Store persists snapshots by key.
type Store interface {
	// Put writes data under key.
	Put(ctx context.Context, key string, data []byte) error

	// Location describes where key is stored, for display.
	Location(key string) string
}

// =============================================================================
// Filesystem
// =============================================================================

// FileStore writes snapshots under a root directory.
type FileStore struct {
	Root string
}

// Put writes data to Root/key, creating parent directories.
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Location returns the file path for key.
func (s *FileStore) Location(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(key))
}

// =============================================================================
// S3
// =============================================================================

// PutObjectAPI is the part of *s3.Client that S3Store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes snapshots to a bucket.
type S3Store struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// Put uploads data as text/html.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.Prefix + key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"generator":   "rendr",
			"rendered-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}

// Location returns the s3:// URL for key.
func (s *S3Store) Location(key string) string {
	return "s3://" + s.Bucket + "/" + s.Prefix + key
}

// S3FromEnv builds an S3 client from AWS_REGION, AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN and, for S3-compatible
// services, AWS_ENDPOINT_URL.
func S3FromEnv() (PutObjectAPI, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION is not set")
	}

	opts := s3.Options{Region: region}
	if id := os.Getenv("AWS_ACCESS_KEY_ID"); id != "" {
		creds := aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		))
	}
	if endpoint := os.Getenv("AWS_ENDPOINT_URL"); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts), nil
}

// =============================================================================
// Targets
// =============================================================================

// Target is a store plus the key to write.
type Target struct {
	Store Store
	Key   string
}

// ParseTarget resolves a file path or s3://bucket/key URL. newS3 is only
// called for s3 targets.
func ParseTarget(target string, newS3 func() (PutObjectAPI, error)) (Target, error) {
	if target == "" {
		return Target{}, errors.New("E161").WithDetail("empty target")
	}

	if rest, ok := strings.CutPrefix(target, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return Target{}, errors.New("E161").WithDetailf("%q needs a bucket and an object key", target)
		}
		client, err := newS3()
		if err != nil {
			return Target{}, errors.New("E161").Wrap(err)
		}
		return Target{Store: &S3Store{Client: client, Bucket: bucket}, Key: key}, nil
	}

	return Target{
		Store: &FileStore{Root: filepath.Dir(target)},
		Key:   filepath.Base(target),
	}, nil
}

// Save writes html to the target and returns its location.
func (t Target) Save(ctx context.Context, html []byte) (string, error) {
	if err := t.Store.Put(ctx, t.Key, html); err != nil {
		return "", errors.New("E160").WithDetailf("writing %s", t.Store.Location(t.Key)).Wrap(err)
	}
	return t.Store.Location(t.Key), nil
}
