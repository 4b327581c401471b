package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"remotefs-go/internal/config"
	"remotefs-go/internal/remotefs"
)

// S3Store persists records as objects in an S3 bucket. File records
// become objects keyed by their path (below an optional prefix) with the
// record's mimetype as content type; directory records become zero-byte
// objects with a trailing slash, matching the convention S3 browsers use
// for folders.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Store creates an S3 store from configuration. A custom endpoint
// (for S3-compatible services) switches the client to path-style
// addressing.
func NewS3Store(ctx context.Context, cfg config.StoreConfig) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 store requires s3_bucket to be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		prefix:   strings.Trim(cfg.S3Prefix, "/"),
	}, nil
}

// Save uploads a single record.
func (s *S3Store) Save(ctx context.Context, rec remotefs.Record) error {
	switch r := rec.(type) {
	case *remotefs.DirectoryRecord:
		key := s.key(r.Path) + "/"
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(nil),
		})
		if err != nil {
			return fmt.Errorf("putting directory marker %q: %w", key, err)
		}
		return nil
	case *remotefs.FileRecord:
		data, err := r.Bytes()
		if err != nil {
			return err
		}
		key := s.key(r.Path)
		_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(r.Mimetype),
		})
		if err != nil {
			return fmt.Errorf("uploading object %q: %w", key, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown record type %T", rec)
	}
}

// ValidateSetup verifies the bucket is reachable with the configured
// credentials.
func (s *S3Store) ValidateSetup(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q not accessible: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) key(recordPath string) string {
	p := strings.Trim(recordPath, "/")
	if s.prefix == "" {
		return p
	}
	return s.prefix + "/" + p
}

var _ remotefs.Store = (*S3Store)(nil)
