package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"pdf-chunk-queue/config"
	s3client "pdf-chunk-queue/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Archiver keeps a copy of the raw upload and returns where it was stored.
type Archiver interface {
	Archive(ctx context.Context, filename string, data []byte) (string, error)
}

// objectPutter is the subset of the S3 client the archiver needs.
type objectPutter interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver stores uploads content-addressed under <prefix>/<sha256><ext>.
type S3Archiver struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Archiver connects to the configured bucket, creating it when missing.
func NewS3Archiver(ctx context.Context, cfg config.S3Config) (*S3Archiver, error) {
	client, err := s3client.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%v: client: %w", config.ModuleS3, err)
	}
	a := &S3Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *S3Archiver) ensureBucket(ctx context.Context) error {
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)}); err == nil {
		return nil
	}
	_, err := a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if !errors.As(err, &owned) {
			return fmt.Errorf("%v: create bucket: %w", config.ModuleS3, err)
		}
	}
	return nil
}

func (a *S3Archiver) Archive(ctx context.Context, filename string, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	key := path.Join(a.prefix, hex.EncodeToString(sum[:])+ext)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
		Metadata:    map[string]string{"original-filename": url.PathEscape(filepath.Base(filename))},
	})
	if err != nil {
		return "", fmt.Errorf("%v: put object: %w", config.ModuleS3, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
