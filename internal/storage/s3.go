package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the part of the S3 client the archive uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Archive keeps receipts in an S3 bucket
type S3Archive struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Archive loads the default AWS configuration for region.
func NewS3Archive(ctx context.Context, bucket, region, prefix string) (*S3Archive, error) {
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3ArchiveWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func NewS3ArchiveWithClient(client S3API, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}
}

func (a *S3Archive) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	objectKey, err := a.objectKey(key)
	if err != nil {
		return "", err
	}
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, objectKey), nil
}

func (a *S3Archive) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	objectKey, err := a.objectKey(key)
	if err != nil {
		return nil, err
	}
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	return out.Body, nil
}

func (a *S3Archive) Exists(ctx context.Context, key string) (bool, int64, error) {
	objectKey, err := a.objectKey(key)
	if err != nil {
		return false, 0, err
	}
	out, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("failed to stat S3 object: %w", err)
	}
	return true, aws.ToInt64(out.ContentLength), nil
}

func (a *S3Archive) objectKey(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if a.prefix == "" {
		return cleaned, nil
	}
	return path.Join(a.prefix, cleaned), nil
}
