package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/spacetraveling/internal/config"
)

// Bucket stores files in an S3-compatible bucket such as Cloudflare R2.
type Bucket struct {
	client *s3.Client
	bucket string
}

// NewBucket connects to the R2 bucket described by cfg.
func NewBucket(ctx context.Context, cfg *config.Config) (*Bucket, error) {
	if !cfg.R2Enabled() {
		return nil, errors.New("R2 is not configured: set CLOUDFLARE_ACCOUNT_ID or R2_ENDPOINT, R2_ACCESS_KEY and R2_SECRET_ACCESS_KEY")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2URL())
		o.UsePathStyle = true
	})

	return &Bucket{client: client, bucket: cfg.R2Bucket}, nil
}

// Put uploads data to key.
func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrInvalidKey
	}
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", key, b.bucket, err)
	}
	return nil
}
