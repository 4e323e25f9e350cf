package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3LinkPresigner presigns eBook links stored as s3://bucket/key.
type S3LinkPresigner struct {
	presign *s3.PresignClient
	ttl     time.Duration
}

func NewS3LinkPresigner(ctx context.Context, region string, ttl time.Duration) (*S3LinkPresigner, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return newS3LinkPresigner(s3.NewFromConfig(cfg), ttl), nil
}

func newS3LinkPresigner(client *s3.Client, ttl time.Duration) *S3LinkPresigner {
	return &S3LinkPresigner{presign: s3.NewPresignClient(client), ttl: ttl}
}

// ParseS3Link splits "s3://bucket/key" into its parts.
func ParseS3Link(link string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(link, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// PresignEbookURL returns a time-limited GET link for s3:// links; any other
// link is returned unchanged.
func (p *S3LinkPresigner) PresignEbookURL(ctx context.Context, link string) (string, error) {
	bucket, key, ok := ParseS3Link(link)
	if !ok {
		return link, nil
	}
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign s3 link: %w", err)
	}
	return req.URL, nil
}
