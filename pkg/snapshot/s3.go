package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 publishes snapshots as objects in an S3 bucket.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 creates an S3 publisher.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2
//   - bucket: S3 bucket name
//   - prefix: key prefix for snapshots (e.g. "snapshots/")
func NewS3(client *s3.Client, bucket, prefix string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Publish uploads the snapshot as <prefix><name>.html and returns its
// s3:// location.
func (s *S3) Publish(ctx context.Context, name, html string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", ErrBadName
	}

	key := s.prefix + name + ".html"
	digest := sha256.Sum256([]byte(html))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"published-time": time.Now().UTC().Format(time.RFC3339),
			"content-sha256": hex.EncodeToString(digest[:]),
		},
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
