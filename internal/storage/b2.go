// Package storage publishes finished books to Backblaze B2 through its
// S3-compatible API and returns the public download reference.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PublishError reports a failed upload. The document was fully built but
// not persisted; the caller may retry the whole request.
type PublishError struct {
	Key   string
	Cause error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed for %q: %v", e.Key, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}

// Publisher persists a serialized book and returns a download reference.
type Publisher interface {
	Publish(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// objectPutter is the slice of the S3 client the publisher uses.
type objectPutter interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// B2Config holds the bucket settings for the publisher.
type B2Config struct {
	KeyID    string
	AppKey   string
	Bucket   string
	Endpoint string
	Region   string
}

// B2Publisher uploads to a B2 bucket over the S3 API.
type B2Publisher struct {
	client   objectPutter
	bucket   string
	endpoint string
}

// NewB2Publisher builds a publisher for the configured bucket. B2 speaks
// s3v4 with path-style addressing at a custom endpoint.
func NewB2Publisher(ctx context.Context, cfg B2Config) (*B2Publisher, error) {
	if cfg.KeyID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("B2 credentials are required")
	}
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("B2 bucket and endpoint are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.KeyID, cfg.AppKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &B2Publisher{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
	}, nil
}

// Publish uploads the object and returns its public URL.
func (p *B2Publisher) Publish(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &PublishError{Key: key, Cause: err}
	}

	return fmt.Sprintf("%s/%s/%s", p.endpoint, p.bucket, key), nil
}

// ObjectKey builds the upload filename for a book:
// orastria_<safe name>_<book id>.<ext>.
func ObjectKey(name, bookID, extension string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			sb.WriteRune('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
		}
	}
	safe := sb.String()
	if safe == "" {
		safe = "Friend"
	}
	return fmt.Sprintf("orastria_%s_%s.%s", safe, bookID, extension)
}
