package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// KeyPrefix is the folder every uploaded object lives under
const KeyPrefix = "samraai"

// Resource folders, one per kind of media
const (
	ResourceImage = "image"
	ResourceVideo = "video" // audio and video
	ResourceRaw   = "raw"
)

// ObjectStore uploads and deletes binary objects. It is satisfied by *S3Store.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	HealthCheck(ctx context.Context) error
}

// S3Store handles operations on an S3-compatible bucket
type S3Store struct {
	client   s3iface.S3API
	bucket   string
	region   string
	endpoint string
	cdnURL   string
}

// Config holds configuration for the S3 store
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string // empty means AWS S3 itself
	CDNURL    string
}

// NewS3Store creates a new store
func NewS3Store(config Config) (*S3Store, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not configured")
	}

	awsConfig := &aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Region: aws.String(config.Region),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return NewS3StoreWithClient(s3.New(sess), config), nil
}

// NewS3StoreWithClient builds a store around an existing client
func NewS3StoreWithClient(client s3iface.S3API, config Config) *S3Store {
	return &S3Store{
		client:   client,
		bucket:   config.Bucket,
		region:   config.Region,
		endpoint: strings.TrimPrefix(strings.TrimPrefix(config.Endpoint, "https://"), "http://"),
		cdnURL:   strings.TrimRight(config.CDNURL, "/"),
	}
}

// Upload stores data under key with public-read access and returns its URL
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.URL(key), nil
}

// Delete removes the object stored under key
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// HealthCheck verifies the bucket is reachable with the configured credentials
func (s *S3Store) HealthCheck(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s unreachable: %w", s.bucket, err)
	}
	return nil
}

// URL returns the public URL for a key, preferring the CDN when configured
func (s *S3Store) URL(key string) string {
	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// ResourceFor maps a MIME type to its resource folder
func ResourceFor(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ResourceImage
	case strings.HasPrefix(mimeType, "audio/"), strings.HasPrefix(mimeType, "video/"):
		return ResourceVideo
	default:
		return ResourceRaw
	}
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GenerateKey builds samraai/<resource>/<unix-millis>_<name> with the name made URL safe
func GenerateKey(fileName, mimeType string, now time.Time) string {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(filepath.Base(fileName), ext)
	base = strings.Trim(unsafeKeyChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "file"
	}
	ext = unsafeKeyChars.ReplaceAllString(ext, "")

	return fmt.Sprintf("%s/%s/%d_%s%s", KeyPrefix, ResourceFor(mimeType), now.UnixMilli(), base, ext)
}
