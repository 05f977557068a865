package output

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pathtracer/pkg/core"
)

// UploadTimeout bounds a single PutObject call
const UploadTimeout = 60 * time.Second

// S3Config describes an S3-compatible bucket that renders are published to
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Empty means AWS; otherwise an S3-compatible endpoint URL
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders/"
}

// Enabled reports whether publishing is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Publisher uploads encoded images to a bucket
type S3Publisher struct {
	client s3iface.S3API
	config S3Config
}

// NewS3Publisher creates a publisher with static credentials and path-style addressing
func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client s3iface.S3API, cfg S3Config) *S3Publisher {
	return &S3Publisher{client: client, config: cfg}
}

// Publish uploads body under the configured prefix and returns the object URL
func (p *S3Publisher) Publish(ctx context.Context, key string, format Format, body []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	fullKey := p.objectKey(key)
	size := int64(len(body))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(format)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	core.Logger().Info("uploaded render", "bucket", p.config.Bucket, "key", fullKey, "bytes", size)
	return p.ObjectURL(key), nil
}

// ObjectURL returns the public URL of key.
// Custom endpoints use path-style URLs; AWS uses the virtual-hosted form.
func (p *S3Publisher) ObjectURL(key string) string {
	fullKey := p.objectKey(key)
	if p.config.Endpoint != "" {
		u, err := url.Parse(p.config.Endpoint)
		if err == nil && u.Host != "" {
			u.Path = path.Join("/", u.Path, p.config.Bucket, fullKey)
			return u.String()
		}
	}
	region := p.config.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.config.Bucket, region, fullKey)
}

func (p *S3Publisher) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if p.config.Prefix == "" {
		return key
	}
	return path.Join(p.config.Prefix, key)
}
