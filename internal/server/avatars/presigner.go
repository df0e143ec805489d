// Package avatars turns stored avatar object keys into short-lived S3
// presigned GET URLs.
package avatars

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// URLResolver maps a stored avatar value to the URL handed to clients.
type URLResolver interface {
	Resolve(ctx context.Context, stored string) (string, error)
}

// Passthrough returns stored values unchanged. Used when S3 is not configured.
type Passthrough struct{}

func (Passthrough) Resolve(_ context.Context, stored string) (string, error) {
	return stored, nil
}

type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
	Expires      time.Duration
}

// S3Presigner presigns GET requests for avatar keys. Values that already
// carry a URL scheme are returned as is.
type S3Presigner struct {
	client  *s3.PresignClient
	bucket  string
	expires time.Duration
}

func NewS3Presigner(ctx context.Context, c S3Config) (*S3Presigner, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.RootUser,
			c.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Presigner{
		client:  newS3PresignClient(client),
		bucket:  c.Bucket,
		expires: c.Expires,
	}, nil
}

func (p *S3Presigner) Resolve(ctx context.Context, stored string) (string, error) {
	if stored == "" || strings.Contains(stored, "://") {
		return stored, nil
	}

	key := strings.TrimPrefix(stored, "/")
	req, err := presignGetObject(p.client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
