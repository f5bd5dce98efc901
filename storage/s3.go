package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

const cacheControl = "max-age=3600"

// S3Config addresses the S3-compatible endpoint of the hosted storage service.
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// ProjectURL is the public site URL; objects are served from
	// <ProjectURL>/storage/v1/object/public/<bucket>/<key>.
	ProjectURL string
}

type S3Bucket struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

// NewS3Bucket builds a path-style S3 client with static credentials.
func NewS3Bucket(ctx context.Context, cfg S3Config) (*S3Bucket, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" {
		return nil, errs.NewConfigError("object storage")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})
	return NewS3BucketWithClient(client, cfg.Bucket, cfg.ProjectURL), nil
}

func NewS3BucketWithClient(client *s3.Client, bucket, projectURL string) *S3Bucket {
	return &S3Bucket{
		client:     client,
		bucket:     bucket,
		publicBase: PublicBase(projectURL, bucket),
	}
}

func (b *S3Bucket) Name() string {
	return b.bucket
}

func (b *S3Bucket) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(b.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
		IfNoneMatch:  aws.String("*"),
	})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
		return errs.NewObjectExistsError(key)
	}
	return errs.NewUploadError(key, err)
}

func (b *S3Bucket) PublicURL(key string) string {
	return b.publicBase + escapeKey(key)
}

// PublicBase returns the URL prefix public objects of bucket are served from.
func PublicBase(projectURL, bucket string) string {
	return strings.TrimRight(projectURL, "/") + "/storage/v1/object/public/" + url.PathEscape(bucket) + "/"
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
