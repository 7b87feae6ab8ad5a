// Package exports publishes exported roster workbooks to S3-compatible
// object storage and hands back a time-limited download link.
package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/roster/internal/timex"
	"github.com/google/uuid"
)

// LinkTTL is how long a download link stays valid.
const LinkTTL = 15 * time.Minute

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrNotConfigured = errors.New("export upload is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Config describes the target bucket. An empty Bucket disables uploads.
type Config struct {
	Region    string
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
}

func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Uploader stores workbooks under date-partitioned random keys.
type Uploader struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	prefix  string
	clock   timex.Clock
}

// Link is the result of a successful upload.
type Link struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

func NewUploader(ctx context.Context, cfg Config, clock timex.Clock) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &Uploader{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		clock:   clock,
	}, nil
}

func (u *Uploader) storageKey(name string) string {
	d := u.clock.Now().UTC()
	return path.Join(u.prefix, "exports",
		fmt.Sprintf("%04d/%02d/%02d", d.Year(), d.Month(), d.Day()),
		uuid.NewString(), name)
}

// Upload stores body under a fresh key derived from name and returns a
// presigned GET link valid for LinkTTL.
func (u *Uploader) Upload(ctx context.Context, name string, body []byte) (Link, error) {
	key := u.storageKey(name)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentTypeXLSX),
	})
	if err != nil {
		return Link{}, fmt.Errorf("put %s: %w", key, err)
	}

	req, err := presignGetObject(u.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(LinkTTL))
	if err != nil {
		return Link{}, fmt.Errorf("presign %s: %w", key, err)
	}

	return Link{Key: key, URL: req.URL, ExpiresAt: u.clock.Now().Add(LinkTTL)}, nil
}
