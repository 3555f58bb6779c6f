package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type s3Source struct {
	bucket string
	key    string
	opts   Options
}

func newS3(u *url.URL, opts Options) (*s3Source, error) {
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, fmt.Errorf("s3 location must be s3://bucket/key")
	}
	return &s3Source{bucket: u.Host, key: key, opts: opts}, nil
}

func (s *s3Source) Name() string { return "s3://" + s.bucket + "/" + s.key }

func (s *s3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}
	return out.Body, nil
}

// client builds an S3 client from the default credential chain, with static
// keys, an assumed role and a custom endpoint when configured.
func (s *s3Source) client(ctx context.Context) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if s.opts.S3Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(s.opts.S3Region))
	}
	if s.opts.S3AccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(s.opts.S3AccessKey, s.opts.S3SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Cross-account buckets: the base credentials only need sts:AssumeRole
	if s.opts.S3RoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), s.opts.S3RoleARN,
			func(o *stscreds.AssumeRoleOptions) {
				o.RoleSessionName = "pwmeter"
			})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.opts.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.opts.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
