package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 generates URLs for objects in an S3-compatible bucket.
type S3 struct {
	presigner *s3.PresignClient
	cfg       Config
}

var _ URLer = (*S3)(nil)

// New builds the S3 client from cfg.
func New(cfg Config) (*S3, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3{
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// URL returns a URL for key. Leading slashes are ignored.
func (s *S3) URL(ctx context.Context, key string, opts ...URLOption) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	o := &urlOptions{expiry: DefaultURLExpiry, public: s.cfg.PublicRead}
	for _, opt := range opts {
		opt(o)
	}

	if o.public {
		return s.publicURL(key), nil
	}
	return s.presign(ctx, key, o)
}

func (s *S3) publicURL(key string) string {
	switch {
	case s.cfg.PublicURL != "":
		return s.cfg.PublicURL + "/" + key
	case s.cfg.Endpoint != "" && s.cfg.PathStyle:
		return fmt.Sprintf("%s/%s/%s", s.cfg.Endpoint, s.cfg.Bucket, key)
	case s.cfg.Endpoint != "":
		return s.cfg.Endpoint + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}

func (s *S3) presign(ctx context.Context, key string, o *urlOptions) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(o.expiry))
	if err != nil {
		return "", classify(err, ErrPresignFailed)
	}
	return req.URL, nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for seg := range strings.SplitSeq(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
