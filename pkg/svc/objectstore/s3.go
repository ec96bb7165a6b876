package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of the S3 client used by [S3Store].
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements [Store] for s3:// locations.
type S3Store struct {
	client S3API
}

var _ Store = (*S3Store)(nil)

// NewS3Store loads the default AWS configuration with the overrides in opts and builds
// an S3 client from it. The SDK retryer is limited to a single attempt.
func NewS3Store(ctx context.Context, opts Options) (*S3Store, error) {
	cfg, err := LoadAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		}

		o.UsePathStyle = opts.PathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return NewS3StoreFromClient(client), nil
}

// NewS3StoreFromClient wraps an existing S3 client.
func NewS3StoreFromClient(client S3API) *S3Store {
	return &S3Store{client: client}
}

// LoadAWSConfig resolves ambient credentials and applies region, profile, static credential,
// proxy and logging overrides.
func LoadAWSConfig(ctx context.Context, opts Options) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(1),
	}

	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	proxyURL, _, err := ProxyFromEnv(opts.Getenv)
	if err != nil {
		return aws.Config{}, err
	}

	if proxyURL != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(newProxyHTTPClient(proxyURL)))
	}

	if opts.Logger != nil {
		loadOpts = append(loadOpts, config.WithLogger(opts.Logger))

		if opts.Debug {
			loadOpts = append(loadOpts,
				config.WithClientLogMode(aws.LogRetries|aws.LogRequest|aws.LogResponse))
		}
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}

	return cfg, nil
}

// FetchToFile streams the object into dst.
func (s *S3Store) FetchToFile(ctx context.Context, loc Location, dst io.Writer) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return newStoreError("get", loc, classifyS3Error(err), err)
	}

	defer func() { _ = out.Body.Close() }()

	_, err = copyChunks(dst, out.Body)
	if err != nil {
		if errors.Is(err, ErrLocalIO) {
			return fmt.Errorf("get %s: %w", loc, err)
		}

		return newStoreError("get", loc, ErrTransport, err)
	}

	return nil
}

// UploadFromFile puts the whole file at path as the object body.
func (s *S3Store) UploadFromFile(ctx context.Context, loc Location, path string) error {
	data, err := readUpload(path)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(loc.Bucket),
		Key:           aws.String(loc.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return newStoreError("put", loc, classifyS3Error(err), err)
	}

	return nil
}

// classifyS3Error maps an SDK error onto one of the store error kinds.
func classifyS3Error(err error) error {
	var (
		noSuchKey    *types.NoSuchKey
		noSuchBucket *types.NoSuchBucket
		notFound     *types.NotFound
	)

	if errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) || errors.As(err, &notFound) {
		return ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return ErrNotFound
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch",
			"ExpiredToken", "InvalidToken", "AllAccessDisabled":
			return ErrAccessDenied
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAccessDenied
		}
	}

	return ErrTransport
}
