package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageResolver turns a catalog image location into a URL the browser can load
type ImageResolver interface {
	Resolve(ctx context.Context, location string) (string, error)
}

// StaticResolver prefixes relative image paths with a base URL. Absolute
// URLs pass through unchanged, as does everything when the base is empty.
type StaticResolver struct {
	baseURL string
}

func NewStaticResolver(baseURL string) StaticResolver {
	return StaticResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r StaticResolver) Resolve(_ context.Context, location string) (string, error) {
	if r.baseURL == "" || isAbsoluteURL(location) {
		return location, nil
	}
	return r.baseURL + "/" + strings.TrimLeft(location, "/"), nil
}

// ObjectPresigner is the part of the s3 presign client used for image URLs
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Resolver serves gallery images from a private bucket through presigned GET URLs
type S3Resolver struct {
	presigner ObjectPresigner
	bucket    string
	expires   time.Duration
}

func NewS3Resolver(ctx context.Context, region, bucket string, expires time.Duration) (*S3Resolver, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3ResolverWithPresigner(s3.NewPresignClient(s3.NewFromConfig(cfg)), bucket, expires), nil
}

func NewS3ResolverWithPresigner(presigner ObjectPresigner, bucket string, expires time.Duration) *S3Resolver {
	if expires <= 0 {
		expires = 15 * time.Minute
	}
	return &S3Resolver{presigner: presigner, bucket: bucket, expires: expires}
}

func (r *S3Resolver) Resolve(ctx context.Context, location string) (string, error) {
	if isAbsoluteURL(location) {
		return location, nil
	}
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(strings.TrimLeft(location, "/")),
	}, s3.WithPresignExpires(r.expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", location, err)
	}
	return req.URL, nil
}

func isAbsoluteURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
