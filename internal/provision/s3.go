package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// BucketClient creates object-storage buckets through the S3 API. It is the
// one provisioning path backed by a real cloud SDK; the other resource kinds
// stay with the simulator until their providers are wired.
type BucketClient struct {
	s3     *s3.Client
	region string
}

// NewBucketClient builds an S3 client from static credentials. A non-empty
// endpoint targets S3-compatible storage instead of AWS proper.
func NewBucketClient(ctx context.Context, endpoint, region string, creds Credentials) (*BucketClient, error) {
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &BucketClient{s3: client, region: region}, nil
}

// CreateBucket creates the bucket, treating "already owned by you" as
// success so a confirmed plan can be retried safely.
func (c *BucketClient) CreateBucket(ctx context.Context, name string) (string, error) {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return name, nil
		}
		return "", fmt.Errorf("failed to create bucket %s: %w", name, err)
	}
	return name, nil
}

// BucketExists checks whether the bucket exists and is accessible.
func (c *BucketClient) BucketExists(ctx context.Context, name string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if isBucketNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", name, err)
	}
	return true, nil
}

func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return true
	}

	var exists *types.BucketAlreadyExists
	if errors.As(err, &exists) {
		return true
	}

	// S3-compatible services may only return API error codes
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}

func isBucketNotFound(err error) bool {
	if err == nil {
		return false
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchBucket" || code == "NotFound"
	}

	return false
}

// HybridProvider runs buckets against real object storage and everything
// else through the simulator.
type HybridProvider struct {
	*Simulator
	buckets *BucketClient
}

var _ Provider = (*HybridProvider)(nil)

// NewHybridProvider wraps the simulator with a real bucket client.
func NewHybridProvider(sim *Simulator, buckets *BucketClient) *HybridProvider {
	return &HybridProvider{Simulator: sim, buckets: buckets}
}

// CreateBucket creates the bucket through real object storage. A bucket
// that already exists and is accessible counts as success so a confirmed
// plan can be retried safely. Created buckets join the shared inventory.
func (p *HybridProvider) CreateBucket(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("bucket name is required")
	}

	exists, err := p.buckets.BucketExists(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		if _, err := p.buckets.CreateBucket(ctx, name); err != nil {
			return "", err
		}
	}

	p.remember(name, "storage", name)
	return name, nil
}
