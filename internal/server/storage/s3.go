package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/avolkovs/cipherdrop/internal/common"
	sc "github.com/avolkovs/cipherdrop/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps ciphertext blobs in an S3-compatible bucket (MinIO in dev),
// one object per content id. Re-putting the same bytes overwrites the same
// object with identical content, preserving idempotency.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.S3Bucket}, nil
}

func (s *S3Store) Put(ctx context.Context, data []byte) (string, error) {
	cid := ContentID(data)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cid),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return cid, nil
}

func (s *S3Store) Get(ctx context.Context, cid string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cid),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *S3Store) Close() error {
	return nil
}

// NewContentStore builds the store named by cfg.StorageProvider.
func NewContentStore(ctx context.Context, cfg *sc.Config) (ContentStore, error) {
	switch cfg.StorageProvider {
	case sc.StorageProviderBadger:
		return NewBadgerStore(cfg.BadgerPath)
	case sc.StorageProviderS3:
		return NewS3Store(ctx, cfg)
	case sc.StorageProviderMemory:
		return NewMemoryStore(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
