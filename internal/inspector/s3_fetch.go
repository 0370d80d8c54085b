package inspector

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	MaxBytes  int64
}

// S3Fetcher reads archives from an S3-compatible object store.
type S3Fetcher struct {
	client   *minio.Client
	maxBytes int64
}

func NewS3Fetcher(cfg S3Config) (*S3Fetcher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Fetcher{client: client, maxBytes: cfg.MaxBytes}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if src.Kind != SourceS3 {
		return nil, &FetchError{Source: src.String(), Err: ErrUnsupportedSource}
	}
	obj, err := f.client.GetObject(ctx, src.Bucket, src.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s3FetchError(src, err)
	}
	defer obj.Close()
	// GetObject is lazy; Stat surfaces missing keys before we read.
	if _, err := obj.Stat(); err != nil {
		return nil, s3FetchError(src, err)
	}
	return readCapped(obj, f.maxBytes, src)
}

func s3FetchError(src Source, err error) error {
	resp := minio.ToErrorResponse(err)
	status := resp.StatusCode
	if status == 0 && (resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket") {
		status = http.StatusNotFound
	}
	return &FetchError{Source: src.String(), StatusCode: status, Err: err}
}
