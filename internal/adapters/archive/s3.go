package archive

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Uploader = (*S3Uploader)(nil)

const defaultRegion = "us-east-1"

// S3Uploader implements ports.Uploader for S3 compatible object stores.
type S3Uploader struct{}

// NewS3Uploader creates a new S3Uploader.
func NewS3Uploader() *S3Uploader {
	return &S3Uploader{}
}

// Upload stores the file at p under the configured prefix and returns its
// location. The bucket is created when missing.
func (u *S3Uploader) Upload(ctx context.Context, cfg domain.S3Config, p string) (string, error) {
	if !cfg.Enabled() {
		return "", domain.ErrUploadNotConfigured
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrUploadFailed, err.Error()), "endpoint", cfg.Endpoint)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrUploadFailed, err.Error()), "bucket", cfg.Bucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrUploadFailed, err.Error()), "bucket", cfg.Bucket)
		}
	}

	key := ObjectKey(cfg.Prefix, filepath.Base(p))
	info, err := client.FPutObject(ctx, cfg.Bucket, key, p, minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrUploadFailed, err.Error()), "key", key)
	}

	if info.Location != "" {
		return info.Location, nil
	}
	return "s3://" + cfg.Bucket + "/" + key, nil
}

// ObjectKey joins the configured prefix and the archive file name.
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
