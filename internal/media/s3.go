package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type s3Uploader interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3Storer uploads images to an S3-compatible media host and returns
// the object's public URL.
type S3Storer struct {
	client    s3Uploader
	bucket    string
	endpoint  string
	useSSL    bool
	publicURL string
}

func NewS3Storer(endpoint, accessKey, secretKey, bucket string, useSSL bool, publicURL string) (*S3Storer, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &S3Storer{
		client:    client,
		bucket:    bucket,
		endpoint:  endpoint,
		useSSL:    useSSL,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *S3Storer) Store(ctx context.Context, fileName string, content io.Reader, size int64) (string, error) {
	ext, err := ValidateFilename(fileName)
	if err != nil {
		return "", err
	}

	object := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFileName(fileName))
	_, err = s.client.PutObject(ctx, s.bucket, object, content, size, minio.PutObjectOptions{
		ContentType: ContentType(ext),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + object, nil
	}
	scheme := "https"
	if !s.useSSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, object), nil
}
