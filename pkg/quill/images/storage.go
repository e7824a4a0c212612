package images

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage persists an uploaded image and returns the URL it will be
// served under.
type Storage interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// Minio stores images as objects in a minio/S3 bucket
type Minio struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinio connects a minio-backed image store. baseURL is the public
// root the bucket is served from, without a trailing slash.
func NewMinio(endpoint, accessKey, secretKey, bucket, baseURL string, useSSL bool) (*Minio, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Minio{client: client, bucket: bucket, baseURL: baseURL}, nil
}

// Save uploads the image under a fresh object name, keeping only the
// original extension.
func (m *Minio) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	object := uuid.New().String() + filepath.Ext(filename)
	_, err := m.client.PutObject(ctx, m.bucket, object, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return m.baseURL + "/" + m.bucket + "/" + object, nil
}

// Dir stores images in a local directory, served under Prefix. It is
// the fallback when no object store is configured, and what the tests
// use.
type Dir struct {
	Root   string
	Prefix string
}

// Save writes the image to disk under a fresh name
func (d *Dir) Save(_ context.Context, filename string, r io.Reader, _ int64, _ string) (string, error) {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return "", err
	}
	name := uuid.New().String() + filepath.Ext(filename)
	dst, err := os.Create(filepath.Join(d.Root, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}
	return d.Prefix + "/" + name, nil
}
