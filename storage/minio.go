package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const minioInitTimeout = 5 * time.Second

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to MinIO and creates the bucket when it doesn't exist
func NewMinioStorage(ctx context.Context, opts MinioOptions) (*MinioStorage, error) {
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, errors.New("MINIO_ACCESS_KEY / MINIO_SECRET_KEY are not set")
	}
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	if err = cli.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := cli.BucketExists(ctx, opts.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("minio bucket %s: %w", opts.Bucket, err)
		}
	}
	return &MinioStorage{client: cli, bucket: opts.Bucket}, nil
}

func (s *MinioStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, mimeType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = -1
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	return err
}

func (s *MinioStorage) Load(ctx context.Context, key string, writer io.Writer) (int64, error) {
	key, err := cleanKey(key)
	if err != nil {
		return 0, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, err
	}
	defer obj.Close()
	return io.Copy(writer, obj)
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioStorage) String() string {
	return "minio:" + s.client.EndpointURL().Host + "/" + s.bucket
}
