package storage

import (
	"attendance/config"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	StorageTypeNone  = "none"
	StorageTypeDisk  = "disk"
	StorageTypeS3    = "s3"
	StorageTypeMinio = "minio"
)

var (
	ErrInvalidKey = errors.New("invalid storage key")
	ErrNoSpace    = errors.New("not enough free space")
)

// StorageAPI keeps attendance snapshots
type StorageAPI interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64, mimeType string) error
	Load(ctx context.Context, key string, writer io.Writer) (int64, error)
	Delete(ctx context.Context, key string) error
	String() string
}

// Init creates the storage selected by SNAPSHOT_STORAGE, nil when snapshots are disabled
func Init() (StorageAPI, error) {
	switch strings.ToLower(config.SNAPSHOT_STORAGE) {
	case "", StorageTypeNone:
		return nil, nil
	case StorageTypeDisk:
		s, err := NewDiskStorage(config.SNAPSHOT_DIR)
		if err != nil {
			return nil, err
		}
		return s, nil
	case StorageTypeS3:
		s, err := NewS3Storage(S3Options{
			Bucket:    config.S3_BUCKET,
			Region:    config.S3_REGION,
			Endpoint:  config.S3_ENDPOINT,
			Prefix:    config.S3_PREFIX,
			AccessKey: config.S3_ACCESS_KEY,
			SecretKey: config.S3_SECRET_KEY,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case StorageTypeMinio:
		ctx, cancel := context.WithTimeout(context.Background(), minioInitTimeout)
		defer cancel()
		s, err := NewMinioStorage(ctx, MinioOptions{
			Endpoint:  config.MINIO_ENDPOINT,
			AccessKey: config.MINIO_ACCESS_KEY,
			SecretKey: config.MINIO_SECRET_KEY,
			Bucket:    config.MINIO_BUCKET,
			UseSSL:    config.MINIO_USE_SSL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown snapshot storage %q", config.SNAPSHOT_STORAGE)
}

// NewKey returns a unique object key for a snapshot of a student in a session
func NewKey(sessionID, studentID uint64) string {
	return fmt.Sprintf("session/%d/student/%d/%s.jpg", sessionID, studentID, uuid.NewString())
}

// cleanKey rejects absolute keys and keys escaping the storage root
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
