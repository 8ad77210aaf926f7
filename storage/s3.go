package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // S3 compatible services only
	Prefix    string
	AccessKey string
	SecretKey string
}

type S3Storage struct {
	opts     S3Options
	s3Client *s3.S3
}

func NewS3Storage(opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, errors.New("S3_BUCKET is not set")
	}
	cfg := aws.NewConfig().WithRegion(opts.Region)
	if opts.AccessKey != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, ""))
	}
	if opts.Endpoint != "" {
		cfg = cfg.WithEndpoint(opts.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}
	return &S3Storage{
		opts:     opts,
		s3Client: s3.New(sess),
	}, nil
}

func (s *S3Storage) remotePath(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return path.Join(s.opts.Prefix, key), nil
}

func (s *S3Storage) Save(ctx context.Context, key string, reader io.Reader, size int64, mimeType string) error {
	remote, err := s.remotePath(key)
	if err != nil {
		return err
	}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(remote),
		ContentType: aws.String(mimeType),
		Body:        reader,
	})
	return err
}

func (s *S3Storage) Load(ctx context.Context, key string, writer io.Writer) (int64, error) {
	remote, err := s.remotePath(key)
	if err != nil {
		return 0, err
	}
	resp, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(remote),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	remote, err := s.remotePath(key)
	if err != nil {
		return err
	}
	_, err = s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(remote),
	})
	return err
}

func (s *S3Storage) String() string {
	return "s3:" + s.opts.Bucket + "/" + s.opts.Prefix
}
