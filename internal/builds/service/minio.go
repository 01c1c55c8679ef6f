package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"wardrobe-planner/internal/common/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ============================================================
// MinIO Storage
// ============================================================

type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage подключается к MinIO/S3 и создает бакет, если его нет.
func NewMinioStorage(ctx context.Context, cfg config.MinIOConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket: %w", err)
		}
		log.Printf("[STORAGE] Created bucket %s", cfg.Bucket)
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *MinioStorage) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrArtifactNotFound
		}
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// NewArtifactStore выбирает хранилище: MinIO, если задан MINIO_ENDPOINT,
// иначе локальную папку.
func NewArtifactStore(ctx context.Context, cfg *config.Config) (ArtifactStore, error) {
	if cfg.MinIO.Endpoint == "" {
		log.Printf("[STORAGE] Using local artifacts dir %s", cfg.ArtifactsDir)
		return NewFileStorage(cfg.ArtifactsDir), nil
	}

	store, err := NewMinioStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, err
	}
	log.Printf("[STORAGE] Using MinIO %s, bucket %s", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
	return store, nil
}
