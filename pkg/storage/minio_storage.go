// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// MinioStorage implements Storage on a MinIO server
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	urlExpiry time.Duration
}

// MinioConfig contains MinIO configuration
type MinioConfig struct {
	Endpoint  string
	PublicURL string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLExpiry time.Duration
}

// NewMinioStorage creates a new MinioStorage
func NewMinioStorage(cfg MinioConfig) (*MinioStorage, error) {
	host, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	if host == "" {
		return nil, errors.New("minio endpoint is required")
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	urlExpiry := cfg.URLExpiry
	if urlExpiry == 0 {
		urlExpiry = defaultURLExpiry
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		publicURL = scheme + "://" + host
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: joinURL(publicURL, cfg.Bucket),
		urlExpiry: urlExpiry,
	}, nil
}

// splitEndpoint accepts either host:port or a full URL
func splitEndpoint(endpoint string, useSSL bool) (string, bool) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, useSSL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", useSSL
	}
	return u.Host, u.Scheme == "https"
}

// Bucket returns the bucket name
func (m *MinioStorage) Bucket() string {
	return m.bucket
}

// EnsureBucket creates the bucket with an anonymous read policy if it doesn't exist
func (m *MinioStorage) EnsureBucket(ctx context.Context) (bool, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return false, errors.Wrapf(err, "check bucket %s", m.bucket)
	}
	if exists {
		return false, nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return false, errors.Wrapf(err, "create bucket %s", m.bucket)
	}
	if err := m.client.SetBucketPolicy(ctx, m.bucket, publicReadPolicy(m.bucket)); err != nil {
		log.Warnf("Bucket %s created but public read policy failed: %v", m.bucket, err)
	}
	return true, nil
}

// Download opens an object for reading
func (m *MinioStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object %s", key)
	}
	return obj, nil
}

// Delete removes an object
func (m *MinioStorage) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	return errors.Wrapf(err, "remove object %s", key)
}

// Exists checks if an object exists
func (m *MinioStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat object %s", key)
}

// PresignUpload returns a presigned PUT URL
func (m *MinioStorage) PresignUpload(ctx context.Context, key string) (string, error) {
	u, err := m.client.PresignedPutObject(ctx, m.bucket, key, m.urlExpiry)
	if err != nil {
		return "", errors.Wrapf(err, "presign put %s", key)
	}
	return u.String(), nil
}

// PublicURL returns the anonymous URL of key
func (m *MinioStorage) PublicURL(key string) string {
	return joinURL(m.publicURL, key)
}

// ListObjects lists all objects with the given prefix
func (m *MinioStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, "list objects")
		}
		objects = append(objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return objects, nil
}
