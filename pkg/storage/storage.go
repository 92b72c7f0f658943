// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/farmflight/farmflight/pkg/config"
)

// Storage defines the interface for video object storage
type Storage interface {
	// Download opens an object for reading
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete deletes an object
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL returns the unauthenticated URL of an object in the public bucket
	PublicURL(key string) string

	// PresignUpload returns a time-limited URL accepting an HTTP PUT of the object
	PresignUpload(ctx context.Context, key string) (string, error)

	// ListObjects lists all objects with the given prefix
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// EnsureBucket creates the bucket with public read access if it is missing.
	// Returns true when the bucket was created by this call.
	EnsureBucket(ctx context.Context) (bool, error)

	// Bucket returns the bucket name
	Bucket() string
}

// ObjectInfo represents information about a stored object
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

const defaultURLExpiry = time.Hour

// NewStorage creates a new Storage instance based on configuration
func NewStorage(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(S3Config{
			Endpoint:        cfg.Endpoint,
			PublicURL:       cfg.PublicURL,
			Region:          cfg.Region,
			Bucket:          cfg.Bucket,
			AccessKeyID:     cfg.AccessKey,
			SecretAccessKey: cfg.SecretKey,
			UsePathStyle:    cfg.Endpoint != "",
			URLExpiry:       defaultURLExpiry,
		})
	case "minio":
		return NewMinioStorage(MinioConfig{
			Endpoint:  cfg.Endpoint,
			PublicURL: cfg.PublicURL,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			URLExpiry: defaultURLExpiry,
		})
	case "local", "":
		baseURL := cfg.PublicURL
		if baseURL == "" {
			baseURL = "http://localhost:8080/files"
		}
		return NewLocalStorage(cfg.LocalPath, cfg.Bucket, baseURL)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// joinURL appends escaped key segments to base
func joinURL(base string, segments ...string) string {
	out := strings.TrimSuffix(base, "/")
	for _, s := range segments {
		for _, part := range strings.Split(s, "/") {
			out += "/" + url.PathEscape(part)
		}
	}
	return out
}

// publicReadPolicy grants anonymous GetObject on every object in bucket
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}
