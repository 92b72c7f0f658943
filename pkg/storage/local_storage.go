// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package storage

import (
	"context"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidKey is returned for keys escaping the storage root
	ErrInvalidKey = errors.New("invalid object key")
	// ErrObjectExists is returned when an upload targets an existing key
	ErrObjectExists = errors.New("object already exists")
	// ErrNoUploadSigner is returned by PresignUpload when uploads cannot be signed
	ErrNoUploadSigner = errors.New("no upload signer configured")
)

// UploadSigner issues a short-lived token granting an upload of one key
type UploadSigner interface {
	SignUpload(key string) (string, error)
}

// LocalStorage implements Storage on the local filesystem.
// Objects live under basePath/bucket and are served by the API at baseURL.
type LocalStorage struct {
	root    string
	bucket  string
	baseURL string
	signer  UploadSigner
}

// NewLocalStorage creates a new LocalStorage
func NewLocalStorage(basePath, bucket, baseURL string) (*LocalStorage, error) {
	if basePath == "" {
		return nil, errors.New("local storage path is required")
	}
	return &LocalStorage{
		root:    filepath.Join(basePath, bucket),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Bucket returns the bucket name
func (l *LocalStorage) Bucket() string {
	return l.bucket
}

// SetUploadSigner sets the signer used by PresignUpload
func (l *LocalStorage) SetUploadSigner(signer UploadSigner) {
	l.signer = signer
}

// Root returns the directory holding the objects
func (l *LocalStorage) Root() string {
	return l.root
}

// Path resolves key to a file path inside the storage root
func (l *LocalStorage) Path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", ErrInvalidKey
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

// EnsureBucket creates the storage directory
func (l *LocalStorage) EnsureBucket(ctx context.Context) (bool, error) {
	if _, err := os.Stat(l.root); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return false, errors.Wrapf(err, "create directory %s", l.root)
	}
	return true, nil
}

// Upload writes reader to a new file for key. Existing objects are never
// overwritten; a failed write leaves no file behind.
func (l *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader) error {
	path, err := l.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", key)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrObjectExists
		}
		return errors.Wrapf(err, "create file for %s", key)
	}

	_, err = io.Copy(f, reader)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return errors.Wrapf(err, "write file for %s", key)
	}
	return nil
}

// Download opens the file for key
func (l *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.Path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", key)
	}
	return f, nil
}

// Delete removes the file for key. Missing files are not an error.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := l.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}

// Exists checks if the file for key exists
func (l *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.Path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat %s", key)
}

// PresignUpload returns the URL the API accepts a PUT of key on, carrying
// a signed upload token
func (l *LocalStorage) PresignUpload(ctx context.Context, key string) (string, error) {
	if _, err := l.Path(key); err != nil {
		return "", err
	}
	if l.signer == nil {
		return "", ErrNoUploadSigner
	}
	token, err := l.signer.SignUpload(key)
	if err != nil {
		return "", errors.Wrapf(err, "sign upload %s", key)
	}
	return l.PublicURL(key) + "?token=" + url.QueryEscape(token), nil
}

// PublicURL returns the served URL of key
func (l *LocalStorage) PublicURL(key string) string {
	return joinURL(l.baseURL, key)
}

// ListObjects walks the storage root for files under prefix
func (l *LocalStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == l.root {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, ObjectInfo{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list objects")
	}
	return objects, nil
}
