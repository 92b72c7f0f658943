// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package video

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/farmflight/farmflight/pkg/assistant"
	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid video name")
	ErrNotUploaded = errors.New("video has not been uploaded")
)

// Video is a stored video owned by a user
type Video struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadTarget is where a client should PUT a new video
type UploadTarget struct {
	SignedURL string `json:"signedUrl"`
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
}

// Library joins the storage bucket with the video names recorded on user profiles
type Library struct {
	store    storage.Storage
	profiles database.UserProfileFacadeInterface
}

func NewLibrary(store storage.Storage, profiles database.UserProfileFacadeInterface) *Library {
	return &Library{store: store, profiles: profiles}
}

// EnsureBucket creates the video bucket if it is missing
func (l *Library) EnsureBucket(ctx context.Context) (bool, error) {
	created, err := l.store.EnsureBucket(ctx)
	if err != nil {
		return false, err
	}
	if created {
		log.Infof("Created video bucket %s", l.store.Bucket())
	}
	return created, nil
}

// List returns the stored videos recorded on userID's profile, in bucket order
func (l *Library) List(ctx context.Context, userID string) ([]Video, error) {
	profile, err := l.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil || len(profile.Videos) == 0 {
		return []Video{}, nil
	}

	if _, err := l.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	objects, err := l.store.ListObjects(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	videos := make([]Video, 0, len(profile.Videos))
	for _, obj := range objects {
		if !profile.HasVideo(obj.Key) {
			continue
		}
		videos = append(videos, Video{
			Name:      obj.Key,
			URL:       l.store.PublicURL(obj.Key),
			CreatedAt: obj.LastModified,
		})
	}
	return videos, nil
}

// Refs returns userID's videos as chat attachments
func (l *Library) Refs(ctx context.Context, userID string) ([]assistant.VideoRef, error) {
	videos, err := l.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs := make([]assistant.VideoRef, 0, len(videos))
	for _, v := range videos {
		refs = append(refs, assistant.VideoRef{Name: v.Name})
	}
	return refs, nil
}

// UploadTarget reserves a unique object path for filename and presigns a PUT to it
func (l *Library) UploadTarget(ctx context.Context, filename string) (*UploadTarget, error) {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return nil, ErrInvalidName
	}
	if _, err := l.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	key := fmt.Sprintf("%s-%s", uuid.NewString(), base)
	signed, err := l.store.PresignUpload(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &UploadTarget{
		SignedURL: signed,
		Path:      key,
		PublicURL: l.store.PublicURL(key),
	}, nil
}

// Add records name on userID's profile once the object is in the bucket
func (l *Library) Add(ctx context.Context, userID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	exists, err := l.store.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check object: %w", err)
	}
	if !exists {
		return ErrNotUploaded
	}
	return l.profiles.AppendVideo(ctx, userID, name)
}

// Delete removes the object and its profile entry. Only videos recorded on
// userID's profile can be deleted.
func (l *Library) Delete(ctx context.Context, userID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	profile, err := l.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if profile == nil || !profile.HasVideo(name) {
		return database.ErrNotFound
	}
	if err := l.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	if err := l.profiles.RemoveVideo(ctx, userID, name); err != nil {
		return fmt.Errorf("remove from profile: %w", err)
	}
	return nil
}
