// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package video

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	getFunc   func(ctx context.Context, userID string) (*model.UserProfile, error)
	appended  []string
	removed   []string
	appendErr error
	removeErr error
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	return f.getFunc(ctx, userID)
}

func (f *fakeProfiles) Create(ctx context.Context, profile *model.UserProfile) error {
	return nil
}

func (f *fakeProfiles) AppendVideo(ctx context.Context, userID, name string) error {
	f.appended = append(f.appended, name)
	return f.appendErr
}

func (f *fakeProfiles) RemoveVideo(ctx context.Context, userID, name string) error {
	f.removed = append(f.removed, name)
	return f.removeErr
}

type keySigner struct{}

// SignUpload returns a token naming the uuid prefix of key
func (keySigner) SignUpload(key string) (string, error) {
	return "signed-" + key[:36], nil
}

func profileWith(videos ...string) *fakeProfiles {
	return &fakeProfiles{getFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
		return &model.UserProfile{UserID: userID, Videos: videos}, nil
	}}
}

func newTestLibrary(t *testing.T, profiles database.UserProfileFacadeInterface) (*Library, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "videos", "http://files.test")
	require.NoError(t, err)
	return NewLibrary(store, profiles), store
}

func TestLibrary_ListFiltersByProfile(t *testing.T) {
	ctx := context.Background()
	lib, store := newTestLibrary(t, profileWith("a.mp4", "c.mp4"))
	require.NoError(t, store.Upload(ctx, "a.mp4", strings.NewReader("a")))
	require.NoError(t, store.Upload(ctx, "b.mp4", strings.NewReader("b")))
	require.NoError(t, store.Upload(ctx, "c.mp4", strings.NewReader("c")))

	videos, err := lib.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "a.mp4", videos[0].Name)
	assert.Equal(t, "http://files.test/a.mp4", videos[0].URL)
	assert.False(t, videos[0].CreatedAt.IsZero())
	assert.Equal(t, "c.mp4", videos[1].Name)

	refs, err := lib.Refs(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "c.mp4", refs[1].Name)
}

func TestLibrary_ListWithoutProfile(t *testing.T) {
	profiles := &fakeProfiles{getFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
		return nil, nil
	}}
	lib, _ := newTestLibrary(t, profiles)

	videos, err := lib.List(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestLibrary_ListProfileError(t *testing.T) {
	profiles := &fakeProfiles{getFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
		return nil, errors.New("db down")
	}}
	lib, _ := newTestLibrary(t, profiles)

	_, err := lib.List(context.Background(), "u-1")
	assert.Error(t, err)
}

func TestLibrary_UploadTarget(t *testing.T) {
	lib, store := newTestLibrary(t, profileWith())
	store.SetUploadSigner(keySigner{})

	target, err := lib.UploadTarget(context.Background(), "dir/field scan.mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(target.Path, "-field scan.mp4"))
	assert.Len(t, strings.TrimSuffix(target.Path, "-field scan.mp4"), 36)
	assert.Contains(t, target.PublicURL, "field%20scan.mp4")
	assert.Equal(t, target.PublicURL+"?token=signed-"+target.Path[:36], target.SignedURL)

	_, err = lib.UploadTarget(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestLibrary_Add(t *testing.T) {
	ctx := context.Background()
	profiles := profileWith()
	lib, store := newTestLibrary(t, profiles)
	require.NoError(t, store.Upload(ctx, "a.mp4", strings.NewReader("a")))

	require.NoError(t, lib.Add(ctx, "u-1", "a.mp4"))
	assert.Equal(t, []string{"a.mp4"}, profiles.appended)

	assert.ErrorIs(t, lib.Add(ctx, "u-1", "never-uploaded.mp4"), ErrNotUploaded)
	assert.ErrorIs(t, lib.Add(ctx, "u-1", " "), ErrInvalidName)
	assert.Equal(t, []string{"a.mp4"}, profiles.appended)
}

func TestLibrary_Delete(t *testing.T) {
	ctx := context.Background()
	profiles := profileWith("a.mp4")
	lib, store := newTestLibrary(t, profiles)
	require.NoError(t, store.Upload(ctx, "a.mp4", strings.NewReader("a")))

	require.NoError(t, lib.Delete(ctx, "u-1", "a.mp4"))
	exists, err := store.Exists(ctx, "a.mp4")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, []string{"a.mp4"}, profiles.removed)

	assert.ErrorIs(t, lib.Delete(ctx, "u-1", "other.mp4"), database.ErrNotFound)
	assert.ErrorIs(t, lib.Delete(ctx, "u-1", ""), ErrInvalidName)
}
