// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package assistant

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	fetchFunc func(ctx context.Context, name string) ([]byte, error)
	mu        sync.Mutex
	names     []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	f.names = append(f.names, name)
	f.mu.Unlock()
	return f.fetchFunc(ctx, name)
}

func (f *fakeFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...)
}

// echoFetcher returns the object name as the body
func echoFetcher() *fakeFetcher {
	return &fakeFetcher{fetchFunc: func(ctx context.Context, name string) ([]byte, error) {
		return []byte(name), nil
	}}
}

func videos(n int) []VideoRef {
	out := make([]VideoRef, n)
	for i := range out {
		out[i] = VideoRef{Name: fmt.Sprintf("v%d.mp4", i)}
	}
	return out
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestBuildContentParts_CountAndOrder(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d videos", n), func(t *testing.T) {
			a := NewAssembler(echoFetcher())
			parts, errs := a.BuildContentParts(context.Background(), "prompt", videos(n))

			assert.Empty(t, errs)
			require.Len(t, parts, 1+min(n, MaxVideoAttachments))
			assert.True(t, parts[0].IsText())
			assert.Equal(t, "prompt", parts[0].Text)
			for i, p := range parts[1:] {
				require.NotNil(t, p.InlineData)
				assert.Equal(t, VideoMimeType, p.InlineData.MimeType)
				assert.Equal(t, b64(fmt.Sprintf("v%d.mp4", i)), p.InlineData.Data)
			}
		})
	}
}

func TestBuildContentParts_CapAppliedBeforeFetch(t *testing.T) {
	f := echoFetcher()
	a := NewAssembler(f)

	parts, _ := a.BuildContentParts(context.Background(), "p", videos(3))

	require.Len(t, parts, 3)
	assert.ElementsMatch(t, []string{"v0.mp4", "v1.mp4"}, f.fetched())
}

func TestBuildContentParts_FailedAttachmentOmitted(t *testing.T) {
	f := &fakeFetcher{fetchFunc: func(ctx context.Context, name string) ([]byte, error) {
		if name == "v0.mp4" {
			return nil, errors.New("status 404")
		}
		return []byte("ok"), nil
	}}
	a := NewAssembler(f)

	parts, errs := a.BuildContentParts(context.Background(), "p", videos(2))

	require.Len(t, parts, 2)
	assert.Equal(t, b64("ok"), parts[1].InlineData.Data)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrAttachmentFailure)
	assert.Contains(t, errs[0].Error(), "v0.mp4")
}

func TestBuildContentParts_EmptyBodyAndName(t *testing.T) {
	f := &fakeFetcher{fetchFunc: func(ctx context.Context, name string) ([]byte, error) {
		return nil, nil
	}}
	a := NewAssembler(f)

	parts, errs := a.BuildContentParts(context.Background(), "p", []VideoRef{
		{Name: "empty.mp4"},
		{Name: ""},
	})

	assert.Len(t, parts, 1)
	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"empty.mp4"}, f.fetched())
}

func TestBuildContentParts_NoFetcher(t *testing.T) {
	a := NewAssembler(nil)

	parts, errs := a.BuildContentParts(context.Background(), "p", videos(1))

	assert.Len(t, parts, 1)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], errNoFetcher)
}

func TestBuildContentParts_FetchesConcurrently(t *testing.T) {
	var started atomic.Int32
	release := make(chan struct{})
	f := &fakeFetcher{fetchFunc: func(ctx context.Context, name string) ([]byte, error) {
		if started.Add(1) == MaxVideoAttachments {
			close(release)
		}
		select {
		case <-release:
			return []byte(name), nil
		case <-time.After(2 * time.Second):
			return nil, errors.New("fetches did not overlap")
		}
	}}
	a := NewAssembler(f)

	parts, errs := a.BuildContentParts(context.Background(), "p", videos(MaxVideoAttachments))

	assert.Empty(t, errs)
	assert.Len(t, parts, 1+MaxVideoAttachments)
}

func TestCapVideos(t *testing.T) {
	assert.Len(t, CapVideos(nil), 0)
	assert.Len(t, CapVideos(videos(1)), 1)
	assert.Equal(t, videos(3)[:2], CapVideos(videos(3)))
}
