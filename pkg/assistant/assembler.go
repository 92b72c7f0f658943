// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/farmflight/farmflight/pkg/generation"
	"github.com/farmflight/farmflight/pkg/logger/log"
)

const (
	// MaxVideoAttachments caps the videos attached to one chat turn
	MaxVideoAttachments = 2

	VideoMimeType = "video/mp4"
)

var errNoFetcher = errors.New("no video fetcher configured")

// VideoRef names a stored video object
type VideoRef struct {
	Name string `json:"name"`
}

// Fetcher reads attachment bytes for a stored object name
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Assembler turns a prompt and video references into generation content parts
type Assembler struct {
	fetcher Fetcher
}

func NewAssembler(fetcher Fetcher) *Assembler {
	return &Assembler{fetcher: fetcher}
}

// CapVideos keeps the first MaxVideoAttachments entries
func CapVideos(videos []VideoRef) []VideoRef {
	if len(videos) > MaxVideoAttachments {
		return videos[:MaxVideoAttachments]
	}
	return videos
}

// BuildContentParts returns the text part followed by one inline part per
// successfully fetched video, in input order. Videos past MaxVideoAttachments
// are dropped before fetching. Failed fetches are omitted and returned as
// ErrAttachmentFailure stage errors.
func (a *Assembler) BuildContentParts(ctx context.Context, prompt string, videos []VideoRef) ([]generation.Part, []error) {
	videos = CapVideos(videos)

	slots := make([]*generation.Part, len(videos))
	failures := make([]error, len(videos))

	var wg sync.WaitGroup
	for i, v := range videos {
		wg.Add(1)
		go func(i int, v VideoRef) {
			defer wg.Done()
			data, err := a.fetch(ctx, v)
			if err != nil {
				log.GlobalLogger().WithContext(ctx).Warnf("Skipping video %s: %v", v.Name, err)
				failures[i] = newStageError(ErrAttachmentFailure, fmt.Errorf("video %s: %w", v.Name, err))
				return
			}
			part := generation.InlinePart(VideoMimeType, data)
			slots[i] = &part
		}(i, v)
	}
	wg.Wait()

	parts := make([]generation.Part, 0, 1+len(videos))
	parts = append(parts, generation.TextPart(prompt))
	var errs []error
	for i := range videos {
		if slots[i] != nil {
			parts = append(parts, *slots[i])
		}
		if failures[i] != nil {
			errs = append(errs, failures[i])
		}
	}
	return parts, errs
}

func (a *Assembler) fetch(ctx context.Context, v VideoRef) ([]byte, error) {
	if a.fetcher == nil {
		return nil, errNoFetcher
	}
	if v.Name == "" {
		return nil, errors.New("empty video name")
	}
	data, err := a.fetcher.Fetch(ctx, v.Name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty video body")
	}
	return data, nil
}
