// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package video

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/farmflight/farmflight/pkg/storage"
)

// MaxVideoBytes bounds one attachment. Two attachments stay under the 20 MB
// inline request limit of the generation API after base64.
const MaxVideoBytes = 7 << 20

var ErrTooLarge = errors.New("video exceeds size limit")

// Fetcher reads attachment bytes from the video bucket
type Fetcher struct {
	store    storage.Storage
	maxBytes int64
}

func NewFetcher(store storage.Storage) *Fetcher {
	return &Fetcher{store: store, maxBytes: MaxVideoBytes}
}

// Fetch returns the object stored under name. Objects larger than
// MaxVideoBytes and empty objects are errors.
func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	reader, err := f.store.Download(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read video: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, name, f.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to fetch video: empty body")
	}
	return data, nil
}
