// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package search

import (
	"context"
	"fmt"

	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/utils/option"
)

const (
	// MatchThreshold is the minimum cosine similarity for a forum match
	MatchThreshold = 0.7
	// MatchCount caps the number of rows requested from match_forums
	MatchCount = 1
)

// Match is the best forum discussion for a query. Similarity is kept for
// logging only; prompt assembly reads Content.
type Match struct {
	ID         int64
	Content    string
	Similarity float64
}

// Client finds the single best forum match for a query vector
type Client struct {
	facade database.ForumFacadeInterface
}

// NewClient creates a new search Client
func NewClient(facade database.ForumFacadeInterface) *Client {
	return &Client{facade: facade}
}

// FindBestMatch returns Some(match) when a row clears MatchThreshold, else None.
// Store errors are logged and reported as None.
func (c *Client) FindBestMatch(ctx context.Context, vector []float32) option.Option[Match] {
	m, err := c.FindBestMatchResult(ctx, vector)
	if err != nil {
		log.GlobalLogger().WithContext(ctx).Warnf("Forum similarity search failed: %v", err)
	}
	return m
}

// FindBestMatchResult is FindBestMatch with the store error exposed
func (c *Client) FindBestMatchResult(ctx context.Context, vector []float32) (option.Option[Match], error) {
	if len(vector) == 0 {
		return option.None[Match](), fmt.Errorf("empty query vector")
	}
	rows, err := c.facade.MatchForums(ctx, vector, MatchThreshold, MatchCount)
	if err != nil {
		return option.None[Match](), fmt.Errorf("match forums: %w", err)
	}
	for _, row := range rows {
		// rows below MatchThreshold are never returned, whatever the store sent
		if row == nil || row.Similarity < MatchThreshold || row.Forums == "" {
			continue
		}
		log.GlobalLogger().WithContext(ctx).Debugf("Forum match id=%d similarity=%.3f", row.ID, row.Similarity)
		return option.Some(Match{ID: row.ID, Content: row.Forums, Similarity: row.Similarity}), nil
	}
	return option.None[Match](), nil
}
