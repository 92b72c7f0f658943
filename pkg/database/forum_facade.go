// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"

	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ForumFacadeInterface defines the interface for forum corpus operations
type ForumFacadeInterface interface {
	Create(ctx context.Context, forum *model.Forum) error
	MatchForums(ctx context.Context, queryEmbedding []float32, threshold float64, count int) ([]*ForumMatch, error)
}

// ForumMatch is one row returned by match_forums
type ForumMatch struct {
	ID         int64   `json:"id"`
	Forums     string  `json:"forums"`
	Similarity float64 `json:"similarity"`
}

// ForumFacade implements ForumFacadeInterface
type ForumFacade struct {
	db *gorm.DB
}

var _ ForumFacadeInterface = (*ForumFacade)(nil)

// NewForumFacade creates a new ForumFacade
func NewForumFacade(db *gorm.DB) *ForumFacade {
	return &ForumFacade{db: db}
}

// Create stores a forum discussion with its embedding
func (f *ForumFacade) Create(ctx context.Context, forum *model.Forum) error {
	if len(forum.Embedding.Slice()) == 0 {
		return f.db.WithContext(ctx).Omit("Embedding").Create(forum).Error
	}
	return f.db.WithContext(ctx).Create(forum).Error
}

// MatchForums calls the match_forums database function: rows whose cosine
// similarity to queryEmbedding is at least threshold, best first, at most count
func (f *ForumFacade) MatchForums(ctx context.Context, queryEmbedding []float32, threshold float64, count int) ([]*ForumMatch, error) {
	var results []*ForumMatch

	vectorStr := pgvector.NewVector(queryEmbedding).String()
	err := f.db.WithContext(ctx).
		Raw(`SELECT id, forums, similarity FROM match_forums(?::vector, ?, ?)`, vectorStr, threshold, count).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
