// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

const TableNameForums = "forums"

// EmbeddingDimension is the vector width of the forum corpus (gte-small)
const EmbeddingDimension = 384

// Forum is one embedded forum discussion in the retrieval corpus
type Forum struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Title string `gorm:"column:title;not null;default:''" json:"title"`
	// Content is stored in the "forums" column read by match_forums
	Content string `gorm:"column:forums;not null" json:"forums"`

	// Semantic search (not exposed in JSON response)
	Embedding pgvector.Vector `gorm:"column:embedding;type:vector(384)" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name
func (*Forum) TableName() string {
	return TableNameForums
}
