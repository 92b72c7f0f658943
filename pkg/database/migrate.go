// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"fmt"

	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"gorm.io/gorm"
)

const matchForumsFunction = `
CREATE OR REPLACE FUNCTION match_forums(query_embedding vector(%d), match_threshold float, match_count int)
RETURNS TABLE (id bigint, forums text, similarity float)
LANGUAGE sql STABLE
AS $$
  SELECT f.id, f.forums, 1 - (f.embedding <=> query_embedding) AS similarity
  FROM forums f
  WHERE f.embedding IS NOT NULL
    AND 1 - (f.embedding <=> query_embedding) >= match_threshold
  ORDER BY f.embedding <=> query_embedding
  LIMIT match_count;
$$`

// Migrate creates the pgvector extension, tables, the cosine index and the
// match_forums function
func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	if err := tx.AutoMigrate(&model.Forum{}, &model.UserProfile{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS forums_embedding_idx ON forums USING hnsw (embedding vector_cosine_ops)").Error; err != nil {
		return fmt.Errorf("create forums embedding index: %w", err)
	}
	if err := tx.Exec(fmt.Sprintf(matchForumsFunction, model.EmbeddingDimension)).Error; err != nil {
		return fmt.Errorf("create match_forums: %w", err)
	}
	log.Infof("Database migrated: tables=%s,%s", model.TableNameForums, model.TableNameUserProfiles)
	return nil
}
