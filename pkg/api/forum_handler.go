// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"

	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/gin-gonic/gin"
	"github.com/pgvector/pgvector-go"
)

// CreateForumRequest adds a discussion to the retrieval corpus
type CreateForumRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

// CreateForum embeds a forum discussion and stores it for similarity search
func (h *Handler) CreateForum(c *gin.Context) {
	var req CreateForumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if h.Embedder == nil || h.Forums == nil {
		respondWithError(c, http.StatusServiceUnavailable, ErrCodeNotConfigured, "Forum ingest is not configured")
		return
	}

	vec, err := h.Embedder.Embed(c.Request.Context(), req.Content)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error embedding forum content: %v", err)
		respondWithError(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Embedding service unavailable")
		return
	}

	forum := &model.Forum{
		Title:     req.Title,
		Content:   req.Content,
		Embedding: pgvector.NewVector(vec),
	}
	if err := h.Forums.Create(c.Request.Context(), forum); err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error storing forum: %v", err)
		respondInternalError(c, err.Error())
		return
	}

	log.GlobalLogger().WithContext(c).Infof("Stored forum id=%d by user=%s", forum.ID, currentUser(c).UserID)
	c.JSON(http.StatusCreated, gin.H{"id": forum.ID})
}
