// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/storage"
	"github.com/farmflight/farmflight/pkg/video"
	"github.com/gin-gonic/gin"
)

// PrepareVideoUploadRequest asks for an upload URL, or only ensures the bucket
type PrepareVideoUploadRequest struct {
	GetUploadURL bool   `json:"getUploadUrl"`
	Filename     string `json:"filename"`
}

// AddVideoRequest records an uploaded video on the profile
type AddVideoRequest struct {
	VideoFileName string `json:"videoFileName"`
}

// DeleteVideoRequest removes a video
type DeleteVideoRequest struct {
	FileName string `json:"fileName"`
}

// ListVideos returns the signed-in user's videos
func (h *Handler) ListVideos(c *gin.Context) {
	user := currentUser(c)
	videos, err := h.Videos.List(c.Request.Context(), user.UserID)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error listing videos: %v", err)
		respondInternalError(c, "Failed to list videos")
		return
	}
	c.JSON(http.StatusOK, videos)
}

// PrepareVideoUpload returns a presigned upload target, or ensures the bucket exists
func (h *Handler) PrepareVideoUpload(c *gin.Context) {
	var req PrepareVideoUploadRequest
	// An empty body only checks the bucket
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.GetUploadURL {
		if strings.TrimSpace(req.Filename) == "" {
			respondBadRequest(c, "Filename is required for upload URL")
			return
		}
		target, err := h.Videos.UploadTarget(c.Request.Context(), req.Filename)
		if err != nil {
			log.GlobalLogger().WithContext(c).Errorf("Error generating upload URL: %v", err)
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"signedUrl": target.SignedURL,
			"path":      target.Path,
			"publicUrl": target.PublicURL,
			"message":   "Upload URL generated successfully",
		})
		return
	}

	created, err := h.Videos.EnsureBucket(c.Request.Context())
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error creating bucket: %v", err)
		respondInternalError(c, "Failed to create videos bucket")
		return
	}
	if created {
		c.JSON(http.StatusOK, gin.H{"message": "Videos bucket created successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Videos bucket exists"})
}

// AddVideo records an uploaded video on the user's profile
func (h *Handler) AddVideo(c *gin.Context) {
	var req AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.VideoFileName) == "" {
		respondBadRequest(c, "videoFileName is required")
		return
	}

	user := currentUser(c)
	if err := h.Videos.Add(c.Request.Context(), user.UserID, req.VideoFileName); err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error updating user profile: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video added to user profile successfully"})
}

// DeleteVideo deletes a video object and removes it from the profile
func (h *Handler) DeleteVideo(c *gin.Context) {
	var req DeleteVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.FileName) == "" {
		respondBadRequest(c, "fileName is required")
		return
	}

	user := currentUser(c)
	if err := h.Videos.Delete(c.Request.Context(), user.UserID, req.FileName); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, ErrCodeVideoNotFound, "Video not found")
			return
		}
		log.GlobalLogger().WithContext(c).Errorf("Error deleting video: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func localKey(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}

// ServeLocalFile serves an object from local storage
func (h *Handler) ServeLocalFile(c *gin.Context) {
	path, err := h.LocalFiles.Path(localKey(c))
	if err != nil {
		respondNotFound(c, "File")
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		respondNotFound(c, "File")
		return
	}
	c.File(path)
}

// UploadLocalFile accepts a PUT of a new object into local storage. The
// token query parameter must be an upload token signed for the key.
func (h *Handler) UploadLocalFile(c *gin.Context) {
	key := localKey(c)
	if err := h.Tokens.VerifyUpload(c.Query("token"), key); err != nil {
		log.GlobalLogger().WithContext(c).Warnf("Rejected upload to %s: %v", key, err)
		respondWithError(c, http.StatusForbidden, ErrCodeForbidden, "Upload token is missing or invalid")
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, video.MaxVideoBytes)
	if err := h.LocalFiles.Upload(c.Request.Context(), key, body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, storage.ErrInvalidKey):
			respondInvalidParameter(c, "key")
		case errors.Is(err, storage.ErrObjectExists):
			respondWithError(c, http.StatusConflict, ErrCodeConflict, "Object already exists")
		case errors.As(err, &tooLarge):
			respondWithError(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "Video is too large")
		default:
			respondInternalError(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": key})
}
