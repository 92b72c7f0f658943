// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"errors"
	"net/http"

	"github.com/farmflight/farmflight/pkg/assistant"
	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/profile"
	"github.com/farmflight/farmflight/pkg/video"
	"github.com/gin-gonic/gin"
)

// ErrorCode defines standard error codes for the API
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeTooLarge         ErrorCode = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotConfigured      ErrorCode = "SERVICE_NOT_CONFIGURED"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Business logic errors
	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProfileExists   ErrorCode = "PROFILE_ALREADY_EXISTS"
	ErrCodeVideoNotFound   ErrorCode = "VIDEO_NOT_FOUND"
	ErrCodeInvalidVideo    ErrorCode = "INVALID_VIDEO_NAME"
)

const (
	msgGenerationFailed = "Failed to generate AI response"
	msgWeatherFailed    = "Failed to fetch weather data"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// FallbackResponse is returned when the model could not answer
type FallbackResponse struct {
	Error    string `json:"error"`
	Response string `json:"response"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, errorCode ErrorCode, message string) {
	response := ErrorResponse{
		ErrorCode:    string(errorCode),
		ErrorMessage: message,
	}
	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request error
func respondBadRequest(c *gin.Context, message string, detail ...string) {
	if len(detail) > 0 {
		message = message + ": " + detail[0]
	}
	respondWithError(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// respondInvalidParameter sends a 400 Bad Request error for invalid parameters
func respondInvalidParameter(c *gin.Context, paramName string, detail ...string) {
	message := "Invalid parameter: " + paramName
	if len(detail) > 0 {
		message = message + ". " + detail[0]
	}
	respondWithError(c, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// respondNotFound sends a 404 Not Found error
func respondNotFound(c *gin.Context, resource string) {
	message := resource + " not found"
	respondWithError(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// respondInternalError sends a 500 Internal Server Error
func respondInternalError(c *gin.Context, detail ...string) {
	message := "Internal server error"
	if len(detail) > 0 {
		message = message + ": " + detail[0]
	}
	respondWithError(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// respondGenerationFailure sends the chat fallback with a 500 status
func respondGenerationFailure(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, FallbackResponse{
		Error:    msgGenerationFailed,
		Response: assistant.FallbackMessage,
	})
}

// respondServiceError maps service errors to standardized HTTP error responses
func respondServiceError(c *gin.Context, err error) {
	var verr *profile.ValidationError
	switch {
	case errors.As(err, &verr):
		respondBadRequest(c, verr.Message)
	case errors.Is(err, database.ErrNotFound):
		respondWithError(c, http.StatusNotFound, ErrCodeProfileNotFound, "Profile not found")
	case errors.Is(err, database.ErrDuplicate):
		respondWithError(c, http.StatusConflict, ErrCodeProfileExists, "Profile already exists")
	case errors.Is(err, video.ErrInvalidName):
		respondWithError(c, http.StatusBadRequest, ErrCodeInvalidVideo, "Invalid video name")
	case errors.Is(err, video.ErrNotUploaded):
		respondWithError(c, http.StatusNotFound, ErrCodeVideoNotFound, "Video not found")
	case errors.Is(err, assistant.ErrGenerationFailure):
		respondGenerationFailure(c)
	default:
		respondInternalError(c, err.Error())
	}
}
