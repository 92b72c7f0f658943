// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/farmflight/farmflight/pkg/assistant"
	"github.com/farmflight/farmflight/pkg/auth"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/profile"
	"github.com/farmflight/farmflight/pkg/weather"
	"github.com/gin-gonic/gin"
)

// ChatRequest is the chat body. FarmContext is derived from the signed-in
// user's profile when omitted. Attachments always come from the user's own
// stored videos, never from the request.
type ChatRequest struct {
	UserQuery   string                 `json:"userQuery"`
	Prompt      string                 `json:"prompt"`
	FarmContext *assistant.FarmContext `json:"farmContext"`
}

// ChatResponse is a successful chat answer
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat answers an agricultural question
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	query := strings.TrimSpace(req.UserQuery)
	if query == "" {
		query = strings.TrimSpace(req.Prompt)
	}
	if query == "" {
		respondBadRequest(c, "Prompt is required")
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	turn := assistant.Request{Query: query, Videos: h.videosFor(ctx, user)}
	if req.FarmContext != nil {
		turn.FarmContext = *req.FarmContext
	} else {
		turn.FarmContext = h.farmContextFor(ctx, user)
	}

	result, err := h.Assistant.Answer(ctx, turn)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error generating AI response: %v", err)
		respondGenerationFailure(c)
		return
	}

	log.GlobalLogger().WithContext(c).Debugf("Chat transitions: %v", result.Transitions)
	c.JSON(http.StatusOK, ChatResponse{Response: result.Text})
}

// farmContextFor builds the farm context from the user's profile and the weather at it.
// Missing pieces render as Unknown in the prompt.
func (h *Handler) farmContextFor(ctx context.Context, user *auth.Identity) assistant.FarmContext {
	if user == nil || h.Profiles == nil {
		return assistant.FarmContext{}
	}
	p, err := h.Profiles.Get(ctx, user.UserID)
	if err != nil {
		log.GlobalLogger().WithContext(ctx).Debugf("No profile for chat context: %v", err)
		return assistant.FarmContext{}
	}
	return profile.FarmContext(p, h.currentWeatherAt(ctx, p))
}

func (h *Handler) currentWeatherAt(ctx context.Context, p *model.UserProfile) *weather.Current {
	lat, long, ok := profile.Coordinates(p)
	if !ok || h.Weather == nil {
		return nil
	}
	cur, err := h.Weather.Current(ctx, lat, long)
	if err != nil {
		log.GlobalLogger().WithContext(ctx).Warnf("Weather unavailable for chat context: %v", err)
		return nil
	}
	return cur
}

func (h *Handler) videosFor(ctx context.Context, user *auth.Identity) []assistant.VideoRef {
	if user == nil || h.Videos == nil {
		return nil
	}
	refs, err := h.Videos.Refs(ctx, user.UserID)
	if err != nil {
		log.GlobalLogger().WithContext(ctx).Warnf("Error fetching videos: %v", err)
		return nil
	}
	return refs
}
