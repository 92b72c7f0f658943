// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"

	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/profile"
	"github.com/gin-gonic/gin"
)

// GetProfile returns the signed-in user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user := currentUser(c)
	p, err := h.Profiles.Get(c.Request.Context(), user.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Onboard creates the signed-in user's profile from the onboarding form
func (h *Handler) Onboard(c *gin.Context) {
	var req profile.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	user := currentUser(c)
	p, err := h.Profiles.Onboard(c.Request.Context(), user.UserID, req)
	if err != nil {
		log.GlobalLogger().WithContext(c).Warnf("Onboarding failed for user=%s: %v", user.UserID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
