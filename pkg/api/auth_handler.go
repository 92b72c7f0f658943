// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/gin-gonic/gin"
)

const defaultNextPath = "/dashboard"

func signInRedirect(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, "/sign-in?error="+url.QueryEscape(message))
}

// safeNext keeps redirects on this site
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultNextPath
	}
	return next
}

// AuthCallback completes the OAuth sign-in, sets the session cookie and
// sends users without a finished profile to onboarding
func (h *Handler) AuthCallback(c *gin.Context) {
	code := c.Query("code")
	next := safeNext(c.Query("next"))

	if code == "" {
		log.GlobalLogger().WithContext(c).Warnf("No code provided in callback")
		signInRedirect(c, "No authorization code provided")
		return
	}

	id, err := h.Exchanger.Exchange(c.Request.Context(), code)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Auth error: %v", err)
		signInRedirect(c, err.Error())
		return
	}

	token, err := h.Tokens.Issue(*id)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Callback error: %v", err)
		signInRedirect(c, "An unexpected error occurred")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authCfg.CookieName, token, int(h.Tokens.TTL().Seconds()), "/", "", h.authCfg.SecureCookies, true)

	redirectPath := next
	p, err := h.Profiles.Get(c.Request.Context(), id.UserID)
	if err != nil || p == nil || p.FirstName == "" {
		redirectPath = "/onboarding"
	}
	log.GlobalLogger().WithContext(c).Infof("User %s signed in, redirecting to %s", id.UserID, redirectPath)
	c.Redirect(http.StatusFound, redirectPath)
}

// SignOut clears the session cookie
func (h *Handler) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authCfg.CookieName, "", -1, "/", "", h.authCfg.SecureCookies, true)
	c.Redirect(http.StatusSeeOther, "/sign-in")
}
