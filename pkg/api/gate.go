// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/farmflight/farmflight/pkg/auth"
	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/profile"
	"github.com/gin-gonic/gin"
)

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Decide applies the page access rules. It returns the redirect target and
// true when the request must be redirected.
func Decide(path string, user *auth.Identity, p *model.UserProfile) (string, bool) {
	if strings.HasPrefix(path, "/api") {
		return "", false
	}
	// pages under development
	if hasAnyPrefix(path, "/consultant", "/communities") {
		return "/", true
	}
	if user == nil && strings.HasPrefix(path, "/socialgraph") {
		return "/sign-in", true
	}
	if user != nil {
		onboarding := strings.HasPrefix(path, "/onboarding")
		incomplete := !profile.Complete(p)
		if !onboarding && incomplete {
			return "/onboarding", true
		}
		if path == "/onboarding" && !incomplete {
			return "/dashboard", true
		}
	}
	if user == nil && strings.HasPrefix(path, "/protected") {
		return "/", true
	}
	if path == "/" && user != nil {
		return "/dashboard", true
	}
	return "", false
}

// ServePage gates non-API page requests and serves the built frontend
func (h *Handler) ServePage(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		respondNotFound(c, "Route")
		return
	}

	user := currentUser(c)
	var p *model.UserProfile
	if user != nil && h.Profiles != nil {
		var err error
		p, err = h.Profiles.Get(c.Request.Context(), user.UserID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			log.GlobalLogger().WithContext(c).Warnf("Page gate could not load profile: %v", err)
		}
	}

	if target, redirect := Decide(path, user, p); redirect {
		c.Redirect(http.StatusTemporaryRedirect, target)
		return
	}

	if file, ok := h.staticFile(path); ok {
		c.File(file)
		return
	}
	respondNotFound(c, "Page")
}

// staticFile resolves path to a file in the static directory: the exact file,
// the .html page, a directory index, then the root index for client routing.
func (h *Handler) staticFile(path string) (string, bool) {
	dir := h.serverCfg.StaticDir
	if dir == "" {
		return "", false
	}
	clean := filepath.FromSlash(filepath.Clean("/" + path))
	candidates := []string{
		filepath.Join(dir, clean),
		filepath.Join(dir, clean+".html"),
		filepath.Join(dir, clean, "index.html"),
		filepath.Join(dir, "index.html"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
