// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/farmflight/farmflight/pkg/auth"
	"github.com/farmflight/farmflight/pkg/config"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	user := &auth.Identity{UserID: "u-1"}
	complete := &model.UserProfile{UserID: "u-1", OnboardingComplete: true}
	incomplete := &model.UserProfile{UserID: "u-1"}

	tests := []struct {
		name     string
		path     string
		user     *auth.Identity
		profile  *model.UserProfile
		target   string
		redirect bool
	}{
		{"api passes through", "/api/v1/chat", nil, nil, "", false},
		{"consultant disabled", "/consultant", user, complete, "/", true},
		{"communities disabled", "/communities/abc", nil, nil, "/", true},
		{"socialgraph needs session", "/socialgraph", nil, nil, "/sign-in", true},
		{"missing profile to onboarding", "/dashboard", user, nil, "/onboarding", true},
		{"incomplete profile to onboarding", "/videos", user, incomplete, "/onboarding", true},
		{"incomplete profile stays on onboarding", "/onboarding", user, incomplete, "", false},
		{"onboarded user leaves onboarding", "/onboarding", user, complete, "/dashboard", true},
		{"onboarding subpage allowed", "/onboarding/step2", user, complete, "", false},
		{"protected needs session", "/protected/x", nil, nil, "/", true},
		{"root with session", "/", user, complete, "/dashboard", true},
		{"root anonymous", "/", nil, nil, "", false},
		{"dashboard onboarded", "/dashboard", user, complete, "", false},
		{"sign-in anonymous", "/sign-in", nil, nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, redirect := Decide(tt.path, tt.user, tt.profile)
			assert.Equal(t, tt.redirect, redirect)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestServePage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.html"), []byte("dashboard"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", "index.html"), []byte("videos"), 0o644))

	profiles := &fakeProfiles{getFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
		return &model.UserProfile{UserID: userID, OnboardingComplete: userID == "done"}, nil
	}}
	env := newTestEnv(t, Deps{Profiles: profiles}, config.ServerConfig{StaticDir: dir})

	tests := []struct {
		name     string
		method   string
		path     string
		user     string
		status   int
		body     string
		location string
	}{
		{"root page", http.MethodGet, "/", "", http.StatusOK, "home", ""},
		{"html page", http.MethodGet, "/dashboard", "done", http.StatusOK, "dashboard", ""},
		{"directory index", http.MethodGet, "/videos", "done", http.StatusOK, "videos", ""},
		{"client route", http.MethodGet, "/sign-in", "", http.StatusOK, "home", ""},
		{"redirect to onboarding", http.MethodGet, "/dashboard", "new", http.StatusTemporaryRedirect, "", "/onboarding"},
		{"redirect signed-in root", http.MethodGet, "/", "done", http.StatusTemporaryRedirect, "", "/dashboard"},
		{"unknown api route", http.MethodGet, "/api/v1/missing", "", http.StatusNotFound, "", ""},
		{"non GET", http.MethodPost, "/dashboard", "", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ""
			if tt.user != "" {
				token = env.token(t, tt.user)
			}
			w := env.do(t, tt.method, tt.path, nil, token)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}
