// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(m *TokenManager, required bool) *gin.Engine {
	r := gin.New()
	r.Use(Middleware(m, "session", required))
	r.GET("/me", func(c *gin.Context) {
		id, ok := FromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.UserID})
	})
	return r
}

func TestMiddleware(t *testing.T) {
	m := newTestTokens(t)
	token, err := m.Issue(Identity{UserID: "u-1"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		required bool
		setup    func(r *http.Request)
		status   int
		body     string
	}{
		{"bearer", true, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, `{"user":"u-1"}`},
		{"cookie", true, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: token}) }, http.StatusOK, `{"user":"u-1"}`},
		{"missing required", true, func(r *http.Request) {}, http.StatusUnauthorized, `{"error":"User authentication failed"}`},
		{"invalid required", true, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, `{"error":"User authentication failed"}`},
		{"missing optional", false, func(r *http.Request) {}, http.StatusOK, `{"user":null}`},
		{"invalid optional", false, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: "nope"}) }, http.StatusOK, `{"user":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			newTestRouter(m, tt.required).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
