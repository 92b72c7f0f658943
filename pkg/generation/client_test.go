// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package generation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farmflight/farmflight/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *Client {
	return NewClient(config.GenerationConfig{APIKey: "k", BaseURL: url, Model: "gemini-2.0-flash"})
}

func TestClient_Generate_SendsSamplingAndSafety(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.7, req.GenerationConfig.Temperature)
		assert.Equal(t, 40, req.GenerationConfig.TopK)
		assert.Equal(t, 0.95, req.GenerationConfig.TopP)
		require.Len(t, req.SafetySettings, 4)
		for _, s := range req.SafetySettings {
			assert.Equal(t, BlockMediumAndAbove, s.Threshold)
		}

		require.Len(t, req.Contents, 1)
		parts := req.Contents[0].Parts
		require.Len(t, parts, 2)
		assert.Equal(t, "prompt", parts[0].Text)
		require.NotNil(t, parts[1].InlineData)
		assert.Equal(t, "video/mp4", parts[1].InlineData.MimeType)
		decoded, err := base64.StdEncoding.DecodeString(parts[1].InlineData.Data)
		require.NoError(t, err)
		assert.Equal(t, []byte("frames"), decoded)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Irrigate "},{"text":"at dawn."}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	text, err := newClient(srv.URL).Generate(context.Background(), []Part{
		TextPart("prompt"),
		InlinePart("video/mp4", []byte("frames")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Irrigate at dawn.", text)
}

func TestClient_Generate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantAPI bool
	}{
		{name: "api error", status: 400, body: `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`, wantAPI: true},
		{name: "plain 503", status: 503, body: `upstream down`, wantAPI: true},
		{name: "prompt blocked", status: 200, body: `{"promptFeedback":{"blockReason":"SAFETY"}}`, wantErr: ErrBlocked},
		{name: "candidate blocked", status: 200, body: `{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`, wantErr: ErrBlocked},
		{name: "no candidates", status: 200, body: `{"candidates":[]}`, wantErr: ErrNoCandidates},
		{name: "empty text", status: 200, body: `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"STOP"}]}`, wantErr: ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasPrefix(tt.body, "{") {
					w.Header().Set("Content-Type", "application/json")
				} else {
					w.Header().Set("Content-Type", "text/plain")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newClient(srv.URL).Generate(context.Background(), []Part{TextPart("q")})
			require.Error(t, err)
			if tt.wantAPI {
				var apiErr *APIError
				assert.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.Code)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_Generate_Preconditions(t *testing.T) {
	c := NewClient(config.GenerationConfig{BaseURL: "http://127.0.0.1:1", Model: "m"})
	_, err := c.Generate(context.Background(), []Part{TextPart("q")})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = newClient("http://127.0.0.1:1").Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestClient_Generate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newClient(url).Generate(context.Background(), []Part{TextPart("q")})
	assert.Error(t, err)
}
