// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/farmflight/farmflight/pkg/config"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 2 * time.Minute

// Client calls the Gemini generateContent endpoint
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	sampling   SamplingConfig
	safety     []SafetySetting
	httpClient *resty.Client
}

// NewClient creates a new generation Client
func NewClient(cfg config.GenerationConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("x-goog-api-key", cfg.APIKey)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		sampling:   DefaultSampling,
		safety:     DefaultSafetySettings(),
		httpClient: client,
	}
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// Generate sends parts as a single user turn and returns the answer text
func (c *Client) Generate(ctx context.Context, parts []Part) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if len(parts) == 0 {
		return "", ErrEmptyContent
	}

	body := generateContentRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: c.sampling,
		SafetySettings:   c.safety,
	}

	var out generateContentResponse
	var apiErr errorResponse
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("failed to call generateContent: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		if apiErr.Error != nil {
			return "", &APIError{Code: apiErr.Error.Code, Status: apiErr.Error.Status, Message: apiErr.Error.Message}
		}
		return "", &APIError{Code: resp.StatusCode(), Status: resp.Status(), Message: string(resp.Body())}
	}

	return extractText(&out)
}

func extractText(out *generateContentResponse) (string, error) {
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt %s", ErrBlocked, out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	candidate := out.Candidates[0]
	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		if candidate.FinishReason == "SAFETY" {
			return "", fmt.Errorf("%w: finish reason %s", ErrBlocked, candidate.FinishReason)
		}
		return "", ErrEmptyResponse
	}
	return text, nil
}
