// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farmflight/farmflight/pkg/config"
	"github.com/go-resty/resty/v2"
)

var (
	ErrExchangeNotConfigured = errors.New("identity provider token url is not configured")
	ErrNoUser                = errors.New("no user data received")
)

// CodeExchanger trades an OAuth authorization code for the user's identity
type CodeExchanger struct {
	httpClient   *resty.Client
	tokenURL     string
	clientID     string
	clientSecret string
}

func NewCodeExchanger(cfg config.AuthConfig) *CodeExchanger {
	return &CodeExchanger{
		httpClient:   resty.New().SetTimeout(30 * time.Second),
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

type exchangeResponse struct {
	Sub    string `json:"sub"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	User   *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type exchangeError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (e *exchangeError) message() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	default:
		return e.Error
	}
}

// Exchange posts code to the token endpoint. The response must name a user.
func (x *CodeExchanger) Exchange(ctx context.Context, code string) (*Identity, error) {
	if x.tokenURL == "" {
		return nil, ErrExchangeNotConfigured
	}

	var out exchangeResponse
	var apiErr exchangeError
	resp, err := x.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"client_id":     x.clientID,
			"client_secret": x.clientSecret,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(x.tokenURL)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if !resp.IsSuccess() {
		if msg := apiErr.message(); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("exchange code: status %d", resp.StatusCode())
	}

	id := Identity{Email: out.Email}
	switch {
	case out.User != nil && out.User.ID != "":
		id.UserID = out.User.ID
		if out.User.Email != "" {
			id.Email = out.User.Email
		}
	case out.Sub != "":
		id.UserID = out.Sub
	default:
		id.UserID = out.UserID
	}
	if id.UserID == "" {
		return nil, ErrNoUser
	}
	return &id, nil
}
