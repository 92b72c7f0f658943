// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"context"
	"net/http"

	"github.com/farmflight/farmflight/pkg/assistant"
	"github.com/farmflight/farmflight/pkg/auth"
	"github.com/farmflight/farmflight/pkg/config"
	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/metrics"
	"github.com/farmflight/farmflight/pkg/profile"
	"github.com/farmflight/farmflight/pkg/storage"
	"github.com/farmflight/farmflight/pkg/video"
	"github.com/farmflight/farmflight/pkg/weather"
	"github.com/gin-gonic/gin"
)

// ChatAnswerer runs one chat turn
type ChatAnswerer interface {
	Answer(ctx context.Context, req assistant.Request) (*assistant.Result, error)
}

// WeatherSource reads current weather and forecasts
type WeatherSource interface {
	Current(ctx context.Context, lat, long string) (*weather.Current, error)
	Forecast(ctx context.Context, lat, long string) ([]weather.Period, error)
}

// VideoLibrary manages a user's stored videos
type VideoLibrary interface {
	EnsureBucket(ctx context.Context) (bool, error)
	List(ctx context.Context, userID string) ([]video.Video, error)
	Refs(ctx context.Context, userID string) ([]assistant.VideoRef, error)
	UploadTarget(ctx context.Context, filename string) (*video.UploadTarget, error)
	Add(ctx context.Context, userID, name string) error
	Delete(ctx context.Context, userID, name string) error
}

// ProfileService reads and creates user profiles
type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Onboard(ctx context.Context, userID string, req profile.OnboardingRequest) (*model.UserProfile, error)
}

// CodeExchanger trades an OAuth code for an identity
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (*auth.Identity, error)
}

// Deps are the collaborators behind the HTTP API
type Deps struct {
	Assistant ChatAnswerer
	Weather   WeatherSource
	Videos    VideoLibrary
	Profiles  ProfileService
	Tokens    *auth.TokenManager
	Exchanger CodeExchanger
	Embedder  assistant.Embedder
	Forums    database.ForumFacadeInterface
	// LocalFiles is set when videos are stored on the local filesystem
	LocalFiles *storage.LocalStorage
}

// Handler handles API requests
type Handler struct {
	Deps
	serverCfg config.ServerConfig
	authCfg   config.AuthConfig
}

// NewHandler creates a new Handler
func NewHandler(deps Deps, serverCfg config.ServerConfig, authCfg config.AuthConfig) *Handler {
	return &Handler{
		Deps:      deps,
		serverCfg: serverCfg,
		authCfg:   authCfg,
	}
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(HandleLogging())
	router.Use(HandleMetrics())
	router.Use(CorsMiddleware(h.serverCfg.CorsOrigins))

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes registers API routes
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	session := auth.Middleware(h.Tokens, h.authCfg.CookieName, false)
	required := auth.Middleware(h.Tokens, h.authCfg.CookieName, true)

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/callback", h.AuthCallback)
		authGroup.POST("/signout", h.SignOut)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health)
		v1.GET("/weather", h.GetWeather)
		v1.GET("/forecast", h.GetForecast)
		v1.POST("/chat", session, h.Chat)
	}

	authed := v1.Group("")
	authed.Use(required)
	{
		authed.GET("/profile", h.GetProfile)
		authed.POST("/onboarding", h.Onboard)

		authed.GET("/videos", h.ListVideos)
		authed.POST("/videos", h.PrepareVideoUpload)
		authed.POST("/videos/add", h.AddVideo)
		authed.POST("/videos/delete", h.DeleteVideo)

		authed.POST("/forums", h.CreateForum)
	}

	if h.LocalFiles != nil {
		router.GET("/files/*key", h.ServeLocalFile)
		router.PUT("/files/*key", h.UploadLocalFile)
	}

	router.NoRoute(session, h.ServePage)
}

// Health returns service health status
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// currentUser returns the identity set by the auth middleware
func currentUser(c *gin.Context) *auth.Identity {
	id, ok := auth.FromContext(c)
	if !ok {
		return nil
	}
	return id
}
