// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/farmflight/farmflight/pkg/api"
	"github.com/farmflight/farmflight/pkg/assistant"
	"github.com/farmflight/farmflight/pkg/auth"
	"github.com/farmflight/farmflight/pkg/config"
	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/embedding"
	"github.com/farmflight/farmflight/pkg/generation"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/profile"
	"github.com/farmflight/farmflight/pkg/search"
	"github.com/farmflight/farmflight/pkg/storage"
	"github.com/farmflight/farmflight/pkg/video"
	"github.com/farmflight/farmflight/pkg/weather"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	warmupTimeout   = 2 * time.Minute
	shutdownTimeout = 30 * time.Second
)

// Server represents the FarmFlight API server
type Server struct {
	config     *config.Config
	db         *gorm.DB
	httpServer *http.Server
	router     *gin.Engine
	storage    storage.Storage
	embedder   *embedding.Generator
}

// NewServer creates a new Server instance
func NewServer() (*Server, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := log.InitGlobalLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// Connect to database
	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	return newServer(cfg, db)
}

// newServer wires every component on top of an open database
func newServer(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if cfg.Embedding.Provider != "none" && cfg.Embedding.Dimension != model.EmbeddingDimension {
		return nil, fmt.Errorf("embedding dimension %d does not match forum corpus dimension %d",
			cfg.Embedding.Dimension, model.EmbeddingDimension)
	}

	// Create facades
	forumFacade := database.NewForumFacade(db)
	profileFacade := database.NewUserProfileFacade(db)

	// Create storage
	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	if created, err := store.EnsureBucket(context.Background()); err != nil {
		log.Warnf("Failed to ensure bucket %s: %v", store.Bucket(), err)
	} else if created {
		log.Infof("Created bucket %s", store.Bucket())
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	// Create the chat pipeline
	embedder := embedding.NewGeneratorFromConfig(cfg.Embedding)
	retriever := search.NewClient(forumFacade)
	assembler := assistant.NewAssembler(video.NewFetcher(store))
	generator := generation.NewClient(cfg.Generation)
	orchestrator := assistant.NewOrchestrator(embedder, retriever, assembler, generator)
	log.Infof("Chat pipeline ready: embedding=%s/%s, generation=%s",
		cfg.Embedding.Provider, cfg.Embedding.Model, generator.Model())

	deps := api.Deps{
		Assistant: orchestrator,
		Weather:   weather.NewClient(cfg.Weather),
		Videos:    video.NewLibrary(store, profileFacade),
		Profiles:  profile.NewService(profileFacade),
		Tokens:    tokens,
		Exchanger: auth.NewCodeExchanger(cfg.Auth),
		Embedder:  embedder,
		Forums:    forumFacade,
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		local.SetUploadSigner(tokens)
		deps.LocalFiles = local
	}

	handler := api.NewHandler(deps, cfg.Server, cfg.Auth)
	return &Server{
		config:   cfg,
		db:       db,
		router:   api.NewRouter(handler),
		storage:  store,
		embedder: embedder,
	}, nil
}

// Start loads the embedding model and serves HTTP until Stop is called
func (s *Server) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	if err := s.embedder.Init(ctx); err != nil {
		log.Warnf("Embedding model not loaded at startup, retrying on first request: %v", err)
	}
	cancel()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.router,
	}

	log.Infof("FarmFlight API listening on port %d", s.config.Server.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
