// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/farmflight/farmflight/pkg/config"
	"github.com/farmflight/farmflight/pkg/logger/log"
	gocache "github.com/patrickmn/go-cache"
)

// Loader constructs the Embedder on first use
type Loader func(ctx context.Context) (Embedder, error)

// Generator turns text into unit-length vectors. The underlying Embedder is
// loaded once and shared by every caller.
type Generator struct {
	loader    Loader
	dimension int

	mu       sync.Mutex
	embedder Embedder

	cache *gocache.Cache
}

// GeneratorOption customises a Generator
type GeneratorOption func(*Generator)

// WithCache memoises query embeddings for ttl. A non-positive ttl disables caching.
func WithCache(ttl time.Duration) GeneratorOption {
	return func(g *Generator) {
		if ttl > 0 {
			g.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

// WithDimension rejects vectors whose length differs from dim
func WithDimension(dim int) GeneratorOption {
	return func(g *Generator) {
		g.dimension = dim
	}
}

// NewGenerator creates a Generator that loads its Embedder through loader
func NewGenerator(loader Loader, opts ...GeneratorOption) *Generator {
	g := &Generator{loader: loader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGeneratorFromConfig wires the configured embedding provider
func NewGeneratorFromConfig(cfg config.EmbeddingConfig) *Generator {
	var loader Loader
	switch cfg.Provider {
	case "none":
		loader = func(context.Context) (Embedder, error) { return &NullEmbedder{}, nil }
	default:
		loader = OpenAILoader(cfg)
	}
	return NewGenerator(loader, WithDimension(cfg.Dimension), WithCache(cfg.CacheTTL))
}

// OpenAILoader builds an OpenAIEmbedder and probes the runtime once so that
// a missing or misconfigured model surfaces at load time
func OpenAILoader(cfg config.EmbeddingConfig) Loader {
	return func(ctx context.Context) (Embedder, error) {
		e := NewOpenAIEmbedder(cfg)
		probe, err := e.Embed(ctx, "warmup")
		if err != nil {
			return nil, fmt.Errorf("load embedding model %s: %w", cfg.Model, err)
		}
		if cfg.Dimension > 0 && len(probe) != cfg.Dimension {
			return nil, fmt.Errorf("%w: model %s returned %d, want %d",
				ErrDimensionMismatch, cfg.Model, len(probe), cfg.Dimension)
		}
		log.Infof("Embedding model loaded: model=%s, dimension=%d", cfg.Model, len(probe))
		return e, nil
	}
}

// Init loads the Embedder eagerly. Safe to call more than once.
func (g *Generator) Init(ctx context.Context) error {
	_, err := g.load(ctx)
	return err
}

// load returns the shared Embedder, constructing it on first success.
// A failed load is not memoised so a later request can try again.
func (g *Generator) load(ctx context.Context) (Embedder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.embedder != nil {
		return g.embedder, nil
	}
	e, err := g.loader(ctx)
	if err != nil {
		return nil, err
	}
	g.embedder = e
	return e, nil
}

// Embed returns the unit-normalised embedding of text
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	e, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	key := e.ModelName() + "\x00" + text
	if g.cache != nil {
		if v, ok := g.cache.Get(key); ok {
			return v.([]float32), nil
		}
	}

	vec, err := e.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return nil, ErrNoEmbedding
	}
	if g.dimension > 0 && len(vec) != g.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), g.dimension)
	}

	unit, err := Normalize(vec)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		g.cache.SetDefault(key, unit)
	}
	return unit, nil
}

// Normalize scales v to unit L2 length, returning a new slice
func Normalize(v []float32) ([]float32, error) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, ErrZeroVector
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out, nil
}
