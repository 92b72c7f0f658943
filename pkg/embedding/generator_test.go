// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
	calls     atomic.Int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls.Add(1)
	return f.embedFunc(ctx, text)
}

func (f *fakeEmbedder) ModelName() string { return "fake" }

func staticLoader(e Embedder, loads *atomic.Int32) Loader {
	return func(context.Context) (Embedder, error) {
		loads.Add(1)
		return e, nil
	}
}

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

func TestGenerator_EmbedNormalizes(t *testing.T) {
	var loads atomic.Int32
	fe := &fakeEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{3, 4}, nil
	}}
	g := NewGenerator(staticLoader(fe, &loads), WithDimension(2))

	vec, err := g.Embed(context.Background(), "when should I irrigate?")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)
	assert.InDelta(t, 1.0, norm(vec), 1e-6)
}

func TestGenerator_EmptyText(t *testing.T) {
	var loads atomic.Int32
	fe := &fakeEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{1}, nil
	}}
	g := NewGenerator(staticLoader(fe, &loads))

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := g.Embed(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Equal(t, int32(0), loads.Load(), "empty text must not load the model")
}

func TestGenerator_LoadsOnceAcrossGoroutines(t *testing.T) {
	var loads atomic.Int32
	fe := &fakeEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{1, 1}, nil
	}}
	g := NewGenerator(staticLoader(fe, &loads))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Embed(context.Background(), "pest issues")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), loads.Load())
}

func TestGenerator_LoadFailureIsRetriedOnNextCall(t *testing.T) {
	attempts := 0
	fe := &fakeEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{1}, nil
	}}
	g := NewGenerator(func(context.Context) (Embedder, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("model runtime unavailable")
		}
		return fe, nil
	})

	_, err := g.Embed(context.Background(), "q")
	require.Error(t, err)

	_, err = g.Embed(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestGenerator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		out     []float32
		err     error
		dim     int
		wantErr error
	}{
		{name: "empty output", out: []float32{}, wantErr: ErrNoEmbedding},
		{name: "zero vector", out: []float32{0, 0, 0}, wantErr: ErrZeroVector},
		{name: "wrong dimension", out: []float32{1, 2, 3}, dim: 384, wantErr: ErrDimensionMismatch},
		{name: "runtime error", err: ErrDisabled, wantErr: ErrDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var loads atomic.Int32
			fe := &fakeEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
				return tt.out, tt.err
			}}
			g := NewGenerator(staticLoader(fe, &loads), WithDimension(tt.dim))
			_, err := g.Embed(context.Background(), "text")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerator_Cache(t *testing.T) {
	var loads atomic.Int32
	fe := &fakeEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{1, 0}, nil
	}}
	g := NewGenerator(staticLoader(fe, &loads), WithCache(time.Minute))

	for i := 0; i < 3; i++ {
		_, err := g.Embed(context.Background(), "aphids")
		require.NoError(t, err)
	}
	_, err := g.Embed(context.Background(), "rust")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fe.calls.Load())
}

func TestGenerator_Init(t *testing.T) {
	var loads atomic.Int32
	g := NewGenerator(staticLoader(&NullEmbedder{}, &loads))
	require.NoError(t, g.Init(context.Background()))
	require.NoError(t, g.Init(context.Background()))
	assert.Equal(t, int32(1), loads.Load())

	_, err := g.Embed(context.Background(), "q")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float32{0, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1}, out)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrZeroVector)
}
