// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package logrus

import (
	"context"
	"testing"

	"github.com/farmflight/farmflight/pkg/logger"
	"github.com/farmflight/farmflight/pkg/logger/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusWrapper(t *testing.T) {
	for _, f := range []conf.Formatter{conf.FormatJSON, conf.FormatConsole, conf.FormatPlain} {
		t.Run(string(f), func(t *testing.T) {
			w, err := NewLogrusWrapper(&conf.LogConfig{Level: conf.DebugLevel, Format: f})
			require.NoError(t, err)
			assert.NotNil(t, w)
		})
	}

	_, err := NewLogrusWrapper(&conf.LogConfig{Level: "nope", Format: conf.FormatJSON})
	assert.Error(t, err)
}

func TestWrapper_WithContextAddsRequestID(t *testing.T) {
	w, err := NewLogrusWrapper(conf.DefaultConfig())
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), logger.RequestIDKey, "req-1")
	l := w.WithContext(ctx).(*Wrapper)
	assert.Equal(t, "req-1", l.entry.Data["request_id"])

	plain := w.WithContext(context.Background()).(*Wrapper)
	_, ok := plain.entry.Data["request_id"]
	assert.False(t, ok)
}
