// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package log

import (
	"testing"

	"github.com/farmflight/farmflight/pkg/logger/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGlobalLogger(t *testing.T) {
	before := GlobalLogger()
	require.NotNil(t, before)

	err := InitGlobalLogger(&conf.LogConfig{Level: "verbose", Format: conf.FormatJSON})
	assert.Error(t, err)
	assert.Same(t, before, GlobalLogger())

	require.NoError(t, InitGlobalLogger(&conf.LogConfig{Level: conf.DebugLevel, Format: conf.FormatPlain}))
	assert.NotSame(t, before, GlobalLogger())
	t.Cleanup(func() { _ = InitGlobalLogger(conf.DefaultConfig()) })
}
