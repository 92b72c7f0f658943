// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package logger

import (
	"context"

	"github.com/farmflight/farmflight/pkg/logger/conf"
)

// Logger is the logging surface used across the service
type Logger interface {
	Log(level conf.Level, args ...interface{})
	Logf(level conf.Level, format string, args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithContext(ctx context.Context) Logger
}

type contextKey string

// RequestIDKey is the context key carrying the request id
const RequestIDKey contextKey = "request_id"

// RequestIDGinKey is the gin context key carrying the request id
const RequestIDGinKey = "request_id"
