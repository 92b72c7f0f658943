// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package logrus

import (
	"context"
	"os"

	"github.com/farmflight/farmflight/pkg/logger"
	"github.com/farmflight/farmflight/pkg/logger/conf"
	"github.com/sirupsen/logrus"
)

// Wrapper adapts a logrus entry to logger.Logger
type Wrapper struct {
	entry *logrus.Entry
}

var _ logger.Logger = (*Wrapper)(nil)

func NewLogrusWrapper(cfg *conf.LogConfig) (*Wrapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := conf.ParseLevel(string(cfg.Level))

	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(toLogrusLevel(level))
	l.SetReportCaller(cfg.ReportCaller)
	switch cfg.Format {
	case conf.FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	case conf.FormatPlain:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &Wrapper{entry: logrus.NewEntry(l)}, nil
}

func toLogrusLevel(level conf.Level) logrus.Level {
	switch level {
	case conf.TraceLevel:
		return logrus.TraceLevel
	case conf.DebugLevel:
		return logrus.DebugLevel
	case conf.WarnLevel:
		return logrus.WarnLevel
	case conf.ErrorLevel:
		return logrus.ErrorLevel
	case conf.FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

func (w *Wrapper) Log(level conf.Level, args ...interface{}) {
	w.entry.Log(toLogrusLevel(level), args...)
}

func (w *Wrapper) Logf(level conf.Level, format string, args ...interface{}) {
	w.entry.Logf(toLogrusLevel(level), format, args...)
}

func (w *Wrapper) Debugf(format string, args ...interface{}) {
	w.entry.Debugf(format, args...)
}

func (w *Wrapper) Infof(format string, args ...interface{}) {
	w.entry.Infof(format, args...)
}

func (w *Wrapper) Warnf(format string, args ...interface{}) {
	w.entry.Warnf(format, args...)
}

func (w *Wrapper) Errorf(format string, args ...interface{}) {
	w.entry.Errorf(format, args...)
}

// WithContext attaches the request id carried by ctx, if any
func (w *Wrapper) WithContext(ctx context.Context) logger.Logger {
	if ctx == nil {
		return w
	}
	if id := requestID(ctx); id != "" {
		return &Wrapper{entry: w.entry.WithContext(ctx).WithField("request_id", id)}
	}
	return &Wrapper{entry: w.entry.WithContext(ctx)}
}

func requestID(ctx context.Context) string {
	if v, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		return v
	}
	// gin.Context resolves string keys through Value
	if v, ok := ctx.Value(logger.RequestIDGinKey).(string); ok {
		return v
	}
	return ""
}
