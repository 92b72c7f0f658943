// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package log holds the process-wide logger. It starts with the default
// config and is replaced once the service config is loaded.
package log

import (
	"github.com/farmflight/farmflight/pkg/logger"
	"github.com/farmflight/farmflight/pkg/logger/conf"
	"github.com/farmflight/farmflight/pkg/logger/logrus"
)

var globalLogger logger.Logger

func init() {
	if err := InitGlobalLogger(conf.DefaultConfig()); err != nil {
		panic(err)
	}
}

// InitGlobalLogger replaces the global logger. An invalid cfg keeps the current one.
func InitGlobalLogger(cfg *conf.LogConfig) error {
	l, err := logrus.NewLogrusWrapper(cfg)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

func GlobalLogger() logger.Logger {
	return globalLogger
}

func Info(args ...interface{}) {
	globalLogger.Log(conf.InfoLevel, args...)
}

func Infof(template string, args ...interface{}) {
	globalLogger.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	globalLogger.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	globalLogger.Errorf(template, args...)
}
