// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

import (
	"fmt"
	"strings"
)

type Level string

const (
	TraceLevel Level = "trace"
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	FatalLevel Level = "fatal"
)

// LogConfig configures the global logger
type LogConfig struct {
	Level        Level     `yaml:"level"`
	Format       Formatter `yaml:"format"`
	ReportCaller bool      `yaml:"report_caller"`
}

func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:  InfoLevel,
		Format: FormatConsole,
	}
}

// ParseLevel converts a level name into a Level, case insensitive
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return l, nil
	case "warning":
		return WarnLevel, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func (c *LogConfig) Validate() error {
	if _, err := ParseLevel(string(c.Level)); err != nil {
		return err
	}
	if !c.Format.Valid() {
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}
