// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

// Formatter selects the log line encoding, set through LOG_FORMAT
type Formatter string

const (
	FormatJSON    Formatter = "json"
	FormatConsole Formatter = "console"
	// FormatPlain is console output without colors, for log files
	FormatPlain Formatter = "plain"
)

// Valid reports whether f is a known encoding
func (f Formatter) Valid() bool {
	switch f {
	case FormatJSON, FormatConsole, FormatPlain:
		return true
	}
	return false
}
