// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package generation

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("generation API key not configured")
	ErrEmptyContent  = errors.New("no content parts to send")
	ErrBlocked       = errors.New("response blocked by safety filter")
	ErrNoCandidates  = errors.New("model returned no candidates")
	ErrEmptyResponse = errors.New("model returned empty text")
)

// APIError represents an error returned by the generative model endpoint
type APIError struct {
	Code    int
	Status  string
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("generation API error (code=%d, status=%s): %s", e.Code, e.Status, e.Message)
}
