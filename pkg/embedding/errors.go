// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import "errors"

var (
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrNoEmbedding       = errors.New("no embedding returned")
	ErrZeroVector        = errors.New("embedding has zero magnitude")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrDisabled          = errors.New("embedding is disabled")
)
