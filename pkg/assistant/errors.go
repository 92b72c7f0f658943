// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package assistant

import (
	"errors"
	"fmt"
)

// Stage failure kinds. Only ErrGenerationFailure ends a chat turn; the others
// degrade the prompt and are recorded on the Result.
var (
	ErrEmbeddingFailure  = errors.New("embedding failure")
	ErrRetrievalFailure  = errors.New("retrieval failure")
	ErrAttachmentFailure = errors.New("attachment failure")
	ErrGenerationFailure = errors.New("generation failure")
)

var errNoEmbedder = errors.New("no embedder configured")

// StageError tags a pipeline error with its failure kind.
// errors.Is matches both the kind and the cause.
type StageError struct {
	Kind  error
	Cause error
}

func newStageError(kind, cause error) *StageError {
	return &StageError{Kind: kind, Cause: cause}
}

func (e *StageError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

func (e *StageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
