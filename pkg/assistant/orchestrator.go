// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farmflight/farmflight/pkg/generation"
	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/farmflight/farmflight/pkg/metrics"
	"github.com/farmflight/farmflight/pkg/search"
	"github.com/farmflight/farmflight/pkg/utils/option"
)

// FallbackMessage is returned to the user when generation fails
const FallbackMessage = "Sorry, I encountered an error processing your request. Please try again."

// State is a step of one chat turn
type State int

const (
	StateIdle State = iota
	StateEmbedding
	StateRetrieving
	StateAssembling
	StateGenerating
	StateDone
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEmbedding:
		return "embedding"
	case StateRetrieving:
		return "retrieving"
	case StateAssembling:
		return "assembling"
	case StateGenerating:
		return "generating"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	stageFailures = metrics.NewCounterVec("pipeline_stage_failures", "chat pipeline stage failures", []string{"stage"})
	stageDuration = metrics.NewHistogramVec("pipeline_stage_duration", "chat pipeline stage duration", []string{"stage"})
	chatAnswers   = metrics.NewCounterVec("chat_answers", "chat turns by outcome", []string{"outcome"})
)

// Embedder converts query text into a unit vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever finds the best forum match for a vector
type Retriever interface {
	FindBestMatchResult(ctx context.Context, vector []float32) (option.Option[search.Match], error)
}

// Generator produces the answer text from content parts
type Generator interface {
	Generate(ctx context.Context, parts []generation.Part) (string, error)
}

// Request is one chat turn
type Request struct {
	Query       string
	FarmContext FarmContext
	Videos      []VideoRef
}

// Result records the answer and the path the turn took
type Result struct {
	Text        string
	State       State
	Transitions []State
	Match       option.Option[search.Match]
	// Degraded holds stage errors that did not stop the turn
	Degraded []error
}

func (r *Result) advance(s State) {
	r.State = s
	r.Transitions = append(r.Transitions, s)
}

// Orchestrator sequences embedding, retrieval, assembly and generation
type Orchestrator struct {
	embedder  Embedder
	retriever Retriever
	assembler *Assembler
	generator Generator
	template  SystemTemplate
}

// OrchestratorOption configures an Orchestrator
type OrchestratorOption func(*Orchestrator)

// WithTemplate replaces DefaultSystemTemplate
func WithTemplate(t SystemTemplate) OrchestratorOption {
	return func(o *Orchestrator) {
		o.template = t
	}
}

func NewOrchestrator(embedder Embedder, retriever Retriever, assembler *Assembler, generator Generator, opts ...OrchestratorOption) *Orchestrator {
	if assembler == nil {
		assembler = NewAssembler(nil)
	}
	o := &Orchestrator{
		embedder:  embedder,
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		template:  DefaultSystemTemplate,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Answer runs one chat turn. Embedding, retrieval and attachment failures
// degrade the prompt; a generation failure or panic ends in StateErrored with
// FallbackMessage as the text and an ErrGenerationFailure error.
func (o *Orchestrator) Answer(ctx context.Context, req Request) (result *Result, err error) {
	logger := log.GlobalLogger().WithContext(ctx)
	result = &Result{State: StateIdle, Transitions: []State{StateIdle}}

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Chat pipeline panicked in %s: %v", result.State, r)
			err = o.fail(result, fmt.Errorf("panic in %s: %v", result.State, r))
		}
	}()

	if strings.TrimSpace(req.Query) != "" {
		result.Match = o.retrieve(ctx, req.Query, result)
	}

	result.advance(StateAssembling)
	start := time.Now()
	prompt := BuildPrompt(o.template, req.FarmContext, req.Query, result.Match)
	parts, attachErrs := o.assembler.BuildContentParts(ctx, prompt, req.Videos)
	stageDuration.ObserveSince(start, StateAssembling.String())
	for _, e := range attachErrs {
		o.degrade(result, e)
	}

	result.advance(StateGenerating)
	start = time.Now()
	text, genErr := o.generator.Generate(ctx, parts)
	stageDuration.ObserveSince(start, StateGenerating.String())
	if genErr != nil {
		logger.Errorf("Generation failed: %v", genErr)
		return result, o.fail(result, genErr)
	}

	result.Text = text
	result.advance(StateDone)
	chatAnswers.Inc("ok")
	logger.Infof("Chat answered: parts=%d forum_match=%t degraded=%d", len(parts), result.Match.IsSome(), len(result.Degraded))
	return result, nil
}

// retrieve embeds the query and looks up the best forum match. Failures
// are recorded and yield no match.
func (o *Orchestrator) retrieve(ctx context.Context, query string, result *Result) option.Option[search.Match] {
	result.advance(StateEmbedding)
	start := time.Now()
	if o.embedder == nil {
		o.degrade(result, newStageError(ErrEmbeddingFailure, errNoEmbedder))
		return option.None[search.Match]()
	}
	vector, err := o.embedder.Embed(ctx, query)
	stageDuration.ObserveSince(start, StateEmbedding.String())
	if err != nil {
		o.degrade(result, newStageError(ErrEmbeddingFailure, err))
		return option.None[search.Match]()
	}

	result.advance(StateRetrieving)
	if o.retriever == nil {
		return option.None[search.Match]()
	}
	start = time.Now()
	match, err := o.retriever.FindBestMatchResult(ctx, vector)
	stageDuration.ObserveSince(start, StateRetrieving.String())
	if err != nil {
		o.degrade(result, newStageError(ErrRetrievalFailure, err))
		return option.None[search.Match]()
	}
	return match
}

func (o *Orchestrator) degrade(result *Result, err error) {
	stage := result.State.String()
	log.Warnf("Chat pipeline degraded in %s: %v", stage, err)
	stageFailures.Inc(stage)
	result.Degraded = append(result.Degraded, err)
}

func (o *Orchestrator) fail(result *Result, cause error) error {
	stageFailures.Inc(result.State.String())
	chatAnswers.Inc("fallback")
	result.Text = FallbackMessage
	result.advance(StateErrored)
	return newStageError(ErrGenerationFailure, cause)
}
