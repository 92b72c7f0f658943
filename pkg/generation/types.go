// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package generation

import "encoding/base64"

// Blob is inline binary content
type Blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// Part is one content unit: text or inline binary
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// TextPart builds a text content part
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart base64-encodes data into an inline content part
func InlinePart(mimeType string, data []byte) Part {
	return Part{InlineData: &Blob{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}}
}

// IsText reports whether the part carries text
func (p Part) IsText() bool {
	return p.InlineData == nil
}

// SamplingConfig is sent as generationConfig
type SamplingConfig struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"topK"`
	TopP        float64 `json:"topP"`
}

// SafetySetting blocks a harm category at a threshold
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

const (
	HarmCategoryHarassment       = "HARM_CATEGORY_HARASSMENT"
	HarmCategorySexuallyExplicit = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent = "HARM_CATEGORY_DANGEROUS_CONTENT"
	HarmCategoryHateSpeech       = "HARM_CATEGORY_HATE_SPEECH"

	BlockMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"
)

// DefaultSampling is the sampling configuration used for every chat answer
var DefaultSampling = SamplingConfig{
	Temperature: 0.7,
	TopK:        40,
	TopP:        0.95,
}

// DefaultSafetySettings blocks medium-and-above harm in all four categories
func DefaultSafetySettings() []SafetySetting {
	categories := []string{
		HarmCategoryHarassment,
		HarmCategorySexuallyExplicit,
		HarmCategoryDangerousContent,
		HarmCategoryHateSpeech,
	}
	settings := make([]SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, SafetySetting{Category: c, Threshold: BlockMediumAndAbove})
	}
	return settings
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type generateContentRequest struct {
	Contents         []content       `json:"contents"`
	GenerationConfig SamplingConfig  `json:"generationConfig"`
	SafetySettings   []SafetySetting `json:"safetySettings"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
