// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMOpts(t *testing.T) {
	tests := []struct {
		name          string
		opts          mOpts
		wantCounter   string
		wantHistogram string
		wantHelp      string
	}{
		{
			name:          "chat answers",
			opts:          mOpts{name: "answers", help: "Chat answers"},
			wantCounter:   "answers_c",
			wantHistogram: "answers_h",
			wantHelp:      "Chat answers",
		},
		{
			name:          "stage duration",
			opts:          mOpts{name: "pipeline_stage_duration", help: "Stage duration"},
			wantCounter:   "pipeline_stage_duration_c",
			wantHistogram: "pipeline_stage_duration_h",
			wantHelp:      "Stage duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := tt.opts.counterOpts()
			assert.Equal(t, "farmflight", counter.Namespace)
			assert.Equal(t, tt.wantCounter, counter.Name)
			assert.Equal(t, tt.wantHelp+" (counters)", counter.Help)

			histogram := tt.opts.histogramOpts()
			assert.Equal(t, "farmflight", histogram.Namespace)
			assert.Equal(t, tt.wantHistogram, histogram.Name)
			assert.Equal(t, tt.wantHelp+" (histogram)", histogram.Help)
			assert.Equal(t, defaultBuckets, histogram.Buckets)
		})
	}
}
