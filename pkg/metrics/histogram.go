// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type HistogramVec struct {
	histograms *prometheus.HistogramVec
}

// NewHistogramVec registers a histogram named farmflight_<name>_h
func NewHistogramVec(name, help string, labels []string) *HistogramVec {
	hh := prometheus.NewHistogramVec(mOpts{name: name, help: help}.histogramOpts(), labels)
	prometheus.MustRegister(hh)

	return &HistogramVec{
		histograms: hh,
	}
}

func (self *HistogramVec) Observe(v float64, labels ...string) {
	self.histograms.WithLabelValues(labels...).Observe(v)
}

// ObserveSince records the seconds elapsed since start
func (self *HistogramVec) ObserveSince(start time.Time, labels ...string) {
	self.Observe(time.Since(start).Seconds(), labels...)
}
