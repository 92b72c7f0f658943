// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CounterVec counts events by label values
type CounterVec struct {
	vec *prometheus.CounterVec
}

// NewCounterVec registers a counter named farmflight_<name>_c
func NewCounterVec(name, help string, labels []string) *CounterVec {
	vec := prometheus.NewCounterVec(mOpts{name: name, help: help}.counterOpts(), labels)
	prometheus.MustRegister(vec)
	return &CounterVec{vec: vec}
}

func (c *CounterVec) Inc(labels ...string) {
	c.vec.WithLabelValues(labels...).Inc()
}
