// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// namespace prefixes every FarmFlight metric
const namespace = "farmflight"

// Stage latencies range from a cached embedding to a full generation call
var defaultBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// mOpts names a metric. Counters get a _c suffix and histograms _h.
type mOpts struct {
	name string
	help string
}

func (o mOpts) counterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: namespace,
		Name:      o.name + "_c",
		Help:      o.help + " (counters)",
	}
}

func (o mOpts) histogramOpts() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      o.name + "_h",
		Help:      o.help + " (histogram)",
		Buckets:   defaultBuckets,
	}
}
