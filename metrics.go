// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rclargs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a package-local prometheus registry, analogous to the
// teacher's METRIC_RECORD named-section timers but backed by real
// counters/histograms a caller can scrape or merge into its own registry.
var Registry = prometheus.NewRegistry()

var (
	parseCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rclargs",
		Name:      "parse_total",
		Help:      "Number of times Parse was called.",
	})
	parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rclargs",
		Name:      "parse_duration_seconds",
		Help:      "Time spent in Parse.",
		Buckets:   prometheus.DefBuckets,
	})
	remapOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rclargs",
		Name:      "remap_resolution_total",
		Help:      "Outcomes of remap rule resolution, by result.",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(parseCount, parseDuration, remapOutcomes)
}

// metricRecord counts one Parse call in parseCount and times it, recording
// the elapsed time to parseDuration when the returned func is
// deferred-called, in the style of the teacher's METRIC_RECORD(name) macro.
func metricRecord() func() {
	parseCount.Inc()
	start := time.Now()
	return func() {
		parseDuration.Observe(time.Since(start).Seconds())
	}
}

func recordRemapOutcome(outcome string) {
	remapOutcomes.WithLabelValues(outcome).Inc()
}
