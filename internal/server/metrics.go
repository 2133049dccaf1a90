// Copyright 2025 Keith Nytati
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's Prometheus collectors.
type metrics struct {
	requestsTotal *prometheus.CounterVec
	searchLatency prometheus.Histogram
	searchResults prometheus.Histogram
	pagesLoaded   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		searchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query execution time in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		searchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results per search before the limit is applied.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		pagesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_pages_loaded",
				Help: "Number of pages in the loaded index.",
			},
		),
	}
	reg.MustRegister(m.requestsTotal, m.searchLatency, m.searchResults, m.pagesLoaded)
	return m
}
