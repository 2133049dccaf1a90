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

// Package server implements the HTTP search API over a loaded index.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/internal/analysis"
)

// Options are options for a Server.
type Options struct {
	// DefaultLimit is the result limit applied when a request does not
	// name one.
	DefaultLimit int

	// MaxLimit caps the limit a request may ask for.
	MaxLimit int

	// Analysis configures the query analyzer. It must match the options
	// the index was built with. If nil, the default analysis options
	// are used.
	Analysis *analysis.Options

	// Logger receives request and search logs. If nil, logs are
	// discarded.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Server.
var DefaultOptions = &Options{
	DefaultLimit: 10,
	MaxLimit:     100,
}

// Server serves search queries against a single loaded index. It
// implements [http.Handler].
type Server struct {
	idx      *searchindex.Index
	analyzer *analysis.Analyzer
	logger   *slog.Logger

	defaultLimit int
	maxLimit     int

	metrics *metrics
	handler http.Handler
}

// SearchResponse is the body of a successful search request.
type SearchResponse struct {
	// Query is the query string as given.
	Query string `json:"query"`

	// Total is the number of matching pages before the limit was
	// applied.
	Total int `json:"total"`

	// Results are the matching pages, best first.
	Results []*searchindex.Result `json:"results"`

	// TookMS is the query execution time in milliseconds.
	TookMS int64 `json:"took_ms"`
}

// IndexInfo is the body of an index metadata request.
type IndexInfo struct {
	EnvVersion int    `json:"envversion"`
	Format     string `json:"format"`
	Pages      int    `json:"pages"`
	Terms      int    `json:"terms"`
	TitleTerms int    `json:"titleterms"`
	Objects    int    `json:"objects"`
}

// New returns a new Server serving queries against idx.
func New(idx *searchindex.Index, options *Options) *Server {
	if options == nil {
		options = DefaultOptions
	}

	defaultLimit := options.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = DefaultOptions.DefaultLimit
	}
	maxLimit := options.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultOptions.MaxLimit
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		idx:          idx,
		analyzer:     analysis.New(options.Analysis),
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		metrics:      newMetrics(registry),
	}
	s.metrics.pagesLoaded.Set(float64(idx.PageCount()))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", s.handleSearch)
	mux.HandleFunc("GET /api/v1/index", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.handler = s.instrument(mux)

	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := s.defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	results := s.idx.Search(q, &searchindex.SearchOptions{
		Analyzer: s.analyzer,
	})
	took := time.Since(start)

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	s.metrics.searchLatency.Observe(took.Seconds())
	s.metrics.searchResults.Observe(float64(total))
	s.logger.Info("search completed",
		slog.String("query", q),
		slog.Int("total", total),
		slog.Int64("took_ms", took.Milliseconds()),
	)

	writeJSON(w, http.StatusOK, &SearchResponse{
		Query:   q,
		Total:   total,
		Results: results,
		TookMS:  took.Milliseconds(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &IndexInfo{
		EnvVersion: s.idx.EnvVersion(),
		Format:     s.idx.Format().String(),
		Pages:      s.idx.PageCount(),
		Terms:      s.idx.TermCount(),
		TitleTerms: s.idx.TitleTermCount(),
		Objects:    s.idx.ObjectCount(),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors after the header is written can only be logged by
	// the caller; the wire is already committed.
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
