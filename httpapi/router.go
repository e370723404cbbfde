// Copyright 2025 Poiesic Systems
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


// Package httpapi serves the analysis index over HTTP as JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/search"
)

const defaultTopCategories = 4

// Provider supplies the current index. The index may be swapped between requests.
type Provider interface {
	Index() *search.Index
}

// Router holds the handlers of the HTTP API.
type Router struct {
	provider       Provider
	suggestLimit   int
	allowedOrigins []string
	logger         *slog.Logger
}

// Option configures a Router.
type Option func(*Router) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithSuggestLimit sets the default number of suggestions.
// Default is search.DefaultSuggestLimit.
func WithSuggestLimit(limit int) Option {
	return func(r *Router) error {
		if limit < 1 {
			return ErrInvalidSuggestLimit
		}
		r.suggestLimit = limit
		return nil
	}
}

// WithAllowedOrigins sets the CORS origins.
// Default is every origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(r *Router) error {
		r.allowedOrigins = origins
		return nil
	}
}

// NewRouter builds the API handler.
func NewRouter(provider Provider, opts ...Option) (http.Handler, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	r := &Router{
		provider:       provider,
		suggestLimit:   search.DefaultSuggestLimit,
		allowedOrigins: []string{"*"},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(r.logRequests)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: r.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/search", r.wrap(r.handleSearch))
		rt.Get("/ranked", r.wrap(r.handleRanked))
		rt.Get("/suggest", r.wrap(r.handleSuggest))
		rt.Get("/categories", r.wrap(r.handleCategories))
		rt.Get("/stats", r.wrap(r.handleStats))
	})

	return mux, nil
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, ErrBadRequest), errors.Is(err, core.ErrEmptySearchTerm):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		default:
			r.logger.Error("request failed", "path", req.URL.Path, "err", err)
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		}
	}
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		r.logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	_ = writeJSON(w, status, errorResponse{Error: err.Error()})
}

// GET /v1/analyses
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, newListResponse(r.provider.Index().Records()))
}

// GET /v1/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	raw := chi.URLParam(req, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrBadRequest, raw)
	}
	a, ok := r.provider.Index().Get(core.ID(id))
	if !ok {
		return fmt.Errorf("%w: analysis %d", ErrNotFound, id)
	}
	return writeJSON(w, http.StatusOK, newAnalysisJSON(a))
}

// GET /v1/search?q=
// When nothing matches, did_you_mean lists close names.
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query().Get("q")
	idx := r.provider.Index()
	results, err := idx.Search(q)
	if err != nil {
		return err
	}
	resp := newListResponse(results)
	if len(results) == 0 {
		for _, a := range idx.Fuzzy(q, 3) {
			resp.DidYouMean = append(resp.DidYouMean, a.Name)
		}
	}
	return writeJSON(w, http.StatusOK, resp)
}

// GET /v1/ranked?q=
func (r *Router) handleRanked(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query().Get("q")
	return writeJSON(w, http.StatusOK, newListResponse(r.provider.Index().RankedSearch(q)))
}

// GET /v1/suggest?q=&limit=
func (r *Router) handleSuggest(w http.ResponseWriter, req *http.Request) error {
	limit, err := intParam(req, "limit", r.suggestLimit)
	if err != nil {
		return err
	}
	q := strings.TrimSpace(req.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < search.MinSuggestLength {
		return writeJSON(w, http.StatusOK, newListResponse(nil))
	}
	return writeJSON(w, http.StatusOK, newListResponse(r.provider.Index().Suggest(q, limit)))
}

// GET /v1/categories
func (r *Router) handleCategories(w http.ResponseWriter, req *http.Request) error {
	groups := r.provider.Index().Groups()
	resp := make([]categoryJSON, len(groups))
	for i, g := range groups {
		resp[i] = categoryJSON{
			Category: g.Category,
			Count:    len(g.Records),
			Results:  toJSON(g.Records),
		}
	}
	return writeJSON(w, http.StatusOK, resp)
}

// GET /v1/stats?top=
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	top, err := intParam(req, "top", defaultTopCategories)
	if err != nil {
		return err
	}
	idx := r.provider.Index()
	return writeJSON(w, http.StatusOK, statsResponse{
		Total:      idx.Len(),
		Dropped:    len(idx.Dropped()),
		Categories: len(idx.Groups()),
		Top:        newStatsTop(idx.TopCategories(top)),
	})
}

func intParam(req *http.Request, name string, def int) (int, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrBadRequest, name)
	}
	return v, nil
}
