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


// Package labsearch assembles a searchable catalog of laboratory analyses.
//
// A Catalog picks its records from the snapshot store when one has been
// imported, otherwise from the configured delimited source, otherwise from
// the built-in list, and builds a search.Index over them.
package labsearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/poiesic/labsearch/classify"
	"github.com/poiesic/labsearch/config"
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/ingest"
	"github.com/poiesic/labsearch/search"
	"github.com/poiesic/labsearch/source"
	"github.com/poiesic/labsearch/storage"
	"github.com/poiesic/labsearch/storage/badger"
	"golang.org/x/text/language"
)

// ErrNoStore is returned by operations that need a snapshot store when none is configured.
var ErrNoStore = errors.New("snapshot store not configured")

// Origin describes where the indexed records came from.
type Origin struct {
	Source       string
	FromSnapshot bool
	FromFallback bool
	Snapshot     *core.SnapshotInfo // set when FromSnapshot
	Err          error              // why the fallback was used
}

// Catalog owns the index and, when configured, the snapshot store.
type Catalog struct {
	cfg      *config.Config
	taxonomy *classify.Taxonomy
	lang     language.Tag
	backend  *badger.Backend
	store    storage.SnapshotRepository
	loader   *source.Loader
	state    atomic.Pointer[catalogState]
	logger   *slog.Logger
}

type catalogState struct {
	index  *search.Index
	origin Origin
}

// Option configures a Catalog.
type Option func(*catalogOptions)

type catalogOptions struct {
	logger *slog.Logger
	client *http.Client
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

// WithHTTPClient sets the client used for remote sources.
func WithHTTPClient(client *http.Client) Option {
	return func(o *catalogOptions) {
		o.client = client
	}
}

// Open builds a Catalog from cfg. A nil cfg uses config.DefaultConfig().
// Source failures never fail Open; an unreadable taxonomy file or store does.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Catalog, error) {
	options := &catalogOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lang, err := cfg.LanguageTag()
	if err != nil {
		return nil, err
	}
	taxonomy, err := loadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		return nil, err
	}

	loader, err := source.NewLoader(
		source.WithLogger(options.logger),
		source.WithFetchOptions(source.FetchOptions{
			MaxAttempts: cfg.FetchAttempts,
			BaseDelay:   cfg.FetchDelay,
			Client:      options.client,
		}),
	)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		cfg:      cfg,
		taxonomy: taxonomy,
		lang:     lang,
		loader:   loader,
		logger:   options.logger,
	}

	if cfg.StorePath != "" {
		backend, err := badger.OpenBackend(cfg.StorePath, false, options.logger)
		if err != nil {
			return nil, fmt.Errorf("open store %s: %w", cfg.StorePath, err)
		}
		store, err := badger.NewSnapshotRepository(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		c.backend = backend
		c.store = store
	}

	if err := c.reload(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func loadTaxonomy(path string) (*classify.Taxonomy, error) {
	if path == "" {
		return classify.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	taxonomy, err := classify.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return taxonomy, nil
}

// reload rebuilds the index: snapshot first, then source, then the built-in list.
func (c *Catalog) reload(ctx context.Context) error {
	if c.store != nil {
		state, err := c.fromSnapshot(ctx)
		switch {
		case err == nil:
			c.state.Store(state)
			return nil
		case errors.Is(err, storage.ErrNotFound):
			c.logger.Debug("no snapshot stored", "path", c.cfg.StorePath)
		default:
			c.logger.Warn("snapshot unusable, reading source", "path", c.cfg.StorePath, "error", err)
		}
	}

	result := c.loader.Load(ctx, c.cfg.DataLocation)
	index, err := c.build(result.Records)
	if errors.Is(err, core.ErrEmptyDataset) && !result.FromFallback {
		c.logger.Warn("source has no usable records, using built-in records", "location", result.Source)
		result = c.loader.Fallback(err)
		index, err = c.build(result.Records)
	}
	if err != nil {
		return err
	}

	c.state.Store(&catalogState{
		index: index,
		origin: Origin{
			Source:       result.Source,
			FromFallback: result.FromFallback,
			Err:          result.Err,
		},
	})
	return nil
}

func (c *Catalog) fromSnapshot(ctx context.Context) (*catalogState, error) {
	info, err := c.store.Info(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.store.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	index, err := c.build(records)
	if err != nil {
		return nil, err
	}
	return &catalogState{
		index:  index,
		origin: Origin{Source: info.Source, FromSnapshot: true, Snapshot: info},
	}, nil
}

func (c *Catalog) build(records []core.RawRecord) (*search.Index, error) {
	index, err := search.Load(records, search.WithTaxonomy(c.taxonomy), search.WithLanguage(c.lang))
	if err != nil {
		return nil, err
	}
	if dropped := index.Dropped(); len(dropped) > 0 {
		c.logger.Warn("records dropped", "count", len(dropped), "first", dropped[0].Error())
	}
	return index, nil
}

// Index returns the current index. It is replaced, never mutated, by Import.
func (c *Catalog) Index() *search.Index {
	return c.state.Load().index
}

// Origin reports where the current index's records came from.
func (c *Catalog) Origin() Origin {
	return c.state.Load().origin
}

// Config returns the validated configuration.
func (c *Catalog) Config() *config.Config {
	return c.cfg
}

// Store returns the snapshot store, or nil when none is configured.
func (c *Catalog) Store() storage.SnapshotRepository {
	return c.store
}

// Import stores paths as the new snapshot and rebuilds the index from it.
// progress, when non-nil, receives per-file progress.
func (c *Catalog) Import(ctx context.Context, progress io.Writer, paths ...string) (*ingest.Report, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}

	opts := []ingest.Option{
		ingest.WithLogger(c.logger),
		ingest.WithFetchOptions(source.FetchOptions{
			MaxAttempts: c.cfg.FetchAttempts,
			BaseDelay:   c.cfg.FetchDelay,
		}),
	}
	if progress != nil {
		opts = append(opts, ingest.WithProgress(progress))
	}
	importer, err := ingest.NewImporter(c.store, opts...)
	if err != nil {
		return nil, err
	}
	defer importer.Release()

	report, err := importer.Import(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if err := c.reload(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

// Close releases the snapshot store.
func (c *Catalog) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing snapshot repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
