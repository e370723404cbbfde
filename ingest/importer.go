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


package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/source"
	"github.com/poiesic/labsearch/storage"
)

// Importer parses delimited files and stores them as the catalog snapshot.
type Importer struct {
	store    storage.SnapshotRepository
	pool     *ants.Pool
	fetch    source.FetchOptions
	progress io.Writer
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the number of files parsed concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(im *Importer) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if im.pool != nil {
			im.pool.Release()
		}
		im.pool = pool
		return nil
	}
}

// WithFetchOptions sets retry settings for URL arguments.
func WithFetchOptions(opts source.FetchOptions) Option {
	return func(im *Importer) error {
		if opts.MaxAttempts < 0 {
			return source.ErrInvalidMaxAttempts
		}
		im.fetch = opts
		return nil
	}
}

// WithProgress reports per-file progress to w.
// Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(im *Importer) error {
		im.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates an Importer writing to store.
func NewImporter(store storage.SnapshotRepository, opts ...Option) (*Importer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	im := &Importer{
		store:  store,
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(im); optErr != nil {
			im.Release()
			return nil, optErr
		}
	}
	return im, nil
}

// FileReport describes one imported file.
type FileReport struct {
	Path     string
	Records  int
	Rejected int // rows that will be dropped when indexed
}

// Report describes a completed import.
type Report struct {
	Info  *core.SnapshotInfo
	Files []FileReport
}

// Rejected sums rejected rows across files.
func (r *Report) Rejected() int {
	total := 0
	for _, f := range r.Files {
		total += f.Rejected
	}
	return total
}

type parsed struct {
	records []core.RawRecord
	err     error
}

// Import parses paths (local files or URLs) concurrently and replaces the
// stored snapshot with their records, concatenated in argument order.
// Nothing is written if any file fails or no file holds a usable record.
func (im *Importer) Import(ctx context.Context, paths ...string) (*Report, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	tracker := NewProgressTracker(im.progress, len(paths))
	if im.progress != nil {
		tracker.Start()
	}

	results := make([]parsed, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		err := im.pool.Submit(func() {
			defer wg.Done()
			records, err := im.parse(ctx, path)
			results[i] = parsed{records: records, err: err}
			tracker.FileDone(len(records))
		})
		if err != nil {
			wg.Done()
			results[i] = parsed{err: err}
		}
	}
	wg.Wait()
	tracker.Finish()

	var errs []error
	report := &Report{Files: make([]FileReport, len(paths))}
	all := make([]core.RawRecord, 0)
	accepted := 0
	for i, res := range results {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", paths[i], res.err))
			continue
		}
		rejected := 0
		for _, record := range res.records {
			if _, err := core.ValidateRawRecord(record); err != nil {
				rejected++
			}
		}
		accepted += len(res.records) - rejected
		report.Files[i] = FileReport{Path: paths[i], Records: len(res.records), Rejected: rejected}
		all = append(all, res.records...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if accepted == 0 {
		return nil, core.ErrEmptyDataset
	}

	info, err := im.store.ReplaceRecords(ctx, all, sourceLabel(paths))
	if err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	report.Info = info

	im.logger.Info("catalog imported",
		"files", len(paths),
		"records", info.Count,
		"rejected", report.Rejected(),
		"fingerprint", fmt.Sprintf("%016x", uint64(info.Fingerprint)))
	return report, nil
}

func (im *Importer) parse(ctx context.Context, path string) ([]core.RawRecord, error) {
	data, err := source.Fetch(ctx, path, im.fetch)
	if err != nil {
		return nil, err
	}
	return source.ParseDelimited(bytes.NewReader(data))
}

// Release releases the worker pool.
// The importer should not be used after calling Release.
func (im *Importer) Release() {
	if im.pool != nil {
		im.pool.Release()
	}
}

func sourceLabel(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	return fmt.Sprintf("%s (+%d more)", paths[0], len(paths)-1)
}
