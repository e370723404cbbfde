package source

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/poiesic/labsearch/core"
)

// Result is the outcome of a best-effort load.
type Result struct {
	Records      []core.RawRecord
	Source       string // location read, or FallbackName
	FromFallback bool
	Err          error // why the fallback was used; nil otherwise
}

// Loader reads a delimited source and falls back to DefaultRecords on failure.
type Loader struct {
	fetch  FetchOptions
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithFetchOptions sets retry and client settings for remote sources.
func WithFetchOptions(opts FetchOptions) Option {
	return func(l *Loader) error {
		if opts.MaxAttempts < 0 {
			return ErrInvalidMaxAttempts
		}
		l.fetch = opts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load fetches and parses location. It never fails: any error, including an
// empty location or a source without rows, yields the built-in records with
// FromFallback set and Err holding the cause.
func (l *Loader) Load(ctx context.Context, location string) Result {
	records, err := l.read(ctx, location)
	if err != nil {
		l.logger.Warn("source unavailable, using built-in records", "location", location, "error", err)
		return l.Fallback(err)
	}
	l.logger.Debug("source loaded", "location", location, "records", len(records))
	return Result{Records: records, Source: location}
}

// Fallback returns the built-in records with cause recorded as the reason.
func (l *Loader) Fallback(cause error) Result {
	return Result{
		Records:      DefaultRecords(),
		Source:       FallbackName,
		FromFallback: true,
		Err:          cause,
	}
}

func (l *Loader) read(ctx context.Context, location string) ([]core.RawRecord, error) {
	data, err := Fetch(ctx, location, l.fetch)
	if err != nil {
		return nil, err
	}
	records, err := ParseDelimited(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}
	return records, nil
}
