package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// DefaultMaxAttempts is the number of tries for a remote source.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the wait before the first retry.
	DefaultBaseDelay = 500 * time.Millisecond
)

// FetchOptions controls how remote sources are read.
// Zero values select the defaults.
type FetchOptions struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Client      *http.Client
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BaseDelay == 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.Client == nil {
		o.Client = http.DefaultClient
	}
	return o
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch reads the bytes at location, a local path or an http(s) URL.
// Remote reads are retried with exponential backoff; 4xx answers are not retried.
func Fetch(ctx context.Context, location string, opts FetchOptions) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}
	if !IsRemote(location) {
		return os.ReadFile(location)
	}

	opts = opts.withDefaults()
	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		data, err := get(ctx, opts.Client, location)
		if err != nil {
			return err
		}
		body = data
		return nil
	}, opts.MaxAttempts, opts.BaseDelay)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	return body, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Permanent(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, Permanent(err)
		}
		return nil, err
	}
	return io.ReadAll(resp.Body)
}
