package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Price\nUrée,30\n"), 0o644))

	data, err := Fetch(context.Background(), path, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Name,Price\nUrée,30\n", string(data))
}

func TestFetch_EmptyLocation(t *testing.T) {
	_, err := Fetch(context.Background(), "  ", FetchOptions{})
	assert.ErrorIs(t, err, ErrEmptyLocation)
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), FetchOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_RemoteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("Name,Price\nCRP,60\n"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL, FetchOptions{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Client:      srv.Client(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Name,Price\nCRP,60\n", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_RemoteGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		Client:      srv.Client(),
	})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		Client:      srv.Client(),
	})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/analyses.csv"))
	assert.True(t, IsRemote("HTTP://example.com"))
	assert.False(t, IsRemote("/var/lib/labsearch/analyses.csv"))
	assert.False(t, IsRemote("analyses.csv"))
}
