package ingest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4)

	tracker.Start()
	tracker.FileDone(10)
	tracker.FileDone(5)

	assert.Contains(t, buf.String(), "2/4 files (50.0%) - 15 records")
	assert.GreaterOrEqual(t, tracker.Elapsed(), time.Duration(0))
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 2)

	tracker.FileDone(3)
	tracker.Finish()

	assert.Empty(t, buf.String(), "no output before Start")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1)

	tracker.Start()
	tracker.FileDone(1)
	tracker.FileDone(1)
	tracker.Finish()

	assert.Contains(t, buf.String(), "1/1 files (100.0%) - 2 records")
	assert.Contains(t, buf.String(), "\n", "finish should print newline")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0 files (0.0%)")
}

func TestProgressTracker_NilWriter(t *testing.T) {
	tracker := NewProgressTracker(nil, 1)
	tracker.Start()
	tracker.FileDone(1)
	tracker.Finish()
}
