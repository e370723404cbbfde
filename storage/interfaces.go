package storage

import (
	"context"

	"github.com/poiesic/labsearch/core"
)

// SnapshotRepository persists the most recently imported catalog.
//
// A snapshot is the raw records of one import, kept in input order, plus
// a SnapshotInfo describing them. Records are stored unvalidated so a later
// load runs them through the same validation as any other source.
type SnapshotRepository interface {
	// ReplaceRecords replaces the stored snapshot with records. Readers see
	// either a complete snapshot or ErrNotFound, never a partial one.
	// The info's Fingerprint covers the records in the given order.
	// Returns the info written.
	ReplaceRecords(ctx context.Context, records []core.RawRecord, source string) (*core.SnapshotInfo, error)

	// LoadRecords returns the stored records in their original order.
	// Returns ErrNotFound if nothing has been imported.
	LoadRecords(ctx context.Context) ([]core.RawRecord, error)

	// Info describes the stored snapshot.
	// Returns ErrNotFound if nothing has been imported.
	Info(ctx context.Context) (*core.SnapshotInfo, error)

	// Clear removes the stored snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Close releases resources held by the repository.
	Close() error
}
