package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
	now     func() time.Time
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &SnapshotRepository{
		backend: backend,
		now:     time.Now,
	}, nil
}

// Close is a no-op; the backend is owned by the caller.
func (r *SnapshotRepository) Close() error {
	return nil
}

// ReplaceRecords swaps the stored snapshot for records.
//
// The info key is removed first and written last, with the records streamed
// through a write batch in between. An interrupted replace leaves no info, so
// Info and LoadRecords report storage.ErrNotFound rather than a partial set.
func (r *SnapshotRepository) ReplaceRecords(ctx context.Context, records []core.RawRecord, source string) (*core.SnapshotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info := &core.SnapshotInfo{
		Fingerprint: core.Fingerprint(records),
		Count:       len(records),
		Source:      source,
		ImportedAt:  r.now().UTC().UnixMicro(),
	}

	if err := r.backend.Update(deleteInfo); err != nil {
		return nil, err
	}
	stale, err := r.recordKeysFrom(len(records))
	if err != nil {
		return nil, err
	}

	err = r.backend.Batch(func(wb *badger.WriteBatch) error {
		for _, key := range stale {
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		for pos, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeRawRecordKey(pos), storage.MarshalRawRecord(record)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.backend.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(snapshotInfoKey), storage.MarshalSnapshotInfo(info))
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// LoadRecords returns the stored records in input order.
func (r *SnapshotRepository) LoadRecords(ctx context.Context) ([]core.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []core.RawRecord
	err := r.backend.View(func(tx *badger.Txn) error {
		info, err := readInfo(tx)
		if err != nil {
			return err
		}

		records = make([]core.RawRecord, 0, info.Count)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rawRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			pos, ok := parseRawRecordKey(item.Key())
			if !ok || pos != len(records) {
				return fmt.Errorf("%w: unexpected key %x", storage.ErrCorruptSnapshot, item.Key())
			}
			err := item.Value(func(val []byte) error {
				record, err := storage.UnmarshalRawRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}

		if len(records) != info.Count {
			return fmt.Errorf("%w: %d records stored, info says %d", storage.ErrCorruptSnapshot, len(records), info.Count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Info returns the stored snapshot description.
func (r *SnapshotRepository) Info(ctx context.Context) (*core.SnapshotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var info *core.SnapshotInfo
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		info, err = readInfo(tx)
		return err
	})
	return info, err
}

// Clear removes all stored records and the snapshot info.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.backend.Update(deleteInfo); err != nil {
		return err
	}
	keys, err := r.recordKeysFrom(0)
	if err != nil {
		return err
	}
	return r.backend.Batch(func(wb *badger.WriteBatch) error {
		for _, key := range keys {
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func readInfo(tx *badger.Txn) (*core.SnapshotInfo, error) {
	item, err := tx.Get([]byte(snapshotInfoKey))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var info *core.SnapshotInfo
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		info, unmarshalErr = storage.UnmarshalSnapshotInfo(val)
		return unmarshalErr
	})
	return info, err
}

func deleteInfo(tx *badger.Txn) error {
	err := tx.Delete([]byte(snapshotInfoKey))
	if err == badger.ErrKeyNotFound {
		return nil
	}
	return err
}

// recordKeysFrom lists raw record keys at position from and beyond, plus any
// key under the record prefix that does not parse.
func (r *SnapshotRepository) recordKeysFrom(from int) ([][]byte, error) {
	var keys [][]byte
	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rawRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if pos, ok := parseRawRecordKey(key); ok && pos < from {
				continue
			}
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}
