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


// Package storage provides the storage abstraction layer for labsearch.
//
// This package defines the snapshot repository interface that decouples the
// persisted catalog from the code that imports and indexes it. The BadgerDB
// implementation lives in storage/badger.
//
// # Snapshots
//
// An import replaces the whole stored catalog in one transaction:
//
//	repo, err := badger.NewSnapshotRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	info, err := repo.ReplaceRecords(ctx, records, "analyses.csv")
//
// Records come back in the order they were written:
//
//	records, err := repo.LoadRecords(ctx)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // nothing imported yet
//	}
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemorySnapshotRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Thread Safety
//
// Repository implementations must be safe for concurrent use.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation.
// Pass context.Background() for operations without specific timeout requirements.
package storage
