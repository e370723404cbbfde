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


package storage

import (
	"fmt"

	"github.com/poiesic/labsearch/core"
)

// MarshalRawRecord serializes a RawRecord to bytes.
func MarshalRawRecord(record core.RawRecord) []byte {
	buf := make([]byte, core.RawRecordMUS.Size(record))
	core.RawRecordMUS.Marshal(record, buf)
	return buf
}

// UnmarshalRawRecord deserializes a RawRecord from bytes.
func UnmarshalRawRecord(data []byte) (core.RawRecord, error) {
	record, _, err := core.RawRecordMUS.Unmarshal(data)
	if err != nil {
		return core.RawRecord{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return record, nil
}

// MarshalSnapshotInfo serializes a SnapshotInfo to bytes.
func MarshalSnapshotInfo(info *core.SnapshotInfo) []byte {
	buf := make([]byte, core.SnapshotInfoMUS.Size(*info))
	core.SnapshotInfoMUS.Marshal(*info, buf)
	return buf
}

// UnmarshalSnapshotInfo deserializes a SnapshotInfo from bytes.
func UnmarshalSnapshotInfo(data []byte) (*core.SnapshotInfo, error) {
	info, _, err := core.SnapshotInfoMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &info, nil
}
