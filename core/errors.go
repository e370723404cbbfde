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


package core

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrEmptyDataset indicates that no usable record survived loading.
	ErrEmptyDataset = errors.New("no usable analysis records")

	// ErrMalformedRecord indicates a single input record was unusable and was dropped.
	ErrMalformedRecord = errors.New("malformed analysis record")

	// ErrEmptySearchTerm indicates a blank search string.
	ErrEmptySearchTerm = errors.New("search term cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidPrice indicates the price could not be read as a non-negative number.
	ErrInvalidPrice = errors.New("invalid price")
)

// MalformedRecordError reports a dropped input record.
// It matches both ErrMalformedRecord and its cause with errors.Is.
type MalformedRecordError struct {
	Position int // 0-based position in the input
	Name     string
	Err      error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s at position %d (%q): %v", ErrMalformedRecord, e.Position, e.Name, e.Err)
}

func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
