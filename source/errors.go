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


package source

import "errors"

var (
	// ErrColumnsNotFound is returned when a header has no name-like or no price-like column.
	ErrColumnsNotFound = errors.New("name and price columns not found")

	// ErrEmptyInput is returned when delimited input has no header line.
	ErrEmptyInput = errors.New("empty delimited input")

	// ErrEmptyLocation is returned when no source location is configured.
	ErrEmptyLocation = errors.New("source location is empty")

	// ErrInvalidMaxAttempts is returned when the retry budget is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

	// ErrUnexpectedStatus is returned for non-200 HTTP responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
