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


// Package search provides the in-memory analysis index.
//
// An Index is built once with Load and never changes afterwards. It answers
// four kinds of query:
//   - Search: substring match on name or code, or word prefix on name
//   - RankedSearch: every term must appear in code, name or description;
//     exact code matches rank first, then names containing the whole query
//   - Suggest: short autocomplete lists for partial input
//   - Fuzzy: typo-tolerant fallback on names
//
// All matching ignores case and diacritics. Results keep the index's
// locale-aware name order unless a ranking says otherwise. The index does no
// I/O, logging or rate limiting; callers debounce Suggest themselves.
package search
