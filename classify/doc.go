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


// Package classify assigns analyses to categories by keyword.
//
// A Taxonomy is an ordered list of (category, keywords) rules. Classify walks
// the rules in declared order and returns the first category with a keyword
// contained in the analysis name, or the taxonomy's default category.
// Names and keywords are compared in lowercase, so "HÉPATITE" and "hépatite"
// classify alike. Accents are significant.
package classify
