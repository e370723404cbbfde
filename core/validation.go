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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// currencyMarkers are stripped from price text before parsing.
var currencyMarkers = []string{"dhs", "dh", "mad", "eur", "€", "$", "usd"}

// ValidateRawRecord validates a RawRecord according to domain rules and
// returns its coerced price.
//
// Validation rules:
//   - Name must not be blank
//   - Price must parse as a finite, non-negative number
//
// NOT validated (opaque display strings):
//   - Code (may be empty in some sources)
//   - Sector, Delay, Description
func ValidateRawRecord(raw RawRecord) (float64, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return 0, fmt.Errorf("%w: %w", ErrMalformedRecord, ErrEmptyName)
	}

	price, err := ParsePrice(raw.Price)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return price, nil
}

// ParsePrice reads a price written with either decimal convention
// ("1.234,50", "1,234.50", "1 234,5", "1.500 DH", "120 DH").
// The last of ',' and '.' is taken as the decimal separator when both appear.
// A lone separator followed by exactly three digits groups thousands unless
// the integer part is zero ("0,500" is half a unit). Exponents are rejected.
func ParsePrice(s string) (float64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	for _, marker := range currencyMarkers {
		raw = strings.ReplaceAll(raw, marker, "")
	}
	raw = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "").Replace(raw)
	if raw == "" || strings.IndexFunc(raw, notPriceRune) >= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec = ','
		}
	case cpos >= 0:
		if groupsThousands(raw, ',') {
			dec = '.'
		} else {
			dec = ','
		}
	case dpos >= 0:
		if groupsThousands(raw, '.') {
			dec = ','
		}
	}

	switch dec {
	case ',':
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	default:
		raw = strings.ReplaceAll(raw, ",", "")
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, s)
	}
	return f, nil
}

// notPriceRune reports runes that cannot appear in a price once currency
// markers and spaces are stripped. strconv alone would accept "1e3" and "inf".
func notPriceRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r == '.' || r == ',' || r == '-' || r == '+':
		return false
	}
	return true
}

// groupsThousands reports whether sep, the only separator kind in raw,
// separates thousands rather than decimals.
func groupsThousands(raw string, sep byte) bool {
	if strings.Count(raw, string(sep)) > 1 {
		return true
	}
	pos := strings.LastIndexByte(raw, sep)
	if len(raw)-pos-1 != 3 {
		return false
	}
	whole := strings.TrimLeft(raw[:pos], "+-")
	return strings.Trim(whole, "0") != ""
}
