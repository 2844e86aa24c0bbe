// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clean converts the loosely-typed values found in exchange filings
// into well-typed Go values. Every function degrades bad input to a nil (or
// zero) result; cleaners never return errors.
package clean

import (
	"strconv"
	"strings"
	"time"
)

// dateFormats are tried in order; the first successful parse wins
var dateFormats = []string{
	"1/2/2006",   // month/day/year
	"2006-01-02", // ISO
	"2/1/2006",   // day/month/year
}

var truthy = map[string]bool{
	"TRUE": true,
	"YES":  true,
	"1":    true,
	"T":    true,
}

var nullSentinels = map[string]bool{
	"":     true,
	"nan":  true,
	"n/a":  true,
	"none": true,
	"null": true,
}

// Numeric parses a monetary or percentage value. Percent signs, thousands
// separators and surrounding whitespace are stripped before parsing. Empty or
// unparseable input yields nil.
func Numeric(value string) *float64 {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "%", "")
	value = strings.ReplaceAll(value, ",", "")

	if value == "" || nullSentinels[strings.ToLower(value)] {
		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}

	return &parsed
}

// Boolean coerces the various truth spellings found in source files. Anything
// outside the truthy set ("TRUE", "YES", "1", "T"; case-insensitive) is false.
func Boolean(value string) bool {
	return truthy[strings.ToUpper(strings.TrimSpace(value))]
}

// Status validates a free-text classification against a closed vocabulary.
// Null sentinels ("nan", "n/a", "", "none") and values outside the allowed set
// both yield nil; values are never coerced to a default.
func Status(value string, allowed map[string]bool) *string {
	value = strings.TrimSpace(value)
	if nullSentinels[strings.ToLower(value)] {
		return nil
	}

	if !allowed[value] {
		return nil
	}

	return &value
}

// Date tries each supported layout in priority order. No layout matching
// yields nil.
func Date(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}

	return nil
}
