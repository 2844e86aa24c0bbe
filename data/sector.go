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
package data

import "strings"

// Sector is one row of the sectors dimension.
type Sector struct {
	ID   int64
	Code string
	Name string
}

// maximum length of a sector code column
const sectorCodeLen = 20

// SectorCode derives the stable dimension code from a free-text sector name:
// upper-cased, spaces replaced with underscores, truncated to the column
// width. An empty name maps to UNKNOWN.
func SectorCode(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "UNKNOWN"
	}

	code := strings.ToUpper(name)
	code = strings.ReplaceAll(code, " ", "_")
	if len(code) > sectorCodeLen {
		code = code[:sectorCodeLen]
	}

	return code
}

// Company is one row of the companies dimension.
type Company struct {
	ID           int64
	Ticker       string
	Name         string
	SectorID     int64
	CompanyType  string
	SizeCategory string
}
