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

// Package ingest reads the contractual CSV record stream.
package ingest

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/tadawul-vault/tasidata/data"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile loads raw statement records from a CSV file. Extraction tools on
// Windows commonly emit a UTF-8 byte-order mark; it is stripped before
// parsing so the first header cell matches.
func ReadFile(path string) ([]*data.RawRecord, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return Parse(payload, path)
}

// Parse unmarshals CSV bytes into raw records. Columns the contract does not
// name are ignored; missing optional columns yield empty strings which the
// cleaners degrade to null.
func Parse(payload []byte, source string) ([]*data.RawRecord, error) {
	payload = bytes.TrimPrefix(payload, utf8BOM)

	var records []*data.RawRecord
	if err := gocsv.UnmarshalBytes(payload, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	log.Info().Str("Source", source).Int("Records", len(records)).Msg("read raw records")
	return records, nil
}
