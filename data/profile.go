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

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// Unit multiplier provenance sources, ordered by precedence.
const (
	SourceManual    = "manual"
	SourceBenchmark = "benchmark"
	SourceRule      = "rule"
	SourceDefault   = "default"
)

// UnitProfile records how the unit multiplier for a ticker was determined.
// Profiles are persisted so that later runs reuse the same scaling decision
// and so that the provenance can be audited.
type UnitProfile struct {
	Ticker          string    `json:"ticker"`
	CompanyName     string    `json:"company_name,omitempty"`
	Multiplier      float64   `json:"multiplier"`
	Unit            string    `json:"unit"`
	Source          string    `json:"source"`
	ObservedRevenue *float64  `json:"observed_revenue,omitempty"`
	ExpectedRevenue *float64  `json:"expected_revenue,omitempty"`
	DecidedAt       time.Time `json:"decided_at"`
}

const profileSaveSQL = `INSERT INTO unit_multipliers (
	"ticker",
	"company_name",
	"multiplier",
	"unit",
	"source",
	"observed_revenue",
	"expected_revenue",
	"decided_at"
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8
) ON CONFLICT ON CONSTRAINT unit_multipliers_pkey DO UPDATE SET
	company_name = EXCLUDED.company_name,
	multiplier = EXCLUDED.multiplier,
	unit = EXCLUDED.unit,
	source = EXCLUDED.source,
	observed_revenue = EXCLUDED.observed_revenue,
	expected_revenue = EXCLUDED.expected_revenue,
	decided_at = EXCLUDED.decided_at`

// SaveDB upserts the profile keyed by ticker.
func (profile *UnitProfile) SaveDB(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, profileSaveSQL,
		profile.Ticker,
		profile.CompanyName,
		profile.Multiplier,
		profile.Unit,
		profile.Source,
		profile.ObservedRevenue,
		profile.ExpectedRevenue,
		profile.DecidedAt,
	)

	if err != nil {
		log.Error().Err(err).Str("Ticker", profile.Ticker).Msg("save unit profile to DB failed")
	}

	return err
}
