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

// Package units detects the scale a filing was reported in (riyals,
// thousands or millions) and rescales its monetary values to plain riyals.
//
// Exchange filings do not carry their reporting unit, so the scale has to be
// recovered: curated per-ticker overrides win, then a comparison against
// publicly-known revenue benchmarks, then structural heuristics over the
// statement itself.
package units

import (
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/tadawul-vault/tasidata/data"
)

// Reporting unit names as persisted in unit_multipliers.original_unit.
const (
	UnitSAR       = "SAR"
	UnitThousands = "thousands"
	UnitMillions  = "millions"
)

// Engine resolves unit multipliers. The zero value uses the built-in
// override and benchmark tables; tests may substitute their own.
type Engine struct {
	Overrides  map[string]Override
	Benchmarks map[string]Benchmark
}

func NewEngine() *Engine {
	return &Engine{Overrides: overrides, Benchmarks: benchmarks}
}

// Resolve determines the unit profile for a record without mutating it.
// Precedence: manual override, then revenue benchmark, then structural rules,
// then plain riyals.
func (engine *Engine) Resolve(rec *data.Record) data.UnitProfile {
	profile := data.UnitProfile{
		Ticker:      rec.Ticker,
		CompanyName: rec.CompanyName,
		Multiplier:  1,
		Unit:        UnitSAR,
		Source:      data.SourceDefault,
		DecidedAt:   time.Now().UTC(),
	}

	if override, ok := engine.Overrides[rec.Ticker]; ok {
		profile.Multiplier = override.Multiplier
		profile.Unit = override.Unit
		profile.Source = data.SourceManual
		if override.Company != "" {
			profile.CompanyName = override.Company
		}

		return profile
	}

	if decided := engine.fromBenchmark(rec, &profile); decided {
		return profile
	}

	if decided := engine.fromRules(rec, &profile); decided {
		return profile
	}

	return profile
}

// fromBenchmark compares reported revenue to the known figure. The ratio
// lands near 1e6 when the filing is in millions and near 1e3 when it is in
// thousands; a ratio outside both bands proves nothing and the heuristic
// falls through.
func (engine *Engine) fromBenchmark(rec *data.Record, profile *data.UnitProfile) bool {
	benchmark, ok := engine.Benchmarks[rec.Ticker]
	if !ok || rec.Revenue == nil || *rec.Revenue <= 0 {
		return false
	}

	expected := benchmark.ExpectedBillions * 1e9
	ratio := expected / *rec.Revenue

	observed := *rec.Revenue
	profile.ObservedRevenue = &observed
	profile.ExpectedRevenue = &expected

	switch {
	case ratio > 500_000 && ratio < 2_000_000:
		profile.Multiplier = 1e6
		profile.Unit = UnitMillions
	case ratio > 500 && ratio < 2_000:
		profile.Multiplier = 1e3
		profile.Unit = UnitThousands
	default:
		return false
	}

	profile.Source = data.SourceBenchmark
	return true
}

// fromRules applies the structural heuristics over the statement itself.
func (engine *Engine) fromRules(rec *data.Record, profile *data.UnitProfile) bool {
	if rec.Revenue == nil || *rec.Revenue <= 0 {
		return false
	}

	revenue := *rec.Revenue

	var assets float64
	if rec.TotalAssets != nil {
		assets = *rec.TotalAssets
	}

	// a listed company with revenue under 50k but substantial assets is
	// reporting in millions
	if revenue < 50_000 && assets > 1_000_000 {
		profile.Multiplier = 1e6
		profile.Unit = UnitMillions
		profile.Source = data.SourceRule
		return true
	}

	// asset base orders of magnitude above revenue points at thousands
	if revenue >= 50_000 && revenue < 1e9 && assets > 0 && assets/revenue > 100 {
		profile.Multiplier = 1e3
		profile.Unit = UnitThousands
		profile.Source = data.SourceRule
		return true
	}

	// insurance issuers (8xxx) customarily file in thousands
	if ticker := data.TickerNumber(rec.Ticker); ticker >= 8000 && ticker < 9000 && revenue < 100_000_000 {
		profile.Multiplier = 1e3
		profile.Unit = UnitThousands
		profile.Source = data.SourceRule
		return true
	}

	return false
}

// ResolveEntities decides one profile per ticker for a record set. The
// deciding record is the ticker's latest annual filing, falling back to the
// first record seen; every filing of the ticker then shares that profile so
// a company's periods are never scaled inconsistently within a run.
func (engine *Engine) ResolveEntities(recs []*data.Record) map[string]data.UnitProfile {
	reps := make(map[string]*data.Record, len(recs))
	for _, rec := range recs {
		if rec.Ticker == "" {
			continue
		}

		current, ok := reps[rec.Ticker]
		if !ok || preferable(rec, current) {
			reps[rec.Ticker] = rec
		}
	}

	profiles := make(map[string]data.UnitProfile, len(reps))
	for ticker, rep := range reps {
		profiles[ticker] = engine.Resolve(rep)
	}

	return profiles
}

// preferable reports whether candidate should replace current as a ticker's
// deciding record: annual filings beat quarterly ones, later fiscal years
// beat earlier ones.
func preferable(candidate, current *data.Record) bool {
	candidateAnnual := candidate.PeriodType == data.Annual
	currentAnnual := current.PeriodType == data.Annual

	if candidateAnnual != currentAnnual {
		return candidateAnnual
	}

	return candidate.FiscalYear > current.FiscalYear
}

// ApplyProfile rescales the record's monetary fields in place using an
// already-resolved entity profile. Records normalized by an earlier run keep
// their persisted multiplier and are not rescaled again.
func (engine *Engine) ApplyProfile(rec *data.Record, profile data.UnitProfile) data.UnitProfile {
	if rec.WasNormalized {
		return data.UnitProfile{
			Ticker:      rec.Ticker,
			CompanyName: rec.CompanyName,
			Multiplier:  rec.Multiplier,
			Unit:        rec.OriginalUnit,
			Source:      data.SourceDefault,
			DecidedAt:   time.Now().UTC(),
		}
	}

	if profile.Multiplier != 1 {
		rec.Scale(profile.Multiplier)
		rec.WasNormalized = true
		log.Debug().
			Str("Ticker", rec.Ticker).
			Float64("Multiplier", profile.Multiplier).
			Str("Source", profile.Source).
			Msg("normalized reporting unit")
	}

	rec.OriginalUnit = profile.Unit
	rec.Multiplier = profile.Multiplier

	return profile
}

// Apply resolves and rescales a single record in isolation. Multi-record
// runs go through ResolveEntities first so every filing of a ticker shares
// one multiplier.
func (engine *Engine) Apply(rec *data.Record) data.UnitProfile {
	return engine.ApplyProfile(rec, engine.Resolve(rec))
}

// ExportJSON writes the profile set as a ticker-keyed JSON document, the
// audit artifact consumed by downstream tooling.
func ExportJSON(w io.Writer, profiles []data.UnitProfile) error {
	doc := make(map[string]data.UnitProfile, len(profiles))
	for _, profile := range profiles {
		doc[profile.Ticker] = profile
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
