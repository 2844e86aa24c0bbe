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
package units_test

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/units"
)

func f(v float64) *float64 { return &v }

func record(ticker string, revenue, assets *float64) *data.Record {
	return &data.Record{
		Ticker:      ticker,
		Revenue:     revenue,
		TotalAssets: assets,
		Multiplier:  1,
	}
}

func TestResolveManualOverride(t *testing.T) {
	engine := units.NewEngine()

	// Aramco reporting 1.6 billion when 1.6 trillion is expected; the
	// curated override decides before any heuristic runs
	profile := engine.Resolve(record("2222", f(1.6e9), f(600e9)))
	assert.Equal(t, data.SourceManual, profile.Source)
	assert.Equal(t, units.UnitMillions, profile.Unit)
	assert.Equal(t, 1e6, profile.Multiplier)
	assert.Equal(t, "Saudi Arabian Oil Co.", profile.CompanyName)
}

func TestResolveBenchmarkMillions(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{} // expose the benchmark path

	// SABIC reporting 175,000 against an expected 175 billion: ratio 1e6
	profile := engine.Resolve(record("2010", f(175_000), f(300_000)))
	assert.Equal(t, data.SourceBenchmark, profile.Source)
	assert.Equal(t, units.UnitMillions, profile.Unit)
	assert.Equal(t, 1e6, profile.Multiplier)
	require.NotNil(t, profile.ObservedRevenue)
	assert.InDelta(t, 175_000, *profile.ObservedRevenue, 1)
	require.NotNil(t, profile.ExpectedRevenue)
	assert.InDelta(t, 175e9, *profile.ExpectedRevenue, 1)
}

func TestResolveBenchmarkThousands(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}

	// STC reporting 76 million against an expected 76 billion: ratio 1e3
	profile := engine.Resolve(record("7010", f(76e6), f(130e9)))
	assert.Equal(t, data.SourceBenchmark, profile.Source)
	assert.Equal(t, units.UnitThousands, profile.Unit)
	assert.Equal(t, 1e3, profile.Multiplier)
}

func TestResolveBenchmarkInconclusive(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}

	// revenue matches the benchmark; nothing to fix
	profile := engine.Resolve(record("7010", f(76e9), f(130e9)))
	assert.Equal(t, data.SourceDefault, profile.Source)
	assert.Equal(t, 1.0, profile.Multiplier)
	assert.Equal(t, units.UnitSAR, profile.Unit)
}

func TestResolveRuleMillions(t *testing.T) {
	engine := units.NewEngine()

	profile := engine.Resolve(record("9999", f(40_000), f(2_000_000)))
	assert.Equal(t, data.SourceRule, profile.Source)
	assert.Equal(t, 1e6, profile.Multiplier)
}

func TestResolveRuleThousands(t *testing.T) {
	engine := units.NewEngine()

	// assets 500x revenue
	profile := engine.Resolve(record("9999", f(1e6), f(5e8)))
	assert.Equal(t, data.SourceRule, profile.Source)
	assert.Equal(t, 1e3, profile.Multiplier)
	assert.Equal(t, units.UnitThousands, profile.Unit)
}

func TestResolveInsuranceRule(t *testing.T) {
	engine := units.NewEngine()

	// insurance issuer with modest revenue and no asset signal
	profile := engine.Resolve(record("8210", f(50e6), nil))
	assert.Equal(t, data.SourceRule, profile.Source)
	assert.Equal(t, 1e3, profile.Multiplier)

	// same numbers outside the insurance range stay in riyals
	profile = engine.Resolve(record("4321", f(50e6), nil))
	assert.Equal(t, data.SourceDefault, profile.Source)
	assert.Equal(t, 1.0, profile.Multiplier)
}

func TestResolveNoRevenue(t *testing.T) {
	engine := units.NewEngine()

	profile := engine.Resolve(record("9999", nil, f(2_000_000)))
	assert.Equal(t, data.SourceDefault, profile.Source)
	assert.Equal(t, 1.0, profile.Multiplier)
}

func TestApplyScalesAllMonetaryFields(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}

	rec := record("2010", f(175_000), f(300_000))
	rec.NetProfit = f(25_000)
	rec.RevenueMillions = f(0.175)

	engine.Apply(rec)

	assert.InDelta(t, 175e9, *rec.Revenue, 1)
	assert.InDelta(t, 300e9, *rec.TotalAssets, 1)
	assert.InDelta(t, 25e9, *rec.NetProfit, 1)
	assert.InDelta(t, 175_000, *rec.RevenueMillions, 1)
	assert.True(t, rec.WasNormalized)
	assert.Equal(t, 1e6, rec.Multiplier)
	assert.Equal(t, units.UnitMillions, rec.OriginalUnit)
}

func TestApplyIdempotent(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}

	rec := record("2010", f(175_000), f(300_000))
	engine.Apply(rec)
	scaled := *rec.Revenue

	// a record already normalized by a previous run is never rescaled
	engine.Apply(rec)
	assert.Equal(t, scaled, *rec.Revenue)
	assert.Equal(t, 1e6, rec.Multiplier)
}

func TestResolveEntitiesSharesMultiplier(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}

	// the annual filing triggers the millions rule; the quarterly filing
	// alone would resolve to plain riyals
	annual := record("4080", f(40_000), f(2_000_000))
	annual.PeriodType = data.Annual
	annual.FiscalYear = 2024

	quarterly := record("4080", f(10_000), f(900_000))
	quarterly.PeriodType = data.Quarterly
	quarterly.FiscalYear = 2024

	profiles := engine.ResolveEntities([]*data.Record{quarterly, annual})
	require.Len(t, profiles, 1)
	assert.Equal(t, 1e6, profiles["4080"].Multiplier)
	assert.Equal(t, data.SourceRule, profiles["4080"].Source)

	// both filings are scaled by the entity's one multiplier
	engine.ApplyProfile(annual, profiles["4080"])
	engine.ApplyProfile(quarterly, profiles["4080"])
	assert.InDelta(t, 40e9, *annual.Revenue, 1)
	assert.InDelta(t, 10e9, *quarterly.Revenue, 1)
	assert.Equal(t, 1e6, quarterly.Multiplier)
}

func TestResolveEntitiesPrefersLatestAnnual(t *testing.T) {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}

	// an old annual filing at millions scale must not decide for a company
	// whose latest annual filing reads as plain riyals
	fy2023 := record("4080", f(40_000), f(2_000_000))
	fy2023.PeriodType = data.Annual
	fy2023.FiscalYear = 2023

	fy2024 := record("4080", f(500_000_000), f(1_000_000_000))
	fy2024.PeriodType = data.Annual
	fy2024.FiscalYear = 2024

	profiles := engine.ResolveEntities([]*data.Record{fy2023, fy2024})
	assert.Equal(t, 1.0, profiles["4080"].Multiplier)
	assert.Equal(t, data.SourceDefault, profiles["4080"].Source)
}

func TestExportJSON(t *testing.T) {
	profiles := []data.UnitProfile{
		{Ticker: "2222", Multiplier: 1e6, Unit: units.UnitMillions, Source: data.SourceManual},
		{Ticker: "7010", Multiplier: 1e3, Unit: units.UnitThousands, Source: data.SourceBenchmark},
	}

	var buf bytes.Buffer
	require.NoError(t, units.ExportJSON(&buf, profiles))

	var doc map[string]data.UnitProfile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc, 2)
	assert.Equal(t, 1e6, doc["2222"].Multiplier)
	assert.Equal(t, units.UnitThousands, doc["7010"].Unit)
}
