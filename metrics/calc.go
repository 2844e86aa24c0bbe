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

// Package metrics derives the ratio and status columns of financial_metrics
// from a normalized statement record. Every division is guarded: a missing
// numerator or a missing/zero denominator yields a null metric, never an
// error or an Inf/NaN.
package metrics

import "github.com/tadawul-vault/tasidata/data"

// ratio computes numerator/denominator scaled by scale, or nil when either
// side is unusable.
func ratio(numerator, denominator *float64, scale float64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}

	value := *numerator / *denominator * scale
	return &value
}

// pick prefers a source-supplied override over the computed value.
func pick(override, computed *float64) *float64 {
	if override != nil {
		return override
	}

	return computed
}

func pickStatus(override *string, computed *string) *string {
	if override != nil {
		return override
	}

	return computed
}

func statusOf(value *float64, band func(float64) string) *string {
	if value == nil {
		return nil
	}

	status := band(*value)
	return &status
}

// Derive computes the full metrics row for a record. Ratio overrides carried
// on the record win over computed values. For banks, insurers and finance
// companies the revenue-based margins are suppressed; ROE and ROA are
// computed the same way for every institution type.
func Derive(rec *data.Record) *data.Metrics {
	institution := Classify(rec.Ticker)

	m := &data.Metrics{
		ReturnOnEquity: ratio(rec.NetProfit, rec.TotalEquity, 100),
		ReturnOnAssets: ratio(rec.NetProfit, rec.TotalAssets, 100),
		CurrentRatio:   ratio(rec.CurrentAssets, rec.CurrentLiabilities, 1),
		DebtToEquity:   ratio(rec.TotalLiabilities, rec.TotalEquity, 100),
		DebtToAssets:   ratio(rec.TotalLiabilities, rec.TotalAssets, 100),

		HasCOGS:            rec.CostOfSales != nil,
		HasOperatingProfit: rec.OperatingProfit != nil,
		HasCashFlow:        rec.OperatingCashFlow != nil,
	}

	// margins are meaningless for issuers whose top line is not revenue
	if institution == Standard {
		m.GrossMargin = ratio(rec.GrossProfit, rec.Revenue, 100)
		m.OperatingMargin = ratio(rec.OperatingProfit, rec.Revenue, 100)
		m.NetMargin = ratio(rec.NetProfit, rec.Revenue, 100)
	}

	if rec.CurrentAssets != nil && rec.Inventory != nil {
		quick := *rec.CurrentAssets - *rec.Inventory
		m.QuickRatio = ratio(&quick, rec.CurrentLiabilities, 1)
	}

	m.InterestCoverageRatio = ratio(rec.OperatingProfit, rec.InterestExpense, 1)
	m.AssetTurnover = ratio(rec.Revenue, rec.TotalAssets, 1)
	m.InventoryTurnover = ratio(rec.CostOfSales, rec.Inventory, 1)
	m.DaysSalesOutstanding = ratio(rec.Receivables, rec.Revenue, 365)

	if rec.CurrentAssets != nil && rec.CurrentLiabilities != nil {
		workingCapital := *rec.CurrentAssets - *rec.CurrentLiabilities
		m.WorkingCapital = &workingCapital
	}

	overrides := rec.Overrides
	m.ReturnOnEquity = pick(overrides.ReturnOnEquity, m.ReturnOnEquity)
	m.ReturnOnAssets = pick(overrides.ReturnOnAssets, m.ReturnOnAssets)
	m.GrossMargin = pick(overrides.GrossMargin, m.GrossMargin)
	m.OperatingMargin = pick(overrides.OperatingMargin, m.OperatingMargin)
	m.NetMargin = pick(overrides.NetMargin, m.NetMargin)
	m.CurrentRatio = pick(overrides.CurrentRatio, m.CurrentRatio)
	m.QuickRatio = pick(overrides.QuickRatio, m.QuickRatio)
	m.DebtToEquity = pick(overrides.DebtToEquity, m.DebtToEquity)
	m.DebtToAssets = pick(overrides.DebtToAssets, m.DebtToAssets)
	m.InterestCoverageRatio = pick(overrides.InterestCoverageRatio, m.InterestCoverageRatio)
	m.AssetTurnover = pick(overrides.AssetTurnover, m.AssetTurnover)
	m.InventoryTurnover = pick(overrides.InventoryTurnover, m.InventoryTurnover)
	m.DaysSalesOutstanding = pick(overrides.DaysSalesOutstanding, m.DaysSalesOutstanding)

	m.ProfitStatus = pickStatus(overrides.ProfitStatus, statusOf(rec.NetProfit, profitBand))
	m.ROEStatus = pickStatus(overrides.ROEStatus, statusOf(m.ReturnOnEquity, roeBand))
	m.LiquidityStatus = pickStatus(overrides.LiquidityStatus, statusOf(m.CurrentRatio, liquidityBand))
	m.LeverageStatus = pickStatus(overrides.LeverageStatus, statusOf(m.DebtToEquity, leverageBand))

	// the profitability score is only ever supplied by the source, the
	// calculator does not invent one
	m.ProfitabilityScore = overrides.ProfitabilityScore

	return m
}
