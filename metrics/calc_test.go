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
package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/metrics"
)

func f(v float64) *float64 { return &v }

func industrial() *data.Record {
	return &data.Record{
		Ticker:             "2350",
		Revenue:            f(1000),
		CostOfSales:        f(600),
		GrossProfit:        f(400),
		OperatingProfit:    f(250),
		NetProfit:          f(200),
		InterestExpense:    f(25),
		TotalAssets:        f(4000),
		TotalEquity:        f(1000),
		TotalLiabilities:   f(3000),
		CurrentAssets:      f(900),
		CurrentLiabilities: f(600),
		Inventory:          f(300),
		Receivables:        f(100),
		OperatingCashFlow:  f(260),
	}
}

func TestDeriveStandardCompany(t *testing.T) {
	m := metrics.Derive(industrial())

	require.NotNil(t, m.ReturnOnEquity)
	assert.InDelta(t, 20.0, *m.ReturnOnEquity, 1e-9)
	assert.InDelta(t, 5.0, *m.ReturnOnAssets, 1e-9)
	assert.InDelta(t, 40.0, *m.GrossMargin, 1e-9)
	assert.InDelta(t, 25.0, *m.OperatingMargin, 1e-9)
	assert.InDelta(t, 20.0, *m.NetMargin, 1e-9)
	assert.InDelta(t, 1.5, *m.CurrentRatio, 1e-9)
	assert.InDelta(t, 1.0, *m.QuickRatio, 1e-9)
	assert.InDelta(t, 300.0, *m.DebtToEquity, 1e-9)
	assert.InDelta(t, 75.0, *m.DebtToAssets, 1e-9)
	assert.InDelta(t, 10.0, *m.InterestCoverageRatio, 1e-9)
	assert.InDelta(t, 0.25, *m.AssetTurnover, 1e-9)
	assert.InDelta(t, 2.0, *m.InventoryTurnover, 1e-9)
	assert.InDelta(t, 36.5, *m.DaysSalesOutstanding, 1e-9)
	assert.InDelta(t, 300.0, *m.WorkingCapital, 1e-9)

	assert.Equal(t, "Profit", *m.ProfitStatus)
	assert.Equal(t, "Good", *m.ROEStatus) // exactly 20 is not Excellent
	assert.Equal(t, "Moderate", *m.LiquidityStatus)
	assert.Equal(t, "Critical", *m.LeverageStatus) // 300 is the Critical floor

	assert.True(t, m.HasCOGS)
	assert.True(t, m.HasOperatingProfit)
	assert.True(t, m.HasCashFlow)
	assert.Nil(t, m.ProfitabilityScore)
}

func TestDeriveGuardsDivisions(t *testing.T) {
	rec := &data.Record{
		Ticker:      "2350",
		NetProfit:   f(200),
		TotalEquity: f(0), // zero denominator
	}

	m := metrics.Derive(rec)
	assert.Nil(t, m.ReturnOnEquity)
	assert.Nil(t, m.ReturnOnAssets)
	assert.Nil(t, m.GrossMargin)
	assert.Nil(t, m.CurrentRatio)
	assert.Nil(t, m.QuickRatio)
	assert.Nil(t, m.WorkingCapital)
	assert.Nil(t, m.LiquidityStatus)
	assert.Nil(t, m.LeverageStatus)
	assert.Equal(t, "Profit", *m.ProfitStatus)
	assert.False(t, m.HasCOGS)
}

func TestDeriveBankSuppressesMargins(t *testing.T) {
	rec := industrial()
	rec.Ticker = "1120" // Al Rajhi Bank

	m := metrics.Derive(rec)
	assert.Nil(t, m.GrossMargin)
	assert.Nil(t, m.OperatingMargin)
	assert.Nil(t, m.NetMargin)

	// ROE and ROA are computed exactly as for standard companies
	require.NotNil(t, m.ReturnOnEquity)
	assert.InDelta(t, 20.0, *m.ReturnOnEquity, 1e-9)
	assert.InDelta(t, 5.0, *m.ReturnOnAssets, 1e-9)
}

func TestDeriveInsuranceSuppressesMargins(t *testing.T) {
	rec := industrial()
	rec.Ticker = "8010"

	m := metrics.Derive(rec)
	assert.Nil(t, m.NetMargin)
	require.NotNil(t, m.ReturnOnAssets)
}

func TestDeriveOverridesWin(t *testing.T) {
	rec := industrial()
	status := "Good"
	score := 85
	rec.Overrides.ReturnOnEquity = f(18.5)
	rec.Overrides.ROEStatus = &status
	rec.Overrides.ProfitabilityScore = &score

	m := metrics.Derive(rec)
	assert.InDelta(t, 18.5, *m.ReturnOnEquity, 1e-9)
	assert.Equal(t, "Good", *m.ROEStatus)
	require.NotNil(t, m.ProfitabilityScore)
	assert.Equal(t, 85, *m.ProfitabilityScore)
}

func TestDeriveLoss(t *testing.T) {
	rec := industrial()
	rec.NetProfit = f(-50)

	m := metrics.Derive(rec)
	assert.Equal(t, "Loss", *m.ProfitStatus)
	assert.Equal(t, "Negative", *m.ROEStatus)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, metrics.Bank, metrics.Classify("1120"))
	assert.Equal(t, metrics.Bank, metrics.Classify("1010.0"))
	assert.Equal(t, metrics.Insurance, metrics.Classify("8010"))
	assert.Equal(t, metrics.Finance, metrics.Classify("1182"))
	assert.Equal(t, metrics.Standard, metrics.Classify("2222"))
	assert.Equal(t, metrics.Standard, metrics.Classify(""))
}

func TestPrimaryIncomeName(t *testing.T) {
	assert.Equal(t, "net_interest_income", metrics.PrimaryIncomeName(metrics.Bank))
	assert.Equal(t, "gross_written_premiums", metrics.PrimaryIncomeName(metrics.Insurance))
	assert.Equal(t, "revenue", metrics.PrimaryIncomeName(metrics.Standard))
	assert.Equal(t, "revenue", metrics.PrimaryIncomeName(metrics.Finance))
}
