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
	"strconv"
	"strings"
	"time"

	"github.com/tadawul-vault/tasidata/clean"
)

// RawRecord mirrors one row of the contractual input CSV. Every field is kept
// as a string so that malformed cells survive unmarshalling and can be
// degraded to null by the cleaners rather than aborting the whole file.
type RawRecord struct {
	Ticker        string `csv:"ticker"`
	CompanyName   string `csv:"company_name"`
	CompanyType   string `csv:"company_type"`
	SizeCategory  string `csv:"size_category"`
	SectorDerived string `csv:"sector_derived"`
	SectorGICS    string `csv:"sector_gics"`
	FilingID      string `csv:"filing_id"`

	FiscalYear     string `csv:"fiscal_year"`
	PeriodType     string `csv:"period_type"`
	PeriodEnd      string `csv:"period_end"`
	ExtractionDate string `csv:"extraction_date"`

	Revenue            string `csv:"revenue"`
	CostOfSales        string `csv:"cost_of_sales"`
	GrossProfit        string `csv:"gross_profit"`
	OperatingProfit    string `csv:"operating_profit"`
	NetProfit          string `csv:"net_profit"`
	InterestExpense    string `csv:"interest_expense"`
	TotalAssets        string `csv:"total_assets"`
	TotalEquity        string `csv:"total_equity"`
	TotalLiabilities   string `csv:"total_liabilities"`
	CurrentAssets      string `csv:"current_assets"`
	CurrentLiabilities string `csv:"current_liabilities"`
	Inventory          string `csv:"inventory"`
	Receivables        string `csv:"receivables"`
	OperatingCashFlow  string `csv:"operating_cash_flow"`
	Capex              string `csv:"capex"`
	FreeCashFlow       string `csv:"free_cash_flow"`
	WorkingCapital     string `csv:"working_capital"`

	// convenience columns derived upstream from the same (possibly
	// mis-scaled) base values
	RevenueMillions     string `csv:"revenue_millions"`
	NetProfitMillions   string `csv:"net_profit_millions"`
	TotalAssetsMillions string `csv:"total_assets_millions"`
	TotalEquityMillions string `csv:"total_equity_millions"`

	// optional pre-derived ratio/status overrides
	ReturnOnEquity        string `csv:"return_on_equity"`
	ReturnOnAssets        string `csv:"return_on_assets"`
	GrossMargin           string `csv:"gross_margin"`
	OperatingMargin       string `csv:"operating_margin"`
	NetMargin             string `csv:"net_margin"`
	CurrentRatio          string `csv:"current_ratio"`
	QuickRatio            string `csv:"quick_ratio"`
	DebtToEquity          string `csv:"debt_to_equity"`
	DebtToAssets          string `csv:"debt_to_assets"`
	InterestCoverageRatio string `csv:"interest_coverage_ratio"`
	AssetTurnover         string `csv:"asset_turnover"`
	InventoryTurnover     string `csv:"inventory_turnover"`
	DaysSalesOutstanding  string `csv:"days_sales_outstanding"`
	ProfitabilityScore    string `csv:"profitability_score"`
	ProfitStatus          string `csv:"profit_status"`
	LiquidityStatus       string `csv:"liquidity_status"`
	LeverageStatus        string `csv:"leverage_status"`
	ROEStatus             string `csv:"roe_status"`

	DataQualityScore string `csv:"data_quality_score"`
	IsLatest         string `csv:"is_latest"`

	// normalization provenance written back by a previous run
	WasNormalized           string `csv:"was_normalized"`
	OriginalUnit            string `csv:"original_unit"`
	NormalizationMultiplier string `csv:"normalization_multiplier"`
}

// MetricOverrides carries ratio and status values supplied by the source file
// itself. When present they take precedence over freshly computed values.
type MetricOverrides struct {
	ReturnOnEquity        *float64
	ReturnOnAssets        *float64
	GrossMargin           *float64
	OperatingMargin       *float64
	NetMargin             *float64
	CurrentRatio          *float64
	QuickRatio            *float64
	DebtToEquity          *float64
	DebtToAssets          *float64
	InterestCoverageRatio *float64
	AssetTurnover         *float64
	InventoryTurnover     *float64
	DaysSalesOutstanding  *float64
	ProfitabilityScore    *int
	ProfitStatus          *string
	LiquidityStatus       *string
	LeverageStatus        *string
	ROEStatus             *string
}

// Record is the cleaned, typed form of a RawRecord; all downstream pipeline
// stages operate on Records.
type Record struct {
	Ticker       string
	CompanyName  string
	CompanyType  string
	SizeCategory string
	SectorName   string
	FilingID     string

	FiscalYear  int
	PeriodType  PeriodType
	PeriodEnd   *time.Time
	ExtractedAt *time.Time

	Revenue            *float64
	CostOfSales        *float64
	GrossProfit        *float64
	OperatingProfit    *float64
	NetProfit          *float64
	InterestExpense    *float64
	TotalAssets        *float64
	TotalEquity        *float64
	TotalLiabilities   *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	Inventory          *float64
	Receivables        *float64
	OperatingCashFlow  *float64
	Capex              *float64
	FreeCashFlow       *float64
	WorkingCapital     *float64

	RevenueMillions     *float64
	NetProfitMillions   *float64
	TotalAssetsMillions *float64
	TotalEquityMillions *float64

	Overrides MetricOverrides

	DataQualityScore int
	IsLatest         bool

	WasNormalized bool
	OriginalUnit  string
	Multiplier    float64
}

// CanonicalTicker trims whitespace and strips the trailing ".0" that appears
// when ticker columns pass through a float-typed spreadsheet column.
func CanonicalTicker(ticker string) string {
	ticker = strings.TrimSpace(ticker)
	ticker = strings.TrimSuffix(ticker, ".0")
	return ticker
}

// TickerNumber returns the canonical ticker as an integer, or 0 when the
// ticker is not numeric. TASI tickers are numeric; the institution-type
// classification ranges depend on the numeric form.
func TickerNumber(ticker string) int {
	n, err := strconv.Atoi(CanonicalTicker(ticker))
	if err != nil {
		return 0
	}
	return n
}

// Clean converts the raw row into a typed Record. Parse failures degrade to
// nil fields and never abort the record.
func (raw *RawRecord) Clean() *Record {
	rec := &Record{
		Ticker:       CanonicalTicker(raw.Ticker),
		CompanyName:  strings.TrimSpace(raw.CompanyName),
		CompanyType:  strings.TrimSpace(raw.CompanyType),
		SizeCategory: strings.TrimSpace(raw.SizeCategory),
		FilingID:     strings.TrimSpace(raw.FilingID),
		PeriodType:   ParsePeriodType(raw.PeriodType),
		PeriodEnd:    clean.Date(raw.PeriodEnd),
		ExtractedAt:  clean.Date(raw.ExtractionDate),

		Revenue:            clean.Numeric(raw.Revenue),
		CostOfSales:        clean.Numeric(raw.CostOfSales),
		GrossProfit:        clean.Numeric(raw.GrossProfit),
		OperatingProfit:    clean.Numeric(raw.OperatingProfit),
		NetProfit:          clean.Numeric(raw.NetProfit),
		InterestExpense:    clean.Numeric(raw.InterestExpense),
		TotalAssets:        clean.Numeric(raw.TotalAssets),
		TotalEquity:        clean.Numeric(raw.TotalEquity),
		TotalLiabilities:   clean.Numeric(raw.TotalLiabilities),
		CurrentAssets:      clean.Numeric(raw.CurrentAssets),
		CurrentLiabilities: clean.Numeric(raw.CurrentLiabilities),
		Inventory:          clean.Numeric(raw.Inventory),
		Receivables:        clean.Numeric(raw.Receivables),
		OperatingCashFlow:  clean.Numeric(raw.OperatingCashFlow),
		Capex:              clean.Numeric(raw.Capex),
		FreeCashFlow:       clean.Numeric(raw.FreeCashFlow),
		WorkingCapital:     clean.Numeric(raw.WorkingCapital),

		RevenueMillions:     clean.Numeric(raw.RevenueMillions),
		NetProfitMillions:   clean.Numeric(raw.NetProfitMillions),
		TotalAssetsMillions: clean.Numeric(raw.TotalAssetsMillions),
		TotalEquityMillions: clean.Numeric(raw.TotalEquityMillions),

		IsLatest:      clean.Boolean(raw.IsLatest),
		WasNormalized: clean.Boolean(raw.WasNormalized),
		OriginalUnit:  strings.TrimSpace(raw.OriginalUnit),
		Multiplier:    1,
	}

	// the derived sector takes priority over the GICS classification
	rec.SectorName = strings.TrimSpace(raw.SectorDerived)
	if rec.SectorName == "" {
		rec.SectorName = strings.TrimSpace(raw.SectorGICS)
	}

	if rec.CompanyName == "" {
		rec.CompanyName = rec.Ticker
	}

	if year := clean.Numeric(raw.FiscalYear); year != nil {
		rec.FiscalYear = int(*year)
	}

	if score := clean.Numeric(raw.DataQualityScore); score != nil {
		rec.DataQualityScore = int(*score)
	}

	if mult := clean.Numeric(raw.NormalizationMultiplier); mult != nil && *mult > 0 {
		rec.Multiplier = *mult
	}

	rec.Overrides = MetricOverrides{
		ReturnOnEquity:        clean.Numeric(raw.ReturnOnEquity),
		ReturnOnAssets:        clean.Numeric(raw.ReturnOnAssets),
		GrossMargin:           clean.Numeric(raw.GrossMargin),
		OperatingMargin:       clean.Numeric(raw.OperatingMargin),
		NetMargin:             clean.Numeric(raw.NetMargin),
		CurrentRatio:          clean.Numeric(raw.CurrentRatio),
		QuickRatio:            clean.Numeric(raw.QuickRatio),
		DebtToEquity:          clean.Numeric(raw.DebtToEquity),
		DebtToAssets:          clean.Numeric(raw.DebtToAssets),
		InterestCoverageRatio: clean.Numeric(raw.InterestCoverageRatio),
		AssetTurnover:         clean.Numeric(raw.AssetTurnover),
		InventoryTurnover:     clean.Numeric(raw.InventoryTurnover),
		DaysSalesOutstanding:  clean.Numeric(raw.DaysSalesOutstanding),
		ProfitStatus:          clean.Status(raw.ProfitStatus, ProfitStatusValues),
		LiquidityStatus:       clean.Status(raw.LiquidityStatus, LiquidityStatusValues),
		LeverageStatus:        clean.Status(raw.LeverageStatus, LeverageStatusValues),
		ROEStatus:             clean.Status(raw.ROEStatus, ROEStatusValues),
	}

	if score := clean.Numeric(raw.ProfitabilityScore); score != nil {
		intScore := int(*score)
		rec.Overrides.ProfitabilityScore = &intScore
	}

	return rec
}

// monetaryFields returns pointers to every monetary field slot on the record,
// including the pre-derived "in millions" convenience columns which were
// computed from the same mis-scaled base.
func (rec *Record) monetaryFields() []**float64 {
	return []**float64{
		&rec.Revenue, &rec.CostOfSales, &rec.GrossProfit, &rec.OperatingProfit,
		&rec.NetProfit, &rec.InterestExpense, &rec.TotalAssets, &rec.TotalEquity,
		&rec.TotalLiabilities, &rec.CurrentAssets, &rec.CurrentLiabilities,
		&rec.Inventory, &rec.Receivables, &rec.OperatingCashFlow, &rec.Capex,
		&rec.FreeCashFlow, &rec.WorkingCapital,
		&rec.RevenueMillions, &rec.NetProfitMillions, &rec.TotalAssetsMillions,
		&rec.TotalEquityMillions,
	}
}

// Scale multiplies every monetary field by mult. Nil and zero values are left
// untouched.
func (rec *Record) Scale(mult float64) {
	if mult == 1 {
		return
	}

	for _, field := range rec.monetaryFields() {
		if *field == nil || **field == 0 {
			continue
		}

		scaled := **field * mult
		*field = &scaled
	}
}
