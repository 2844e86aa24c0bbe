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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Statement is one row of the financial_statements fact table. Monetary
// values are in riyals after unit normalization; nil means the source filing
// did not report the line item.
type Statement struct {
	ID        int64
	CompanyID int64
	PeriodID  int64
	FilingID  string

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

	DataQualityScore int
	IsLatest         bool

	WasNormalized bool
	OriginalUnit  string
	Multiplier    float64

	ExtractedAt *time.Time
}

func (statement *Statement) values() []any {
	return []any{
		statement.CompanyID, statement.PeriodID, statement.FilingID,
		statement.Revenue, statement.CostOfSales, statement.GrossProfit,
		statement.OperatingProfit, statement.NetProfit, statement.InterestExpense,
		statement.TotalAssets, statement.TotalEquity, statement.TotalLiabilities,
		statement.CurrentAssets, statement.CurrentLiabilities,
		statement.Inventory, statement.Receivables, statement.OperatingCashFlow,
		statement.Capex, statement.FreeCashFlow, statement.WorkingCapital,
		statement.RevenueMillions, statement.NetProfitMillions,
		statement.TotalAssetsMillions, statement.TotalEquityMillions,
		statement.DataQualityScore, statement.IsLatest,
		statement.WasNormalized, statement.OriginalUnit, statement.Multiplier,
		statement.ExtractedAt,
	}
}

const statementInsertSQL = `INSERT INTO financial_statements (
	"company_id", "period_id", "filing_id",
	"revenue", "cost_of_sales", "gross_profit", "operating_profit",
	"net_profit", "interest_expense", "total_assets", "total_equity",
	"total_liabilities", "current_assets", "current_liabilities",
	"inventory", "receivables", "operating_cash_flow", "capex",
	"free_cash_flow", "working_capital",
	"revenue_millions", "net_profit_millions", "total_assets_millions",
	"total_equity_millions",
	"data_quality_score", "is_latest",
	"was_normalized", "original_unit", "normalization_multiplier",
	"extracted_at"
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30
) RETURNING id`

const statementUpdateSQL = `UPDATE financial_statements SET
	filing_id = $3,
	revenue = $4,
	cost_of_sales = $5,
	gross_profit = $6,
	operating_profit = $7,
	net_profit = $8,
	interest_expense = $9,
	total_assets = $10,
	total_equity = $11,
	total_liabilities = $12,
	current_assets = $13,
	current_liabilities = $14,
	inventory = $15,
	receivables = $16,
	operating_cash_flow = $17,
	capex = $18,
	free_cash_flow = $19,
	working_capital = $20,
	revenue_millions = $21,
	net_profit_millions = $22,
	total_assets_millions = $23,
	total_equity_millions = $24,
	data_quality_score = $25,
	is_latest = $26,
	was_normalized = $27,
	original_unit = $28,
	normalization_multiplier = $29,
	extracted_at = $30
WHERE company_id = $1 AND period_id = $2`

// Insert writes a brand new fact row and records the generated id on the
// statement.
func (statement *Statement) Insert(ctx context.Context, tx pgx.Tx) error {
	err := tx.QueryRow(ctx, statementInsertSQL, statement.values()...).Scan(&statement.ID)
	if err != nil {
		log.Error().Err(err).Object("Statement", statement).Msg("insert financial statement failed")
	}

	return err
}

// Update overwrites the fact row identified by (company_id, period_id).
// Callers decide freshness before updating.
func (statement *Statement) Update(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, statementUpdateSQL, statement.values()...)
	if err != nil {
		log.Error().Err(err).Object("Statement", statement).Msg("update financial statement failed")
	}

	return err
}

func (statement *Statement) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("CompanyID", statement.CompanyID)
	e.Int64("PeriodID", statement.PeriodID)
	e.Str("FilingID", statement.FilingID)
}
