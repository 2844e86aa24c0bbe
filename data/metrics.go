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

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Metrics is one row of the financial_metrics table. Ratios carrying a
// percentage scale (ROE, ROA, margins, debt ratios) are stored as
// percentages; the remaining ratios are raw quotients. Nil means the metric
// could not be derived from the statement.
type Metrics struct {
	ID          int64
	StatementID int64

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
	WorkingCapital        *float64

	ProfitabilityScore *int
	ProfitStatus       *string
	LiquidityStatus    *string
	LeverageStatus     *string
	ROEStatus          *string

	HasCOGS            bool
	HasOperatingProfit bool
	HasCashFlow        bool
}

const metricsSaveSQL = `INSERT INTO financial_metrics (
	"statement_id",
	"return_on_equity",
	"return_on_assets",
	"gross_margin",
	"operating_margin",
	"net_margin",
	"current_ratio",
	"quick_ratio",
	"debt_to_equity",
	"debt_to_assets",
	"interest_coverage_ratio",
	"asset_turnover",
	"inventory_turnover",
	"days_sales_outstanding",
	"working_capital",
	"profitability_score",
	"profit_status",
	"liquidity_status",
	"leverage_status",
	"roe_status",
	"has_cogs",
	"has_operating_profit",
	"has_cash_flow"
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
) ON CONFLICT ON CONSTRAINT financial_metrics_statement_id_key DO UPDATE SET
	return_on_equity = EXCLUDED.return_on_equity,
	return_on_assets = EXCLUDED.return_on_assets,
	gross_margin = EXCLUDED.gross_margin,
	operating_margin = EXCLUDED.operating_margin,
	net_margin = EXCLUDED.net_margin,
	current_ratio = EXCLUDED.current_ratio,
	quick_ratio = EXCLUDED.quick_ratio,
	debt_to_equity = EXCLUDED.debt_to_equity,
	debt_to_assets = EXCLUDED.debt_to_assets,
	interest_coverage_ratio = EXCLUDED.interest_coverage_ratio,
	asset_turnover = EXCLUDED.asset_turnover,
	inventory_turnover = EXCLUDED.inventory_turnover,
	days_sales_outstanding = EXCLUDED.days_sales_outstanding,
	working_capital = EXCLUDED.working_capital,
	profitability_score = EXCLUDED.profitability_score,
	profit_status = EXCLUDED.profit_status,
	liquidity_status = EXCLUDED.liquidity_status,
	leverage_status = EXCLUDED.leverage_status,
	roe_status = EXCLUDED.roe_status,
	has_cogs = EXCLUDED.has_cogs,
	has_operating_profit = EXCLUDED.has_operating_profit,
	has_cash_flow = EXCLUDED.has_cash_flow`

// Save upserts the derived metrics for a statement, keyed by statement id.
// Metrics are written when the statement first lands and rewritten whenever
// the statement itself is updated, so the two rows never disagree.
func (metrics *Metrics) Save(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, metricsSaveSQL,
		metrics.StatementID,
		metrics.ReturnOnEquity,
		metrics.ReturnOnAssets,
		metrics.GrossMargin,
		metrics.OperatingMargin,
		metrics.NetMargin,
		metrics.CurrentRatio,
		metrics.QuickRatio,
		metrics.DebtToEquity,
		metrics.DebtToAssets,
		metrics.InterestCoverageRatio,
		metrics.AssetTurnover,
		metrics.InventoryTurnover,
		metrics.DaysSalesOutstanding,
		metrics.WorkingCapital,
		metrics.ProfitabilityScore,
		metrics.ProfitStatus,
		metrics.LiquidityStatus,
		metrics.LeverageStatus,
		metrics.ROEStatus,
		metrics.HasCOGS,
		metrics.HasOperatingProfit,
		metrics.HasCashFlow,
	)

	if err != nil {
		log.Error().Err(err).Object("Metrics", metrics).Msg("save financial metrics failed")
	}

	return err
}

func (metrics *Metrics) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("StatementID", metrics.StatementID)
}
