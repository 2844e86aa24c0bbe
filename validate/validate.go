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

// Package validate runs post-load integrity checks over the fact tables:
// null scans on critical fields, duplicate natural keys, the balance-sheet
// equation within tolerance, and anomaly flags. Findings are reported, never
// auto-corrected.
package validate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// BalanceTolerancePct is the allowed balance-sheet variance.
const BalanceTolerancePct = 5.0

// CogsRevenueBound flags cost of sales exceeding this multiple of revenue.
const CogsRevenueBound = 10.0

// criticalFields maps a reported field name to the SQL predicate counting
// its null facts.
var criticalFields = []struct {
	Name string
	SQL  string
}{
	{"ticker", `SELECT COUNT(*) FROM companies WHERE ticker IS NULL OR ticker = ''`},
	{"company_name", `SELECT COUNT(*) FROM companies WHERE name IS NULL OR name = ''`},
	{"fiscal_year", `SELECT COUNT(*) FROM fiscal_periods WHERE fiscal_year IS NULL OR fiscal_year = 0`},
	{"total_assets", `SELECT COUNT(*) FROM financial_statements WHERE total_assets IS NULL`},
	{"revenue", `SELECT COUNT(*) FROM financial_statements WHERE revenue IS NULL`},
}

// BalanceRow is the slice of a statement the balance-sheet check needs.
type BalanceRow struct {
	Ticker           string
	CompanyName      string
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
}

// Variance returns the balance-sheet variance as a percentage of assets.
func (row *BalanceRow) Variance() float64 {
	if row.TotalAssets == 0 {
		return 0
	}

	diff := row.TotalAssets - (row.TotalLiabilities + row.TotalEquity)
	return math.Abs(diff) / math.Abs(row.TotalAssets) * 100
}

// CheckBalance returns one failure string per row whose variance exceeds the
// tolerance.
func CheckBalance(rows []BalanceRow, tolerancePct float64) []string {
	var failures []string
	for idx := range rows {
		row := &rows[idx]
		if variance := row.Variance(); variance > tolerancePct {
			failures = append(failures,
				fmt.Sprintf("balance sheet variance: %s (%s) %.2f%%", row.Ticker, row.CompanyName, variance))
		}
	}

	return failures
}

// Validator runs the checks against a loaded database.
type Validator struct {
	Pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Validator {
	return &Validator{Pool: pool}
}

// Run executes every check and assembles the report. Query errors abort;
// findings never do.
func (validator *Validator) Run(ctx context.Context) (*Report, error) {
	report := &Report{RanAt: time.Now().UTC()}

	if err := validator.checkNulls(ctx, report); err != nil {
		return nil, err
	}

	if err := validator.checkDuplicates(ctx, report); err != nil {
		return nil, err
	}

	if err := validator.checkBalanceSheet(ctx, report); err != nil {
		return nil, err
	}

	if err := validator.checkAnomalies(ctx, report); err != nil {
		return nil, err
	}

	log.Info().
		Int("Passed", len(report.Passed)).
		Int("Warnings", len(report.Warnings)).
		Int("Failed", len(report.Failed)).
		Msg("validation complete")

	return report, nil
}

func (validator *Validator) checkNulls(ctx context.Context, report *Report) error {
	for _, field := range criticalFields {
		var nulls int
		if err := validator.Pool.QueryRow(ctx, field.SQL).Scan(&nulls); err != nil {
			return fmt.Errorf("null scan for %s: %w", field.Name, err)
		}

		if nulls > 0 {
			report.Fail(fmt.Sprintf("NULL values in %s: %d records", field.Name, nulls))
		} else {
			report.Pass(fmt.Sprintf("%s integrity check", field.Name))
		}
	}

	return nil
}

func (validator *Validator) checkDuplicates(ctx context.Context, report *Report) error {
	var dups []struct {
		Ticker      string
		PeriodLabel string
		DupCount    int
	}

	err := pgxscan.Select(ctx, validator.Pool, &dups, `
		SELECT c.ticker, p.period_label, COUNT(*) AS dup_count
		FROM financial_statements s
		JOIN companies c ON c.id = s.company_id
		JOIN fiscal_periods p ON p.id = s.period_id
		GROUP BY c.ticker, p.period_label
		HAVING COUNT(*) > 1`)
	if err != nil {
		return fmt.Errorf("duplicate scan: %w", err)
	}

	if len(dups) == 0 {
		report.Pass("no duplicate records")
		return nil
	}

	for _, dup := range dups {
		report.Fail(fmt.Sprintf("duplicate: %s %s (%d copies)", dup.Ticker, dup.PeriodLabel, dup.DupCount))
	}

	return nil
}

func (validator *Validator) checkBalanceSheet(ctx context.Context, report *Report) error {
	var rows []BalanceRow
	err := pgxscan.Select(ctx, validator.Pool, &rows, `
		SELECT c.ticker, c.name AS company_name,
			s.total_assets, s.total_liabilities, s.total_equity
		FROM financial_statements s
		JOIN companies c ON c.id = s.company_id
		WHERE s.total_assets IS NOT NULL
			AND s.total_liabilities IS NOT NULL
			AND s.total_equity IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("balance sheet scan: %w", err)
	}

	failures := CheckBalance(rows, BalanceTolerancePct)
	for _, failure := range failures {
		report.Fail(failure)
	}

	if len(failures) == 0 {
		report.Pass(fmt.Sprintf("all %d records passed balance sheet validation", len(rows)))
	}

	return nil
}

func (validator *Validator) checkAnomalies(ctx context.Context, report *Report) error {
	var negative []struct {
		Ticker      string
		TotalEquity float64
	}

	err := pgxscan.Select(ctx, validator.Pool, &negative, `
		SELECT c.ticker, s.total_equity
		FROM financial_statements s
		JOIN companies c ON c.id = s.company_id
		WHERE s.total_equity < 0`)
	if err != nil {
		return fmt.Errorf("negative equity scan: %w", err)
	}

	if len(negative) == 0 {
		report.Pass("no negative equity cases")
	}

	for _, row := range negative {
		report.Warn(fmt.Sprintf("negative equity: %s (%.0f)", row.Ticker, row.TotalEquity))
	}

	var implausible []struct {
		Ticker string
		Ratio  float64
	}

	err = pgxscan.Select(ctx, validator.Pool, &implausible, `
		SELECT c.ticker, s.cost_of_sales / s.revenue AS ratio
		FROM financial_statements s
		JOIN companies c ON c.id = s.company_id
		WHERE s.revenue IS NOT NULL AND s.revenue > 0
			AND s.cost_of_sales IS NOT NULL
			AND s.cost_of_sales / s.revenue > $1`, CogsRevenueBound)
	if err != nil {
		return fmt.Errorf("cogs ratio scan: %w", err)
	}

	if len(implausible) == 0 {
		report.Pass("cost of sales within sanity bound")
	}

	for _, row := range implausible {
		report.Warn(fmt.Sprintf("cost of sales %.1fx revenue: %s", row.Ratio, row.Ticker))
	}

	return nil
}
