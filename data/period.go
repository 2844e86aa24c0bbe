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
	"fmt"
	"strings"
	"time"
)

type PeriodType string

const (
	Annual    PeriodType = "Annual"
	Quarterly PeriodType = "Quarterly"
)

// ParsePeriodType coerces the source spelling to a PeriodType. Anything that
// is not recognisably quarterly is treated as annual.
func ParsePeriodType(value string) PeriodType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "quarterly", "quarter", "q":
		return Quarterly
	default:
		return Annual
	}
}

// FiscalPeriod is one row of the fiscal_periods dimension. Periods are shared
// across companies and keyed by (fiscal_year, period_label).
type FiscalPeriod struct {
	ID          int64
	FiscalYear  int
	PeriodType  PeriodType
	PeriodLabel string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// quarterOf maps a calendar month to its fiscal quarter (1..4).
func quarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// DerivePeriod builds the dimension row for a statement. A missing period end
// falls back to Dec 31 for annual filings and Jun 30 for quarterly ones.
// Annual periods always span the full calendar year regardless of the
// reported end date.
func DerivePeriod(fiscalYear int, periodType PeriodType, periodEnd *time.Time) FiscalPeriod {
	period := FiscalPeriod{
		FiscalYear: fiscalYear,
		PeriodType: periodType,
	}

	end := periodEnd
	if end == nil {
		var fallback time.Time
		switch periodType {
		case Quarterly:
			fallback = time.Date(fiscalYear, time.June, 30, 0, 0, 0, 0, time.UTC)
		default:
			fallback = time.Date(fiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
		}

		end = &fallback
	}

	if periodType == Annual {
		period.PeriodLabel = fmt.Sprintf("FY%d", fiscalYear)
		period.PeriodStart = time.Date(fiscalYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		period.PeriodEnd = time.Date(fiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
		return period
	}

	quarter := quarterOf(end.Month())
	startMonth := time.Month((quarter-1)*3 + 1)

	period.PeriodLabel = fmt.Sprintf("Q%d %d", quarter, fiscalYear)
	period.PeriodStart = time.Date(fiscalYear, startMonth, 1, 0, 0, 0, 0, time.UTC)
	period.PeriodEnd = *end

	// the quarter's bounds live in the fiscal year even when the filed end
	// date drifted into an adjacent calendar year
	if end.Year() != fiscalYear {
		period.PeriodEnd = time.Date(fiscalYear, startMonth+3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}

	return period
}
