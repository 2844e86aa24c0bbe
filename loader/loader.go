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

// Package loader persists cleaned, normalized statement records as fact
// rows. Statements are upserted by (company_id, period_id) with an
// extraction-timestamp freshness gate; metrics land once per statement. A
// single bad record is counted and skipped, but failures past a fixed cap
// abort the run.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/dimension"
	"github.com/tadawul-vault/tasidata/units"
)

// ErrTooManyFailures aborts a run whose per-record failures exceed the cap;
// past that point the input file itself is suspect.
var ErrTooManyFailures = errors.New("too many record failures")

// Outcome describes what the writer did with one fact.
type Outcome int

const (
	Inserted Outcome = iota
	Updated
	Skipped
)

// Writer persists one prepared fact. Flush commits whatever batch is open.
type Writer interface {
	Write(ctx context.Context, statement *data.Statement, m *data.Metrics) (Outcome, error)
	Flush(ctx context.Context) error
}

const (
	defaultErrorCap = 100
	defaultWorkers  = 4
)

// Loader wires the pipeline stages together.
type Loader struct {
	Resolver *dimension.Resolver
	Writer   Writer
	Engine   *units.Engine

	// Workers bounds the concurrent clean/normalize/derive stage.
	Workers int

	// ErrorCap aborts the run once exceeded.
	ErrorCap int

	profiles []data.UnitProfile
}

func New(resolver *dimension.Resolver, writer Writer, engine *units.Engine) *Loader {
	return &Loader{
		Resolver: resolver,
		Writer:   writer,
		Engine:   engine,
		Workers:  defaultWorkers,
		ErrorCap: defaultErrorCap,
	}
}

// Run processes the raw records in arrival order and returns the run
// summary. The summary is returned even when the run aborts so that partial
// progress can be recorded.
func (loader *Loader) Run(ctx context.Context, sourceFile string, raws []*data.RawRecord) (*data.RunSummary, error) {
	run := &data.RunSummary{
		ID:         uuid.New(),
		SourceFile: sourceFile,
		StartedAt:  time.Now().UTC(),
		Total:      len(raws),
		Status:     "failed",
	}

	facts, err := loader.prepare(ctx, raws)
	if err != nil {
		run.FinishedAt = time.Now().UTC()
		return run, err
	}

	loader.profiles = profilesOf(facts)

	for _, fact := range facts {
		if fact.Profile.Multiplier != 1 {
			run.Normalized++
		}

		if err := loader.load(ctx, fact, run); err != nil {
			run.Failed++
			log.Warn().Err(err).
				Str("Ticker", fact.Record.Ticker).
				Int("FiscalYear", fact.Record.FiscalYear).
				Msg("record failed")

			if run.Failed > loader.errorCap() {
				run.FinishedAt = time.Now().UTC()
				return run, fmt.Errorf("%w: %d records failed", ErrTooManyFailures, run.Failed)
			}
		}
	}

	if err := loader.Writer.Flush(ctx); err != nil {
		run.FinishedAt = time.Now().UTC()
		return run, err
	}

	run.FinishedAt = time.Now().UTC()
	run.Status = "success"

	log.Info().Object("Run", run).Msg("load run complete")
	return run, nil
}

func (loader *Loader) load(ctx context.Context, fact *prepared, run *data.RunSummary) error {
	companyID, err := loader.Resolver.Company(ctx, fact.Record)
	if err != nil {
		return err
	}

	periodID, err := loader.Resolver.Period(ctx, fact.Record)
	if err != nil {
		return err
	}

	statement := statementFrom(fact.Record, companyID, periodID)

	outcome, err := loader.Writer.Write(ctx, statement, fact.Metrics)
	if err != nil {
		return err
	}

	switch outcome {
	case Inserted:
		run.Inserted++
	case Updated:
		run.Updated++
	case Skipped:
		run.Skipped++
	}

	return nil
}

// UnitProfiles returns the per-ticker unit decisions of the last run, first
// occurrence per ticker.
func (loader *Loader) UnitProfiles() []data.UnitProfile {
	return loader.profiles
}

func (loader *Loader) errorCap() int {
	if loader.ErrorCap > 0 {
		return loader.ErrorCap
	}

	return defaultErrorCap
}

func statementFrom(rec *data.Record, companyID, periodID int64) *data.Statement {
	return &data.Statement{
		CompanyID: companyID,
		PeriodID:  periodID,
		FilingID:  rec.FilingID,

		Revenue:            rec.Revenue,
		CostOfSales:        rec.CostOfSales,
		GrossProfit:        rec.GrossProfit,
		OperatingProfit:    rec.OperatingProfit,
		NetProfit:          rec.NetProfit,
		InterestExpense:    rec.InterestExpense,
		TotalAssets:        rec.TotalAssets,
		TotalEquity:        rec.TotalEquity,
		TotalLiabilities:   rec.TotalLiabilities,
		CurrentAssets:      rec.CurrentAssets,
		CurrentLiabilities: rec.CurrentLiabilities,
		Inventory:          rec.Inventory,
		Receivables:        rec.Receivables,
		OperatingCashFlow:  rec.OperatingCashFlow,
		Capex:              rec.Capex,
		FreeCashFlow:       rec.FreeCashFlow,
		WorkingCapital:     rec.WorkingCapital,

		RevenueMillions:     rec.RevenueMillions,
		NetProfitMillions:   rec.NetProfitMillions,
		TotalAssetsMillions: rec.TotalAssetsMillions,
		TotalEquityMillions: rec.TotalEquityMillions,

		DataQualityScore: rec.DataQualityScore,
		IsLatest:         rec.IsLatest,

		WasNormalized: rec.WasNormalized,
		OriginalUnit:  rec.OriginalUnit,
		Multiplier:    rec.Multiplier,

		ExtractedAt: rec.ExtractedAt,
	}
}
