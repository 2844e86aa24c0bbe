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
package loader_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/dimension"
	"github.com/tadawul-vault/tasidata/loader"
	"github.com/tadawul-vault/tasidata/units"
)

type memStore struct {
	mu        sync.Mutex
	nextID    int64
	sectors   map[string]*data.Sector
	companies map[string]*data.Company
	periods   map[string]*data.FiscalPeriod
}

func newMemStore() *memStore {
	return &memStore{
		sectors:   make(map[string]*data.Sector),
		companies: make(map[string]*data.Company),
		periods:   make(map[string]*data.FiscalPeriod),
	}
}

func (s *memStore) SectorByCode(_ context.Context, code string) (*data.Sector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sector, ok := s.sectors[code]; ok {
		return sector, nil
	}
	return nil, dimension.ErrNotFound
}

func (s *memStore) CreateSector(_ context.Context, sector *data.Sector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sector.ID = s.nextID
	s.sectors[sector.Code] = sector
	return nil
}

func (s *memStore) CompanyByTicker(_ context.Context, ticker string) (*data.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if company, ok := s.companies[ticker]; ok {
		return company, nil
	}
	return nil, dimension.ErrNotFound
}

func (s *memStore) CreateCompany(_ context.Context, company *data.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	company.ID = s.nextID
	s.companies[company.Ticker] = company
	return nil
}

func (s *memStore) PeriodByLabel(_ context.Context, label string) (*data.FiscalPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if period, ok := s.periods[label]; ok {
		return period, nil
	}
	return nil, dimension.ErrNotFound
}

func (s *memStore) CreatePeriod(_ context.Context, period *data.FiscalPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	period.ID = s.nextID
	s.periods[period.PeriodLabel] = period
	return nil
}

// memWriter mimics the Postgres writer's freshness contract in memory.
type memWriter struct {
	statements map[[2]int64]*data.Statement
	metrics    map[int64]*data.Metrics
	failOn     map[string]error
	flushes    int
	nextID     int64
}

func newMemWriter() *memWriter {
	return &memWriter{
		statements: make(map[[2]int64]*data.Statement),
		metrics:    make(map[int64]*data.Metrics),
		failOn:     make(map[string]error),
	}
}

func (w *memWriter) Write(_ context.Context, statement *data.Statement, m *data.Metrics) (loader.Outcome, error) {
	if err := w.failOn[statement.FilingID]; err != nil {
		return loader.Skipped, err
	}

	key := [2]int64{statement.CompanyID, statement.PeriodID}
	existing, ok := w.statements[key]
	if !ok {
		w.nextID++
		statement.ID = w.nextID
		w.statements[key] = statement
		m.StatementID = statement.ID
		w.metrics[statement.ID] = m
		return loader.Inserted, nil
	}

	if !loader.Fresher(statement.ExtractedAt, existing.ExtractedAt) {
		return loader.Skipped, nil
	}

	statement.ID = existing.ID
	w.statements[key] = statement
	m.StatementID = existing.ID
	w.metrics[existing.ID] = m
	return loader.Updated, nil
}

func (w *memWriter) Flush(context.Context) error {
	w.flushes++
	return nil
}

func raw(ticker, filingID, extracted string) *data.RawRecord {
	return &data.RawRecord{
		Ticker:         ticker,
		CompanyName:    "Company " + ticker,
		SectorDerived:  "Materials",
		FilingID:       filingID,
		FiscalYear:     "2024",
		PeriodType:     "Annual",
		PeriodEnd:      "2024-12-31",
		ExtractionDate: extracted,
		Revenue:        "1,000,000,000",
		NetProfit:      "150,000,000",
		TotalAssets:    "4,000,000,000",
		TotalEquity:    "1,500,000,000",
	}
}

func newLoader(writer loader.Writer) *loader.Loader {
	engine := units.NewEngine()
	engine.Overrides = map[string]units.Override{}
	return loader.New(dimension.NewResolver(newMemStore()), writer, engine)
}

func TestRunInsertsFacts(t *testing.T) {
	writer := newMemWriter()
	ldr := newLoader(writer)

	run, err := ldr.Run(context.Background(), "tasi.csv", []*data.RawRecord{
		raw("2350", "F1", "2025-01-10"),
		raw("4321", "F2", "2025-01-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 2, run.Inserted)
	assert.Zero(t, run.Updated)
	assert.Zero(t, run.Failed)
	assert.Equal(t, "success", run.Status)
	assert.Len(t, writer.statements, 2)
	assert.Len(t, writer.metrics, 2)
	assert.GreaterOrEqual(t, writer.flushes, 1)
}

func TestRunFreshness(t *testing.T) {
	writer := newMemWriter()
	ldr := newLoader(writer)
	ctx := context.Background()

	_, err := ldr.Run(ctx, "t1.csv", []*data.RawRecord{raw("2350", "F1", "2025-01-10")})
	require.NoError(t, err)

	// same period, older extraction: skipped
	run, err := ldr.Run(ctx, "t2.csv", []*data.RawRecord{raw("2350", "F1", "2025-01-05")})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Skipped)
	assert.Zero(t, run.Updated)

	// strictly newer extraction: updated in place, metrics re-derived
	fresher := raw("2350", "F2", "2025-02-01")
	fresher.NetProfit = "300,000,000"
	run, err = ldr.Run(ctx, "t3.csv", []*data.RawRecord{fresher})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Updated)
	assert.Len(t, writer.statements, 1)
	require.Len(t, writer.metrics, 1)

	// the stored metrics row tracks the updated statement, not the original
	m := writer.metrics[1]
	require.NotNil(t, m.ReturnOnEquity)
	assert.InDelta(t, 20.0, *m.ReturnOnEquity, 0.01) // 300M / 1.5B
}

func TestRunErrorCap(t *testing.T) {
	writer := newMemWriter()
	writer.failOn["BAD1"] = errors.New("boom")
	writer.failOn["BAD2"] = errors.New("boom")
	writer.failOn["BAD3"] = errors.New("boom")

	ldr := newLoader(writer)
	ldr.ErrorCap = 2

	run, err := ldr.Run(context.Background(), "tasi.csv", []*data.RawRecord{
		raw("2350", "BAD1", "2025-01-10"),
		raw("4321", "BAD2", "2025-01-10"),
		raw("1214", "BAD3", "2025-01-10"),
		raw("3030", "OK", "2025-01-10"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrTooManyFailures)
	assert.Equal(t, 3, run.Failed)
	assert.Equal(t, "failed", run.Status)
}

func TestRunToleratesFailuresUnderCap(t *testing.T) {
	writer := newMemWriter()
	writer.failOn["BAD"] = errors.New("constraint violation")

	ldr := newLoader(writer)

	run, err := ldr.Run(context.Background(), "tasi.csv", []*data.RawRecord{
		raw("2350", "BAD", "2025-01-10"),
		raw("4321", "OK", "2025-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 1, run.Inserted)
	assert.Equal(t, "success", run.Status)
}

func TestRunNormalizesAndProfiles(t *testing.T) {
	writer := newMemWriter()
	ldr := newLoader(writer)

	rec := raw("9999", "F1", "2025-01-10")
	rec.Revenue = "40,000" // millions-scale filing
	rec.TotalAssets = "2,000,000"

	run, err := ldr.Run(context.Background(), "tasi.csv", []*data.RawRecord{
		rec,
		raw("2350", "F2", "2025-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Normalized)

	profiles := ldr.UnitProfiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, "9999", profiles[0].Ticker)
	assert.Equal(t, 1e6, profiles[0].Multiplier)
	assert.Equal(t, 1.0, profiles[1].Multiplier)

	// the persisted fact carries rescaled values and provenance
	var normalized *data.Statement
	for _, statement := range writer.statements {
		if statement.WasNormalized {
			normalized = statement
		}
	}

	require.NotNil(t, normalized)
	assert.InDelta(t, 40e9, *normalized.Revenue, 1)
	assert.Equal(t, 1e6, normalized.Multiplier)
}

func TestRunSharesEntityMultiplier(t *testing.T) {
	writer := newMemWriter()
	ldr := newLoader(writer)

	// the annual filing reads as millions scale; the quarterly filing for
	// the same company would read as plain riyals on its own
	annual := raw("4080", "F1", "2025-01-10")
	annual.Revenue = "40,000"
	annual.TotalAssets = "2,000,000"

	quarterly := raw("4080", "F2", "2025-01-10")
	quarterly.PeriodType = "Quarterly"
	quarterly.PeriodEnd = "2024-03-31"
	quarterly.Revenue = "10,000"
	quarterly.TotalAssets = "900,000"

	run, err := ldr.Run(context.Background(), "tasi.csv", []*data.RawRecord{quarterly, annual})
	require.NoError(t, err)
	assert.Equal(t, 2, run.Normalized)

	// one decision for the company, applied to every period
	for _, statement := range writer.statements {
		assert.Equal(t, 1e6, statement.Multiplier)
		assert.True(t, statement.WasNormalized)
	}

	profiles := ldr.UnitProfiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "4080", profiles[0].Ticker)
	assert.Equal(t, 1e6, profiles[0].Multiplier)
}

func TestFresher(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, loader.Fresher(&t2, &t1))
	assert.False(t, loader.Fresher(&t1, &t2))
	assert.False(t, loader.Fresher(&t1, &t1))
	assert.False(t, loader.Fresher(nil, &t1))
	assert.False(t, loader.Fresher(nil, nil))
	assert.True(t, loader.Fresher(&t1, nil))
}
