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

// Package library wraps the database pool and answers summary queries about
// the loaded warehouse.
package library

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadawul-vault/tasidata/data"
)

type Library struct {
	DBUrl string

	Pool *pgxpool.Pool
}

// NewFromDB creates a library connected to the given database
func NewFromDB(ctx context.Context, dbURL string) (*Library, error) {
	myLibrary := &Library{DBUrl: dbURL}
	if err := myLibrary.Connect(ctx); err != nil {
		return nil, err
	}
	return myLibrary, nil
}

// Connect to the configured database
func (myLibrary *Library) Connect(ctx context.Context) error {
	if myLibrary.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, myLibrary.DBUrl)
	if err != nil {
		return err
	}
	myLibrary.Pool = pool

	return nil
}

// Close the database pool
func (myLibrary *Library) Close() {
	myLibrary.Pool.Close()
}

func (myLibrary *Library) count(ctx context.Context, sql string) (int, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	count := 0
	err = conn.QueryRow(ctx, sql).Scan(&count)
	return count, err
}

// NumCompanies returns the count of companies in the dimension table
func (myLibrary *Library) NumCompanies(ctx context.Context) (int, error) {
	return myLibrary.count(ctx, "SELECT count(*) FROM companies")
}

// NumSectors returns the count of sectors in the dimension table
func (myLibrary *Library) NumSectors(ctx context.Context) (int, error) {
	return myLibrary.count(ctx, "SELECT count(*) FROM sectors")
}

// NumStatements returns the count of fact rows loaded
func (myLibrary *Library) NumStatements(ctx context.Context) (int, error) {
	return myLibrary.count(ctx, "SELECT count(*) FROM financial_statements")
}

// NumNormalized returns the count of facts whose units were rescaled
func (myLibrary *Library) NumNormalized(ctx context.Context) (int, error) {
	return myLibrary.count(ctx, "SELECT count(*) FROM financial_statements WHERE was_normalized")
}

// LastUpdated returns the finish time of the most recent load run
func (myLibrary *Library) LastUpdated(ctx context.Context) (time.Time, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Release()

	var lastUpdated time.Time
	err = conn.QueryRow(ctx,
		"SELECT coalesce(max(finished_at), '0001-01-01'::timestamp) FROM load_runs").Scan(&lastUpdated)
	if err != nil {
		return time.Time{}, err
	}

	return lastUpdated, nil
}

// RecentRuns returns the most recent load runs, newest first
func (myLibrary *Library) RecentRuns(ctx context.Context, limit int) ([]*data.RunSummary, error) {
	var runs []*data.RunSummary
	err := pgxscan.Select(ctx, myLibrary.Pool, &runs,
		`SELECT id, source_file, started_at, finished_at, total, inserted, updated,
skipped, failed, normalized, status FROM load_runs ORDER BY started_at DESC LIMIT $1`, limit)
	return runs, err
}

// UnitCount is one row of the reporting-unit distribution
type UnitCount struct {
	Unit  string
	Count int
}

// UnitDistribution returns how many tickers report in each unit
func (myLibrary *Library) UnitDistribution(ctx context.Context) ([]*UnitCount, error) {
	var counts []*UnitCount
	err := pgxscan.Select(ctx, myLibrary.Pool, &counts,
		`SELECT unit, count(*) AS count FROM unit_multipliers GROUP BY unit ORDER BY count DESC`)
	return counts, err
}

// RefreshView rebuilds the read-optimized company_financials view after a
// load run
func (myLibrary *Library) RefreshView(ctx context.Context) error {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "REFRESH MATERIALIZED VIEW company_financials")
	return err
}
