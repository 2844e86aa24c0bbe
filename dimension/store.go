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
package dimension

import (
	"context"
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadawul-vault/tasidata/data"
)

// PGStore persists dimension rows in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

// isUniqueViolation reports whether err is a duplicate-key error, which can
// happen when two loaders race to create the same natural key.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (store *PGStore) SectorByCode(ctx context.Context, code string) (*data.Sector, error) {
	var sector data.Sector
	err := pgxscan.Get(ctx, store.Pool, &sector,
		`SELECT id, code, name FROM sectors WHERE code=$1`, code)
	if err != nil {
		return nil, mapNoRows(err)
	}

	return &sector, nil
}

func (store *PGStore) CreateSector(ctx context.Context, sector *data.Sector) error {
	err := store.Pool.QueryRow(ctx,
		`INSERT INTO sectors ("code", "name") VALUES ($1, $2) RETURNING id`,
		sector.Code, sector.Name).Scan(&sector.ID)
	if isUniqueViolation(err) {
		existing, err2 := store.SectorByCode(ctx, sector.Code)
		if err2 != nil {
			return err
		}

		*sector = *existing
		return nil
	}

	return err
}

func (store *PGStore) CompanyByTicker(ctx context.Context, ticker string) (*data.Company, error) {
	var company data.Company
	err := pgxscan.Get(ctx, store.Pool, &company,
		`SELECT id, ticker, name, sector_id, company_type, size_category
		FROM companies WHERE ticker=$1`, ticker)
	if err != nil {
		return nil, mapNoRows(err)
	}

	return &company, nil
}

func (store *PGStore) CreateCompany(ctx context.Context, company *data.Company) error {
	err := store.Pool.QueryRow(ctx,
		`INSERT INTO companies (
			"ticker", "name", "sector_id", "company_type", "size_category"
		) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		company.Ticker, company.Name, company.SectorID,
		company.CompanyType, company.SizeCategory).Scan(&company.ID)
	if isUniqueViolation(err) {
		existing, err2 := store.CompanyByTicker(ctx, company.Ticker)
		if err2 != nil {
			return err
		}

		*company = *existing
		return nil
	}

	return err
}

func (store *PGStore) PeriodByLabel(ctx context.Context, label string) (*data.FiscalPeriod, error) {
	var period data.FiscalPeriod
	err := pgxscan.Get(ctx, store.Pool, &period,
		`SELECT id, fiscal_year, period_type, period_label, period_start, period_end
		FROM fiscal_periods WHERE period_label=$1`, label)
	if err != nil {
		return nil, mapNoRows(err)
	}

	return &period, nil
}

func (store *PGStore) CreatePeriod(ctx context.Context, period *data.FiscalPeriod) error {
	err := store.Pool.QueryRow(ctx,
		`INSERT INTO fiscal_periods (
			"fiscal_year", "period_type", "period_label", "period_start", "period_end"
		) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		period.FiscalYear, period.PeriodType, period.PeriodLabel,
		period.PeriodStart, period.PeriodEnd).Scan(&period.ID)
	if isUniqueViolation(err) {
		existing, err2 := store.PeriodByLabel(ctx, period.PeriodLabel)
		if err2 != nil {
			return err
		}

		*period = *existing
		return nil
	}

	return err
}
