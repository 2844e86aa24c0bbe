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

// Package dimension resolves sectors, companies and fiscal periods to their
// dimension row ids, creating rows on first sight of a natural key.
package dimension

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/rs/zerolog/log"
	"github.com/tadawul-vault/tasidata/data"
)

// ErrNotFound is returned by stores when no row matches the natural key.
var ErrNotFound = errors.New("dimension row not found")

// Store abstracts dimension persistence. Create methods assign the generated
// id on the passed value; lookups by natural key return ErrNotFound when the
// row does not exist.
type Store interface {
	SectorByCode(ctx context.Context, code string) (*data.Sector, error)
	CreateSector(ctx context.Context, sector *data.Sector) error

	CompanyByTicker(ctx context.Context, ticker string) (*data.Company, error)
	CreateCompany(ctx context.Context, company *data.Company) error

	PeriodByLabel(ctx context.Context, label string) (*data.FiscalPeriod, error)
	CreatePeriod(ctx context.Context, period *data.FiscalPeriod) error
}

// Resolver caches dimension ids per natural key so that each key hits the
// database at most once per run. Reads go through lock-free maps; the create
// path is serialized so a key is never created twice.
type Resolver struct {
	store Store

	sectors   *haxmap.Map[string, int64]
	companies *haxmap.Map[string, int64]
	periods   *haxmap.Map[string, int64]

	createMu sync.Mutex
}

func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:     store,
		sectors:   haxmap.New[string, int64](),
		companies: haxmap.New[string, int64](),
		periods:   haxmap.New[string, int64](),
	}
}

// Sector resolves a free-text sector name to its dimension id.
func (resolver *Resolver) Sector(ctx context.Context, name string) (int64, error) {
	code := data.SectorCode(name)
	if id, ok := resolver.sectors.Get(code); ok {
		return id, nil
	}

	resolver.createMu.Lock()
	defer resolver.createMu.Unlock()

	if id, ok := resolver.sectors.Get(code); ok {
		return id, nil
	}

	sector, err := resolver.store.SectorByCode(ctx, code)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		sector = &data.Sector{Code: code, Name: name}
		if sector.Name == "" {
			sector.Name = "Unknown"
		}

		if err = resolver.store.CreateSector(ctx, sector); err != nil {
			return 0, fmt.Errorf("create sector %s: %w", code, err)
		}

		log.Info().Str("Code", code).Str("Name", sector.Name).Msg("created sector")
	default:
		return 0, fmt.Errorf("lookup sector %s: %w", code, err)
	}

	resolver.sectors.Set(code, sector.ID)
	return sector.ID, nil
}

// Company resolves the record's ticker to a company id, creating the company
// (and its sector) on first sight.
func (resolver *Resolver) Company(ctx context.Context, rec *data.Record) (int64, error) {
	ticker := rec.Ticker
	if ticker == "" {
		return 0, errors.New("record has no ticker")
	}

	if id, ok := resolver.companies.Get(ticker); ok {
		return id, nil
	}

	sectorID, err := resolver.Sector(ctx, rec.SectorName)
	if err != nil {
		return 0, err
	}

	resolver.createMu.Lock()
	defer resolver.createMu.Unlock()

	if id, ok := resolver.companies.Get(ticker); ok {
		return id, nil
	}

	company, err := resolver.store.CompanyByTicker(ctx, ticker)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		company = &data.Company{
			Ticker:       ticker,
			Name:         rec.CompanyName,
			SectorID:     sectorID,
			CompanyType:  rec.CompanyType,
			SizeCategory: rec.SizeCategory,
		}

		if err = resolver.store.CreateCompany(ctx, company); err != nil {
			return 0, fmt.Errorf("create company %s: %w", ticker, err)
		}

		log.Info().Str("Ticker", ticker).Str("Name", company.Name).Msg("created company")
	default:
		return 0, fmt.Errorf("lookup company %s: %w", ticker, err)
	}

	resolver.companies.Set(ticker, company.ID)
	return company.ID, nil
}

// Period resolves the record's fiscal period to a period id, deriving the
// period bounds and label first.
func (resolver *Resolver) Period(ctx context.Context, rec *data.Record) (int64, error) {
	derived := data.DerivePeriod(rec.FiscalYear, rec.PeriodType, rec.PeriodEnd)

	if id, ok := resolver.periods.Get(derived.PeriodLabel); ok {
		return id, nil
	}

	resolver.createMu.Lock()
	defer resolver.createMu.Unlock()

	if id, ok := resolver.periods.Get(derived.PeriodLabel); ok {
		return id, nil
	}

	period, err := resolver.store.PeriodByLabel(ctx, derived.PeriodLabel)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		period = &derived
		if err = resolver.store.CreatePeriod(ctx, period); err != nil {
			return 0, fmt.Errorf("create period %s: %w", derived.PeriodLabel, err)
		}

		log.Info().Str("Label", period.PeriodLabel).Msg("created fiscal period")
	default:
		return 0, fmt.Errorf("lookup period %s: %w", derived.PeriodLabel, err)
	}

	resolver.periods.Set(period.PeriodLabel, period.ID)
	return period.ID, nil
}
