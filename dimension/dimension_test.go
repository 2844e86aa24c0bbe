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
package dimension_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/dimension"
)

// memStore is an in-memory Store used to exercise the resolver without a
// database.
type memStore struct {
	mu sync.Mutex

	sectors   map[string]*data.Sector
	companies map[string]*data.Company
	periods   map[string]*data.FiscalPeriod

	nextID  int64
	creates int
	lookups int
}

func newMemStore() *memStore {
	return &memStore{
		sectors:   make(map[string]*data.Sector),
		companies: make(map[string]*data.Company),
		periods:   make(map[string]*data.FiscalPeriod),
	}
}

func (store *memStore) SectorByCode(_ context.Context, code string) (*data.Sector, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.lookups++
	if sector, ok := store.sectors[code]; ok {
		return sector, nil
	}

	return nil, dimension.ErrNotFound
}

func (store *memStore) CreateSector(_ context.Context, sector *data.Sector) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	store.creates++
	sector.ID = store.nextID
	store.sectors[sector.Code] = sector
	return nil
}

func (store *memStore) CompanyByTicker(_ context.Context, ticker string) (*data.Company, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.lookups++
	if company, ok := store.companies[ticker]; ok {
		return company, nil
	}

	return nil, dimension.ErrNotFound
}

func (store *memStore) CreateCompany(_ context.Context, company *data.Company) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	store.creates++
	company.ID = store.nextID
	store.companies[company.Ticker] = company
	return nil
}

func (store *memStore) PeriodByLabel(_ context.Context, label string) (*data.FiscalPeriod, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.lookups++
	if period, ok := store.periods[label]; ok {
		return period, nil
	}

	return nil, dimension.ErrNotFound
}

func (store *memStore) CreatePeriod(_ context.Context, period *data.FiscalPeriod) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	store.creates++
	period.ID = store.nextID
	store.periods[period.PeriodLabel] = period
	return nil
}

func TestResolverCreatesOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	resolver := dimension.NewResolver(store)

	rec := &data.Record{
		Ticker:      "1120",
		CompanyName: "Al Rajhi Bank",
		SectorName:  "Banks",
		FiscalYear:  2024,
		PeriodType:  data.Annual,
	}

	companyID, err := resolver.Company(ctx, rec)
	require.NoError(t, err)

	again, err := resolver.Company(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, companyID, again)

	// one sector and one company
	assert.Equal(t, 2, store.creates)
	assert.Len(t, store.companies, 1)
	assert.Equal(t, "Al Rajhi Bank", store.companies["1120"].Name)
	_, haveSector := store.sectors["BANKS"]
	assert.True(t, haveSector)
}

func TestResolverSharesSector(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	resolver := dimension.NewResolver(store)

	first := &data.Record{Ticker: "1120", CompanyName: "Al Rajhi Bank", SectorName: "Banks"}
	second := &data.Record{Ticker: "1010", CompanyName: "Riyad Bank", SectorName: "Banks"}

	_, err := resolver.Company(ctx, first)
	require.NoError(t, err)
	_, err = resolver.Company(ctx, second)
	require.NoError(t, err)

	assert.Len(t, store.sectors, 1)
	assert.Equal(t, store.companies["1120"].SectorID, store.companies["1010"].SectorID)
}

func TestResolverPeriodSharedAcrossCompanies(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	resolver := dimension.NewResolver(store)

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	first := &data.Record{FiscalYear: 2024, PeriodType: data.Quarterly, PeriodEnd: &end}
	second := &data.Record{FiscalYear: 2024, PeriodType: data.Quarterly, PeriodEnd: &end}

	firstID, err := resolver.Period(ctx, first)
	require.NoError(t, err)
	secondID, err := resolver.Period(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID)
	assert.Len(t, store.periods, 1)
	assert.Equal(t, "Q2 2024", store.periods["Q2 2024"].PeriodLabel)
}

func TestResolverConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	resolver := dimension.NewResolver(store)

	var wg sync.WaitGroup
	ids := make([]int64, 16)
	for i := range ids {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			id, err := resolver.Sector(ctx, "Energy")
			assert.NoError(t, err)
			ids[slot] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	assert.Len(t, store.sectors, 1)
}

func TestResolverMissingTicker(t *testing.T) {
	resolver := dimension.NewResolver(newMemStore())
	_, err := resolver.Company(context.Background(), &data.Record{SectorName: "Banks"})
	assert.Error(t, err)
}
