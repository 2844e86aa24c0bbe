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
package loader

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/metrics"
)

// prepared is a record after the pure pipeline stages: cleaned, unit
// normalized, metrics derived.
type prepared struct {
	Record  *data.Record
	Metrics *data.Metrics
	Profile data.UnitProfile
}

// prepare runs the clean/normalize/derive stages across a bounded worker
// pool. Results land in an indexed slice so arrival order is preserved for
// the single-writer load stage. Unit profiles are resolved once per ticker
// between the clean and normalize stages so every filing of a company is
// scaled by the same multiplier.
func (loader *Loader) prepare(ctx context.Context, raws []*data.RawRecord) ([]*prepared, error) {
	out := make([]*prepared, len(raws))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(loader.workers())

	for idx, raw := range raws {
		idx, raw := idx, raw
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out[idx] = &prepared{Record: raw.Clean()}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	records := make([]*data.Record, len(out))
	for idx, fact := range out {
		records[idx] = fact.Record
	}

	entityProfiles := loader.Engine.ResolveEntities(records)

	group, gctx = errgroup.WithContext(ctx)
	group.SetLimit(loader.workers())

	for _, fact := range out {
		fact := fact
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			profile, ok := entityProfiles[fact.Record.Ticker]
			if !ok {
				profile = loader.Engine.Resolve(fact.Record)
			}

			fact.Profile = loader.Engine.ApplyProfile(fact.Record, profile)
			fact.Metrics = metrics.Derive(fact.Record)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// profilesOf returns one unit profile per distinct ticker, first occurrence
// wins, preserving record order.
func profilesOf(facts []*prepared) []data.UnitProfile {
	seen := make(map[string]bool, len(facts))
	profiles := make([]data.UnitProfile, 0, len(facts))

	for _, fact := range facts {
		if fact == nil || fact.Record.Ticker == "" || seen[fact.Record.Ticker] {
			continue
		}

		seen[fact.Record.Ticker] = true
		profiles = append(profiles, fact.Profile)
	}

	return profiles
}

func (loader *Loader) workers() int {
	if loader.Workers > 0 {
		return loader.Workers
	}

	return defaultWorkers
}
