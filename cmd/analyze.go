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
package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/ingest"
	"github.com/tadawul-vault/tasidata/library"
	"github.com/tadawul-vault/tasidata/units"
)

var (
	analyzeOutFn string
	analyzeSave  bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <extracted-data.csv>",
	Short: "Decide reporting units for each company without loading",
	Long: `The analyze sub-command inspects a CSV of extracted financial statements
and decides, per company, which unit its monetary values are reported in
(riyals, thousands, or millions). Decisions come from manual overrides first,
then comparison against known-revenue benchmark companies, then heuristic
rules on the statement values themselves. One decision is made per company,
from its latest annual filing, and covers all of its periods.

The decisions are written to a JSON file for review and, with --save, to the
unit_multipliers table.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		raws, err := ingest.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("SourceFile", args[0]).Msg("could not read extracted data")
		}

		recs := make([]*data.Record, 0, len(raws))
		for _, raw := range raws {
			recs = append(recs, raw.Clean())
		}

		engine := units.NewEngine()
		profileSet := engine.ResolveEntities(recs)

		// emit one profile per ticker, in first-occurrence order
		profiles := make([]data.UnitProfile, 0, len(profileSet))
		seen := make(map[string]bool, len(profileSet))
		bySource := make(map[string]int)

		for _, rec := range recs {
			if rec.Ticker == "" || seen[rec.Ticker] {
				continue
			}
			seen[rec.Ticker] = true

			profile := profileSet[rec.Ticker]
			profiles = append(profiles, profile)
			bySource[profile.Source]++
		}

		log.Info().Int("Companies", len(profiles)).
			Int("Manual", bySource[data.SourceManual]).
			Int("Benchmark", bySource[data.SourceBenchmark]).
			Int("Rule", bySource[data.SourceRule]).
			Int("Default", bySource[data.SourceDefault]).
			Msg("unit analysis complete")

		if err := exportProfiles(analyzeOutFn, profiles); err != nil {
			log.Fatal().Err(err).Str("OutputFN", analyzeOutFn).
				Msg("could not export unit multiplier decisions")
		}

		log.Info().Str("OutputFN", analyzeOutFn).Msg("wrote unit multiplier decisions")

		if analyzeSave {
			myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
			if err != nil {
				log.Fatal().Err(err).Msg("could not connect to library")
			}
			defer myLibrary.Close()

			if err := saveProfiles(ctx, myLibrary, profiles); err != nil {
				log.Fatal().Err(err).Msg("could not save unit multiplier decisions")
			}

			log.Info().Int("Companies", len(profiles)).Msg("saved unit multiplier decisions")
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeOutFn, "out", "o", "unit_multipliers.json", "output JSON file")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save decisions to the unit_multipliers table")
}
