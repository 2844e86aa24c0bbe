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
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tadawul-vault/tasidata/data"
	"github.com/tadawul-vault/tasidata/dimension"
	"github.com/tadawul-vault/tasidata/healthcheck"
	"github.com/tadawul-vault/tasidata/ingest"
	"github.com/tadawul-vault/tasidata/library"
	"github.com/tadawul-vault/tasidata/loader"
	"github.com/tadawul-vault/tasidata/units"
)

var (
	loadMultipliersFn string
	loadWorkers       int
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <extracted-data.csv>",
	Short: "Load extracted financial statements into the warehouse",
	Long: `The load sub-command reads a CSV of extracted financial statements, cleans
each record, normalizes reporting units to riyals, derives financial metrics,
and upserts the results into the warehouse. Facts already present are only
updated when the incoming extraction is strictly newer.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		raws, err := ingest.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("SourceFile", args[0]).Msg("could not read extracted data")
		}

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to library")
		}
		defer myLibrary.Close()

		resolver := dimension.NewResolver(dimension.NewPGStore(myLibrary.Pool))
		myLoader := loader.New(resolver, loader.NewPGWriter(myLibrary.Pool), units.NewEngine())
		myLoader.Workers = loadWorkers

		run, runErr := myLoader.Run(ctx, args[0], raws)
		if runErr != nil {
			log.Error().Err(runErr).Msg("load run aborted")
		}

		// record partial progress even when the run aborted
		if err := run.SaveDB(ctx, myLibrary.Pool); err != nil {
			log.Error().Err(err).Msg("could not save run summary")
		}

		if err := saveProfiles(ctx, myLibrary, myLoader.UnitProfiles()); err != nil {
			log.Error().Err(err).Msg("could not save unit multiplier decisions")
		}

		if loadMultipliersFn != "" {
			if err := exportProfiles(loadMultipliersFn, myLoader.UnitProfiles()); err != nil {
				log.Error().Err(err).Str("OutputFN", loadMultipliersFn).
					Msg("could not export unit multiplier decisions")
			}
		}

		if runErr == nil {
			if err := myLibrary.RefreshView(ctx); err != nil {
				log.Error().Err(err).Msg("could not refresh company_financials")
			}
		}

		notifyHealthCheck(run, runErr)

		if runErr != nil {
			os.Exit(1)
		}
	},
}

func saveProfiles(ctx context.Context, myLibrary *library.Library, profiles []data.UnitProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	tx, err := myLibrary.Pool.Begin(ctx)
	if err != nil {
		return err
	}

	for idx := range profiles {
		if err := profiles[idx].SaveDB(ctx, tx); err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("rollback failed")
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func exportProfiles(fn string, profiles []data.UnitProfile) error {
	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	return units.ExportJSON(fh, profiles)
}

func notifyHealthCheck(run *data.RunSummary, runErr error) {
	checkID := viper.GetString("healthchecks.load_id")
	if checkID == "" {
		return
	}

	body := fmt.Sprintf("source: %s\ntotal: %d\ninserted: %d\nupdated: %d\nskipped: %d\nfailed: %d\nnormalized: %d",
		run.SourceFile, run.Total, run.Inserted, run.Updated, run.Skipped, run.Failed, run.Normalized)

	var err error
	if runErr == nil {
		err = healthcheck.Ping(checkID, body)
	} else {
		err = healthcheck.PingFailure(checkID, body)
	}

	if err != nil {
		log.Error().Err(err).Msg("could not ping health check")
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadMultipliersFn, "multipliers", "", "write unit multiplier decisions to a JSON file")
	loadCmd.Flags().IntVar(&loadWorkers, "workers", 0, "number of record preparation workers (0 = default)")
}
