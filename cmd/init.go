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
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tadawul-vault/tasidata/db"
	"github.com/tadawul-vault/tasidata/healthcheck"
)

type initSettings struct {
	DBUrl             string `toml:"-"`
	CreateHealthCheck bool   `toml:"-"`

	DB struct {
		URL string `toml:"url"`
	} `toml:"db"`

	Healthchecks struct {
		APIKey string `toml:"apikey,omitempty"`
		LoadID string `toml:"load_id,omitempty"`
	} `toml:"healthchecks"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather database configuration and setup schema",
	Run: func(cmd *cobra.Command, args []string) {
		settings := &initSettings{}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Provide the DSN for connecting to your PostgreSQL database (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&settings.DBUrl).
					Validate(func(dsn string) error {
						_, err := pgx.ParseConfig(dsn)
						return err
					}),
			),

			huh.NewGroup(
				huh.NewInput().
					Title("healthchecks.io API key (leave blank to skip load-run monitoring)").
					Value(&settings.Healthchecks.APIKey),

				huh.NewConfirm().
					Title("Create a healthchecks.io check for load runs?").
					Value(&settings.CreateHealthCheck),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering database settings")
		}

		log.Info().Msg("creating database tables")

		// run migration
		dbURL := strings.Replace(settings.DBUrl, "postgres://", "pgx5://", -1)
		err = db.Migrate(dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("error running database migration")
		}

		log.Info().Msg("database tables created")

		if settings.CreateHealthCheck && settings.Healthchecks.APIKey != "" {
			checkID, err := healthcheck.Create("tasidata load", "tasidata-load",
				[]string{"tasidata"}, "0 18 * * *")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create health check")
			}
			settings.Healthchecks.LoadID = checkID
			log.Info().Str("HealthCheckID", checkID).Msg("created load-run health check")
		}

		// write settings to the default config file location
		settings.DB.URL = settings.DBUrl
		payload, err := toml.Marshal(settings)
		if err != nil {
			log.Fatal().Err(err).Msg("could not serialize settings")
		}

		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configFn := filepath.Join(home, ".tasidata.toml")
		if err := os.WriteFile(configFn, payload, 0600); err != nil {
			log.Fatal().Err(err).Str("ConfigFN", configFn).Msg("could not write config file")
		}

		log.Info().Str("ConfigFN", configFn).Msg("wrote config file")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
